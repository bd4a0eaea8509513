package handler

import (
	"errors"
	"strconv"
	"time"

	"statsync-server/internal/apierrors"
	"statsync-server/internal/observability"
	"statsync-server/internal/reporting/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for stat reporting queries.
type Handler struct {
	processor processor.ReportingProcessor
	logger    *observability.Logger
}

// New creates a new reporting handler.
func New(p processor.ReportingProcessor, logger *observability.Logger) Handler {
	return Handler{processor: p, logger: logger}
}

// HandleSearchCampaignStats serves paged campaign stats scoped to the
// accounts the requesting user may view.
func (h *Handler) HandleSearchCampaignStats(c *gin.Context) {
	ctx := c.Request.Context()

	userID, req, ok := h.parseSearch(c)
	if !ok {
		return
	}

	page, err := h.processor.SearchCampaignStats(ctx, userID, req)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}
	c.JSON(200, page)
}

// HandleSearchFlowStats serves paged flow stats scoped to the accounts the
// requesting user may view.
func (h *Handler) HandleSearchFlowStats(c *gin.Context) {
	ctx := c.Request.Context()

	userID, req, ok := h.parseSearch(c)
	if !ok {
		return
	}

	page, err := h.processor.SearchFlowStats(ctx, userID, req)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}
	c.JSON(200, page)
}

// parseSearch validates the shared query parameters. It writes the error
// response itself and returns ok=false when validation fails.
func (h *Handler) parseSearch(c *gin.Context) (uuid.UUID, processor.SearchRequest, bool) {
	rawUserID := c.Query("user_id")
	if rawUserID == "" {
		apierrors.BadRequest(c, "MISSING_USER_ID", "user_id is required")
		return uuid.Nil, processor.SearchRequest{}, false
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		apierrors.BadRequest(c, "INVALID_USER_ID", "user_id must be a valid UUID")
		return uuid.Nil, processor.SearchRequest{}, false
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_PAGE", "page must be an integer")
		return uuid.Nil, processor.SearchRequest{}, false
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_PAGE_SIZE", "page_size must be an integer")
		return uuid.Nil, processor.SearchRequest{}, false
	}

	req := processor.SearchRequest{
		Query:    c.Query("q"),
		Page:     page,
		PageSize: pageSize,
		SortBy:   c.Query("sort_by"),
		SortDesc: c.DefaultQuery("sort_dir", "asc") == "desc",
	}

	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "INVALID_DATE_FROM", "date_from must be RFC3339")
			return uuid.Nil, processor.SearchRequest{}, false
		}
		req.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "INVALID_DATE_TO", "date_to must be RFC3339")
			return uuid.Nil, processor.SearchRequest{}, false
		}
		req.DateTo = &to
	}

	return userID, req, true
}

func (h *Handler) respondSearchError(c *gin.Context, err error) {
	if errors.Is(err, processor.ErrUserNotFound) {
		apierrors.NotFound(c, "user not found")
		return
	}
	apierrors.InternalError(c, err)
}
