package handler

import (
	"errors"
	"time"

	"statsync-server/internal/apierrors"
	"statsync-server/internal/clients/klaviyo"
	"statsync-server/internal/observability"
	"statsync-server/internal/statsync/processor"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for account sync operations.
type Handler struct {
	processor processor.SyncProcessor
	logger    *observability.Logger
}

// New creates a new sync handler.
func New(p processor.SyncProcessor, logger *observability.Logger) Handler {
	return Handler{processor: p, logger: logger}
}

type syncRequest struct {
	SyncedAt *time.Time `json:"synced_at"`
}

type bulkSyncRequest struct {
	AccountIDs []string   `json:"account_ids"`
	SyncedAt   *time.Time `json:"synced_at"`
}

// HandleSyncAccount triggers a sync for one account, identified by internal
// or public id.
func (h *Handler) HandleSyncAccount(c *gin.Context) {
	ctx := c.Request.Context()
	identifier := c.Param("account_id")
	if identifier == "" {
		apierrors.BadRequest(c, "MISSING_ACCOUNT_ID", "account id is required")
		return
	}

	var req syncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "INVALID_INPUT", "invalid request body")
			return
		}
	}

	result, err := h.processor.SyncAccount(ctx, identifier, req.SyncedAt)
	if err != nil {
		h.respondSyncError(c, err)
		return
	}
	c.JSON(200, result)
}

// HandleSyncAccounts triggers syncs for a batch of accounts. Accounts
// succeed or fail independently; the response carries one entry per input.
func (h *Handler) HandleSyncAccounts(c *gin.Context) {
	ctx := c.Request.Context()

	var req bulkSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "invalid request body")
		return
	}
	if len(req.AccountIDs) == 0 {
		apierrors.BadRequest(c, "MISSING_ACCOUNT_IDS", "account_ids is required")
		return
	}

	statuses := h.processor.SyncAccounts(ctx, req.AccountIDs, req.SyncedAt)
	c.JSON(200, gin.H{"results": statuses})
}

// HandleGetSyncStatus reports an account's sync bookkeeping.
func (h *Handler) HandleGetSyncStatus(c *gin.Context) {
	ctx := c.Request.Context()
	identifier := c.Param("account_id")
	if identifier == "" {
		apierrors.BadRequest(c, "MISSING_ACCOUNT_ID", "account id is required")
		return
	}

	status, err := h.processor.GetSyncStatus(ctx, identifier)
	if err != nil {
		if errors.Is(err, processor.ErrAccountNotFound) {
			apierrors.NotFound(c, "account not found")
			return
		}
		apierrors.InternalError(c, err)
		return
	}
	c.JSON(200, status)
}

func (h *Handler) respondSyncError(c *gin.Context, err error) {
	var reqErr *klaviyo.RequestError
	switch {
	case errors.Is(err, processor.ErrAccountNotFound):
		apierrors.NotFound(c, "account not found")
	case errors.Is(err, processor.ErrIntegrationNotConfigured):
		apierrors.BadRequest(c, "INTEGRATION_NOT_CONFIGURED", "account has no upstream integration configured")
	case errors.Is(err, klaviyo.ErrPaginationExceeded):
		apierrors.BadGateway(c, "UPSTREAM_PAGINATION_EXCEEDED", "upstream returned too many pages", err)
	case errors.As(err, &reqErr):
		apierrors.BadGateway(c, "UPSTREAM_REQUEST_FAILED", "upstream request failed", err)
	default:
		apierrors.InternalError(c, err)
	}
}
