package processor

import (
	"context"
	"errors"
	"time"

	"statsync-server/internal/observability"
	"statsync-server/internal/store"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

// ErrUserNotFound means the requesting user does not exist.
var ErrUserNotFound = errors.New("user not found")

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ReportingStore is the persistence surface the reporting layer needs.
type ReportingStore interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
	SearchCampaignStats(ctx context.Context, params store.StatSearchParams) ([]store.CampaignStatRecord, int, error)
	SearchFlowStats(ctx context.Context, params store.StatSearchParams) ([]store.FlowStatRecord, int, error)
}

// ReportingProcessor serves stat queries scoped to the accounts the
// requesting user may view.
type ReportingProcessor struct {
	store  ReportingStore
	logger *observability.Logger
}

// New creates a ReportingProcessor.
func New(store ReportingStore, logger *observability.Logger) ReportingProcessor {
	return ReportingProcessor{store: store, logger: logger}
}

// SearchRequest is a paged, sortable stat query. The date range is
// inclusive and interpreted against the record's send/created time.
type SearchRequest struct {
	Query    string
	Page     int
	PageSize int
	SortBy   string
	SortDesc bool
	DateFrom *time.Time
	DateTo   *time.Time
}

func (r SearchRequest) normalized() SearchRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = defaultPageSize
	}
	if r.PageSize > maxPageSize {
		r.PageSize = maxPageSize
	}
	return r
}

func (r SearchRequest) searchParams(accountIDs []uuid.UUID) store.StatSearchParams {
	return store.StatSearchParams{
		AccountIDs: accountIDs,
		Query:      r.Query,
		DateFrom:   r.DateFrom,
		DateTo:     r.DateTo,
		SortBy:     r.SortBy,
		SortDesc:   r.SortDesc,
		Limit:      r.PageSize,
		Offset:     (r.Page - 1) * r.PageSize,
	}
}

// CampaignStatsPage is one page of campaign stat records.
type CampaignStatsPage struct {
	Records  []store.CampaignStatRecord `json:"records"`
	Total    int                        `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
}

// FlowStatsPage is one page of flow stat records.
type FlowStatsPage struct {
	Records  []store.FlowStatRecord `json:"records"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// SearchCampaignStats returns the campaign stats visible to the user. A
// user with no viewable accounts gets an empty page, not an error.
func (p *ReportingProcessor) SearchCampaignStats(ctx context.Context, userID uuid.UUID, req SearchRequest) (CampaignStatsPage, error) {
	req = req.normalized()
	accountIDs, err := p.viewableAccounts(ctx, userID)
	if err != nil {
		return CampaignStatsPage{}, err
	}
	if len(accountIDs) == 0 {
		return CampaignStatsPage{Records: []store.CampaignStatRecord{}, Page: req.Page, PageSize: req.PageSize}, nil
	}

	records, total, err := p.store.SearchCampaignStats(ctx, req.searchParams(accountIDs))
	if err != nil {
		return CampaignStatsPage{}, err
	}
	return CampaignStatsPage{Records: records, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

// SearchFlowStats returns the flow stats visible to the user.
func (p *ReportingProcessor) SearchFlowStats(ctx context.Context, userID uuid.UUID, req SearchRequest) (FlowStatsPage, error) {
	req = req.normalized()
	accountIDs, err := p.viewableAccounts(ctx, userID)
	if err != nil {
		return FlowStatsPage{}, err
	}
	if len(accountIDs) == 0 {
		return FlowStatsPage{Records: []store.FlowStatRecord{}, Page: req.Page, PageSize: req.PageSize}, nil
	}

	records, total, err := p.store.SearchFlowStats(ctx, req.searchParams(accountIDs))
	if err != nil {
		return FlowStatsPage{}, err
	}
	return FlowStatsPage{Records: records, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

func (p *ReportingProcessor) viewableAccounts(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	user, err := p.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return accessibleAccountIDs(user, store.PermissionViewAnalytics), nil
}

// accessibleAccountIDs resolves the accounts on which the user holds the
// required permission. ADMIN implies every permission.
func accessibleAccountIDs(user store.User, required string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(user.Grants))
	for _, grant := range user.Grants {
		for _, permission := range grant.Permissions {
			if permission == store.PermissionAdmin || permission == required {
				ids = append(ids, grant.AccountID)
				break
			}
		}
	}
	return ids
}
