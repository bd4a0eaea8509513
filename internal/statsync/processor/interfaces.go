package processor

import (
	"context"

	"statsync-server/internal/clients/klaviyo"
	"statsync-server/internal/store"

	"github.com/google/uuid"
)

// SyncStore is the persistence surface the sync orchestrator needs.
type SyncStore interface {
	GetAccountByIdentifier(ctx context.Context, identifier string) (store.Account, error)
	TryAcquireSyncLock(ctx context.Context, accountID uuid.UUID) (bool, error)
	ReleaseSyncLock(ctx context.Context, accountID uuid.UUID) error
	FinalizeSync(ctx context.Context, accountID uuid.UUID, params store.FinalizeSyncParams) (store.Account, error)
	UpsertCampaignStat(ctx context.Context, record store.CampaignStatRecord) error
	UpsertFlowStat(ctx context.Context, record store.FlowStatRecord) error
}

// UpstreamClient is the per-account Klaviyo API surface the orchestrator
// fans out over.
type UpstreamClient interface {
	Campaigns(ctx context.Context, channel string) ([]klaviyo.Campaign, error)
	Flows(ctx context.Context) ([]klaviyo.Flow, error)
	Tags(ctx context.Context) ([]klaviyo.Tag, error)
	Segments(ctx context.Context) ([]klaviyo.Audience, error)
	Lists(ctx context.Context) ([]klaviyo.Audience, error)
	CampaignValuesReport(ctx context.Context, conversionMetricID string) (klaviyo.CampaignReport, error)
	FlowSeriesReport(ctx context.Context, conversionMetricID string) (klaviyo.FlowReport, error)
	FlowDefinitions(ctx context.Context, flowIDs []string) ([]klaviyo.FlowDefinition, error)
}

// ClientFactory builds an upstream client bound to one account's API key.
type ClientFactory func(apiKey string) UpstreamClient
