package processor

import (
	"context"
	"errors"
	"sync"
	"time"

	"statsync-server/internal/clients/klaviyo"
	"statsync-server/internal/observability"
	"statsync-server/internal/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

var (
	// ErrAccountNotFound means the identifier resolved to no account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrIntegrationNotConfigured means the account has no Klaviyo API key
	// or conversion metric to sync with.
	ErrIntegrationNotConfigured = errors.New("klaviyo integration not configured")
)

// SyncProcessor orchestrates the per-account sync cycle: freshness gate,
// lock acquisition, upstream fan-out, merge, and persistence.
type SyncProcessor struct {
	store     SyncStore
	newClient ClientFactory
	freshness time.Duration
	timeout   time.Duration
	logger    *observability.Logger
}

// New creates a SyncProcessor. freshness is the minimum age of the last
// sync before a new one is attempted; timeout bounds one account's whole
// sync cycle.
func New(store SyncStore, newClient ClientFactory, freshness, timeout time.Duration, logger *observability.Logger) SyncProcessor {
	return SyncProcessor{
		store:     store,
		newClient: newClient,
		freshness: freshness,
		timeout:   timeout,
		logger:    logger,
	}
}

// SyncResult summarizes one account sync. Synced is false when the
// freshness gate or the sync lock turned the request into a no-op.
type SyncResult struct {
	Account         store.Account `json:"account"`
	Synced          bool          `json:"synced"`
	CampaignRecords int           `json:"campaign_records"`
	FlowRecords     int           `json:"flow_records"`
}

// fetchedData is everything the fan-out phase collects before merging.
type fetchedData struct {
	emailCampaigns []klaviyo.Campaign
	smsCampaigns   []klaviyo.Campaign
	tags           []klaviyo.Tag
	flows          []klaviyo.Flow
	segments       []klaviyo.Audience
	lists          []klaviyo.Audience
	campaignReport klaviyo.CampaignReport
	flowReport     klaviyo.FlowReport
}

// SyncAccount runs one full sync cycle for the account the identifier
// resolves to. A recent or in-flight sync returns the account unchanged
// with Synced false and issues zero upstream calls. syncedAt overrides the
// timestamp recorded on success; nil means now.
func (p *SyncProcessor) SyncAccount(ctx context.Context, identifier string, syncedAt *time.Time) (SyncResult, error) {
	account, err := p.store.GetAccountByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SyncResult{}, ErrAccountNotFound
		}
		return SyncResult{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "account_id", Value: account.ID.String()})

	if account.KlaviyoAPIKey == nil || *account.KlaviyoAPIKey == "" ||
		account.ConversionMetricID == nil || *account.ConversionMetricID == "" {
		return SyncResult{}, ErrIntegrationNotConfigured
	}

	now := time.Now().UTC()
	if account.IsSyncing || (account.LastSyncedAt != nil && now.Sub(*account.LastSyncedAt) < p.freshness) {
		return SyncResult{Account: account, Synced: false}, nil
	}

	acquired, err := p.store.TryAcquireSyncLock(ctx, account.ID)
	if err != nil {
		return SyncResult{}, err
	}
	if !acquired {
		// Lost the race to a concurrent sync; treat like the freshness gate.
		return SyncResult{Account: account, Synced: false}, nil
	}

	syncCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	client := p.newClient(*account.KlaviyoAPIKey)
	data, err := p.fetchAll(syncCtx, client, *account.ConversionMetricID)
	if err != nil {
		p.logger.Error(ctx, "upstream fetch failed, aborting sync", err)
		p.releaseLock(ctx, account.ID)
		return SyncResult{}, err
	}

	definitions, err := client.FlowDefinitions(syncCtx, flowIDs(data.flowReport))
	if err != nil {
		p.logger.Error(ctx, "flow definition fetch aborted", err)
		p.releaseLock(ctx, account.ID)
		return SyncResult{}, err
	}
	details := flowMessageDetails(definitions)

	campaigns := append(data.emailCampaigns, data.smsCampaigns...)
	campaignRecords := mergeCampaignStats(account.ID, data.campaignReport.Rows, campaigns, data.tags, data.segments, data.lists)
	flowRecords := mergeFlowStats(account.ID, data.flowReport, data.flows, data.tags, details)

	at := now
	if syncedAt != nil {
		at = syncedAt.UTC()
	}
	updated, err := p.store.FinalizeSync(ctx, account.ID, store.FinalizeSyncParams{
		LastSyncedAt:    at,
		TagNames:        tagNameList(data.tags),
		ReportDateTimes: store.StringList(data.flowReport.DateTimes),
	})
	if err != nil {
		p.releaseLock(ctx, account.ID)
		return SyncResult{}, err
	}

	// Upserts are intentionally not transactional: a mid-loop failure leaves
	// a partial set that the next sync reconciles by full-replace upsert.
	for _, record := range campaignRecords {
		if err := p.store.UpsertCampaignStat(ctx, record); err != nil {
			return SyncResult{}, err
		}
	}
	for _, record := range flowRecords {
		if err := p.store.UpsertFlowStat(ctx, record); err != nil {
			return SyncResult{}, err
		}
	}

	p.logger.Info(ctx, "account sync completed",
		observability.Field{Key: "campaign_records", Value: len(campaignRecords)},
		observability.Field{Key: "flow_records", Value: len(flowRecords)})
	return SyncResult{
		Account:         updated,
		Synced:          true,
		CampaignRecords: len(campaignRecords),
		FlowRecords:     len(flowRecords),
	}, nil
}

// fetchAll runs the eight upstream fetches concurrently. Any single failure
// cancels the rest and aborts the sync; partial data is discarded.
func (p *SyncProcessor) fetchAll(ctx context.Context, client UpstreamClient, conversionMetricID string) (fetchedData, error) {
	var data fetchedData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.emailCampaigns, err = client.Campaigns(gctx, "email")
		return err
	})
	g.Go(func() error {
		var err error
		data.smsCampaigns, err = client.Campaigns(gctx, "sms")
		return err
	})
	g.Go(func() error {
		var err error
		data.tags, err = client.Tags(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.flows, err = client.Flows(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.segments, err = client.Segments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.lists, err = client.Lists(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.campaignReport, err = client.CampaignValuesReport(gctx, conversionMetricID)
		return err
	})
	g.Go(func() error {
		var err error
		data.flowReport, err = client.FlowSeriesReport(gctx, conversionMetricID)
		return err
	})

	if err := g.Wait(); err != nil {
		return fetchedData{}, err
	}
	return data, nil
}

// flowIDs collects the distinct flow ids a series report references,
// preserving first-seen order.
func flowIDs(report klaviyo.FlowReport) []string {
	seen := make(map[string]bool, len(report.Rows))
	ids := make([]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		if row.Groupings.FlowID == "" || seen[row.Groupings.FlowID] {
			continue
		}
		seen[row.Groupings.FlowID] = true
		ids = append(ids, row.Groupings.FlowID)
	}
	return ids
}

func (p *SyncProcessor) releaseLock(ctx context.Context, accountID uuid.UUID) {
	if err := p.store.ReleaseSyncLock(ctx, accountID); err != nil {
		p.logger.Error(ctx, "failed to release sync lock", err)
	}
}

// AccountSyncStatus is one entry of a bulk sync response.
type AccountSyncStatus struct {
	Identifier string      `json:"identifier"`
	Result     *SyncResult `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// SyncAccounts syncs every identifier concurrently. Accounts fail or
// succeed independently; the statuses line up with the input order.
func (p *SyncProcessor) SyncAccounts(ctx context.Context, identifiers []string, syncedAt *time.Time) []AccountSyncStatus {
	statuses := make([]AccountSyncStatus, len(identifiers))
	var wg sync.WaitGroup
	for i, identifier := range identifiers {
		wg.Add(1)
		go func(i int, identifier string) {
			defer wg.Done()
			result, err := p.SyncAccount(ctx, identifier, syncedAt)
			if err != nil {
				statuses[i] = AccountSyncStatus{Identifier: identifier, Error: err.Error()}
				return
			}
			statuses[i] = AccountSyncStatus{Identifier: identifier, Result: &result}
		}(i, identifier)
	}
	wg.Wait()
	return statuses
}

// SyncStatus reports an account's sync bookkeeping.
type SyncStatus struct {
	AccountID      uuid.UUID  `json:"account_id"`
	PublicID       string     `json:"public_id"`
	IsSyncing      bool       `json:"is_syncing"`
	LastSyncedAt   *time.Time `json:"last_synced_at"`
	HasIntegration bool       `json:"has_integration"`
}

// GetSyncStatus resolves an account and reports its sync state.
func (p *SyncProcessor) GetSyncStatus(ctx context.Context, identifier string) (SyncStatus, error) {
	account, err := p.store.GetAccountByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SyncStatus{}, ErrAccountNotFound
		}
		return SyncStatus{}, err
	}
	return SyncStatus{
		AccountID:      account.ID,
		PublicID:       account.PublicID,
		IsSyncing:      account.IsSyncing,
		LastSyncedAt:   account.LastSyncedAt,
		HasIntegration: account.KlaviyoAPIKey != nil && *account.KlaviyoAPIKey != "" && account.ConversionMetricID != nil && *account.ConversionMetricID != "",
	}, nil
}
