package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// StatSearchParams filters a stat record search. AccountIDs is mandatory
// scoping (permission resolution happens above the store); Query matches
// name-like fields case-insensitively; the date range is inclusive.
type StatSearchParams struct {
	AccountIDs []uuid.UUID
	Query      string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

const campaignStatColumns = `
id, account_id, campaign_id, campaign_message_id, channel, campaign_name,
stats, included_audience_ids, included_audience_names,
excluded_audience_ids, excluded_audience_names, tag_ids, tag_names,
campaign_created_at, campaign_scheduled_at, campaign_send_time,
created_at, updated_at`

const sqlUpsertCampaignStat = `
INSERT INTO campaign_stats (
    account_id, campaign_id, campaign_message_id, channel, campaign_name,
    stats, included_audience_ids, included_audience_names,
    excluded_audience_ids, excluded_audience_names, tag_ids, tag_names,
    campaign_created_at, campaign_scheduled_at, campaign_send_time
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (account_id, campaign_id) DO UPDATE SET
    campaign_message_id = EXCLUDED.campaign_message_id,
    channel = EXCLUDED.channel,
    campaign_name = EXCLUDED.campaign_name,
    stats = EXCLUDED.stats,
    included_audience_ids = EXCLUDED.included_audience_ids,
    included_audience_names = EXCLUDED.included_audience_names,
    excluded_audience_ids = EXCLUDED.excluded_audience_ids,
    excluded_audience_names = EXCLUDED.excluded_audience_names,
    tag_ids = EXCLUDED.tag_ids,
    tag_names = EXCLUDED.tag_names,
    campaign_created_at = EXCLUDED.campaign_created_at,
    campaign_scheduled_at = EXCLUDED.campaign_scheduled_at,
    campaign_send_time = EXCLUDED.campaign_send_time,
    updated_at = NOW()
`

// UpsertCampaignStat creates or fully replaces the record keyed by
// (account_id, campaign_id). Replays of identical data are idempotent.
func (s *Store) UpsertCampaignStat(ctx context.Context, record CampaignStatRecord) error {
	_, err := s.db.ExecContext(ctx, sqlUpsertCampaignStat,
		record.AccountID,
		record.CampaignID,
		record.CampaignMessageID,
		record.Channel,
		record.CampaignName,
		record.Stats,
		record.IncludedAudienceIDs,
		record.IncludedAudienceNames,
		record.ExcludedAudienceIDs,
		record.ExcludedAudienceNames,
		record.TagIDs,
		record.TagNames,
		record.CampaignCreatedAt,
		record.CampaignScheduledAt,
		record.CampaignSendTime)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert campaign stat", err)
		return fmt.Errorf("failed to upsert campaign stat: %w", err)
	}
	return nil
}

var campaignStatSortColumns = map[string]string{
	"campaign_name": "campaign_name",
	"send_time":     "campaign_send_time",
	"updated_at":    "updated_at",
}

// SearchCampaignStats returns a page of campaign stat records scoped to the
// given accounts, plus the total matching count. An empty account list
// yields an empty result.
func (s *Store) SearchCampaignStats(ctx context.Context, params StatSearchParams) ([]CampaignStatRecord, int, error) {
	if len(params.AccountIDs) == 0 {
		return []CampaignStatRecord{}, 0, nil
	}

	where := "WHERE account_id IN (?)"
	args := []interface{}{params.AccountIDs}
	if params.Query != "" {
		where += " AND campaign_name ILIKE ?"
		args = append(args, "%"+params.Query+"%")
	}
	if params.DateFrom != nil {
		where += " AND campaign_send_time >= ?"
		args = append(args, *params.DateFrom)
	}
	if params.DateTo != nil {
		where += " AND campaign_send_time <= ?"
		args = append(args, *params.DateTo)
	}

	countQuery, countArgs, err := sqlx.In("SELECT COUNT(*) FROM campaign_stats "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build campaign stat count query: %w", err)
	}
	var total int
	if err := s.db.GetContext(ctx, &total, s.db.Rebind(countQuery), countArgs...); err != nil {
		s.logger.Error(ctx, "failed to count campaign stats", err)
		return nil, 0, fmt.Errorf("failed to count campaign stats: %w", err)
	}

	orderBy := sortClause(campaignStatSortColumns, params.SortBy, params.SortDesc)
	args = append(args, params.Limit, params.Offset)
	query, queryArgs, err := sqlx.In(
		"SELECT "+campaignStatColumns+" FROM campaign_stats "+where+" "+orderBy+" LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build campaign stat search query: %w", err)
	}

	records := []CampaignStatRecord{}
	if err := s.db.SelectContext(ctx, &records, s.db.Rebind(query), queryArgs...); err != nil {
		s.logger.Error(ctx, "failed to search campaign stats", err)
		return nil, 0, fmt.Errorf("failed to search campaign stats: %w", err)
	}
	return records, total, nil
}

// sortClause maps a requested sort field through a column whitelist,
// falling back to updated_at.
func sortClause(allowed map[string]string, sortBy string, desc bool) string {
	column, ok := allowed[sortBy]
	if !ok {
		column = "updated_at"
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}
