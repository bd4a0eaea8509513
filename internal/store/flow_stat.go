package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const flowStatColumns = `
id, account_id, flow_id, flow_message_id, channel, flow_name, flow_status,
archived, trigger_type, flow_created_at, flow_updated_at, tag_ids, tag_names,
stats, message, experiment, created_at, updated_at`

const sqlUpsertFlowStat = `
INSERT INTO flow_stats (
    account_id, flow_id, flow_message_id, channel, flow_name, flow_status,
    archived, trigger_type, flow_created_at, flow_updated_at, tag_ids,
    tag_names, stats, message, experiment
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (account_id, flow_id, flow_message_id, channel) DO UPDATE SET
    flow_name = EXCLUDED.flow_name,
    flow_status = EXCLUDED.flow_status,
    archived = EXCLUDED.archived,
    trigger_type = EXCLUDED.trigger_type,
    flow_created_at = EXCLUDED.flow_created_at,
    flow_updated_at = EXCLUDED.flow_updated_at,
    tag_ids = EXCLUDED.tag_ids,
    tag_names = EXCLUDED.tag_names,
    stats = EXCLUDED.stats,
    message = EXCLUDED.message,
    experiment = EXCLUDED.experiment,
    updated_at = NOW()
`

// UpsertFlowStat creates or fully replaces the record keyed by
// (account_id, flow_id, flow_message_id, channel).
func (s *Store) UpsertFlowStat(ctx context.Context, record FlowStatRecord) error {
	_, err := s.db.ExecContext(ctx, sqlUpsertFlowStat,
		record.AccountID,
		record.FlowID,
		record.FlowMessageID,
		record.Channel,
		record.FlowName,
		record.FlowStatus,
		record.Archived,
		record.TriggerType,
		record.FlowCreatedAt,
		record.FlowUpdatedAt,
		record.TagIDs,
		record.TagNames,
		record.Stats,
		record.Message,
		record.Experiment)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert flow stat", err)
		return fmt.Errorf("failed to upsert flow stat: %w", err)
	}
	return nil
}

var flowStatSortColumns = map[string]string{
	"flow_name":  "flow_name",
	"created_at": "flow_created_at",
	"updated_at": "updated_at",
}

// SearchFlowStats returns a page of flow stat records scoped to the given
// accounts, plus the total matching count. The free-text query matches the
// flow name and the message subject.
func (s *Store) SearchFlowStats(ctx context.Context, params StatSearchParams) ([]FlowStatRecord, int, error) {
	if len(params.AccountIDs) == 0 {
		return []FlowStatRecord{}, 0, nil
	}

	where := "WHERE account_id IN (?)"
	args := []interface{}{params.AccountIDs}
	if params.Query != "" {
		where += " AND (flow_name ILIKE ? OR message->>'subject' ILIKE ?)"
		pattern := "%" + params.Query + "%"
		args = append(args, pattern, pattern)
	}
	if params.DateFrom != nil {
		where += " AND flow_created_at >= ?"
		args = append(args, *params.DateFrom)
	}
	if params.DateTo != nil {
		where += " AND flow_created_at <= ?"
		args = append(args, *params.DateTo)
	}

	countQuery, countArgs, err := sqlx.In("SELECT COUNT(*) FROM flow_stats "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build flow stat count query: %w", err)
	}
	var total int
	if err := s.db.GetContext(ctx, &total, s.db.Rebind(countQuery), countArgs...); err != nil {
		s.logger.Error(ctx, "failed to count flow stats", err)
		return nil, 0, fmt.Errorf("failed to count flow stats: %w", err)
	}

	orderBy := sortClause(flowStatSortColumns, params.SortBy, params.SortDesc)
	args = append(args, params.Limit, params.Offset)
	query, queryArgs, err := sqlx.In(
		"SELECT "+flowStatColumns+" FROM flow_stats "+where+" "+orderBy+" LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build flow stat search query: %w", err)
	}

	records := []FlowStatRecord{}
	if err := s.db.SelectContext(ctx, &records, s.db.Rebind(query), queryArgs...); err != nil {
		s.logger.Error(ctx, "failed to search flow stats", err)
		return nil, 0, fmt.Errorf("failed to search flow stats: %w", err)
	}
	return records, total, nil
}
