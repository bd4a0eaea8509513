package processor

import (
	"statsync-server/internal/clients/klaviyo"
	"statsync-server/internal/store"

	"github.com/google/uuid"
)

// tagNameIndex maps tag ids to their display names.
func tagNameIndex(tags []klaviyo.Tag) map[string]string {
	names := make(map[string]string, len(tags))
	for _, tag := range tags {
		names[tag.ID] = tag.Name
	}
	return names
}

// tagNameList collects every tag name for the account-level cache.
func tagNameList(tags []klaviyo.Tag) store.StringList {
	names := make(store.StringList, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

// resolveNames maps ids through a name index. Ids without a known name are
// dropped from the names list; the caller keeps the raw id list alongside.
func resolveNames(ids []string, names map[string]string) store.StringList {
	resolved := make(store.StringList, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			resolved = append(resolved, name)
		}
	}
	return resolved
}

// campaignStatsFromReport overlays reported metrics onto the fixed
// statistics vector. Metrics the report omits stay at zero; metrics it
// adds beyond the vector are ignored.
func campaignStatsFromReport(metrics map[string]float64) store.CampaignStats {
	var stats store.CampaignStats
	for name, value := range metrics {
		switch name {
		case "recipients":
			stats.Recipients = value
		case "delivered":
			stats.Delivered = value
		case "delivery_rate":
			stats.DeliveryRate = value
		case "opens":
			stats.Opens = value
		case "opens_unique":
			stats.OpensUnique = value
		case "open_rate":
			stats.OpenRate = value
		case "clicks":
			stats.Clicks = value
		case "clicks_unique":
			stats.ClicksUnique = value
		case "click_rate":
			stats.ClickRate = value
		case "bounced":
			stats.Bounced = value
		case "bounce_rate":
			stats.BounceRate = value
		case "unsubscribes":
			stats.Unsubscribes = value
		case "unsubscribe_rate":
			stats.UnsubscribeRate = value
		case "spam_complaints":
			stats.SpamComplaints = value
		case "spam_complaint_rate":
			stats.SpamComplaintRate = value
		case "conversions":
			stats.Conversions = value
		case "conversion_rate":
			stats.ConversionRate = value
		case "conversion_value":
			stats.ConversionValue = value
		case "average_order_value":
			stats.AverageOrderValue = value
		case "revenue_per_recipient":
			stats.RevenuePerRecipient = value
		}
	}
	return stats
}

// mergeCampaignStats joins report rows with campaign, tag, and audience
// metadata into one record per row. Rows on channels other than email and
// sms are dropped. Rows whose campaign metadata is missing still produce a
// record with the statistics and empty metadata.
func mergeCampaignStats(accountID uuid.UUID, rows []klaviyo.CampaignReportRow, campaigns []klaviyo.Campaign, tags []klaviyo.Tag, segments, lists []klaviyo.Audience) []store.CampaignStatRecord {
	tagNames := tagNameIndex(tags)
	audienceNames := make(map[string]string, len(segments)+len(lists))
	for _, segment := range segments {
		audienceNames[segment.ID] = segment.Name
	}
	for _, list := range lists {
		audienceNames[list.ID] = list.Name
	}
	byID := make(map[string]klaviyo.Campaign, len(campaigns))
	for _, campaign := range campaigns {
		byID[campaign.ID] = campaign
	}

	records := make([]store.CampaignStatRecord, 0, len(rows))
	for _, row := range rows {
		channel := row.Groupings.SendChannel
		if channel != "email" && channel != "sms" {
			continue
		}

		record := store.CampaignStatRecord{
			AccountID:             accountID,
			CampaignID:            row.Groupings.CampaignID,
			CampaignMessageID:     row.Groupings.CampaignMessageID,
			Channel:               channel,
			Stats:                 campaignStatsFromReport(row.Statistics),
			IncludedAudienceIDs:   store.StringList{},
			IncludedAudienceNames: store.StringList{},
			ExcludedAudienceIDs:   store.StringList{},
			ExcludedAudienceNames: store.StringList{},
			TagIDs:                store.StringList{},
			TagNames:              store.StringList{},
		}
		if campaign, ok := byID[row.Groupings.CampaignID]; ok {
			record.CampaignName = campaign.Name
			record.IncludedAudienceIDs = store.StringList(campaign.IncludedAudiences)
			record.IncludedAudienceNames = resolveNames(campaign.IncludedAudiences, audienceNames)
			record.ExcludedAudienceIDs = store.StringList(campaign.ExcludedAudiences)
			record.ExcludedAudienceNames = resolveNames(campaign.ExcludedAudiences, audienceNames)
			record.TagIDs = store.StringList(campaign.TagIDs)
			record.TagNames = resolveNames(campaign.TagIDs, tagNames)
			record.CampaignCreatedAt = campaign.CreatedAt
			record.CampaignScheduledAt = campaign.ScheduledAt
			record.CampaignSendTime = campaign.SendTime
		}
		records = append(records, record)
	}
	return records
}

// mergeFlowStats joins flow series rows with flow and tag metadata into one
// record per row, no aggregation across messages. Statistics pass through
// as time-series arrays. Message and experiment details are set only when
// the message appears in the details lookup; a flow whose definition fetch
// failed yields records with those fields unset.
func mergeFlowStats(accountID uuid.UUID, report klaviyo.FlowReport, flows []klaviyo.Flow, tags []klaviyo.Tag, details map[string]flowMessageDetail) []store.FlowStatRecord {
	tagNames := tagNameIndex(tags)
	byID := make(map[string]klaviyo.Flow, len(flows))
	for _, flow := range flows {
		byID[flow.ID] = flow
	}

	type recordKey struct {
		flowID        string
		flowMessageID string
		channel       string
	}
	seen := make(map[recordKey]bool, len(report.Rows))

	records := make([]store.FlowStatRecord, 0, len(report.Rows))
	for _, row := range report.Rows {
		key := recordKey{
			flowID:        row.Groupings.FlowID,
			flowMessageID: row.Groupings.FlowMessageID,
			channel:       row.Groupings.SendChannel,
		}
		// Duplicate groupings would collide on the record's unique key;
		// the first row wins.
		if seen[key] {
			continue
		}
		seen[key] = true

		record := store.FlowStatRecord{
			AccountID:     accountID,
			FlowID:        row.Groupings.FlowID,
			FlowMessageID: row.Groupings.FlowMessageID,
			Channel:       row.Groupings.SendChannel,
			Stats:         store.FlowStats(row.Statistics),
			TagIDs:        store.StringList{},
			TagNames:      store.StringList{},
		}
		if flow, ok := byID[row.Groupings.FlowID]; ok {
			record.FlowName = flow.Name
			record.FlowStatus = flow.Status
			record.Archived = flow.Archived
			record.TriggerType = flow.TriggerType
			record.FlowCreatedAt = flow.CreatedAt
			record.FlowUpdatedAt = flow.UpdatedAt
			record.TagIDs = store.StringList(flow.TagIDs)
			record.TagNames = resolveNames(flow.TagIDs, tagNames)
		}
		if detail, ok := details[row.Groupings.FlowMessageID]; ok {
			record.Message = store.NullFlowMessage{Valid: true, Message: detail.message}
			if detail.experiment != nil {
				record.Experiment = store.NullExperiment{Valid: true, Experiment: *detail.experiment}
			}
		}
		records = append(records, record)
	}
	return records
}
