package klaviyo

import (
	"encoding/json"
	"time"
)

// JSON:API envelope shared by every collection endpoint.
type collectionEnvelope struct {
	Data     []apiObject `json:"data"`
	Included []apiObject `json:"included"`
	Links    pageLinks   `json:"links"`
}

type pageLinks struct {
	Next string `json:"next"`
}

type apiObject struct {
	Type          string          `json:"type"`
	ID            string          `json:"id"`
	Attributes    json.RawMessage `json:"attributes"`
	Relationships relationships   `json:"relationships"`
}

type relationships struct {
	Tags relationshipList `json:"tags"`
}

type relationshipList struct {
	Data []relationshipRef `json:"data"`
}

type relationshipRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Report responses nest their paginated results under data.attributes,
// not in the top-level data array.
type reportEnvelope struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			Results   []json.RawMessage `json:"results"`
			DateTimes []string          `json:"date_times"`
		} `json:"attributes"`
	} `json:"data"`
	Links pageLinks `json:"links"`
}

type reportPayload struct {
	Data struct {
		Type       string           `json:"type"`
		Attributes reportAttributes `json:"attributes"`
	} `json:"data"`
}

type reportAttributes struct {
	Timeframe          reportTimeframe `json:"timeframe"`
	Interval           string          `json:"interval,omitempty"`
	ConversionMetricID string          `json:"conversion_metric_id"`
	Statistics         []string        `json:"statistics"`
}

type reportTimeframe struct {
	Key string `json:"key"`
}

// Per-resource attribute schemas. Malformed upstream payloads fail parsing
// instead of silently yielding absent fields.

type campaignAttributes struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Audiences struct {
		Included []string `json:"included"`
		Excluded []string `json:"excluded"`
	} `json:"audiences"`
	CreatedAt   *time.Time `json:"created_at"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	SendTime    *time.Time `json:"send_time"`
}

type flowAttributes struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Archived    bool       `json:"archived"`
	TriggerType string     `json:"trigger_type"`
	Created     *time.Time `json:"created"`
	Updated     *time.Time `json:"updated"`
}

type nameAttributes struct {
	Name string `json:"name"`
}

type flowDefinitionAttributes struct {
	Definition struct {
		Actions []FlowAction `json:"actions"`
	} `json:"definition"`
}

// Campaign is one campaign with denormalizable metadata.
type Campaign struct {
	ID                string
	Name              string
	Status            string
	Channel           string
	IncludedAudiences []string
	ExcludedAudiences []string
	TagIDs            []string
	CreatedAt         *time.Time
	ScheduledAt       *time.Time
	SendTime          *time.Time
}

// Flow is one automation flow's metadata.
type Flow struct {
	ID          string
	Name        string
	Status      string
	TriggerType string
	Archived    bool
	TagIDs      []string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// Tag is a tag id/name pair.
type Tag struct {
	ID   string
	Name string
}

// Audience is a segment or list id/name pair; both resolve campaign
// audience references.
type Audience struct {
	ID   string
	Name string
}

// CampaignGrouping identifies which campaign message a report row belongs to.
type CampaignGrouping struct {
	SendChannel       string `json:"send_channel"`
	CampaignID        string `json:"campaign_id"`
	CampaignMessageID string `json:"campaign_message_id"`
}

// CampaignReportRow is one scalar-statistics row of the campaign values report.
type CampaignReportRow struct {
	Groupings  CampaignGrouping   `json:"groupings"`
	Statistics map[string]float64 `json:"statistics"`
}

// CampaignReport is the collected campaign values report.
type CampaignReport struct {
	Rows []CampaignReportRow
}

// FlowGrouping identifies which flow message a series row belongs to.
type FlowGrouping struct {
	SendChannel   string `json:"send_channel"`
	FlowID        string `json:"flow_id"`
	FlowMessageID string `json:"flow_message_id"`
}

// FlowReportRow is one time-series row of the flow series report; each
// statistic holds one value per reporting interval.
type FlowReportRow struct {
	Groupings  FlowGrouping         `json:"groupings"`
	Statistics map[string][]float64 `json:"statistics"`
}

// FlowReport is the collected flow series report. DateTimes carries the
// interval timestamps every row's series aligns with positionally.
type FlowReport struct {
	Rows      []FlowReportRow
	DateTimes []string
}

// FlowDefinition is the action tree of one flow.
type FlowDefinition struct {
	ID      string
	Actions []FlowAction
}

// FlowAction is one node of a flow definition. A message can appear in one
// of three shapes: directly on the action, as the main action of an A/B
// test, or inside one of the test's experiment variations.
type FlowAction struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	Message           *FlowMessage    `json:"message"`
	MainAction        *FlowMainAction `json:"main_action"`
	CurrentExperiment *Experiment     `json:"current_experiment"`
}

// FlowMainAction wraps the message an A/B test falls back to.
type FlowMainAction struct {
	Message *FlowMessage `json:"message"`
}

// FlowMessage carries the descriptive attributes of one flow send-step.
type FlowMessage struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	FromEmail     string `json:"from_email"`
	FromLabel     string `json:"from_label"`
	Subject       string `json:"subject"`
	PreviewText   string `json:"preview_text"`
	TemplateID    string `json:"template_id"`
	Transactional bool   `json:"transactional"`
	SmartSending  bool   `json:"smart_sending"`
}

// Experiment describes an A/B test and its variations.
type Experiment struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Status       string      `json:"status"`
	WinnerMetric string      `json:"winner_metric"`
	Variations   []Variation `json:"variations"`
}

// Variation is one experiment arm with its traffic allocation.
type Variation struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	AllocationPercent float64      `json:"allocation_percent"`
	Message           *FlowMessage `json:"message"`
}
