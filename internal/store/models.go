package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// scanJSONB decodes a JSONB column into dst, tolerating NULL.
func scanJSONB(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// StringList is a JSONB-backed list of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSONB(src, l)
}

// CampaignStats is the fixed statistics vector carried by every campaign
// stat record. Every field is always present; metrics the upstream report
// omits stay at zero.
type CampaignStats struct {
	Recipients          float64 `json:"recipients"`
	Delivered           float64 `json:"delivered"`
	DeliveryRate        float64 `json:"delivery_rate"`
	Opens               float64 `json:"opens"`
	OpensUnique         float64 `json:"opens_unique"`
	OpenRate            float64 `json:"open_rate"`
	Clicks              float64 `json:"clicks"`
	ClicksUnique        float64 `json:"clicks_unique"`
	ClickRate           float64 `json:"click_rate"`
	Bounced             float64 `json:"bounced"`
	BounceRate          float64 `json:"bounce_rate"`
	Unsubscribes        float64 `json:"unsubscribes"`
	UnsubscribeRate     float64 `json:"unsubscribe_rate"`
	SpamComplaints      float64 `json:"spam_complaints"`
	SpamComplaintRate   float64 `json:"spam_complaint_rate"`
	Conversions         float64 `json:"conversions"`
	ConversionRate      float64 `json:"conversion_rate"`
	ConversionValue     float64 `json:"conversion_value"`
	AverageOrderValue   float64 `json:"average_order_value"`
	RevenuePerRecipient float64 `json:"revenue_per_recipient"`
}

func (s CampaignStats) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *CampaignStats) Scan(src interface{}) error {
	return scanJSONB(src, s)
}

// FlowStats maps a metric name to its time-series values, one entry per
// reporting interval. Series are aligned positionally with the owning
// account's report_date_times.
type FlowStats map[string][]float64

func (s FlowStats) Value() (driver.Value, error) {
	if s == nil {
		s = FlowStats{}
	}
	return json.Marshal(s)
}

func (s *FlowStats) Scan(src interface{}) error {
	return scanJSONB(src, s)
}

// FlowMessageDetails describes a single flow send-step, extracted from the
// flow definition document.
type FlowMessageDetails struct {
	Name         string `json:"name"`
	FromEmail    string `json:"from_email,omitempty"`
	FromLabel    string `json:"from_label,omitempty"`
	Subject      string `json:"subject,omitempty"`
	PreviewText  string `json:"preview_text,omitempty"`
	TemplateID   string `json:"template_id,omitempty"`
	Transactional bool  `json:"transactional"`
	SmartSending  bool  `json:"smart_sending"`
}

// NullFlowMessage is a nullable JSONB FlowMessageDetails column. Flow stat
// rows whose flow definition was not fetched carry no message details.
type NullFlowMessage struct {
	Valid   bool
	Message FlowMessageDetails
}

func (n NullFlowMessage) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return json.Marshal(n.Message)
}

func (n *NullFlowMessage) Scan(src interface{}) error {
	if src == nil {
		n.Valid = false
		return nil
	}
	if err := scanJSONB(src, &n.Message); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n NullFlowMessage) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Message)
}

// ExperimentVariation is one A/B test arm with its traffic allocation.
type ExperimentVariation struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	AllocationPercent float64            `json:"allocation_percent"`
	Message           FlowMessageDetails `json:"message"`
}

// ExperimentDetails describes the A/B test a flow message belongs to.
type ExperimentDetails struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Status       string                `json:"status"`
	WinnerMetric string                `json:"winner_metric"`
	Variations   []ExperimentVariation `json:"variations"`
}

// NullExperiment is a nullable JSONB ExperimentDetails column.
type NullExperiment struct {
	Valid      bool
	Experiment ExperimentDetails
}

func (n NullExperiment) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return json.Marshal(n.Experiment)
}

func (n *NullExperiment) Scan(src interface{}) error {
	if src == nil {
		n.Valid = false
		return nil
	}
	if err := scanJSONB(src, &n.Experiment); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n NullExperiment) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Experiment)
}

// Account is a tenant with its own Klaviyo integration and stat records.
// is_syncing is the per-account sync mutual-exclusion flag; it is true for
// the entire duration of an active sync and false otherwise.
type Account struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	PublicID           string     `db:"public_id" json:"public_id"`
	Name               string     `db:"name" json:"name"`
	KlaviyoAPIKey      *string    `db:"klaviyo_api_key" json:"-"`
	ConversionMetricID *string    `db:"conversion_metric_id" json:"-"`
	LastSyncedAt       *time.Time `db:"last_synced_at" json:"last_synced_at"`
	IsSyncing          bool       `db:"is_syncing" json:"is_syncing"`
	TagNames           StringList `db:"tag_names" json:"tag_names"`
	ReportDateTimes    StringList `db:"report_date_times" json:"report_date_times"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// CampaignStatRecord holds the normalized statistics for one campaign
// message, uniquely identified by (account_id, campaign_id).
type CampaignStatRecord struct {
	ID                    uuid.UUID     `db:"id" json:"id"`
	AccountID             uuid.UUID     `db:"account_id" json:"account_id"`
	CampaignID            string        `db:"campaign_id" json:"campaign_id"`
	CampaignMessageID     string        `db:"campaign_message_id" json:"campaign_message_id"`
	Channel               string        `db:"channel" json:"channel"`
	CampaignName          string        `db:"campaign_name" json:"campaign_name"`
	Stats                 CampaignStats `db:"stats" json:"stats"`
	IncludedAudienceIDs   StringList    `db:"included_audience_ids" json:"included_audience_ids"`
	IncludedAudienceNames StringList    `db:"included_audience_names" json:"included_audience_names"`
	ExcludedAudienceIDs   StringList    `db:"excluded_audience_ids" json:"excluded_audience_ids"`
	ExcludedAudienceNames StringList    `db:"excluded_audience_names" json:"excluded_audience_names"`
	TagIDs                StringList    `db:"tag_ids" json:"tag_ids"`
	TagNames              StringList    `db:"tag_names" json:"tag_names"`
	CampaignCreatedAt     *time.Time    `db:"campaign_created_at" json:"campaign_created_at"`
	CampaignScheduledAt   *time.Time    `db:"campaign_scheduled_at" json:"campaign_scheduled_at"`
	CampaignSendTime      *time.Time    `db:"campaign_send_time" json:"campaign_send_time"`
	CreatedAt             time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time     `db:"updated_at" json:"updated_at"`
}

// FlowStatRecord holds the normalized time-series statistics for one flow
// message on one channel, uniquely identified by
// (account_id, flow_id, flow_message_id, channel).
type FlowStatRecord struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	AccountID     uuid.UUID       `db:"account_id" json:"account_id"`
	FlowID        string          `db:"flow_id" json:"flow_id"`
	FlowMessageID string          `db:"flow_message_id" json:"flow_message_id"`
	Channel       string          `db:"channel" json:"channel"`
	FlowName      string          `db:"flow_name" json:"flow_name"`
	FlowStatus    string          `db:"flow_status" json:"flow_status"`
	Archived      bool            `db:"archived" json:"archived"`
	TriggerType   string          `db:"trigger_type" json:"trigger_type"`
	FlowCreatedAt *time.Time      `db:"flow_created_at" json:"flow_created_at"`
	FlowUpdatedAt *time.Time      `db:"flow_updated_at" json:"flow_updated_at"`
	TagIDs        StringList      `db:"tag_ids" json:"tag_ids"`
	TagNames      StringList      `db:"tag_names" json:"tag_names"`
	Stats         FlowStats       `db:"stats" json:"stats"`
	Message       NullFlowMessage `db:"message" json:"message"`
	Experiment    NullExperiment  `db:"experiment" json:"experiment"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Permissions a user can hold on an account. Admin implies all permissions.
const (
	PermissionAdmin         = "ADMIN"
	PermissionViewAnalytics = "VIEW_ANALYTICS"
)

// AccountGrant is one account a user can act on and the permissions held.
type AccountGrant struct {
	AccountID       uuid.UUID `json:"account_id"`
	AccountPublicID string    `json:"account_public_id"`
	Permissions     []string  `json:"permissions"`
}

// AccountGrants is the JSONB-backed list of a user's account grants.
type AccountGrants []AccountGrant

func (g AccountGrants) Value() (driver.Value, error) {
	if g == nil {
		g = AccountGrants{}
	}
	return json.Marshal(g)
}

func (g *AccountGrants) Scan(src interface{}) error {
	return scanJSONB(src, g)
}

// User is read-only from this service's perspective; grants are provisioned
// elsewhere.
type User struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	Email     string        `db:"email" json:"email"`
	Grants    AccountGrants `db:"grants" json:"grants"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}
