package klaviyo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"statsync-server/internal/observability"
	"statsync-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://a.klaviyo.com/api"
	apiRevision    = "2024-10-15"

	// maxPages caps link-following so a pathological or looping next link
	// cannot run unbounded.
	maxPages = 50
)

// reportStatistics is the fixed statistic set requested from both report
// endpoints. The names double as keys in persisted stat documents.
var reportStatistics = []string{
	"recipients",
	"delivered",
	"delivery_rate",
	"opens",
	"opens_unique",
	"open_rate",
	"clicks",
	"clicks_unique",
	"click_rate",
	"bounced",
	"bounce_rate",
	"unsubscribes",
	"unsubscribe_rate",
	"spam_complaints",
	"spam_complaint_rate",
	"conversions",
	"conversion_rate",
	"conversion_value",
	"average_order_value",
	"revenue_per_recipient",
}

// ErrPaginationExceeded reports that a paginated endpoint produced more
// pages than the safety threshold allows.
var ErrPaginationExceeded = errors.New("pagination exceeded safety threshold")

// RequestError is a non-2xx response from the Klaviyo API.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("klaviyo request failed with status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the Klaviyo API on behalf of one account.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	scheduler  ratelimit.Config
	logger     *observability.Logger
}

// NewClient creates a Klaviyo client bound to one account's API key.
func NewClient(apiKey string, logger *observability.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// authorization picks the header scheme by key shape: private keys carry
// the pk_ prefix, everything else is treated as an OAuth token.
func (c *Client) authorization() string {
	if strings.HasPrefix(c.apiKey, "pk_") {
		return "Klaviyo-API-Key " + c.apiKey
	}
	return "Bearer " + c.apiKey
}

// url resolves a path against the base URL. Pagination next links arrive
// absolute and pass through unchanged.
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.baseURL + path
}

func (c *Client) do(ctx context.Context, method, url string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization())
	req.Header.Set("Revision", apiRevision)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// fetchAllPages GETs a collection endpoint and follows next links,
// concatenating data and included objects across pages.
func (c *Client) fetchAllPages(ctx context.Context, path string) (*collectionEnvelope, error) {
	combined := &collectionEnvelope{}
	next := c.url(path)
	for page := 0; next != ""; page++ {
		if page >= maxPages {
			return nil, ErrPaginationExceeded
		}
		raw, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}
		var env collectionEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("failed to parse collection page: %w", err)
		}
		combined.Data = append(combined.Data, env.Data...)
		combined.Included = append(combined.Included, env.Included...)
		next = env.Links.Next
	}
	return combined, nil
}

// submitReportAndCollect POSTs a report request and follows next links,
// re-submitting the same payload for each page and concatenating the
// results. The interval timestamps come from the first page.
func (c *Client) submitReportAndCollect(ctx context.Context, path string, payload interface{}) ([]json.RawMessage, []string, error) {
	var results []json.RawMessage
	var dateTimes []string
	next := c.url(path)
	for page := 0; next != ""; page++ {
		if page >= maxPages {
			return nil, nil, ErrPaginationExceeded
		}
		raw, err := c.do(ctx, http.MethodPost, next, payload)
		if err != nil {
			return nil, nil, err
		}
		var env reportEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, nil, fmt.Errorf("failed to parse report page: %w", err)
		}
		results = append(results, env.Data.Attributes.Results...)
		if page == 0 {
			dateTimes = env.Data.Attributes.DateTimes
		}
		next = env.Links.Next
	}
	return results, dateTimes, nil
}

func tagIDs(rel relationships) []string {
	ids := make([]string, 0, len(rel.Tags.Data))
	for _, ref := range rel.Tags.Data {
		ids = append(ids, ref.ID)
	}
	return ids
}

// Campaigns lists every campaign on the given channel with its tag
// relationships resolved to ids.
func (c *Client) Campaigns(ctx context.Context, channel string) ([]Campaign, error) {
	path := fmt.Sprintf("/campaigns?filter=equals(messages.channel,'%s')&include=tags", channel)
	env, err := c.fetchAllPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s campaigns: %w", channel, err)
	}

	campaigns := make([]Campaign, 0, len(env.Data))
	for _, obj := range env.Data {
		var attrs campaignAttributes
		if err := json.Unmarshal(obj.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("failed to parse campaign %s: %w", obj.ID, err)
		}
		campaigns = append(campaigns, Campaign{
			ID:                obj.ID,
			Name:              attrs.Name,
			Status:            attrs.Status,
			Channel:           channel,
			IncludedAudiences: attrs.Audiences.Included,
			ExcludedAudiences: attrs.Audiences.Excluded,
			TagIDs:            tagIDs(obj.Relationships),
			CreatedAt:         attrs.CreatedAt,
			ScheduledAt:       attrs.ScheduledAt,
			SendTime:          attrs.SendTime,
		})
	}
	return campaigns, nil
}

// Flows lists every flow with its tag relationships resolved to ids.
func (c *Client) Flows(ctx context.Context) ([]Flow, error) {
	env, err := c.fetchAllPages(ctx, "/flows?include=tags")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flows: %w", err)
	}

	flows := make([]Flow, 0, len(env.Data))
	for _, obj := range env.Data {
		var attrs flowAttributes
		if err := json.Unmarshal(obj.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("failed to parse flow %s: %w", obj.ID, err)
		}
		flows = append(flows, Flow{
			ID:          obj.ID,
			Name:        attrs.Name,
			Status:      attrs.Status,
			TriggerType: attrs.TriggerType,
			Archived:    attrs.Archived,
			TagIDs:      tagIDs(obj.Relationships),
			CreatedAt:   attrs.Created,
			UpdatedAt:   attrs.Updated,
		})
	}
	return flows, nil
}

// Tags lists every tag in the account.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	env, err := c.fetchAllPages(ctx, "/tags")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}

	tags := make([]Tag, 0, len(env.Data))
	for _, obj := range env.Data {
		var attrs nameAttributes
		if err := json.Unmarshal(obj.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("failed to parse tag %s: %w", obj.ID, err)
		}
		tags = append(tags, Tag{ID: obj.ID, Name: attrs.Name})
	}
	return tags, nil
}

// Segments lists every segment in the account.
func (c *Client) Segments(ctx context.Context) ([]Audience, error) {
	return c.audiences(ctx, "/segments")
}

// Lists lists every list in the account.
func (c *Client) Lists(ctx context.Context) ([]Audience, error) {
	return c.audiences(ctx, "/lists")
}

func (c *Client) audiences(ctx context.Context, path string) ([]Audience, error) {
	env, err := c.fetchAllPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", strings.TrimPrefix(path, "/"), err)
	}

	audiences := make([]Audience, 0, len(env.Data))
	for _, obj := range env.Data {
		var attrs nameAttributes
		if err := json.Unmarshal(obj.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("failed to parse audience %s: %w", obj.ID, err)
		}
		audiences = append(audiences, Audience{ID: obj.ID, Name: attrs.Name})
	}
	return audiences, nil
}

func newReportPayload(reportType, timeframe, interval, conversionMetricID string) reportPayload {
	var payload reportPayload
	payload.Data.Type = reportType
	payload.Data.Attributes = reportAttributes{
		Timeframe:          reportTimeframe{Key: timeframe},
		Interval:           interval,
		ConversionMetricID: conversionMetricID,
		Statistics:         reportStatistics,
	}
	return payload
}

// CampaignValuesReport collects per-campaign scalar statistics over the
// last twelve months.
func (c *Client) CampaignValuesReport(ctx context.Context, conversionMetricID string) (CampaignReport, error) {
	payload := newReportPayload("campaign-values-report", "last_12_months", "", conversionMetricID)
	results, _, err := c.submitReportAndCollect(ctx, "/campaign-values-reports", payload)
	if err != nil {
		return CampaignReport{}, fmt.Errorf("failed to fetch campaign values report: %w", err)
	}

	rows := make([]CampaignReportRow, 0, len(results))
	for _, raw := range results {
		var row CampaignReportRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return CampaignReport{}, fmt.Errorf("failed to parse campaign report row: %w", err)
		}
		rows = append(rows, row)
	}
	return CampaignReport{Rows: rows}, nil
}

// FlowSeriesReport collects daily per-flow-message statistics over the
// last sixty days.
func (c *Client) FlowSeriesReport(ctx context.Context, conversionMetricID string) (FlowReport, error) {
	payload := newReportPayload("flow-series-report", "last_60_days", "daily", conversionMetricID)
	results, dateTimes, err := c.submitReportAndCollect(ctx, "/flow-series-reports", payload)
	if err != nil {
		return FlowReport{}, fmt.Errorf("failed to fetch flow series report: %w", err)
	}

	rows := make([]FlowReportRow, 0, len(results))
	for _, raw := range results {
		var row FlowReportRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return FlowReport{}, fmt.Errorf("failed to parse flow report row: %w", err)
		}
		rows = append(rows, row)
	}
	return FlowReport{Rows: rows, DateTimes: dateTimes}, nil
}

// FlowDefinition fetches one flow with its full definition expanded.
func (c *Client) FlowDefinition(ctx context.Context, flowID string) (FlowDefinition, error) {
	raw, err := c.do(ctx, http.MethodGet, c.url("/flows/"+flowID+"?additional-fields[flow]=definition"), nil)
	if err != nil {
		return FlowDefinition{}, fmt.Errorf("failed to fetch flow definition %s: %w", flowID, err)
	}

	var env struct {
		Data apiObject `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return FlowDefinition{}, fmt.Errorf("failed to parse flow definition %s: %w", flowID, err)
	}
	var attrs flowDefinitionAttributes
	if err := json.Unmarshal(env.Data.Attributes, &attrs); err != nil {
		return FlowDefinition{}, fmt.Errorf("failed to parse flow definition %s: %w", flowID, err)
	}
	return FlowDefinition{ID: env.Data.ID, Actions: attrs.Definition.Actions}, nil
}

// FlowDefinitions fetches definitions for the given flows under the
// endpoint's burst/steady quota. Individual failures are logged by the
// scheduler and excluded; callers tolerate a partial set.
func (c *Client) FlowDefinitions(ctx context.Context, flowIDs []string) ([]FlowDefinition, error) {
	definitions, _ := ratelimit.FetchAll(ctx, flowIDs, c.scheduler, c.logger, c.FlowDefinition)
	if err := ctx.Err(); err != nil {
		return definitions, err
	}
	return definitions, nil
}
