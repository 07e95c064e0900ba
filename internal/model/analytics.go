package model

// Supported time-bucket granularities.
const (
	GroupByHour = "hour"
	GroupByDay  = "day"
	GroupByWeek = "week"
)

// AnalyticsOptions selects the window and shape of an analytics query.
// Zero or inverted dates fall back to a 30-day trailing window, an
// unknown GroupBy falls back to day. IncludeRealTime bypasses the
// result cache entirely.
type AnalyticsOptions struct {
	StartDate       int64  `json:"start_date"` // epoch ms, inclusive
	EndDate         int64  `json:"end_date"`   // epoch ms, inclusive
	GroupBy         string `json:"group_by"`
	IncludeRealTime bool   `json:"include_real_time"`
}

// Period captures the resolved query window.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary holds whole-window counts and rates.
type Summary struct {
	TotalConnections     int     `json:"total_connections"`
	AcceptedConnections  int     `json:"accepted_connections"`
	DeclinedConnections  int     `json:"declined_connections"`
	PendingConnections   int     `json:"pending_connections"`
	AcceptanceRate       float64 `json:"acceptance_rate"`
	TotalMessages        int     `json:"total_messages"`
	ReceivedResponses    int     `json:"received_responses"`
	ResponseRate         float64 `json:"response_rate"`
	AvgConnectionsPerDay float64 `json:"avg_connections_per_day"`
	AvgMessagesPerDay    float64 `json:"avg_messages_per_day"`
}

// RateBucket is one fixed periodic slot (hour of day or day of week).
type RateBucket struct {
	Bucket      int     `json:"bucket"`
	Connections int     `json:"connections"`
	Accepted    int     `json:"accepted"`
	Rate        float64 `json:"rate"`
}

// Performance breaks acceptance down by hour of day and day of week.
// HourlyAcceptance always has 24 entries and DailyAcceptance 7
// (Sunday=0), pre-populated even when no connections occurred.
type Performance struct {
	HourlyAcceptance []RateBucket `json:"hourly_acceptance"`
	DailyAcceptance  []RateBucket `json:"daily_acceptance"`
	BestHour         int          `json:"best_hour"`
	BestDay          int          `json:"best_day"`
}

// FunnelStage is one step of the outreach conversion funnel. Rate is
// relative to the first stage; the first stage is always 100.
type FunnelStage struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// DropOff describes the loss between two consecutive funnel stages.
type DropOff struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Lost         int     `json:"lost"`
	PointLoss    float64 `json:"point_loss"`
	RelativeLoss float64 `json:"relative_loss"`
}

// Conversion holds the funnel and its stage-to-stage drop-off.
type Conversion struct {
	Funnel  []FunnelStage `json:"funnel"`
	DropOff []DropOff     `json:"drop_off"`
}

// HistogramBucket is one named range of the response-time histogram.
type HistogramBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Engagement holds cross-stage ratios and response-time metrics.
// ViewToConnectionRate is the literal connections/views ratio and can
// exceed 100 when connections outnumber sampled profile views; it is
// reported as computed, not clamped.
type Engagement struct {
	ViewToConnectionRate    float64           `json:"view_to_connection_rate"`
	ConnectionToMessageRate float64           `json:"connection_to_message_rate"`
	AvgResponseTimeMs       float64           `json:"avg_response_time_ms"`
	ResponseTimeHistogram   []HistogramBucket `json:"response_time_histogram"`
	EngagementScore         float64           `json:"engagement_score"`
}

// TemplatePerformance is the per-template rollup.
type TemplatePerformance struct {
	TemplateID     string  `json:"template_id"`
	TemplateName   string  `json:"template_name,omitempty"`
	Usage          int     `json:"usage"`
	Accepted       int     `json:"accepted"`
	Declined       int     `json:"declined"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

// TemplateMetrics lists templates by usage descending.
type TemplateMetrics struct {
	Templates      []TemplatePerformance `json:"templates"`
	BestPerforming *TemplatePerformance  `json:"best_performing,omitempty"`
}

// CampaignPerformance is the per-campaign rollup. DurationMs is zero
// until both start and completion events are present.
type CampaignPerformance struct {
	CampaignID      string  `json:"campaign_id"`
	Events          int     `json:"events"`
	ConnectionsSent int     `json:"connections_sent"`
	Accepted        int     `json:"accepted"`
	AcceptanceRate  float64 `json:"acceptance_rate"`
	DurationMs      int64   `json:"duration_ms,omitempty"`
}

// CampaignMetrics lists campaigns and the mean duration of the ones
// with paired start/completion events.
type CampaignMetrics struct {
	Campaigns             []CampaignPerformance `json:"campaigns"`
	AvgCampaignDurationMs float64               `json:"avg_campaign_duration_ms"`
}

// TimeSeriesPoint is one bucket value for one event type, ordered by
// timestamp ascending. Recomputed from scratch each call.
type TimeSeriesPoint struct {
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
	Value     int    `json:"value"`
}

// Insight is a tagged, human-readable observation or suggested action
// derived from threshold rules. Plain record: Type selects the shape.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
}

// KeyMetrics is the headline numbers block of the insights section.
type KeyMetrics struct {
	TotalConnections   int     `json:"total_connections"`
	AcceptanceRate     float64 `json:"acceptance_rate"`
	ResponseRate       float64 `json:"response_rate"`
	WeekOverWeekGrowth float64 `json:"week_over_week_growth"`
}

// Insights groups generated insights, recommendations and key metrics.
type Insights struct {
	Insights        []Insight  `json:"insights"`
	Recommendations []Insight  `json:"recommendations"`
	KeyMetrics      KeyMetrics `json:"key_metrics"`
}

// AnalyticsResult is the full assembled analytics payload. It is plain,
// JSON-serializable data; every section is present (zero-valued) even
// when the window held no events.
type AnalyticsResult struct {
	Summary     Summary                      `json:"summary"`
	Performance Performance                  `json:"performance"`
	Engagement  Engagement                   `json:"engagement"`
	Conversion  Conversion                   `json:"conversion"`
	Templates   TemplateMetrics              `json:"templates"`
	Campaigns   CampaignMetrics              `json:"campaigns"`
	TimeSeries  map[string][]TimeSeriesPoint `json:"time_series"`
	Insights    Insights                     `json:"insights"`
	Period      Period                       `json:"period"`
	GroupBy     string                       `json:"group_by"`
}
