// Package analytics turns the append-only outreach event log into
// derived metrics: summary counts, time-bucketed series, conversion
// funnels, per-template and per-campaign rollups, and rule-based
// insights, memoized per query options.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"outreach-analytics-service/internal/metrics"
	"outreach-analytics-service/internal/model"
	"outreach-analytics-service/internal/repository"
)

// defaultWindow is the trailing window applied when a query carries no
// usable dates.
const defaultWindow = 30 * 24 * time.Hour

// Engine is the analytics aggregation engine. One instance per caller
// context; the memo cache is private to the instance.
type Engine struct {
	repo    repository.EventRepository
	log     zerolog.Logger
	metrics *metrics.Collector
	cache   *resultCache
	now     func() time.Time
}

// NewEngine constructs an Engine over the given event store.
func NewEngine(repo repository.EventRepository, log zerolog.Logger, collector *metrics.Collector) *Engine {
	return &Engine{
		repo:    repo,
		log:     log,
		metrics: collector,
		cache:   newResultCache(),
		now:     time.Now,
	}
}

// Calculate is the single public entry point. It resolves option
// defaults, consults the cache (unless IncludeRealTime), fetches raw
// events and assembles the full result. It always returns a
// fully-shaped, zero-valued result on empty data, storage failure or
// malformed events — those are expected states, not errors.
func (e *Engine) Calculate(ctx context.Context, opts model.AnalyticsOptions) model.AnalyticsResult {
	groupBy := resolveGroupBy(opts.GroupBy)

	// Key on the options as given, not the resolved window: default-window
	// queries resolve against the clock, and a clock-derived key would
	// never repeat.
	key := cacheKey(opts.StartDate, opts.EndDate, groupBy)

	if !opts.IncludeRealTime {
		if cached, ok := e.cache.get(key); ok {
			e.metrics.CacheHits.Inc()
			return cached
		}
	}
	e.metrics.CacheMisses.Inc()

	startMs, endMs := e.resolveWindow(opts.StartDate, opts.EndDate)
	events := e.RawData(ctx, startMs, endMs)

	began := e.now()
	result := e.compute(events, startMs, endMs, groupBy)
	e.metrics.ComputeDuration.Observe(e.now().Sub(began).Seconds())

	if !opts.IncludeRealTime {
		e.cache.set(key, result, e.now())
	}
	return result
}

// RawData fetches events whose timestamp lies in [startMs, endMs]. A
// storage failure is logged and degrades to an empty dataset; it never
// reaches the caller. Invalid windows fall back to the default one.
func (e *Engine) RawData(ctx context.Context, startMs, endMs int64) []model.Event {
	startMs, endMs = e.resolveWindow(startMs, endMs)

	events, err := e.repo.FetchRange(ctx, time.UnixMilli(startMs), time.UnixMilli(endMs))
	if err != nil {
		e.metrics.StorageErrors.Inc()
		e.log.Error().Err(err).
			Int64("start", startMs).
			Int64("end", endMs).
			Msg("event store read failed, treating window as empty")
		return []model.Event{}
	}

	filtered := events[:0]
	for _, ev := range events {
		if ev.Timestamp >= startMs && ev.Timestamp <= endMs {
			filtered = append(filtered, ev)
		}
	}
	if filtered == nil {
		return []model.Event{}
	}
	return filtered
}

// ClearCache evicts every memoized result.
func (e *Engine) ClearCache() {
	e.cache.clear()
}

// CacheSize reports the number of memoized results.
func (e *Engine) CacheSize() int {
	return e.cache.size()
}

// compute runs every calculator over one fetched window. A panic in a
// calculator (a programming error, not a data state) is contained here
// so the caller still receives a fully-shaped result.
func (e *Engine) compute(events []model.Event, startMs, endMs int64, groupBy string) (result model.AnalyticsResult) {
	result = emptyResult(startMs, endMs, groupBy)
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("analytics computation failed, returning zero-valued result")
			result = emptyResult(startMs, endMs, groupBy)
		}
	}()

	summary := CalculateSummary(events, startMs, endMs)
	performance := CalculatePerformance(events)
	engagement := CalculateEngagement(events)
	conversion := CalculateConversion(events)
	templates := CalculateTemplateMetrics(events)
	campaigns := CalculateCampaignMetrics(events)

	result.Summary = summary
	result.Performance = performance
	result.Engagement = engagement
	result.Conversion = conversion
	result.Templates = templates
	result.Campaigns = campaigns
	result.TimeSeries = BuildTimeSeries(events, groupBy)
	result.Insights = GenerateInsights(summary, performance, engagement, templates, events, startMs, endMs)
	return result
}

// resolveWindow substitutes the default 30-day trailing window for
// missing or inverted dates rather than raising.
func (e *Engine) resolveWindow(startMs, endMs int64) (int64, int64) {
	if startMs <= 0 || endMs <= 0 || startMs > endMs {
		end := e.now().UTC()
		return end.Add(-defaultWindow).UnixMilli(), end.UnixMilli()
	}
	return startMs, endMs
}

func resolveGroupBy(groupBy string) string {
	switch groupBy {
	case model.GroupByHour, model.GroupByDay, model.GroupByWeek:
		return groupBy
	default:
		return model.GroupByDay
	}
}

// emptyResult builds a zero-valued but fully-shaped result: fixed-size
// performance buckets, the full funnel and histogram, empty slices
// instead of nils.
func emptyResult(startMs, endMs int64, groupBy string) model.AnalyticsResult {
	return model.AnalyticsResult{
		Summary:     model.Summary{},
		Performance: CalculatePerformance(nil),
		Engagement:  CalculateEngagement(nil),
		Conversion:  CalculateConversion(nil),
		Templates:   model.TemplateMetrics{Templates: []model.TemplatePerformance{}},
		Campaigns:   model.CampaignMetrics{Campaigns: []model.CampaignPerformance{}},
		TimeSeries:  map[string][]model.TimeSeriesPoint{},
		Insights: model.Insights{
			Insights:        []model.Insight{},
			Recommendations: []model.Insight{},
		},
		Period: model.Period{
			Start: time.UnixMilli(startMs).UTC().Format(time.RFC3339),
			End:   time.UnixMilli(endMs).UTC().Format(time.RFC3339),
		},
		GroupBy: groupBy,
	}
}
