package analytics

import (
	"math"
	"sort"
	"time"

	"outreach-analytics-service/internal/model"
)

const (
	hourMs = int64(time.Hour / time.Millisecond)
	dayMs  = 24 * hourMs
	weekMs = 7 * dayMs
)

// bucketStart floors an epoch-ms timestamp to its period boundary.
// Weeks start Monday 00:00 UTC; 1970-01-01 was a Thursday, so the epoch
// day index is shifted by 3 before the modulo.
func bucketStart(ts int64, groupBy string) int64 {
	switch groupBy {
	case model.GroupByHour:
		return ts - ts%hourMs
	case model.GroupByWeek:
		day := ts / dayMs
		return (day - (day+3)%7) * dayMs
	default:
		return ts - ts%dayMs
	}
}

// bucketLabel renders a bucket boundary for time-series output.
func bucketLabel(ts int64, groupBy string) string {
	t := time.UnixMilli(ts).UTC()
	if groupBy == model.GroupByHour {
		return t.Format("2006-01-02 15:00")
	}
	return t.Format("2006-01-02")
}

// GroupDataByTime groups events into fixed-width periods keyed by the
// period-start epoch ms. Only periods actually present get a bucket;
// events without a usable type or timestamp are skipped. Every
// well-formed event lands in exactly one bucket.
func GroupDataByTime(events []model.Event, groupBy string) map[int64][]model.Event {
	buckets := make(map[int64][]model.Event)
	for _, ev := range events {
		if !ev.Valid() {
			continue
		}
		key := bucketStart(ev.Timestamp, groupBy)
		buckets[key] = append(buckets[key], ev)
	}
	return buckets
}

// BuildTimeSeries produces, per event type, one point per occupied
// bucket ordered by timestamp ascending. Types absent from the window
// produce no series.
func BuildTimeSeries(events []model.Event, groupBy string) map[string][]model.TimeSeriesPoint {
	buckets := GroupDataByTime(events, groupBy)

	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	series := make(map[string][]model.TimeSeriesPoint)
	for _, k := range keys {
		counts := make(map[string]int)
		for _, ev := range buckets[k] {
			counts[ev.Type]++
		}
		label := bucketLabel(k, groupBy)
		for typ, n := range counts {
			series[typ] = append(series[typ], model.TimeSeriesPoint{
				Timestamp: k,
				Date:      label,
				Value:     n,
			})
		}
	}
	return series
}

// round2 rounds half-up (away from zero) to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pct returns part/whole as a percentage rounded to two decimals, and 0
// when the denominator is zero. Never NaN or Inf.
func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}
