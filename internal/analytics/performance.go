package analytics

import "outreach-analytics-service/internal/model"

// CalculatePerformance breaks connection acceptance down into exactly
// 24 hourly buckets and exactly 7 weekday buckets (Sunday=0), all
// pre-populated. Best hour/day pick the maximum rate; ties resolve to
// the lowest bucket index.
func CalculatePerformance(events []model.Event) model.Performance {
	hourly := make([]model.RateBucket, 24)
	for i := range hourly {
		hourly[i].Bucket = i
	}
	daily := make([]model.RateBucket, 7)
	for i := range daily {
		daily[i].Bucket = i
	}

	for _, ev := range events {
		if !ev.Valid() {
			continue
		}
		h := hourOfDay(ev.Timestamp)
		d := dayOfWeek(ev.Timestamp)
		switch ev.Type {
		case model.EventConnectionSent:
			hourly[h].Connections++
			daily[d].Connections++
		case model.EventConnectionAccepted:
			hourly[h].Accepted++
			daily[d].Accepted++
		}
	}

	for i := range hourly {
		hourly[i].Rate = pct(hourly[i].Accepted, hourly[i].Connections)
	}
	for i := range daily {
		daily[i].Rate = pct(daily[i].Accepted, daily[i].Connections)
	}

	return model.Performance{
		HourlyAcceptance: hourly,
		DailyAcceptance:  daily,
		BestHour:         bestBucket(hourly),
		BestDay:          bestBucket(daily),
	}
}

func hourOfDay(ts int64) int {
	return int((ts % dayMs) / hourMs)
}

// dayOfWeek maps an epoch-ms timestamp to a weekday index with
// Sunday=0. The epoch fell on a Thursday, hence the +4 shift.
func dayOfWeek(ts int64) int {
	return int((ts/dayMs + 4) % 7)
}

// bestBucket returns the index of the first bucket with the maximum
// rate, so ties deterministically break toward the lowest index.
func bestBucket(buckets []model.RateBucket) int {
	best := 0
	for i, b := range buckets {
		if b.Rate > buckets[best].Rate {
			best = i
		}
	}
	return best
}
