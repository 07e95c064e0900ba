package analytics

import "outreach-analytics-service/internal/model"

// Funnel stage names, in fixed order.
var funnelStageNames = []string{
	"Connections Sent",
	"Connections Accepted",
	"Messages Sent",
	"Responses Received",
}

// Response-time histogram ranges; all five labels are always emitted.
var histogramRanges = []struct {
	label string
	maxMs int64
}{
	{"< 1 hour", hourMs},
	{"1-6 hours", 6 * hourMs},
	{"6-24 hours", dayMs},
	{"1-3 days", 3 * dayMs},
	{"> 3 days", 1<<63 - 1},
}

// CalculateConversion builds the four-stage funnel and its drop-off
// analysis. Stage 1 rate is 100 by definition; later stages are rated
// against stage 1. DropOff always has len(stages)-1 entries.
func CalculateConversion(events []model.Event) model.Conversion {
	counts := make([]int, len(funnelStageNames))
	for _, ev := range events {
		if !ev.Valid() {
			continue
		}
		switch ev.Type {
		case model.EventConnectionSent:
			counts[0]++
		case model.EventConnectionAccepted:
			counts[1]++
		case model.EventMessageSent:
			counts[2]++
		case model.EventResponseReceived:
			counts[3]++
		}
	}

	funnel := make([]model.FunnelStage, len(funnelStageNames))
	for i, name := range funnelStageNames {
		rate := pct(counts[i], counts[0])
		if i == 0 {
			rate = 100
		}
		funnel[i] = model.FunnelStage{Name: name, Count: counts[i], Rate: rate}
	}

	dropOff := make([]model.DropOff, len(funnel)-1)
	for i := range dropOff {
		cur, next := funnel[i], funnel[i+1]
		dropOff[i] = model.DropOff{
			From:         cur.Name,
			To:           next.Name,
			Lost:         cur.Count - next.Count,
			PointLoss:    round2(cur.Rate - next.Rate),
			RelativeLoss: pct(cur.Count-next.Count, cur.Count),
		}
	}

	return model.Conversion{Funnel: funnel, DropOff: dropOff}
}

// CalculateEngagement computes cross-stage ratios, response timing and
// the overall engagement score. ViewToConnectionRate is the literal
// connections/views ratio; when connection events outnumber sampled
// profile views it exceeds 100 and is reported as computed.
func CalculateEngagement(events []model.Event) model.Engagement {
	var views, connections, accepted, messages, responses int
	sentAt := make(map[string]int64)
	respondedAt := make(map[string]int64)

	for _, ev := range events {
		if !ev.Valid() {
			continue
		}
		switch ev.Type {
		case model.EventProfileView:
			views++
		case model.EventConnectionSent:
			connections++
		case model.EventConnectionAccepted:
			accepted++
		case model.EventMessageSent:
			messages++
			if ev.MessageID != "" {
				if _, seen := sentAt[ev.MessageID]; !seen {
					sentAt[ev.MessageID] = ev.Timestamp
				}
			}
		case model.EventResponseReceived:
			responses++
			if ev.MessageID != "" {
				if _, seen := respondedAt[ev.MessageID]; !seen {
					respondedAt[ev.MessageID] = ev.Timestamp
				}
			}
		}
	}

	histogram := make([]model.HistogramBucket, len(histogramRanges))
	for i, r := range histogramRanges {
		histogram[i].Label = r.label
	}

	var totalDelta int64
	var matched int
	for id, sent := range sentAt {
		resp, ok := respondedAt[id]
		if !ok {
			continue
		}
		delta := resp - sent
		// A response stamped before its message is inconsistent input;
		// skip the pair like any other malformed event.
		if delta < 0 {
			continue
		}
		totalDelta += delta
		matched++
		for i, r := range histogramRanges {
			if delta < r.maxMs {
				histogram[i].Count++
				break
			}
		}
	}

	var avgResponse float64
	if matched > 0 {
		avgResponse = round2(float64(totalDelta) / float64(matched))
	}

	acceptanceRate := pct(accepted, connections)
	responseRate := pct(responses, messages)

	depth := 0
	for _, n := range []int{connections, accepted, messages, responses} {
		if n > 0 {
			depth++
		}
	}
	funnelDepth := float64(depth) / float64(len(funnelStageNames)) * 100

	score := 0.4*acceptanceRate + 0.3*responseRate + 0.3*funnelDepth
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return model.Engagement{
		ViewToConnectionRate:    pct(connections, views),
		ConnectionToMessageRate: pct(messages, connections),
		AvgResponseTimeMs:       avgResponse,
		ResponseTimeHistogram:   histogram,
		EngagementScore:         round2(score),
	}
}
