package analytics

import (
	"sort"

	"outreach-analytics-service/internal/model"
)

// CalculateTemplateMetrics rolls events up by template id. Usage counts
// template_used events; acceptance rate is accepted outcomes over
// usage. Results sort by usage descending with insertion order kept on
// ties; the best performer is the highest acceptance rate among
// templates actually used.
func CalculateTemplateMetrics(events []model.Event) model.TemplateMetrics {
	byID := make(map[string]*model.TemplatePerformance)
	var order []string

	for _, ev := range events {
		if !ev.Valid() || ev.TemplateID == "" {
			continue
		}
		tp, ok := byID[ev.TemplateID]
		if !ok {
			tp = &model.TemplatePerformance{TemplateID: ev.TemplateID}
			byID[ev.TemplateID] = tp
			order = append(order, ev.TemplateID)
		}
		if tp.TemplateName == "" && ev.TemplateName != "" {
			tp.TemplateName = ev.TemplateName
		}
		switch ev.Type {
		case model.EventTemplateUsed:
			tp.Usage++
		case model.EventConnectionAccepted:
			tp.Accepted++
		case model.EventConnectionDeclined:
			tp.Declined++
		}
	}

	templates := make([]model.TemplatePerformance, 0, len(order))
	for _, id := range order {
		tp := byID[id]
		tp.AcceptanceRate = pct(tp.Accepted, tp.Usage)
		templates = append(templates, *tp)
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Usage > templates[j].Usage
	})

	var best *model.TemplatePerformance
	for i := range templates {
		t := &templates[i]
		if t.Usage == 0 {
			continue
		}
		if best == nil || t.AcceptanceRate > best.AcceptanceRate {
			best = t
		}
	}
	if best != nil {
		copied := *best
		best = &copied
	}

	return model.TemplateMetrics{Templates: templates, BestPerforming: best}
}

// CalculateCampaignMetrics rolls events up by campaign id and averages
// the duration of campaigns with paired start/completion events.
func CalculateCampaignMetrics(events []model.Event) model.CampaignMetrics {
	type campaignAcc struct {
		perf        model.CampaignPerformance
		startedAt   int64
		completedAt int64
	}
	byID := make(map[string]*campaignAcc)
	var order []string

	for _, ev := range events {
		if !ev.Valid() || ev.CampaignID == "" {
			continue
		}
		acc, ok := byID[ev.CampaignID]
		if !ok {
			acc = &campaignAcc{perf: model.CampaignPerformance{CampaignID: ev.CampaignID}}
			byID[ev.CampaignID] = acc
			order = append(order, ev.CampaignID)
		}
		acc.perf.Events++
		switch ev.Type {
		case model.EventConnectionSent:
			acc.perf.ConnectionsSent++
		case model.EventConnectionAccepted:
			acc.perf.Accepted++
		case model.EventCampaignStarted:
			if acc.startedAt == 0 {
				acc.startedAt = ev.Timestamp
			}
		case model.EventCampaignCompleted:
			if acc.completedAt == 0 {
				acc.completedAt = ev.Timestamp
			}
		}
	}

	campaigns := make([]model.CampaignPerformance, 0, len(order))
	var totalDuration int64
	var completed int
	for _, id := range order {
		acc := byID[id]
		acc.perf.AcceptanceRate = pct(acc.perf.Accepted, acc.perf.ConnectionsSent)
		if acc.startedAt > 0 && acc.completedAt >= acc.startedAt {
			acc.perf.DurationMs = acc.completedAt - acc.startedAt
			totalDuration += acc.perf.DurationMs
			completed++
		}
		campaigns = append(campaigns, acc.perf)
	}
	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].Events > campaigns[j].Events
	})

	var avg float64
	if completed > 0 {
		avg = round2(float64(totalDuration) / float64(completed))
	}

	return model.CampaignMetrics{Campaigns: campaigns, AvgCampaignDurationMs: avg}
}
