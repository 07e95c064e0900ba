package analytics

import (
	"fmt"

	"outreach-analytics-service/internal/model"
)

// Threshold rules for the insights generator.
const (
	lowAcceptanceThreshold   = 20.0
	strongAcceptanceMinimum  = 40.0
	lowActivityThreshold     = 5.0
	lowResponseRateThreshold = 10.0
	highEngagementThreshold  = 70.0
)

var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// GenerateInsights applies fixed thresholds to the already-computed
// calculator outputs. Pure and deterministic: the same inputs always
// yield the same insights; rules only fire once the relevant
// denominator is non-zero so an empty window produces empty lists.
func GenerateInsights(
	summary model.Summary,
	perf model.Performance,
	eng model.Engagement,
	tmpl model.TemplateMetrics,
	events []model.Event,
	startMs, endMs int64,
) model.Insights {
	insights := []model.Insight{}
	recommendations := []model.Insight{}

	if summary.TotalConnections > 0 {
		if summary.AcceptanceRate < lowAcceptanceThreshold {
			insights = append(insights, model.Insight{
				Type:        "low_acceptance_rate",
				Title:       "Low acceptance rate",
				Description: fmt.Sprintf("Only %.2f%% of connection requests are accepted.", summary.AcceptanceRate),
				Priority:    "high",
			})
			recommendations = append(recommendations, model.Insight{
				Type:        "improve_templates",
				Title:       "Improve connection templates",
				Description: "Personalize connection messages; acceptance below 20% usually signals generic outreach.",
				Priority:    "high",
			})
		} else if summary.AcceptanceRate >= strongAcceptanceMinimum {
			insights = append(insights, model.Insight{
				Type:        "strong_acceptance_rate",
				Title:       "Strong acceptance rate",
				Description: fmt.Sprintf("%.2f%% of connection requests are accepted.", summary.AcceptanceRate),
			})
		}

		if summary.AvgConnectionsPerDay < lowActivityThreshold {
			recommendations = append(recommendations, model.Insight{
				Type:        "increase_activity",
				Title:       "Increase daily outreach",
				Description: fmt.Sprintf("Averaging %.2f connection requests per day; consistent daily volume improves results.", summary.AvgConnectionsPerDay),
				Priority:    "medium",
			})
		}
	}

	if summary.TotalMessages > 0 && summary.ResponseRate < lowResponseRateThreshold {
		insights = append(insights, model.Insight{
			Type:        "low_response_rate",
			Title:       "Low message response rate",
			Description: fmt.Sprintf("Only %.2f%% of messages receive a response.", summary.ResponseRate),
			Priority:    "medium",
		})
		recommendations = append(recommendations, model.Insight{
			Type:        "revise_messaging",
			Title:       "Revise follow-up messaging",
			Description: "Shorter, question-led follow-ups tend to lift response rates below 10%.",
			Priority:    "medium",
		})
	}

	if best := perf.HourlyAcceptance[perf.BestHour]; best.Rate > 0 {
		insights = append(insights, model.Insight{
			Type:        "best_hour",
			Title:       "Best performing hour",
			Description: fmt.Sprintf("Requests sent around %02d:00 UTC are accepted at %.2f%%.", best.Bucket, best.Rate),
		})
	}
	if best := perf.DailyAcceptance[perf.BestDay]; best.Rate > 0 {
		insights = append(insights, model.Insight{
			Type:        "best_day",
			Title:       "Best performing day",
			Description: fmt.Sprintf("%s is the strongest day with a %.2f%% acceptance rate.", weekdayNames[best.Bucket], best.Rate),
		})
	}

	if tmpl.BestPerforming != nil && tmpl.BestPerforming.AcceptanceRate > 0 {
		name := tmpl.BestPerforming.TemplateName
		if name == "" {
			name = tmpl.BestPerforming.TemplateID
		}
		insights = append(insights, model.Insight{
			Type:        "top_template",
			Title:       "Top performing template",
			Description: fmt.Sprintf("Template %q converts at %.2f%%.", name, tmpl.BestPerforming.AcceptanceRate),
		})
	}

	if eng.EngagementScore >= highEngagementThreshold {
		insights = append(insights, model.Insight{
			Type:        "high_engagement",
			Title:       "High overall engagement",
			Description: fmt.Sprintf("Engagement score is %.2f out of 100.", eng.EngagementScore),
		})
	}

	return model.Insights{
		Insights:        insights,
		Recommendations: recommendations,
		KeyMetrics: model.KeyMetrics{
			TotalConnections:   summary.TotalConnections,
			AcceptanceRate:     summary.AcceptanceRate,
			ResponseRate:       summary.ResponseRate,
			WeekOverWeekGrowth: periodGrowth(events, startMs, endMs),
		},
	}
}

// periodGrowth splits the window into two equal halves and reports the
// percentage change in sent connections between them. An empty earlier
// half reports 100 when the recent half has data, 0 otherwise.
func periodGrowth(events []model.Event, startMs, endMs int64) float64 {
	if endMs <= startMs {
		return 0
	}
	mid := startMs + (endMs-startMs)/2
	var previous, recent int
	for _, ev := range events {
		if !ev.Valid() || ev.Type != model.EventConnectionSent {
			continue
		}
		if ev.Timestamp < mid {
			previous++
		} else {
			recent++
		}
	}
	if previous == 0 {
		if recent > 0 {
			return 100
		}
		return 0
	}
	return round2(float64(recent-previous) / float64(previous) * 100)
}
