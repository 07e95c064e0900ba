package analytics

import "outreach-analytics-service/internal/model"

// CalculateSummary folds the filtered window into whole-set counts and
// rates. startMs/endMs bound the window the events were fetched for and
// drive the per-day averages (span floored at one day).
func CalculateSummary(events []model.Event, startMs, endMs int64) model.Summary {
	var s model.Summary
	for _, ev := range events {
		if !ev.Valid() {
			continue
		}
		switch ev.Type {
		case model.EventConnectionSent:
			s.TotalConnections++
		case model.EventConnectionAccepted:
			s.AcceptedConnections++
		case model.EventConnectionDeclined:
			s.DeclinedConnections++
		case model.EventMessageSent:
			s.TotalMessages++
		case model.EventResponseReceived:
			s.ReceivedResponses++
		}
	}

	s.PendingConnections = s.TotalConnections - s.AcceptedConnections - s.DeclinedConnections
	s.AcceptanceRate = pct(s.AcceptedConnections, s.TotalConnections)
	s.ResponseRate = pct(s.ReceivedResponses, s.TotalMessages)

	days := daySpan(startMs, endMs)
	s.AvgConnectionsPerDay = round2(float64(s.TotalConnections) / float64(days))
	s.AvgMessagesPerDay = round2(float64(s.TotalMessages) / float64(days))
	return s
}

func daySpan(startMs, endMs int64) int64 {
	days := (endMs - startMs) / dayMs
	if days < 1 {
		return 1
	}
	return days
}
