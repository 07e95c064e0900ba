package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"outreach-analytics-service/internal/metrics"
	"outreach-analytics-service/internal/model"
	"outreach-analytics-service/internal/testdata/mockrepository"
)

type EngineTestSuite struct {
	suite.Suite

	repo   *mockrepository.Repository
	engine *Engine

	start int64
	end   int64
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.repo = &mockrepository.Repository{}
	s.engine = NewEngine(s.repo, zerolog.Nop(), metrics.New(prometheus.NewRegistry()))

	// Freeze time so default windows are deterministic.
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	s.engine.now = func() time.Time { return now }

	s.start = now.Add(-14 * 24 * time.Hour).UnixMilli()
	s.end = now.UnixMilli()
}

func (s *EngineTestSuite) opts() model.AnalyticsOptions {
	return model.AnalyticsOptions{StartDate: s.start, EndDate: s.end, GroupBy: model.GroupByDay}
}

func (s *EngineTestSuite) expectFetch(events []model.Event) *mock.Call {
	return s.repo.On("FetchRange", mock.Anything, time.UnixMilli(s.start), time.UnixMilli(s.end)).
		Return(events, nil)
}

func (s *EngineTestSuite) TestCalculate_EmptyLogReturnsZeroShapedResult() {
	s.expectFetch(nil)

	result := s.engine.Calculate(context.Background(), s.opts())

	s.Equal(0, result.Summary.TotalConnections)
	s.Len(result.Performance.HourlyAcceptance, 24)
	s.Len(result.Performance.DailyAcceptance, 7)
	s.Len(result.Conversion.Funnel, 4)
	s.Equal(100.0, result.Conversion.Funnel[0].Rate)
	s.Len(result.Conversion.DropOff, 3)
	s.NotNil(result.TimeSeries)
	s.NotNil(result.Templates.Templates)
	s.Equal(model.GroupByDay, result.GroupBy)
}

func (s *EngineTestSuite) TestCalculate_StorageFailureDegradesToEmpty() {
	s.repo.On("FetchRange", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	result := s.engine.Calculate(context.Background(), s.opts())

	s.Equal(0, result.Summary.TotalConnections)
	s.Len(result.Performance.HourlyAcceptance, 24)
}

func (s *EngineTestSuite) TestCalculate_SecondCallServedFromCache() {
	events := []model.Event{
		{Type: model.EventConnectionSent, Timestamp: s.start + 1000},
		{Type: model.EventConnectionAccepted, Timestamp: s.start + 2000},
	}
	s.expectFetch(events).Once()

	first := s.engine.Calculate(context.Background(), s.opts())
	second := s.engine.Calculate(context.Background(), s.opts())

	s.Equal(first, second)
	s.Equal(1, s.engine.CacheSize())
	s.repo.AssertExpectations(s.T())
}

func (s *EngineTestSuite) TestCalculate_RealTimeBypassesCache() {
	s.expectFetch(nil).Twice()

	opts := s.opts()
	opts.IncludeRealTime = true

	s.engine.Calculate(context.Background(), opts)
	s.engine.Calculate(context.Background(), opts)

	s.Equal(0, s.engine.CacheSize())
	s.repo.AssertExpectations(s.T())
}

func (s *EngineTestSuite) TestCalculate_RealTimeDoesNotReadExistingEntry() {
	events := []model.Event{{Type: model.EventConnectionSent, Timestamp: s.start + 1000}}
	s.expectFetch(events).Times(2)

	cached := s.engine.Calculate(context.Background(), s.opts())
	s.Equal(1, s.engine.CacheSize())

	opts := s.opts()
	opts.IncludeRealTime = true
	fresh := s.engine.Calculate(context.Background(), opts)

	s.Equal(cached, fresh)
	s.Equal(1, s.engine.CacheSize(), "real-time call must not grow the cache")
	s.repo.AssertExpectations(s.T())
}

func (s *EngineTestSuite) TestClearCache() {
	s.expectFetch(nil).Twice()

	s.engine.Calculate(context.Background(), s.opts())
	s.Equal(1, s.engine.CacheSize())

	s.engine.ClearCache()
	s.Equal(0, s.engine.CacheSize())

	s.engine.Calculate(context.Background(), s.opts())
	s.repo.AssertExpectations(s.T())
}

func (s *EngineTestSuite) TestCalculate_DefaultWindowRepeatsServedFromCache() {
	// An advancing clock must not change the cache identity of two
	// identical default-window queries.
	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	reads := 0
	s.engine.now = func() time.Time {
		reads++
		return base.Add(time.Duration(reads) * time.Millisecond)
	}

	s.repo.On("FetchRange", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	first := s.engine.Calculate(context.Background(), model.AnalyticsOptions{})
	second := s.engine.Calculate(context.Background(), model.AnalyticsOptions{})

	s.Equal(first, second)
	s.Equal(1, s.engine.CacheSize())
	s.repo.AssertExpectations(s.T())
}

func (s *EngineTestSuite) TestCalculate_InvalidDatesFallBackToDefaultWindow() {
	now := s.engine.now().UTC()
	s.repo.On("FetchRange", mock.Anything,
		time.UnixMilli(now.Add(-30*24*time.Hour).UnixMilli()),
		time.UnixMilli(now.UnixMilli()),
	).Return(nil, nil).Once()

	s.engine.Calculate(context.Background(), model.AnalyticsOptions{StartDate: -5, EndDate: 0})
	s.repo.AssertExpectations(s.T())
}

func (s *EngineTestSuite) TestCalculate_UnknownGroupByDefaultsToDay() {
	s.expectFetch(nil)

	opts := s.opts()
	opts.GroupBy = "fortnight"
	result := s.engine.Calculate(context.Background(), opts)
	s.Equal(model.GroupByDay, result.GroupBy)
}

func (s *EngineTestSuite) TestCalculate_MalformedEventsAreSkippedNotFatal() {
	events := []model.Event{
		{Type: model.EventConnectionSent, Timestamp: s.start + 1000},
		{Type: "", Timestamp: s.start + 2000},
		{Type: model.EventConnectionSent, Timestamp: s.start + 3000},
	}
	s.expectFetch(events)

	result := s.engine.Calculate(context.Background(), s.opts())
	s.Equal(2, result.Summary.TotalConnections)
}

func (s *EngineTestSuite) TestCalculate_TenThousandEventsOverOneDay() {
	events := make([]model.Event, 0, 10000)
	for i := 0; i < 10000; i++ {
		events = append(events, model.Event{
			Type:      model.EventConnectionSent,
			Timestamp: s.start + int64(i)*(dayMs/10000),
		})
	}
	s.expectFetch(events)

	result := s.engine.Calculate(context.Background(), s.opts())
	s.Equal(10000, result.Summary.TotalConnections)

	// Repeated calls are served from the memo cache, not re-accumulated.
	for i := 0; i < 5; i++ {
		again := s.engine.Calculate(context.Background(), s.opts())
		s.Equal(10000, again.Summary.TotalConnections)
	}
	s.Equal(1, s.engine.CacheSize())
}

func (s *EngineTestSuite) TestRawData_FiltersOutOfRangeRows() {
	events := []model.Event{
		{Type: model.EventConnectionSent, Timestamp: s.start - 1},
		{Type: model.EventConnectionSent, Timestamp: s.start},
		{Type: model.EventConnectionSent, Timestamp: s.end},
		{Type: model.EventConnectionSent, Timestamp: s.end + 1},
	}
	s.expectFetch(events)

	got := s.engine.RawData(context.Background(), s.start, s.end)
	s.Len(got, 2)
}

func (s *EngineTestSuite) TestRawData_StorageErrorReturnsEmptySlice() {
	s.repo.On("FetchRange", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("boom"))

	got := s.engine.RawData(context.Background(), s.start, s.end)
	s.NotNil(got)
	s.Empty(got)
}
