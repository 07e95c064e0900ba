package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"outreach-analytics-service/internal/metrics"
	"outreach-analytics-service/internal/model"
	"outreach-analytics-service/internal/repository"
)

// BatchEventWorker buffers events and flushes them to storage in
// batches.
type BatchEventWorker interface {
	Enqueue(event model.Event)
	Shutdown()
}

type batchEventWorker struct {
	repo          repository.EventRepository
	log           zerolog.Logger
	metrics       *metrics.Collector
	eventQueue    chan model.Event
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
}

// NewBatchEventWorker starts a background worker that flushes either
// when the batch fills or when the interval elapses. Enqueue blocks
// once the buffer is full, which back-pressures the ingest endpoint.
func NewBatchEventWorker(repo repository.EventRepository, log zerolog.Logger, collector *metrics.Collector, bufferSize, batchSize int, interval time.Duration) *batchEventWorker {
	worker := &batchEventWorker{
		repo:          repo,
		log:           log,
		metrics:       collector,
		eventQueue:    make(chan model.Event, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

func (w *batchEventWorker) Enqueue(event model.Event) {
	w.eventQueue <- event
	w.metrics.EventsIngested.Inc()
}

// Shutdown closes the queue and waits until buffered events are
// flushed.
func (w *batchEventWorker) Shutdown() {
	w.log.Info().Msg("worker shutting down, draining queue")
	close(w.eventQueue)
	w.wg.Wait()
	w.log.Info().Msg("worker stopped")
}

func (w *batchEventWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.Event
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.eventQueue:
			if !ok {
				if len(batch) > 0 {
					w.bulkInsert(batch)
				}
				return
			}

			batch = append(batch, event)
			if len(batch) >= w.batchSize {
				w.bulkInsert(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.bulkInsert(batch)
				batch = nil
			}
		}
	}
}

func (w *batchEventWorker) bulkInsert(events []model.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.repo.CreateBatch(ctx, events); err != nil {
		w.metrics.FlushErrors.Inc()
		w.log.Error().Err(err).Int("events", len(events)).Msg("bulk insert failed")
		return
	}
	w.metrics.BatchesFlushed.Inc()
	w.log.Debug().Int("events", len(events)).Msg("batch flushed")
}
