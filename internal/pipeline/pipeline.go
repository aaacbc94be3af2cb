// Package pipeline polls the NeoWs feed on an interval, assesses every
// catalogued object against a nominal impact site, and publishes the
// resulting threat assessments to Kafka.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/catalog"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// feedWindowDays is the NeoWs feed lookahead. The API caps feed queries
// at 7 days.
const feedWindowDays = 7

// BatchPublisher writes assessments to the sink.
type BatchPublisher interface {
	PublishBatch(ctx context.Context, assessments []catalog.Assessment) error
}

// Pipeline orchestrates the poll-assess-publish loop.
type Pipeline struct {
	source    catalog.Source
	publisher BatchPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	interval  time.Duration
	lat       float64
	lon       float64
	ready     atomic.Bool
}

// New creates a Pipeline assessing feed objects at the given nominal site.
func New(source catalog.Source, publisher BatchPublisher, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration, lat, lon float64) *Pipeline {
	return &Pipeline{
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		interval:  interval,
		lat:       lat,
		lon:       lon,
	}
}

// SetClock swaps the pipeline's time source. Tests use a fake clock to
// drive poll ticks deterministically.
func (p *Pipeline) SetClock(c clockwork.Clock) {
	p.clock = c
}

// CheckReadiness returns nil once the pipeline has completed at least one
// successful poll cycle, or an error describing why it is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("feed pipeline has not completed a poll cycle yet")
	}
	return nil
}

// Run executes the poll loop until the context is cancelled. The first
// cycle runs immediately; later cycles follow the configured interval.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("feed pipeline started", "poll_interval", p.interval)
	p.metrics.FeedRunning.Set(1)
	defer p.metrics.FeedRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		if !p.pollOnce(ctx, &backoff, maxBackoff) {
			return nil
		}

		ticker := p.clock.NewTicker(p.interval)
		select {
		case <-ctx.Done():
			ticker.Stop()
			p.logger.Info("feed pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			ticker.Stop()
		}
	}
}

// pollOnce runs one poll-assess-publish cycle, retrying with backoff on
// extract or publish failures. Returns false if the pipeline should stop.
func (p *Pipeline) pollOnce(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		p.metrics.FeedCycles.Inc()

		start := p.clock.Now()
		asteroids, err := p.source.Feed(ctx, start, start.AddDate(0, 0, feedWindowDays))
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			p.logger.Error("feed poll failed", "error", err)
			p.metrics.FeedErrors.Inc()
			if !p.backoffOrStop(ctx, backoff, maxBackoff) {
				return false
			}
			continue
		}

		p.metrics.FeedBatchSize.Observe(float64(len(asteroids)))
		*backoff = 200 * time.Millisecond

		assessments := p.assessBatch(asteroids)
		if len(assessments) == 0 {
			p.ready.Store(true)
			return true
		}

		if err := p.publisher.PublishBatch(ctx, assessments); err != nil {
			if ctx.Err() != nil {
				return false
			}
			p.logger.Error("publish batch failed", "error", err, "batch_size", len(assessments))
			p.metrics.FeedErrors.Inc()
			if !p.backoffOrStop(ctx, backoff, maxBackoff) {
				return false
			}
			continue
		}

		p.metrics.AssessmentsPublished.Add(float64(len(assessments)))
		p.ready.Store(true)
		p.logger.Info("feed cycle complete",
			"objects", len(asteroids),
			"assessments", len(assessments),
		)
		return true
	}
}

// assessBatch assesses each object, skipping and counting failures so one
// malformed record cannot stall the feed.
func (p *Pipeline) assessBatch(asteroids []catalog.Asteroid) []catalog.Assessment {
	assessments := make([]catalog.Assessment, 0, len(asteroids))
	for _, a := range asteroids {
		assessment, err := catalog.Assess(a, p.lat, p.lon)
		if err != nil {
			p.logger.Warn("assessment failed, skipping object", "error", err, "id", a.ID, "name", a.Name)
			p.metrics.AssessmentErrors.Inc()
			continue
		}
		p.metrics.ImpactCalculations.Inc()
		assessments = append(assessments, assessment)
	}
	return assessments
}

// backoffOrStop sleeps with the current backoff and advances it. Returns
// false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
