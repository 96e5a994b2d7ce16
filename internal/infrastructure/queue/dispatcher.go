package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/esgview/admin-gateway/internal/api/metrics"
	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher keeps the dashboard panel cache warm. Refresh jobs are routed
// to a fixed set of workers using consistent hashing on the client ID,
// guaranteeing per-client refresh ordering while distinct clients proceed
// concurrently.
type Dispatcher struct {
	workers   []chan string
	analytics ports.AnalyticsService
	log       zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*domain.PanelBundle
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, analytics ports.AnalyticsService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan string, numWorkers),
		analytics: analytics,
		log:       log,
		cache:     make(map[string]*domain.PanelBundle),
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// RequestRefresh enqueues a panel refresh for the client. The call never
// blocks: when the worker channel is full the job is dropped, since a
// pending refresh for the same client already covers it.
func (d *Dispatcher) RequestRefresh(clientID string) {
	idx := d.shardIndex(clientID)
	select {
	case d.workers[idx] <- clientID:
		metrics.PanelQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.log.Warn().Str("client_id", clientID).Msg("panel refresh queue full, dropping job")
	}
}

// Panels returns the cached bundle for the client, if any.
func (d *Dispatcher) Panels(clientID string) (*domain.PanelBundle, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	bundle, ok := d.cache[clientID]
	return bundle, ok
}

// shardIndex maps a client ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case clientID, ok := <-ch:
			if !ok {
				return
			}
			metrics.PanelQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()
			d.refresh(ctx, id, clientID)
		}
	}
}

// refresh assembles the full panel bundle for one client. A capability that
// fails non-transiently leaves its panel empty; the rest of the bundle is
// still cached.
func (d *Dispatcher) refresh(ctx context.Context, workerID int, clientID string) {
	start := time.Now()
	bundle := &domain.PanelBundle{ClientID: clientID}
	outcome := "ok"

	prediction, err := d.analytics.PredictScores(ctx, ports.PredictionInput{ClientID: clientID})
	if err != nil {
		d.logCapabilityError(err, workerID, clientID, "predictions")
		outcome = "partial"
	} else {
		bundle.Prediction = prediction
	}

	risks, err := d.analytics.AssessRisks(ctx, ports.RiskInput{PortfolioID: clientID})
	if err != nil {
		d.logCapabilityError(err, workerID, clientID, "risks")
		outcome = "partial"
	} else {
		bundle.Risks = risks
	}

	carbon, err := d.analytics.ForecastCarbon(ctx, ports.CarbonInput{ClientID: clientID})
	if err != nil {
		d.logCapabilityError(err, workerID, clientID, "carbon")
		outcome = "partial"
	} else {
		bundle.Carbon = carbon
	}

	recommendations, err := d.analytics.Recommendations(ctx, ports.RecommendationInput{ClientID: clientID})
	if err != nil {
		d.logCapabilityError(err, workerID, clientID, "recommendations")
		outcome = "partial"
	} else {
		bundle.Recommendations = recommendations
	}

	if bundle.Prediction == nil && bundle.Risks == nil && bundle.Carbon == nil && bundle.Recommendations == nil {
		metrics.PanelRefreshDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return
	}

	bundle.RefreshedAt = time.Now().UTC()
	d.mu.Lock()
	d.cache[clientID] = bundle
	d.mu.Unlock()

	metrics.PanelRefreshDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	d.log.Info().
		Str("client_id", clientID).
		Int("worker_id", workerID).
		Str("outcome", outcome).
		Msg("panel bundle refreshed")
}

func (d *Dispatcher) logCapabilityError(err error, workerID int, clientID, capability string) {
	d.log.Error().Err(err).
		Str("client_id", clientID).
		Str("capability", capability).
		Int("worker_id", workerID).
		Msg("panel refresh capability failed")
}
