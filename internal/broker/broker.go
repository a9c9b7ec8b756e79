package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Allocator/internal/hermes"
	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// TriggerWeights marks recalculations caused by a weights change.
const TriggerWeights = "weights_updated"

// Recalculator recomputes allocation results when universities or model weights change
// and publishes the new figures on the bus.
type Recalculator struct {
	store    store.Store
	hermes   hermes.Client
	scorer   *scoring.Scorer
	defaults store.ModelWeights
	debounce time.Duration
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[uuid.UUID]string
	kick      chan struct{}

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewRecalculator(s store.Store, h hermes.Client, sc *scoring.Scorer, defaults store.ModelWeights, debounce time.Duration, logger *slog.Logger) *Recalculator {
	return &Recalculator{
		store:    s,
		hermes:   h,
		scorer:   sc,
		defaults: defaults,
		debounce: debounce,
		logger:   logger,
		pending:  make(map[uuid.UUID]string),
		kick:     make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

func (r *Recalculator) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.loop(ctx)
}

func (r *Recalculator) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

// SetupSubscriptions registers the NATS subscriptions that feed the recalculation queue.
func (r *Recalculator) SetupSubscriptions() {
	if r.hermes == nil {
		return
	}

	onUniversity := func(subject string, data []byte) {
		var evt hermes.UniversityEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			r.logger.Warn("invalid university event", "subject", subject, "error", err)
			return
		}
		raw := evt.UniversityID
		if raw == "" {
			raw, _ = hermes.UniversityIDFromSubject(subject)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			r.logger.Warn("university event without a valid id", "subject", subject)
			return
		}
		r.Enqueue(id, evt.Change)
	}

	if err := r.hermes.Subscribe(hermes.SubjectUniversityCreatedAll, onUniversity); err != nil {
		r.logger.Error("subscribe failed", "subject", hermes.SubjectUniversityCreatedAll, "error", err)
	}
	if err := r.hermes.Subscribe(hermes.SubjectUniversityUpdatedAll, onUniversity); err != nil {
		r.logger.Error("subscribe failed", "subject", hermes.SubjectUniversityUpdatedAll, "error", err)
	}
	if err := r.hermes.Subscribe(hermes.SubjectWeightsUpdated, func(_ string, _ []byte) {
		r.EnqueueAll(context.Background())
	}); err != nil {
		r.logger.Error("subscribe failed", "subject", hermes.SubjectWeightsUpdated, "error", err)
	}
}

// Enqueue schedules one university for recalculation. Repeated calls before the next flush
// collapse into one computation.
func (r *Recalculator) Enqueue(id uuid.UUID, trigger string) {
	r.pendingMu.Lock()
	r.pending[id] = trigger
	r.pendingMu.Unlock()

	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// EnqueueAll schedules every stored university, used when the model weights change.
func (r *Recalculator) EnqueueAll(ctx context.Context) {
	list, err := r.store.ListUniversities(ctx)
	if err != nil {
		r.logger.Error("failed to list universities for recalculation", "error", err)
		return
	}
	for _, u := range list {
		r.Enqueue(u.ID, TriggerWeights)
	}
}

// Pending reports how many universities are waiting for recalculation.
func (r *Recalculator) Pending() int {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	return len(r.pending)
}

func (r *Recalculator) loop(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		case <-r.kick:
		}

		if r.debounce > 0 {
			select {
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			case <-time.After(r.debounce):
			}
		}
		r.Flush(ctx)
	}
}

// Flush recomputes every pending university and publishes the results.
func (r *Recalculator) Flush(ctx context.Context) {
	r.pendingMu.Lock()
	batch := r.pending
	r.pending = make(map[uuid.UUID]string)
	r.pendingMu.Unlock()

	if len(batch) == 0 {
		return
	}

	weights, err := store.ResolveWeights(ctx, r.store, r.defaults)
	if err != nil {
		r.logger.Error("failed to load weights", "error", err)
		return
	}

	for id, trigger := range batch {
		r.recalculate(ctx, id, trigger, weights)
	}
}

func (r *Recalculator) recalculate(ctx context.Context, id uuid.UUID, trigger string, weights store.ModelWeights) {
	u, err := r.store.GetUniversity(ctx, id)
	if err != nil {
		r.logger.Error("failed to load university", "university_id", id, "error", err)
		return
	}
	if u == nil {
		r.logger.Warn("university vanished before recalculation", "university_id", id)
		return
	}

	result := r.scorer.Score(*u, weights)
	if !result.Finite() {
		r.logger.Warn("skipping publish of non-finite result", "university_id", id, "trigger", trigger)
		return
	}

	if r.hermes == nil {
		return
	}
	evt := hermes.ResultComputedEvent{
		UniversityID:    id.String(),
		Name:            u.Name,
		TotalScore:      result.TotalScore,
		SharePercent:    result.SharePercent,
		EstimatedBudget: result.EstimatedBudget,
		CostPerStudent:  result.CostPerStudent,
		TotalHeadcount:  result.TotalHeadcount,
		Trigger:         trigger,
		Timestamp:       time.Now().UTC(),
	}
	if err := r.hermes.Publish(hermes.SubjectResultComputed(id.String()), evt); err != nil {
		r.logger.Error("failed to publish result", "university_id", id, "error", err)
		return
	}
	r.logger.Info("result recomputed",
		"university_id", id,
		"trigger", trigger,
		"estimated_budget", result.EstimatedBudget)
}
