package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/farag11/daheeh/internal/client/models"
	"github.com/farag11/daheeh/internal/client/repositories/kv"
	"github.com/farag11/daheeh/internal/common"
	"github.com/farag11/daheeh/internal/logging"
)

// DefaultVisibleToasts is how many of the latest toasts a UI shows.
const DefaultVisibleToasts = 3

// Celebrator receives level-up notifications. LevelUp is called once per
// award that raises the level past every level celebrated so far.
type Celebrator interface {
	LevelUp(ctx context.Context, from, to int)
}

// CelebratorFunc adapts a function to Celebrator.
type CelebratorFunc func(ctx context.Context, from, to int)

func (f CelebratorFunc) LevelUp(ctx context.Context, from, to int) { f(ctx, from, to) }

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Clock         Clock
	Rewards       map[models.Reason]int
	Ranks         []models.RankInfo
	// ToastTTL < 0 keeps toasts until dismissed.
	ToastTTL      time.Duration
	VisibleToasts int
	Celebrator    Celebrator
	Logger        logging.Logger
}

// AwardResult describes the outcome of one award.
type AwardResult struct {
	State         models.GamificationState
	Amount        int
	Toast         models.Toast
	PreviousLevel int
	LeveledUp     bool
	// PersistErr is set when the state could not be written. The in-memory
	// state already includes the award.
	PersistErr error
}

type Engine struct {
	store      kv.Store
	log        logging.Logger
	clock      Clock
	rewards    map[models.Reason]int
	ranks      []models.RankInfo
	celebrator Celebrator
	toasts     *ToastQueue
	visible    int

	mu         sync.Mutex
	state      models.GamificationState
	celebrated int
	seq        uint64

	writeMu   sync.Mutex
	attempted uint64
}

// NewEngine creates an engine holding the initial state. Call Hydrate to
// load what was persisted.
func NewEngine(store kv.Store, opts Options) (*Engine, error) {
	ranks := opts.Ranks
	if ranks == nil {
		ranks = DefaultRanks
	}
	if err := ValidateRanks(ranks); err != nil {
		return nil, err
	}

	for reason, amount := range opts.Rewards {
		if amount < 0 {
			return nil, fmt.Errorf("%w: reward %q", ErrInvalidAmount, reason)
		}
	}

	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	ttl := opts.ToastTTL
	if ttl == 0 {
		ttl = DefaultToastTTL
	}
	visible := opts.VisibleToasts
	if visible <= 0 {
		visible = DefaultVisibleToasts
	}

	return &Engine{
		store:      store,
		log:        log.With("component", "progression"),
		clock:      clock,
		rewards:    copyRewards(opts.Rewards),
		ranks:      ranks,
		celebrator: opts.Celebrator,
		toasts:     NewToastQueue(ttl, clock),
		visible:    visible,
		state:      models.InitialState(),
		celebrated: 1,
	}, nil
}

// Hydrate loads the persisted state. Missing, unreadable or corrupt data
// yields the initial state. A streak whose last active day is neither
// today nor yesterday is reported as 0; the coercion is not written back.
// Hydrate never fires the level-up side effect.
func (e *Engine) Hydrate(ctx context.Context) models.GamificationState {
	s := e.load(ctx)
	s.Streak = visibleStreak(s, e.clock.Now())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
	e.celebrated = s.Level
	e.seq++
	return s
}

func (e *Engine) load(ctx context.Context) models.GamificationState {
	raw, err := e.store.Get(ctx, common.KeyProgressionState)
	if err != nil {
		e.log.Warn(ctx, "failed to read progression state", "error", err)
		return models.InitialState()
	}
	if raw == nil {
		return models.InitialState()
	}

	var s models.GamificationState
	if err := json.Unmarshal(raw, &s); err != nil {
		e.log.Warn(ctx, "discarding corrupt progression state", "error", err)
		return models.InitialState()
	}
	if s.LastActiveDate != "" {
		if _, err := time.Parse(models.DateLayout, s.LastActiveDate); err != nil {
			e.log.Warn(ctx, "discarding malformed last active date", "value", s.LastActiveDate)
			s.LastActiveDate = ""
		}
	}

	s.XP = max(s.XP, 0)
	s.Streak = max(s.Streak, 0)
	s.TotalXPEarned = max(s.TotalXPEarned, s.XP)
	s.Level = models.LevelForXP(s.XP)
	return s
}

// State returns a snapshot of the current state.
func (e *Engine) State() models.GamificationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// AwardXP grants the default amount for reason.
func (e *Engine) AwardXP(ctx context.Context, reason models.Reason) (AwardResult, error) {
	amount, ok := e.rewards[reason]
	if !ok {
		return AwardResult{}, fmt.Errorf("%w: %q", ErrUnknownReason, reason)
	}
	return e.award(ctx, reason, amount), nil
}

// AwardXPAmount grants amount for reason, overriding the reward table.
// Reasons outside the table are accepted.
func (e *Engine) AwardXPAmount(ctx context.Context, reason models.Reason, amount int) (AwardResult, error) {
	if amount < 0 {
		return AwardResult{}, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	return e.award(ctx, reason, amount), nil
}

func (e *Engine) award(ctx context.Context, reason models.Reason, amount int) AwardResult {
	now := e.clock.Now()

	e.mu.Lock()
	prev := e.state
	next := models.GamificationState{
		XP:             prev.XP + amount,
		Streak:         nextStreak(prev, now),
		LastActiveDate: calendarDate(now),
		TotalXPEarned:  prev.TotalXPEarned + amount,
	}
	next.Level = models.LevelForXP(next.XP)
	e.state = next
	e.seq++
	seq := e.seq

	from := e.celebrated
	leveledUp := next.Level > e.celebrated
	if leveledUp {
		e.celebrated = next.Level
	}
	// pushed under mu: a concurrent reset must also clear this toast
	toast := e.toasts.Push(amount, reason)
	e.mu.Unlock()

	res := AwardResult{
		State:         next,
		Amount:        amount,
		Toast:         toast,
		PreviousLevel: prev.Level,
		LeveledUp:     leveledUp,
	}

	e.log.Debug(ctx, "xp awarded", "reason", reason, "amount", amount, "xp", next.XP, "level", next.Level)

	if leveledUp {
		e.log.Info(ctx, "level up", "from", from, "to", next.Level)
		if e.celebrator != nil {
			e.celebrator.LevelUp(ctx, from, next.Level)
		}
	}

	res.PersistErr = e.persist(ctx, seq, &next)
	return res
}

// DismissToast removes a toast early. Unknown ids are ignored.
func (e *Engine) DismissToast(id string) {
	e.toasts.Dismiss(id)
}

// ResetProgress returns to the initial state, removes the persisted record
// and clears toasts. The in-memory reset stands even if the removal fails.
func (e *Engine) ResetProgress(ctx context.Context) error {
	e.mu.Lock()
	e.state = models.InitialState()
	e.celebrated = 1
	e.seq++
	seq := e.seq
	e.toasts.Clear()
	e.mu.Unlock()

	e.log.Info(ctx, "progress reset")
	return e.persist(ctx, seq, nil)
}

// persist writes s, or removes the record when s is nil. Snapshots older
// than one already attempted are dropped so storage never moves backwards.
func (e *Engine) persist(ctx context.Context, seq uint64, s *models.GamificationState) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if seq <= e.attempted {
		return nil
	}
	e.attempted = seq

	var err error
	if s == nil {
		err = e.store.Delete(ctx, common.KeyProgressionState)
	} else {
		var raw []byte
		raw, err = json.Marshal(s)
		if err == nil {
			err = e.store.Set(ctx, common.KeyProgressionState, raw)
		}
	}
	if err != nil {
		e.log.Warn(ctx, "failed to persist progression state", "error", err)
		return fmt.Errorf("%w: %w", common.ErrStorageFailure, err)
	}
	return nil
}

func (e *Engine) XPToNextLevel() int {
	return e.State().XPToNextLevel()
}

func (e *Engine) XPProgress() float64 {
	return e.State().XPProgress()
}

// Rank returns the rank for the current level.
func (e *Engine) Rank() models.RankInfo {
	return e.RankForLevel(e.State().Level)
}

// RankForLevel looks level up in the engine's rank table.
func (e *Engine) RankForLevel(level int) models.RankInfo {
	return RankFor(e.ranks, level)
}

// Reward returns the default amount for reason.
func (e *Engine) Reward(reason models.Reason) (int, bool) {
	amount, ok := e.rewards[reason]
	return amount, ok
}

// Toasts returns every live toast, oldest first.
func (e *Engine) Toasts() []models.Toast {
	return e.toasts.List()
}

// VisibleToasts returns the most recent toasts a UI should display.
func (e *Engine) VisibleToasts() []models.Toast {
	return e.toasts.Latest(e.visible)
}

// Close stops all toast timers.
func (e *Engine) Close() {
	e.toasts.Close()
}
