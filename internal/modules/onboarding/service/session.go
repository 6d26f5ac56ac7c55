package service

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"kiosk/internal/modules/onboarding/domain"
	swipedomain "kiosk/internal/modules/swipe/domain"
	"kiosk/internal/platform/clock"
	apperrors "kiosk/internal/platform/errors"
)

// LookaheadDepth is how many cards behind the current one a snapshot carries.
const LookaheadDepth = 2

// Hooks are invoked after the session lock is released, in the order the
// triggering events were applied.
type Hooks struct {
	// OnSwipeComplete fires once per pass, at exhaustion or skip-all.
	OnSwipeComplete func(selection []string)
	// OnPassComplete fires alongside OnSwipeComplete with how the pass ended.
	OnPassComplete func(Pass)
	OnChange       func(Snapshot)
}

// Pass is the outcome of one swipe pass.
type Pass struct {
	Selection []string
	Skipped   bool
}

type Options struct {
	Scheduler       clock.Scheduler
	RNG             domain.RNG
	Logger          *slog.Logger
	ExitWindow      time.Duration
	ClaimPrizeLabel string
	Hooks           Hooks
}

// Snapshot is a value copy of the session for renderers and callers.
type Snapshot struct {
	// Version increases with every observable change; newer snapshots win.
	Version    uint64
	View       domain.View
	Pending    swipedomain.Decision
	Current    swipedomain.CandidateItem
	HasCurrent bool
	Lookahead  []swipedomain.CandidateItem
	Cursor     int
	Total      int
	Accepted   []string
	DragOffset float64
	Closed     bool
}

// Session owns one onboarding run: screen state, the swipe pass, and the exit
// window timer. All entry points serialize on mu, including the timer callback.
type Session struct {
	mu sync.Mutex

	items []swipedomain.CandidateItem
	opts  Options
	log   *slog.Logger

	state  domain.State
	queue  *swipedomain.CardQueue
	picked *swipedomain.SelectionAccumulator
	drag   float64

	timer   clock.Timer
	gen     uint64
	closed  bool
	version uint64

	outbox []func()
}

func NewSession(items []swipedomain.CandidateItem, opts Options) (*Session, error) {
	if err := swipedomain.ValidateItems(items); err != nil {
		return nil, err
	}
	if opts.Scheduler == nil || opts.RNG == nil {
		return nil, fmt.Errorf("%w: scheduler and rng are required", apperrors.ErrInvalidInput)
	}
	if opts.ExitWindow <= 0 {
		return nil, fmt.Errorf("%w: exit window must be positive", apperrors.ErrInvalidInput)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	owned := make([]swipedomain.CandidateItem, len(items))
	copy(owned, items)
	return &Session{
		items: owned,
		opts:  opts,
		log:   logger,
		state: domain.HeroState{},
	}, nil
}

func (s *Session) StartExperience() error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.usable("start experience"); err != nil {
		return err
	}
	next, err := domain.StartExperience(s.state)
	if err != nil {
		return s.reject(err)
	}
	s.queue = swipedomain.NewCardQueue(s.items)
	s.picked = swipedomain.NewSelectionAccumulator()
	s.drag = 0
	s.transition(next)
	return nil
}

// OnDragUpdate records the live offset for rendering. It never commits state.
func (s *Session) OnDragUpdate(offset float64) {
	s.mu.Lock()
	defer s.unlock()
	if s.closed || math.IsNaN(offset) || math.IsInf(offset, 0) {
		return
	}
	st, ok := s.state.(domain.SwipeState)
	if !ok || st.Animating() {
		return
	}
	s.drag = offset
	s.changed()
}

// OnRelease classifies the drag at release and, when it clears the threshold,
// starts the exit window. It returns the decision that was taken.
func (s *Session) OnRelease(offset float64) swipedomain.Decision {
	s.mu.Lock()
	defer s.unlock()
	return s.decide(swipedomain.Classify(offset), "release")
}

// OnButtonDecision is a synthetic release beyond the threshold.
func (s *Session) OnButtonDecision(d swipedomain.Decision) swipedomain.Decision {
	s.mu.Lock()
	defer s.unlock()
	return s.decide(swipedomain.Classify(swipedomain.SyntheticOffset(d)), "button")
}

func (s *Session) decide(d swipedomain.Decision, source string) swipedomain.Decision {
	if s.closed {
		return swipedomain.NoDecision
	}
	st, ok := s.state.(domain.SwipeState)
	if !ok {
		s.log.Debug("decision outside swipe", "source", source, "state", domain.Describe(s.state))
		return swipedomain.NoDecision
	}
	if st.Animating() {
		s.log.Debug("decision suppressed during exit window", "source", source, "pending", st.Pending.String())
		return swipedomain.NoDecision
	}
	if d == swipedomain.NoDecision {
		if s.drag != 0 {
			s.drag = 0
			s.changed()
		}
		return swipedomain.NoDecision
	}
	next, err := domain.BeginExit(s.state, d)
	if err != nil {
		_ = s.reject(err)
		return swipedomain.NoDecision
	}
	s.gen++
	gen := s.gen
	s.timer = s.opts.Scheduler.AfterFunc(s.opts.ExitWindow, func() { s.finishExit(gen) })
	s.log.Debug("decision accepted", "source", source, "decision", d.String(), "cursor", s.queue.Cursor())
	s.transition(next)
	return d
}

// finishExit commits the in-flight decision once its window has elapsed.
// Firings from a cancelled or superseded window are dropped.
func (s *Session) finishExit(gen uint64) {
	s.mu.Lock()
	defer s.unlock()
	if s.closed || gen != s.gen {
		return
	}
	st, ok := s.state.(domain.SwipeState)
	if !ok || !st.Animating() {
		return
	}
	s.timer = nil
	if card, ok := s.queue.Current(); ok && st.Pending == swipedomain.Accept {
		if err := s.picked.Add(card.ID); err != nil {
			s.log.Warn("duplicate selection dropped", "item", card.ID, "error", err)
		}
	}
	s.queue.Advance()
	s.drag = 0
	next, err := domain.EndExit(s.state)
	if err != nil {
		_ = s.reject(err)
		return
	}
	s.transition(next)
	if s.queue.IsExhausted() {
		s.completePass(s.picked.FinalSelection(), false)
	}
}

// OnSkipAll leaves the swipe pass with an empty selection, whatever was
// accepted so far.
func (s *Session) OnSkipAll() error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.usable("skip all"); err != nil {
		return err
	}
	if _, ok := s.state.(domain.SwipeState); !ok {
		return s.reject(fmt.Errorf("%w: skip all in %s", apperrors.ErrInvalidStateTransition, domain.Describe(s.state)))
	}
	s.cancelTimer()
	s.picked.Reset()
	s.completePass(s.picked.FinalSelection(), true)
	return nil
}

func (s *Session) completePass(selection []string, skipped bool) {
	next, err := domain.EnterFeed(domain.SwipeState{}, selection)
	if err != nil {
		_ = s.reject(err)
		return
	}
	s.queue = nil
	s.picked = nil
	s.drag = 0
	s.transition(next)
	s.log.Info("swipe pass complete", "selected", len(selection), "skipped", skipped)
	if hook := s.opts.Hooks.OnSwipeComplete; hook != nil {
		out := append([]string{}, selection...)
		s.outbox = append(s.outbox, func() { hook(out) })
	}
	if hook := s.opts.Hooks.OnPassComplete; hook != nil {
		pass := Pass{Selection: append([]string{}, selection...), Skipped: skipped}
		s.outbox = append(s.outbox, func() { hook(pass) })
	}
}

// PlayGame draws Spin or Scratch and opens it over the feed.
func (s *Session) PlayGame() (domain.GameKind, error) {
	s.mu.Lock()
	defer s.unlock()
	if err := s.usable("play game"); err != nil {
		return domain.GameNone, err
	}
	if err := domain.CanOpenGame(s.state); err != nil {
		return domain.GameNone, s.reject(err)
	}
	kind := domain.PickGame(s.opts.RNG)
	next, err := domain.OpenGame(s.state, kind)
	if err != nil {
		return domain.GameNone, s.reject(err)
	}
	s.transition(next)
	return kind, nil
}

// WinPrize closes the game and shows the reward in a single transition.
func (s *Session) WinPrize(prizeLabel, offerID string) error {
	return s.step("win", func(st domain.State) (domain.State, error) {
		return domain.Win(st, prizeLabel, offerID)
	})
}

func (s *Session) ClaimOffer(offerID string) error {
	return s.step("claim offer", func(st domain.State) (domain.State, error) {
		return domain.ClaimOffer(st, s.opts.ClaimPrizeLabel, offerID)
	})
}

func (s *Session) CloseGame() error {
	return s.step("close game", domain.CloseGame)
}

func (s *Session) CloseReward() error {
	return s.step("close reward", domain.CloseReward)
}

// Restart drops the current pass and any pending exit window and returns to Hero.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.usable("restart"); err != nil {
		return err
	}
	s.cancelTimer()
	s.queue = nil
	s.picked = nil
	s.drag = 0
	s.transition(domain.HeroState{})
	return nil
}

// Close tears the session down. A pending exit window is cancelled and never
// applied. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.unlock()
	if s.closed {
		return
	}
	s.cancelTimer()
	s.closed = true
	s.version++
	s.queue = nil
	s.picked = nil
	s.log.Debug("session closed", "state", domain.Describe(s.state))
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:    s.version,
		View:       domain.Flatten(s.state),
		DragOffset: s.drag,
		Closed:     s.closed,
		Total:      len(s.items),
	}
	if st, ok := s.state.(domain.SwipeState); ok {
		snap.Pending = st.Pending
	}
	if s.queue != nil {
		snap.Cursor = s.queue.Cursor()
		snap.Current, snap.HasCurrent = s.queue.Current()
		for n := 1; n <= LookaheadDepth; n++ {
			if item, ok := s.queue.Lookahead(n); ok {
				snap.Lookahead = append(snap.Lookahead, item)
			}
		}
	}
	if s.picked != nil {
		snap.Accepted = s.picked.FinalSelection()
	}
	return snap
}

func (s *Session) step(event string, fn func(domain.State) (domain.State, error)) error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.usable(event); err != nil {
		return err
	}
	next, err := fn(s.state)
	if err != nil {
		return s.reject(err)
	}
	s.transition(next)
	return nil
}

func (s *Session) usable(event string) error {
	if s.closed {
		return fmt.Errorf("%w: %s", apperrors.ErrSessionClosed, event)
	}
	return nil
}

func (s *Session) transition(next domain.State) {
	from := domain.Describe(s.state)
	s.state = next
	s.log.Debug("transition", "from", from, "to", domain.Describe(next))
	s.changed()
}

func (s *Session) reject(err error) error {
	s.log.Warn("event ignored", "state", domain.Describe(s.state), "error", err)
	return err
}

func (s *Session) changed() {
	s.version++
	hook := s.opts.Hooks.OnChange
	if hook == nil {
		return
	}
	snap := s.snapshotLocked()
	s.outbox = append(s.outbox, func() { hook(snap) })
}

func (s *Session) cancelTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// unlock releases mu and then runs queued hooks, so hooks may call back in.
func (s *Session) unlock() {
	out := s.outbox
	s.outbox = nil
	s.mu.Unlock()
	for _, fn := range out {
		fn()
	}
}
