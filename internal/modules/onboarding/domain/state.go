package domain

import (
	"fmt"

	swipedomain "kiosk/internal/modules/swipe/domain"
	apperrors "kiosk/internal/platform/errors"
)

type Screen string

const (
	ScreenHero  Screen = "hero"
	ScreenSwipe Screen = "swipe"
	ScreenFeed  Screen = "feed"
)

// State is the session's primary screen together with whatever that screen
// carries. Overlays only exist on FeedState, so Reward-on-Hero and
// Game-plus-Reward cannot be expressed.
type State interface {
	Screen() Screen
	isState()
}

type HeroState struct{}

// SwipeState.Pending is the decision whose exit window is running; while it is
// set the card is animating out and further decisions are ignored.
type SwipeState struct {
	Pending swipedomain.Decision
}

type FeedState struct {
	Selection []string
	Overlay   Overlay
}

func (HeroState) Screen() Screen  { return ScreenHero }
func (SwipeState) Screen() Screen { return ScreenSwipe }
func (FeedState) Screen() Screen  { return ScreenFeed }

func (HeroState) isState()  {}
func (SwipeState) isState() {}
func (FeedState) isState()  {}

func (s SwipeState) Animating() bool { return s.Pending != swipedomain.NoDecision }

type Overlay interface {
	isOverlay()
}

type NoOverlay struct{}

type GameOverlay struct {
	Kind GameKind
}

type RewardOverlay struct {
	PrizeLabel string
	OfferID    string
}

func (NoOverlay) isOverlay()     {}
func (GameOverlay) isOverlay()   {}
func (RewardOverlay) isOverlay() {}

// RewardState is the flattened reward axis.
type RewardState struct {
	Visible    bool
	PrizeLabel string
	OfferID    string
}

// View is the flattened SessionState that renderers consume.
type View struct {
	Screen      Screen
	Game        GameKind
	Reward      RewardState
	IsAnimating bool
	Selection   []string
}

func Flatten(s State) View {
	switch st := s.(type) {
	case SwipeState:
		return View{Screen: ScreenSwipe, IsAnimating: st.Animating()}
	case FeedState:
		v := View{Screen: ScreenFeed, Selection: append([]string{}, st.Selection...)}
		switch ov := st.Overlay.(type) {
		case GameOverlay:
			v.Game = ov.Kind
		case RewardOverlay:
			v.Reward = RewardState{Visible: true, PrizeLabel: ov.PrizeLabel, OfferID: ov.OfferID}
		}
		return v
	default:
		return View{Screen: ScreenHero}
	}
}

func Describe(s State) string {
	v := Flatten(s)
	switch {
	case v.Game != GameNone:
		return fmt.Sprintf("%s+game(%s)", v.Screen, v.Game)
	case v.Reward.Visible:
		return fmt.Sprintf("%s+reward", v.Screen)
	case v.IsAnimating:
		return fmt.Sprintf("%s(animating)", v.Screen)
	default:
		return string(v.Screen)
	}
}

func invalid(event string, s State) error {
	return fmt.Errorf("%w: %s in %s", apperrors.ErrInvalidStateTransition, event, Describe(s))
}

func StartExperience(s State) (State, error) {
	if _, ok := s.(HeroState); !ok {
		return s, invalid("start experience", s)
	}
	return SwipeState{}, nil
}

// BeginExit marks d as in flight on the active card.
func BeginExit(s State, d swipedomain.Decision) (State, error) {
	st, ok := s.(SwipeState)
	if !ok || st.Animating() || d == swipedomain.NoDecision {
		return s, invalid("decision "+d.String(), s)
	}
	return SwipeState{Pending: d}, nil
}

// EndExit releases the guard once the exit window has elapsed.
func EndExit(s State) (State, error) {
	st, ok := s.(SwipeState)
	if !ok || !st.Animating() {
		return s, invalid("end exit", s)
	}
	return SwipeState{}, nil
}

// EnterFeed closes the swipe pass, either at exhaustion or on skip-all.
func EnterFeed(s State, selection []string) (State, error) {
	if _, ok := s.(SwipeState); !ok {
		return s, invalid("enter feed", s)
	}
	if selection == nil {
		selection = []string{}
	}
	return FeedState{Selection: selection, Overlay: NoOverlay{}}, nil
}

func OpenGame(s State, kind GameKind) (State, error) {
	if err := CanOpenGame(s); err != nil || kind == GameNone {
		return s, invalid("play game", s)
	}
	return FeedState{Selection: s.(FeedState).Selection, Overlay: GameOverlay{Kind: kind}}, nil
}

// CanOpenGame reports whether a game may start: Feed with no overlay open.
func CanOpenGame(s State) error {
	st, ok := s.(FeedState)
	if !ok {
		return invalid("play game", s)
	}
	if _, free := st.Overlay.(NoOverlay); !free {
		return invalid("play game", s)
	}
	return nil
}

// Win swaps the game overlay for the reward overlay in one step.
func Win(s State, prizeLabel, offerID string) (State, error) {
	st, ok := s.(FeedState)
	if !ok {
		return s, invalid("win", s)
	}
	if _, playing := st.Overlay.(GameOverlay); !playing {
		return s, invalid("win", s)
	}
	return FeedState{Selection: st.Selection, Overlay: RewardOverlay{PrizeLabel: prizeLabel, OfferID: offerID}}, nil
}

func ClaimOffer(s State, prizeLabel, offerID string) (State, error) {
	st, ok := s.(FeedState)
	if !ok {
		return s, invalid("claim offer", s)
	}
	if _, free := st.Overlay.(NoOverlay); !free {
		return s, invalid("claim offer", s)
	}
	return FeedState{Selection: st.Selection, Overlay: RewardOverlay{PrizeLabel: prizeLabel, OfferID: offerID}}, nil
}

func CloseGame(s State) (State, error) {
	st, ok := s.(FeedState)
	if !ok {
		return s, invalid("close game", s)
	}
	if _, playing := st.Overlay.(GameOverlay); !playing {
		return s, invalid("close game", s)
	}
	return FeedState{Selection: st.Selection, Overlay: NoOverlay{}}, nil
}

func CloseReward(s State) (State, error) {
	st, ok := s.(FeedState)
	if !ok {
		return s, invalid("close reward", s)
	}
	if _, shown := st.Overlay.(RewardOverlay); !shown {
		return s, invalid("close reward", s)
	}
	return FeedState{Selection: st.Selection, Overlay: NoOverlay{}}, nil
}
