package in

import (
	"context"

	onboardingdto "kiosk/internal/modules/onboarding/dto"
	onboardingin "kiosk/internal/modules/onboarding/port/in"
)

type CLIHandler struct {
	usecase onboardingin.Usecase
}

func NewCLIHandler(usecase onboardingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Catalog(ctx context.Context) (onboardingdto.CatalogOutput, error) {
	return h.usecase.Catalog(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]onboardingdto.HistoryOutput, error) {
	return h.usecase.History(ctx, limit)
}

// Simulate drives one headless session through input. settle is called after
// every accepted decision and must let the exit window elapse.
func (h CLIHandler) Simulate(ctx context.Context, input onboardingdto.SimulateInput, settle func()) (onboardingdto.SimulateOutput, error) {
	started, err := h.usecase.Start(ctx)
	if err != nil {
		return onboardingdto.SimulateOutput{}, err
	}
	id := started.SessionID
	out := onboardingdto.SimulateOutput{SessionID: id, Decisions: []onboardingdto.DecisionOutput{}}
	if _, err := h.usecase.StartExperience(ctx, id); err != nil {
		return out, err
	}

	skipped := false
	for i, decision := range input.Decisions {
		if input.SkipAt == i {
			if _, err := h.usecase.SkipAll(ctx, id); err != nil {
				return out, err
			}
			skipped = true
			break
		}
		step, err := h.usecase.Decide(ctx, id, decision)
		if err != nil {
			return out, err
		}
		out.Decisions = append(out.Decisions, step)
		if step.Decision != "none" {
			settle()
		}
	}
	snap, err := h.usecase.Snapshot(ctx, id)
	if err != nil {
		return out, err
	}
	if !skipped && input.SkipAt >= len(input.Decisions) && snap.Screen == "swipe" {
		if snap, err = h.usecase.SkipAll(ctx, id); err != nil {
			return out, err
		}
	}

	if snap.Screen == "feed" {
		if out.Feed, err = h.usecase.Feed(ctx, id); err != nil {
			return out, err
		}
		if input.PlayGame {
			if err := h.playOnce(ctx, id, &out); err != nil {
				return out, err
			}
		}
		if input.ClaimID != "" {
			claimed, err := h.usecase.ClaimOffer(ctx, id, input.ClaimID)
			if err != nil {
				return out, err
			}
			out.Rewards = append(out.Rewards, claimed.Reward)
			if _, err := h.usecase.CloseReward(ctx, id); err != nil {
				return out, err
			}
		}
	}

	if out.Final, err = h.usecase.Snapshot(ctx, id); err != nil {
		return out, err
	}
	if out.End, err = h.usecase.End(ctx, id); err != nil {
		return out, err
	}
	return out, nil
}

// playOnce stands in for the mini-game: it wins the first catalog prize on
// the first personalised offer.
func (h CLIHandler) playOnce(ctx context.Context, id string, out *onboardingdto.SimulateOutput) error {
	game, err := h.usecase.PlayGame(ctx, id)
	if err != nil {
		return err
	}
	out.Game = game.Game
	catalog, err := h.usecase.Catalog(ctx)
	if err != nil {
		return err
	}
	prize := "Prize"
	if len(catalog.Prizes) > 0 {
		prize = catalog.Prizes[0]
	}
	offerID := ""
	if len(out.Feed) > 0 {
		offerID = out.Feed[0].ID
	}
	won, err := h.usecase.WinPrize(ctx, id, prize, offerID)
	if err != nil {
		return err
	}
	out.Rewards = append(out.Rewards, won.Reward)
	_, err = h.usecase.CloseReward(ctx, id)
	return err
}
