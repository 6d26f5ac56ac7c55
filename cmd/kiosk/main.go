package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"kiosk/internal/bootstrap"
	onboardingdto "kiosk/internal/modules/onboarding/dto"
	"kiosk/internal/platform/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "kiosk",
		Short:         "Self-service onboarding kiosk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "kiosk data directory (catalog.yaml, kiosk.yaml, .kiosk/)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSimulateCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newCatalogCmd(&dataDir))
	return root
}

func loadConfig(dataDir string) (config.Config, error) {
	return config.New(dataDir)
}

func loadApp(cfg config.Config, opts bootstrap.Options) (*bootstrap.App, error) {
	if opts.LogWriter == nil {
		opts.LogWriter = os.Stderr
	}
	return bootstrap.New(cfg, opts)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the kiosk terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*dataDir)
			if err != nil {
				return err
			}
			logFile, err := bootstrap.OpenLogFile(cfg)
			if err != nil {
				return err
			}
			defer logFile.Close()
			app, err := loadApp(cfg, bootstrap.Options{LogWriter: logFile})
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newSimulateCmd(dataDir *string) *cobra.Command {
	var decisions []string
	var skipAt int
	var play, realTime, asJSON bool
	var claim string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one headless session from scripted decisions",
		Example: "  kiosk simulate --decisions accept,reject,accept,reject,reject,reject --play\n" +
			"  kiosk simulate --decisions accept,accept --skip-at 1 --json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*dataDir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			app, err := loadApp(cfg, bootstrap.Options{Simulated: !realTime})
			if err != nil {
				return err
			}
			defer app.Close()

			out, err := app.KioskCLI.Simulate(context.Background(), onboardingdto.SimulateInput{
				Decisions: decisions,
				SkipAt:    skipAt,
				PlayGame:  play,
				ClaimID:   claim,
			}, app.Settle)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printSimulation(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&decisions, "decisions", nil, "decisions in card order: accept|reject")
	cmd.Flags().IntVar(&skipAt, "skip-at", -1, "card index at which to skip all (-1: never)")
	cmd.Flags().BoolVar(&play, "play", false, "play one mini-game on the feed")
	cmd.Flags().StringVar(&claim, "claim", "", "offer id to claim from the feed")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the game draw")
	cmd.Flags().BoolVar(&realTime, "real-time", false, "wait out exit windows on the wall clock")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func printSimulation(w io.Writer, out onboardingdto.SimulateOutput) {
	_, _ = fmt.Fprintf(w, "session %s\n", out.SessionID)
	for i, d := range out.Decisions {
		_, _ = fmt.Fprintf(w, "  card %d: %s\n", i+1, d.Decision)
	}
	_, _ = fmt.Fprintf(w, "screen: %s\n", out.Final.Screen)
	_, _ = fmt.Fprintf(w, "selection: [%s]\n", strings.Join(out.End.Selection, ", "))
	for _, offer := range out.Feed {
		_, _ = fmt.Fprintf(w, "  offer %s  %s\n", offer.ID, offer.Title)
	}
	if out.Game != "" {
		_, _ = fmt.Fprintf(w, "game: %s\n", out.Game)
	}
	for _, r := range out.Rewards {
		_, _ = fmt.Fprintf(w, "reward: %s (%s)\n", r.PrizeLabel, r.OfferID)
	}
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded kiosk sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*dataDir)
			if err != nil {
				return err
			}
			app, err := loadApp(cfg, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.KioskCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, item := range items {
				skipped := ""
				if item.Skipped {
					skipped = " skipped"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t[%s]%s games=%d prize=%q\n",
					item.EndedAt.Format("2006-01-02 15:04:05"),
					item.SessionID,
					strings.Join(item.Selection, ","),
					skipped,
					item.GamesPlayed,
					item.PrizeLabel,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max sessions to show")
	return cmd
}

func newCatalogCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the interests, offers and prizes in use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*dataDir)
			if err != nil {
				return err
			}
			app, err := loadApp(cfg, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.KioskCLI.Catalog(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "interests:")
			for _, item := range out.Interests {
				_, _ = fmt.Fprintf(w, "  %s\t%s\n", item.ID, item.Title)
			}
			_, _ = fmt.Fprintln(w, "offers:")
			for _, offer := range out.Offers {
				_, _ = fmt.Fprintf(w, "  %s\t%s\t[%s]\n", offer.ID, offer.Title, strings.Join(offer.Interests, ","))
			}
			_, _ = fmt.Fprintf(w, "prizes: %s\n", strings.Join(out.Prizes, ", "))
			return nil
		},
	}
}
