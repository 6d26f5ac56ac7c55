package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	onboardinginadapter "kiosk/internal/modules/onboarding/adapter/in"
	onboardingoutadapter "kiosk/internal/modules/onboarding/adapter/out"
	"kiosk/internal/modules/onboarding/service"
	onboardingusecase "kiosk/internal/modules/onboarding/usecase"
	swipedomain "kiosk/internal/modules/swipe/domain"
	"kiosk/internal/platform/clock"
	"kiosk/internal/platform/config"
	"kiosk/internal/platform/id"
	"kiosk/internal/platform/random"
	uiapp "kiosk/internal/ui/app"
)

type Options struct {
	// LogWriter receives JSON logs. Nil discards them.
	LogWriter io.Writer
	// Simulated drives exit windows from a manual scheduler instead of wall time.
	Simulated bool
}

type App struct {
	KioskCLI onboardinginadapter.CLIHandler
	KioskTUI onboardinginadapter.TUIHandler
	Config   config.Config
	Logger   *slog.Logger
	RNG      random.Source

	manual  *clock.ManualScheduler
	closers []io.Closer
}

func New(cfg config.Config, opts Options) (*App, error) {
	logger, err := NewLogger(cfg, opts.LogWriter)
	if err != nil {
		return nil, err
	}

	var rng random.Source = random.System{}
	if cfg.Seed != 0 {
		rng = random.NewSeeded(cfg.Seed)
	}
	var clk clock.Clock = clock.SystemClock{}
	var sched clock.Scheduler = clock.SystemScheduler{}
	var manual *clock.ManualScheduler
	if opts.Simulated {
		manual = clock.NewManualScheduler()
		clk, sched = manual, manual
	}

	history, err := onboardingoutadapter.NewSQLiteHistoryStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history store: %w", err)
	}
	app := &App{Config: cfg, Logger: logger, RNG: rng, manual: manual}
	if c, ok := history.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	kioskUC := onboardingusecase.NewInteractor(
		onboardingoutadapter.NewYAMLCatalogStore(cfg.CatalogPath),
		history,
		clk,
		id.UUID{},
		service.Options{
			Scheduler:       sched,
			RNG:             rng,
			Logger:          logger,
			ExitWindow:      cfg.ExitWindow,
			ClaimPrizeLabel: cfg.ClaimPrizeLabel,
		},
	)
	app.KioskCLI = onboardinginadapter.NewCLIHandler(kioskUC)
	app.KioskTUI = onboardinginadapter.NewTUIHandler(kioskUC)
	logger.Debug("bootstrap complete", "data_dir", cfg.DataDir, "simulated", opts.Simulated)
	return app, nil
}

func NewLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if w == nil {
		return slog.New(slog.DiscardHandler), nil
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// OpenLogFile opens the append-only log file the TUI writes to, since stderr
// belongs to the terminal UI.
func OpenLogFile(cfg config.Config) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Settle lets one exit window run to completion.
func (a *App) Settle() {
	if a.manual != nil {
		a.manual.Advance(a.Config.ExitWindow)
		return
	}
	time.Sleep(a.Config.ExitWindow + 10*time.Millisecond)
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.KioskTUI, app.RNG, uiapp.Options{
		DragScale: app.Config.DragScale,
		Threshold: swipedomain.SwipeThreshold,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	return err
}
