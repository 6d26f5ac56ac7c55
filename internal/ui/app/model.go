package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	onboardingdto "kiosk/internal/modules/onboarding/dto"
	"kiosk/internal/ui/components"
	"kiosk/internal/ui/theme"
	feedview "kiosk/internal/ui/views/feed"
	heroview "kiosk/internal/ui/views/hero"
	swipeview "kiosk/internal/ui/views/swipe"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type kioskPort interface {
	Start(ctx context.Context) (onboardingdto.SessionOutput, error)
	StartExperience(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error)
	Drag(ctx context.Context, id string, offset float64) (onboardingdto.SnapshotOutput, error)
	Release(ctx context.Context, id string, offset float64) (onboardingdto.DecisionOutput, error)
	Decide(ctx context.Context, id, decision string) (onboardingdto.DecisionOutput, error)
	SkipAll(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error)
	PlayGame(ctx context.Context, id string) (onboardingdto.GameOutput, error)
	WinPrize(ctx context.Context, id, prizeLabel, offerID string) (onboardingdto.SnapshotOutput, error)
	ClaimOffer(ctx context.Context, id, offerID string) (onboardingdto.SnapshotOutput, error)
	CloseGame(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error)
	CloseReward(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error)
	Restart(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error)
	Snapshot(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error)
	Feed(ctx context.Context, id string) ([]onboardingdto.OfferOutput, error)
	Prizes(ctx context.Context) ([]string, error)
	End(ctx context.Context, id string) (onboardingdto.EndOutput, error)
}

// RNG picks the prize a finished mini-game pays out.
type RNG interface {
	Intn(n int) int
}

type Options struct {
	// DragScale converts terminal columns into drag offset units.
	DragScale float64
	Threshold float64
	// Frame is the refresh interval while an exit window is running.
	Frame time.Duration
	// Nudge is the offset one arrow press adds to the drag.
	Nudge float64
}

// ─── async messages ──────────────────────────────────────────────────────────

type startedMsg struct {
	out    onboardingdto.SessionOutput
	prizes []string
	err    error
}

type snapshotMsg struct {
	snap onboardingdto.SnapshotOutput
	err  error
}

type decisionMsg struct {
	out onboardingdto.DecisionOutput
	err error
}

type gameMsg struct {
	out onboardingdto.GameOutput
	err error
}

type feedMsg struct {
	offers []onboardingdto.OfferOutput
	err    error
}

type endedMsg struct {
	out onboardingdto.EndOutput
	err error
}

type frameMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Start   key.Binding
	Accept  key.Binding
	Reject  key.Binding
	Left    key.Binding
	Right   key.Binding
	Release key.Binding
	SkipAll key.Binding
	Play    key.Binding
	Claim   key.Binding
	Close   key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start")),
		Accept:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "like")),
		Reject:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "nope")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "drag")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "drag")),
		Release: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "let go")),
		SkipAll: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip all")),
		Play:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "play a game")),
		Claim:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "claim / spin")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Restart: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "restart")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Reject, k.Play, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Left, k.Release, k.Accept, k.Reject, k.SkipAll},
		{k.Play, k.Claim, k.Close},
		{k.Restart, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model for one kiosk session. Session state
// lives behind the port; the model keeps the last snapshot for rendering.
type Model struct {
	port kioskPort
	rng  RNG
	opts Options

	sessionID string
	snap      onboardingdto.SnapshotOutput
	prizes    []string
	ready     bool

	swipeView swipeview.Model
	feedView  feedview.Model
	feedShown bool

	dragging  bool
	dragStart int

	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(port kioskPort, rng RNG, opts Options) Model {
	if opts.DragScale <= 0 {
		opts.DragScale = 1
	}
	if opts.Frame <= 0 {
		opts.Frame = 50 * time.Millisecond
	}
	if opts.Nudge <= 0 {
		opts.Nudge = 40
	}
	return Model{
		port:      port,
		rng:       rng,
		opts:      opts,
		swipeView: swipeview.New(opts.Threshold),
		feedView:  feedview.New(),
		keys:      defaultKeys(),
		help:      help.New(),
		status:    "starting",
	}
}

func (m Model) Init() tea.Cmd {
	return m.startCmd()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.swipeView.SetSize(m.width, m.contentHeight())
		m.feedView.SetSize(m.width, m.contentHeight())
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.status = "start failed: " + msg.err.Error()
			return m, tea.Quit
		}
		m.sessionID = msg.out.SessionID
		m.snap = msg.out.Snapshot
		m.prizes = msg.prizes
		m.ready = true
		m.status = "ready"
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		return m.apply(msg.snap)

	case decisionMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if msg.out.Decision != "none" {
			m.status = msg.out.Decision
		}
		return m.apply(msg.out.Snapshot)

	case gameMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = "playing " + msg.out.Game
		return m.apply(msg.out.Snapshot)

	case feedMsg:
		if msg.err != nil {
			m.status = "feed: " + msg.err.Error()
			return m, nil
		}
		m.feedShown = true
		return m, m.feedView.SetOffers(msg.offers)

	case endedMsg:
		if msg.err != nil {
			m.status = "end: " + msg.err.Error()
		}
		return m, tea.Quit

	case frameMsg:
		if !m.snap.Animating {
			return m, nil
		}
		return m, m.refreshCmd()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// apply adopts a fresh snapshot and schedules whatever it implies: another
// frame during an exit window, or loading the feed once the pass is done.
// Commands finish out of order, so a snapshot older than the held one is dropped.
func (m Model) apply(snap onboardingdto.SnapshotOutput) (tea.Model, tea.Cmd) {
	if snap.Version < m.snap.Version {
		return m, nil
	}
	m.snap = snap
	var cmds []tea.Cmd
	if snap.Animating {
		cmds = append(cmds, m.frameCmd())
	}
	switch snap.Screen {
	case "feed":
		if !m.feedShown {
			cmds = append(cmds, m.feedCmd())
		}
	default:
		m.feedShown = false
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if !m.ready {
			return m, tea.Quit
		}
		return m, m.endCmd()
	}
	if !m.ready {
		return m, nil
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Close) {
			m.showHelp = false
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}
	if key.Matches(msg, m.keys.Restart) {
		return m, m.snapshotCall(m.port.Restart)
	}

	switch m.snap.Screen {
	case "hero":
		if key.Matches(msg, m.keys.Start, m.keys.Claim) {
			return m, m.snapshotCall(m.port.StartExperience)
		}
	case "swipe":
		switch {
		case key.Matches(msg, m.keys.Accept):
			return m, m.decideCmd("accept")
		case key.Matches(msg, m.keys.Reject):
			return m, m.decideCmd("reject")
		case key.Matches(msg, m.keys.SkipAll):
			return m, m.snapshotCall(m.port.SkipAll)
		case m.snap.Animating:
			return m, nil
		case key.Matches(msg, m.keys.Left):
			return m, m.dragCmd(m.snap.DragOffset - m.opts.Nudge)
		case key.Matches(msg, m.keys.Right):
			return m, m.dragCmd(m.snap.DragOffset + m.opts.Nudge)
		case key.Matches(msg, m.keys.Release):
			return m, m.releaseCmd(m.snap.DragOffset)
		}
	case "feed":
		return m.handleFeedKey(msg)
	}
	return m, nil
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.snap.Game != "none" && m.snap.Game != "":
		switch {
		case key.Matches(msg, m.keys.Claim):
			return m, m.winCmd()
		case key.Matches(msg, m.keys.Close):
			return m, m.snapshotCall(m.port.CloseGame)
		}
		return m, nil
	case m.snap.Reward.Visible:
		if key.Matches(msg, m.keys.Claim, m.keys.Close) {
			return m, m.snapshotCall(m.port.CloseReward)
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Play):
		return m, m.playCmd()
	case key.Matches(msg, m.keys.Claim):
		if offer, ok := m.feedView.Selected(); ok {
			return m, m.claimCmd(offer.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.feedView, cmd = m.feedView.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || m.snap.Screen != "swipe" {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && !m.snap.Animating {
			m.dragging = true
			m.dragStart = msg.X
		}
	case tea.MouseActionMotion:
		if m.dragging {
			return m, m.dragCmd(m.offset(msg.X))
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			return m, m.releaseCmd(m.offset(msg.X))
		}
	}
	return m, nil
}

func (m Model) offset(x int) float64 {
	return float64(x-m.dragStart) * m.opts.DragScale
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	status := m.renderStatusBar()
	h := m.contentHeight()

	var content string
	switch {
	case !m.ready:
		content = lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, theme.Muted.Render(m.status))
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(h).Render(m.help.View(m.keys))
	case m.snap.Screen == "hero":
		content = heroview.View(m.width, h)
	case m.snap.Screen == "swipe":
		content = m.swipeView.View(m.snap)
	case m.snap.Screen == "feed":
		content = m.renderFeed(h)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (m Model) renderFeed(h int) string {
	switch {
	case m.snap.Game != "none" && m.snap.Game != "":
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, components.GameModal(m.snap.Game, m.width-8))
	case m.snap.Reward.Visible:
		modal := components.RewardModal(m.snap.Reward.PrizeLabel, m.feedView.Title(m.snap.Reward.OfferID), m.width-8)
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, modal)
	}
	return lipgloss.NewStyle().Width(m.width).Height(h).Render(m.feedView.View())
}

func (m Model) renderHeader() string {
	title := theme.Hot.Render("kiosk")
	if len(m.snap.Selection) > 0 {
		title += theme.Muted.Render("  " + strings.Join(m.snap.Selection, " · "))
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(title) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.snap.Screen == "swipe" {
		left = fmt.Sprintf("%s  %d liked", left, len(m.snap.Accepted))
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

func (m Model) contentHeight() int {
	if h := m.height - 4; h > 1 {
		return h
	}
	return 1
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		prizes, err := m.port.Prizes(ctx)
		if err != nil {
			return startedMsg{err: err}
		}
		out, err := m.port.Start(ctx)
		return startedMsg{out: out, prizes: prizes, err: err}
	}
}

func (m Model) snapshotCall(fn func(context.Context, string) (onboardingdto.SnapshotOutput, error)) tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		snap, err := fn(context.Background(), id)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return m.snapshotCall(m.port.Snapshot)
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.opts.Frame, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) dragCmd(offset float64) tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		snap, err := m.port.Drag(context.Background(), id, offset)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) releaseCmd(offset float64) tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		out, err := m.port.Release(context.Background(), id, offset)
		return decisionMsg{out: out, err: err}
	}
}

func (m Model) decideCmd(decision string) tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		out, err := m.port.Decide(context.Background(), id, decision)
		return decisionMsg{out: out, err: err}
	}
}

func (m Model) playCmd() tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		out, err := m.port.PlayGame(context.Background(), id)
		return gameMsg{out: out, err: err}
	}
}

// winCmd finishes the open game with a random catalog prize attached to the
// highlighted offer.
func (m Model) winCmd() tea.Cmd {
	id := m.sessionID
	prize := "Prize"
	if len(m.prizes) > 0 {
		prize = m.prizes[m.rng.Intn(len(m.prizes))]
	}
	offerID := ""
	if offer, ok := m.feedView.Selected(); ok {
		offerID = offer.ID
	}
	return func() tea.Msg {
		snap, err := m.port.WinPrize(context.Background(), id, prize, offerID)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) claimCmd(offerID string) tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		snap, err := m.port.ClaimOffer(context.Background(), id, offerID)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) feedCmd() tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		offers, err := m.port.Feed(context.Background(), id)
		return feedMsg{offers: offers, err: err}
	}
}

func (m Model) endCmd() tea.Cmd {
	id := m.sessionID
	return func() tea.Msg {
		out, err := m.port.End(context.Background(), id)
		return endedMsg{out: out, err: err}
	}
}
