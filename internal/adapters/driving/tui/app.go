package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/views/picker"
	"github.com/custodia-labs/placepick/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// pickerView is the only screen.
	pickerView *picker.View

	// picked is the place chosen before exit, if any.
	picked *domain.Pick

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool

	// program is set while Run is active.
	mu      sync.Mutex
	program *tea.Program
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		pickerView: picker.NewView(s, nil, ports.Picker),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.pickerView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("placepick"),
		a.pickerView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.pickerView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case messages.PlacePicked:
		pick := msg.Pick
		a.picked = &pick
		return a, tea.Quit

	case messages.Quit:
		return a, tea.Quit
	}

	a.pickerView, cmd = a.pickerView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.pickerView.View()
}

// Run starts the TUI and blocks until the user picks a place or quits.
// Picker snapshots are forwarded to the program as they are published.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	a.setProgram(p)
	defer a.setProgram(nil)

	unsubscribe := a.ports.Picker.Subscribe(func(s domain.Snapshot) {
		// Subscribers may be called from inside Update; never block the loop.
		go p.Send(messages.SnapshotChanged{Snapshot: s})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}

// Send delivers msg to the running program. It is a no-op when not running.
func (a *App) Send(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()

	if p != nil {
		go p.Send(msg)
	}
}

func (a *App) setProgram(p *tea.Program) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.program = p
}

// Picked returns the place chosen in the picker, or nil if the user quit.
func (a *App) Picked() *domain.Pick {
	return a.picked
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.pickerView.SetDimensions(width, height)
}
