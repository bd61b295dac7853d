package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/grid"
	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/scheduler"
)

// Options tunes the front end.
type Options struct {
	// CellWidth is the rendered width of every column.
	CellWidth int
	Keys      *AppKeys
	// Now is the clock used for double click detection.
	Now func() time.Time
}

type wakeMsg struct{}

// Model is the Bubble Tea model of one grid.
type Model struct {
	grid.BaseObserver

	ctx    context.Context
	logger *slog.Logger
	grid   *grid.Controller
	loop   *scheduler.Loop
	keys   AppKeys
	help   help.Model
	layout layout
	clicks clicks
	status string
	width  int

	unsubscribe func()
}

// New builds a model for g. The loop must be the scheduler g was built on.
func New(ctx context.Context, g *grid.Controller, loop *scheduler.Loop, opts Options) *Model {
	if opts.CellWidth <= 0 {
		opts.CellWidth = defaultCellWidth
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	keys := DefaultAppKeys()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	m := &Model{
		ctx:    ctx,
		logger: ctxlog.FromContext(ctx).With("component", "tui"),
		grid:   g,
		loop:   loop,
		keys:   keys,
		help:   help.New(),
		layout: layout{cellWidth: opts.CellWidth, columns: g.NumColumns(), rows: g.Len(), height: 24},
		clicks: clicks{now: opts.Now},
	}
	m.unsubscribe = g.Subscribe(m)
	return m
}

// Close detaches the model from its grid.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Status returns the current status line message.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) ErrorReported(err error) {
	m.status = err.Error()
}

func (m *Model) RowStateChanged(rowID string, state persist.RowState, err error) {
	if state == persist.Errored && err != nil {
		m.status = fmt.Sprintf("row %s: %v", rowID, err)
	}
}

func (m *Model) RowCountChanged(rows int) {
	m.layout.rows = rows
}

func (m *Model) Init() tea.Cmd {
	return m.waitForWake()
}

// waitForWake blocks until work is posted to the loop from outside Update.
func (m *Model) waitForWake() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.loop.Wake():
			return wakeMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wakeMsg:
		m.settle()
		return m, m.waitForWake()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.layout.height = msg.Height
		m.help.Width = msg.Width
		m.follow()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.grid.CommitEditor()
			m.settle()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.AddRow):
			m.grid.AddRow()
		case key.Matches(msg, m.keys.DeleteRow):
			m.grid.DeleteSelectedRow()
		default:
			m.status = ""
			m.grid.HandleKey(keyEvent(msg))
		}
		m.settle()
		m.follow()
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.layout.top = max(m.layout.top-1, 0)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.layout.top = max(min(m.layout.top+1, m.layout.rows-m.layout.visibleRows()), 0)
			return m, nil
		}
		for _, ev := range m.clicks.events(msg, m.layout.hitTest(msg.X, msg.Y)) {
			m.grid.HandlePointer(ev)
		}
		m.settle()
		return m, nil
	}
	return m, nil
}

// settle runs every task queued on the loop, including ones queued by the
// tasks themselves.
func (m *Model) settle() {
	if n := m.loop.Drain(); n > 0 {
		m.logger.Debug("Drained loop.", "tasks", n)
	}
	m.layout.rows = m.grid.Len()
	m.layout.top = max(min(m.layout.top, m.layout.rows-m.layout.visibleRows()), 0)
}

// follow scrolls so the selected cell stays visible.
func (m *Model) follow() {
	if cell, ok := m.grid.Selection(); ok {
		m.layout.top = m.layout.scrollTo(cell.Row)
	}
}

// Run shows the grid until the user quits or ctx is done.
func Run(ctx context.Context, g *grid.Controller, loop *scheduler.Loop, opts Options, progOpts ...tea.ProgramOption) error {
	// The last waitForWake command outlives the program; cancelling its
	// context releases it.
	modelCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	m := New(modelCtx, g, loop, opts)
	defer m.Close()
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)}, progOpts...)
	_, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
