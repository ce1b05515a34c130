// Copyright 2025 Christopher O'Connell
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package confirm implements a confirmation dialog that guards a deferred
// action. A Controller moves through three states:
//
//	CLOSED --ShowConfirm--> OPEN --HandleConfirm--> LOADING
//	LOADING --success--> CLOSED
//	LOADING --failure--> OPEN
//	OPEN/LOADING --CloseModal--> CLOSED
//
// The action runs inside a tea.Cmd and reports back with a ResultMsg. Every
// confirmation cycle has its own identifier, and results from an abandoned
// cycle are dropped.
package confirm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action is the operation run once the user confirms.
type Action func(ctx context.Context) error

// ResultMsg carries the outcome of an action back to the controller.
type ResultMsg struct {
	Cycle uint64
	Err   error
}

// ActionError reports a failed action of the named confirmation.
type ActionError struct {
	Title string
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Title, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// Controller owns the lifecycle of the pending confirmation. It is meant to
// be driven from a single Bubble Tea Update loop.
type Controller struct {
	open    bool
	loading bool
	config  *Config
	action  Action
	cycle   uint64
	focus   Focus

	spinner spinner.Model
	labels  Labels
	logger  *slog.Logger
	ctx     context.Context

	onSuccess func(Config) tea.Cmd
	onFailure func(Config, error) tea.Cmd

	width  int
	height int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger that receives action failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLabels sets the default button captions.
func WithLabels(l Labels) Option {
	return func(c *Controller) { c.labels = l.withDefaults() }
}

// WithContext sets the context handed to actions. Closing the dialog does
// not cancel it.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithSuccessHook registers a command factory run after an action succeeds.
func WithSuccessHook(fn func(Config) tea.Cmd) Option {
	return func(c *Controller) { c.onSuccess = fn }
}

// WithFailureHook registers a command factory run after an action fails,
// so the caller can surface the error. The dialog itself never shows it.
func WithFailureHook(fn func(Config, error) tea.Cmd) Option {
	return func(c *Controller) { c.onFailure = fn }
}

// New creates a closed controller.
func New(opts ...Option) *Controller {
	s := spinner.New()
	s.Spinner = spinner.Dot

	c := &Controller{
		spinner: s,
		labels:  DefaultLabels(),
		logger:  slog.New(slog.DiscardHandler),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsOpen reports whether a confirmation is pending.
func (c *Controller) IsOpen() bool { return c.open }

// IsLoading reports whether the pending action is executing.
func (c *Controller) IsLoading() bool { return c.loading }

// Config returns the pending configuration, if any.
func (c *Controller) Config() (Config, bool) {
	if c.config == nil {
		return Config{}, false
	}
	return *c.config, true
}

// Cycle returns the identifier of the current confirmation cycle.
func (c *Controller) Cycle() uint64 { return c.cycle }

// Focus returns the focused button.
func (c *Controller) Focus() Focus { return c.focus }

// SetSize records the screen size used for backdrop hit testing.
func (c *Controller) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// ShowConfirm opens the dialog for cfg and stores action. A confirmation that
// is already pending is replaced and its action is never run.
func (c *Controller) ShowConfirm(cfg Config, action Action) {
	if action == nil {
		action = func(context.Context) error { return nil }
	}
	cfg.Variant = cfg.Variant.normalized()

	if c.open {
		c.logger.Debug("confirmation replaced", "previous", c.config.Title, "next", cfg.Title)
	}

	c.cycle++
	c.config = &cfg
	c.action = action
	c.open = true
	c.loading = false
	c.focus = FocusConfirm
}

// CloseModal resets to the closed state. It is safe to call at any time; an
// action still in flight keeps running but its result is ignored.
func (c *Controller) CloseModal() {
	if c.open {
		c.cycle++
	}
	c.open = false
	c.loading = false
	c.config = nil
	c.action = nil
	c.focus = FocusConfirm
}

// HandleConfirm starts the pending action and returns the command that runs
// it. It returns nil when nothing is pending or the action is already
// running. The resulting ResultMsg must be passed back through Update.
func (c *Controller) HandleConfirm() tea.Cmd {
	if !c.open || c.action == nil || c.loading {
		return nil
	}
	c.loading = true

	cycle, action, ctx := c.cycle, c.action, c.ctx
	run := func() tea.Msg {
		return ResultMsg{Cycle: cycle, Err: invoke(ctx, action)}
	}
	return tea.Batch(run, c.spinner.Tick)
}

// invoke runs action, turning a panic into an error.
func invoke(ctx context.Context, action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panicked: %v", r)
		}
	}()
	return action(ctx)
}

// Update applies action results and, while the dialog is open, user input.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ResultMsg:
		return c.resolve(msg)

	case spinner.TickMsg:
		if !c.loading {
			return nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return cmd

	case tea.WindowSizeMsg:
		c.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if c.open {
			return c.handleKey(msg)
		}

	case tea.MouseMsg:
		if c.open {
			return c.handleMouse(msg)
		}
	}
	return nil
}

func (c *Controller) resolve(msg ResultMsg) tea.Cmd {
	if msg.Cycle != c.cycle || !c.loading {
		c.logger.Debug("stale confirmation result dropped", "cycle", msg.Cycle, "current", c.cycle)
		return nil
	}
	cfg := *c.config

	if msg.Err != nil {
		c.loading = false
		c.logger.Error("confirmed action failed",
			"title", cfg.Title,
			"variant", string(cfg.Variant),
			"cycle", msg.Cycle,
			"error", msg.Err)
		if c.onFailure != nil {
			return c.onFailure(cfg, &ActionError{Title: cfg.Title, Err: msg.Err})
		}
		return nil
	}

	c.CloseModal()
	if c.onSuccess != nil {
		return c.onSuccess(cfg)
	}
	return nil
}

func (c *Controller) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Esc cancels even while the action runs.
	if msg.String() == "esc" {
		c.CloseModal()
		return nil
	}
	if c.loading {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		return c.HandleConfirm()
	case "n", "N":
		c.CloseModal()
	case "enter":
		if c.focus == FocusConfirm {
			return c.HandleConfirm()
		}
		c.CloseModal()
	case "left", "h", "right", "l", "tab", "shift+tab":
		if c.focus == FocusConfirm {
			c.focus = FocusCancel
		} else {
			c.focus = FocusConfirm
		}
	}
	return nil
}

// handleMouse treats a left click outside the dialog box as a backdrop click.
func (c *Controller) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if c.width == 0 || c.height == 0 {
		return nil
	}
	box := c.View()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	left := (c.width - w) / 2
	top := (c.height - h) / 2
	if msg.X < left || msg.X >= left+w || msg.Y < top || msg.Y >= top+h {
		c.CloseModal()
	}
	return nil
}

// Props snapshots the controller for Render.
func (c *Controller) Props() Props {
	p := Props{
		Open:     c.open,
		Loading:  c.loading,
		Focus:    c.focus,
		BusyText: c.labels.Busy,
	}
	if c.config != nil {
		p.Title = c.config.Title
		p.Message = c.config.Message
		p.Variant = c.config.Variant
		p.ConfirmText = c.config.ConfirmText
		p.CancelText = c.config.CancelText
	}
	if p.ConfirmText == "" {
		p.ConfirmText = c.labels.Confirm
	}
	if p.CancelText == "" {
		p.CancelText = c.labels.Cancel
	}
	if c.loading {
		p.Spinner = c.spinner.View()
	}
	if c.width > 8 && c.width-4 < defaultWidth {
		p.Width = c.width - 4
	}
	return p
}

// View renders the dialog box, or "" when closed.
func (c *Controller) View() string {
	return Render(c.Props())
}
