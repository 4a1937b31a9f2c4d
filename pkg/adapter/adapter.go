package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/linewidth/internal/logging"
	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/indicator"
)

// ErrUnknownCommand is returned by Execute for unregistered commands.
var ErrUnknownCommand = errors.New("unknown command")

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger. Without it each call logs to the logger
// carried by its context.
func WithLogger(logger *log.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDisabled starts the adapter switched off.
func WithDisabled() Option {
	return func(a *Adapter) {
		a.enabled = false
	}
}

// Adapter reacts to host events by rendering the width indicator and
// toggling the ignore comment. It is safe for concurrent use.
type Adapter struct {
	host   Host
	logger *log.Logger

	mu      sync.Mutex
	cfg     *config.Config
	measure indicator.Measure
	enabled bool

	// pending holds lines with an edit in flight.
	pending map[int]struct{}

	// reported is the last configuration error sent to the host.
	reported string
}

// New creates an adapter for host. It computes nothing until Reload accepts
// a valid configuration.
func New(host Host, opts ...Option) *Adapter {
	a := &Adapter{
		host:    host,
		measure: indicator.MeasureChars,
		enabled: true,
		pending: make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Reload validates and installs a configuration. On failure the previous
// configuration is dropped, the error is reported to the host once, and the
// adapter stays idle until a valid configuration arrives.
func (a *Adapter) Reload(ctx context.Context, cfg *config.Config) error {
	err := cfg.Validate()
	if err == nil {
		err = comment.SettingsFrom(cfg.Comment, "").Validate()
	}
	if err != nil {
		a.mu.Lock()
		a.cfg = nil
		a.mu.Unlock()

		a.host.ClearOverlay(ctx)
		a.reportConfigError(ctx, err)
		return err
	}

	a.mu.Lock()
	a.cfg = cfg.Clone()
	a.measure = indicator.MeasureFor(cfg.Width.Unit)
	a.reported = ""
	a.mu.Unlock()

	a.log(ctx).Debug("configuration loaded",
		"breakpoints", len(cfg.Breakpoints),
		logging.FieldUnit, cfg.Width.Unit)
	return nil
}

func (a *Adapter) log(ctx context.Context) *log.Logger {
	if a.logger != nil {
		return a.logger
	}
	return logging.FromContext(ctx)
}

// Config returns a copy of the active configuration, or nil.
func (a *Adapter) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cfg == nil {
		return nil
	}
	return a.cfg.Clone()
}

// Enabled reports whether the adapter is switched on.
func (a *Adapter) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Execute runs one of the linewidth.* commands.
func (a *Adapter) Execute(ctx context.Context, command string) error {
	switch command {
	case CommandEnable:
		a.setEnabled(true)
	case CommandDisable:
		a.setEnabled(false)
	case CommandToggle:
		a.mu.Lock()
		a.enabled = !a.enabled
		a.mu.Unlock()
	case CommandRefresh:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
	return a.refresh(ctx)
}

func (a *Adapter) setEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()
}

// HandleEvent refreshes the overlay and, when needed, toggles the comment on
// the current line.
func (a *Adapter) HandleEvent(ctx context.Context, event Event) error {
	if !event.relevant() {
		return nil
	}
	a.log(ctx).Debug("event", logging.FieldEvent, event.Kind)
	return a.refresh(ctx)
}

func (a *Adapter) refresh(ctx context.Context) error {
	a.mu.Lock()
	cfg, measure, enabled := a.cfg, a.measure, a.enabled
	a.mu.Unlock()

	if !enabled || cfg == nil {
		a.host.ClearOverlay(ctx)
		return nil
	}

	line, err := a.host.CurrentLine(ctx)
	if errors.Is(err, ErrHostUnavailable) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading current line: %w", err)
	}

	kind, err := a.host.DocumentKind(ctx)
	if errors.Is(err, ErrHostUnavailable) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading document kind: %w", err)
	}

	if cfg.IsExcluded(kind) || line.Text == "" {
		a.host.ClearOverlay(ctx)
		return nil
	}

	width := measure(line.Text)
	display, err := indicator.Resolve(width, cfg.Breakpoints)
	if err != nil {
		a.reportConfigError(ctx, err)
		return err
	}
	a.host.RenderOverlay(ctx, Overlay{
		Line:    line.Number,
		Width:   width,
		Display: display,
		Style:   cfg.Style,
	})

	settings := comment.SettingsFrom(cfg.Comment, kind)
	action := comment.Decide(line.Text, line.Cursor, settings, cfg.LastColumn(), measure)
	if action.Kind == comment.None {
		return nil
	}

	return a.apply(ctx, line, action)
}

func (a *Adapter) apply(ctx context.Context, line Line, action comment.Action) error {
	a.mu.Lock()
	if _, busy := a.pending[line.Number]; busy {
		a.mu.Unlock()
		a.log(ctx).Debug("edit already pending", logging.FieldLine, line.Number)
		return nil
	}
	a.pending[line.Number] = struct{}{}
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		delete(a.pending, line.Number)
		a.mu.Unlock()
	}()

	edit := Edit{
		Line:    line.Number,
		Version: line.Version,
		Change:  action.Edit(line.Text),
		Kind:    action.Kind,
	}

	err := a.host.ApplyEdit(ctx, edit)
	switch {
	case errors.Is(err, ErrStaleEdit):
		a.log(ctx).Debug("discarding stale edit",
			logging.FieldLine, line.Number,
			logging.FieldVersion, line.Version)
		return nil
	case err != nil:
		a.log(ctx).Warn("comment edit failed",
			logging.FieldAction, action.Kind,
			logging.FieldLine, line.Number,
			logging.FieldError, err)
		a.host.Notify(ctx, Notification{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("could not %s comment on line %d: %v", action.Kind, line.Number+1, err),
			Err:      err,
		})
		return fmt.Errorf("%s comment: %w", action.Kind, err)
	}

	a.log(ctx).Debug("comment edit applied",
		logging.FieldAction, action.Kind,
		logging.FieldLine, line.Number)

	if action.RestoresCursor() {
		if err := a.host.SetCursor(ctx, line.Number, action.Start); err != nil {
			a.log(ctx).Debug("cursor restore failed", logging.FieldError, err)
		}
	}
	return nil
}

// reportConfigError notifies the host once per distinct message.
func (a *Adapter) reportConfigError(ctx context.Context, err error) {
	message := err.Error()

	a.mu.Lock()
	if a.reported == message {
		a.mu.Unlock()
		return
	}
	a.reported = message
	a.mu.Unlock()

	a.log(ctx).Error("invalid configuration", logging.FieldError, err)
	a.host.Notify(ctx, Notification{
		Severity: SeverityError,
		Message:  message,
		Err:      err,
	})
}
