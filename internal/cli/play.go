package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/linewidth/internal/logging"
	"github.com/yaklabco/linewidth/internal/ui/pretty"
	"github.com/yaklabco/linewidth/pkg/adapter"
	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/document"
	"github.com/yaklabco/linewidth/pkg/fsutil"
)

type playFlags struct {
	config configFlags
	kind   string
}

func newPlayCommand() *cobra.Command {
	flags := &playFlags{}

	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Edit a file in the terminal with the width indicator attached",
		Long: `Open a small terminal editor with the width indicator attached to the
cursor line. Every keystroke is a text change and every cursor move is a
selection change, exactly as an editor host would report them.

Keys:
  ctrl+s   save          ctrl+t   toggle the indicator
  ctrl+r   reload config ctrl+q   quit (also esc, ctrl+c)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.kind, "kind", "", "document kind (default: detected from the file)")
	addConfigFlags(cmd.Flags(), &flags.config)

	return cmd
}

func runPlay(cmd *cobra.Command, args []string, flags *playFlags) error {
	ctx := commandContext(cmd)

	cliCfg, err := flags.config.toConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	var path string
	var content []byte
	mode := fsutil.DefaultFileMode
	if len(args) == 1 {
		path = args[0]
		data, snapshot, err := fsutil.ReadFile(ctx, path)
		switch {
		case err == nil:
			content, mode = data, snapshot.Mode
		case errors.Is(err, fsutil.ErrNotFound):
		default:
			return fmt.Errorf("open %s: %w", path, err)
		}
	}

	var opts []document.Option
	if flags.kind != "" {
		opts = append(opts, document.WithKind(flags.kind))
	}
	doc := document.New(path, string(content), opts...)

	// Logs would corrupt the alternate screen; the status bar shows
	// notifications instead.
	quiet := logging.New("error")
	annotator := adapter.New(doc, adapter.WithLogger(quiet))

	reload := func() error {
		loadResult, err := loadConfig(cmd, cliCfg)
		if err != nil {
			return err
		}
		return annotator.Reload(ctx, loadResult.Config)
	}
	if err := reload(); err != nil {
		return err
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), os.Stdout))
	model := newPlayModel(ctx, doc, annotator, styles)
	model.save = func() error {
		if path == "" {
			return errors.New("no file name; start play with a file argument to save")
		}
		return fsutil.WriteAtomic(ctx, path, []byte(doc.Content()), mode)
	}
	model.reload = reload

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// gutterWidth is the width of the line-number column including its separator.
const gutterWidth = 7

// playModel is a single-document editor that forwards every change to the
// adapter and draws the overlay it renders.
type playModel struct {
	ctx       context.Context
	doc       *document.Document
	annotator *adapter.Adapter
	styles    *pretty.Styles

	save   func() error
	reload func() error

	width  int
	height int
	top    int

	status string
}

func newPlayModel(ctx context.Context, doc *document.Document, annotator *adapter.Adapter, styles *pretty.Styles) *playModel {
	return &playModel{
		ctx:       ctx,
		doc:       doc,
		annotator: annotator,
		styles:    styles,
		width:     100,
		height:    24,
	}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	m.scroll()
	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	line, column := m.doc.Cursor()
	m.status = ""

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlQ, tea.KeyEsc:
		return tea.Quit
	case tea.KeyCtrlS:
		m.runAction("saved", m.save)
	case tea.KeyCtrlR:
		m.runAction("configuration reloaded", m.reload)
	case tea.KeyCtrlT:
		m.report(m.annotator.Execute(m.ctx, adapter.CommandToggle))
		if m.annotator.Enabled() {
			m.status = "indicator on"
		} else {
			m.status = "indicator off"
		}
	case tea.KeyUp:
		m.moveTo(line-1, column)
	case tea.KeyDown:
		m.moveTo(line+1, column)
	case tea.KeyLeft:
		m.moveTo(line, column-1)
	case tea.KeyRight:
		m.moveTo(line, column+1)
	case tea.KeyHome:
		m.moveTo(line, 0)
	case tea.KeyEnd:
		m.doc.MoveToEnd(line)
		m.selectionChanged(adapter.SourceKeyboard)
	case tea.KeyEnter:
		m.edit(m.doc.Type("\n"))
	case tea.KeyTab:
		m.edit(m.doc.Type("\t"))
	case tea.KeySpace:
		m.edit(m.doc.Type(" "))
	case tea.KeyBackspace:
		m.edit(m.doc.Backspace())
	case tea.KeyRunes:
		m.edit(m.doc.Type(string(msg.Runes)))
	}
	m.scroll()
	return nil
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	m.doc.MoveCursor(m.top+msg.Y, max(0, msg.X-gutterWidth))
	m.selectionChanged(adapter.SourceMouse)
}

func (m *playModel) moveTo(line, column int) {
	m.doc.MoveCursor(line, column)
	m.selectionChanged(adapter.SourceKeyboard)
}

func (m *playModel) selectionChanged(source adapter.Source) {
	m.report(m.annotator.HandleEvent(m.ctx, adapter.Event{Kind: adapter.EventSelectionChanged, Source: source}))
}

func (m *playModel) edit(err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.report(m.annotator.HandleEvent(m.ctx, adapter.Event{Kind: adapter.EventTextChanged}))
}

func (m *playModel) runAction(done string, action func() error) {
	if action == nil {
		return
	}
	if err := action(); err != nil {
		m.status = err.Error()
		return
	}
	m.status = done
}

func (m *playModel) report(err error) {
	if err != nil && !errors.Is(err, config.ErrConfiguration) {
		m.status = err.Error()
	}
}

// scroll keeps the cursor line inside the visible window.
func (m *playModel) scroll() {
	line, _ := m.doc.Cursor()
	rows := m.rows()
	if line < m.top {
		m.top = line
	}
	if line >= m.top+rows {
		m.top = line - rows + 1
	}
}

func (m *playModel) rows() int {
	return max(1, m.height-1)
}

func (m *playModel) View() string {
	lines := m.doc.Lines()
	cursorLine, cursorColumn := m.doc.Cursor()
	overlay, hasOverlay := m.doc.Overlay()

	var builder strings.Builder
	end := min(len(lines), m.top+m.rows())
	for i := m.top; i < end; i++ {
		builder.WriteString(m.styles.Dim.Render(fmt.Sprintf("%4d │ ", i+1)))

		text := lines[i]
		if i == cursorLine {
			text = renderCursor(text, cursorColumn)
		}
		builder.WriteString(strings.ReplaceAll(text, "\t", "    "))

		if hasOverlay && overlay.Line == i {
			builder.WriteString(m.styles.RenderLabel(overlay.Display, overlay.Style))
		}
		builder.WriteString("\n")
	}
	for i := end; i < m.top+m.rows(); i++ {
		builder.WriteString(m.styles.Dim.Render("   ~") + "\n")
	}

	builder.WriteString(m.statusLine(cursorLine, cursorColumn))
	return builder.String()
}

func (m *playModel) statusLine(line, column int) string {
	name := m.doc.Path()
	if name == "" {
		name = "[scratch]"
	}

	parts := []string{
		m.styles.FilePath.Render(name),
		m.doc.Kind(),
		fmt.Sprintf("Ln %d, Col %d", line+1, column+1),
	}
	if !m.annotator.Enabled() {
		parts = append(parts, m.styles.Dim.Render("indicator off"))
	}

	message := m.status
	if notes := m.doc.Notifications(); len(notes) > 0 && message == "" {
		last := notes[len(notes)-1]
		message = last.Severity.String() + ": " + last.Message
	}
	if message != "" {
		parts = append(parts, message)
	}

	return lipgloss.NewStyle().MaxWidth(max(1, m.width)).Render(strings.Join(parts, "  "))
}

// renderCursor draws a block cursor at a rune column.
func renderCursor(text string, column int) string {
	runes := []rune(text)
	cursor := lipgloss.NewStyle().Reverse(true)
	if column >= len(runes) {
		return text + cursor.Render(" ")
	}
	return string(runes[:column]) + cursor.Render(string(runes[column])) + string(runes[column+1:])
}
