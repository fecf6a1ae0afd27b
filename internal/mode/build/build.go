// Package build implements the walkthrough mode. One engine session walks
// the chosen template's groups in order; the left pane asks the current
// question and the right pane shows the command growing answer by answer.
package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"go.opentelemetry.io/otel/trace"

	"github.com/snova-cli/snova/internal/engine"
	"github.com/snova-cli/snova/internal/keys"
	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/mode"
	"github.com/snova-cli/snova/internal/registry"
	"github.com/snova-cli/snova/internal/template"
	"github.com/snova-cli/snova/internal/tracing"
	uihelp "github.com/snova-cli/snova/internal/ui/help"
	"github.com/snova-cli/snova/internal/ui/input"
	"github.com/snova-cli/snova/internal/ui/menu"
	"github.com/snova-cli/snova/internal/ui/styles"
	"github.com/snova-cli/snova/internal/ui/toaster"
)

// ViewMode represents overlay states within build mode.
type ViewMode int

const (
	ViewPrompt ViewMode = iota
	ViewHelp
)

// Model holds the build mode state.
type Model struct {
	services mode.Services
	entry    *registry.Entry
	eng      *engine.Engine
	span     trace.Span

	// Current question
	prompt     *engine.Prompt
	promptErr  string // validation or engine complaint, cleared on the next action
	input      input.Model
	flagMenu   menu.Model
	suggestIdx int

	// Set once the engine completes
	final string

	// Overlays
	view ViewMode
	help uihelp.Model

	hints help.Model
	keys  keys.BuildKeyMap

	// Layout
	width  int
	height int
}

// AcceptedMsg is sent when the user accepts the finished command. The app
// exits and prints it for the shell.
type AcceptedMsg struct {
	Command string
}

// CancelledMsg is sent when the walkthrough is abandoned. The app returns
// to browse mode.
type CancelledMsg struct{}

// New starts a build session for the given registry entry.
func New(services mode.Services, entry *registry.Entry) Model {
	eng := engine.New(entry.Template)

	// With no tracer configured the span from the empty context is a
	// no-op, so every decision can record unconditionally.
	span := trace.SpanFromContext(context.Background())
	if services.Tracer != nil {
		_, span = services.Tracer.StartSession(context.Background(), eng.ID(), entry.Template.Raw)
	}

	m := Model{
		services: services,
		entry:    entry,
		eng:      eng,
		span:     span,
		input:    input.New(),
		flagMenu: menu.New("", nil),
		view:     ViewPrompt,
		help:     uihelp.NewBuild(),
		hints:    help.New(),
		keys:     keys.DefaultBuildKeyMap(),
	}
	return m.refreshPrompt()
}

// Init returns initial commands for the mode.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize handles terminal resize.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height

	// Guard against zero dimensions
	if width == 0 || height == 0 {
		return m
	}

	leftWidth := width / 2
	m.input.SetWidth(max(leftWidth-4, 1))
	// The menu border adds two columns, so the box itself stays inside
	// the left panel.
	m.flagMenu = m.flagMenu.SetBoxWidth(max(leftWidth-2, 22))
	m.help = m.help.SetSize(width, height)
	m.hints.Width = width

	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.view == ViewPrompt && m.onFlagMenu() {
			var cmd tea.Cmd
			m.flagMenu, cmd = m.flagMenu.Update(msg)
			return m, cmd
		}
		return m, nil

	case menu.ChooseMsg:
		if m.view == ViewPrompt && m.onFlagMenu() {
			return m.chooseFlag(msg.Index)
		}
		return m, nil
	}

	return m, nil
}

// onFlagMenu reports whether the current question is a flag menu.
func (m Model) onFlagMenu() bool {
	return m.prompt != nil && m.prompt.Kind == engine.PromptFlagMenu && !m.eng.Done()
}

// handleKey dispatches key events by overlay state, then by prompt kind.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.view == ViewHelp {
		return m.handleHelpKeys(msg)
	}

	if msg.Type == tea.KeyCtrlC {
		if !m.eng.Done() {
			m.eng.Cancel()
			tracing.Cancelled(m.span)
		}
		return m, tea.Quit
	}

	if m.eng.State() == engine.StateComplete {
		return m.handleCompleteKeys(msg)
	}
	if m.prompt == nil {
		return m, nil
	}

	switch m.prompt.Kind {
	case engine.PromptValue:
		return m.handleValueKeys(msg)
	case engine.PromptFlagArgument:
		return m.handleArgumentKeys(msg)
	default:
		return m.handleMenuKeys(msg)
	}
}

// handleHelpKeys processes keys while the help overlay is open.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
		m.view = ViewPrompt
	}
	return m, nil
}

// handleValueKeys processes keys while a value group is being answered.
// Everything except enter, tab and esc types into the input.
func (m Model) handleValueKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		return m.cancelSession()
	case tea.KeyEnter:
		return m.submitValue()
	case tea.KeyTab:
		return m.cycleSuggestion(), nil
	}

	m.promptErr = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleArgumentKeys processes keys while a flag argument is collected.
// Esc abandons the pending flag and returns to the menu.
func (m Model) handleArgumentKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		if err := m.eng.CancelFlagArgument(); err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		m.promptErr = ""
		return m.refreshPrompt(), nil
	case tea.KeyEnter:
		return m.submitArgument()
	case tea.KeyTab:
		return m.cycleSuggestion(), nil
	}

	m.promptErr = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleMenuKeys processes keys on a flag menu.
func (m Model) handleMenuKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Choose):
		return m.chooseFlag(m.flagMenu.SelectedIndex())

	case key.Matches(msg, m.keys.Skip):
		if !m.prompt.AllowSkip {
			if m.prompt.Group.Optional {
				m.promptErr = "flags are already picked, press d to finish"
			} else {
				m.promptErr = fmt.Sprintf("%s is required and cannot be skipped", m.prompt.Group.Name)
			}
			return m, nil
		}
		if err := m.eng.SkipGroup(); err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		tracing.GroupDecided(m.span, m.prompt.Group.Name, "skipped")
		m.promptErr = ""
		return m.refreshPrompt(), nil

	case key.Matches(msg, m.keys.Done):
		group := m.prompt.Group.Name
		if err := m.eng.ConfirmGroup(); err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		tracing.GroupDecided(m.span, group, "confirmed")
		m.promptErr = ""
		return m.refreshPrompt(), nil

	case key.Matches(msg, m.keys.Deselect):
		if err := m.eng.DeselectFlag(m.flagMenu.SelectedIndex()); err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		m.promptErr = ""
		return m.refreshPrompt(), nil

	case key.Matches(msg, m.keys.Yank):
		return m.yank(m.eng.Preview())

	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m.cancelSession()
	}

	m.promptErr = ""
	var cmd tea.Cmd
	m.flagMenu, cmd = m.flagMenu.Update(msg)
	return m, cmd
}

// handleCompleteKeys processes keys on the finished-command screen.
func (m Model) handleCompleteKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Choose):
		final := m.final
		return m, func() tea.Msg { return AcceptedMsg{Command: final} }

	case key.Matches(msg, m.keys.Yank):
		return m.yank(m.final)

	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m.cancelSession()
	}
	return m, nil
}

// submitValue answers the current value group with the typed text. An
// empty submit skips the group when it is optional.
func (m Model) submitValue() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	group := m.prompt.Group.Name

	if text == "" && m.prompt.AllowSkip {
		if err := m.eng.SkipGroup(); err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		tracing.GroupDecided(m.span, group, "skipped")
		m.promptErr = ""
		return m.refreshPrompt(), nil
	}

	if err := m.eng.ProvideValue(text); err != nil {
		m.promptErr = err.Error()
		return m, nil
	}
	tracing.GroupDecided(m.span, group, "value")
	m.promptErr = ""
	return m.refreshPrompt(), nil
}

// submitArgument answers the pending flag's argument.
func (m Model) submitArgument() (Model, tea.Cmd) {
	flag := m.prompt.Flag
	if err := m.eng.ProvideFlagArgument(strings.TrimSpace(m.input.Value())); err != nil {
		m.promptErr = err.Error()
		return m, nil
	}
	tracing.FlagArgument(m.span, flag.Template)
	m.promptErr = ""
	return m.refreshPrompt(), nil
}

// chooseFlag picks the flag at menu index i.
func (m Model) chooseFlag(i int) (Model, tea.Cmd) {
	if m.prompt == nil || i < 0 || i >= len(m.prompt.Choices) {
		return m, nil
	}
	flag := m.prompt.Choices[i].Flag

	if err := m.eng.ChooseFlag(i); err != nil {
		m.promptErr = err.Error()
		return m, nil
	}
	if !flag.TakesValue() {
		tracing.FlagPicked(m.span, flag.Template)
	}
	m.promptErr = ""
	return m.refreshPrompt(), nil
}

// cycleSuggestion fills the input with the next quick pick.
func (m Model) cycleSuggestion() Model {
	s := m.prompt.Suggest
	if len(s) == 0 {
		return m
	}
	m.input.SetValue(s[m.suggestIdx%len(s)])
	m.suggestIdx++
	m.promptErr = ""
	return m
}

// cancelSession abandons the walkthrough and hands control back to the
// app. A session that already completed keeps its trace.
func (m Model) cancelSession() (Model, tea.Cmd) {
	if !m.eng.Done() {
		m.eng.Cancel()
		tracing.Cancelled(m.span)
	}
	return m, func() tea.Msg { return CancelledMsg{} }
}

// yank copies text to the clipboard and reports the outcome as a toast.
func (m Model) yank(text string) (Model, tea.Cmd) {
	if strings.TrimSpace(text) == "" {
		return m, nil
	}
	if err := m.services.Clipboard.Copy(text); err != nil {
		return m, func() tea.Msg {
			return mode.ShowToastMsg{Message: "Clipboard error: " + err.Error(), Style: toaster.StyleError}
		}
	}
	return m, func() tea.Msg { return mode.ShowToastMsg{Message: "Copied: " + text, Style: toaster.StyleSuccess} }
}

// refreshPrompt pulls the next question from the engine after a
// successful operation and prepares the matching widget.
func (m Model) refreshPrompt() Model {
	switch m.eng.State() {
	case engine.StateComplete:
		final, err := m.eng.Final()
		if err != nil {
			log.ErrorErr(log.CatEngine, "final render failed", err, "template", m.entry.Template.Raw)
			m.promptErr = err.Error()
			return m
		}
		m.final = final
		tracing.Completed(m.span, final)
		return m
	case engine.StateCancelled:
		return m
	}

	prevGroup := ""
	if m.prompt != nil && m.prompt.Group != nil {
		prevGroup = m.prompt.Group.Name
	}

	p, err := m.eng.Prompt()
	if err != nil {
		log.ErrorErr(log.CatEngine, "prompt unavailable", err, "template", m.entry.Template.Raw)
		m.promptErr = err.Error()
		return m
	}
	m.prompt = p

	switch p.Kind {
	case engine.PromptValue, engine.PromptFlagArgument:
		m.input.Reset()
		m.input.SetPlaceholder(placeholderFor(p.Expect))
		m.input.Focus()
		m.suggestIdx = 0

	case engine.PromptFlagMenu:
		opts := flagOptions(p)
		if p.Group.Name == prevGroup {
			// Same group, keep the cursor where it was
			m.flagMenu = m.flagMenu.SetOptions(opts)
		} else {
			m.flagMenu = menu.New(p.Group.Name, opts).
				SetBoxWidth(max(m.width/2-2, 22))
		}
		m.flagMenu = m.flagMenu.SetHint(menuHint(p))
	}

	return m
}

// flagOptions maps the prompt's choices to menu rows.
func flagOptions(p *engine.Prompt) []menu.Option {
	opts := make([]menu.Option, len(p.Choices))
	for i, c := range p.Choices {
		opts[i] = menu.Option{
			Label:       template.Display(c.Flag.Template),
			Description: c.Flag.Description,
			Value:       fmt.Sprintf("%d", c.Index),
			Count:       c.Chosen,
			Disabled:    c.Disabled,
		}
	}
	return opts
}

// menuHint summarizes the legal moves on a flag menu.
func menuHint(p *engine.Prompt) string {
	if p.AllowSkip {
		return "enter picks, s skips, d finishes"
	}
	return "enter picks, d finishes"
}

// placeholderFor matches the input placeholder to the expected type.
func placeholderFor(v template.ValueType) string {
	switch v {
	case template.ValueNumber:
		return "a whole number, such as 3 or -1"
	case template.ValuePath:
		return "a file or directory path"
	default:
		return "any text"
	}
}

// View renders the build mode.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var content string
	if m.eng.State() == engine.StateComplete {
		content = m.renderComplete()
	} else {
		content = m.renderMainView()
	}

	if m.view == ViewHelp {
		return m.help.Overlay(content)
	}
	return content
}

// renderMainView renders the 50/50 split with the hint line below.
func (m Model) renderMainView() string {
	gap := 1
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - gap

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderPromptPanel(leftWidth),
		strings.Repeat(" ", gap),
		m.renderPreviewPanel(rightWidth),
	)

	return lipgloss.JoinVertical(lipgloss.Left, panels, m.renderHints())
}

// renderPromptPanel renders the current question.
func (m Model) renderPromptPanel(width int) string {
	if m.prompt == nil {
		return errStyle.Render(m.promptErr)
	}

	var sb strings.Builder
	sb.WriteString(stepStyle.Render(m.stepLabel()))
	sb.WriteString("\n\n")

	switch m.prompt.Kind {
	case engine.PromptValue:
		sb.WriteString(m.renderInputBox(m.prompt.Group.Name, width))
	case engine.PromptFlagArgument:
		sb.WriteString(m.renderInputBox(template.Display(m.prompt.Flag.Template), width))
	case engine.PromptFlagMenu:
		sb.WriteString(m.flagMenu.View())
	}

	if m.prompt.Kind != engine.PromptFlagMenu {
		if chips := m.renderSuggestions(width); chips != "" {
			sb.WriteString("\n")
			sb.WriteString(chips)
		}
	}

	if m.promptErr != "" {
		sb.WriteString("\n")
		sb.WriteString(errStyle.Render(ansi.Truncate(m.promptErr, max(width-2, 10), "…")))
	}

	return sb.String()
}

// renderInputBox renders the text input in a titled section, with the
// expected value type as the title hint.
func (m Model) renderInputBox(title string, width int) string {
	rows := strings.Split(m.input.View(), "\n")
	content := make([]string, len(rows))
	for i, r := range rows {
		content[i] = " " + r
	}
	return styles.RenderFormSection(
		content,
		title,
		m.prompt.Expect.String(),
		width,
		true,
		styles.BorderHighlightFocusColor,
	)
}

// renderSuggestions renders the quick picks with the last one inserted
// highlighted.
func (m Model) renderSuggestions(width int) string {
	s := m.prompt.Suggest
	if len(s) == 0 {
		return ""
	}

	chips := make([]string, len(s))
	for i, v := range s {
		style := chipStyle
		if m.suggestIdx > 0 && (m.suggestIdx-1)%len(s) == i {
			style = chipActiveStyle
		}
		chips[i] = style.Render(v)
	}

	row := " " + chipLabelStyle.Render("tab:") + " " + strings.Join(chips, "  ")
	return ansi.Truncate(row, max(width-1, 10), "…")
}

// renderPreviewPanel renders the command as answered so far, with the
// source template for reference.
func (m Model) renderPreviewPanel(width int) string {
	wrapWidth := max(width-8, 10)

	var sb strings.Builder
	sb.WriteString(cmdStyle.Render(wordwrap.String(m.eng.Preview(), wrapWidth)))
	sb.WriteString("\n\n")
	sb.WriteString(tmplLabelStyle.Render("from template"))
	sb.WriteString("\n")
	sb.WriteString(wordwrap.String(template.Highlight(m.entry.Template.Raw), wrapWidth))

	content := lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
	return styles.RenderWithTitleBorder(
		content,
		"Command",
		width,
		m.height-1,
		false,
		styles.OverlayTitleColor,
		styles.BorderHighlightFocusColor,
	)
}

// renderComplete renders the finished command centered on its own.
func (m Model) renderComplete() string {
	boxWidth := max(min(m.width-8, 80), 24)
	wrapWidth := max(boxWidth-6, 16)

	var sb strings.Builder
	sb.WriteString(finalCmdStyle.Render(wordwrap.String(m.final, wrapWidth)))
	sb.WriteString("\n\n")
	sb.WriteString(hintLineStyle.Render("enter accepts, y copies, esc goes back"))

	content := lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
	box := styles.RenderWithTitleBorder(
		content,
		"Command Ready",
		boxWidth,
		lipgloss.Height(content)+2,
		true,
		styles.OverlayTitleColor,
		styles.BorderHighlightFocusColor,
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderHints renders the bottom key hints for the current question.
func (m Model) renderHints() string {
	if m.prompt != nil && m.prompt.Kind != engine.PromptFlagMenu {
		parts := []string{"enter accepts"}
		if m.prompt.Kind == engine.PromptValue && m.prompt.AllowSkip {
			parts = append(parts, "empty enter skips")
		}
		if len(m.prompt.Suggest) > 0 {
			parts = append(parts, "tab cycles suggestions")
		}
		if m.prompt.Kind == engine.PromptFlagArgument {
			parts = append(parts, "esc returns to the flags")
		} else {
			parts = append(parts, "esc cancels")
		}
		return hintLineStyle.Render(strings.Join(parts, ", "))
	}
	return hintLineStyle.Render(m.hints.View(m.keys))
}

// stepLabel names the position in the walkthrough.
func (m Model) stepLabel() string {
	order := m.entry.Template.GroupOrder()
	step := 1
	for i, name := range order {
		if m.prompt.Group != nil && name == m.prompt.Group.Name {
			step = i + 1
			break
		}
	}
	return fmt.Sprintf("Step %d of %d", step, len(order))
}

var (
	stepStyle       = lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1)
	errStyle        = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).PaddingLeft(1)
	hintLineStyle   = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Padding(0, 1)
	chipLabelStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	chipStyle       = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	chipActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TmplValueColor)
	cmdStyle        = lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	tmplLabelStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	finalCmdStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.TmplValueColor)
)
