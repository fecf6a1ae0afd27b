// Package browse implements the template browser, the mode the app starts
// in. The left half holds a filter input and the template list, the right
// half previews the selected template. Picking a template hands off to
// build mode.
package browse

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/snova-cli/snova/internal/cachemanager"
	"github.com/snova-cli/snova/internal/keys"
	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/mode"
	"github.com/snova-cli/snova/internal/mode/shared"
	"github.com/snova-cli/snova/internal/paths"
	"github.com/snova-cli/snova/internal/registry"
	"github.com/snova-cli/snova/internal/template"
	"github.com/snova-cli/snova/internal/ui/help"
	"github.com/snova-cli/snova/internal/ui/input"
	"github.com/snova-cli/snova/internal/ui/markdown"
	"github.com/snova-cli/snova/internal/ui/overlay"
	"github.com/snova-cli/snova/internal/ui/styles"
	"github.com/snova-cli/snova/internal/ui/toaster"
)

// FocusPane represents which pane has keyboard focus.
type FocusPane int

const (
	FocusList   FocusPane = iota // template list
	FocusFilter                  // filter input
)

// ViewMode represents overlay states within browse mode.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewHelp
	ViewGuide
	ViewProblems
)

// Model holds the browse mode state.
type Model struct {
	services mode.Services

	// Template state
	registry *registry.Registry
	problems []*template.DefinitionError
	lastLoad time.Time

	// Filtering
	filter      input.Model
	filterCache *cachemanager.ReadThroughCache[[]*registry.Entry, filterInput]
	entries     []*registry.Entry
	entryList   list.Model
	selectedIdx int

	// Overlays
	view        ViewMode
	help        help.Model
	overlayView viewport.Model
	guide       string // rendered lazily, cleared on resize

	// Display toggles
	showProvenance bool
	showStatusBar  bool

	// Focus management
	focus FocusPane
	keys  keys.BrowseKeyMap

	// Layout
	width  int
	height int
}

// StartBuildMsg is sent when the user picks a template to build. The app
// handles it by switching to build mode.
type StartBuildMsg struct {
	Entry *registry.Entry
}

// ReloadRequestMsg asks the app to reload command definitions from disk.
type ReloadRequestMsg struct{}

// filterInput feeds the read-through filter cache. The registry travels
// with the query so a reload swaps cleanly under cached entries.
type filterInput struct {
	reg   *registry.Registry
	query string
}

// New creates a new browse mode controller.
func New(services mode.Services) Model {
	filter := input.New()
	filter.SetPlaceholder("Type to filter, ex: archive")

	delegate := entryDelegate{showProvenance: services.Config.UI.ShowProvenance}
	entryList := list.New([]list.Item{}, delegate, 0, 0)
	entryList.SetShowTitle(false)
	entryList.SetShowStatusBar(false)
	entryList.SetShowHelp(false)
	entryList.SetFilteringEnabled(false)

	cache := cachemanager.NewInMemoryCacheManager[[]*registry.Entry](
		"filter", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	filterCache := cachemanager.NewReadThroughCache[[]*registry.Entry, filterInput](
		cache,
		func(_ context.Context, in filterInput) ([]*registry.Entry, error) {
			return in.reg.Filter(in.query), nil
		},
		false,
	)

	m := Model{
		services:       services,
		registry:       services.Registry,
		problems:       services.Problems,
		lastLoad:       services.Now(),
		filter:         filter,
		filterCache:    filterCache,
		entryList:      entryList,
		keys:           keys.DefaultBrowseKeyMap(),
		help:           help.New(),
		focus:          FocusList,
		view:           ViewList,
		showProvenance: services.Config.UI.ShowProvenance,
		showStatusBar:  services.Config.UI.ShowStatusBar,
	}
	return m.refreshEntries()
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

	// The guide is rendered for a specific width
	m.guide = ""
	switch m.view {
	case ViewGuide:
		m = m.openGuide()
	case ViewProblems:
		m = m.openProblems()
	}

	return m.layout()
}

// layout recomputes component sizes from the current dimensions.
func (m Model) layout() Model {
	leftWidth := m.width / 2

	inputWidth := max(leftWidth-4, 1) // Padding
	m.filter.SetWidth(inputWidth)

	listHeight := max(m.contentHeight()-5, 1) // Filter box + borders
	listWidth := max(leftWidth-2, 1)
	m.entryList.SetSize(listWidth, listHeight)

	m.help = m.help.SetSize(m.width, m.height)

	return m
}

// contentHeight is the height left for the panes once the status bar has
// taken its row.
func (m Model) contentHeight() int {
	if m.showStatusBar {
		return m.height - 1
	}
	return m.height
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case mode.DefsReloadedMsg:
		return m.handleDefsReloaded(msg)
	}

	return m, nil
}

// handleKey dispatches key events by overlay state, then by focus.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.view {
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewGuide:
		return m.handleOverlayKeys(msg, m.keys.Guide)
	case ViewProblems:
		return m.handleOverlayKeys(msg, m.keys.Problems)
	}

	if m.focus == FocusFilter {
		return m.handleFilterKeys(msg)
	}
	return m.handleListKeys(msg)
}

// handleHelpKeys processes keys while the help overlay is open.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.view = ViewList
	}
	return m, nil
}

// handleOverlayKeys processes keys for the scrollable overlays. The
// overlay's own toggle key closes it again.
func (m Model) handleOverlayKeys(msg tea.KeyMsg, toggle key.Binding) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, toggle), key.Matches(msg, m.keys.Quit):
		m.view = ViewList
		return m, nil
	}

	var cmd tea.Cmd
	m.overlayView, cmd = m.overlayView.Update(msg)
	return m, cmd
}

// handleFilterKeys processes keys while the filter input has focus.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEscape, tea.KeyEnter, tea.KeyTab:
		m.filter.Blur()
		m.focus = FocusList
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.selectedIdx = 0
		m = m.refreshEntries()
	}
	return m, cmd
}

// handleListKeys processes keys while the template list has focus.
func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
			m.entryList.Select(m.selectedIdx)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedIdx < len(m.entries)-1 {
			m.selectedIdx++
			m.entryList.Select(m.selectedIdx)
		}
		return m, nil

	case key.Matches(msg, m.keys.Start):
		entry := m.selectedEntry()
		if entry == nil {
			return m, nil
		}
		return m, func() tea.Msg { return StartBuildMsg{Entry: entry} }

	case key.Matches(msg, m.keys.FocusFilter):
		m.focus = FocusFilter
		m.filter.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, func() tea.Msg { return ReloadRequestMsg{} }

	case key.Matches(msg, m.keys.Guide):
		return m.openGuide(), nil

	case key.Matches(msg, m.keys.Problems):
		if len(m.problems) == 0 {
			return m, func() tea.Msg {
				return mode.ShowToastMsg{Message: "No definition problems", Style: toaster.StyleInfo}
			}
		}
		return m.openProblems(), nil

	case key.Matches(msg, m.keys.ToggleProvenance):
		m.showProvenance = !m.showProvenance
		m.entryList.SetDelegate(entryDelegate{showProvenance: m.showProvenance})
		return m, nil

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatusBar = !m.showStatusBar
		return m.layout(), nil

	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		// First escape clears an active filter, a second one leaves.
		if m.filter.Value() != "" {
			m.filter.Reset()
			m.selectedIdx = 0
			return m.refreshEntries(), nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// handleDefsReloaded swaps in the freshly loaded registry and rebuilds
// the filtered list.
func (m Model) handleDefsReloaded(msg mode.DefsReloadedMsg) (Model, tea.Cmd) {
	m.registry = msg.Registry
	m.problems = msg.Problems
	m.lastLoad = m.services.Now()

	if err := m.filterCache.Flush(context.Background()); err != nil {
		log.ErrorErr(log.CatCache, "flush filter cache", err)
	}
	m = m.refreshEntries()

	if m.view == ViewProblems {
		if len(m.problems) == 0 {
			m.view = ViewList
		} else {
			m = m.openProblems()
		}
	}
	return m, nil
}

// refreshEntries runs the current filter query through the cache and
// feeds the result to the list.
func (m Model) refreshEntries() Model {
	query := m.filter.Value()
	entries, err := m.filterCache.Get(
		context.Background(),
		"filter:"+query,
		filterInput{reg: m.registry, query: query},
		cachemanager.DefaultExpiration,
	)
	if err != nil {
		log.ErrorErr(log.CatCache, "filter lookup failed", err, "query", query)
		return m
	}

	m.entries = entries
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	m.entryList.SetItems(items)

	if m.selectedIdx >= len(entries) {
		m.selectedIdx = max(len(entries)-1, 0)
	}
	m.entryList.Select(m.selectedIdx)
	return m
}

// selectedEntry returns the highlighted entry, or nil when the list is
// empty.
func (m Model) selectedEntry() *registry.Entry {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.entries) {
		return nil
	}
	return m.entries[m.selectedIdx]
}

// openGuide renders the template guide and opens it in the overlay.
func (m Model) openGuide() Model {
	if m.guide == "" {
		m.guide = m.renderGuide()
	}
	m.view = ViewGuide
	return m.sizeOverlayView(m.guide)
}

// openProblems opens the load problems overlay.
func (m Model) openProblems() Model {
	m.view = ViewProblems
	return m.sizeOverlayView(m.renderProblems())
}

// sizeOverlayView rebuilds the shared overlay viewport around content.
func (m Model) sizeOverlayView(content string) Model {
	vp := viewport.New(max(m.overlayWidth()-2, 1), max(m.overlayHeight()-3, 1))
	vp.SetContent(content)
	m.overlayView = vp
	return m
}

func (m Model) overlayWidth() int {
	return max(min(m.width-8, 80), 20)
}

func (m Model) overlayHeight() int {
	return max(m.height-6, 5)
}

// overlayInnerWidth is the wrap width for overlay content, inside the
// border and padding.
func (m Model) overlayInnerWidth() int {
	return max(m.overlayWidth()-4, 10)
}

// renderGuide renders the template guide markdown at the overlay width.
func (m Model) renderGuide() string {
	r, err := markdown.New(m.overlayInnerWidth(), m.services.Config.UI.MarkdownStyle)
	if err != nil {
		return "Template guide unavailable: " + err.Error()
	}
	out, err := r.Render(help.GuideMarkdown())
	if err != nil {
		return "Template guide unavailable: " + err.Error()
	}
	return strings.TrimRight(out, "\n")
}

// renderProblems formats the load problems for the overlay.
func (m Model) renderProblems() string {
	w := m.overlayInnerWidth()

	var sb strings.Builder
	for i, p := range m.problems {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(problemProvStyle.Render(p.Provenance))
		sb.WriteString("\n")
		if p.Template != "" {
			sb.WriteString("  ")
			sb.WriteString(ansi.Truncate(template.Highlight(p.Template), w-2, "…"))
			sb.WriteString("\n")
		}
		sb.WriteString(wordwrap.String(problemReasonStyle.Render("  "+p.Reason), w))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// View renders the browse mode.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	content := m.renderMainView()
	if m.showStatusBar {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
	}

	switch m.view {
	case ViewHelp:
		return m.help.Overlay(content)
	case ViewGuide:
		return m.renderOverlay("Template Guide", content)
	case ViewProblems:
		return m.renderOverlay(fmt.Sprintf("Load Problems (%d)", len(m.problems)), content)
	}
	return content
}

// renderMainView renders the 50/50 split layout.
func (m Model) renderMainView() string {
	// Calculate widths (small gap between panels)
	gap := 1
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - gap

	leftPanel := m.renderLeftPanel(leftWidth)
	rightPanel := m.renderPreviewPanel(rightWidth)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		strings.Repeat(" ", gap),
		rightPanel,
	)
}

// renderLeftPanel renders the filter input stacked on the template list.
func (m Model) renderLeftPanel(width int) string {
	var sb strings.Builder

	// Heights follow the input as it wraps
	filterHeight := m.filter.Height() + 2
	listHeight := m.contentHeight() - filterHeight

	filterBorder := styles.RenderWithTitleBorder(
		m.filter.View(),
		"Filter",
		width,
		filterHeight,
		m.focus == FocusFilter,
		styles.OverlayTitleColor,
		styles.BorderHighlightFocusColor,
	)
	sb.WriteString(filterBorder)
	sb.WriteString("\n")

	var listContent string
	switch {
	case len(m.entries) > 0:
		listContent = m.entryList.View()
	case m.filter.Value() != "":
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Italic(true).
			Padding(1, 2)
		listContent = emptyStyle.Render("No templates match the filter")
	default:
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Italic(true).
			Padding(1, 2)
		listContent = emptyStyle.Render("No templates loaded")
	}

	listBorder := styles.RenderWithTitleBorder(
		listContent,
		fmt.Sprintf("Templates (%d)", len(m.entries)),
		width,
		listHeight,
		m.focus == FocusList,
		styles.OverlayTitleColor,
		styles.BorderHighlightFocusColor,
	)
	sb.WriteString(listBorder)

	return sb.String()
}

// renderPreviewPanel renders the right panel with the selected template.
func (m Model) renderPreviewPanel(width int) string {
	var content string
	if entry := m.selectedEntry(); entry != nil {
		content = m.renderPreview(entry, width)
	} else {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Padding(1, 2)
		content = emptyStyle.Render("Select a template to preview")
	}

	return styles.RenderWithTitleBorder(
		content,
		"Preview",
		width,
		m.contentHeight(),
		false,
		styles.OverlayTitleColor,
		styles.BorderHighlightFocusColor,
	)
}

// renderPreview lays out the template, its description, the blanks it
// asks about and where it came from.
func (m Model) renderPreview(entry *registry.Entry, width int) string {
	wrapWidth := max(width-8, 10)
	tmpl := entry.Template

	var sb strings.Builder
	sb.WriteString(wordwrap.String(template.Highlight(tmpl.Raw), wrapWidth))
	sb.WriteString("\n")

	if tmpl.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(wordwrap.String(previewDescStyle.Render(tmpl.Description), wrapWidth))
		sb.WriteString("\n")
	}

	if order := tmpl.GroupOrder(); len(order) > 0 {
		sb.WriteString("\n")
		sb.WriteString(previewHeadStyle.Render("Blanks"))
		sb.WriteString("\n")
		for _, name := range order {
			g, ok := tmpl.Group(name)
			if !ok {
				continue
			}
			line := "  " + previewGroupStyle.Render(g.Name) + " " + previewMutedStyle.Render(groupSummary(g))
			sb.WriteString(ansi.Truncate(line, wrapWidth, "…"))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(previewProvStyle.Render("from " + entry.Provenance))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// groupSummary describes a group in a word or two for the preview pane.
func groupSummary(g *template.Group) string {
	var parts []string
	switch g.Kind {
	case template.GroupValue:
		parts = append(parts, g.Expect.String())
		if len(g.Suggest) > 0 {
			parts = append(parts, fmt.Sprintf("%d suggestions", len(g.Suggest)))
		}
	case template.GroupFlags:
		if len(g.Flags) == 1 {
			parts = append(parts, "1 flag")
		} else {
			parts = append(parts, fmt.Sprintf("%d flags", len(g.Flags)))
		}
	}
	if g.Optional {
		parts = append(parts, "optional")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// renderStatusBar summarizes registry and filter state on one line.
func (m Model) renderStatusBar() string {
	parts := []string{
		fmt.Sprintf("%d templates", m.registry.Len()),
		"loaded " + shared.FormatRelativeTime(m.lastLoad, m.services.Now()),
	}
	if query := m.filter.Value(); query != "" {
		parts = append(parts, fmt.Sprintf("%d matching %q", len(m.entries), query))
	}
	if n := len(m.problems); n > 0 {
		parts = append(parts, statusWarnStyle.Render(fmt.Sprintf("%d problems (! to view)", n)))
	}
	if m.services.DefsPath != "" {
		parts = append(parts, paths.Display(m.services.DefsPath))
	}

	content := strings.Join(parts, " • ")
	return styles.StatusBarStyle.Width(m.width).Render(ansi.Truncate(content, max(m.width-2, 0), "…"))
}

// renderOverlay draws the shared scrollable overlay over the background.
func (m Model) renderOverlay(title, background string) string {
	content := m.overlayView.View() + "\n" + overlayFooterStyle.Render("j/k to scroll, Esc to close")
	box := styles.RenderWithTitleBorder(
		content,
		title,
		m.overlayWidth(),
		m.overlayHeight(),
		true,
		styles.OverlayTitleColor,
		styles.BorderHighlightFocusColor,
	)
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}

var (
	previewDescStyle  = lipgloss.NewStyle().Foreground(styles.TextDescriptionColor)
	previewHeadStyle  = lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	previewGroupStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TmplPlaceholderColor)
	previewMutedStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	previewProvStyle  = lipgloss.NewStyle().Italic(true).Foreground(styles.TextSecondaryColor)

	problemProvStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.StatusWarningColor)
	problemReasonStyle = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)

	statusWarnStyle    = lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	overlayFooterStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor).PaddingLeft(1)

	rowDescStyle = lipgloss.NewStyle().Foreground(styles.TextDescriptionColor)
	rowProvStyle = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
)

// entryItem wraps a registry entry for the list component.
type entryItem struct {
	entry *registry.Entry
}

// FilterValue implements list.Item interface.
func (i entryItem) FilterValue() string { return i.entry.Template.Raw }

// entryDelegate renders registry entries one per row.
type entryDelegate struct {
	showProvenance bool
}

// Height returns the height of a single list item.
func (d entryDelegate) Height() int { return 1 }

// Spacing returns the spacing between list items.
func (d entryDelegate) Spacing() int { return 0 }

// Update handles updates for list items (no-op for read-only display).
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single list item.
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry := item.(entryItem).entry

	selected := index == m.Index()
	prefix := " "
	if selected {
		prefix = styles.SelectionIndicatorStyle.Render(">")
	}

	line := prefix + " " + template.Highlight(entry.Template.Raw)
	if desc := entry.Template.Description; desc != "" {
		line += rowDescStyle.Render("  " + desc)
	}
	if d.showProvenance {
		line += rowProvStyle.Render("  [" + entry.Provenance + "]")
	}

	_, _ = fmt.Fprint(w, ansi.Truncate(line, m.Width(), "…"))
}
