package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/notify"
	"github.com/balkashynov/teamboard/internal/parser"
	"github.com/balkashynov/teamboard/internal/store"
	"github.com/balkashynov/teamboard/internal/urgency"
	"github.com/balkashynov/teamboard/internal/views"
)

// Mode is the screen the board is showing
type Mode int

const (
	ModeBoard Mode = iota
	ModeSearch
	ModeDetail
	ModeForm
	ModeCalendar
	ModeTimesheet
	ModeFeedback
	ModeFeedbackInput
)

// BoardModel is the interactive kanban board
type BoardModel struct {
	st        *store.Store
	weekStart time.Weekday
	width     int
	height    int
	mode      Mode

	// Snapshot of the store, refreshed after every mutation
	members       []models.TeamMember
	tasks         []models.Task
	feedback      []models.Feedback
	notifications []models.Notification
	unread        int

	// Board state
	board  views.Board
	filter views.Filter
	col    int
	row    int
	search textinput.Model

	// Sub-screens
	form       TaskFormModel
	detailItem int
	calYear    int
	calMonth   time.Month
	calDay     int
	fbCursor   int
	fbInput    textinput.Model
	fbEditID   uint // 0 when writing new feedback

	notif notify.Surface

	message    string // result of the last action
	messageErr bool
}

// NewBoardModel creates the board over a loaded store
func NewBoardModel(st *store.Store, weekStart time.Weekday) (BoardModel, error) {
	search := textinput.New()
	search.Placeholder = "Search titles..."
	search.CharLimit = 100
	search.Prompt = "Search: "

	fbInput := textinput.New()
	fbInput.CharLimit = 500

	now := st.Now()
	m := BoardModel{
		st:        st,
		weekStart: weekStart,
		filter:    views.Filter{AssigneeID: views.All, Status: views.All},
		search:    search,
		fbInput:   fbInput,
		calYear:   now.Year(),
		calMonth:  now.Month(),
		calDay:    now.Day(),
	}

	members, err := st.Members()
	if err != nil {
		return m, err
	}
	m.members = members

	if err := m.refresh(); err != nil {
		return m, err
	}
	return m, nil
}

// refresh reloads the store snapshot and rebuilds the board
func (m *BoardModel) refresh() error {
	tasks, err := m.st.Tasks()
	if err != nil {
		return err
	}
	feedback, err := m.st.Feedback()
	if err != nil {
		return err
	}
	unread, err := m.st.UnreadCount()
	if err != nil {
		return err
	}

	m.tasks = tasks
	m.feedback = feedback
	m.unread = unread
	m.rebuild()
	return nil
}

// rebuild re-projects the board from the current snapshot and filter
func (m *BoardModel) rebuild() {
	m.board = views.BuildBoard(m.tasks, m.filter, models.DateOf(m.st.Now()))
	m.clampCursor()
}

func (m *BoardModel) clampCursor() {
	m.col = min(max(m.col, 0), len(m.board.Columns)-1)
	cards := len(m.board.Columns[m.col].Cards)
	m.row = min(max(m.row, 0), max(cards-1, 0))
}

// selected returns the task under the cursor
func (m BoardModel) selected() (models.Task, bool) {
	cards := m.board.Columns[m.col].Cards
	if m.row >= len(cards) {
		return models.Task{}, false
	}
	return cards[m.row].Task, true
}

// focusTask moves the cursor onto task id, if it is visible
func (m *BoardModel) focusTask(id uint) {
	for c, col := range m.board.Columns {
		for r, card := range col.Cards {
			if card.Task.ID == id {
				m.col, m.row = c, r
				return
			}
		}
	}
	m.clampCursor()
}

func (m *BoardModel) setMessage(msg string) {
	m.message = msg
	m.messageErr = false
}

func (m *BoardModel) setError(err error) {
	m.message = friendlyError(err)
	m.messageErr = true
}

func (m BoardModel) memberName(id string) string {
	for _, mem := range m.members {
		if mem.ID == id {
			return mem.Name
		}
	}
	return id
}

// Init initializes the model
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.mode == ModeForm {
			m.form, _ = m.form.update(msg)
		}
		return m, nil

	case formClosedMsg:
		m.mode = ModeBoard
		if err := m.refresh(); err != nil {
			m.setError(err)
			return m, nil
		}
		if msg.task != nil {
			m.focusTask(msg.task.ID)
			m.setMessage(fmt.Sprintf("✅ Saved task #%d: %s", msg.task.ID, msg.task.Title))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.mode != ModeForm {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeSearch:
			return m.handleSearchKeys(msg)
		case ModeDetail:
			return m.handleDetailKeys(msg)
		case ModeCalendar:
			return m.handleCalendarKeys(msg)
		case ModeTimesheet:
			if isBack(msg) {
				m.mode = ModeBoard
			}
			return m, nil
		case ModeFeedback:
			return m.handleFeedbackKeys(msg)
		case ModeFeedbackInput:
			return m.handleFeedbackInputKeys(msg)
		case ModeForm:
			var cmd tea.Cmd
			m.form, cmd = m.form.update(msg)
			return m, cmd
		}
		return m.handleBoardKeys(msg)
	}

	if m.mode == ModeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func isBack(msg tea.KeyMsg) bool {
	return msg.String() == "esc" || msg.String() == "q"
}

// handleBoardKeys handles keys on the main board
func (m BoardModel) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.notif.Open() {
			m.notif.Close()
			return m, nil
		}
		if m.filter.Title != "" {
			m.filter.Title = ""
			m.search.SetValue("")
			m.rebuild()
			return m, nil
		}
		return m, tea.Quit

	case "left", "h":
		m.col--
		m.clampCursor()
	case "right", "l":
		m.col++
		m.clampCursor()
	case "up", "k":
		m.row--
		m.clampCursor()
	case "down", "j":
		m.row++
		m.clampCursor()

	case "[", "]":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		target := task.Status.Next()
		if msg.String() == "[" {
			target = task.Status.Prev()
		}
		return m.moveTask(task, target)

	case "enter":
		if _, ok := m.selected(); ok {
			m.mode = ModeDetail
			m.detailItem = 0
		}

	case "+":
		m.form = NewTaskFormModel(m.st, nil)
		return m.openForm()

	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.form = NewEditTaskFormModel(m.st, task)
		return m.openForm()

	case "/":
		m.mode = ModeSearch
		m.search.SetValue(m.filter.Title)
		cmd := m.search.Focus()
		return m, cmd

	case "a":
		m.filter.AssigneeID = m.nextAssignee()
		m.rebuild()
	case "s":
		m.filter.Status = nextStatusFilter(m.filter.Status)
		m.rebuild()
	case "x":
		m.filter = views.Filter{AssigneeID: views.All, Status: views.All}
		m.search.SetValue("")
		m.rebuild()

	case "n":
		return m.toggleNotifications()

	case "c":
		now := m.st.Now()
		m.calYear, m.calMonth, m.calDay = now.Year(), now.Month(), now.Day()
		m.mode = ModeCalendar
	case "t":
		m.mode = ModeTimesheet
	case "f":
		m.mode = ModeFeedback
		m.fbCursor = 0
	}
	return m, nil
}

// moveTask sets a task's status and keeps the cursor on it
func (m BoardModel) moveTask(task models.Task, target models.Status) (tea.Model, tea.Cmd) {
	if target == task.Status {
		return m, nil
	}
	if _, err := m.st.SetTaskStatus(task.ID, target); err != nil {
		m.setError(err)
		return m, nil
	}
	if err := m.refresh(); err != nil {
		m.setError(err)
		return m, nil
	}
	m.focusTask(task.ID)
	m.setMessage(fmt.Sprintf("Moved #%d to %s", task.ID, target))
	return m, nil
}

func (m BoardModel) openForm() (tea.Model, tea.Cmd) {
	if !m.st.Identity().IsMember() {
		m.setError(fmt.Errorf("sign in as a team member to edit tasks"))
		return m, nil
	}
	m.mode = ModeForm
	m.form, _ = m.form.update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return m, m.form.Init()
}

// toggleNotifications opens or closes the panel; opening it with unread
// items marks them all read
func (m BoardModel) toggleNotifications() (tea.Model, tea.Cmd) {
	list, err := m.st.Notifications()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.notifications = list

	if m.notif.Toggle(m.unread) {
		if err := m.st.ClearNotifications(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.unread = 0
	}
	return m, nil
}

func (m BoardModel) nextAssignee() string {
	options := []string{views.All}
	for _, mem := range m.members {
		options = append(options, mem.ID)
	}
	return cycle(options, m.filter.AssigneeID)
}

func nextStatusFilter(current string) string {
	options := []string{views.All}
	for _, s := range models.Statuses {
		options = append(options, string(s))
	}
	return cycle(options, current)
}

// cycle returns the option after current, wrapping around
func cycle(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// handleSearchKeys handles key input when in search mode; the board filters
// as the user types
func (m BoardModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeBoard
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Title = ""
		m.rebuild()
		return m, nil

	case "enter":
		m.mode = ModeBoard
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Title = m.search.Value()
	m.rebuild()
	return m, cmd
}

// handleDetailKeys handles the task detail screen: checklist navigation and
// toggling
func (m BoardModel) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task, ok := m.selected()
	if !ok {
		m.mode = ModeBoard
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeBoard
	case "up", "k":
		m.detailItem = max(m.detailItem-1, 0)
	case "down", "j":
		m.detailItem = min(m.detailItem+1, max(len(task.Checklist)-1, 0))
	case " ", "x":
		if m.detailItem < len(task.Checklist) {
			return m.applyTaskEdit(m.st.ToggleChecklistItem(task.ID, task.Checklist[m.detailItem].ID))
		}
	case "d":
		if m.detailItem < len(task.Checklist) {
			model, cmd := m.applyTaskEdit(m.st.RemoveChecklistItem(task.ID, task.Checklist[m.detailItem].ID))
			bm := model.(BoardModel)
			bm.detailItem = max(bm.detailItem-1, 0)
			return bm, cmd
		}
	case "[", "]":
		target := task.Status.Next()
		if msg.String() == "[" {
			target = task.Status.Prev()
		}
		return m.moveTask(task, target)
	case "e":
		m.form = NewEditTaskFormModel(m.st, task)
		return m.openForm()
	}
	return m, nil
}

func (m BoardModel) applyTaskEdit(task *models.Task, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if err := m.refresh(); err != nil {
		m.setError(err)
		return m, nil
	}
	m.focusTask(task.ID)
	return m, nil
}

// handleCalendarKeys moves the selected day; "[" and "]" change month
func (m BoardModel) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	month := views.BuildMonth(m.tasks, m.calYear, m.calMonth)

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeBoard
	case "left", "h":
		m.calDay--
	case "right", "l":
		m.calDay++
	case "up", "k":
		m.calDay -= 7
	case "down", "j":
		m.calDay += 7
	case "[":
		m.calYear, m.calMonth = month.Prev()
		m.calDay = 1
		return m, nil
	case "]":
		m.calYear, m.calMonth = month.Next()
		m.calDay = 1
		return m, nil
	}
	m.calDay = min(max(m.calDay, 1), len(month.Days))
	return m, nil
}

// handleFeedbackKeys handles the feedback list
func (m BoardModel) handleFeedbackKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeBoard
	case "up", "k":
		m.fbCursor = max(m.fbCursor-1, 0)
	case "down", "j":
		m.fbCursor = min(m.fbCursor+1, max(len(m.feedback)-1, 0))
	case "g":
		m.fbEditID = 0
		m.fbInput.SetValue("")
		m.fbInput.Placeholder = "member-id: feedback text"
		m.mode = ModeFeedbackInput
		cmd := m.fbInput.Focus()
		return m, cmd
	case "e":
		if m.fbCursor >= len(m.feedback) {
			return m, nil
		}
		fb := m.feedback[m.fbCursor]
		m.fbEditID = fb.ID
		m.fbInput.SetValue(fb.Text)
		m.fbInput.Placeholder = "feedback text"
		m.mode = ModeFeedbackInput
		cmd := m.fbInput.Focus()
		return m, cmd
	}
	return m, nil
}

// handleFeedbackInputKeys submits new feedback ("to: text") or an edit
func (m BoardModel) handleFeedbackInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeFeedback
		m.fbInput.Blur()
		return m, nil

	case "enter":
		value := m.fbInput.Value()
		var err error
		if m.fbEditID != 0 {
			_, err = m.st.EditFeedback(m.fbEditID, value)
		} else {
			to, text, found := strings.Cut(value, ":")
			if !found {
				to, text = "", value
			}
			_, err = m.st.SubmitFeedback(store.FeedbackInput{ToID: to, Text: text})
		}
		if err != nil {
			m.setError(err)
			return m, nil
		}

		m.mode = ModeFeedback
		m.fbInput.Blur()
		if err := m.refresh(); err != nil {
			m.setError(err)
			return m, nil
		}
		if m.fbEditID != 0 {
			m.setMessage("✏️  Feedback updated")
		} else {
			m.fbCursor = len(m.feedback) - 1
			m.setMessage("💬 Feedback sent")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.fbInput, cmd = m.fbInput.Update(msg)
	return m, cmd
}

// View renders the TUI
func (m BoardModel) View() string {
	if m.mode == ModeForm {
		return m.form.View()
	}

	width := m.width
	if width == 0 {
		width = 120
	}

	var body string
	switch m.mode {
	case ModeDetail:
		body = m.renderDetail(width)
	case ModeCalendar:
		body = m.renderCalendar(width)
	case ModeTimesheet:
		body = m.renderTimesheet(width)
	case ModeFeedback, ModeFeedbackInput:
		body = m.renderFeedback(width)
	default:
		body = m.renderBoard(width)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(width),
		"",
		body,
		"",
		m.renderFooter(width),
	)
}

func (m BoardModel) renderHeader(width int) string {
	logo := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("teamboard")

	id := m.st.Identity()
	who := "signed out"
	switch {
	case id.IsMember():
		who = m.memberName(id.ID())
	case id.IsGuest():
		who = "guest (read only)"
	}

	bell := "🔔"
	if m.unread > 0 {
		bell += lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true).Render(fmt.Sprintf(" %d", m.unread))
	}

	var filters []string
	if m.filter.AssigneeID != views.All {
		filters = append(filters, "assignee: "+m.memberName(m.filter.AssigneeID))
	}
	if m.filter.Status != views.All {
		filters = append(filters, "status: "+m.filter.Status)
	}
	if m.filter.Title != "" {
		filters = append(filters, fmt.Sprintf("title: %q", m.filter.Title))
	}

	left := logo + "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(who)
	if len(filters) > 0 {
		left += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render("["+strings.Join(filters, " · ")+"]")
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(bell)-1, 1)
	return left + strings.Repeat(" ", gap) + bell
}

func (m BoardModel) renderFooter(width int) string {
	var b strings.Builder

	if m.mode == ModeSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if m.mode == ModeFeedbackInput {
		b.WriteString(m.fbInput.View())
		b.WriteString("\n")
	}
	if m.message != "" {
		color := ColorSuccess
		if m.messageErr {
			color = ColorError
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.message))
		b.WriteString("\n")
	}

	var help string
	switch m.mode {
	case ModeDetail:
		help = "↑/↓ item · space toggle · d remove · [/] move · e edit · esc back"
	case ModeCalendar:
		help = "←/→/↑/↓ day · [/] month · esc back"
	case ModeTimesheet:
		help = "esc back"
	case ModeFeedback:
		help = "↑/↓ nav · g give · e edit · esc back"
	case ModeFeedbackInput:
		help = "enter send · esc cancel"
	case ModeSearch:
		help = "type to filter · enter keep · esc clear"
	default:
		help = "←/→/↑/↓ nav · [/] move · enter open · + new · e edit · / search · a assignee · s status · x reset · n notifications · c calendar · t timesheet · f feedback · q quit"
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Width(width).
		Render(help))
	return b.String()
}

// renderBoard renders the three columns and, when open, the notification panel
func (m BoardModel) renderBoard(width int) string {
	boardWidth := width
	var panel string
	if m.notif.Open() {
		panelWidth := min(48, width*2/5)
		panel = m.renderNotifications(panelWidth)
		boardWidth = width - panelWidth - 1
	}

	colWidth := max(boardWidth/len(m.board.Columns)-1, 20)
	var cols []string
	for i, col := range m.board.Columns {
		cols = append(cols, m.renderColumn(col, i == m.col, colWidth))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	if panel != "" {
		return lipgloss.JoinHorizontal(lipgloss.Top, board, " ", panel)
	}
	return board
}

func statusColor(s models.Status) string {
	switch s {
	case models.StatusInProgress:
		return ColorInfo
	case models.StatusDone:
		return ColorSuccess
	}
	return ColorSecondaryText
}

func urgencyColor(t urgency.Tier) string {
	switch t {
	case urgency.Overdue:
		return ColorError
	case urgency.DueSoon:
		return ColorWarning
	}
	return ColorSecondaryText
}

func (m BoardModel) renderColumn(col views.Column, focused bool, width int) string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(statusColor(col.Status)))
	b.WriteString(header.Render(fmt.Sprintf("%s (%d)", col.Status, len(col.Cards))))
	b.WriteString("\n\n")

	if len(col.Cards) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Italic(true).Render("No tasks"))
	}

	cardWidth := width - 4
	for i, card := range col.Cards {
		b.WriteString(m.renderCard(card, focused && i == m.row, cardWidth))
		b.WriteString("\n")
	}

	border := ColorBorder
	if focused {
		border = ColorAccentBright
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(width).
		Render(b.String())
}

func (m BoardModel) renderCard(card views.Card, selected bool, width int) string {
	task := card.Task

	title := task.Title
	if width > 10 {
		title = ansi.Truncate(title, width-6, "...")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render(fmt.Sprintf("#%d %s", task.ID, title)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(m.memberName(task.AssigneeID)))
	b.WriteString(" · ")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColor(task.Priority))).Render(string(task.Priority)))
	b.WriteString("\n")

	due := task.DueDate.In(time.UTC).Format("02 Jan")
	if card.Urgency != urgency.Normal {
		due += " · " + card.Urgency.String()
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(urgencyColor(card.Urgency))).Render(due))

	if done, total := task.ChecklistProgress(); total > 0 {
		b.WriteString(fmt.Sprintf("  ☑ %d/%d", done, total))
	}
	if len(task.Attachments) > 0 {
		b.WriteString(fmt.Sprintf("  📎 %d", len(task.Attachments)))
	}
	if task.VoiceNoteRef != "" {
		b.WriteString("  🎙")
	}

	style := lipgloss.NewStyle().Width(width).Padding(0, 1)
	if selected {
		style = style.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccentMain))
	} else {
		style = style.
			Border(lipgloss.HiddenBorder())
	}
	return style.Render(b.String())
}

func (m BoardModel) renderNotifications(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render("🔔 Notifications"))
	b.WriteString("\n\n")

	if len(m.notifications) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Italic(true).Render("Nothing new"))
	}
	// Newest first; the dot marks items that were unread when the panel opened
	for i := len(m.notifications) - 1; i >= 0; i-- {
		n := m.notifications[i]
		dot := "  "
		if !n.Read {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("● ")
		}
		b.WriteString(dot + n.Message + "\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Width(width).
		Render(b.String())
}

// renderDetail renders the selected task with its checklist and attachments
func (m BoardModel) renderDetail(width int) string {
	task, ok := m.selected()
	if !ok {
		return ""
	}
	now := m.st.Now()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render(fmt.Sprintf("📋 #%d %s", task.ID, task.Title)))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(label.Render("Status:   "))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor(task.Status))).Bold(true).Render(string(task.Status)))
	b.WriteString("\n")
	b.WriteString(label.Render("Assignee: ") + m.memberName(task.AssigneeID) + "\n")
	b.WriteString(label.Render("Priority: "))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColor(task.Priority))).Render(string(task.Priority)))
	b.WriteString("\n")
	b.WriteString(label.Render("Due:      "))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(urgencyColor(urgency.ClassifyAt(task.DueDate, now)))).Render(parser.FormatDueDate(task.DueDate, now)))
	b.WriteString("\n")

	if len(task.Checklist) > 0 {
		done, total := task.ChecklistProgress()
		b.WriteString(fmt.Sprintf("\nChecklist (%d/%d)\n", done, total))
		for i, item := range task.Checklist {
			box := "☐"
			if item.Completed {
				box = "☑"
			}
			line := fmt.Sprintf("%s %s", box, item.Text)
			if i == m.detailItem {
				line = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).Render("▶ " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	}

	if len(task.Attachments) > 0 {
		b.WriteString("\nAttachments\n")
		for _, att := range task.Attachments {
			b.WriteString(fmt.Sprintf("  📎 %s (%s)\n", att.Name, att.MimeType))
		}
	}
	if task.VoiceNoteRef != "" {
		b.WriteString("\n🎙 Voice note attached\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Width(min(width-2, 80)).
		Render(b.String())
}

// renderCalendar renders the month grid and the selected day's full task list
func (m BoardModel) renderCalendar(width int) string {
	month := views.BuildMonth(m.tasks, m.calYear, m.calMonth)
	today := models.DateOf(m.st.Now())

	var grid strings.Builder
	grid.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render(fmt.Sprintf("%s %d", m.calMonth, m.calYear)))
	grid.WriteString("\n\n")

	for i := 0; i < 7; i++ {
		day := time.Weekday((int(m.weekStart) + i) % 7)
		grid.WriteString(fmt.Sprintf(" %-3s", day.String()[:2]))
	}
	grid.WriteString("\n")

	col := month.LeadingBlanks(m.weekStart)
	grid.WriteString(strings.Repeat("    ", col))
	for _, day := range month.Days {
		cell := fmt.Sprintf("%3d", day.Date.Day)
		style := lipgloss.NewStyle()
		if day.HasTasks() {
			style = style.Foreground(lipgloss.Color(ColorWarning)).Bold(true)
		}
		if day.Date == today {
			style = style.Underline(true)
		}
		if day.Date.Day == m.calDay {
			style = style.Background(lipgloss.Color(ColorAccentMain)).Foreground(lipgloss.Color("#FFFFFF"))
		}
		grid.WriteString(style.Render(cell) + " ")
		col++
		if col%7 == 0 {
			grid.WriteString("\n")
		}
	}

	var list strings.Builder
	selected, _ := month.Day(m.calDay)
	list.WriteString(lipgloss.NewStyle().Bold(true).Render(selected.Date.In(time.UTC).Format("Monday 02 January")))
	list.WriteString("\n\n")
	if !selected.HasTasks() {
		list.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Italic(true).Render("Nothing due"))
	}
	for _, t := range selected.Tasks {
		list.WriteString(fmt.Sprintf("#%d %s\n", t.ID, t.Title))
		list.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor(t.Status))).Render("   "+string(t.Status)) + " · " + m.memberName(t.AssigneeID) + "\n")
	}

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(ColorBorder)).Padding(0, 1)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box.Render(grid.String()),
		" ",
		box.Width(max(width-40, 30)).Render(list.String()),
	)
}

// renderTimesheet renders the active member's last seven days
func (m BoardModel) renderTimesheet(width int) string {
	id := m.st.Identity()
	if !id.IsMember() {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).
			Render("The timesheet is only available to signed-in team members.")
	}

	ts := views.BuildTimesheet(m.tasks, m.feedback, id.ID(), m.st.Now())

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).
		Render(fmt.Sprintf("Timesheet for %s since %s", m.memberName(id.ID()), ts.Since.In(time.UTC).Format("02 Jan"))))
	b.WriteString("\n\nCompleted tasks\n")
	if len(ts.Tasks) == 0 {
		b.WriteString("  none\n")
	}
	for _, t := range ts.Tasks {
		b.WriteString(fmt.Sprintf("  ✅ #%d %s (%s)\n", t.ID, t.Title, t.DueDate.In(time.UTC).Format("02 Jan")))
	}
	b.WriteString("\nFeedback\n")
	if len(ts.Feedback) == 0 {
		b.WriteString("  none\n")
	}
	for _, fb := range ts.Feedback {
		b.WriteString(fmt.Sprintf("  💬 %s → %s: %s\n", m.memberName(fb.FromID), m.memberName(fb.ToID), fb.Text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Width(min(width-2, 100)).
		Render(b.String())
}

// renderFeedback renders every feedback entry with the cursor
func (m BoardModel) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render("💬 Feedback"))
	b.WriteString("\n\n")

	if len(m.feedback) == 0 {
		b.WriteString("No feedback yet\n")
	}
	for i, fb := range m.feedback {
		line := fmt.Sprintf("%s  %s → %s: %s",
			fb.Date.In(time.UTC).Format("02 Jan"),
			m.memberName(fb.FromID),
			m.memberName(fb.ToID),
			fb.Text)
		if i == m.fbCursor {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).Render("▶ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Width(min(width-2, 110)).
		Render(b.String())
}
