package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/parser"
	"github.com/balkashynov/teamboard/internal/store"
)

// Step represents the current step in the wizard
type Step int

const (
	StepTitle Step = iota
	StepAssignee
	StepStatus
	StepPriority
	StepDueDate
	StepChecklist
	StepSave
)

var stepLabels = []string{"Title", "Assignee", "Status", "Priority", "Due date", "Checklist"}

// formClosedMsg is sent when an embedded form finishes; task is nil on cancel
type formClosedMsg struct {
	task *models.Task
}

// TaskFormModel is the step-by-step task wizard, used for both new and
// existing tasks
type TaskFormModel struct {
	st          *store.Store
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	// Task data
	title     string
	assignee  string
	status    models.Status
	priority  models.Priority
	due       models.Date
	checklist []models.ChecklistItem

	// Edit mode
	isEditMode bool
	editTaskID uint
	original   store.TaskInput

	// State
	standalone    bool // quit the program when done instead of sending formClosedMsg
	completed     bool
	cancelled     bool
	validationErr string
	saved         *models.Task

	// Save confirmation modal
	showSaveModal   bool
	saveModalChoice bool // true for Yes, false for No
}

// NewTaskFormModel creates a wizard for a new task with optional pre-filled
// values keyed title, assignee, status, priority and due_date
func NewTaskFormModel(st *store.Store, prefilled map[string]string) TaskFormModel {
	inputs := make([]textinput.Model, len(stepLabels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepTitle].Placeholder = "Enter task title... (required)"
	inputs[StepTitle].CharLimit = 200
	inputs[StepTitle].Focus()

	inputs[StepAssignee].Placeholder = "Member id or first name (Enter for yourself)"
	inputs[StepAssignee].CharLimit = 50

	inputs[StepStatus].Placeholder = "todo/doing/done (Enter for To Do)"
	inputs[StepStatus].CharLimit = 20

	inputs[StepPriority].Placeholder = "low/medium/high or 1/2/3 (Enter for medium)"
	inputs[StepPriority].CharLimit = 10

	inputs[StepDueDate].Placeholder = "today, tomorrow, yyyy-mm-dd, dd/mm/yyyy, 3 days, 2 weeks (required)"
	inputs[StepDueDate].CharLimit = 50

	inputs[StepChecklist].Placeholder = "Add checklist item (Enter on empty to finish)"
	inputs[StepChecklist].CharLimit = 200

	m := TaskFormModel{
		st:        st,
		inputs:    inputs,
		checklist: []models.ChecklistItem{},
	}

	if v, ok := prefilled["title"]; ok {
		m.inputs[StepTitle].SetValue(v)
		m.title = v
	}
	if v, ok := prefilled["assignee"]; ok {
		m.inputs[StepAssignee].SetValue(v)
		m.assignee = v
	}
	if v, ok := prefilled["status"]; ok {
		m.inputs[StepStatus].SetValue(v)
		m.status, _ = models.ParseStatus(v)
	}
	if v, ok := prefilled["priority"]; ok {
		m.inputs[StepPriority].SetValue(v)
		m.priority, _ = models.ParsePriority(v)
	}
	if v, ok := prefilled["due_date"]; ok {
		m.inputs[StepDueDate].SetValue(v)
		m.due, _ = parser.ParseDueDate(v, st.Now())
	}

	return m
}

// NewEditTaskFormModel opens the wizard on an existing task
func NewEditTaskFormModel(st *store.Store, task models.Task) TaskFormModel {
	m := NewTaskFormModel(st, map[string]string{
		"title":    task.Title,
		"assignee": task.AssigneeID,
		"status":   string(task.Status),
		"priority": string(task.Priority),
		"due_date": task.DueDate.String(),
	})
	m.isEditMode = true
	m.editTaskID = task.ID
	m.original = store.InputFromTask(task)
	m.checklist = append([]models.ChecklistItem{}, task.Checklist...)
	return m
}

// Init initializes the model
func (m TaskFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m TaskFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m TaskFormModel) update(msg tea.Msg) (TaskFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Update input field widths based on available space
		maxInputWidth := min(max((m.width*2/3)-10, 30), 80)
		for i := range m.inputs {
			m.inputs[i].Width = maxInputWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.showSaveModal {
			switch msg.String() {
			case "left", "right":
				m.saveModalChoice = !m.saveModalChoice
				return m, nil
			case "y", "Y":
				m.saveModalChoice = true
				return m.handleSaveChoice()
			case "n", "N":
				m.saveModalChoice = false
				return m.handleSaveChoice()
			case "enter":
				return m.handleSaveChoice()
			case "esc":
				m.showSaveModal = false
				return m, nil
			case "ctrl+c":
				return m.cancel()
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m.cancel()

		case "esc":
			if m.currentStep == StepSave {
				return m.prevStep()
			}
			if !m.hasChanges() {
				return m.cancel()
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			// Skipping still validates what was typed, except for checklist entry
			if m.currentStep >= StepChecklist {
				return m.nextStep()
			}
			return m.handleEnter()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
		m.updateCurrentField()
	}
	return m, cmd
}

// handleEnter validates the current step and advances
func (m TaskFormModel) handleEnter() (TaskFormModel, tea.Cmd) {
	m.validationErr = ""
	value := strings.TrimSpace(m.inputs[min(int(m.currentStep), len(m.inputs)-1)].Value())

	switch m.currentStep {
	case StepTitle:
		if strings.TrimSpace(m.title) == "" {
			m.validationErr = "Task title is required"
			return m, nil
		}

	case StepAssignee:
		if value == "" {
			m.assignee = m.st.Identity().ID()
			m.inputs[StepAssignee].SetValue(m.assignee)
			break
		}
		member, err := m.st.FindMember(value)
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.assignee = member.ID
		m.inputs[StepAssignee].SetValue(member.ID)

	case StepStatus:
		if value == "" {
			m.status = models.StatusToDo
			break
		}
		s, err := models.ParseStatus(value)
		if err != nil {
			m.validationErr = "Invalid status. Use: todo, doing, done"
			return m, nil
		}
		m.status = s

	case StepPriority:
		if value == "" {
			m.priority = models.PriorityMedium
			break
		}
		p, err := models.ParsePriority(value)
		if err != nil {
			m.validationErr = "Invalid priority. Use: low, medium, high, 1, 2, or 3"
			return m, nil
		}
		m.priority = p

	case StepDueDate:
		d, err := parser.ParseDueDate(value, m.st.Now())
		if err != nil {
			m.validationErr = "Invalid due date: " + err.Error()
			return m, nil
		}
		if d.IsZero() {
			m.validationErr = "Due date is required"
			return m, nil
		}
		m.due = d

	case StepChecklist:
		// Each Enter adds an item; Enter on an empty input moves on
		if value != "" {
			m.checklist = append(m.checklist, models.ChecklistItem{Text: value})
			m.inputs[StepChecklist].SetValue("")
			m.inputs[StepChecklist].Placeholder = fmt.Sprintf("Add another item (%d so far, Enter on empty to finish)", len(m.checklist))
			return m, nil
		}

	case StepSave:
		return m.save()
	}

	return m.nextStep()
}

// nextStep moves to the next step
func (m TaskFormModel) nextStep() (TaskFormModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m TaskFormModel) prevStep() (TaskFormModel, tea.Cmd) {
	if m.currentStep > StepTitle {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

// updateCurrentField updates free-text fields as the user types; the rest
// are validated in handleEnter
func (m *TaskFormModel) updateCurrentField() {
	if m.currentStep == StepTitle {
		m.title = m.inputs[StepTitle].Value()
	}
}

func (m TaskFormModel) input() store.TaskInput {
	assignee := m.assignee
	if assignee == "" {
		assignee = m.st.Identity().ID()
	}
	in := store.TaskInput{
		Title:      m.title,
		Status:     m.status,
		AssigneeID: assignee,
		DueDate:    m.due,
		Priority:   m.priority,
		Checklist:  m.checklist,
	}
	if m.isEditMode {
		in.VoiceNoteRef = m.original.VoiceNoteRef
		in.Attachments = m.original.Attachments
	}
	return in
}

// hasChanges reports whether leaving would lose anything
func (m TaskFormModel) hasChanges() bool {
	if !m.isEditMode {
		return strings.TrimSpace(m.title) != "" || m.assignee != "" || !m.due.IsZero() || len(m.checklist) > 0
	}
	in := m.input()
	o := m.original
	return in.Title != o.Title || in.AssigneeID != o.AssigneeID || in.Status != o.Status ||
		in.Priority != o.Priority || in.DueDate != o.DueDate || len(in.Checklist) != len(o.Checklist)
}

// save writes the task through the store; rejected input stays in the form
func (m TaskFormModel) save() (TaskFormModel, tea.Cmd) {
	var (
		task *models.Task
		err  error
	)
	if m.isEditMode {
		task, err = m.st.UpdateTask(m.editTaskID, m.input())
	} else {
		task, err = m.st.CreateTask(m.input())
	}
	if err != nil {
		m.validationErr = friendlyError(err)
		return m, nil
	}

	m.completed = true
	m.saved = task
	return m, m.done()
}

func (m TaskFormModel) cancel() (TaskFormModel, tea.Cmd) {
	m.cancelled = true
	return m, m.done()
}

func (m TaskFormModel) done() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	task := m.saved
	return func() tea.Msg { return formClosedMsg{task: task} }
}

// handleSaveChoice handles the save confirmation modal response
func (m TaskFormModel) handleSaveChoice() (TaskFormModel, tea.Cmd) {
	m.showSaveModal = false
	if m.saveModalChoice {
		return m.save()
	}
	return m.cancel()
}

// friendlyError turns store errors into one-line form messages
func friendlyError(err error) string {
	var se *store.Error
	if errors.As(err, &se) {
		return se.Msg
	}
	return err.Error()
}

// View renders the TUI
func (m TaskFormModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	if m.width < 85 {
		return m.renderWizard()
	}

	rightWidth := 50
	leftWidth := m.width - rightWidth - 4

	leftStyle := lipgloss.NewStyle().
		Width(leftWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)
	rightStyle := lipgloss.NewStyle().
		Width(rightWidth).
		Padding(1)

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.renderWizard()),
		" ",
		rightStyle.Render(m.renderPreview()),
	)

	if m.showSaveModal {
		return m.renderSaveModal()
	}
	return mainView
}

// renderWizard renders the step-by-step wizard
func (m TaskFormModel) renderWizard() string {
	var b strings.Builder

	heading := "✨ New task"
	if m.isEditMode {
		heading = fmt.Sprintf("✏️  Edit task #%d", m.editTaskID)
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render(heading))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	activeLabelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)

	for i, label := range stepLabels {
		step := Step(i)
		if step == m.currentStep {
			b.WriteString(activeLabelStyle.Render("▶ " + label))
			b.WriteString("\n")
			b.WriteString(m.inputs[i].View())
		} else {
			b.WriteString(labelStyle.Render("  " + label + ": " + m.stepSummary(step)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	saveStyle := labelStyle
	if m.currentStep == StepSave {
		saveStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorAccentBright)).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 2)
	}
	b.WriteString(saveStyle.Render("Save"))
	b.WriteString("\n")

	if m.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("⚠ " + m.validationErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
		Render("enter next · tab/↓ skip · shift+tab/↑ back · esc leave"))
	return b.String()
}

func (m TaskFormModel) stepSummary(step Step) string {
	switch step {
	case StepTitle:
		return m.title
	case StepAssignee:
		return m.assignee
	case StepStatus:
		return string(m.status)
	case StepPriority:
		return string(m.priority)
	case StepDueDate:
		if m.due.IsZero() {
			return ""
		}
		return m.due.String()
	case StepChecklist:
		if len(m.checklist) == 0 {
			return ""
		}
		return fmt.Sprintf("%d item(s)", len(m.checklist))
	}
	return ""
}

// renderPreview renders the live card preview
func (m TaskFormModel) renderPreview() string {
	var b strings.Builder

	title := m.title
	if strings.TrimSpace(title) == "" {
		title = "Untitled task"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render("📋 " + title))
	b.WriteString("\n\n")

	if m.assignee != "" {
		b.WriteString("Assignee: " + m.assignee + "\n")
	}
	if m.status != "" {
		b.WriteString("Status: " + string(m.status) + "\n")
	}
	if m.priority != "" {
		b.WriteString("Priority: ")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColor(m.priority))).Render(string(m.priority)))
		b.WriteString("\n")
	}
	if !m.due.IsZero() {
		b.WriteString(parser.FormatDueDate(m.due, m.st.Now()) + "\n")
	}
	if len(m.checklist) > 0 {
		b.WriteString("\nChecklist:\n")
		for _, item := range m.checklist {
			box := "☐"
			if item.Completed {
				box = "☑"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", box, item.Text))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Width(46).
		Render(b.String())
}

// renderSaveModal renders the save confirmation modal
func (m TaskFormModel) renderSaveModal() string {
	var content strings.Builder
	content.WriteString("Save changes?\n\n")

	yesStyle := lipgloss.NewStyle().Padding(0, 2)
	noStyle := lipgloss.NewStyle().Padding(0, 2)
	if m.saveModalChoice {
		yesStyle = yesStyle.Background(lipgloss.Color(ColorAccentBright)).Foreground(lipgloss.Color("#000000")).Bold(true)
	} else {
		noStyle = noStyle.Background(lipgloss.Color(ColorError)).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Yes"), "   ", noStyle.Render("No")))
	content.WriteString("\n\n← → or Y/N to choose, Enter to confirm\nEsc to cancel")

	modal := lipgloss.NewStyle().
		Width(50).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func priorityColor(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return ColorError
	case models.PriorityMedium:
		return ColorWarning
	}
	return ColorSecondaryText
}
