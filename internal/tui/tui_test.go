package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/seed"
	"github.com/balkashynov/teamboard/internal/store"
	"github.com/balkashynov/teamboard/internal/views"
)

var fixedNow = time.Date(2024, time.July, 20, 10, 30, 0, 0, time.Local)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(store.Options{Now: func() time.Time { return fixedNow }})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	data := seed.Fixture(fixedNow)
	if err := st.Load(data.Members, data.Tasks, data.Feedback); err != nil {
		t.Fatalf("failed to load seed: %v", err)
	}
	st.SetIdentity(models.Member("u1"))
	return st
}

func newTestBoard(t *testing.T, st *store.Store) BoardModel {
	t.Helper()
	m, err := NewBoardModel(st, time.Monday)
	if err != nil {
		t.Fatalf("failed to create board: %v", err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(BoardModel)
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pressBoard(m BoardModel, msgs ...tea.KeyMsg) BoardModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(BoardModel)
	}
	return m
}

func pressForm(m TaskFormModel, msgs ...tea.KeyMsg) (TaskFormModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.update(msg)
	}
	return m, cmd
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

func TestBoardModel_SeedColumns(t *testing.T) {
	m := newTestBoard(t, newTestStore(t))

	counts := m.board.Counts()
	if len(counts) != 3 || counts[0] != 2 || counts[1] != 2 || counts[2] != 2 {
		t.Fatalf("expected {2,2,2}, got %v", counts)
	}

	view := m.View()
	for _, want := range []string{"To Do (2)", "In Progress (2)", "Done (2)", "Design initial UI mockups"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestBoardModel_MoveKeepsCursorOnTask(t *testing.T) {
	st := newTestStore(t)
	m := newTestBoard(t, st)

	task, ok := m.selected()
	if !ok || task.Status != models.StatusToDo {
		t.Fatalf("expected a To Do task under the cursor, got %+v", task)
	}

	m = pressBoard(m, keys("]"))
	stored, err := st.Task(task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != models.StatusInProgress {
		t.Fatalf("expected In Progress, got %s", stored.Status)
	}
	if sel, _ := m.selected(); sel.ID != task.ID || m.col != 1 {
		t.Fatalf("expected cursor to follow task #%d into column 1, got #%d in column %d", task.ID, sel.ID, m.col)
	}

	m = pressBoard(m, keys("["), keys("["))
	if stored, _ := st.Task(task.ID); stored.Status != models.StatusToDo {
		t.Fatalf("expected back in To Do, got %s", stored.Status)
	}
}

func TestBoardModel_Filters(t *testing.T) {
	m := newTestBoard(t, newTestStore(t))

	m = pressBoard(m, keys("a"))
	if m.filter.AssigneeID != "u1" || m.board.Total() != 2 {
		t.Fatalf("expected u1 filter with 2 tasks, got %q with %d", m.filter.AssigneeID, m.board.Total())
	}

	m = pressBoard(m, keys("s"))
	if m.filter.Status != string(models.StatusToDo) || m.board.Total() != 0 {
		t.Fatalf("expected u1 + To Do to be empty, got %d", m.board.Total())
	}

	m = pressBoard(m, keys("x"))
	if m.filter.AssigneeID != views.All || m.filter.Status != views.All || m.board.Total() != 6 {
		t.Fatalf("expected filters reset, got %+v (%d)", m.filter, m.board.Total())
	}
}

func TestBoardModel_SearchFiltersAsYouType(t *testing.T) {
	m := newTestBoard(t, newTestStore(t))

	m = pressBoard(m, keys("/"), keys("MOCKUP"))
	if m.mode != ModeSearch {
		t.Fatalf("expected search mode")
	}
	if m.board.Total() != 1 {
		t.Fatalf("expected 1 match, got %d", m.board.Total())
	}

	m = pressBoard(m, esc)
	if m.mode != ModeBoard || m.filter.Title != "" || m.board.Total() != 6 {
		t.Fatalf("expected search cleared, got mode %d title %q total %d", m.mode, m.filter.Title, m.board.Total())
	}
}

func TestBoardModel_OpeningNotificationsMarksRead(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.CreateTask(store.TaskInput{
		Title:      "Review PR",
		AssigneeID: "u2",
		DueDate:    models.DateOf(fixedNow).AddDays(2),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := newTestBoard(t, st)
	if m.unread != 1 {
		t.Fatalf("expected 1 unread, got %d", m.unread)
	}

	m = pressBoard(m, keys("n"))
	if !m.notif.Open() || m.unread != 0 {
		t.Fatalf("expected panel open and badge cleared")
	}
	if n, _ := st.UnreadCount(); n != 0 {
		t.Fatalf("expected store notifications read, got %d unread", n)
	}
	if len(m.notifications) != 1 || m.notifications[0].Read {
		t.Fatalf("expected panel to show the item as it was when opened, got %+v", m.notifications)
	}
	if !strings.Contains(m.View(), `New task "Review PR" assigned to you.`) {
		t.Fatalf("expected notification in view")
	}

	m = pressBoard(m, keys("n"))
	if m.notif.Open() {
		t.Fatalf("expected panel closed")
	}
}

func TestBoardModel_DetailTogglesChecklist(t *testing.T) {
	st := newTestStore(t)
	m := newTestBoard(t, st)

	task, _ := m.selected()
	if len(task.Checklist) == 0 {
		t.Fatalf("expected the first card to carry the seeded checklist")
	}
	before := task.Checklist[0].Completed

	m = pressBoard(m, enter, space)
	if m.mode != ModeDetail {
		t.Fatalf("expected detail mode, got %d", m.mode)
	}
	stored, _ := st.Task(task.ID)
	if stored.Checklist[0].Completed == before {
		t.Fatalf("expected checklist item toggled")
	}

	m = pressBoard(m, esc)
	if m.mode != ModeBoard {
		t.Fatalf("expected back on board")
	}
}

func TestBoardModel_GuestCannotMutate(t *testing.T) {
	st := newTestStore(t)
	st.SetIdentity(models.Guest())
	m := newTestBoard(t, st)

	task, _ := m.selected()
	m = pressBoard(m, keys("]"))
	if !m.messageErr {
		t.Fatalf("expected an inline error")
	}
	if stored, _ := st.Task(task.ID); stored.Status != task.Status {
		t.Fatalf("expected status unchanged")
	}

	m = pressBoard(m, keys("+"))
	if m.mode != ModeBoard {
		t.Fatalf("expected form to stay closed for guests")
	}
}

func TestBoardModel_GiveFeedback(t *testing.T) {
	st := newTestStore(t)
	m := newTestBoard(t, st)

	m = pressBoard(m, keys("f"), keys("g"), keys("u2: Nice demo"), enter)
	if m.mode != ModeFeedback || m.messageErr {
		t.Fatalf("expected feedback submitted, got mode %d message %q", m.mode, m.message)
	}

	all, _ := st.Feedback()
	last := all[len(all)-1]
	if len(all) != 5 || last.FromID != "u1" || last.ToID != "u2" || last.Text != "Nice demo" {
		t.Fatalf("unexpected feedback: %+v", last)
	}
}

func TestBoardModel_CalendarNavigation(t *testing.T) {
	m := newTestBoard(t, newTestStore(t))

	m = pressBoard(m, keys("c"))
	if m.mode != ModeCalendar || m.calMonth != time.July || m.calDay != 20 {
		t.Fatalf("expected calendar on today, got %v %d", m.calMonth, m.calDay)
	}
	if !strings.Contains(m.View(), "July 2024") {
		t.Fatalf("expected month heading")
	}

	m = pressBoard(m, keys("]"))
	if m.calMonth != time.August || m.calDay != 1 {
		t.Fatalf("expected August 1, got %v %d", m.calMonth, m.calDay)
	}

	m = pressBoard(m, keys("h"))
	if m.calDay != 1 {
		t.Fatalf("expected day clamped to 1, got %d", m.calDay)
	}
}

func TestTaskForm_CreatesTask(t *testing.T) {
	st := newTestStore(t)
	form := NewTaskFormModel(st, nil)

	form, cmd := pressForm(form,
		keys("Draft launch email"), enter,
		keys("bruno"), enter,
		enter,
		keys("high"), enter,
		keys("3 days"), enter,
		keys("Collect quotes"), enter,
		enter,
		enter,
	)

	if form.validationErr != "" {
		t.Fatalf("unexpected validation error: %s", form.validationErr)
	}
	if !form.completed || form.saved == nil {
		t.Fatalf("expected task saved")
	}
	task := form.saved
	if task.AssigneeID != "u2" || task.Priority != models.PriorityHigh || task.Status != models.StatusToDo {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.DueDate != models.DateOf(fixedNow).AddDays(3) || len(task.Checklist) != 1 {
		t.Fatalf("unexpected due date or checklist: %+v", task)
	}

	msg, ok := cmd().(formClosedMsg)
	if !ok || msg.task == nil || msg.task.ID != task.ID {
		t.Fatalf("expected formClosedMsg for the new task")
	}
}

func TestTaskForm_Validation(t *testing.T) {
	st := newTestStore(t)
	form := NewTaskFormModel(st, nil)

	form, _ = pressForm(form, enter)
	if form.validationErr == "" || form.currentStep != StepTitle {
		t.Fatalf("expected title to be required")
	}

	form, _ = pressForm(form, keys("Something"), enter, keys("zoe"), enter)
	if form.validationErr == "" || form.currentStep != StepAssignee {
		t.Fatalf("expected unknown assignee to be rejected")
	}

	form, _ = pressForm(form, tea.KeyMsg{Type: tea.KeyCtrlU}, keys("u3"), enter, enter, enter, keys("someday"), enter)
	if form.currentStep != StepDueDate || !strings.Contains(form.validationErr, "Invalid due date") {
		t.Fatalf("expected bad due date to be rejected, got step %d err %q", form.currentStep, form.validationErr)
	}
}

func TestTaskForm_EditKeepsAttachments(t *testing.T) {
	st := newTestStore(t)
	tasks, _ := st.Tasks()
	original := tasks[0]

	form := NewEditTaskFormModel(st, original)
	form, _ = pressForm(form, keys(" v2"))
	for form.currentStep < StepSave {
		form, _ = pressForm(form, enter)
		if form.validationErr != "" {
			t.Fatalf("unexpected validation error at step %d: %s", form.currentStep, form.validationErr)
		}
	}
	form, _ = pressForm(form, enter)

	if form.saved == nil || form.saved.ID != original.ID {
		t.Fatalf("expected task #%d updated", original.ID)
	}
	if form.saved.Title != original.Title+" v2" {
		t.Fatalf("unexpected title %q", form.saved.Title)
	}
	if len(form.saved.Attachments) != len(original.Attachments) || len(form.saved.Checklist) != len(original.Checklist) {
		t.Fatalf("expected children preserved")
	}
}
