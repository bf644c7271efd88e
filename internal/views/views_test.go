package views

import (
	"reflect"
	"testing"
	"time"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/urgency"
)

var today = models.NewDate(2024, time.July, 20)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Design initial UI mockups", Status: models.StatusToDo, AssigneeID: "u2", DueDate: today.AddDays(5)},
		{ID: 2, Title: "Set up project repository", Status: models.StatusDone, AssigneeID: "u1", DueDate: today.AddDays(-3)},
		{ID: 3, Title: "Write API documentation", Status: models.StatusInProgress, AssigneeID: "u3", DueDate: today.AddDays(2)},
		{ID: 4, Title: "Fix login redirect bug", Status: models.StatusInProgress, AssigneeID: "u1", DueDate: today.AddDays(-1)},
		{ID: 5, Title: "Plan sprint retrospective", Status: models.StatusToDo, AssigneeID: "u4", DueDate: today.AddDays(10)},
		{ID: 6, Title: "Deploy staging environment", Status: models.StatusDone, AssigneeID: "u2", DueDate: today.AddDays(-6)},
	}
}

func cardIDs(c Column) []uint {
	ids := []uint{}
	for _, card := range c.Cards {
		ids = append(ids, card.Task.ID)
	}
	return ids
}

func TestBuildBoard_WildcardKeepsEverything(t *testing.T) {
	tasks := sampleTasks()
	b := BuildBoard(tasks, Filter{AssigneeID: All, Status: All}, today)

	if b.Total() != len(tasks) {
		t.Fatalf("expected %d cards, got %d", len(tasks), b.Total())
	}
	if got := b.Counts(); !reflect.DeepEqual(got, []int{2, 2, 2}) {
		t.Fatalf("expected column counts [2 2 2], got %v", got)
	}
	if got := cardIDs(b.Column(models.StatusInProgress)); !reflect.DeepEqual(got, []uint{3, 4}) {
		t.Fatalf("expected store order [3 4], got %v", got)
	}
}

func TestBuildBoard_EmptyFilterActsAsWildcard(t *testing.T) {
	b := BuildBoard(sampleTasks(), Filter{}, today)
	if b.Total() != 6 {
		t.Fatalf("expected 6 cards, got %d", b.Total())
	}
}

func TestBuildBoard_TitleFilterIsCaseInsensitive(t *testing.T) {
	b := BuildBoard(sampleTasks(), Filter{Title: "mockup"}, today)
	if b.Total() != 1 {
		t.Fatalf("expected one match, got %d", b.Total())
	}
	if got := cardIDs(b.Column(models.StatusToDo)); !reflect.DeepEqual(got, []uint{1}) {
		t.Fatalf("expected task 1, got %v", got)
	}

	b = BuildBoard(sampleTasks(), Filter{Title: "API DOC"}, today)
	if b.Total() != 1 {
		t.Fatalf("expected upper-case needle to match, got %d", b.Total())
	}
}

func TestBuildBoard_CombinedPredicates(t *testing.T) {
	b := BuildBoard(sampleTasks(), Filter{AssigneeID: "u1", Status: string(models.StatusDone)}, today)
	if b.Total() != 1 {
		t.Fatalf("expected one card, got %d", b.Total())
	}
	if got := cardIDs(b.Column(models.StatusDone)); !reflect.DeepEqual(got, []uint{2}) {
		t.Fatalf("expected task 2, got %v", got)
	}
	if n := len(b.Column(models.StatusToDo).Cards); n != 0 {
		t.Fatalf("expected filtered-out columns to be empty, got %d", n)
	}

	b = BuildBoard(sampleTasks(), Filter{AssigneeID: "nobody"}, today)
	if b.Total() != 0 {
		t.Fatalf("expected no cards, got %d", b.Total())
	}
}

func TestBuildBoard_CardsCarryUrgency(t *testing.T) {
	b := BuildBoard(sampleTasks(), Filter{}, today)
	want := map[uint]urgency.Tier{1: urgency.Normal, 3: urgency.DueSoon, 4: urgency.Overdue}
	for _, col := range b.Columns {
		for _, card := range col.Cards {
			if tier, ok := want[card.Task.ID]; ok && card.Urgency != tier {
				t.Fatalf("task %d: expected %s, got %s", card.Task.ID, tier, card.Urgency)
			}
		}
	}
}

func TestBuildMonth_BucketsByFullDate(t *testing.T) {
	due := models.NewDate(2024, time.July, 25)
	tasks := []models.Task{
		{ID: 1, DueDate: due},
		{ID: 2, DueDate: models.NewDate(2024, time.August, 25)},
		{ID: 3, DueDate: models.NewDate(2023, time.July, 25)},
	}
	m := BuildMonth(tasks, 2024, time.July)

	if len(m.Days) != 31 {
		t.Fatalf("expected 31 days in July, got %d", len(m.Days))
	}
	for _, d := range m.Days {
		if d.Date.Day == 25 {
			if !d.HasTasks() || len(d.Tasks) != 1 || d.Tasks[0].ID != 1 {
				t.Fatalf("expected only task 1 on the 25th, got %+v", d.Tasks)
			}
			continue
		}
		if d.HasTasks() {
			t.Fatalf("expected day %d empty, got %d tasks", d.Date.Day, len(d.Tasks))
		}
	}
}

func TestBuildMonth_PreviewAndOverflow(t *testing.T) {
	due := models.NewDate(2024, time.February, 29)
	tasks := []models.Task{{ID: 7, DueDate: due}, {ID: 8, DueDate: due}, {ID: 9, DueDate: due}, {ID: 10, DueDate: due}}
	m := BuildMonth(tasks, 2024, time.February)

	if len(m.Days) != 29 {
		t.Fatalf("expected 29 days in a leap February, got %d", len(m.Days))
	}
	day, ok := m.Day(29)
	if !ok {
		t.Fatalf("expected day 29 to exist")
	}
	if got := day.Preview(); !reflect.DeepEqual(got, []uint{7, 8}) {
		t.Fatalf("expected preview [7 8], got %v", got)
	}
	if day.Overflow() != 2 {
		t.Fatalf("expected overflow 2, got %d", day.Overflow())
	}
	if len(day.Tasks) != 4 {
		t.Fatalf("expected full list to stay available, got %d", len(day.Tasks))
	}

	empty, _ := m.Day(1)
	if empty.HasTasks() || empty.Overflow() != 0 || len(empty.Preview()) != 0 {
		t.Fatalf("expected empty day, got %+v", empty)
	}
	if _, ok := m.Day(30); ok {
		t.Fatalf("expected day 30 to be out of range")
	}
}

func TestMonth_Navigation(t *testing.T) {
	m := BuildMonth(nil, 2024, time.January)
	if y, mo := m.Prev(); y != 2023 || mo != time.December {
		t.Fatalf("expected 2023-12, got %d-%d", y, mo)
	}
	m = BuildMonth(nil, 2024, time.December)
	if y, mo := m.Next(); y != 2025 || mo != time.January {
		t.Fatalf("expected 2025-01, got %d-%d", y, mo)
	}
	// July 1st 2024 was a Monday
	m = BuildMonth(nil, 2024, time.July)
	if n := m.LeadingBlanks(time.Monday); n != 0 {
		t.Fatalf("expected no blanks for a Monday start, got %d", n)
	}
	if n := m.LeadingBlanks(time.Sunday); n != 1 {
		t.Fatalf("expected one blank for a Sunday start, got %d", n)
	}
}

func TestBuildTimesheet_Window(t *testing.T) {
	now := time.Date(2024, time.July, 20, 15, 0, 0, 0, time.Local)
	done := models.Task{ID: 1, Status: models.StatusDone, AssigneeID: "u1", DueDate: today.AddDays(-3)}

	ts := BuildTimesheet([]models.Task{done}, nil, "u1", now)
	if len(ts.Tasks) != 1 {
		t.Fatalf("expected done task within window, got %d", len(ts.Tasks))
	}

	other := done
	other.AssigneeID = "u2"
	ts = BuildTimesheet([]models.Task{other}, nil, "u1", now)
	if len(ts.Tasks) != 0 {
		t.Fatalf("expected other assignee excluded, got %d", len(ts.Tasks))
	}

	tasks := []models.Task{
		{ID: 2, Status: models.StatusDone, AssigneeID: "u1", DueDate: today.AddDays(-7)},
		{ID: 3, Status: models.StatusDone, AssigneeID: "u1", DueDate: today.AddDays(-8)},
		{ID: 4, Status: models.StatusInProgress, AssigneeID: "u1", DueDate: today},
		{ID: 5, Status: models.StatusDone, AssigneeID: "u1", DueDate: today.AddDays(4)},
	}
	ts = BuildTimesheet(tasks, nil, "u1", now)
	var ids []uint
	for _, task := range ts.Tasks {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []uint{2, 5}) {
		t.Fatalf("expected inclusive lower bound and future tasks [2 5], got %v", ids)
	}
	if ts.Since != today.AddDays(-7) {
		t.Fatalf("expected window start %v, got %v", today.AddDays(-7), ts.Since)
	}
}

func TestBuildTimesheet_Feedback(t *testing.T) {
	now := time.Date(2024, time.July, 20, 9, 0, 0, 0, time.Local)
	feedback := []models.Feedback{
		{ID: 1, FromID: "u1", ToID: "u2", Date: today.AddDays(-1)},
		{ID: 2, FromID: models.MentorID, ToID: "u1", Date: today.AddDays(-2)},
		{ID: 3, FromID: "u2", ToID: "u3", Date: today},
		{ID: 4, FromID: "u3", ToID: "u1", Date: today.AddDays(-10)},
	}
	ts := BuildTimesheet(nil, feedback, "u1", now)
	var ids []uint
	for _, fb := range ts.Feedback {
		ids = append(ids, fb.ID)
	}
	if !reflect.DeepEqual(ids, []uint{1, 2}) {
		t.Fatalf("expected feedback [1 2], got %v", ids)
	}

	ts = BuildTimesheet(nil, feedback, "", now)
	if len(ts.Feedback) != 0 || len(ts.Tasks) != 0 {
		t.Fatalf("expected empty timesheet without identity")
	}
}
