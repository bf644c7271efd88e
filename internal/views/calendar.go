package views

import (
	"time"

	"github.com/balkashynov/teamboard/internal/models"
)

// PreviewLimit is how many tasks a calendar day surfaces before collapsing
const PreviewLimit = 2

// Day is one calendar cell
type Day struct {
	Date  models.Date
	Tasks []models.Task
}

// HasTasks reports whether anything is due that day
func (d Day) HasTasks() bool {
	return len(d.Tasks) > 0
}

// Preview returns the ids of the first PreviewLimit tasks
func (d Day) Preview() []uint {
	n := min(len(d.Tasks), PreviewLimit)
	ids := make([]uint, 0, n)
	for _, t := range d.Tasks[:n] {
		ids = append(ids, t.ID)
	}
	return ids
}

// Overflow is the number of tasks hidden behind the preview
func (d Day) Overflow() int {
	return max(len(d.Tasks)-PreviewLimit, 0)
}

// Month buckets tasks by due date for one calendar month
type Month struct {
	Year  int
	Month time.Month
	Days  []Day
}

// BuildMonth groups tasks by their full due date for every day of the month
func BuildMonth(tasks []models.Task, year int, month time.Month) Month {
	first := models.NewDate(year, month, 1)
	m := Month{Year: first.Year, Month: first.Month}

	byDate := make(map[models.Date][]models.Task)
	for _, t := range tasks {
		byDate[t.DueDate] = append(byDate[t.DueDate], t)
	}

	for d := first; d.Month == first.Month; d = d.AddDays(1) {
		m.Days = append(m.Days, Day{Date: d, Tasks: byDate[d]})
	}
	return m
}

// Day returns the cell for day-of-month n (1-based)
func (m Month) Day(n int) (Day, bool) {
	if n < 1 || n > len(m.Days) {
		return Day{}, false
	}
	return m.Days[n-1], true
}

// LeadingBlanks is the number of empty grid cells before day 1 for a grid
// whose rows start on weekStart
func (m Month) LeadingBlanks(weekStart time.Weekday) int {
	first := models.NewDate(m.Year, m.Month, 1).In(time.UTC).Weekday()
	return (int(first) - int(weekStart) + 7) % 7
}

// Prev returns the year and month before m
func (m Month) Prev() (int, time.Month) {
	d := models.NewDate(m.Year, m.Month, 1).AddDays(-1)
	return d.Year, d.Month
}

// Next returns the year and month after m
func (m Month) Next() (int, time.Month) {
	d := models.NewDate(m.Year, m.Month, 1).AddDays(32)
	return d.Year, d.Month
}
