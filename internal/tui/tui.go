package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/store"
)

// RunBoardTUI starts the interactive board for the session in st
func RunBoardTUI(st *store.Store, weekStart time.Weekday) error {
	model, err := NewBoardModel(st, weekStart)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// RunTaskFormTUI starts the task wizard on its own and returns the created
// task, or nil if the user cancelled
func RunTaskFormTUI(st *store.Store, prefilled map[string]string) (*models.Task, error) {
	model := NewTaskFormModel(st, prefilled)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	// Handle exit messages after TUI closes
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(TaskFormModel)
	if !ok || m.cancelled {
		fmt.Println("❌ Task creation cancelled.")
		return nil, nil
	}
	return m.saved, nil
}
