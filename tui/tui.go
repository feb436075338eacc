// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Read-only full-screen browser over the remote CRM entities
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

// EntityType is the currently selected tab.
type EntityType int

const (
	EntityContacts EntityType = iota
	EntityDeals
	EntityActivities
	EntityTasks
	EntityQuotes

	entityCount
)

func (e EntityType) String() string {
	switch e {
	case EntityContacts:
		return "Contacts"
	case EntityDeals:
		return "Deals"
	case EntityActivities:
		return "Activities"
	case EntityTasks:
		return "Tasks"
	case EntityQuotes:
		return "Quotes"
	}
	return ""
}

// ViewMode selects which screen is rendered.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// recordsLoadedMsg delivers a fetched entity list to the model.
type recordsLoadedMsg struct {
	entity  EntityType
	records []store.Record
}

// Model is the main bubbletea model.
type Model struct {
	services   map[EntityType]*services.Service
	entityType EntityType
	viewMode   ViewMode

	records      map[EntityType][]store.Record
	contactNames map[int]string
	selectedRow  int
	loading      bool

	width  int
	height int
}

// NewModel creates a TUI model over the five entity services.
func NewModel(contacts, deals, activities, tasks, quotes *services.Service) Model {
	return Model{
		services: map[EntityType]*services.Service{
			EntityContacts:   contacts,
			EntityDeals:      deals,
			EntityActivities: activities,
			EntityTasks:      tasks,
			EntityQuotes:     quotes,
		},
		entityType:   EntityContacts,
		records:      map[EntityType][]store.Record{},
		contactNames: map[int]string{},
		loading:      true,
		width:        80,
		height:       24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadEntity(m.entityType)
}

// loadEntity fetches one entity list off the UI loop.
func (m Model) loadEntity(entity EntityType) tea.Cmd {
	svc := m.services[entity]
	return func() tea.Msg {
		return recordsLoadedMsg{entity: entity, records: svc.List(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case recordsLoadedMsg:
		m.records[msg.entity] = msg.records
		m.loading = false
		if msg.entity == EntityContacts {
			for _, r := range msg.records {
				m.contactNames[r.ID()] = r.String("Name")
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.viewMode == ViewDetail {
		return m.renderDetailView()
	}
	return m.renderListView()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.viewMode == ViewDetail {
		return m.handleDetailKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		if m.selectedRow < len(m.records[m.entityType]) {
			m.viewMode = ViewDetail
		}
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.records[m.entityType])-1 {
			m.selectedRow++
		}
	case "tab":
		m.entityType = (m.entityType + 1) % entityCount
		m.selectedRow = 0
		if _, loaded := m.records[m.entityType]; !loaded {
			m.loading = true
			return m, m.loadEntity(m.entityType)
		}
	case "r":
		m.loading = true
		return m, m.loadEntity(m.entityType)
	}

	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.viewMode = ViewList
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
