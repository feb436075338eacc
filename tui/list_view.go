// ABOUTME: List view rendering for the TUI
// ABOUTME: Per-entity tables built with the bubbles table component
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/apexcrm/models"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("APEXCRM"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.loading {
		s.WriteString("Loading...")
	} else {
		s.WriteString(m.renderTable())
	}
	s.WriteString("\n\n")

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for e := EntityType(0); e < entityCount; e++ {
		if e == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(e.String()))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(e.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	switch m.entityType {
	case EntityContacts:
		return m.renderContactsTable()
	case EntityDeals:
		return m.renderDealsTable()
	case EntityActivities:
		return m.renderActivitiesTable()
	case EntityTasks:
		return m.renderTasksTable()
	case EntityQuotes:
		return m.renderQuotesTable()
	}
	return ""
}

func (m Model) contactLabel(id *int) string {
	if id == nil {
		return "N/A"
	}
	return models.RefLabel(id, m.contactNames[*id])
}

func (m Model) buildTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-10),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) renderContactsTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Email", Width: 28},
		{Title: "Phone", Width: 15},
		{Title: "Company", Width: 20},
	}

	var rows []table.Row
	for _, r := range m.records[EntityContacts] {
		c := models.ContactFromRecord(r)
		rows = append(rows, table.Row{c.Name, c.Email, c.Phone, c.Company})
	}

	return m.buildTable(columns, rows)
}

func (m Model) renderDealsTable() string {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Stage", Width: 12},
		{Title: "Value", Width: 12},
		{Title: "Prob", Width: 6},
		{Title: "Contact", Width: 20},
	}

	var rows []table.Row
	for _, r := range m.records[EntityDeals] {
		d := models.DealFromRecord(r)
		rows = append(rows, table.Row{
			d.Name,
			d.Stage,
			fmt.Sprintf("$%.0f", d.Value),
			fmt.Sprintf("%.0f%%", d.Probability),
			m.contactLabel(d.ContactID),
		})
	}

	return m.buildTable(columns, rows)
}

func (m Model) renderActivitiesTable() string {
	columns := []table.Column{
		{Title: "Type", Width: 8},
		{Title: "Subject", Width: 32},
		{Title: "Contact", Width: 20},
		{Title: "When", Width: 14},
	}

	var rows []table.Row
	for _, r := range m.records[EntityActivities] {
		a := models.ActivityFromRecord(r)
		rows = append(rows, table.Row{
			a.Type,
			a.Subject,
			m.contactLabel(a.ContactID),
			models.FormatDate(a.CreatedAt),
		})
	}

	return m.buildTable(columns, rows)
}

func (m Model) renderTasksTable() string {
	columns := []table.Column{
		{Title: "Title", Width: 30},
		{Title: "Status", Width: 12},
		{Title: "Priority", Width: 8},
		{Title: "Due", Width: 14},
	}

	var rows []table.Row
	for _, r := range m.records[EntityTasks] {
		t := models.TaskFromRecord(r)
		rows = append(rows, table.Row{t.Name, t.Status, t.Priority, models.FormatDate(t.DueDate)})
	}

	return m.buildTable(columns, rows)
}

func (m Model) renderQuotesTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Company", Width: 20},
		{Title: "Status", Width: 10},
		{Title: "Date", Width: 14},
		{Title: "Contact", Width: 20},
	}

	var rows []table.Row
	for _, r := range m.records[EntityQuotes] {
		q := models.QuoteFromRecord(r)
		rows = append(rows, table.Row{
			q.Name,
			q.Company,
			q.Status,
			models.FormatDate(q.QuoteDate),
			m.contactLabel(q.ContactID),
		})
	}

	return m.buildTable(columns, rows)
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Enter: Details",
		"Tab: Switch tabs",
		"r: Refresh",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}
