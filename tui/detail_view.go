// ABOUTME: Detail view rendering for the TUI
// ABOUTME: Field-by-field display of the selected record with resolved references
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/apexcrm/models"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("DETAIL VIEW"))
	s.WriteString("\n\n")

	records := m.records[m.entityType]
	if m.selectedRow >= len(records) {
		s.WriteString("No record selected")
	} else {
		r := records[m.selectedRow]
		switch m.entityType {
		case EntityContacts:
			s.WriteString(m.renderContactDetail(models.ContactFromRecord(r)))
		case EntityDeals:
			s.WriteString(m.renderDealDetail(models.DealFromRecord(r)))
		case EntityActivities:
			s.WriteString(m.renderActivityDetail(models.ActivityFromRecord(r)))
		case EntityTasks:
			s.WriteString(m.renderTaskDetail(models.TaskFromRecord(r)))
		case EntityQuotes:
			s.WriteString(m.renderQuoteDetail(models.QuoteFromRecord(r)))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderContactDetail(c models.Contact) string {
	var s strings.Builder

	s.WriteString(m.renderField("Name", c.Name))
	s.WriteString(m.renderField("Email", c.Email))
	s.WriteString(m.renderField("Phone", c.Phone))
	s.WriteString(m.renderField("Company", c.Company))
	s.WriteString(m.renderField("Position", c.Position))
	s.WriteString(m.renderField("Created", models.FormatDate(c.CreatedAt)))

	return s.String()
}

func (m Model) renderDealDetail(d models.Deal) string {
	var s strings.Builder

	s.WriteString(m.renderField("Title", d.Name))
	s.WriteString(m.renderField("Stage", d.Stage))
	s.WriteString(m.renderField("Value", fmt.Sprintf("$%.2f", d.Value)))
	s.WriteString(m.renderField("Probability", fmt.Sprintf("%.0f%%", d.Probability)))
	s.WriteString(m.renderField("Expected Close", models.FormatDate(d.ExpectedCloseDate)))
	s.WriteString(m.renderField("Contact", m.contactLabel(d.ContactID)))
	s.WriteString(m.renderField("Description", d.Description))

	return s.String()
}

func (m Model) renderActivityDetail(a models.Activity) string {
	var s strings.Builder

	s.WriteString(m.renderField("Type", a.Type))
	s.WriteString(m.renderField("Subject", a.Subject))
	s.WriteString(m.renderField("Contact", m.contactLabel(a.ContactID)))
	s.WriteString(m.renderField("Logged", models.FormatDate(a.CreatedAt)))
	s.WriteString(m.renderField("Description", a.Description))

	return s.String()
}

func (m Model) renderTaskDetail(t models.Task) string {
	var s strings.Builder

	s.WriteString(m.renderField("Title", t.Name))
	s.WriteString(m.renderField("Status", t.Status))
	s.WriteString(m.renderField("Priority", t.Priority))
	s.WriteString(m.renderField("Due", models.FormatDate(t.DueDate)))
	s.WriteString(m.renderField("Contact", m.contactLabel(t.ContactID)))
	s.WriteString(m.renderField("Description", t.Description))

	return s.String()
}

func (m Model) renderQuoteDetail(q models.Quote) string {
	var s strings.Builder

	s.WriteString(m.renderField("Name", q.Name))
	s.WriteString(m.renderField("Company", q.Company))
	s.WriteString(m.renderField("Status", q.Status))
	s.WriteString(m.renderField("Quote Date", models.FormatDate(q.QuoteDate)))
	s.WriteString(m.renderField("Delivery", q.DeliveryMethod))
	s.WriteString(m.renderField("Contact", m.contactLabel(q.ContactID)))

	if q.Billing.Street != "" || q.Billing.City != "" {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Bold(true).Render("BILLING ADDRESS"))
		s.WriteString("\n")
		s.WriteString(m.renderField("Street", q.Billing.Street))
		s.WriteString(m.renderField("City", q.Billing.City))
		s.WriteString(m.renderField("State", q.Billing.State))
		s.WriteString(m.renderField("Country", q.Billing.Country))
	}

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}
