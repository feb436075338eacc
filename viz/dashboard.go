// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII overview of the pipeline, tasks, and activity
package viz

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/services"
)

type DashboardStats struct {
	PipelineByStage map[string]PipelineStageStats

	TotalContacts   int
	TotalDeals      int
	TotalActivities int
	TotalQuotes     int

	OpenTasks    int
	OverdueStats map[string]int // priority -> open count

	PendingQuotes int
}

type PipelineStageStats struct {
	Stage string
	Count int
	Value float64
}

// GenerateDashboardStats aggregates remote records into dashboard counters.
// The underlying reads never fail, so neither does this.
func GenerateDashboardStats(ctx context.Context, contacts, deals, activities, tasks, quotes *services.Service) *DashboardStats {
	stats := &DashboardStats{
		PipelineByStage: make(map[string]PipelineStageStats),
		OverdueStats:    make(map[string]int),
	}

	for _, r := range deals.List(ctx) {
		deal := models.DealFromRecord(r)
		stage := deal.Stage
		if stage == "" {
			stage = "unknown"
		}

		pstats := stats.PipelineByStage[stage]
		pstats.Stage = stage
		pstats.Count++
		pstats.Value += deal.Value
		stats.PipelineByStage[stage] = pstats
		stats.TotalDeals++
	}

	stats.TotalContacts = len(contacts.List(ctx))
	stats.TotalActivities = len(activities.List(ctx))

	for _, r := range tasks.List(ctx) {
		task := models.TaskFromRecord(r)
		switch task.Status {
		case models.StatusPending, models.StatusInProgress:
			stats.OpenTasks++
			priority := task.Priority
			if priority == "" {
				priority = models.PriorityMedium
			}
			stats.OverdueStats[priority]++
		}
	}

	for _, r := range quotes.List(ctx) {
		quote := models.QuoteFromRecord(r)
		if quote.Status == models.QuoteDraft || quote.Status == models.QuoteSent {
			stats.PendingQuotes++
		}
		stats.TotalQuotes++
	}

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  APEXCRM DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, stats.PipelineByStage)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  💼 %d deals  📞 %d activities  📄 %d quotes\n\n",
		stats.TotalContacts, stats.TotalDeals, stats.TotalActivities, stats.TotalQuotes))

	if stats.OpenTasks > 0 || stats.PendingQuotes > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		if stats.OpenTasks > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d open task(s)", stats.OpenTasks))
			if urgent := stats.OverdueStats[models.PriorityUrgent]; urgent > 0 {
				out.WriteString(fmt.Sprintf(" (%d urgent)", urgent))
			}
			out.WriteString("\n")
		}
		if stats.PendingQuotes > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d quote(s) awaiting a decision\n", stats.PendingQuotes))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline map[string]PipelineStageStats) {
	stages := []string{
		models.StageLead,
		models.StageQualified,
		models.StageProposal,
		models.StageNegotiation,
		models.StageClosedWon,
		models.StageClosedLost,
	}

	maxCount := 0
	for _, pstats := range pipeline {
		if pstats.Count > maxCount {
			maxCount = pstats.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, stage := range stages {
		pstats, exists := pipeline[stage]
		if !exists {
			continue
		}

		barLength := (pstats.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-12s %s  %2d ($%.0fK)\n",
			stage, bar, pstats.Count, pstats.Value/1000))
	}
}
