// ABOUTME: Visualization CLI commands
// ABOUTME: Dashboard rendering and pipeline graph generation
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/apexcrm/viz"
)

// DashboardCommand prints the ASCII dashboard.
func DashboardCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	_ = fs.Parse(args)

	stats := viz.GenerateDashboardStats(context.Background(),
		app.Contacts, app.Deals, app.Activities, app.Tasks, app.Quotes)
	fmt.Print(viz.RenderDashboard(stats))
	return nil
}

// VizGraphPipelineCommand generates the deal pipeline graph.
func VizGraphPipelineCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("viz-pipeline", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	generator := viz.NewGraphGenerator(app.Deals, app.Contacts)
	dot, err := generator.GeneratePipelineGraph(context.Background())
	if err != nil {
		return fmt.Errorf("failed to generate pipeline graph: %w", err)
	}

	if *output == "" {
		fmt.Print(dot)
		return nil
	}

	if err := os.WriteFile(*output, []byte(dot), 0644); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	fmt.Printf("✓ Pipeline graph written to %s\n", *output)
	return nil
}
