// ABOUTME: Task CLI commands
// ABOUTME: Commands for managing the task list
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/store"
)

// AddTaskCommand adds a new task.
func AddTaskCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	title := fs.String("title", "", "Task title (required)")
	description := fs.String("description", "", "Task details")
	dueDate := fs.String("due", "", "Due date (YYYY-MM-DD)")
	priority := fs.String("priority", "", "Priority: low, medium, high, urgent (default: medium)")
	contactID := fs.String("contact", "", "Associated contact ID")
	dealID := fs.String("deal", "", "Associated deal ID")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}

	record, err := app.Tasks.Create(context.Background(), store.Record{
		"title_c":       *title,
		"description_c": *description,
		"due_date_c":    *dueDate,
		"priority_c":    *priority,
		"contact_id_c":  *contactID,
		"deal_id_c":     *dealID,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	if record == nil {
		return fmt.Errorf("task was not created")
	}

	task := models.TaskFromRecord(record)
	fmt.Printf("✓ Task created: %s (ID: %d)\n", task.Name, task.ID)
	fmt.Printf("  Priority: %s, Status: %s\n", task.Priority, task.Status)
	if task.DueDate != "" {
		fmt.Printf("  Due: %s\n", models.FormatDate(task.DueDate))
	}

	return nil
}

// ListTasksCommand lists tasks, optionally filtered.
func ListTasksCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("list-tasks", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status: pending, in-progress, completed, cancelled")
	priority := fs.String("priority", "", "Filter by priority")
	query := fs.String("query", "", "Search by title")
	_ = fs.Parse(args)

	ctx := context.Background()
	records, stale := app.listWithSnapshot(ctx, app.Tasks)

	tasks := []models.Task{}
	for _, r := range records {
		t := models.TaskFromRecord(r)
		if *status != "" && t.Status != *status {
			continue
		}
		if *priority != "" && t.Priority != *priority {
			continue
		}
		if *query != "" && !matches(*query, t.Title, t.Name) {
			continue
		}
		tasks = append(tasks, t)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tCONTACT")
	_, _ = fmt.Fprintln(w, "--\t-----\t------\t--------\t---\t-------")
	for _, t := range tasks {
		contact := models.RefLabel(t.ContactID, lookupName(ctx, app.Contacts, t.ContactID))
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Status, t.Priority, dash(models.FormatDate(t.DueDate)), contact)
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d task(s)\n", len(tasks))
	if stale {
		fmt.Println("(showing cached snapshot; remote returned no data)")
	}
	return nil
}

// CompleteTaskCommand marks a task completed.
func CompleteTaskCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("complete-task", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "task")
	if err != nil {
		return err
	}

	ctx := context.Background()
	existing := app.Tasks.GetByID(ctx, id)
	if existing == nil {
		return fmt.Errorf("task not found: %d", id)
	}

	merged := existing.Clone()
	merged["status_c"] = models.StatusCompleted

	if _, err := app.Tasks.Update(ctx, id, merged); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Printf("✓ Task completed: %s (ID: %d)\n", existing.String("Name"), id)
	return nil
}

// UpdateTaskCommand updates an existing task.
func UpdateTaskCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("update-task", flag.ExitOnError)
	title := fs.String("title", "", "Task title")
	description := fs.String("description", "", "Task details")
	dueDate := fs.String("due", "", "Due date (YYYY-MM-DD)")
	priority := fs.String("priority", "", "Priority")
	status := fs.String("status", "", "Status")
	contactID := fs.String("contact", "", "Associated contact ID")
	dealID := fs.String("deal", "", "Associated deal ID")
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "task")
	if err != nil {
		return err
	}

	ctx := context.Background()
	existing := app.Tasks.GetByID(ctx, id)
	if existing == nil {
		return fmt.Errorf("task not found: %d", id)
	}

	merged := existing.Clone()
	setIfFlagged(merged, "title_c", *title)
	setIfFlagged(merged, "description_c", *description)
	setIfFlagged(merged, "due_date_c", *dueDate)
	setIfFlagged(merged, "priority_c", *priority)
	setIfFlagged(merged, "status_c", *status)
	setIfFlagged(merged, "contact_id_c", *contactID)
	setIfFlagged(merged, "deal_id_c", *dealID)

	record, err := app.Tasks.Update(ctx, id, merged)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if record == nil {
		record = merged
	}

	fmt.Printf("✓ Task updated: %s (ID: %d)\n", record.String("Name"), id)
	return nil
}

// DeleteTaskCommand deletes a task.
func DeleteTaskCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("delete-task", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "task")
	if err != nil {
		return err
	}

	if !app.Tasks.Delete(context.Background(), id) {
		return fmt.Errorf("failed to delete task %d", id)
	}

	fmt.Printf("✓ Task deleted: %d\n", id)
	return nil
}
