// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements add_task, list_tasks, complete_task, update_task, and delete_task tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

type TaskHandlers struct {
	svc *services.Service
}

func NewTaskHandlers(svc *services.Service) *TaskHandlers {
	return &TaskHandlers{svc: svc}
}

type AddTaskInput struct {
	Title       string `json:"title" jsonschema:"Task title (required)"`
	Description string `json:"description,omitempty" jsonschema:"Task details"`
	DueDate     string `json:"due_date,omitempty" jsonschema:"Due date (YYYY-MM-DD)"`
	Priority    string `json:"priority,omitempty" jsonschema:"Priority: low, medium, high, urgent (default medium)"`
	ContactID   string `json:"contact_id,omitempty" jsonschema:"Associated contact ID"`
	DealID      string `json:"deal_id,omitempty" jsonschema:"Associated deal ID"`
}

type TaskOutput struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
	ContactID   *int   `json:"contact_id,omitempty"`
	DealID      *int   `json:"deal_id,omitempty"`
}

func taskToOutput(r store.Record) TaskOutput {
	t := models.TaskFromRecord(r)
	return TaskOutput{
		ID:          t.ID,
		Name:        t.Name,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
		ContactID:   t.ContactID,
		DealID:      t.DealID,
	}
}

func (h *TaskHandlers) AddTask(ctx context.Context, request *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.Title == "" {
		return nil, TaskOutput{}, fmt.Errorf("title is required")
	}

	record, err := h.svc.Create(ctx, store.Record{
		"title_c":       input.Title,
		"description_c": input.Description,
		"due_date_c":    input.DueDate,
		"priority_c":    input.Priority,
		"contact_id_c":  input.ContactID,
		"deal_id_c":     input.DealID,
	})
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}
	if record == nil {
		return nil, TaskOutput{}, fmt.Errorf("task was not created")
	}

	return nil, taskToOutput(record), nil
}

type ListTasksInput struct {
	Status   string `json:"status,omitempty" jsonschema:"Filter by status: pending, in-progress, completed, cancelled"`
	Priority string `json:"priority,omitempty" jsonschema:"Filter by priority"`
	Query    string `json:"query,omitempty" jsonschema:"Case-insensitive substring match on title"`
}

type ListTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
}

func (h *TaskHandlers) ListTasks(ctx context.Context, request *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
	records := h.svc.List(ctx)

	out := ListTasksOutput{Tasks: []TaskOutput{}}
	for _, r := range records {
		t := taskToOutput(r)
		if input.Status != "" && t.Status != input.Status {
			continue
		}
		if input.Priority != "" && t.Priority != input.Priority {
			continue
		}
		if input.Query != "" && !matchesQuery(input.Query, t.Title, t.Name) {
			continue
		}
		out.Tasks = append(out.Tasks, t)
	}

	return nil, out, nil
}

type CompleteTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

func (h *TaskHandlers) CompleteTask(ctx context.Context, request *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, TaskOutput{}, err
	}

	existing := h.svc.GetByID(ctx, id)
	if existing == nil {
		return nil, TaskOutput{}, fmt.Errorf("task %d not found", id)
	}

	merged := existing.Clone()
	merged["status_c"] = models.StatusCompleted

	record, err := h.svc.Update(ctx, id, merged)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to complete task: %w", err)
	}
	if record == nil {
		record = merged
	}

	return nil, taskToOutput(record), nil
}

type UpdateTaskInput struct {
	ID          string `json:"id" jsonschema:"Task ID (required)"`
	Title       string `json:"title,omitempty" jsonschema:"Updated title"`
	Description string `json:"description,omitempty" jsonschema:"Updated details"`
	DueDate     string `json:"due_date,omitempty" jsonschema:"Updated due date"`
	Priority    string `json:"priority,omitempty" jsonschema:"Updated priority"`
	Status      string `json:"status,omitempty" jsonschema:"Updated status"`
	ContactID   string `json:"contact_id,omitempty" jsonschema:"Updated contact ID"`
	DealID      string `json:"deal_id,omitempty" jsonschema:"Updated deal ID"`
}

func (h *TaskHandlers) UpdateTask(ctx context.Context, request *mcp.CallToolRequest, input UpdateTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, TaskOutput{}, err
	}

	existing := h.svc.GetByID(ctx, id)
	if existing == nil {
		return nil, TaskOutput{}, fmt.Errorf("task %d not found", id)
	}

	merged := existing.Clone()
	applyIfSet(merged, "title_c", input.Title)
	applyIfSet(merged, "description_c", input.Description)
	applyIfSet(merged, "due_date_c", input.DueDate)
	applyIfSet(merged, "priority_c", input.Priority)
	applyIfSet(merged, "status_c", input.Status)
	applyIfSet(merged, "contact_id_c", input.ContactID)
	applyIfSet(merged, "deal_id_c", input.DealID)

	record, err := h.svc.Update(ctx, id, merged)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to update task: %w", err)
	}
	if record == nil {
		record = merged
	}

	return nil, taskToOutput(record), nil
}

func (h *TaskHandlers) DeleteTask(ctx context.Context, request *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	return nil, DeleteOutput{Deleted: h.svc.Delete(ctx, id)}, nil
}
