// ABOUTME: Web UI server with embedded templates
// ABOUTME: Read-only dashboard and entity list pages over the remote store
package web

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/harperreed/apexcrm/cache"
	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
	"github.com/harperreed/apexcrm/viz"
)

//go:embed templates/*
var templatesFS embed.FS

type Server struct {
	contacts   *services.Service
	deals      *services.Service
	activities *services.Service
	tasks      *services.Service
	quotes     *services.Service
	cache      *sql.DB
	templates  *template.Template
	generator  *viz.GraphGenerator
}

// NewServer builds the web UI over the five entity services. cacheDB may be
// nil to disable snapshot fallback.
func NewServer(contacts, deals, activities, tasks, quotes *services.Service, cacheDB *sql.DB) (*Server, error) {
	funcMap := template.FuncMap{
		"refLabel":   models.RefLabel,
		"formatDate": models.FormatDate,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		contacts:   contacts,
		deals:      deals,
		activities: activities,
		tasks:      tasks,
		quotes:     quotes,
		cache:      cacheDB,
		templates:  tmpl,
		generator:  viz.NewGraphGenerator(deals, contacts),
	}, nil
}

func (s *Server) Start(port int) error {
	http.HandleFunc("/", s.handleDashboard)
	http.HandleFunc("/contacts", s.handleContacts)
	http.HandleFunc("/deals", s.handleDeals)
	http.HandleFunc("/activities", s.handleActivities)
	http.HandleFunc("/tasks", s.handleTasks)
	http.HandleFunc("/quotes", s.handleQuotes)
	http.HandleFunc("/pipeline.dot", s.handlePipelineDOT)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting web server at http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// loadList fetches one entity list, refreshing the snapshot cache on a
// non-empty result and falling back to it on an empty one.
func (s *Server) loadList(ctx context.Context, svc *services.Service) []store.Record {
	records := svc.List(ctx)

	if s.cache == nil {
		return records
	}

	if len(records) > 0 {
		if err := cache.SaveList(s.cache, svc.Table(), records); err != nil {
			log.Printf("warning: failed to refresh %s snapshot: %v", svc.Table(), err)
		}
		return records
	}

	cached, err := cache.LoadList(s.cache, svc.Table())
	if err != nil {
		log.Printf("warning: failed to read %s snapshot: %v", svc.Table(), err)
		return records
	}
	if len(cached) > 0 {
		return cached
	}
	return records
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()

	// Fan out the five list fetches; each degrades to empty on failure.
	lists := make(map[string][]store.Record, 5)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, svc := range map[string]*services.Service{
		"contacts":   s.contacts,
		"deals":      s.deals,
		"activities": s.activities,
		"tasks":      s.tasks,
		"quotes":     s.quotes,
	} {
		wg.Add(1)
		go func(name string, svc *services.Service) {
			defer wg.Done()
			records := s.loadList(ctx, svc)
			mu.Lock()
			lists[name] = records
			mu.Unlock()
		}(name, svc)
	}
	wg.Wait()

	stageStats := make(map[string]viz.PipelineStageStats)
	openTasks := 0
	for _, r := range lists["deals"] {
		deal := models.DealFromRecord(r)
		pstats := stageStats[deal.Stage]
		pstats.Stage = deal.Stage
		pstats.Count++
		pstats.Value += deal.Value
		stageStats[deal.Stage] = pstats
	}
	for _, r := range lists["tasks"] {
		task := models.TaskFromRecord(r)
		if task.Status == models.StatusPending || task.Status == models.StatusInProgress {
			openTasks++
		}
	}

	data := map[string]any{
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
		"TotalContacts":   len(lists["contacts"]),
		"TotalDeals":      len(lists["deals"]),
		"TotalActivities": len(lists["activities"]),
		"TotalQuotes":     len(lists["quotes"]),
		"OpenTasks":       openTasks,
		"Pipeline":        stageStats,
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Template error rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	records := s.loadList(r.Context(), s.contacts)

	contacts := []models.Contact{}
	for _, rec := range records {
		contacts = append(contacts, models.ContactFromRecord(rec))
	}

	data := map[string]any{
		"Title":           "Contacts",
		"ContentTemplate": "contacts-content",
		"Contacts":        contacts,
	}
	s.renderTemplate(w, "layout.html", data)
}

type dealView struct {
	models.Deal
	ContactName string
}

func (s *Server) handleDeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records := s.loadList(ctx, s.deals)
	contactNames := s.nameIndex(ctx, s.contacts)

	deals := []dealView{}
	for _, rec := range records {
		deal := models.DealFromRecord(rec)
		view := dealView{Deal: deal}
		if deal.ContactID != nil {
			view.ContactName = contactNames[*deal.ContactID]
		}
		deals = append(deals, view)
	}

	data := map[string]any{
		"Title":           "Deals",
		"ContentTemplate": "deals-content",
		"Deals":           deals,
	}
	s.renderTemplate(w, "layout.html", data)
}

type activityView struct {
	models.Activity
	ContactName string
	DealName    string
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records := s.loadList(ctx, s.activities)
	contactNames := s.nameIndex(ctx, s.contacts)
	dealNames := s.nameIndex(ctx, s.deals)

	activities := []activityView{}
	for _, rec := range records {
		activity := models.ActivityFromRecord(rec)
		view := activityView{Activity: activity}
		if activity.ContactID != nil {
			view.ContactName = contactNames[*activity.ContactID]
		}
		if activity.DealID != nil {
			view.DealName = dealNames[*activity.DealID]
		}
		activities = append(activities, view)
	}

	data := map[string]any{
		"Title":           "Activities",
		"ContentTemplate": "activities-content",
		"Activities":      activities,
	}
	s.renderTemplate(w, "layout.html", data)
}

type taskView struct {
	models.Task
	ContactName string
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records := s.loadList(ctx, s.tasks)
	contactNames := s.nameIndex(ctx, s.contacts)

	tasks := []taskView{}
	for _, rec := range records {
		task := models.TaskFromRecord(rec)
		view := taskView{Task: task}
		if task.ContactID != nil {
			view.ContactName = contactNames[*task.ContactID]
		}
		tasks = append(tasks, view)
	}

	data := map[string]any{
		"Title":           "Tasks",
		"ContentTemplate": "tasks-content",
		"Tasks":           tasks,
	}
	s.renderTemplate(w, "layout.html", data)
}

type quoteView struct {
	models.Quote
	ContactName string
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records := s.loadList(ctx, s.quotes)
	contactNames := s.nameIndex(ctx, s.contacts)

	quotes := []quoteView{}
	for _, rec := range records {
		quote := models.QuoteFromRecord(rec)
		view := quoteView{Quote: quote}
		if quote.ContactID != nil {
			view.ContactName = contactNames[*quote.ContactID]
		}
		quotes = append(quotes, view)
	}

	data := map[string]any{
		"Title":           "Quotes",
		"ContentTemplate": "quotes-content",
		"Quotes":          quotes,
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handlePipelineDOT(w http.ResponseWriter, r *http.Request) {
	dot, err := s.generator.GeneratePipelineGraph(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(dot))
}

// nameIndex loads an entity list once and indexes display names by id, so a
// page render does one lookup fetch instead of one per row.
func (s *Server) nameIndex(ctx context.Context, svc *services.Service) map[int]string {
	index := map[int]string{}
	for _, r := range s.loadList(ctx, svc) {
		index[r.ID()] = r.String("Name")
	}
	return index
}
