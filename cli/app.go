// ABOUTME: Shared CLI application handle
// ABOUTME: Bundles the entity services and the local snapshot cache
package cli

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/harperreed/apexcrm/cache"
	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

// App bundles the per-entity services plus the optional snapshot cache that
// display commands fall back to when the remote returns nothing.
type App struct {
	Contacts   *services.Service
	Deals      *services.Service
	Activities *services.Service
	Tasks      *services.Service
	Quotes     *services.Service
	Cache      *sql.DB
}

// NewApp builds an App over one store client. cacheDB may be nil, in which
// case snapshot fallback is disabled.
func NewApp(client store.Client, cacheDB *sql.DB) *App {
	return &App{
		Contacts:   services.NewContactService(client),
		Deals:      services.NewDealService(client),
		Activities: services.NewActivityService(client),
		Tasks:      services.NewTaskService(client),
		Quotes:     services.NewQuoteService(client),
		Cache:      cacheDB,
	}
}

// listWithSnapshot lists from the remote, refreshing the snapshot on a
// non-empty result. An empty result falls back to the last snapshot so
// display commands keep working offline; stale is true on fallback.
func (a *App) listWithSnapshot(ctx context.Context, svc *services.Service) (records []store.Record, stale bool) {
	records = svc.List(ctx)

	if a.Cache == nil {
		return records, false
	}

	if len(records) > 0 {
		if err := cache.SaveList(a.Cache, svc.Table(), records); err != nil {
			log.Printf("warning: failed to refresh %s snapshot: %v", svc.Table(), err)
		}
		return records, false
	}

	cached, err := cache.LoadList(a.Cache, svc.Table())
	if err != nil {
		log.Printf("warning: failed to read %s snapshot: %v", svc.Table(), err)
		return records, false
	}
	if len(cached) == 0 {
		return records, false
	}

	return cached, true
}

// lookupName resolves a weak reference to a display name. Returns "" when the
// reference is nil or dangling.
func lookupName(ctx context.Context, svc *services.Service, id *int) string {
	if id == nil {
		return ""
	}
	record := svc.GetByID(ctx, *id)
	if record == nil {
		return ""
	}
	return record.String("Name")
}

// matches reports whether any candidate contains query, case-insensitively.
func matches(query string, candidates ...string) bool {
	q := strings.ToLower(query)
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
