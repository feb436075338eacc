// ABOUTME: Generic entity record service over the remote record store
// ABOUTME: List/GetByID/Create/Update/Delete with shared envelope reconciliation
package services

import (
	"context"
	"log"

	"github.com/harperreed/apexcrm/store"
)

// Service provides the four CRUD operations for one canonical table. The
// failure contract is asymmetric on purpose: reads and deletes degrade
// (empty list, nil, false) so views always render, while create and update
// surface the remote's message as an error the caller must present.
type Service struct {
	schema *Schema
	client store.Client
}

// New builds a service from a schema descriptor and an injected client.
func New(schema *Schema, client store.Client) *Service {
	return &Service{schema: schema, client: client}
}

// The five entity services are pure configuration.

func NewContactService(client store.Client) *Service  { return New(ContactSchema(), client) }
func NewDealService(client store.Client) *Service     { return New(DealSchema(), client) }
func NewActivityService(client store.Client) *Service { return New(ActivitySchema(), client) }
func NewTaskService(client store.Client) *Service     { return New(TaskSchema(), client) }
func NewQuoteService(client store.Client) *Service    { return New(QuoteSchema(), client) }

// Table returns the remote table this service operates on.
func (s *Service) Table() string { return s.schema.Table }

// Schema returns the service's schema descriptor.
func (s *Service) Schema() *Schema { return s.schema }

// List fetches all records with the entity's field projection. It never
// fails: transport errors and remote-reported failures both yield an empty
// slice, with the cause logged.
func (s *Service) List(ctx context.Context) []store.Record {
	env, err := s.client.FetchRecords(ctx, s.schema.Table, s.schema.Projection)
	if err != nil {
		log.Printf("error fetching %s: %v", s.schema.Table, err)
		return []store.Record{}
	}
	if !env.Success {
		log.Printf("failed to fetch %s: %s", s.schema.Table, env.Message)
		return []store.Record{}
	}
	if env.Data == nil {
		return []store.Record{}
	}
	return env.Data
}

// GetByID fetches a single record. Returns nil when the id does not exist or
// on any failure.
func (s *Service) GetByID(ctx context.Context, id int) store.Record {
	env, err := s.client.GetRecordByID(ctx, s.schema.Table, id, s.schema.Projection)
	if err != nil {
		log.Printf("error fetching %s %d: %v", s.schema.Table, id, err)
		return nil
	}
	if env == nil || env.Data == nil {
		return nil
	}
	return env.Data
}

// Create normalizes data and submits a single-record batch. On remote-reported
// failure it returns an *store.OpError carrying the remote message. A results
// list with no successful element yields (nil, nil); per-record failures are
// logged, never raised, since the batch size is always one.
func (s *Service) Create(ctx context.Context, data store.Record) (store.Record, error) {
	record := s.schema.Normalize(data, OpCreate)

	env, err := s.client.CreateRecords(ctx, s.schema.Table, []store.Record{record})
	if err != nil {
		log.Printf("error creating %s: %v", s.schema.Table, err)
		return nil, err
	}

	return s.reconcileWrite("create", env)
}

// Update normalizes data the same way as Create, injects the identifier, and
// never recomputes creation timestamps. Reconciliation matches Create.
func (s *Service) Update(ctx context.Context, id int, data store.Record) (store.Record, error) {
	record := s.schema.Normalize(data, OpUpdate)
	record["Id"] = id

	env, err := s.client.UpdateRecords(ctx, s.schema.Table, []store.Record{record})
	if err != nil {
		log.Printf("error updating %s %d: %v", s.schema.Table, id, err)
		return nil, err
	}

	return s.reconcileWrite("update", env)
}

// Delete submits a single-id bulk delete. Returns true when at least one
// per-record result succeeded, or when the remote reports overall success
// without a results list. Never returns an error: deletion failure is
// caller-recoverable.
func (s *Service) Delete(ctx context.Context, id int) bool {
	env, err := s.client.DeleteRecords(ctx, s.schema.Table, []int{id})
	if err != nil {
		log.Printf("error deleting %s %d: %v", s.schema.Table, id, err)
		return false
	}

	if !env.Success {
		log.Printf("failed to delete %s %d: %s", s.schema.Table, id, env.Message)
		return false
	}

	if env.Results != nil {
		successful, failed := partition(env.Results)
		if len(failed) > 0 {
			s.logFailures("delete", failed)
		}
		return len(successful) > 0
	}

	return true
}

// reconcileWrite turns a write envelope into the caller-facing record or
// error: overall failure raises, per-record failures are logged and excluded,
// and the first successful element wins.
func (s *Service) reconcileWrite(op string, env *store.WriteEnvelope) (store.Record, error) {
	if !env.Success {
		log.Printf("failed to %s %s: %s", op, s.schema.Table, env.Message)
		return nil, &store.OpError{Op: op, Table: s.schema.Table, Message: env.Message}
	}

	if env.Results != nil {
		successful, failed := partition(env.Results)
		if len(failed) > 0 {
			s.logFailures(op, failed)
		}
		if len(successful) > 0 {
			return successful[0].Data, nil
		}
		return nil, nil
	}

	return env.Data, nil
}

func partition(results []store.WriteResult) (successful, failed []store.WriteResult) {
	for _, r := range results {
		if r.Success {
			successful = append(successful, r)
		} else {
			failed = append(failed, r)
		}
	}
	return successful, failed
}

func (s *Service) logFailures(op string, failed []store.WriteResult) {
	log.Printf("failed to %s %d record(s) in %s", op, len(failed), s.schema.Table)
	for _, r := range failed {
		log.Printf("  %s %s rejected: %s", op, s.schema.Table, r.Message)
	}
}
