// ABOUTME: Response envelope types returned by the remote record store
// ABOUTME: Defines list/single/write envelopes and the write-failure error
package store

import "fmt"

// ListEnvelope wraps a fetch-all response.
type ListEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    []Record `json:"data,omitempty"`
}

// SingleEnvelope wraps a fetch-by-id response. Data is nil when the id does
// not exist.
type SingleEnvelope struct {
	Data Record `json:"data,omitempty"`
}

// WriteResult is the per-record outcome inside a write envelope.
type WriteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data,omitempty"`
}

// WriteEnvelope wraps create/update/delete responses. Results may be omitted
// by the store, in which case Success alone describes the outcome and Data
// (if present) carries the written record.
type WriteEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    Record        `json:"data,omitempty"`
	Results []WriteResult `json:"results,omitempty"`
}

// OpError reports a remote-rejected write. Only create and update surface it;
// reads and deletes soft-fail by contract.
type OpError struct {
	Op      string
	Table   string
	Message string
}

func (e *OpError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s on %s failed", e.Op, e.Table)
	}
	return fmt.Sprintf("%s on %s failed: %s", e.Op, e.Table, e.Message)
}
