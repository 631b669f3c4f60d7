// Package bulk provides the shared result accumulator and set helpers used
// by batch endpoints. Batch requests are processed with per-item isolation:
// one bad item is recorded as a failure and never aborts the rest.
package bulk

import (
	"fmt"

	"github.com/google/uuid"
)

// Failure describes a single item that could not be processed.
// ID and SKU are optional; whichever identifier the caller knows is set.
type Failure struct {
	ID     *uuid.UUID `json:"id,omitempty"`
	SKU    string     `json:"sku,omitempty"`
	Reason string     `json:"reason"`
}

// Result accumulates the outcome of a batch operation.
// SuccessCount always equals len(Succeeded) and FailureCount always equals
// len(Failures); AddSuccess and AddFailure are the only mutation points.
type Result struct {
	SuccessCount int         `json:"success_count"`
	FailureCount int         `json:"failure_count"`
	Succeeded    []uuid.UUID `json:"succeeded"`
	Failures     []Failure   `json:"failures"`
}

// NewResult creates an empty accumulator.
func NewResult() *Result {
	return &Result{
		Succeeded: []uuid.UUID{},
		Failures:  []Failure{},
	}
}

// AddSuccess records a processed item.
func (r *Result) AddSuccess(id uuid.UUID) {
	r.SuccessCount++
	r.Succeeded = append(r.Succeeded, id)
}

// AddFailure records a failed item with its reason.
func (r *Result) AddFailure(f Failure) {
	r.FailureCount++
	r.Failures = append(r.Failures, f)
}

// AddFailureByID records a failure identified by entity id.
func (r *Result) AddFailureByID(id uuid.UUID, reason string) {
	r.AddFailure(Failure{ID: &id, Reason: reason})
}

// AddFailureBySKU records a failure identified by SKU.
func (r *Result) AddFailureBySKU(sku, reason string) {
	r.AddFailure(Failure{SKU: sku, Reason: reason})
}

// AddNotFoundFailures records a "<entityName> not found" failure for each id.
func (r *Result) AddNotFoundFailures(entityName string, ids []uuid.UUID) {
	for _, id := range ids {
		r.AddFailureByID(id, fmt.Sprintf("%s not found", entityName))
	}
}

// FindDuplicates returns the values that occur more than once, each reported
// a single time, in the order their second occurrence was seen.
func FindDuplicates[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	reported := make(map[T]struct{})
	var duplicates []T
	for _, v := range values {
		if _, ok := seen[v]; ok {
			if _, done := reported[v]; !done {
				reported[v] = struct{}{}
				duplicates = append(duplicates, v)
			}
			continue
		}
		seen[v] = struct{}{}
	}
	return duplicates
}

// PartitionByExistence splits ids into those present in existing and those
// missing from it, preserving the input order within each part.
func PartitionByExistence(ids []uuid.UUID, existing map[uuid.UUID]struct{}) (found, missing []uuid.UUID) {
	for _, id := range ids {
		if _, ok := existing[id]; ok {
			found = append(found, id)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}
