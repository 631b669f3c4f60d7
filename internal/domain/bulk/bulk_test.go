package bulk

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResult(t *testing.T) {
	r := NewResult()

	assert.Equal(t, 0, r.SuccessCount)
	assert.Equal(t, 0, r.FailureCount)
	assert.NotNil(t, r.Succeeded)
	assert.NotNil(t, r.Failures)
	assert.Empty(t, r.Succeeded)
	assert.Empty(t, r.Failures)
}

func TestResult_AddSuccess(t *testing.T) {
	r := NewResult()
	id1 := uuid.New()
	id2 := uuid.New()

	r.AddSuccess(id1)
	r.AddSuccess(id2)

	assert.Equal(t, 2, r.SuccessCount)
	assert.Equal(t, 0, r.FailureCount)
	assert.Equal(t, []uuid.UUID{id1, id2}, r.Succeeded)
}

func TestResult_AddFailure(t *testing.T) {
	r := NewResult()
	id := uuid.New()

	r.AddFailureByID(id, "category not found")
	r.AddFailureBySKU("PROV-001", "duplicate SKU in request")

	assert.Equal(t, 2, r.FailureCount)
	require.Len(t, r.Failures, 2)

	first := r.Failures[0]
	require.NotNil(t, first.ID)
	assert.Equal(t, id, *first.ID)
	assert.Empty(t, first.SKU)
	assert.Equal(t, "category not found", first.Reason)

	second := r.Failures[1]
	assert.Nil(t, second.ID)
	assert.Equal(t, "PROV-001", second.SKU)
	assert.Equal(t, "duplicate SKU in request", second.Reason)
}

func TestResult_CountsMatchSlices(t *testing.T) {
	r := NewResult()
	for i := 0; i < 5; i++ {
		r.AddSuccess(uuid.New())
	}
	for i := 0; i < 3; i++ {
		r.AddFailureBySKU("SKU", "boom")
	}

	assert.Equal(t, len(r.Succeeded), r.SuccessCount)
	assert.Equal(t, len(r.Failures), r.FailureCount)
}

func TestResult_AddNotFoundFailures(t *testing.T) {
	r := NewResult()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	r.AddNotFoundFailures("product", ids)

	require.Len(t, r.Failures, 2)
	for i, f := range r.Failures {
		require.NotNil(t, f.ID)
		assert.Equal(t, ids[i], *f.ID)
		assert.Equal(t, "product not found", f.Reason)
	}
}

func TestFindDuplicates(t *testing.T) {
	tests := []struct {
		name   string
		input  []int
		expect []int
	}{
		{name: "no duplicates", input: []int{1, 2, 3}, expect: nil},
		{name: "repeated values reported once", input: []int{1, 2, 2, 3, 3, 3}, expect: []int{2, 3}},
		{name: "empty input", input: nil, expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDuplicates(tt.input)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestFindDuplicates_Strings(t *testing.T) {
	got := FindDuplicates([]string{"a", "b", "a", "c", "b"})
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestPartitionByExistence(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	existing := map[uuid.UUID]struct{}{a: {}, c: {}}

	found, missing := PartitionByExistence([]uuid.UUID{a, b, c}, existing)

	assert.Equal(t, []uuid.UUID{a, c}, found)
	assert.Equal(t, []uuid.UUID{b}, missing)
}

func TestPartitionByExistence_AllMissing(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	found, missing := PartitionByExistence(ids, map[uuid.UUID]struct{}{})

	assert.Empty(t, found)
	assert.Equal(t, ids, missing)
}
