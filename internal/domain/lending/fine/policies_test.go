package fine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librarium/lending/internal/domain/catalog"
	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

func resourceAgedDays(t *testing.T, asOf time.Time, ageDays int) catalog.Resource {
	t.Helper()
	book, err := catalog.PrintedBookBuilder{Spec: catalog.PrintedBookSpec{
		Title:      "Test Book",
		Author:     "Author",
		ISBN:       "isbn-1",
		AcquiredAt: asOf.AddDate(0, 0, -ageDays),
		Pages:      100,
		Publisher:  "Press",
	}}.Build()
	require.NoError(t, err)
	return book
}

func fineContext(t *testing.T, daysLate, ageDays int) Context {
	t.Helper()
	asOf := time.Now()
	return Context{
		DaysLate:        daysLate,
		AccumulatedCost: valueobject.ZeroUSD(),
		Resource:        resourceAgedDays(t, asOf, ageDays),
		AsOf:            asOf,
	}
}

func TestAllPoliciesZeroWhenNotLate(t *testing.T) {
	policies := []Policy{
		NewStudentPolicy(),
		NewFacultyPolicy(),
		NewProgressivePolicy(),
		NewAgeTieredPolicy(),
	}

	for _, p := range policies {
		t.Run(p.Name(), func(t *testing.T) {
			assert.True(t, p.ComputeFine(fineContext(t, 0, 100)).Amount.IsZero())
			assert.True(t, p.ComputeFine(fineContext(t, -3, 100)).Amount.IsZero())
		})
	}
}

func TestStudentPolicy(t *testing.T) {
	p := NewStudentPolicy()

	t.Run("charges 2.00 per day for recent resources", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 10, 365))
		assert.Equal(t, "20.00", result.Amount.StringFixed(2))
		assert.Contains(t, result.AppliedRules, "daily_rate")
		assert.NotContains(t, result.AppliedRules, "aged_resource_discount")
	})

	t.Run("halves the fine for resources older than five years", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 10, 2000))
		assert.Equal(t, "10.00", result.Amount.StringFixed(2))
		assert.Contains(t, result.AppliedRules, "aged_resource_discount")
	})

	t.Run("floors the fine at the minimum", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 1, 2000))
		assert.Equal(t, "1.00", result.Amount.StringFixed(2))
		assert.Contains(t, result.AppliedRules, "minimum_fine")
	})
}

func TestFacultyPolicy(t *testing.T) {
	p := NewFacultyPolicy()

	t.Run("waives the grace period entirely", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 2, 100))
		assert.True(t, result.Amount.IsZero())
		assert.Equal(t, []string{"grace_period"}, result.AppliedRules)
	})

	t.Run("charges only beyond the grace period", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 10, 100))
		assert.Equal(t, "7.00", result.Amount.StringFixed(2))
	})

	t.Run("exactly at grace boundary pays nothing", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 3, 100))
		assert.True(t, result.Amount.IsZero())
	})
}

func TestProgressivePolicy(t *testing.T) {
	p := NewProgressivePolicy()

	t.Run("sums the daily surcharges", func(t *testing.T) {
		// day 1 = 3.00, day 2 = 3.50, day 3 = 4.00
		result := p.ComputeFine(fineContext(t, 3, 100))
		assert.Equal(t, "10.50", result.Amount.StringFixed(2))
		assert.Equal(t, []string{"progressive_surcharge"}, result.AppliedRules)
	})

	t.Run("single day pays the initial rate", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 1, 100))
		assert.Equal(t, "3.00", result.Amount.StringFixed(2))
	})
}

func TestAgeTieredPolicy(t *testing.T) {
	p := NewAgeTieredPolicy()

	t.Run("new resources pay the highest rate", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 10, 182)) // ~0.5 years
		assert.Equal(t, "50.00", result.Amount.StringFixed(2))
		assert.Equal(t, []string{"age_tier_new"}, result.AppliedRules)
	})

	t.Run("mid-aged resources pay the medium rate", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 10, 3*365))
		assert.Equal(t, "25.00", result.Amount.StringFixed(2))
		assert.Equal(t, []string{"age_tier_medium"}, result.AppliedRules)
	})

	t.Run("old resources pay the lowest rate", func(t *testing.T) {
		result := p.ComputeFine(fineContext(t, 10, 7*365))
		assert.Equal(t, "10.00", result.Amount.StringFixed(2))
		assert.Equal(t, []string{"age_tier_old"}, result.AppliedRules)
	})
}

func TestPolicyMetadata(t *testing.T) {
	assert.Equal(t, "student", NewStudentPolicy().Name())
	assert.Equal(t, "faculty", NewFacultyPolicy().Name())
	assert.Equal(t, "progressive", NewProgressivePolicy().Name())
	assert.Equal(t, "age_tiered", NewAgeTieredPolicy().Name())
	assert.NotEmpty(t, NewStudentPolicy().Description())
}
