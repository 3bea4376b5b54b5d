package fine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// StudentPolicy charges a flat daily rate, discounted for aged
// resources and floored at a minimum fee
type StudentPolicy struct {
	BasePolicy
}

// Student policy constants
var (
	studentDailyRate       = decimal.NewFromFloat(2.00)
	studentMinimumFine     = decimal.NewFromFloat(1.00)
	studentAgedDiscount    = decimal.NewFromFloat(0.5)
	studentAgedAfterDays   = 1825 // 5 years
)

// NewStudentPolicy creates a new student fine policy
func NewStudentPolicy() *StudentPolicy {
	return &StudentPolicy{
		BasePolicy: NewBasePolicy(
			"student",
			"Student fine: 2.00 per day, halved for resources older than 5 years, 1.00 minimum",
		),
	}
}

// ComputeFine calculates the student fine
func (p *StudentPolicy) ComputeFine(ctx Context) Result {
	if ctx.DaysLate <= 0 {
		return noFine()
	}

	amount := studentDailyRate.Mul(decimal.NewFromInt(int64(ctx.DaysLate)))
	rules := []string{"daily_rate"}

	if ctx.Resource != nil && ctx.Resource.AgeDays(ctx.AsOf) > studentAgedAfterDays {
		amount = amount.Mul(studentAgedDiscount)
		rules = append(rules, "aged_resource_discount")
	}

	amount = amount.Round(2)
	if amount.LessThan(studentMinimumFine) {
		amount = studentMinimumFine
		rules = append(rules, "minimum_fine")
	}

	return Result{
		Amount:       valueobject.NewUSD(amount),
		AppliedRules: rules,
	}
}

// FacultyPolicy waives an initial grace period and charges a reduced
// daily rate beyond it
type FacultyPolicy struct {
	BasePolicy
}

// Faculty policy constants
var (
	facultyDailyRate = decimal.NewFromFloat(1.00)
	facultyGraceDays = 3
)

// NewFacultyPolicy creates a new faculty fine policy
func NewFacultyPolicy() *FacultyPolicy {
	return &FacultyPolicy{
		BasePolicy: NewBasePolicy(
			"faculty",
			"Faculty fine: first 3 days waived, 1.00 per day thereafter",
		),
	}
}

// ComputeFine calculates the faculty fine
func (p *FacultyPolicy) ComputeFine(ctx Context) Result {
	if ctx.DaysLate <= 0 {
		return noFine()
	}

	chargeable := ctx.DaysLate - facultyGraceDays
	if chargeable <= 0 {
		return Result{
			Amount:       valueobject.ZeroUSD(),
			AppliedRules: []string{"grace_period"},
		}
	}

	amount := facultyDailyRate.Mul(decimal.NewFromInt(int64(chargeable))).Round(2)
	return Result{
		Amount:       valueobject.NewUSD(amount),
		AppliedRules: []string{"grace_period", "daily_rate"},
	}
}

// ProgressivePolicy applies a surcharge that grows with every
// additional day: day d costs 3.00 + 0.50*(d-1)
type ProgressivePolicy struct {
	BasePolicy
}

// Progressive policy constants
var (
	progressiveInitialRate = decimal.NewFromFloat(3.00)
	progressiveIncrement   = decimal.NewFromFloat(0.50)
)

// NewProgressivePolicy creates a new progressive fine policy
func NewProgressivePolicy() *ProgressivePolicy {
	return &ProgressivePolicy{
		BasePolicy: NewBasePolicy(
			"progressive",
			"Progressive fine: 3.00 for the first day, each further day 0.50 more than the last",
		),
	}
}

// ComputeFine calculates the progressive fine using the closed form of
// the arithmetic series sum over d = 1..DaysLate
func (p *ProgressivePolicy) ComputeFine(ctx Context) Result {
	if ctx.DaysLate <= 0 {
		return noFine()
	}

	days := decimal.NewFromInt(int64(ctx.DaysLate))
	increments := decimal.NewFromInt(int64(ctx.DaysLate) * int64(ctx.DaysLate-1)).Div(decimal.NewFromInt(2))
	amount := days.Mul(progressiveInitialRate).Add(increments.Mul(progressiveIncrement)).Round(2)

	return Result{
		Amount:       valueobject.NewUSD(amount),
		AppliedRules: []string{"progressive_surcharge"},
	}
}

// AgeTieredPolicy derives a flat daily rate from the resource's age
type AgeTieredPolicy struct {
	BasePolicy
}

// Age-tiered policy constants
var (
	ageTierNewRate    = decimal.NewFromFloat(5.00) // under 1 year
	ageTierMediumRate = decimal.NewFromFloat(2.50) // 1 to 5 years
	ageTierOldRate    = decimal.NewFromFloat(1.00) // over 5 years
)

// NewAgeTieredPolicy creates a new age-tiered fine policy
func NewAgeTieredPolicy() *AgeTieredPolicy {
	return &AgeTieredPolicy{
		BasePolicy: NewBasePolicy(
			"age_tiered",
			"Age-tiered fine: 5.00/day under 1 year, 2.50/day up to 5 years, 1.00/day beyond",
		),
	}
}

// ComputeFine calculates the age-tiered fine
func (p *AgeTieredPolicy) ComputeFine(ctx Context) Result {
	if ctx.DaysLate <= 0 {
		return noFine()
	}

	ageYears := 0.0
	if ctx.Resource != nil {
		ageYears = float64(ctx.Resource.AgeDays(ctx.AsOf)) / 365
	}

	var rate decimal.Decimal
	var tier string
	switch {
	case ageYears < 1:
		rate, tier = ageTierNewRate, "new"
	case ageYears < 5:
		rate, tier = ageTierMediumRate, "medium"
	default:
		rate, tier = ageTierOldRate, "old"
	}

	amount := rate.Mul(decimal.NewFromInt(int64(ctx.DaysLate))).Round(2)
	return Result{
		Amount:       valueobject.NewUSD(amount),
		AppliedRules: []string{fmt.Sprintf("age_tier_%s", tier)},
	}
}
