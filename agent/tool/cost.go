package tool

import (
	"fmt"
	"math"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

const (
	weeksPerMonth    = 4.33
	breakEvenEpsilon = 1e-9
)

// Calculator derives the financial summary for the session's plan. Every call
// recomputes from scratch; nothing is cached here.
type Calculator struct {
	baselineSalary float64
}

func NewCalculator(bundle *refdatax.Bundle) *Calculator {
	return &Calculator{baselineSalary: bundle.Defaults.BaselineSalary}
}

// Calculate costs the plan with the cheapest course per milestone (all
// courses stay attached for display), paces it by the profile's weekly time
// budget, and projects break-even against the chosen career's market salary.
func (c *Calculator) Calculate(sess *statex.Session) (*statex.FinancialSummary, error) {
	if sess == nil || sess.Plan == nil || sess.Chosen == nil {
		return nil, fmt.Errorf("%w: no learning plan to cost", contractx.ErrValidation)
	}

	profile := sess.Profile
	if profile == nil || profile.WeeklyTimeBudget <= 0 {
		return nil, fmt.Errorf("%w: weekly time budget is not set", contractx.ErrInsufficientData)
	}
	market := sess.Chosen.Market
	if market.MedianSalary <= 0 {
		return nil, fmt.Errorf("%w: market data is missing for career %s",
			contractx.ErrInsufficientData, sess.Chosen.CareerID)
	}

	var totalCost float64
	for _, phase := range sess.Plan.Phases {
		for _, m := range phase.Milestones {
			if price, ok := cheapestPrice(m.Courses); ok {
				totalCost += price
			}
		}
	}

	weeks := sess.Plan.TotalHours() / profile.WeeklyTimeBudget
	durationMonths := weeks / weeksPerMonth

	monthlyCost := totalCost / math.Max(1, durationMonths)
	weeklyCost := monthlyCost / weeksPerMonth

	baseline := c.baselineSalary
	if profile.CurrentSalary > 0 {
		baseline = profile.CurrentSalary
	}
	salaryDelta := market.MedianSalary - baseline

	breakEvenMonths := totalCost / math.Max(breakEvenEpsilon, salaryDelta/12)

	return &statex.FinancialSummary{
		TotalCost:       round2(totalCost),
		MonthlyCost:     round2(monthlyCost),
		WeeklyCost:      round2(weeklyCost),
		DurationMonths:  round2(durationMonths),
		SalaryDelta:     round2(salaryDelta),
		BreakEvenMonths: round2(breakEvenMonths),
	}, nil
}

func cheapestPrice(courses []refdatax.Course) (float64, bool) {
	if len(courses) == 0 {
		return 0, false
	}
	min := courses[0].Price
	for _, c := range courses[1:] {
		if c.Price < min {
			min = c.Price
		}
	}
	return min, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
