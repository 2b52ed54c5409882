// Package forecast projects rent collections with an ordinary least-squares
// line fitted over (month index, rent) pairs.
package forecast

import (
	"fmt"

	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

// DefaultHorizon is how many months past the history are projected when the
// caller does not say otherwise.
const DefaultHorizon = 6

// Model is a fitted line rent = Slope*month + Intercept.
type Model struct {
	Slope     float64
	Intercept float64
	Points    int
}

// Projection is one forecast value. Rent may be negative for pathological
// histories; callers decide how to display that.
type Projection struct {
	Month int
	Rent  decimal.Decimal
}

// Fit computes the closed-form OLS coefficients
//
//	slope     = cov(month, rent) / var(month)
//	intercept = mean(rent) - slope*mean(month)
//
// It needs at least two points with distinct month indices.
func Fit(points []core.HistoryPoint) (Model, error) {
	if len(points) < 2 {
		return Model{}, fmt.Errorf("%w: need at least 2 history points, got %d", core.ErrInsufficientData, len(points))
	}
	for _, p := range points {
		if err := p.Validate(); err != nil {
			return Model{}, err
		}
	}

	n := float64(len(points))
	var sumX, sumY float64
	for _, p := range points {
		sumX += float64(p.Month)
		sumY += p.Rent.InexactFloat64()
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for _, p := range points {
		dx := float64(p.Month) - meanX
		sxx += dx * dx
		sxy += dx * (p.Rent.InexactFloat64() - meanY)
	}
	if sxx == 0 {
		return Model{}, fmt.Errorf("%w: all history points share month %d", core.ErrInsufficientData, points[0].Month)
	}

	slope := sxy / sxx
	return Model{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
		Points:    len(points),
	}, nil
}

// At evaluates the fitted line at month.
func (m Model) At(month int) float64 {
	return m.Slope*float64(month) + m.Intercept
}

// Predict returns one projection per requested month, in the same order,
// rounded half-up to two decimal places.
func (m Model) Predict(months []int) []Projection {
	out := make([]Projection, len(months))
	for i, month := range months {
		out[i] = Projection{Month: month, Rent: decimal.NewFromFloat(m.At(month)).Round(2)}
	}
	return out
}

// FutureMonths returns the n month indices following the last observed one,
// e.g. 13..18 after a twelve month history. A negative n yields no months.
func FutureMonths(history []core.HistoryPoint, n int) []int {
	n = max(n, 0)
	last := 0
	for _, p := range history {
		if p.Month > last {
			last = p.Month
		}
	}
	months := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		months = append(months, last+i)
	}
	return months
}

// Forecast fits history and projects the next horizon months.
func Forecast(history []core.HistoryPoint, horizon int) (Model, []Projection, error) {
	m, err := Fit(history)
	if err != nil {
		return Model{}, nil, err
	}
	return m, m.Predict(FutureMonths(history, horizon)), nil
}
