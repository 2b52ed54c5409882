package seed

import (
	"fmt"
	"math/rand/v2"

	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

const (
	DefaultSyntheticMonths       = 12
	DefaultSyntheticMin    int64 = 50000
	DefaultSyntheticMax    int64 = 80000
)

// SyntheticRentHistory returns n points for months 1..n with whole rents drawn
// uniformly from [lo, hi).
func SyntheticRentHistory(rng *rand.Rand, n int, lo, hi int64) ([]core.HistoryPoint, error) {
	if n < 0 {
		return nil, fmt.Errorf("synthetic history: negative month count %d", n)
	}
	if lo < 0 || hi <= lo {
		return nil, fmt.Errorf("%w: synthetic rent range [%d, %d)", core.ErrInvalidAmount, lo, hi)
	}
	out := make([]core.HistoryPoint, n)
	for i := range out {
		out[i] = core.HistoryPoint{
			Month: i + 1,
			Rent:  decimal.NewFromInt(lo + rng.Int64N(hi-lo)),
		}
	}
	return out, nil
}
