package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-cli/moneta/internal/model"
)

// Period is the span of a single trend bucket.
type Period string

const (
	// PeriodDay buckets by calendar day.
	PeriodDay Period = "day"
	// PeriodWeek buckets by calendar week starting Monday.
	PeriodWeek Period = "week"
	// PeriodMonth buckets by calendar month.
	PeriodMonth Period = "month"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	return p == PeriodDay || p == PeriodWeek || p == PeriodMonth
}

// Bucket is one entry of a trend series: the income, expense, and net
// totals for a single period.
type Bucket struct {
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// BucketByPeriod computes a trend series over the trailing n periods
// ending at the period containing ref (inclusive). The result always
// has exactly n entries in chronological order; periods with no
// transactions carry zero sums. A non-positive n yields an empty
// series.
func BucketByPeriod(transactions []model.Transaction, period Period, n int, ref time.Time) []Bucket {
	if n <= 0 {
		return nil
	}

	buckets := make([]Bucket, n)
	starts := make([]model.Date, n)
	ends := make([]model.Date, n)

	current := periodStart(period, model.DateOf(ref))
	for i := n - 1; i >= 0; i-- {
		starts[i] = current
		ends[i] = periodEnd(period, current)
		buckets[i] = Bucket{
			Label:   periodLabel(period, current),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Net:     decimal.Zero,
		}
		current = previousPeriodStart(period, current)
	}

	for _, txn := range transactions {
		i := bucketIndex(starts, ends, txn.Date)
		if i < 0 {
			continue
		}
		switch txn.Type {
		case model.TypeIncome:
			buckets[i].Income = buckets[i].Income.Add(txn.Amount)
		case model.TypeExpense:
			buckets[i].Expense = buckets[i].Expense.Add(txn.Amount)
		}
	}
	for i := range buckets {
		buckets[i].Net = buckets[i].Income.Sub(buckets[i].Expense)
	}
	return buckets
}

// bucketIndex finds which bucket a date falls into, or -1 when the
// date is outside the window. Spans are contiguous, so a binary search
// over the start dates would also work; linear is fine for the small
// n a chart uses.
func bucketIndex(starts, ends []model.Date, d model.Date) int {
	for i := range starts {
		if !d.Before(starts[i]) && !d.After(ends[i]) {
			return i
		}
	}
	return -1
}

// periodStart truncates a date to the start of its period.
func periodStart(p Period, d model.Date) model.Date {
	switch p {
	case PeriodWeek:
		t := d.Time()
		// time.Weekday counts Sunday as 0; shift to Monday-start weeks.
		offset := (int(t.Weekday()) + 6) % 7
		return d.AddDays(-offset)
	case PeriodMonth:
		t := d.Time()
		return model.NewDate(t.Year(), t.Month(), 1)
	default:
		return d
	}
}

func periodEnd(p Period, start model.Date) model.Date {
	switch p {
	case PeriodWeek:
		return start.AddDays(6)
	case PeriodMonth:
		t := start.Time()
		return model.NewDate(t.Year(), t.Month(), daysInMonth(t.Year(), t.Month()))
	default:
		return start
	}
}

func previousPeriodStart(p Period, start model.Date) model.Date {
	switch p {
	case PeriodWeek:
		return start.AddDays(-7)
	case PeriodMonth:
		t := start.Time().AddDate(0, -1, 0)
		return model.NewDate(t.Year(), t.Month(), 1)
	default:
		return start.AddDays(-1)
	}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func periodLabel(p Period, start model.Date) string {
	t := start.Time()
	switch p {
	case PeriodWeek:
		return t.Format("Jan 2")
	case PeriodMonth:
		return t.Format("Jan 2006")
	default:
		return t.Format("Jan 2")
	}
}
