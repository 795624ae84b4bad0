// Package drawer implements the cash drawer reconciliation engine.
//
// An Engine holds one count per catalog denomination and an optional register
// amount. Totals and status are recomputed from the counts on every read.
//
// Engine is not safe for concurrent use. Callers that share one across
// goroutines (the session store does) must serialize access themselves.
package drawer

import (
	"slices"

	"cashdrawer/internal/core"
)

// Row is one denomination line as the presentation layer shows it.
type Row struct {
	Denomination core.Denomination
	Quantity     int64
	Subtotal     core.Amount
}

// Snapshot is everything a view needs to redraw the drawer.
type Snapshot struct {
	Rows          []Row
	Result        core.ReconciliationResult
	TargetDisplay string
}

type Engine struct {
	counts        [core.DenominationCount]int64
	target        core.Amount
	hasTarget     bool
	targetDisplay string
}

func New() *Engine {
	return &Engine{}
}

// SetQuantity stores the coerced quantity for a denomination and returns the
// row subtotal together with the quantity actually stored, so the caller can
// echo 0 back into the field when the input was rejected. Unknown
// denomination values are ignored.
func (e *Engine) SetQuantity(value core.Amount, raw string) (subtotal core.Amount, quantity int64) {
	i := core.IndexOf(value)
	if i < 0 {
		return 0, 0
	}
	q := core.ParseQuantity(raw)
	e.counts[i] = q
	return core.Amount(q) * value, q
}

// SetTargetRaw strips everything but digits from raw, stores the result as the
// register amount (unset when no digits remain) and returns the value grouped
// with dots for the input field.
func (e *Engine) SetTargetRaw(raw string) string {
	amount, ok := core.ParseDigits(core.StripNonDigits(raw))
	if !ok {
		e.target, e.hasTarget, e.targetDisplay = 0, false, ""
		return ""
	}
	e.target, e.hasTarget = amount, true
	e.targetDisplay = core.GroupThousands(int64(amount), core.TargetSeparator)
	return e.targetDisplay
}

// Totals sums the counted cash and the number of notes.
func (e *Engine) Totals() (countedTotal core.Amount, totalNotes int64) {
	for i, d := range core.Denominations() {
		countedTotal += core.Amount(e.counts[i]) * d.Value
		totalNotes += e.counts[i]
	}
	return countedTotal, totalNotes
}

// Status reconciles the current totals against the register amount.
func (e *Engine) Status() core.ReconciliationResult {
	total, notes := e.Totals()
	return core.Reconcile(total, notes, e.target, e.hasTarget)
}

// Reset zeroes every count and clears the register amount.
func (e *Engine) Reset() {
	e.counts = [core.DenominationCount]int64{}
	e.target, e.hasTarget, e.targetDisplay = 0, false, ""
}

// Quantity returns the stored count for value, 0 for unknown values.
func (e *Engine) Quantity(value core.Amount) int64 {
	if i := core.IndexOf(value); i >= 0 {
		return e.counts[i]
	}
	return 0
}

// Subtotal returns quantity × face value for one denomination.
func (e *Engine) Subtotal(value core.Amount) core.Amount {
	return core.Amount(e.Quantity(value)) * value
}

// Target returns the register amount and whether one was entered.
func (e *Engine) Target() (core.Amount, bool) {
	return e.target, e.hasTarget
}

// TargetDisplay is the last formatted register amount, "" when unset.
func (e *Engine) TargetDisplay() string {
	return e.targetDisplay
}

// Rows lists every denomination in catalog order with its count.
func (e *Engine) Rows() []Row {
	denoms := core.Denominations()
	rows := make([]Row, len(denoms))
	for i, d := range denoms {
		rows[i] = Row{
			Denomination: d,
			Quantity:     e.counts[i],
			Subtotal:     core.Amount(e.counts[i]) * d.Value,
		}
	}
	return rows
}

// Snapshot captures rows, reconciliation result and target display at once.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Rows:          e.Rows(),
		Result:        e.Status(),
		TargetDisplay: e.targetDisplay,
	}
}

// Apply sets several quantities at once. Keys that are not catalog values
// are skipped and reported back in ascending order.
func (e *Engine) Apply(counts map[core.Amount]string) (unknown []core.Amount) {
	for value, raw := range counts {
		if core.IndexOf(value) < 0 {
			unknown = append(unknown, value)
			continue
		}
		e.SetQuantity(value, raw)
	}
	slices.Sort(unknown)
	return unknown
}
