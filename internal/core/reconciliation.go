package core

// ReconciliationResult compares the counted cash against the register amount.
// It is always derived from the current counts, never stored.
type ReconciliationResult struct {
	CountedTotal Amount
	TotalNotes   int64
	Target       Amount
	HasTarget    bool
	Status       Status
	// Difference is the positive shortage or surplus, zero otherwise.
	Difference Amount
}

// Reconcile classifies countedTotal against target with exact integer equality.
// A register amount of zero counts as not entered.
func Reconcile(countedTotal Amount, totalNotes int64, target Amount, hasTarget bool) ReconciliationResult {
	res := ReconciliationResult{
		CountedTotal: countedTotal,
		TotalNotes:   totalNotes,
		Target:       target,
		HasTarget:    hasTarget,
	}
	switch {
	case !hasTarget || target == 0:
		res.Status = StatusUnset
	case countedTotal == target:
		res.Status = StatusMatch
	case countedTotal < target:
		res.Status = StatusShortage
		res.Difference = target - countedTotal
	default:
		res.Status = StatusSurplus
		res.Difference = countedTotal - target
	}
	return res
}

// Message is the banner text shown under the register amount.
func (r ReconciliationResult) Message() string {
	switch r.Status {
	case StatusMatch:
		return "Tiền mặt đủ ✓"
	case StatusShortage:
		return "Thiếu " + FormatVND(r.Difference)
	case StatusSurplus:
		return "Dư " + FormatVND(r.Difference)
	default:
		return "Chưa có dữ liệu"
	}
}

// FormattedTotal renders CountedTotal.
func (r ReconciliationResult) FormattedTotal() string {
	return FormatVND(r.CountedTotal)
}
