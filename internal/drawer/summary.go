package drawer

import "cashdrawer/internal/core"

// SummaryRow is the JSON form of a Row.
type SummaryRow struct {
	Value    int64  `json:"value"`
	Label    string `json:"label"`
	Quantity int64  `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

// Summary is the JSON document served by the web summary endpoint and
// printed by the CLI.
type Summary struct {
	Rows                []SummaryRow `json:"rows"`
	CountedTotal        int64        `json:"counted_total"`
	CountedTotalDisplay string       `json:"counted_total_display"`
	TotalNotes          int64        `json:"total_notes"`
	Target              *int64       `json:"target"`
	TargetDisplay       string       `json:"target_display,omitempty"`
	Status              core.Status  `json:"status"`
	Difference          int64        `json:"difference"`
	Message             string       `json:"message"`
}

// Summary flattens the snapshot for encoding. Target is null when no register
// amount was entered.
func (s Snapshot) Summary() Summary {
	rows := make([]SummaryRow, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = SummaryRow{
			Value:    int64(r.Denomination.Value),
			Label:    r.Denomination.Label,
			Quantity: r.Quantity,
			Subtotal: int64(r.Subtotal),
		}
	}

	out := Summary{
		Rows:                rows,
		CountedTotal:        int64(s.Result.CountedTotal),
		CountedTotalDisplay: s.Result.FormattedTotal(),
		TotalNotes:          s.Result.TotalNotes,
		TargetDisplay:       s.TargetDisplay,
		Status:              s.Result.Status,
		Difference:          int64(s.Result.Difference),
		Message:             s.Result.Message(),
	}
	if s.Result.HasTarget {
		target := int64(s.Result.Target)
		out.Target = &target
	}
	return out
}
