package http

import (
	"bytes"
	"fmt"

	"cashdrawer/internal/core"
	"cashdrawer/internal/drawer"
	"cashdrawer/internal/services"
)

// Template data. OOB marks fragments sent as hx-swap-oob alongside a
// partial response; the full page renders them in place.

type rowView struct {
	Value    int64
	Label    string
	Quantity int64
	Subtotal string
	OOB      bool
}

type totalsView struct {
	Total string
	Notes int64
	OOB   bool
}

type statusView struct {
	Message string
	Class   string
	OOB     bool
}

type pageView struct {
	Rows          []rowView
	Totals        totalsView
	Status        statusView
	TargetDisplay string
}

func newRowView(r drawer.Row) rowView {
	return rowView{
		Value:    int64(r.Denomination.Value),
		Label:    r.Denomination.Label,
		Quantity: r.Quantity,
		Subtotal: core.FormatVND(r.Subtotal),
	}
}

func newTotalsView(res core.ReconciliationResult, oob bool) totalsView {
	return totalsView{Total: res.FormattedTotal(), Notes: res.TotalNotes, OOB: oob}
}

func newStatusView(res core.ReconciliationResult, oob bool) statusView {
	return statusView{Message: res.Message(), Class: res.Status.CSSClass(), OOB: oob}
}

func newPageView(v services.DrawerView) pageView {
	rows := make([]rowView, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = newRowView(r)
	}
	return pageView{
		Rows:          rows,
		Totals:        newTotalsView(v.Result, false),
		Status:        newStatusView(v.Result, false),
		TargetDisplay: v.TargetDisplay,
	}
}

// render executes the named templates in order into one buffer.
func (s *Server) render(parts ...templatePart) ([]byte, error) {
	if s.templates == nil {
		return nil, fmt.Errorf("templates not loaded")
	}
	var buf bytes.Buffer
	for _, p := range parts {
		if err := s.templates.ExecuteTemplate(&buf, p.name, p.data); err != nil {
			return nil, fmt.Errorf("execute %s: %w", p.name, err)
		}
	}
	return buf.Bytes(), nil
}

type templatePart struct {
	name string
	data any
}
