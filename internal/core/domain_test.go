package core

import "testing"

func TestDenominationCatalog(t *testing.T) {
	want := []Amount{1000, 2000, 5000, 10000, 20000, 50000, 100000, 200000, 500000}
	got := Denominations()
	if len(got) != len(want) || DenominationCount != len(want) {
		t.Fatalf("expected %d denominations, got %d", len(want), len(got))
	}
	for i, d := range got {
		if d.Value != want[i] {
			t.Fatalf("case %d expected %d, got %d", i, want[i], d.Value)
		}
		if d.Label == "" {
			t.Fatalf("case %d has empty label", i)
		}
	}

	// Mutating the copy must not touch the catalog.
	got[0].Value = 1
	if Denominations()[0].Value != 1000 {
		t.Fatalf("catalog mutated through returned slice")
	}
}

func TestLookupDenomination(t *testing.T) {
	d, ok := LookupDenomination(50000)
	if !ok || d.Label != "50,000 ₫" {
		t.Fatalf("unexpected lookup: %+v ok=%v", d, ok)
	}
	if _, ok := LookupDenomination(3000); ok {
		t.Fatalf("expected unknown value to miss")
	}
	if IndexOf(500000) != 8 || IndexOf(3) != -1 {
		t.Fatalf("unexpected IndexOf results")
	}
}

func TestReconcile(t *testing.T) {
	cases := []struct {
		name      string
		counted   Amount
		target    Amount
		hasTarget bool
		status    Status
		diff      Amount
		msg       string
	}{
		{"no target", 105000, 0, false, StatusUnset, 0, "Chưa có dữ liệu"},
		{"zero target", 105000, 0, true, StatusUnset, 0, "Chưa có dữ liệu"},
		{"surplus", 105000, 100000, true, StatusSurplus, 5000, "Dư 5.000 ₫"},
		{"shortage", 105000, 110000, true, StatusShortage, 5000, "Thiếu 5.000 ₫"},
		{"match", 105000, 105000, true, StatusMatch, 0, "Tiền mặt đủ ✓"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Reconcile(tc.counted, 7, tc.target, tc.hasTarget)
			if res.Status != tc.status || res.Difference != tc.diff {
				t.Fatalf("expected %s/%d, got %s/%d", tc.status, tc.diff, res.Status, res.Difference)
			}
			if res.Message() != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, res.Message())
			}
			if res.TotalNotes != 7 || res.FormattedTotal() != "105.000 ₫" {
				t.Fatalf("unexpected totals: %+v", res)
			}
		})
	}
}

func TestStatusCSSClass(t *testing.T) {
	if StatusUnset.CSSClass() != "" || StatusSurplus.CSSClass() != "surplus" {
		t.Fatalf("unexpected css classes")
	}
}
