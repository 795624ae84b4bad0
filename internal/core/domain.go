package core

const (
	StatusUnset    Status = "unset"
	StatusMatch    Status = "match"
	StatusShortage Status = "shortage"
	StatusSurplus  Status = "surplus"
)

type (
	// Amount is a whole number of đồng. VND has no subunits in circulation.
	Amount int64

	// Status is the outcome of comparing the counted total with the register amount.
	Status string

	// Denomination is one note face value in the catalog with its display label.
	Denomination struct {
		Value Amount
		Label string
	}
)

// denominations is the fixed VND catalog, ascending.
var denominations = [...]Denomination{
	{Value: 1000, Label: "1,000 ₫"},
	{Value: 2000, Label: "2,000 ₫"},
	{Value: 5000, Label: "5,000 ₫"},
	{Value: 10000, Label: "10,000 ₫"},
	{Value: 20000, Label: "20,000 ₫"},
	{Value: 50000, Label: "50,000 ₫"},
	{Value: 100000, Label: "100,000 ₫"},
	{Value: 200000, Label: "200,000 ₫"},
	{Value: 500000, Label: "500,000 ₫"},
}

// Denominations returns a copy of the catalog in ascending order.
func Denominations() []Denomination {
	out := make([]Denomination, len(denominations))
	copy(out, denominations[:])
	return out
}

// DenominationCount is the size of the catalog.
const DenominationCount = len(denominations)

// LookupDenomination finds the catalog entry for a face value.
func LookupDenomination(value Amount) (Denomination, bool) {
	for _, d := range denominations {
		if d.Value == value {
			return d, true
		}
	}
	return Denomination{}, false
}

// IndexOf returns the catalog position of value, or -1.
func IndexOf(value Amount) int {
	for i, d := range denominations {
		if d.Value == value {
			return i
		}
	}
	return -1
}

// String returns the formatted face value, e.g. "50.000 ₫".
func (d Denomination) String() string {
	return FormatVND(d.Value)
}

// CSSClass is the class the page puts on the verification banner.
func (s Status) CSSClass() string {
	if s == StatusUnset {
		return ""
	}
	return string(s)
}
