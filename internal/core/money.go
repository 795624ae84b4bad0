// Package core provides the cash drawer domain: the VND denomination catalog,
// amount formatting and the coercion rules for hand-typed input.
//
// Coercion never fails. Anything that is not a usable non-negative integer
// becomes zero (quantities) or an empty digit string (register amount).
package core

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// CurrencySymbol is appended after every formatted amount.
	CurrencySymbol = "₫"

	// ZeroAmount is how zero is always rendered.
	ZeroAmount = "0 " + CurrencySymbol

	// TargetSeparator groups thousands in the register amount field.
	TargetSeparator = '.'

	// MaxQuantity caps a single denomination count so totals stay within int64.
	MaxQuantity int64 = 1_000_000_000
)

var vndPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount with vi-VN grouping and a trailing symbol:
//
//	FormatVND(105000) -> "105.000 ₫"
//	FormatVND(0)      -> "0 ₫"
func FormatVND(a Amount) string {
	if a == 0 {
		return ZeroAmount
	}
	return vndPrinter.Sprintf("%d", int64(a)) + " " + CurrencySymbol
}

// GroupThousands writes n with sep between every group of three digits.
// Negative values keep their sign in front.
func GroupThousands(n int64, sep byte) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	var digits string
	if neg {
		// math.MinInt64 has no positive counterpart; format via uint64.
		digits = strconv.FormatUint(uint64(-(n+1))+1, 10)
	} else {
		digits = strconv.FormatInt(n, 10)
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseQuantity reads the leading integer of s the way a browser's parseInt
// would: surrounding whitespace and an optional sign are accepted, trailing
// garbage is ignored. Anything unparsable or negative yields 0, and values
// above MaxQuantity are clamped.
func ParseQuantity(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n > MaxQuantity {
		// ParseInt only fails here on overflow.
		return MaxQuantity
	}
	return n
}

// StripNonDigits keeps only ASCII digits, so "1.000.000 ₫" becomes "1000000".
func StripNonDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ParseDigits converts a digit string produced by StripNonDigits. An empty
// string reports ok=false; values beyond int64 saturate at math.MaxInt64.
func ParseDigits(digits string) (Amount, bool) {
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Amount(math.MaxInt64), true
	}
	return Amount(n), true
}
