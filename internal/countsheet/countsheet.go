// Package countsheet reads drawer counts from YAML files for drawerctl.
//
// A sheet looks like:
//
//	register: "1.000.000"
//	counts:
//	  500000: 1
//	  100000: "4"
//	  5000: 20
//
// Values are kept as the raw text the cashier wrote and go through the same
// coercion as form input, so "abc" counts as 0 and "1.000.000" as 1000000.
package countsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"cashdrawer/internal/core"
	"cashdrawer/internal/drawer"
)

// Sheet is one drawer count.
type Sheet struct {
	Register string            `yaml:"register"`
	Counts   map[string]string `yaml:"counts"`
}

// UnknownDenominationError lists sheet keys that are not catalog values.
type UnknownDenominationError struct {
	Values []string
}

func (e *UnknownDenominationError) Error() string {
	return fmt.Sprintf("unknown denomination(s): %s", strings.Join(e.Values, ", "))
}

// Load reads and decodes the sheet at path.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read count sheet: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a sheet. Unknown top-level keys are rejected; an empty
// document is an empty sheet.
func Parse(data []byte) (*Sheet, error) {
	s := &Sheet{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode count sheet: %w", err)
	}
	if s.Counts == nil {
		s.Counts = make(map[string]string)
	}
	return s, nil
}

// Set records one "value=quantity" assignment, as given to --qty.
func (s *Sheet) Set(assignment string) error {
	value, qty, ok := strings.Cut(assignment, "=")
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return fmt.Errorf("invalid count %q, want VALUE=QUANTITY", assignment)
	}
	if s.Counts == nil {
		s.Counts = make(map[string]string)
	}
	s.Counts[value] = qty
	return nil
}

// Amounts converts the sheet keys to denomination values. Keys that are not
// integers or not in the catalog are returned in an UnknownDenominationError.
func (s *Sheet) Amounts() (map[core.Amount]string, error) {
	out := make(map[core.Amount]string, len(s.Counts))
	var unknown []string
	for key, raw := range s.Counts {
		v, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil || core.IndexOf(core.Amount(v)) < 0 {
			unknown = append(unknown, key)
			continue
		}
		out[core.Amount(v)] = raw
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, &UnknownDenominationError{Values: unknown}
	}
	return out, nil
}

// Apply loads the sheet into e. Nothing is applied when a key is unknown.
func (s *Sheet) Apply(e *drawer.Engine) error {
	counts, err := s.Amounts()
	if err != nil {
		return err
	}
	e.Apply(counts)
	if strings.TrimSpace(s.Register) != "" {
		e.SetTargetRaw(s.Register)
	}
	return nil
}
