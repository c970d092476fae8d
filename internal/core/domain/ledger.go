package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrDataCorruption     = errors.New("ledger contains unparseable dates")
	ErrPersistenceFailure = errors.New("ledger could not be saved")
)

// Ledger maps one user's habit names to their completion dates.
type Ledger map[string]DateSet

// ParseLedger converts the storage form into a Ledger.
func ParseLedger(raw map[string][]string) Ledger {
	l := make(Ledger, len(raw))
	for name, dates := range raw {
		l[name] = ParseDateSet(dates)
	}
	return l
}

// Raw converts the ledger back into the storage form.
func (l Ledger) Raw() map[string][]string {
	raw := make(map[string][]string, len(l))
	for name, set := range l {
		raw[name] = set.Strings()
	}
	return raw
}

func (l Ledger) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l Ledger) Has(name string) bool {
	_, ok := l[name]
	return ok
}

// Lookup finds a stored habit by the name as given, then by its trimmed form.
// Stored names are matched verbatim even when they would no longer pass
// NormalizeHabitName, so habits written elsewhere stay reachable.
func (l Ledger) Lookup(name string) (string, bool) {
	if _, ok := l[name]; ok {
		return name, true
	}
	trimmed := strings.TrimSpace(name)
	if _, ok := l[trimmed]; ok {
		return trimmed, true
	}
	return trimmed, false
}

// Clone copies the map; DateSets are immutable values and are shared.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for name, set := range l {
		out[name] = set
	}
	return out
}

// Corruption lists warnings for every stored entry that failed to parse.
func (l Ledger) Corruption() []Warning {
	var warnings []Warning
	for _, name := range l.Names() {
		for _, bad := range l[name].Corrupt() {
			warnings = append(warnings, NewWarning(WarningDataCorruption, name,
				"ignoring unparseable date "+strconv.Quote(bad)))
		}
	}
	return warnings
}

// Validate reports ErrDataCorruption when any stored entry failed to parse.
func (l Ledger) Validate() error {
	bad := 0
	for _, set := range l {
		bad += len(set.corrupt)
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d entries", ErrDataCorruption, bad)
	}
	return nil
}
