package domain

import (
	"encoding/json"
	"sort"
)

// DateSet is an immutable set of completion dates for one habit.
// Stored strings that fail to parse are carried verbatim in corrupt so a
// load/save cycle reproduces them, but they never reach any computation.
type DateSet struct {
	dates   map[Date]struct{}
	corrupt []string
}

func NewDateSet(dates ...Date) DateSet {
	m := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		m[d] = struct{}{}
	}
	return DateSet{dates: m}
}

// ParseDateSet builds a set from stored ISO strings. Duplicates collapse.
func ParseDateSet(raw []string) DateSet {
	m := make(map[Date]struct{}, len(raw))
	var corrupt []string
	for _, s := range raw {
		d, err := ParseDate(s)
		if err != nil {
			corrupt = append(corrupt, s)
			continue
		}
		m[d] = struct{}{}
	}
	return DateSet{dates: m, corrupt: corrupt}
}

func (s DateSet) Len() int {
	return len(s.dates)
}

func (s DateSet) IsEmpty() bool {
	return len(s.dates) == 0
}

func (s DateSet) Contains(d Date) bool {
	_, ok := s.dates[d]
	return ok
}

// Sorted returns the valid members in ascending order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s.dates))
	for d := range s.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// Earliest reports the smallest valid member.
func (s DateSet) Earliest() (Date, bool) {
	var earliest Date
	found := false
	for d := range s.dates {
		if !found || d.Before(earliest) {
			earliest = d
			found = true
		}
	}
	return earliest, found
}

func (s DateSet) Corrupt() []string {
	if len(s.corrupt) == 0 {
		return nil
	}
	out := make([]string, len(s.corrupt))
	copy(out, s.corrupt)
	return out
}

// Strings is the storage form: valid dates ascending, then corrupt entries as loaded.
func (s DateSet) Strings() []string {
	out := make([]string, 0, len(s.dates)+len(s.corrupt))
	for _, d := range s.Sorted() {
		out = append(out, d.String())
	}
	return append(out, s.corrupt...)
}

func (s DateSet) With(d Date) DateSet {
	next := s.clone()
	next.dates[d] = struct{}{}
	return next
}

func (s DateSet) Without(d Date) DateSet {
	next := s.clone()
	delete(next.dates, d)
	return next
}

// Set returns the set with d present or absent according to done.
func (s DateSet) Set(d Date, done bool) DateSet {
	if done {
		return s.With(d)
	}
	return s.Without(d)
}

func (s DateSet) Equal(other DateSet) bool {
	if len(s.dates) != len(other.dates) || len(s.corrupt) != len(other.corrupt) {
		return false
	}
	for d := range s.dates {
		if !other.Contains(d) {
			return false
		}
	}
	for i := range s.corrupt {
		if s.corrupt[i] != other.corrupt[i] {
			return false
		}
	}
	return true
}

func (s DateSet) clone() DateSet {
	m := make(map[Date]struct{}, len(s.dates)+1)
	for d := range s.dates {
		m[d] = struct{}{}
	}
	return DateSet{dates: m, corrupt: s.Corrupt()}
}

func (s DateSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *DateSet) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseDateSet(raw)
	return nil
}
