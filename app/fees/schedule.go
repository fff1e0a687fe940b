package fees

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUnpricedGrade   = errors.New("grade has no fee in schedule")
	ErrInvalidSchedule = errors.New("invalid fee schedule")
)

var defaultGrades = []string{"JSS1", "JSS2", "JSS3", "SS1", "SS2", "SS3"}

// Schedule maps an upper-cased grade code to its total fee in whole units.
type Schedule map[string]int64

func DefaultSchedule() Schedule {
	s := make(Schedule, len(defaultGrades))
	for _, grade := range defaultGrades {
		s[grade] = 1000
	}
	return s
}

func NewSchedule(items map[string]int64) (Schedule, error) {
	s := make(Schedule, len(items))
	for grade, fee := range items {
		code := normalizeGrade(grade)
		if code == "" {
			return nil, fmt.Errorf("%w: empty grade code", ErrInvalidSchedule)
		}
		if fee < 0 {
			return nil, fmt.Errorf("%w: negative fee for %s", ErrInvalidSchedule, code)
		}
		s[code] = fee
	}
	return s, nil
}

// ParseSchedule reads "JSS1=1000,SS1=1500" style definitions.
func ParseSchedule(raw string) (Schedule, error) {
	items := map[string]int64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		grade, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q is not grade=fee", ErrInvalidSchedule, part)
		}
		fee, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: fee for %q: %v", ErrInvalidSchedule, grade, err)
		}
		items[grade] = fee
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidSchedule)
	}
	return NewSchedule(items)
}

// Lookup never reports an unknown grade as a zero fee.
func (s Schedule) Lookup(grade string) (int64, error) {
	code := normalizeGrade(grade)
	fee, ok := s[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnpricedGrade, grade)
	}
	return fee, nil
}

// Grades lists the known grades, default grades first in school order.
func (s Schedule) Grades() []string {
	seen := make(map[string]bool, len(s))
	out := make([]string, 0, len(s))
	for _, grade := range defaultGrades {
		if _, ok := s[grade]; ok {
			out = append(out, grade)
			seen[grade] = true
		}
	}

	var extra []string
	for grade := range s {
		if !seen[grade] {
			extra = append(extra, grade)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func normalizeGrade(grade string) string {
	return strings.ToUpper(strings.TrimSpace(grade))
}
