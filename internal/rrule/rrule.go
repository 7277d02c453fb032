package rrule

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// ParseRRule parses an RFC 5545 RRULE string anchored at dtstart.
func ParseRRule(ruleStr string, dtstart time.Time) (*rrule.RRule, error) {
	// Handle RRULE: prefix if present
	ruleStr = strings.TrimPrefix(ruleStr, "RRULE:")

	opt, err := rrule.StrToROption(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RRULE: %w", err)
	}

	opt.Dtstart = dtstart
	return rrule.NewRRule(*opt)
}

// Validate reports whether ruleStr is a well-formed RRULE.
func Validate(ruleStr string) error {
	_, err := ParseRRule(ruleStr, time.Now())
	return err
}

// NextOccurrence returns the first occurrence strictly after the given time.
// Returns nil if the rule has no more occurrences.
func NextOccurrence(ruleStr string, dtstart time.Time, after time.Time) (*time.Time, error) {
	rule, err := ParseRRule(ruleStr, dtstart)
	if err != nil {
		return nil, err
	}

	next := rule.After(after, false)
	if next.IsZero() {
		return nil, nil
	}
	return &next, nil
}
