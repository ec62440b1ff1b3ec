// Package reldate resolves date expressions into calendar dates. An
// expression is either an absolute YYYY-MM-DD string or one of a small
// vocabulary of relative phrases ("today", "next week", "in 3 months",
// "2 days ago").
package reldate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/orgquery/orgquery/orgquery"
)

const (
	// MinYear and MaxYear bound accepted absolute dates.
	MinYear = 1900
	MaxYear = 2100
)

var (
	absoluteRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	inRe       = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months|year|years)$`)
	agoRe      = regexp.MustCompile(`^(\d+) (day|days|week|weeks|month|months|year|years) ago$`)
)

// Resolve parses expr against the given reference date. The result is a
// pure calendar date (midnight UTC). Unrecognized expressions return an
// invalid_date error carrying the original string.
func Resolve(expr string, ref time.Time) (time.Time, error) {
	value := strings.ToLower(strings.TrimSpace(expr))
	if value == "" {
		return time.Time{}, orgquery.InvalidDateError(expr)
	}

	if absoluteRe.MatchString(value) {
		return ParseAbsolute(value)
	}

	today := Day(ref)

	switch value {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next week":
		return today.AddDate(0, 0, 7), nil
	case "last week":
		return today.AddDate(0, 0, -7), nil
	case "next month":
		return addMonths(today, 1), nil
	case "last month":
		return addMonths(today, -1), nil
	case "next year":
		return addYears(today, 1), nil
	case "last year":
		return addYears(today, -1), nil
	}

	if m := inRe.FindStringSubmatch(value); m != nil {
		return shift(today, m[1], m[2], 1), nil
	}
	if m := agoRe.FindStringSubmatch(value); m != nil {
		return shift(today, m[1], m[2], -1), nil
	}

	return time.Time{}, orgquery.InvalidDateError(expr)
}

// ParseAbsolute parses a strict YYYY-MM-DD date with the year bounded to
// [MinYear, MaxYear]. Any other format is an invalid_date error.
func ParseAbsolute(expr string) (time.Time, error) {
	value := strings.TrimSpace(expr)
	if !absoluteRe.MatchString(value) {
		return time.Time{}, orgquery.InvalidDateError(expr)
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, orgquery.InvalidDateError(expr)
	}
	if d.Year() < MinYear || d.Year() > MaxYear {
		return time.Time{}, orgquery.New(orgquery.ErrInvalidDate,
			"year out of range (1900-2100): "+value)
	}
	return d, nil
}

// Day truncates t to a calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func shift(today time.Time, amountStr, unit string, direction int) time.Time {
	amount, _ := strconv.Atoi(amountStr)
	n := amount * direction
	switch strings.TrimSuffix(unit, "s") {
	case "day":
		return today.AddDate(0, 0, n)
	case "week":
		return today.AddDate(0, 0, 7*n)
	case "month":
		return addMonths(today, n)
	default:
		return addYears(today, n)
	}
}

// addMonths shifts by whole months, clamping the day-of-month to the last
// valid day of the target month rather than rolling into the next one
// (Jan 31 + 1 month = Feb 28). The clamp treats February as 28 days in
// every year.
func addMonths(d time.Time, n int) time.Time {
	month := int(d.Month()) - 1 + n
	year := d.Year() + floorDiv(month, 12)
	month = ((month % 12) + 12) % 12

	target := time.Month(month + 1)
	day := d.Day()
	if max := maxDay(target); day > max {
		day = max
	}
	return time.Date(year, target, day, 0, 0, 0, 0, time.UTC)
}

// addYears keeps month and day, clamping Feb 29 to Feb 28.
func addYears(d time.Time, n int) time.Time {
	day := d.Day()
	if max := maxDay(d.Month()); day > max {
		day = max
	}
	return time.Date(d.Year()+n, d.Month(), day, 0, 0, 0, 0, time.UTC)
}

// maxDay is deliberately leap-year-agnostic.
func maxDay(m time.Month) int {
	switch m {
	case time.February:
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
