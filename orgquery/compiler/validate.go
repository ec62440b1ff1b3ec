package compiler

import (
	"fmt"
	"strings"

	"github.com/orgquery/orgquery/orgquery"
)

// ValidateTimeOff is the pre-compile gate: every violation is reported
// before any clause is built, so a rejected intent never produces a
// partial plan.
func ValidateTimeOff(in *orgquery.TimeOffIntent) error {
	switch in.Window {
	case orgquery.WindowPast, orgquery.WindowPresent, orgquery.WindowFuture:
	default:
		return orgquery.ValidationError(fmt.Sprintf("type must be past, present or future, got %q", in.Window))
	}

	if in.Status != "" {
		switch orgquery.Status(in.Status) {
		case orgquery.StatusPending, orgquery.StatusApproved, orgquery.StatusRejected:
		default:
			return orgquery.ValidationError(fmt.Sprintf("status must be pending, approved or rejected, got %q", in.Status))
		}
	}

	if in.DurationMin != nil && *in.DurationMin < 1 {
		return orgquery.ValidationError("duration_min must be at least 1")
	}
	if in.DurationMax != nil && *in.DurationMax < 1 {
		return orgquery.ValidationError("duration_max must be at least 1")
	}
	if in.DurationMin != nil && in.DurationMax != nil && *in.DurationMin > *in.DurationMax {
		return orgquery.ValidationError(fmt.Sprintf(
			"duration_min (%d) cannot be greater than duration_max (%d)", *in.DurationMin, *in.DurationMax))
	}

	var invalid []string
	for _, col := range in.SelectColumns {
		if !orgquery.HasTimeOffColumn(col) {
			invalid = append(invalid, col)
		}
	}
	if len(invalid) > 0 {
		return orgquery.ValidationError(fmt.Sprintf(
			"invalid select_columns: %s. Valid options are: %s",
			strings.Join(invalid, ", "), strings.Join(orgquery.TimeOffColumnSet(), ", ")))
	}

	return nil
}
