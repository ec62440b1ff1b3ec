package orgquery

import (
	"testing"
	"time"
)

func TestCanonicalPolicy(t *testing.T) {
	cases := map[string]string{
		"vacation":       "vacation leave",
		"Vacation Leave": "vacation leave",
		"paid vacation":  "vacation leave",
		"sick":           "sick leave",
		"annual":         "annual leave",
		"birthday":       "birthday day off",
		"maternity":      "maternity leave",
		"sabbatical":     "sabbatical",
	}
	for in, want := range cases {
		if got := CanonicalPolicy(in); got != want {
			t.Errorf("CanonicalPolicy(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalPolicyIdempotent(t *testing.T) {
	for _, a := range policyAliases {
		if got := CanonicalPolicy(a.canonical); got != a.canonical {
			t.Errorf("canonical form %q re-canonicalized to %q", a.canonical, got)
		}
	}
}

func TestPolicyAliasOrder(t *testing.T) {
	// "paternity" contains no earlier probe, but a compound like
	// "sick or vacation" must resolve to the first listed alias.
	if got := CanonicalPolicy("vacation or sick"); got != "vacation leave" {
		t.Fatalf("first-match-wins violated: %q", got)
	}
}

func TestPolicyProbe(t *testing.T) {
	if got := PolicyProbe("vacation leave"); got != "vacation" {
		t.Fatalf("probe = %q", got)
	}
	if got := PolicyProbe("Sabbatical"); got != "sabbatical" {
		t.Fatalf("unknown policy probe = %q", got)
	}
}

func TestColumnSets(t *testing.T) {
	if !HasEmployeeColumn("twitter_x") || HasEmployeeColumn("twitter") {
		t.Fatal("employee columns hold canonical names only")
	}
	if !HasTimeOffColumn("employee_name") || HasTimeOffColumn("full_name") {
		t.Fatal("time-off columns include join-resolved names only")
	}
	for _, c := range TimeOffColumnSet() {
		if !HasTimeOffColumn(c) {
			t.Fatalf("listed column %q not valid", c)
		}
	}
}

func TestDurationDaysInclusive(t *testing.T) {
	r := TimeOffRecord{
		StartDate: time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
	}
	if got := r.DurationDays(); got != 5 {
		t.Fatalf("duration = %d, want 5", got)
	}

	same := TimeOffRecord{StartDate: r.StartDate, EndDate: r.StartDate}
	if got := same.DurationDays(); got != 1 {
		t.Fatalf("single-day duration = %d, want 1", got)
	}
}

func TestNormalizeEmployeeAliases(t *testing.T) {
	in := EmployeeIntent{SelectColumns: []string{"Country", "TWITTER", "full_name"}}
	if err := NormalizeEmployee(&in); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := []string{"location", "twitter_x", "full_name"}
	for i, w := range want {
		if in.SelectColumns[i] != w {
			t.Fatalf("columns = %v, want %v", in.SelectColumns, want)
		}
	}
}

func TestNormalizeEmployeeRejectsUnknownColumn(t *testing.T) {
	in := EmployeeIntent{SelectColumns: []string{"full_name", "ssn"}}
	err := NormalizeEmployee(&in)
	if !IsKind(err, ErrInvalidColumn) {
		t.Fatalf("err = %v", err)
	}
}

func TestNormalizeTimeOffDefaults(t *testing.T) {
	in := TimeOffIntent{ReturnAsCount: true, PolicyType: " Vacation "}
	NormalizeTimeOff(&in)

	if in.Window != WindowPresent {
		t.Fatalf("window = %q", in.Window)
	}
	if len(in.SelectColumns) != 1 || in.SelectColumns[0] != "policy_type" {
		t.Fatalf("count group-by default = %v", in.SelectColumns)
	}
	if in.PolicyType != "vacation leave" {
		t.Fatalf("policy = %q", in.PolicyType)
	}

	// Second application changes nothing.
	before := in
	NormalizeTimeOff(&in)
	if in.PolicyType != before.PolicyType || in.Window != before.Window {
		t.Fatal("normalization not idempotent")
	}
}
