package seed

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultProfile()
	a := Generate(p)
	b := Generate(p)

	if !reflect.DeepEqual(a, b) {
		t.Fatal("same profile produced different datasets")
	}
	if len(a.Employees) != p.Headcount {
		t.Fatalf("headcount = %d, want %d", len(a.Employees), p.Headcount)
	}
}

func TestGenerateOrgShape(t *testing.T) {
	ds := Generate(DefaultProfile())

	root := ds.Employees[0]
	if root.ID != 1 || root.ReportsTo != 1 {
		t.Fatalf("root = id %d reports_to %d, want 1/1", root.ID, root.ReportsTo)
	}
	if !root.IsManager || !root.IsActive {
		t.Fatal("root must be an active manager")
	}

	byID := make(map[int64]int, len(ds.Employees))
	for i, e := range ds.Employees {
		byID[e.ID] = i
	}
	for _, e := range ds.Employees {
		mi, ok := byID[e.ReportsTo]
		if !ok {
			t.Fatalf("employee %d reports to missing id %d", e.ID, e.ReportsTo)
		}
		mgr := ds.Employees[mi]
		if e.ID != 1 && !mgr.IsManager {
			t.Fatalf("employee %d reports to non-manager %d", e.ID, mgr.ID)
		}
		if e.ID != 1 && mgr.ID != 1 && mgr.Department != e.Department {
			t.Fatalf("employee %d (%s) reports across departments to %d (%s)",
				e.ID, e.Department, mgr.ID, mgr.Department)
		}
	}
}

func TestGenerateTimeOffRanges(t *testing.T) {
	ds := Generate(DefaultProfile())
	if len(ds.TimeOff) == 0 {
		t.Fatal("no time-off records generated")
	}

	seen := make(map[int64]bool)
	for _, r := range ds.TimeOff {
		if r.EndDate.Before(r.StartDate) {
			t.Fatalf("record %d has inverted range", r.ID)
		}
		if d := r.DurationDays(); d < 1 || d > 14 {
			t.Fatalf("record %d duration = %d", r.ID, d)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate record id %d", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestDepartmentWeights(t *testing.T) {
	p := DefaultProfile()
	p.Headcount = 500
	ds := Generate(p)

	counts := make(map[string]int)
	for _, e := range ds.Employees {
		counts[e.Department]++
	}
	// Engineering carries twice the weight of any other department and
	// must dominate at this sample size.
	for _, d := range []string{"Marketing", "Sales", "HR", "Finance"} {
		if counts["Engineering"] <= counts[d] {
			t.Fatalf("Engineering (%d) not larger than %s (%d)", counts["Engineering"], d, counts[d])
		}
	}
}

func TestLoadProfileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := "headcount: 30\nseed: 7\ndepartments:\n  - name: Research\n    weight: 1.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Headcount != 30 || p.Seed != 7 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if len(p.Departments) != 1 || p.Departments[0].Name != "Research" {
		t.Fatalf("departments = %+v", p.Departments)
	}
	// Untouched fields keep defaults.
	if len(p.Locations) == 0 || p.TimeOffPerEmployee == 0 {
		t.Fatalf("defaults lost: %+v", p)
	}

	ds := Generate(p)
	for _, e := range ds.Employees[1:] {
		if e.Department != "Research" {
			t.Fatalf("employee %d in %s, want Research", e.ID, e.Department)
		}
	}
}
