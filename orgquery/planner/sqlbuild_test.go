package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/orgquery/orgquery/orgquery"
	"github.com/orgquery/orgquery/orgquery/compiler"
	"github.com/orgquery/orgquery/orgquery/plan"
	"github.com/orgquery/orgquery/orgquery/storage/postgres"
	"github.com/orgquery/orgquery/orgquery/storage/sqlbuilder"
	sqliteadapter "github.com/orgquery/orgquery/orgquery/storage/sqlite"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func mustCompileEmployee(t *testing.T, in orgquery.EmployeeIntent) *plan.Plan {
	t.Helper()
	p, err := compiler.CompileEmployee(in, testNow)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func mustCompileTimeOff(t *testing.T, in orgquery.TimeOffIntent) *plan.Plan {
	t.Helper()
	p, err := compiler.CompileTimeOff(in, testNow)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func buildSQLite(t *testing.T, p *plan.Plan) *Query {
	t.Helper()
	q, err := BuildSQL(p, sqliteadapter.Dialect{}, sqlbuilder.PlaceholderQuestion)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return q
}

func TestEmployeeFullSelect(t *testing.T) {
	q := buildSQLite(t, mustCompileEmployee(t, orgquery.EmployeeIntent{}))

	if !strings.HasPrefix(q.SQL, "SELECT e.id AS id,") {
		t.Fatalf("unexpected select list: %s", q.SQL)
	}
	if !strings.Contains(q.SQL, "FROM employees e WHERE (e.is_active)") {
		t.Fatalf("missing active filter: %s", q.SQL)
	}
	if strings.Contains(q.SQL, "JOIN") {
		t.Fatalf("unexpected join: %s", q.SQL)
	}
	if len(q.Args) != 0 {
		t.Fatalf("expected no args, got %v", q.Args)
	}
	if len(q.ResultColumns) != 15 {
		t.Fatalf("expected 15 result columns, got %d", len(q.ResultColumns))
	}
}

func TestEmployeeManagerJoinOnDemand(t *testing.T) {
	q := buildSQLite(t, mustCompileEmployee(t, orgquery.EmployeeIntent{ReportsTo: "Alice Smith"}))

	if !strings.Contains(q.SQL, "JOIN employees m ON e.reports_to = m.id") {
		t.Fatalf("expected manager self-join: %s", q.SQL)
	}
	if !strings.Contains(q.SQL, "LOWER(m.full_name) LIKE ?") {
		t.Fatalf("expected manager name match: %s", q.SQL)
	}
	want := []any{"%alice%", "%smith%"}
	if len(q.Args) != len(want) {
		t.Fatalf("args = %v", q.Args)
	}
	for i, w := range want {
		if q.Args[i] != w {
			t.Fatalf("arg[%d] = %v, want %v", i, q.Args[i], w)
		}
	}
}

func TestEmployeeBirthdayWraparoundSQL(t *testing.T) {
	q := buildSQLite(t, mustCompileEmployee(t, orgquery.EmployeeIntent{
		FromNextBirthday: "2025-11-15",
		ToNextBirthday:   "2026-02-15",
	}))

	if !strings.Contains(q.SQL, "CAST(strftime('%m', e.birth_date) AS INTEGER)") {
		t.Fatalf("expected strftime month extraction: %s", q.SQL)
	}
	// Wrapping range lowers to OR of the two one-sided bounds.
	if !strings.Contains(q.SQL, "OR") {
		t.Fatalf("expected disjunctive bound: %s", q.SQL)
	}
	want := []any{11, 11, 15, 2, 2, 15}
	if len(q.Args) != len(want) {
		t.Fatalf("args = %v", q.Args)
	}
	for i, w := range want {
		if q.Args[i] != w {
			t.Fatalf("arg[%d] = %v, want %v", i, q.Args[i], w)
		}
	}
}

func TestEmployeeCountGrouped(t *testing.T) {
	q := buildSQLite(t, mustCompileEmployee(t, orgquery.EmployeeIntent{
		SelectColumns: []string{"department"},
		ReturnAsCount: true,
		CountSortDesc: true,
	}))

	if !strings.Contains(q.SQL, "SELECT e.department AS department, COUNT(DISTINCT e.id) AS total") {
		t.Fatalf("unexpected aggregate select: %s", q.SQL)
	}
	if !strings.Contains(q.SQL, "GROUP BY e.department ORDER BY total DESC") {
		t.Fatalf("unexpected grouping: %s", q.SQL)
	}
	if got := strings.Join(q.ResultColumns, ","); got != "department,total" {
		t.Fatalf("result columns = %s", got)
	}
}

func TestEmployeeCountUngrouped(t *testing.T) {
	q := buildSQLite(t, mustCompileEmployee(t, orgquery.EmployeeIntent{ReturnAsCount: true}))

	if !strings.HasPrefix(q.SQL, "SELECT COUNT(DISTINCT e.id) AS total FROM employees e") {
		t.Fatalf("unexpected count query: %s", q.SQL)
	}
	if strings.Contains(q.SQL, "GROUP BY") {
		t.Fatalf("unexpected GROUP BY: %s", q.SQL)
	}
}

func TestTimeOffJoinAndJoinedColumns(t *testing.T) {
	q := buildSQLite(t, mustCompileTimeOff(t, orgquery.TimeOffIntent{
		Window:     orgquery.WindowPast,
		Name:       "bob",
		Department: "engineering",
	}))

	if !strings.Contains(q.SQL, "FROM time_off t JOIN employees e ON t.employee_id = e.id") {
		t.Fatalf("expected employee join: %s", q.SQL)
	}
	if !strings.Contains(q.SQL, "LOWER(e.full_name) LIKE ?") {
		t.Fatalf("expected employee_name via join: %s", q.SQL)
	}
	if !strings.Contains(q.SQL, "LOWER(e.department) LIKE ?") {
		t.Fatalf("expected department via join: %s", q.SQL)
	}
	if !strings.Contains(q.SQL, "t.end_date < ?") {
		t.Fatalf("expected past window bound: %s", q.SQL)
	}
	// Window date binds as an ISO string, not time.Time.
	if q.Args[0] != "2025-06-15" {
		t.Fatalf("window arg = %v", q.Args[0])
	}
}

func TestTimeOffDurationSQLite(t *testing.T) {
	five := 5
	q := buildSQLite(t, mustCompileTimeOff(t, orgquery.TimeOffIntent{
		Window:      orgquery.WindowPresent,
		DurationMin: &five,
	}))

	if !strings.Contains(q.SQL, "CAST(julianday(t.end_date) - julianday(t.start_date) AS INTEGER) + 1 >= ?") {
		t.Fatalf("expected julianday duration: %s", q.SQL)
	}
}

func TestTimeOffDurationPostgres(t *testing.T) {
	five := 5
	p := mustCompileTimeOff(t, orgquery.TimeOffIntent{
		Window:      orgquery.WindowPresent,
		DurationMin: &five,
	})
	q, err := BuildSQL(p, postgres.Dialect{}, sqlbuilder.PlaceholderDollar)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.Contains(q.SQL, "(t.end_date - t.start_date) + 1 >= $3") {
		t.Fatalf("expected date subtraction with dollar placeholder: %s", q.SQL)
	}
	if strings.Contains(q.SQL, "?") {
		t.Fatalf("question placeholder leaked into postgres SQL: %s", q.SQL)
	}
}

func TestDollarPlaceholdersNumberInOrder(t *testing.T) {
	p := mustCompileEmployee(t, orgquery.EmployeeIntent{
		Name:     "carol",
		Location: []string{"Lisbon", "Porto"},
	})
	q, err := BuildSQL(p, postgres.Dialect{}, sqlbuilder.PlaceholderDollar)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, ph := range []string{"$1", "$2", "$3"} {
		if !strings.Contains(q.SQL, ph) {
			t.Fatalf("missing %s: %s", ph, q.SQL)
		}
	}
	if len(q.Args) != 3 {
		t.Fatalf("args = %v", q.Args)
	}
}

func TestTimeOffOverlapArgOrder(t *testing.T) {
	q := buildSQLite(t, mustCompileTimeOff(t, orgquery.TimeOffIntent{
		Window:   orgquery.WindowPresent,
		FromDate: "2025-07-01",
		ToDate:   "2025-07-31",
	}))

	// Window contributes two args, the overlap's three arms six more.
	want := []any{
		"2025-06-15", "2025-06-15",
		"2025-07-01", "2025-07-31",
		"2025-07-01", "2025-07-31",
		"2025-07-01", "2025-07-31",
	}
	if len(q.Args) != len(want) {
		t.Fatalf("args = %v", q.Args)
	}
	for i, w := range want {
		if q.Args[i] != w {
			t.Fatalf("arg[%d] = %v, want %v", i, q.Args[i], w)
		}
	}
}
