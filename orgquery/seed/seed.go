package seed

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/orgquery/orgquery/orgquery"
	"github.com/orgquery/orgquery/orgquery/storage"
)

var firstNames = []string{
	"Alice", "Bruno", "Carla", "Daniel", "Elena", "Farid", "Grace", "Hugo",
	"Ines", "Jonas", "Katya", "Liam", "Marta", "Noah", "Olivia", "Pedro",
	"Quinn", "Rita", "Sven", "Tara", "Umar", "Vera", "Wesley", "Xenia",
	"Yusuf", "Zoe",
}

var lastNames = []string{
	"Almeida", "Becker", "Costa", "Dubois", "Eriksen", "Ferreira", "Garcia",
	"Haddad", "Ivanov", "Jensen", "Kowalski", "Lopes", "Moreau", "Novak",
	"Okafor", "Pereira", "Quaranta", "Rossi", "Silva", "Tanaka", "Ueda",
	"Vieira", "Weber", "Xu", "Yamamoto", "Zhang",
}

var nationalities = []string{
	"Portuguese", "German", "French", "Brazilian", "Japanese", "Nigerian",
	"Polish", "Italian", "American", "British",
}

// Dataset is the generated roster plus its leave history. Generation is a
// pure function of the profile, so the same profile always produces the
// same dataset.
type Dataset struct {
	Employees []orgquery.Employee
	TimeOff   []orgquery.TimeOffRecord
}

// Generate builds the dataset. Employee 1 is the organizational root and
// reports to itself; every other employee reports to a manager in their
// own department. Department assignment follows the profile weights.
func Generate(p Profile) Dataset {
	rng := rand.New(rand.NewSource(p.Seed))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var ds Dataset

	ceo := makeEmployee(rng, 1, now, p.Locations)
	ceo.Department = "Executive"
	ceo.IsManager = true
	ceo.IsActive = true
	ceo.ReportsTo = 1
	ceo.Client = "Internal"
	ds.Employees = append(ds.Employees, ceo)

	// Department managers first, so everyone else has someone to report to.
	managersByDept := make(map[string][]int64)
	nextID := int64(2)
	for _, d := range p.Departments {
		n := 1 + rng.Intn(3)
		for i := 0; i < n && int(nextID) <= p.Headcount; i++ {
			e := makeEmployee(rng, nextID, now, p.Locations)
			e.Department = d.Name
			e.IsManager = true
			e.IsActive = true
			e.ReportsTo = 1
			e.Client = pick(rng, p.Clients)
			ds.Employees = append(ds.Employees, e)
			managersByDept[d.Name] = append(managersByDept[d.Name], e.ID)
			nextID++
		}
	}

	for int(nextID) <= p.Headcount {
		e := makeEmployee(rng, nextID, now, p.Locations)
		dept := pickDepartment(rng, p.Departments)
		e.Department = dept.Name
		e.IsManager = false
		e.IsActive = rng.Float64() >= p.InactiveRate
		mgrs := managersByDept[dept.Name]
		e.ReportsTo = mgrs[rng.Intn(len(mgrs))]
		e.Client = pick(rng, p.Clients)
		ds.Employees = append(ds.Employees, e)
		nextID++
	}

	recID := int64(1)
	for _, e := range ds.Employees {
		for i := 0; i < rng.Intn(p.TimeOffPerEmployee+1); i++ {
			ds.TimeOff = append(ds.TimeOff, makeTimeOff(rng, recID, e.ID, p, now))
			recID++
		}
	}
	return ds
}

func makeEmployee(rng *rand.Rand, id int64, now time.Time, locations []string) orgquery.Employee {
	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	full := first + " " + last
	handle := strings.ToLower(first + "." + last)
	birthYear := 1965 + rng.Intn(40)
	birth := time.Date(birthYear, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)

	return orgquery.Employee{
		ID:          id,
		UpdatedAt:   now,
		FullName:    full,
		Nationality: pick(rng, nationalities),
		Location:    pick(rng, locations),
		LinkedIn:    "https://linkedin.com/in/" + handle,
		TwitterX:    "https://x.com/" + handle,
		Facebook:    "https://facebook.com/" + handle,
		Email:       fmt.Sprintf("%s%d@example.com", handle, id),
		BirthDate:   birth,
	}
}

func makeTimeOff(rng *rand.Rand, id, employeeID int64, p Profile, now time.Time) orgquery.TimeOffRecord {
	// Ranges land within a year either side of the reference date, with
	// inclusive lengths of 1 to 14 days.
	start := now.AddDate(0, 0, rng.Intn(730)-365)
	days := 1 + rng.Intn(14)
	end := start.AddDate(0, 0, days-1)

	statuses := []orgquery.Status{
		orgquery.StatusApproved, orgquery.StatusApproved,
		orgquery.StatusPending, orgquery.StatusRejected,
	}

	return orgquery.TimeOffRecord{
		ID:         id,
		EmployeeID: employeeID,
		PolicyType: pick(rng, p.Policies),
		StartDate:  start,
		EndDate:    end,
		LeaveType:  "paid",
		Status:     statuses[rng.Intn(len(statuses))],
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.Intn(len(xs))]
}

func pickDepartment(rng *rand.Rand, depts []Department) Department {
	var total float64
	for _, d := range depts {
		total += d.Weight
	}
	r := rng.Float64() * total
	for _, d := range depts {
		r -= d.Weight
		if r < 0 {
			return d
		}
	}
	return depts[len(depts)-1]
}

// Insert writes the dataset into an open store using the adapter's
// statement templates. Employees go first so the time-off foreign keys
// resolve.
func Insert(ctx context.Context, db *sql.DB, sqlt storage.SQL, ds Dataset) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return orgquery.Wrap(orgquery.ErrSQL, "starting seed transaction", err)
	}
	defer tx.Rollback()

	for _, e := range ds.Employees {
		_, err := tx.ExecContext(ctx, sqlt.InsertEmployee,
			e.ID, e.UpdatedAt.Format(time.RFC3339), e.FullName, e.Nationality,
			e.Department, e.IsManager, e.Location, e.LinkedIn, e.TwitterX, e.Facebook,
			e.Email, e.IsActive, e.ReportsTo, e.BirthDate.Format("2006-01-02"), e.Client)
		if err != nil {
			return orgquery.Wrap(orgquery.ErrSQL, fmt.Sprintf("inserting employee %d", e.ID), err)
		}
	}

	for _, r := range ds.TimeOff {
		_, err := tx.ExecContext(ctx, sqlt.InsertTimeOff,
			r.ID, r.EmployeeID, r.PolicyType,
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"),
			r.LeaveType, string(r.Status),
			r.CreatedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339))
		if err != nil {
			return orgquery.Wrap(orgquery.ErrSQL, fmt.Sprintf("inserting time-off %d", r.ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return orgquery.Wrap(orgquery.ErrSQL, "committing seed transaction", err)
	}
	return nil
}
