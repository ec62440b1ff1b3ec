// Package seed generates a deterministic demo roster with time-off
// history. The shape of the generated org is driven by a profile, loadable
// from YAML so demos can tune headcount and department mix without code
// changes.
package seed

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orgquery/orgquery/orgquery"
)

type Department struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

type Profile struct {
	Seed      int64 `yaml:"seed"`
	Headcount int   `yaml:"headcount"`

	Departments []Department `yaml:"departments"`
	Locations   []string     `yaml:"locations"`
	Clients     []string     `yaml:"clients"`
	Policies    []string     `yaml:"policies"`

	// InactiveRate is the fraction of non-root employees marked inactive.
	InactiveRate float64 `yaml:"inactive_rate"`
	// TimeOffPerEmployee is the maximum number of leave records generated
	// per employee (uniform 0..N).
	TimeOffPerEmployee int `yaml:"time_off_per_employee"`
}

// DefaultProfile mirrors the demo dataset: engineering-heavy departments,
// a handful of sites and the standard leave policies.
func DefaultProfile() Profile {
	return Profile{
		Seed:      12345,
		Headcount: 120,
		Departments: []Department{
			{Name: "Engineering", Weight: 0.4},
			{Name: "Marketing", Weight: 0.2},
			{Name: "Sales", Weight: 0.2},
			{Name: "HR", Weight: 0.1},
			{Name: "Finance", Weight: 0.1},
		},
		Locations: []string{
			"New York", "London", "Berlin", "Lisbon", "Singapore", "Remote",
		},
		Clients: []string{
			"Acme Corp", "Globex", "Initech", "Umbrella", "Internal",
		},
		Policies: []string{
			"Vacation Leave", "Sick Leave", "Annual Leave",
			"Birthday Day Off", "Personal Leave", "Parental Leave",
		},
		InactiveRate:       0.05,
		TimeOffPerEmployee: 4,
	}
}

// LoadProfile reads a profile from a YAML file. Zero-valued fields fall
// back to the default profile's values.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()

	raw, err := os.ReadFile(path)
	if err != nil {
		return p, orgquery.Wrap(orgquery.ErrIO, "reading seed profile", err)
	}

	var loaded Profile
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return p, orgquery.Wrap(orgquery.ErrIO, "parsing seed profile", err)
	}
	return mergeProfile(p, loaded), nil
}

func mergeProfile(base, over Profile) Profile {
	if over.Seed != 0 {
		base.Seed = over.Seed
	}
	if over.Headcount != 0 {
		base.Headcount = over.Headcount
	}
	if len(over.Departments) > 0 {
		base.Departments = over.Departments
	}
	if len(over.Locations) > 0 {
		base.Locations = over.Locations
	}
	if len(over.Clients) > 0 {
		base.Clients = over.Clients
	}
	if len(over.Policies) > 0 {
		base.Policies = over.Policies
	}
	if over.InactiveRate != 0 {
		base.InactiveRate = over.InactiveRate
	}
	if over.TimeOffPerEmployee != 0 {
		base.TimeOffPerEmployee = over.TimeOffPerEmployee
	}
	return base
}
