package orgquery

import "time"

// Status of a time-off request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Window classifies time-off records relative to a reference date.
type Window string

const (
	WindowPast    Window = "past"
	WindowPresent Window = "present"
	WindowFuture  Window = "future"
)

// Employee is a roster row. ReportsTo always resolves to an existing
// employee id; the organizational root reports to itself.
type Employee struct {
	ID          int64     `json:"id"`
	UpdatedAt   time.Time `json:"updated_at"`
	FullName    string    `json:"full_name"`
	Nationality string    `json:"nationality"`
	Department  string    `json:"department"`
	IsManager   bool      `json:"is_manager"`
	Location    string    `json:"location"`
	LinkedIn    string    `json:"linkedin"`
	TwitterX    string    `json:"twitter_x"`
	Facebook    string    `json:"facebook"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	ReportsTo   int64     `json:"reports_to"`
	BirthDate   time.Time `json:"birth_date"`
	Client      string    `json:"client"`
}

// TimeOffRecord is a single leave entry. The date range is inclusive on
// both ends and never empty (EndDate >= StartDate).
type TimeOffRecord struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	PolicyType string    `json:"policy_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	LeaveType  string    `json:"type"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DurationDays is the inclusive day count of the record's range.
func (r TimeOffRecord) DurationDays() int {
	start := truncateDay(r.StartDate)
	end := truncateDay(r.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
