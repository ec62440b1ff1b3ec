package postgres

import "github.com/orgquery/orgquery/orgquery/storage"

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT
);

CREATE TABLE IF NOT EXISTS employees (
  id          BIGINT PRIMARY KEY,
  updated_at  TIMESTAMPTZ NOT NULL,
  full_name   TEXT NOT NULL,
  nationality TEXT NOT NULL,
  department  TEXT NOT NULL,
  is_manager  BOOLEAN NOT NULL,
  location    TEXT NOT NULL,
  linkedin    TEXT NOT NULL,
  twitter_x   TEXT NOT NULL,
  facebook    TEXT NOT NULL,
  email       TEXT NOT NULL UNIQUE,
  is_active   BOOLEAN NOT NULL DEFAULT TRUE,
  reports_to  BIGINT NOT NULL REFERENCES employees(id),
  birth_date  DATE NOT NULL,
  client      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_employees_reports_to ON employees(reports_to);
CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department);

CREATE TABLE IF NOT EXISTS time_off (
  id          BIGINT PRIMARY KEY,
  employee_id BIGINT NOT NULL REFERENCES employees(id),
  policy_type TEXT NOT NULL,
  start_date  DATE NOT NULL,
  end_date    DATE NOT NULL,
  type        TEXT NOT NULL,
  status      TEXT NOT NULL DEFAULT 'pending',
  created_at  TIMESTAMPTZ NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_time_off_employee_dates ON time_off(employee_id, start_date, end_date);
`

var SQLTemplates = storage.SQL{
	GetMeta: "SELECT value FROM meta WHERE key = $1",
	SetMeta: "INSERT INTO meta (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = excluded.value",

	InsertEmployee: `INSERT INTO employees
  (id, updated_at, full_name, nationality, department, is_manager, location, linkedin, twitter_x, facebook, email, is_active, reports_to, birth_date, client)
  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,

	InsertTimeOff: `INSERT INTO time_off
  (id, employee_id, policy_type, start_date, end_date, type, status, created_at, updated_at)
  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,

	CountEmployees: "SELECT COUNT(*) FROM employees",
	CountTimeOff:   "SELECT COUNT(*) FROM time_off",
}
