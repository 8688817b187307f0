package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures.
// Worker IDs are assigned in insertion order, which is also the order
// hand-off target resolution uses (first active worker of a role).
func SeedFixtures(database *sql.DB) error {
	workers := []struct {
		name string
		role string
	}{
		{"Asha Pillai", "telecaller"},
		{"Ravi Kumar", "telecaller"},
		{"Meera Joshi", "hr"},
		{"Vikram Shetty", "hr"},
		{"Divya Nair", "sales"},
		{"Sanjay Rao", "manager"},
	}
	for _, w := range workers {
		if _, err := database.Exec(
			"INSERT INTO workers (name, role, active) VALUES (?, ?, 1)",
			w.name, w.role,
		); err != nil {
			return fmt.Errorf("seed workers: %w", err)
		}
	}

	leads := []struct {
		name, phone, source, position string
		salary                        int64
	}{
		{"Kiran Desai", "+91-98200-11223", "walk-in", "Accountant", 35000},
		{"Pooja Menon", "+91-98100-44556", "referral", "Backend Developer", 90000},
		{"Arjun Bhat", "+91-99300-77889", "job-portal", "Sales Executive", 28000},
	}
	for _, l := range leads {
		if _, err := database.Exec(
			"INSERT INTO leads (name, phone, source, position, expected_salary, status) VALUES (?, ?, ?, ?, ?, 'new')",
			l.name, l.phone, l.source, l.position, l.salary,
		); err != nil {
			return fmt.Errorf("seed leads: %w", err)
		}
	}

	return nil
}
