package models

import "time"

type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "OPEN"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusClosed     ProjectStatus = "CLOSED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

// Project is read-mostly context consumed by the workspace: role derivation
// and the progress status clamp depend on it, nothing here mutates it.
type Project struct {
	ID                     int64         `json:"id"`
	Title                  string        `json:"title"`
	Description            string        `json:"description"`
	Status                 ProjectStatus `json:"status"`
	Deadline               *time.Time    `json:"deadline"`
	ClientUsername         string        `json:"client_username"`
	AssignedTalentUsername string        `json:"assigned_talent_username"`
	BudgetMin              float64       `json:"budget_min"`
	BudgetMax              float64       `json:"budget_max"`
	CreatedAt              time.Time     `json:"created_at"`
}
