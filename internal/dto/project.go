package dto

import (
	"time"

	"github.com/talentforge/workspace/internal/models"
)

// ProjectDTO is a project as the backend serializes it.
type ProjectDTO struct {
	ID                     int64                `json:"id"`
	Title                  string               `json:"title"`
	Description            string               `json:"description"`
	Status                 models.ProjectStatus `json:"status"`
	Deadline               *time.Time           `json:"deadline"`
	ClientUsername         string               `json:"client_username"`
	AssignedTalentUsername string               `json:"assigned_talent_username"`
	BudgetMin              float64              `json:"budget_min"`
	BudgetMax              float64              `json:"budget_max"`
	CreatedAt              time.Time            `json:"created_at"`
}

// ProjectFromDTO converts a ProjectDTO to the local Project model.
func ProjectFromDTO(d ProjectDTO) models.Project {
	return models.Project{
		ID:                     d.ID,
		Title:                  d.Title,
		Description:            d.Description,
		Status:                 d.Status,
		Deadline:               d.Deadline,
		ClientUsername:         d.ClientUsername,
		AssignedTalentUsername: d.AssignedTalentUsername,
		BudgetMin:              d.BudgetMin,
		BudgetMax:              d.BudgetMax,
		CreatedAt:              d.CreatedAt,
	}
}
