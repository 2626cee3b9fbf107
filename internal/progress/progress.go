// Package progress derives a project's completion percentage from its task
// collection. The calculation is the single shared implementation consumed by
// every dashboard; it is a pure function of its inputs.
package progress

import (
	"math"

	"github.com/talentforge/workspace/internal/models"
)

// Formula identifies which branch of the calculation produced a percentage.
type Formula string

const (
	// FormulaStatusBased estimates from the project status alone, used when
	// the project has no tasks yet.
	FormulaStatusBased Formula = "status-based"
	// FormulaEstimatedHours weights completion by per-task hour estimates.
	FormulaEstimatedHours Formula = "estimated-hours-weighted"
	// FormulaTaskCount falls back to a plain completed/total ratio when no
	// task carries an estimate.
	FormulaTaskCount Formula = "task-count"
)

// Summary is the derived workspace progress. It is recomputed on every task
// list change and never persisted.
type Summary struct {
	Percentage              int     `json:"percentage"`
	TotalTasks              int     `json:"total_tasks"`
	CompletedTasks          int     `json:"completed_tasks"`
	TotalEstimatedHours     float64 `json:"total_estimated_hours"`
	CompletedEstimatedHours float64 `json:"completed_estimated_hours"`
	ActualHoursSpent        float64 `json:"actual_hours_spent"`
	Formula                 Formula `json:"formula_used"`
}

// Compute derives the workspace progress for a task collection.
//
// The percentage is produced in two stages. First the raw value: with no
// tasks at all, a status-based estimate; otherwise the estimated-hours
// weighting, falling back to a completed/total task count when no task
// carries an estimate. Second the status clamp, applied to every branch
// except the empty-list one: an OPEN project shows at most 5%, an IN_PROGRESS
// project stays within [5, 95], a COMPLETED project is forced to 100.
func Compute(tasks []models.Task, projectStatus models.ProjectStatus) Summary {
	s := Summary{TotalTasks: len(tasks)}

	if len(tasks) == 0 {
		s.Formula = FormulaStatusBased
		s.Percentage = statusEstimate(projectStatus)
		return s
	}

	for i := range tasks {
		t := &tasks[i]
		s.TotalEstimatedHours += t.EstimatedOrZero()
		s.ActualHoursSpent += t.ActualOrZero()
		if t.IsCompleted() {
			s.CompletedTasks++
			s.CompletedEstimatedHours += t.EstimatedOrZero()
		}
	}

	var raw int
	if s.TotalEstimatedHours > 0 {
		s.Formula = FormulaEstimatedHours
		raw = roundPct(s.CompletedEstimatedHours * 100 / s.TotalEstimatedHours)
	} else {
		s.Formula = FormulaTaskCount
		raw = roundPct(float64(s.CompletedTasks) * 100 / float64(s.TotalTasks))
	}

	s.Percentage = clampForStatus(raw, projectStatus)
	return s
}

// statusEstimate is the empty-collection fallback.
func statusEstimate(status models.ProjectStatus) int {
	switch status {
	case models.ProjectStatusOpen:
		return 0
	case models.ProjectStatusInProgress:
		return 25
	case models.ProjectStatusCompleted:
		return 100
	default:
		return 0
	}
}

// clampForStatus bounds a raw percentage by the project lifecycle: an open
// project cannot show near-complete progress even if a task was marked done
// pre-assignment, and an in-progress project never shows 0% or 100%.
func clampForStatus(pct int, status models.ProjectStatus) int {
	switch status {
	case models.ProjectStatusOpen:
		return clamp(pct, 0, 5)
	case models.ProjectStatusInProgress:
		return clamp(pct, 5, 95)
	case models.ProjectStatusCompleted:
		return 100
	default:
		return clamp(pct, 0, 100)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundPct(v float64) int {
	return int(math.Round(v))
}

// Efficiency labels.
const (
	EfficiencyNotStarted      = "Not started"
	EfficiencyNoEstimates     = "No time estimates"
	EfficiencyHighlyEfficient = "Highly efficient"
	EfficiencyAhead           = "Ahead of estimate"
	EfficiencyOnTrack         = "On track"
	EfficiencySlightlyBehind  = "Slightly behind"
	EfficiencyNeedsAttention  = "Needs attention"
)

// Efficiency classifies the ratio of completed estimated hours to actual
// hours spent into a display band.
func Efficiency(s Summary) string {
	if s.ActualHoursSpent == 0 {
		return EfficiencyNotStarted
	}
	if s.TotalEstimatedHours == 0 {
		return EfficiencyNoEstimates
	}

	ratio := s.CompletedEstimatedHours * 100 / s.ActualHoursSpent
	switch {
	case ratio > 120:
		return EfficiencyHighlyEfficient
	case ratio > 100:
		return EfficiencyAhead
	case ratio > 80:
		return EfficiencyOnTrack
	case ratio > 60:
		return EfficiencySlightlyBehind
	default:
		return EfficiencyNeedsAttention
	}
}
