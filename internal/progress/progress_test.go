package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentforge/workspace/internal/models"
)

func hours(v float64) *float64 {
	return &v
}

func task(status models.TaskStatus, estimated *float64) models.Task {
	return models.Task{Status: status, EstimatedHours: estimated}
}

func TestCompute_EmptyListUsesStatusEstimate(t *testing.T) {
	tests := []struct {
		name   string
		status models.ProjectStatus
		want   int
	}{
		{"open", models.ProjectStatusOpen, 0},
		{"in progress", models.ProjectStatusInProgress, 25},
		{"completed", models.ProjectStatusCompleted, 100},
		{"closed", models.ProjectStatusClosed, 0},
		{"cancelled", models.ProjectStatusCancelled, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(nil, tt.status)
			assert.Equal(t, tt.want, s.Percentage)
			assert.Equal(t, FormulaStatusBased, s.Formula)
			assert.Equal(t, 0, s.TotalTasks)
		})
	}
}

func TestCompute_EstimatedHoursWeighted(t *testing.T) {
	// Half the estimated hours are done, project in progress: raw 50 is
	// inside [5, 95] and survives the clamp.
	tasks := []models.Task{
		task(models.TaskStatusDone, hours(10)),
		task(models.TaskStatusToDo, hours(10)),
	}

	s := Compute(tasks, models.ProjectStatusInProgress)

	assert.Equal(t, 50, s.Percentage)
	assert.Equal(t, FormulaEstimatedHours, s.Formula)
	assert.Equal(t, 20.0, s.TotalEstimatedHours)
	assert.Equal(t, 10.0, s.CompletedEstimatedHours)
	assert.Equal(t, 2, s.TotalTasks)
	assert.Equal(t, 1, s.CompletedTasks)
}

func TestCompute_TaskCountFallback(t *testing.T) {
	// Zero estimates everywhere: falls back to completed/total.
	tasks := []models.Task{
		task(models.TaskStatusDone, hours(0)),
		task(models.TaskStatusToDo, hours(0)),
	}

	s := Compute(tasks, models.ProjectStatusInProgress)

	assert.Equal(t, 50, s.Percentage)
	assert.Equal(t, FormulaTaskCount, s.Formula)
}

func TestCompute_NilEstimatesCountAsZero(t *testing.T) {
	tasks := []models.Task{
		task(models.TaskStatusDone, nil),
		task(models.TaskStatusToDo, nil),
		task(models.TaskStatusToDo, nil),
	}

	s := Compute(tasks, models.ProjectStatusInProgress)

	assert.Equal(t, 0.0, s.TotalEstimatedHours)
	assert.Equal(t, FormulaTaskCount, s.Formula)
	assert.Equal(t, 33, s.Percentage)
}

func TestCompute_OpenProjectClampsToFive(t *testing.T) {
	// A task marked done pre-assignment must not show near-complete progress.
	tasks := []models.Task{task(models.TaskStatusDone, hours(20))}

	s := Compute(tasks, models.ProjectStatusOpen)

	assert.Equal(t, 5, s.Percentage)
	assert.Equal(t, FormulaEstimatedHours, s.Formula)
}

func TestCompute_InProgressClampBounds(t *testing.T) {
	nothingDone := []models.Task{task(models.TaskStatusToDo, hours(10))}
	s := Compute(nothingDone, models.ProjectStatusInProgress)
	assert.Equal(t, 5, s.Percentage, "never shows 0%% once started")

	allDone := []models.Task{task(models.TaskStatusDone, hours(10))}
	s = Compute(allDone, models.ProjectStatusInProgress)
	assert.Equal(t, 95, s.Percentage, "never shows 100%% until the project completes")
}

func TestCompute_CompletedProjectForcesHundred(t *testing.T) {
	tasks := []models.Task{task(models.TaskStatusToDo, hours(10))}
	s := Compute(tasks, models.ProjectStatusCompleted)
	assert.Equal(t, 100, s.Percentage)

	// Empty list reaches 100 through the status-based branch instead.
	s = Compute(nil, models.ProjectStatusCompleted)
	assert.Equal(t, 100, s.Percentage)
	assert.Equal(t, FormulaStatusBased, s.Formula)
}

func TestCompute_ClosedProjectPlainClamp(t *testing.T) {
	tasks := []models.Task{
		task(models.TaskStatusDone, hours(10)),
		task(models.TaskStatusDone, hours(10)),
	}
	s := Compute(tasks, models.ProjectStatusClosed)
	assert.Equal(t, 100, s.Percentage)
}

func TestCompute_Rounding(t *testing.T) {
	tasks := []models.Task{
		task(models.TaskStatusDone, hours(1)),
		task(models.TaskStatusToDo, hours(2)),
	}
	s := Compute(tasks, models.ProjectStatusInProgress)
	assert.Equal(t, 33, s.Percentage)

	tasks = []models.Task{
		task(models.TaskStatusDone, hours(2)),
		task(models.TaskStatusToDo, hours(1)),
	}
	s = Compute(tasks, models.ProjectStatusInProgress)
	assert.Equal(t, 67, s.Percentage)
}

func TestCompute_Idempotent(t *testing.T) {
	est := hours(7.5)
	act := hours(3)
	tasks := []models.Task{
		{Status: models.TaskStatusDone, EstimatedHours: est, ActualHours: act},
		{Status: models.TaskStatusInReview, EstimatedHours: hours(2)},
		{Status: models.TaskStatusToDo},
	}

	first := Compute(tasks, models.ProjectStatusInProgress)
	second := Compute(tasks, models.ProjectStatusInProgress)
	assert.Equal(t, first, second)
}

func TestCompute_ActualHoursAreSideOutputs(t *testing.T) {
	tasks := []models.Task{
		{Status: models.TaskStatusDone, EstimatedHours: hours(10), ActualHours: hours(99)},
		{Status: models.TaskStatusToDo, EstimatedHours: hours(10), ActualHours: hours(1)},
	}

	s := Compute(tasks, models.ProjectStatusInProgress)

	assert.Equal(t, 50, s.Percentage, "actual hours must not affect the percentage")
	assert.Equal(t, 100.0, s.ActualHoursSpent)
}

func TestEfficiency(t *testing.T) {
	tests := []struct {
		name      string
		completed float64
		total     float64
		actual    float64
		want      string
	}{
		{"not started", 10, 20, 0, EfficiencyNotStarted},
		{"no estimates", 0, 0, 5, EfficiencyNoEstimates},
		{"highly efficient", 13, 20, 10, EfficiencyHighlyEfficient},
		{"ahead of estimate", 11, 20, 10, EfficiencyAhead},
		{"on track", 9, 20, 10, EfficiencyOnTrack},
		{"slightly behind", 7, 20, 10, EfficiencySlightlyBehind},
		{"needs attention", 5, 20, 10, EfficiencyNeedsAttention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summary{
				CompletedEstimatedHours: tt.completed,
				TotalEstimatedHours:     tt.total,
				ActualHoursSpent:        tt.actual,
			}
			assert.Equal(t, tt.want, Efficiency(s))
		})
	}
}
