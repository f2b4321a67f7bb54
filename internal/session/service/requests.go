package service

import (
	"time"

	"github.com/google/uuid"

	dErrors "perf-service/pkg/domain-errors"
)

// MetricRequest is one caller-supplied metric in direct registration.
type MetricRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// RegisterRequest is the direct registration payload: the caller supplies the
// finished session as-is, score and metrics included.
type RegisterRequest struct {
	AthleteID           uuid.UUID       `json:"athlete_id"`
	RoutineAssignmentID *uuid.UUID      `json:"routine_assignment_id,omitempty"`
	StartTime           time.Time       `json:"start_time"`
	EndTime             time.Time       `json:"end_time"`
	RPEScore            *int            `json:"rpe_score,omitempty"`
	Metrics             []MetricRequest `json:"metrics,omitempty"`
}

func (r RegisterRequest) Validate() error {
	if r.AthleteID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "athlete_id is required")
	}
	if r.StartTime.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "start_time is required")
	}
	if r.EndTime.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "end_time is required")
	}
	return nil
}

// SectionRequest is one timed workout section in structured registration.
type SectionRequest struct {
	Category           string `json:"category"`
	TimeUsedSeconds    int    `json:"time_used_seconds"`
	TargetTimeSeconds  int    `json:"target_time_seconds"`
	ExercisesCompleted int    `json:"exercises_completed"`
}

// TrainingRequest is the structured registration payload. The athlete id
// comes from the authenticated principal, never the body.
type TrainingRequest struct {
	AssignmentID         uuid.UUID        `json:"assignment_id"`
	StartTime            time.Time        `json:"start_time"`
	EndTime              time.Time        `json:"end_time"`
	TotalDurationSeconds int              `json:"total_duration_seconds"`
	TargetTimeSeconds    int              `json:"target_time_seconds"`
	ExercisesCompleted   int              `json:"exercises_completed"`
	Sections             []SectionRequest `json:"sections"`
}

func (r TrainingRequest) Validate() error {
	if r.AssignmentID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "assignment_id is required")
	}
	if r.StartTime.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "start_time is required")
	}
	if r.EndTime.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "end_time is required")
	}
	if r.TotalDurationSeconds < 0 {
		return dErrors.New(dErrors.CodeValidation, "total_duration_seconds cannot be negative")
	}
	if r.TargetTimeSeconds <= 0 {
		return dErrors.New(dErrors.CodeValidation, "target_time_seconds must be positive")
	}
	if r.ExercisesCompleted < 0 {
		return dErrors.New(dErrors.CodeValidation, "exercises_completed cannot be negative")
	}
	if len(r.Sections) == 0 {
		return dErrors.New(dErrors.CodeValidation, "sections are required")
	}
	for _, section := range r.Sections {
		if section.Category == "" {
			return dErrors.New(dErrors.CodeValidation, "section category cannot be empty")
		}
		if section.TimeUsedSeconds < 0 {
			return dErrors.New(dErrors.CodeValidation, "section time_used_seconds cannot be negative")
		}
		if section.TargetTimeSeconds <= 0 {
			return dErrors.New(dErrors.CodeValidation, "section target_time_seconds must be positive")
		}
		if section.ExercisesCompleted < 0 {
			return dErrors.New(dErrors.CodeValidation, "section exercises_completed cannot be negative")
		}
	}
	return nil
}
