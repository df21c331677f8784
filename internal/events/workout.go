// Package events defines the payloads the tracker publishes.
package events

import (
	"time"

	"example.com/ftracker/internal/domain"
)

// WorkoutSummarizedType is the event_type header value for WorkoutSummarized.
const WorkoutSummarizedType = "workout.summarized"

// WorkoutSummarized is emitted once per successfully processed sensor package.
type WorkoutSummarized struct {
	SummaryID    string    `json:"summary_id"`
	WorkoutCode  string    `json:"workout_code"`
	WorkoutType  string    `json:"workout_type"`
	SensorValues []float64 `json:"sensor_values"`
	DurationH    float64   `json:"duration_h"`
	DistanceKm   float64   `json:"distance_km"`
	MeanSpeedKmh float64   `json:"mean_speed_kmh"`
	Calories     float64   `json:"calories"`
	Message      string    `json:"message"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// NewWorkoutSummarized builds the event for summary.
func NewWorkoutSummarized(summary domain.Summary) WorkoutSummarized {
	return WorkoutSummarized{
		SummaryID:    summary.ID,
		WorkoutCode:  summary.Code,
		WorkoutType:  summary.Message.WorkoutType,
		SensorValues: summary.Values,
		DurationH:    summary.Message.Duration,
		DistanceKm:   summary.Message.Distance,
		MeanSpeedKmh: summary.Message.Speed,
		Calories:     summary.Message.Calories,
		Message:      summary.Text,
		ProcessedAt:  summary.ProcessedAt,
	}
}
