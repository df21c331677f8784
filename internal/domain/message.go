package domain

import (
	"context"
	"time"
)

// SensorPackage is one record delivered by the tracker's sensor block.
type SensorPackage struct {
	Code   string    `json:"workout_type"`
	Values []float64 `json:"data"`
}

// InfoMessage is the computed snapshot of one workout.
type InfoMessage struct {
	WorkoutType string  `json:"workout_type"`
	Duration    float64 `json:"duration_h"`
	Distance    float64 `json:"distance_km"`
	Speed       float64 `json:"mean_speed_kmh"`
	Calories    float64 `json:"calories"`
}

// Summary is a processed package together with its rendered message, as stored and published.
type Summary struct {
	ID          string
	Code        string
	Values      []float64
	Message     InfoMessage
	Text        string
	ProcessedAt time.Time
}

// Cursor models the pagination token over stored summaries.
type Cursor struct {
	ProcessedAt time.Time
	ID          string
}

// SummaryRepository captures persistence operations for summaries.
type SummaryRepository interface {
	Save(ctx context.Context, summary Summary) error
	Get(ctx context.Context, id string) (*Summary, error)
	ListRecent(ctx context.Context, cursor *Cursor, limit int) ([]Summary, *Cursor, error)
}
