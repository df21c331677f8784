package domain

import (
	"fmt"
	"math"
	"sort"
)

// maxActionCount is the largest action count a float64 represents exactly.
const maxActionCount = 1 << 53

// WorkoutLayout describes how a sensor code is turned into a workout.
type WorkoutLayout struct {
	Kind   Kind
	Params []string
	build  func(Session, []float64) (Workout, error)
}

// Arity is the number of sensor values the code expects.
func (s WorkoutLayout) Arity() int { return len(s.Params) }

var workoutCatalog = map[string]WorkoutLayout{
	"SWM": {
		Kind:   KindSwimming,
		Params: []string{"action", "duration_h", "weight_kg", "pool_length_m", "pool_laps"},
		build: func(s Session, extra []float64) (Workout, error) {
			length, laps := extra[0], extra[1]
			if length < 0 || laps < 0 {
				return nil, fmt.Errorf("%w: pool geometry must be non-negative (length=%v, laps=%v)", ErrDegenerateInput, length, laps)
			}
			return Swimming{Session: s, PoolLength: length, PoolLaps: laps}, nil
		},
	},
	"RUN": {
		Kind:   KindRunning,
		Params: []string{"action", "duration_h", "weight_kg"},
		build: func(s Session, _ []float64) (Workout, error) {
			return Running{Session: s}, nil
		},
	},
	"WLK": {
		Kind:   KindWalking,
		Params: []string{"action", "duration_h", "weight_kg", "height_cm"},
		build: func(s Session, extra []float64) (Workout, error) {
			height := extra[0]
			if height <= 0 {
				return nil, fmt.Errorf("%w: height must be > 0, got %v", ErrDegenerateInput, height)
			}
			return Walking{Session: s, Height: height}, nil
		},
	},
}

// Codes lists the supported sensor codes in stable order.
func Codes() []string {
	codes := make([]string, 0, len(workoutCatalog))
	for code := range workoutCatalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup resolves a sensor code without constructing a workout.
func Lookup(code string) (WorkoutLayout, error) {
	layout, ok := workoutCatalog[code]
	if !ok {
		return WorkoutLayout{}, fmt.Errorf("%w: %q", ErrUnknownWorkoutCode, code)
	}
	return layout, nil
}

// CreateWorkout binds the sensor values positionally to the workout registered for code.
func CreateWorkout(code string, values []float64) (Workout, error) {
	layout, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	if len(values) != layout.Arity() {
		return nil, fmt.Errorf("%w: %s expects %d values (%v), got %d", ErrInvalidArity, code, layout.Arity(), layout.Params, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s is not finite", ErrDegenerateInput, layout.Params[i])
		}
	}

	session, err := newSession(values[0], values[1], values[2])
	if err != nil {
		return nil, err
	}
	w, err := layout.build(session, values[3:])
	if err != nil {
		return nil, err
	}
	if msg := Summarize(w); !finite(msg.Distance, msg.Speed, msg.Calories) {
		return nil, fmt.Errorf("%w: %s values overflow distance, speed or calories", ErrDegenerateInput, code)
	}
	return w, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func newSession(action, duration, weight float64) (Session, error) {
	if action < 0 || action != math.Trunc(action) || action > maxActionCount {
		return Session{}, fmt.Errorf("%w: action count must be a non-negative whole number, got %v", ErrDegenerateInput, action)
	}
	if duration <= 0 {
		return Session{}, fmt.Errorf("%w: duration must be > 0, got %v", ErrDegenerateInput, duration)
	}
	if weight < 0 {
		return Session{}, fmt.Errorf("%w: weight must be non-negative, got %v", ErrDegenerateInput, weight)
	}
	return Session{Action: int(action), Duration: duration, Weight: weight}, nil
}
