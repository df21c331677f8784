// Package domain defines the workout model and the calculations the tracker performs on it.
package domain

import "math"

const (
	stepLength         = 0.65
	swimmingStrokeLen  = 1.38
	metersInKilometer  = 1000
	minutesInHour      = 60
	runningSpeedFactor = 18
	runningSpeedShift  = 20
	walkingWeightRate  = 0.035
	walkingSpeedRate   = 0.029
	swimmingSpeedShift = 1.1
	swimmingWeightRate = 2
)

// Kind tags the workout variant.
type Kind int

const (
	KindRunning Kind = iota + 1
	KindWalking
	KindSwimming
)

var kindNames = map[Kind]string{
	KindRunning:  "Running",
	KindWalking:  "SportsWalking",
	KindSwimming: "Swimming",
}

// String returns the display name used in rendered messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Workout is implemented only by Running, Walking and Swimming.
type Workout interface {
	Kind() Kind
	Common() Session
	workout()
}

// Session holds the readings every workout kind carries.
type Session struct {
	Action   int     // steps or strokes
	Duration float64 // hours
	Weight   float64 // kg
}

// Running is a run measured in steps.
type Running struct {
	Session
}

// Walking is a sports walk measured in steps. Height is in centimetres.
type Walking struct {
	Session
	Height float64
}

// Swimming is a pool swim measured in strokes.
type Swimming struct {
	Session
	PoolLength float64 // metres
	PoolLaps   float64
}

func (Running) Kind() Kind  { return KindRunning }
func (Walking) Kind() Kind  { return KindWalking }
func (Swimming) Kind() Kind { return KindSwimming }

func (w Running) Common() Session  { return w.Session }
func (w Walking) Common() Session  { return w.Session }
func (w Swimming) Common() Session { return w.Session }

func (Running) workout()  {}
func (Walking) workout()  {}
func (Swimming) workout() {}

// Distance returns the covered distance in kilometres.
func Distance(w Workout) float64 {
	s := w.Common()
	switch w.(type) {
	case Swimming:
		return float64(s.Action) * swimmingStrokeLen / metersInKilometer
	default:
		return float64(s.Action) * stepLength / metersInKilometer
	}
}

// MeanSpeed returns the average speed over the whole session in km/h.
// Swimming derives it from pool geometry rather than stroke count.
func MeanSpeed(w Workout) float64 {
	switch v := w.(type) {
	case Swimming:
		return v.PoolLength * v.PoolLaps / metersInKilometer / v.Duration
	default:
		return Distance(w) / w.Common().Duration
	}
}

// Calories returns the estimated energy spent in kcal.
//
// The walking formula divides the squared speed (km/h) by the raw height in
// centimetres and floors the result, matching the tracker firmware. The units
// do not agree; the formula is kept as the devices report it.
func Calories(w Workout) float64 {
	speed := MeanSpeed(w)
	switch v := w.(type) {
	case Running:
		return (runningSpeedFactor*speed - runningSpeedShift) * v.Weight / metersInKilometer * v.Duration * minutesInHour
	case Walking:
		return (walkingWeightRate*v.Weight + math.Floor(speed*speed/v.Height)*walkingSpeedRate*v.Weight) * v.Duration * minutesInHour
	case Swimming:
		return (speed + swimmingSpeedShift) * swimmingWeightRate * v.Weight
	default:
		return 0
	}
}

// Summarize computes the info message for a workout.
func Summarize(w Workout) InfoMessage {
	return InfoMessage{
		WorkoutType: w.Kind().String(),
		Duration:    w.Common().Duration,
		Distance:    Distance(w),
		Speed:       MeanSpeed(w),
		Calories:    Calories(w),
	}
}
