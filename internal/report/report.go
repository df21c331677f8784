// Package report renders workout summaries as text.
package report

import (
	"fmt"

	"example.com/ftracker/internal/domain"
)

const messageTemplate = "Workout type: %s; Duration: %.3f h; Distance: %.3f km; Avg. speed: %.3f km/h; Calories burned: %.3f."

// Render formats msg as a single line.
func Render(msg domain.InfoMessage) string {
	return fmt.Sprintf(messageTemplate, msg.WorkoutType, msg.Duration, msg.Distance, msg.Speed, msg.Calories)
}
