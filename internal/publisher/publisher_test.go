package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/ftracker/internal/domain"
	"example.com/ftracker/internal/events"
)

func TestSummaryPublisherWritesEvent(t *testing.T) {
	writer := &stubWriter{}
	pub := NewSummaryPublisher(writer, "workout_summaries")

	summary := domain.Summary{
		ID:          "3f1c8f0e-3a9b-4a63-9d07-5b8f1f0f2d11",
		Code:        "RUN",
		Values:      []float64{15000, 1, 75},
		Message:     domain.InfoMessage{WorkoutType: "Running", Duration: 1, Distance: 9.75, Speed: 9.75, Calories: 699.75},
		Text:        "Workout type: Running; Duration: 1.000 h; Distance: 9.750 km; Avg. speed: 9.750 km/h; Calories burned: 699.750.",
		ProcessedAt: time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, pub.Record(context.Background(), summary))
	require.Equal(t, "workout_summaries", writer.topic)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	require.Equal(t, []byte("RUN"), msg.Key)
	require.Equal(t, summary.ProcessedAt, msg.Time)
	require.Contains(t, msg.Headers, kafka.Header{Key: "event_type", Value: []byte(events.WorkoutSummarizedType)})

	var evt events.WorkoutSummarized
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	require.Equal(t, summary.ID, evt.SummaryID)
	require.Equal(t, "Running", evt.WorkoutType)
	require.Equal(t, summary.Values, evt.SensorValues)
	require.Equal(t, 699.75, evt.Calories)
	require.Equal(t, summary.Text, evt.Message)
}

func TestSummaryPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("leader not available")
	pub := NewSummaryPublisher(&stubWriter{err: boom}, "workout_summaries")

	err := pub.Record(context.Background(), domain.Summary{ID: "id-1", Code: "SWM"})
	require.ErrorIs(t, err, boom)
}

func TestSummaryPublisherRejectsUnencodableSummary(t *testing.T) {
	writer := &stubWriter{}
	pub := NewSummaryPublisher(writer, "workout_summaries")

	err := pub.Record(context.Background(), domain.Summary{
		ID:      "id-2",
		Code:    "RUN",
		Message: domain.InfoMessage{WorkoutType: "Running", Speed: math.Inf(1), Calories: math.Inf(1)},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "encode summary id-2")
	require.Empty(t, writer.messages)
}

type stubWriter struct {
	topic    string
	messages []kafka.Message
	err      error
}

func (w *stubWriter) WriteMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.topic = topic
	w.messages = append(w.messages, msgs...)
	return nil
}
