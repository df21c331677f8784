package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"example.com/ftracker/internal/domain"
	"example.com/ftracker/internal/events"
)

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// SummaryPublisher emits a WorkoutSummarized event for every summary it records.
type SummaryPublisher struct {
	producer messageWriter
	topic    string
}

// NewSummaryPublisher constructs a SummaryPublisher writing to topic.
func NewSummaryPublisher(producer messageWriter, topic string) *SummaryPublisher {
	return &SummaryPublisher{producer: producer, topic: topic}
}

// Record publishes summary keyed by its workout code.
func (p *SummaryPublisher) Record(ctx context.Context, summary domain.Summary) error {
	body, err := json.Marshal(events.NewWorkoutSummarized(summary))
	if err != nil {
		return fmt.Errorf("encode summary %s: %w", summary.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(summary.Code),
		Value: body,
		Time:  summary.ProcessedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(events.WorkoutSummarizedType)},
			{Key: "summary_id", Value: []byte(summary.ID)},
		},
	}
	if err := p.producer.WriteMessages(ctx, p.topic, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", summary.ID, p.topic, err)
	}
	recordPublished(p.topic)
	return nil
}
