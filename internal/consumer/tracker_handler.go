package consumer

import (
	"context"

	"example.com/ftracker/internal/domain"
)

type packageProcessor interface {
	Process(context.Context, domain.SensorPackage) (domain.Summary, error)
}

// TrackerHandler processes each consumed package through the tracker service.
type TrackerHandler struct {
	tracker packageProcessor
}

// NewTrackerHandler constructs a handler backed by the tracker service.
func NewTrackerHandler(tracker packageProcessor) *TrackerHandler {
	return &TrackerHandler{tracker: tracker}
}

// Handle summarizes the package; sinks configured on the service persist and publish it.
func (h *TrackerHandler) Handle(ctx context.Context, msg Message) error {
	_, err := h.tracker.Process(ctx, msg.Package)
	return err
}
