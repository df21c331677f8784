// Package consumer reads sensor packages from Kafka and feeds them to the tracker.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/ftracker/internal/domain"
)

// Reader exposes the minimal kafka.Reader interface needed by the processor.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler receives decoded sensor packages.
type Handler interface {
	Handle(context.Context, Message) error
}

// Message is a sensor package together with its Kafka coordinates.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	DeviceID  string
	Package   domain.SensorPackage
}

// Option configures optional behaviour for the Processor.
type Option func(*Processor)

// WithLogger overrides the logger used to report errors.
func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor pulls messages from Kafka, decodes them, and dispatches to a Handler.
type Processor struct {
	reader  Reader
	handler Handler
	logger  *log.Logger
}

// NewProcessor constructs a Processor with the provided reader and handler.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{
		reader:  reader,
		handler: handler,
		logger:  log.New(log.Writer(), "[consumer] ", log.LstdFlags|log.Lshortfile),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts a blocking loop that processes Kafka messages until the context is cancelled.
//
// Malformed and rejected packages are committed so they are not redelivered.
// Other handler errors leave the offset uncommitted.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			p.logger.Printf("fetch error: %v", err)
			continue
		}

		decoded, decodeErr := decodeMessage(msg)
		if decodeErr != nil {
			p.logger.Printf("decode error (topic=%s, partition=%d, offset=%d): %v", msg.Topic, msg.Partition, msg.Offset, decodeErr)
			recordDecodeError(msg.Topic)
			p.commit(ctx, msg)
			continue
		}

		if handleErr := p.handler.Handle(ctx, decoded); handleErr != nil {
			if domain.IsRejection(handleErr) {
				p.logger.Printf("skipping package (topic=%s, offset=%d, code=%q): %v", msg.Topic, msg.Offset, decoded.Package.Code, handleErr)
				recordRejected(msg.Topic, domain.RejectionReason(handleErr))
				p.commit(ctx, msg)
				continue
			}
			p.logger.Printf("handler error (topic=%s, offset=%d, code=%q): %v", msg.Topic, msg.Offset, decoded.Package.Code, handleErr)
			recordHandlerError(msg.Topic)
			continue
		}

		if p.commit(ctx, msg) {
			recordProcessed(decoded)
		}
	}
}

func (p *Processor) commit(ctx context.Context, msg kafka.Message) bool {
	if err := p.reader.CommitMessages(ctx, msg); err != nil {
		p.logger.Printf("commit error (topic=%s, offset=%d): %v", msg.Topic, msg.Offset, err)
		return false
	}
	return true
}

func decodeMessage(msg kafka.Message) (Message, error) {
	if len(msg.Value) == 0 {
		return Message{}, errors.New("empty payload")
	}

	var pkg domain.SensorPackage
	if err := json.Unmarshal(msg.Value, &pkg); err != nil {
		return Message{}, fmt.Errorf("invalid sensor package: %w", err)
	}
	if pkg.Code == "" {
		if code, ok := headerValue(msg, "workout_type"); ok {
			pkg.Code = string(code)
		}
	}

	deviceID, _ := headerValue(msg, "device_id")
	return Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		DeviceID:  string(deviceID),
		Package:   pkg,
	}, nil
}

func headerValue(msg kafka.Message, key string) ([]byte, bool) {
	for _, header := range msg.Headers {
		if header.Key == key {
			return header.Value, true
		}
	}
	return nil, false
}
