package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-safety-poster/internal/metrics"
)

// SubmissionEvent represents a step in one submit cycle
type SubmissionEvent struct {
	EventType    EventType     `json:"event_type"`
	Timestamp    time.Time     `json:"timestamp"`
	SubmissionID string        `json:"submission_id"`
	Endpoint     string        `json:"endpoint,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	Cards        int           `json:"cards"`
	ErrorType    string        `json:"error_type,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// EventType represents the type of submission event
type EventType string

const (
	SubmissionStarted   EventType = "submission_started"
	SubmissionRejected  EventType = "submission_rejected"
	SubmissionCompleted EventType = "submission_completed"
	SubmissionFailed    EventType = "submission_failed"
	SubmissionBusy      EventType = "submission_busy"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event SubmissionEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event SubmissionEvent)
}

// LoggingObserver logs submission events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles submission events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event SubmissionEvent) {
	fields := logrus.Fields{
		"event_type":    event.EventType,
		"submission_id": event.SubmissionID,
	}
	if event.Endpoint != "" {
		fields["endpoint"] = event.Endpoint
	}
	if event.Duration > 0 {
		fields["duration_ms"] = event.Duration.Milliseconds()
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
		fields["error_type"] = event.ErrorType
	}

	switch event.EventType {
	case SubmissionStarted:
		o.logger.WithFields(fields).Info("Poster submission started")
	case SubmissionCompleted:
		fields["cards"] = event.Cards
		o.logger.WithFields(fields).Info("Poster submission completed")
	case SubmissionRejected:
		o.logger.WithFields(fields).Warn("Poster submission rejected")
	case SubmissionFailed:
		o.logger.WithFields(fields).Error("Poster submission failed")
	case SubmissionBusy:
		o.logger.WithFields(fields).Warn("Poster submission ignored while another is in flight")
	default:
		o.logger.WithFields(fields).Info("Submission event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver feeds submission events into the prometheus collectors
// and keeps in-process counters for the health endpoint.
type MetricsObserver struct {
	mu        sync.RWMutex
	total     int64
	completed int64
	rejected  int64
	failed    int64
	busy      int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles submission events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event SubmissionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case SubmissionStarted:
		o.total++
	case SubmissionCompleted:
		o.completed++
		metrics.IncSubmission("completed")
		metrics.ObserveGenerateDuration(event.Duration)
		metrics.AddCardsRendered(event.Cards)
	case SubmissionRejected:
		o.rejected++
		metrics.IncSubmission("rejected")
	case SubmissionFailed:
		o.failed++
		metrics.IncSubmission("failed")
		metrics.IncError("generator", event.ErrorType)
		if event.Duration > 0 {
			metrics.ObserveGenerateDuration(event.Duration)
		}
	case SubmissionBusy:
		o.busy++
		metrics.IncSubmission("busy")
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return map[string]interface{}{
		"total_submissions":     o.total,
		"completed_submissions": o.completed,
		"rejected_submissions":  o.rejected,
		"failed_submissions":    o.failed,
		"busy_submissions":      o.busy,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event. Each observer runs in
// its own goroutine so a slow observer never holds up a page render.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event SubmissionEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// The request context is cancelled once the page is written.
	ctx = context.WithoutCancel(ctx)
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
