package observer

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type recordingObserver struct {
	name string
	mu   sync.Mutex
	got  []SubmissionEvent
	done chan struct{}
}

func newRecordingObserver(name string, expect int) *recordingObserver {
	return &recordingObserver{name: name, done: make(chan struct{}, expect)}
}

func (r *recordingObserver) OnEvent(_ context.Context, event SubmissionEvent) {
	r.mu.Lock()
	r.got = append(r.got, event)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recordingObserver) GetObserverName() string { return r.name }

func (r *recordingObserver) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for event %d on %s", i+1, r.name)
		}
	}
}

type panickingObserver struct{}

func (panickingObserver) OnEvent(context.Context, SubmissionEvent) { panic("boom") }
func (panickingObserver) GetObserverName() string                  { return "panicking" }

func TestEventPublisher_NotifiesAllObservers(t *testing.T) {
	p := NewEventPublisher()
	a := newRecordingObserver("a", 1)
	b := newRecordingObserver("b", 1)
	p.Subscribe(a)
	p.Subscribe(b)
	p.Subscribe(panickingObserver{})

	p.NotifyObservers(context.Background(), SubmissionEvent{EventType: SubmissionStarted, SubmissionID: "id-1"})

	a.wait(t, 1)
	b.wait(t, 1)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.got[0].SubmissionID != "id-1" {
		t.Errorf("Expected submission id-1, got %s", a.got[0].SubmissionID)
	}
	if a.got[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be filled in")
	}
}

func TestEventPublisher_Unsubscribe(t *testing.T) {
	p := NewEventPublisher()
	a := newRecordingObserver("a", 1)
	b := newRecordingObserver("b", 1)
	p.Subscribe(a)
	p.Subscribe(b)
	p.Unsubscribe(a)

	p.NotifyObservers(context.Background(), SubmissionEvent{EventType: SubmissionStarted})
	b.wait(t, 1)

	select {
	case <-a.done:
		t.Error("Expected unsubscribed observer to receive nothing")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMetricsObserver_Counts(t *testing.T) {
	o := NewMetricsObserver()
	ctx := context.Background()

	o.OnEvent(ctx, SubmissionEvent{EventType: SubmissionStarted})
	o.OnEvent(ctx, SubmissionEvent{EventType: SubmissionCompleted, Cards: 5, Duration: time.Second})
	o.OnEvent(ctx, SubmissionEvent{EventType: SubmissionStarted})
	o.OnEvent(ctx, SubmissionEvent{EventType: SubmissionFailed, ErrorType: "network"})
	o.OnEvent(ctx, SubmissionEvent{EventType: SubmissionStarted})
	o.OnEvent(ctx, SubmissionEvent{EventType: SubmissionRejected})
	o.OnEvent(ctx, SubmissionEvent{EventType: SubmissionBusy})

	m := o.GetMetrics()
	want := map[string]int64{
		"total_submissions":     3,
		"completed_submissions": 1,
		"failed_submissions":    1,
		"rejected_submissions":  1,
		"busy_submissions":      1,
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("Expected %s=%d, got %v", k, v, m[k])
		}
	}
}

func TestLoggingObserver_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	o := NewLoggingObserver(l)
	o.OnEvent(context.Background(), SubmissionEvent{
		EventType:    SubmissionCompleted,
		SubmissionID: "id-2",
		Cards:        3,
		Duration:     1500 * time.Millisecond,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["submission_id"] != "id-2" {
		t.Errorf("Expected submission_id id-2, got %v", entry["submission_id"])
	}
	if entry["cards"] != float64(3) {
		t.Errorf("Expected cards 3, got %v", entry["cards"])
	}
	if entry["duration_ms"] != float64(1500) {
		t.Errorf("Expected duration_ms 1500, got %v", entry["duration_ms"])
	}
	if entry["level"] != "info" {
		t.Errorf("Expected info level, got %v", entry["level"])
	}
}
