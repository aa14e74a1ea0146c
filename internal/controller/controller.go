// Package controller drives one poster submission: it reads the form,
// validates it, calls the generation endpoint and renders the outcome into
// the UI handles it was given.
package controller

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "go-safety-poster/internal/errors"
	"go-safety-poster/internal/generator"
	"go-safety-poster/internal/observer"
	"go-safety-poster/internal/poster"
)

// ErrSubmitInFlight is returned when a submit arrives while another one
// holding the same guard key has not settled.
var ErrSubmitInFlight = apperrors.NewConflictError(StatusBusy)

// Config wires a Controller.
type Config struct {
	UI        UI
	Generator generator.Generator
	// Endpoint is the absolute URL requests are posted to.
	Endpoint string

	// Guard and GuardKey scope the re-entrancy check. A nil Guard gives the
	// controller its own.
	Guard    *Guard
	GuardKey string

	// Publisher receives lifecycle events; nil disables them.
	Publisher observer.Subject
}

type Controller struct {
	ui        UI
	generator generator.Generator
	endpoint  string
	guard     *Guard
	guardKey  string
	publisher observer.Subject
	now       func() time.Time
}

func New(cfg Config) *Controller {
	guard := cfg.Guard
	if guard == nil {
		guard = NewGuard()
	}
	return &Controller{
		ui:        cfg.UI,
		generator: cfg.Generator,
		endpoint:  cfg.Endpoint,
		guard:     guard,
		guardKey:  cfg.GuardKey,
		publisher: cfg.Publisher,
		now:       time.Now,
	}
}

// Init puts the results area in its empty state. No request is made.
func (c *Controller) Init() {
	c.ui.Results.RenderEmpty()
}

// FillSample copies the sample notice into the form.
func (c *Controller) FillSample() {
	sample := poster.Sample
	sample.Size = c.ui.Form.Values().Size
	c.ui.Form.Fill(sample)
	c.ui.Status.SetStatus(StatusSample)
}

// Submit runs one submit cycle and returns the rendered images. Every error
// is already reflected in the UI when Submit returns; the returned error is
// for the caller's logging and status code only.
func (c *Controller) Submit(ctx context.Context) ([]poster.Image, error) {
	submissionID := uuid.NewString()

	release, ok := c.guard.TryAcquire(c.guardKey)
	if !ok {
		c.publish(ctx, observer.SubmissionEvent{EventType: observer.SubmissionBusy, SubmissionID: submissionID})
		return nil, ErrSubmitInFlight
	}
	defer release()

	unlock := c.lockButton()
	defer unlock()

	c.ui.Status.SetStatus(StatusGenerating)
	c.ui.Results.Clear()
	c.publish(ctx, observer.SubmissionEvent{EventType: observer.SubmissionStarted, SubmissionID: submissionID})

	req := c.ui.Form.Values().Trimmed()
	if err := poster.Validate(req); err != nil {
		c.ui.Status.SetStatus(apperrors.MessageOf(err))
		c.ui.Results.RenderEmpty()
		c.publish(ctx, failureEvent(observer.SubmissionRejected, submissionID, err))
		return nil, err
	}

	start := c.now()
	images, err := c.generator.Generate(ctx, c.endpoint, req)
	elapsed := c.now().Sub(start)
	if err != nil {
		c.ui.Status.SetStatus(ErrorStatus(apperrors.MessageOf(err)))
		c.ui.Results.RenderEmpty()
		event := failureEvent(observer.SubmissionFailed, submissionID, err)
		event.Endpoint = c.endpoint
		event.Duration = elapsed
		c.publish(ctx, event)
		return nil, err
	}

	c.render(images)
	c.ui.Status.SetStatus(StatusDone)
	c.publish(ctx, observer.SubmissionEvent{
		EventType:    observer.SubmissionCompleted,
		SubmissionID: submissionID,
		Endpoint:     c.endpoint,
		Duration:     elapsed,
		Cards:        len(images),
	})
	return images, nil
}

func (c *Controller) render(images []poster.Image) {
	if len(images) == 0 {
		c.ui.Results.RenderEmpty()
		return
	}
	c.ui.Results.RenderCards(images)
}

// lockButton disables the submit control until the returned func runs.
func (c *Controller) lockButton() func() {
	c.ui.Button.SetDisabled(true)
	c.ui.Button.SetLabel(LabelBusy)
	return func() {
		c.ui.Button.SetDisabled(false)
		c.ui.Button.SetLabel(LabelIdle)
	}
}

func (c *Controller) publish(ctx context.Context, event observer.SubmissionEvent) {
	if c.publisher == nil {
		return
	}
	c.publisher.NotifyObservers(ctx, event)
}

func failureEvent(t observer.EventType, id string, err error) observer.SubmissionEvent {
	return observer.SubmissionEvent{
		EventType:    t,
		SubmissionID: id,
		ErrorType:    string(apperrors.TypeOf(err)),
		ErrorMessage: err.Error(),
	}
}
