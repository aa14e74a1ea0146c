package view

import (
	"strings"

	"go-safety-poster/internal/controller"
	apperrors "go-safety-poster/internal/errors"
	"go-safety-poster/internal/poster"
)

// State is the UI state a page is in, derived from what has been rendered.
type State string

const (
	StateIdle             State = "idle"
	StateLoading          State = "loading"
	StateError            State = "error"
	StateSuccessEmpty     State = "success-empty"
	StateSuccessPopulated State = "success-populated"
)

// Page is the server-side model of the poster page. It implements the
// controller's UI handles and is rendered by the page template.
type Page struct {
	Form           poster.Request
	Sizes          []string
	Status         string
	ButtonDisabled bool
	ButtonLabel    string
	Cards          []Card
	Empty          bool
	RequestID      string
}

var _ interface {
	controller.Form
	controller.StatusLine
	controller.SubmitButton
	controller.Results
} = (*Page)(nil)

// NewPage returns an idle page holding form. A blank size selects the default.
func NewPage(form poster.Request) *Page {
	if strings.TrimSpace(form.Size) == "" {
		form.Size = poster.DefaultSize
	}
	return &Page{
		Form:        form,
		Sizes:       poster.Sizes,
		ButtonLabel: controller.LabelIdle,
	}
}

// UI exposes the page as controller handles.
func (p *Page) UI() controller.UI {
	return controller.UI{Form: p, Status: p, Button: p, Results: p}
}

func (p *Page) Values() poster.Request { return p.Form }

func (p *Page) Fill(req poster.Request) { p.Form = req }

func (p *Page) SetStatus(message string) { p.Status = message }

func (p *Page) SetDisabled(disabled bool) { p.ButtonDisabled = disabled }

func (p *Page) SetLabel(label string) { p.ButtonLabel = label }

func (p *Page) RenderCards(images []poster.Image) {
	p.Cards = Cards(images)
	p.Empty = len(p.Cards) == 0
}

func (p *Page) RenderEmpty() {
	p.Cards = nil
	p.Empty = true
}

func (p *Page) Clear() {
	p.Cards = nil
	p.Empty = false
}

// SizeSelected reports whether size is the form's current selection.
func (p *Page) SizeSelected(size string) bool {
	return p.Form.Size == size
}

// State derives the UI state from the button, status line and results.
func (p *Page) State() State {
	switch {
	case p.ButtonDisabled:
		return StateLoading
	case len(p.Cards) > 0:
		return StateSuccessPopulated
	case p.Status == controller.StatusDone:
		return StateSuccessEmpty
	case p.Status == apperrors.MissingFieldsMessage,
		strings.HasPrefix(p.Status, controller.ErrorStatus("")):
		return StateError
	default:
		return StateIdle
	}
}
