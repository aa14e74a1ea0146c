package controller

import "go-safety-poster/internal/poster"

// Form is the input form: three text fields and a size selector.
type Form interface {
	Values() poster.Request
	Fill(req poster.Request)
}

// StatusLine shows a single status message; each call replaces the last.
type StatusLine interface {
	SetStatus(message string)
}

// SubmitButton is the control that starts a submission.
type SubmitButton interface {
	SetDisabled(disabled bool)
	SetLabel(label string)
}

// Results is the area poster cards are rendered into.
type Results interface {
	RenderCards(images []poster.Image)
	RenderEmpty()
	Clear()
}

// UI bundles the handles a Controller drives.
type UI struct {
	Form    Form
	Status  StatusLine
	Button  SubmitButton
	Results Results
}
