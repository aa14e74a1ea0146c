package poster

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "go-safety-poster/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Trimmed returns r with surrounding whitespace removed from the text fields.
// Size is passed through as is.
func (r Request) Trimmed() Request {
	return Request{
		Caution:  strings.TrimSpace(r.Caution),
		Location: strings.TrimSpace(r.Location),
		Checks:   strings.TrimSpace(r.Checks),
		Size:     r.Size,
	}
}

// Validate fails with a missing-field AppError naming every text field that
// is empty after trimming.
func Validate(r Request) error {
	err := validate.Struct(r.Trimmed())
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError("request validation failed", err)
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return apperrors.NewMissingFieldError(missing)
}
