// Package http provides HTTP server and handler implementations.
//
// This file parses and validates the date range carried in query strings.

package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"bikeshare/internal/core"
)

// RangeQuery is the ?start=&end= pair shared by the page, the partial, the
// JSON API and the exports. Both ends are optional.
type RangeQuery struct {
	Start string `validate:"omitempty,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseRangeQuery reads start and end from query, validates them and returns
// the dates present. A nil pointer means the end was not given.
func ParseRangeQuery(query url.Values) (start, end *core.Date, err error) {
	q := RangeQuery{
		Start: strings.TrimSpace(query.Get("start")),
		End:   strings.TrimSpace(query.Get("end")),
	}
	if err := validate.Struct(q); err != nil {
		return nil, nil, validationError(err)
	}

	if q.Start != "" {
		d, err := core.ParseDate(q.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("start: %w", err)
		}
		start = &d
	}
	if q.End != "" {
		d, err := core.ParseDate(q.End)
		if err != nil {
			return nil, nil, fmt.Errorf("end: %w", err)
		}
		end = &d
	}
	return start, end, nil
}

// validationError flattens validator output into one readable message.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s must be a date in YYYY-MM-DD form, got %q", strings.ToLower(fe.Field()), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
