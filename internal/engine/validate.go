package engine

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/celerix-dev/celerix-users/pkg/schema"
)

const (
	minAge = 1
	maxAge = 100
)

// notBlank rejects strings made only of whitespace. Required already covers "".
var notBlank = validation.NewStringRule(func(s string) bool {
	return strings.TrimSpace(s) != ""
}, "cannot be blank")

// looseEmail is a syntactic sanity check, not RFC 5322 validation.
var looseEmail = validation.NewStringRule(func(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}, "must contain '@' and '.'")

// ValidationError reports which fields of a record failed which constraint.
// errors.Is(err, ErrInvalidUser) holds for every ValidationError.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidUser
}

// ValidateUser checks a candidate record before it is stored.
func ValidateUser(u schema.User) error {
	err := validation.ValidateStruct(&u,
		validation.Field(&u.FirstName, validation.Required, notBlank),
		validation.Field(&u.LastName, validation.Required, notBlank),
		validation.Field(&u.Email, validation.Required, notBlank, looseEmail),
		validation.Field(&u.Address, validation.Required, notBlank),
		validation.Field(&u.Age, validation.Required, validation.Min(minAge), validation.Max(maxAge)),
		validation.Field(&u.Job, validation.Required, notBlank),
	)
	return asValidationError(err)
}

// ValidateJob checks a replacement job title.
func ValidateJob(job string) error {
	if err := validation.Validate(job, validation.Required, notBlank); err != nil {
		return &ValidationError{Fields: validation.Errors{"job": err}}
	}
	return nil
}

func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}
