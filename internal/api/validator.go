package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/FellowDalton/foodplan-ingest/internal/pkg/constants"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), constants.ErrBadRequest)
	}
	return nil
}
