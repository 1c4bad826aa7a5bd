package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks the `validate` struct tags of a request DTO.
func Validate(req interface{}) error {
	return validate.Struct(req)
}
