package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct ตรวจสอบ request body ตาม validate tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
