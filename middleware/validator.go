package middleware

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct используется в хендлерах поверх binding-тегов gin.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
