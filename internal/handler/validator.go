package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/greenschool/zerowaste-backend/internal/service"
)

var validate = validator.New()

// checkRequired runs the struct's validate tags. Any failure maps to the
// shared incomplete-input message; field-specific rules live in the services.
func checkRequired(v any) error {
	if err := validate.Struct(v); err != nil {
		return service.Invalid("กรุณากรอกข้อมูลให้ครบถ้วน")
	}
	return nil
}
