package handlers

import (
	"github.com/familypoints/familypoints_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidations attaches custom validation rules to gin's binding validator.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("entrykind", func(fl validator.FieldLevel) bool {
			return domain.EntryKind(fl.Field().String()).IsAdjustment()
		})
	}
}
