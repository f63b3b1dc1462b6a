package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sodo-hospital/admin-api/internal/models"
)

// RegisterValidations installs the closed-enum validators on gin's binding
// engine. Status and priority values outside the recognized sets are rejected
// at the boundary instead of being persisted as free-form strings.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return models.TaskStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		return models.TaskPriority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("docstatus", func(fl validator.FieldLevel) bool {
		return models.DocumentStatus(fl.Field().String()).Valid()
	})
}
