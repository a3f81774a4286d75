package validator

import (
	"heyprodata_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Custom domain rules referenced from DTO validate tags.
func registerCustomRules(v *validator.Validate) error {
	if err := v.RegisterValidation("is-application-status", isApplicationStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("is-post-kind", isPostKind); err != nil {
		return err
	}
	return nil
}

func isApplicationStatus(fl validator.FieldLevel) bool {
	return models.ValidApplicationStatus(models.ApplicationStatus(fl.Field().String()))
}

func isPostKind(fl validator.FieldLevel) bool {
	switch models.PostKind(fl.Field().String()) {
	case models.PostKindSlate, models.PostKindCollab:
		return true
	}
	return false
}
