package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"school-inventory/internal/entities"
)

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("equipment_status", isEquipmentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("user_role", isUserRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("notblank", isNotBlank); err != nil {
		return err
	}
	return nil
}

// isEquipmentStatus - Active / Inactive / Deleted
func isEquipmentStatus(fl validator.FieldLevel) bool {
	return entities.EquipmentStatus(fl.Field().String()).Valid()
}

// isUserRole - Administrator / Standard
func isUserRole(fl validator.FieldLevel) bool {
	return entities.Role(fl.Field().String()).Valid()
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
