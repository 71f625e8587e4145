package validator

import (
	"github.com/betrhq/betr/go-data-server/internal/model"
	"github.com/go-playground/validator/v10"
)

// ValidateLeague accepts NBA, NHL, MLB, NFL and UFC in any case.
// This is a common validator used by request binding and entity validation
func ValidateLeague(fl validator.FieldLevel) bool {
	_, ok := model.ParseLeague(fl.Field().String())
	return ok
}
