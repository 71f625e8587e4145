package validator

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// RegisterAll registers all common validators on the Gin binding engine
func RegisterAll(log *slog.Logger) error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	if err := register(v); err != nil {
		return err
	}

	log.Info("공통 Validator 등록 완료", "validators", "league")
	return nil
}

// NewEntityValidator returns a validator reading `validate` struct tags on entities
func NewEntityValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := register(v); err != nil {
		return nil, err
	}
	return v, nil
}

func register(v *validator.Validate) error {
	if err := v.RegisterValidation("league", ValidateLeague); err != nil {
		return fmt.Errorf("league validator 등록 실패: %w", err)
	}
	return nil
}
