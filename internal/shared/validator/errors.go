package validator

import (
	"errors"
	"fmt"

	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/go-playground/validator/v10"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
// Only the first field error is reported.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	fieldErr := validationErrors[0]
	message := getErrorMessage(fieldErr)

	resp := sharedError.ValidationFailed
	resp.Message = message
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "필수 항목을 입력해 주세요."
	case "gte":
		return fmt.Sprintf("%s 이상이어야 합니다.", fe.Param())
	case "lte":
		return fmt.Sprintf("%s 이하이어야 합니다.", fe.Param())
	case "min":
		return fmt.Sprintf("최소 %s자 이상이어야 합니다.", fe.Param())
	case "max":
		return fmt.Sprintf("최대 %s자까지 입력 가능합니다.", fe.Param())
	case "league":
		return "지원하지 않는 리그입니다. (NBA, NHL, MLB, NFL, UFC)"
	case "oneof":
		return fmt.Sprintf("'%s' 필드는 [%s] 중 하나여야 합니다.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("'%s' 필드가 올바르지 않습니다.", fe.Field())
	}
}
