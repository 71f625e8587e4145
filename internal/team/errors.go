package team

import (
	"net/http"

	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
)

const (
	teamNotFound = "TEAM_NOT_FOUND" // errInfo
)

var (
	ErrTeamNotFound = sharedError.NewDomainError(teamNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(teamNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "TEAM-001",
		Message: "팀 정보를 찾을 수 없습니다.",
	})
}
