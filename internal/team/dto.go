package team

import (
	"time"

	"github.com/betrhq/betr/go-data-server/internal/model"
)

type CreateTeamRequest struct {
	League       string `json:"league" binding:"required,league"`
	Name         string `json:"name" binding:"required,max=100"`
	Abbreviation string `json:"abbreviation" binding:"omitempty,max=8"`
}

type FindTeamQuery struct {
	League string `form:"league" binding:"required,league"`
	Name   string `form:"name" binding:"required,max=100"`
}

type TeamResponse struct {
	ID           int64     `json:"id"`
	League       string    `json:"league"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newTeamResponse(t *model.Team) *TeamResponse {
	resp := &TeamResponse{
		League:       string(t.League),
		Name:         t.Name,
		Abbreviation: t.Abbreviation,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.ID != nil {
		resp.ID = *t.ID
	}
	return resp
}
