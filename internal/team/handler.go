package team

import (
	"net/http"

	"github.com/betrhq/betr/go-data-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *TeamService
}

func NewTeamHandler(teamService *TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

func (h *TeamHandler) Register(c *gin.Context) {
	var request CreateTeamRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	response, created, err := h.teamService.Register(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *TeamHandler) Find(c *gin.Context) {
	var query FindTeamQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.teamService.Find(c.Request.Context(), &query)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
