package team_test

import (
	"net/http"
	"testing"

	"github.com/betrhq/betr/go-data-server/internal/model"
	"github.com/betrhq/betr/go-data-server/internal/repository"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/shared/testutil"
	"github.com/betrhq/betr/go-data-server/internal/team"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnvironment creates a router with the team routes over a fresh database
func setupTestEnvironment(t *testing.T) *gin.Engine {
	t.Helper()

	// Setup test database
	cfg := testutil.NewTestConfig(t)
	db := testutil.SetupTestDB(t, cfg, &model.Team{}, &model.Player{})

	// Setup dependencies
	teamRepository, err := repository.New[model.Team](testutil.NewTestLogger())
	require.NoError(t, err)
	teamService := team.NewTeamService(db.DB, teamRepository)
	teamHandler := team.NewTeamHandler(teamService)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/teams", teamHandler.Register)
	router.GET("/api/v1/teams", teamHandler.Find)
	return router
}

func TestRegister_CreatedThenExisting(t *testing.T) {
	// Given: Setup test environment
	router := setupTestEnvironment(t)

	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/teams",
		Body: team.CreateTeamRequest{
			League:       "nba",
			Name:         "Boston Celtics",
			Abbreviation: "BOS",
		},
	}

	// When: Register a new team
	recorder := testutil.ExecuteRequest(t, router, request)

	// Then: It is created
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created team.TeamResponse
	testutil.ParseResponse(t, recorder, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "NBA", created.League)
	assert.Equal(t, "BOS", created.Abbreviation)

	// When: Register the same team again
	again := testutil.ExecuteRequest(t, router, request)

	// Then: The existing row is returned
	require.Equal(t, http.StatusOK, again.Code)

	var existing team.TeamResponse
	testutil.ParseResponse(t, again, &existing)
	assert.Equal(t, created.ID, existing.ID)
}

func TestRegister_ValidationError(t *testing.T) {
	router := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		requestBody map[string]string
	}{
		{name: "Missing league", requestBody: map[string]string{"name": "Boston Celtics"}},
		{name: "Unknown league", requestBody: map[string]string{"league": "XFL", "name": "Renegades"}},
		{name: "Missing name", requestBody: map[string]string{"league": "NHL"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/teams",
				Body:   tc.requestBody,
			})

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, sharedError.ValidationFailed.Code, errorResponse.Code)
			assert.NotEmpty(t, errorResponse.Message)
		})
	}
}

func TestFind(t *testing.T) {
	router := setupTestEnvironment(t)

	created := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/teams",
		Body:   team.CreateTeamRequest{League: "NHL", Name: "Bruins"},
	})
	require.Equal(t, http.StatusCreated, created.Code)

	// When: Look the team up
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/teams?league=NHL&name=Bruins",
	})

	// Then: It is found
	require.Equal(t, http.StatusOK, recorder.Code)

	var response team.TeamResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "Bruins", response.Name)
}

func TestFind_NotFound(t *testing.T) {
	router := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/teams?league=MLB&name=Expos",
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "TEAM-001", errorResponse.Code)
}
