package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/shared/handler"
	"github.com/betrhq/betr/go-data-server/internal/shared/middleware"
	"github.com/betrhq/betr/go-data-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createRequest struct {
	Name string `json:"name" binding:"required"`
}

// setupTestRouter creates a router whose routes answer with error responses
func setupTestRouter() *gin.Engine {
	router := testutil.SetupTestRouter()
	router.Use(middleware.RequestID(testutil.NewTestLogger()))

	router.GET("/missing", func(c *gin.Context) {
		handler.RespondDomainError(c, fmt.Errorf("lookup: %w", sharedError.ErrNotFound))
	})
	router.GET("/broken", func(c *gin.Context) {
		handler.RespondDomainError(c, fmt.Errorf("unexpected"))
	})
	router.POST("/items", func(c *gin.Context) {
		var request createRequest
		if !handler.BindJSON(c, &request) {
			return
		}
		c.Status(http.StatusCreated)
	})
	return router
}

func TestRespondDomainError_CarriesRequestID(t *testing.T) {
	router := setupTestRouter()

	testCases := []struct {
		name   string
		url    string
		status int
		code   string
	}{
		{name: "Registered domain error", url: "/missing", status: http.StatusNotFound, code: "DATA-002"},
		{name: "Unregistered error", url: "/broken", status: http.StatusInternalServerError, code: sharedError.InternalServerError.Code},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodGet,
				URL:    tc.url,
				Header: map[string]string{middleware.RequestIDHeader: "req-9"},
			})

			require.Equal(t, tc.status, recorder.Code)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, tc.code, errorResponse.Code)
			assert.Equal(t, "req-9", errorResponse.RequestID)
		})
	}
}

func TestBindJSON_ErrorCarriesRequestID(t *testing.T) {
	router := setupTestRouter()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/items",
		Body:   map[string]string{},
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, sharedError.ValidationFailed.Code, errorResponse.Code)
	assert.Equal(t, recorder.Header().Get(middleware.RequestIDHeader), errorResponse.RequestID)
	assert.NotEmpty(t, errorResponse.RequestID)
}
