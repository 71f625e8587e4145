package bootstrap_test

import (
	"net/http"
	"testing"

	"github.com/betrhq/betr/go-data-server/internal/bootstrap"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/shared/middleware"
	"github.com/betrhq/betr/go-data-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupEngine_RecoveredPanicCarriesRequestID(t *testing.T) {
	cfg := testutil.NewTestConfig(t)
	engine := bootstrap.NewBootstrap(cfg, testutil.NewTestLogger()).SetupEngine()
	engine.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/boom",
		Header: map[string]string{middleware.RequestIDHeader: "req-1", "Origin": "http://frontend.example"},
	})

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "req-1", recorder.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, recorder.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, sharedError.InternalServerError.Code, errorResponse.Code)
	assert.Equal(t, "req-1", errorResponse.RequestID)
}
