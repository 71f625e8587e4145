package handler

import (
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/shared/middleware"
	"github.com/betrhq/betr/go-data-server/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req CreateTeamRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	return bind(c, c.ShouldBindJSON(obj))
}

// BindQuery parses and validates query string parameters, like BindJSON
func BindQuery(c *gin.Context, obj any) bool {
	return bind(c, c.ShouldBindQuery(obj))
}

func bind(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	// Add error to context for middleware logging
	c.Error(err)

	// Check if it's a validation error
	resp := sharedError.InvalidRequest
	if validationResp, ok := validator.ToErrorResponse(err); ok {
		resp = *validationResp
	}
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(resp.Status, resp)
	return false
}

// RespondError sends an error response with logging. The response carries the
// request id when the RequestID middleware is installed.
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	c.Error(err)

	// Send error response
	errResp.RequestID = middleware.GetRequestID(c)
	c.JSON(errResp.Status, errResp)
}

// RespondDomainError sends the registered response of the domain error in err's chain,
// or InternalServerError when there is none.
func RespondDomainError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}
	RespondError(c, err, sharedError.InternalServerError)
}
