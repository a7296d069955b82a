package http

import (
	"strings"

	"learnhub/pkg/apperror"
	"learnhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError is the single terminal translator from orchestrator errors
// to the response envelope. Unclassified errors surface as a generic 500.
func respondError(c *gin.Context, err error) {
	appErr := apperror.As(err)

	if appErr.Kind == apperror.KindValidation {
		c.JSON(appErr.HTTPStatus, response.FailWithData(strings.Join(appErr.Messages, " "), gin.H{"errors": appErr.Messages}))
		return
	}

	if appErr.IsClientFault() {
		c.JSON(appErr.HTTPStatus, response.Fail(appErr.Message))
		return
	}

	c.JSON(appErr.HTTPStatus, response.Error(appErr.Message))
}
