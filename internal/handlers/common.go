// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shopadmin/internal/repository"
	"shopadmin/internal/services"
	"shopadmin/internal/utils"
)

// respondError maps the error taxonomy onto HTTP: validation and business
// rejections are 400, missing resources 404, duplicates 409, everything else
// 500 with the message preserved.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidStatusTransition):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, repository.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	default:
		logrus.WithError(err).Error("Request failed unexpectedly")
		utils.InternalErrorResponse(c, err.Error())
	}
}

// parseID reads a UUID path parameter, rejecting the request on bad input.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body and reports field-level validation failures.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return false
		}
		utils.BadRequestResponse(c, err.Error())
		return false
	}
	return true
}
