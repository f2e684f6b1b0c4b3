package handlers

import (
	"errors"
	"net/http"

	boardRepo "bizhub/database/repository/board"
	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	requestsRepo "bizhub/database/repository/requests"
	"bizhub/models"
	"bizhub/services/actions"
	"bizhub/services/availability"
	"bizhub/services/board"
	"bizhub/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto status codes and JSON bodies of the
// form {error, details?, errorType?, usage?}.
func respondError(c *gin.Context, err error) {
	var (
		subErr   *models.SubmissionError
		stepErr  *wizard.StepError
		fetchErr *wizard.FetchError
		formErr  *board.FormValidationError
		limitErr *board.PlanLimitError
	)
	switch {
	case errors.As(err, &subErr):
		status := subErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, subErr)
	case errors.Is(err, wizard.ErrSessionNotFound),
		errors.Is(err, businessRepo.ErrBusinessNotFound),
		errors.Is(err, catalogRepo.ErrServiceNotFound),
		errors.Is(err, catalogRepo.ErrEventNotFound),
		errors.Is(err, requestsRepo.ErrRequestNotFound),
		errors.Is(err, boardRepo.ErrActionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &stepErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stepErr.Message, "field": stepErr.Field, "step": stepErr.Step.String()})
	case errors.As(err, &fetchErr):
		getLogger(c).Warn("collaborator fetch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load " + fetchErr.Op, "details": fetchErr.Err.Error()})
	case errors.As(err, &formErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "form validation failed", "fields": formErr.Errors})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "plan limit reached",
			"details":   "your plan does not allow more " + limitErr.ActionType + " actions on this board",
			"errorType": "usage_limit",
			"usage":     limitErr.Usage,
		})
	case errors.Is(err, actions.ErrUnknownActionType):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action type", "details": err.Error()})
	case errors.Is(err, wizard.ErrStepMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrNotSkippable),
		errors.Is(err, wizard.ErrAtFirstStep),
		errors.Is(err, wizard.ErrNotReady),
		errors.Is(err, board.ErrNoUploadField),
		errors.Is(err, availability.ErrInvalidDate),
		errors.Is(err, availability.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrPlanNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "errorType": "plan"})
	case errors.Is(err, board.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrPaymentsDisabled), errors.Is(err, board.ErrUploadsDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "details": err.Error()})
	}
}
