package handlers

import (
	"net/http"

	"bizhub/models"
	"bizhub/services/requests"
	"bizhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler accepts service requests posted directly by clients.
type RequestHandler struct {
	Requests requests.RequestService
}

func NewRequestHandler(svc requests.RequestService) *RequestHandler {
	return &RequestHandler{Requests: svc}
}

// CreateServiceRequestHandler returns {confirmationPageUrl} or {error, details, errorType, usage}.
func (h *RequestHandler) CreateServiceRequestHandler(c *gin.Context) {
	var input models.ServiceRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req, err := h.Requests.Create(c.Request.Context(), c.Param("businessID"), input)
	if err != nil {
		getLogger(c).Warn("service request rejected", zap.String("businessID", c.Param("businessID")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"confirmationPageUrl": req.ConfirmationPageURL,
		"requestId":           req.ID,
		"totalPrice":          req.TotalPrice,
	})
}
