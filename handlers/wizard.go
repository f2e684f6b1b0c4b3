package handlers

import (
	"net/http"

	"bizhub/services/wizard"
	"bizhub/utils"

	"github.com/gin-gonic/gin"
)

// WizardHandler exposes the service request wizard over HTTP.
type WizardHandler struct {
	Wizard wizard.WizardService
}

func NewWizardHandler(svc wizard.WizardService) *WizardHandler {
	return &WizardHandler{Wizard: svc}
}

type openWizardRequest struct {
	BusinessID string `json:"businessId" binding:"required"`
	ServiceID  string `json:"serviceId" binding:"required"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *WizardHandler) OpenHandler(c *gin.Context) {
	var req openWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "businessId and serviceId are required", "")
		return
	}
	sess, err := h.Wizard.Open(c.Request.Context(), req.BusinessID, req.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *WizardHandler) GetHandler(c *gin.Context) {
	sess, err := h.Wizard.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// NextHandler validates the posted step result and advances.
func (h *WizardHandler) NextHandler(c *gin.Context) {
	var in wizard.StepInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	sess, err := h.Wizard.Next(c.Request.Context(), c.Param("sessionID"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *WizardHandler) SkipHandler(c *gin.Context) {
	sess, err := h.Wizard.Skip(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *WizardHandler) BackHandler(c *gin.Context) {
	sess, err := h.Wizard.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *WizardHandler) SetItemQuantityHandler(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "quantity is required", "")
		return
	}
	sess, err := h.Wizard.SetItemQuantity(c.Request.Context(), c.Param("sessionID"), c.Param("itemID"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *WizardHandler) SetExtraQuantityHandler(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "quantity is required", "")
		return
	}
	sess, err := h.Wizard.SetExtraQuantity(c.Request.Context(), c.Param("sessionID"), c.Param("extraID"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *WizardHandler) SubmitHandler(c *gin.Context) {
	res, err := h.Wizard.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *WizardHandler) CancelHandler(c *gin.Context) {
	if err := h.Wizard.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
