package handlers

import (
	"net/http"
	"strconv"
	"time"

	"bizhub/middleware"
	"bizhub/models"
	"bizhub/services/actions"
	"bizhub/services/board"
	"bizhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultMaxUploadBytes = 20 << 20

var timeNow = time.Now

// BoardHandler serves action forms and the actions attached to service boards.
type BoardHandler struct {
	Board          board.BoardService
	Registry       *actions.Registry
	MaxUploadBytes int64
}

func NewBoardHandler(svc board.BoardService, reg *actions.Registry, maxUploadBytes int64) *BoardHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &BoardHandler{Board: svc, Registry: reg, MaxUploadBytes: maxUploadBytes}
}

type formRequest struct {
	FormData map[string]any `json:"formData"`
	Touched  []string       `json:"touched,omitempty"`
	Submit   bool           `json:"submit,omitempty"`
}

type createActionRequest struct {
	ActionType string         `json:"actionType" binding:"required"`
	Locale     string         `json:"locale,omitempty"`
	FormData   map[string]any `json:"formData"`
}

// ListActionTypesHandler returns the action types open to ?plan, all of them when unset.
func (h *BoardHandler) ListActionTypesHandler(c *gin.Context) {
	raw := c.Query("plan")
	if raw == "" {
		out := make([]*models.ActionConfig, 0)
		for _, t := range h.Registry.Types() {
			out = append(out, h.Registry.Get(t))
		}
		c.JSON(http.StatusOK, gin.H{"actionTypes": out})
		return
	}
	plan, err := strconv.Atoi(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "plan must be a number", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"actionTypes": h.Registry.AvailableFor(plan)})
}

// GetActionFormHandler renders a blank form for ?locale.
func (h *BoardHandler) GetActionFormHandler(c *gin.Context) {
	form, opts, err := h.Board.NewForm(c.Request.Context(), c.Param("businessID"), c.Param("actionType"), c.Query("locale"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"config":   form.Config(),
		"state":    form.State(),
		"widgets":  form.Render(opts),
		"planTier": opts.Plan,
	})
}

// ValidateActionFormHandler applies posted values and returns the re-rendered form.
func (h *BoardHandler) ValidateActionFormHandler(c *gin.Context) {
	var req formRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	form, opts, err := h.Board.NewForm(c.Request.Context(), c.Param("businessID"), c.Param("actionType"), c.Query("locale"))
	if err != nil {
		respondError(c, err)
		return
	}
	form.SetAll(req.FormData)
	for _, name := range req.Touched {
		form.Touch(name)
	}
	var valid bool
	if req.Submit {
		valid = form.Validate()
	} else {
		valid = len(actions.ValidateData(form.Config(), form.Data(), timeNow())) == 0
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":   valid,
		"errors":  form.VisibleErrors(),
		"widgets": form.Render(opts),
	})
}

// CreateActionHandler attaches a new action to a service board.
func (h *BoardHandler) CreateActionHandler(c *gin.Context) {
	var req createActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "actionType is required", "")
		return
	}
	locale := req.Locale
	if locale == "" {
		locale = c.GetHeader("Accept-Language")
	}
	action, err := h.Board.CreateAction(c.Request.Context(), board.CreateActionInput{
		OwnerID:    c.GetString(middleware.OwnerIDKey),
		BusinessID: c.Param("businessID"),
		BoardRef:   c.Param("boardRef"),
		ActionType: req.ActionType,
		Locale:     locale,
		FormData:   req.FormData,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("board action created",
		zap.String("actionID", action.ID),
		zap.String("actionType", action.ActionType),
		zap.String("status", action.Status))
	c.JSON(http.StatusCreated, action)
}

func (h *BoardHandler) ListActionsHandler(c *gin.Context) {
	list, err := h.Board.ListActions(c.Request.Context(), c.GetString(middleware.OwnerIDKey), c.Param("businessID"), c.Param("boardRef"))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []models.BoardAction{}
	}
	c.JSON(http.StatusOK, gin.H{"actions": list})
}

func (h *BoardHandler) GetActionHandler(c *gin.Context) {
	action, err := h.Board.GetAction(c.Request.Context(), c.GetString(middleware.OwnerIDKey), c.Param("actionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}

// UploadDocumentHandler accepts a multipart "file" plus an optional "field" name.
func (h *BoardHandler) UploadDocumentHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+(1<<20))
	fh, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file is required", err.Error())
		return
	}
	if fh.Size > h.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not read file", err.Error())
		return
	}
	defer f.Close()

	action, err := h.Board.UploadDocument(c.Request.Context(), c.GetString(middleware.OwnerIDKey), c.Param("actionID"), board.UploadFile{
		Field:       c.PostForm("field"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}
