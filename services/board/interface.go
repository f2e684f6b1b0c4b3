package board

import (
	"context"
	"errors"
	"io"
	"time"

	boardRepo "bizhub/database/repository/board"
	businessRepo "bizhub/database/repository/business"
	"bizhub/models"
	"bizhub/services/actions"
	"bizhub/services/notification"
	"bizhub/services/payments"
	"bizhub/services/storage"

	"go.uber.org/zap"
)

var (
	ErrUnknownActionType = actions.ErrUnknownActionType
	ErrPlanNotAllowed    = errors.New("action type is not available on this plan")
	ErrNotOwner          = errors.New("business does not belong to the caller")
	ErrNoUploadField     = errors.New("action has no file upload field")
	ErrPaymentsDisabled  = errors.New("payments are not configured")
	ErrUploadsDisabled   = errors.New("document uploads are not configured")
)

// FormValidationError carries the per-field messages of a rejected form.
type FormValidationError struct {
	Errors map[string]string
}

func (e *FormValidationError) Error() string {
	return "form validation failed"
}

// PlanLimitError is returned when a board already holds the maximum number
// of actions of one type allowed by the plan.
type PlanLimitError struct {
	ActionType string
	Usage      models.UsageInfo
}

func (e *PlanLimitError) Error() string {
	return "plan limit reached for " + e.ActionType
}

// BoardService manages actions attached to service boards.
type BoardService interface {
	CreateAction(ctx context.Context, in CreateActionInput) (*models.BoardAction, error)
	UploadDocument(ctx context.Context, ownerID, actionID string, file UploadFile) (*models.BoardAction, error)
	GetAction(ctx context.Context, ownerID, actionID string) (*models.BoardAction, error)
	ListActions(ctx context.Context, ownerID, businessID, boardRef string) ([]models.BoardAction, error)
	NewForm(ctx context.Context, businessID, actionType, locale string) (*actions.Form, actions.RenderOptions, error)
}

// CreateActionInput is what an owner submits to attach an action to a board.
type CreateActionInput struct {
	OwnerID    string
	BusinessID string
	BoardRef   string
	ActionType string
	Locale     string
	FormData   map[string]any
}

// UploadFile is one multipart file handed to UploadDocument.
type UploadFile struct {
	Field       string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// OptionSource resolves dynamic card options for a business.
type OptionSource interface {
	PaymentMethods(ctx context.Context, businessID string) ([]models.PaymentMethod, error)
	Platforms(ctx context.Context, businessID string) ([]models.Platform, error)
}

// DefaultBoardService implements BoardService.
type DefaultBoardService struct {
	Registry   *actions.Registry
	Actions    boardRepo.BoardRepository
	Businesses businessRepo.BusinessRepository
	Options    OptionSource
	Storage    storage.StorageService
	Payments   payments.PaymentService
	Notifier   notification.NotificationService
	Now        func() time.Time
	Logger     *zap.Logger
}
