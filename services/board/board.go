package board

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"bizhub/models"
	"bizhub/services/actions"
	"bizhub/services/payments"
	"bizhub/services/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sniffLen is how much of an upload is read to detect its real type.
const sniffLen = 3072

// CreateAction validates the form of an action type against the business plan
// and stores the action. Actions with staged files wait in pending_upload
// until their documents arrive through UploadDocument.
func (s *DefaultBoardService) CreateAction(ctx context.Context, in CreateActionInput) (*models.BoardAction, error) {
	cfg := s.Registry.Get(in.ActionType)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActionType, in.ActionType)
	}
	biz, err := s.ownedBusiness(ctx, in.OwnerID, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if !cfg.AvailableOn(biz.Plan) {
		return nil, ErrPlanNotAllowed
	}
	if limit := actions.PlanLimit(cfg.PlanLimits, biz.Plan); limit > 0 {
		count, err := s.Actions.CountByType(ctx, biz.ID, in.BoardRef, cfg.ActionType)
		if err != nil {
			return nil, err
		}
		if count >= limit {
			return nil, &PlanLimitError{ActionType: cfg.ActionType, Usage: models.UsageInfo{Current: count, Limit: limit}}
		}
	}

	form, err := actions.NewForm(s.Registry, cfg.ActionType, in.Locale, nil)
	if err != nil {
		return nil, err
	}
	form.SetAll(in.FormData)
	data, errs := actions.Prepare(*cfg, form.Data(), biz.Plan, s.now())
	pending := s.checkStagedFiles(*cfg, data, errs)
	if len(errs) > 0 {
		return nil, &FormValidationError{Errors: errs}
	}
	if pending && s.Storage == nil {
		return nil, ErrUploadsDisabled
	}

	now := s.now()
	action := &models.BoardAction{
		ID:          uuid.New().String(),
		BusinessID:  biz.ID,
		BoardRef:    in.BoardRef,
		ActionType:  cfg.ActionType,
		Title:       stringValue(data[actions.FieldActionTitle]),
		Description: stringValue(data[actions.FieldActionDescription]),
		Data:        data,
		Status:      models.ActionStatusSent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if pending {
		action.Status = models.ActionStatusPendingUpload
	}

	if cfg.ActionType == actions.TypePaymentRequest {
		if s.Payments == nil {
			return nil, ErrPaymentsDisabled
		}
		amount := numberValue(data["amount"])
		payment, err := s.Payments.CreateIntent(ctx, payments.IntentRequest{
			Amount:      amount,
			Currency:    stringValue(data["currency"]),
			Description: action.Title,
			Metadata: map[string]string{
				"actionId":   action.ID,
				"businessId": biz.ID,
				"boardRef":   in.BoardRef,
			},
		})
		if err != nil {
			s.logger().Error("failed to create payment intent", zap.String("actionID", action.ID), zap.Error(err))
			return nil, err
		}
		action.Payment = payment
	}

	if err := s.Actions.Create(ctx, action); err != nil {
		if action.Payment != nil {
			if cerr := s.Payments.CancelIntent(ctx, action.Payment.IntentID); cerr != nil {
				s.logger().Error("failed to cancel orphaned payment intent",
					zap.String("intentID", action.Payment.IntentID), zap.Error(cerr))
			}
		}
		return nil, err
	}
	s.logger().Info("board action created",
		zap.String("actionID", action.ID), zap.String("actionType", action.ActionType), zap.String("status", action.Status))

	if s.Notifier != nil {
		if err := s.Notifier.NotifyActionCreated(ctx, biz, action); err != nil {
			s.logger().Warn("failed to notify business", zap.String("actionID", action.ID), zap.Error(err))
		}
	}
	return action, nil
}

// checkStagedFiles runs the upload filter over staged file metadata and
// reports whether any file still has to be uploaded.
func (s *DefaultBoardService) checkStagedFiles(cfg models.ActionConfig, data map[string]any, errs map[string]string) bool {
	pending := false
	for _, f := range cfg.Fields {
		if f.Type != models.FieldFileUpload {
			continue
		}
		value, ok := data[f.Name]
		if !ok {
			continue
		}
		staged, err := actions.DecodeRows[actions.StagedFile](value)
		if err != nil {
			errs[f.Name] = "invalid file list"
			continue
		}
		accepted, msg := actions.FilterFiles(f.FileUpload, staged)
		if msg != "" {
			errs[f.Name] = msg
			continue
		}
		if f.FileUpload != nil && !f.FileUpload.Multiple && len(accepted) > 1 {
			errs[f.Name] = fmt.Sprintf("%s accepts a single file", f.Label)
			continue
		}
		data[f.Name] = accepted
		if len(accepted) > 0 {
			pending = true
		}
	}
	return pending
}

// UploadDocument stores one file of an action. The file is checked against
// the action's file_upload field before it reaches storage.
func (s *DefaultBoardService) UploadDocument(ctx context.Context, ownerID, actionID string, file UploadFile) (*models.BoardAction, error) {
	action, err := s.Actions.GetByID(ctx, actionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBusiness(ctx, ownerID, action.BusinessID); err != nil {
		return nil, err
	}
	cfg := s.Registry.Get(action.ActionType)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActionType, action.ActionType)
	}
	field, ok := uploadField(*cfg, file.Field)
	if !ok {
		return nil, ErrNoUploadField
	}
	if s.Storage == nil {
		return nil, ErrUploadsDisabled
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	contentType := file.ContentType
	if detected := mimetype.Detect(head); detected != nil && !detected.Is("application/octet-stream") {
		contentType = detected.String()
	}

	staged := []actions.StagedFile{{Name: file.FileName, Type: contentType, Size: file.Size}}
	if _, msg := actions.FilterFiles(field.FileUpload, staged); msg != "" {
		return nil, &FormValidationError{Errors: map[string]string{field.Name: msg}}
	}

	folder := fmt.Sprintf("businesses/%s/boards/%s/actions/%s", action.BusinessID, action.BoardRef, action.ID)
	doc, err := s.Storage.UploadDocument(ctx, io.MultiReader(bytes.NewReader(head), file.Body), folder, storage.FileMeta{
		FileName:    file.FileName,
		ContentType: contentType,
		Size:        file.Size,
	})
	if err != nil {
		s.logger().Error("document upload failed", zap.String("actionID", action.ID), zap.Error(err))
		return nil, err
	}

	var replaced []models.Document
	if field.FileUpload != nil && !field.FileUpload.Multiple {
		replaced = action.Documents
		action.Documents = nil
	}
	action.Documents = append(action.Documents, *doc)
	if action.Status == models.ActionStatusPendingUpload {
		action.Status = models.ActionStatusSent
	}
	if err := s.Actions.Update(ctx, action); err != nil {
		s.discard(ctx, doc.PublicID)
		return nil, err
	}
	for _, old := range replaced {
		s.discard(ctx, old.PublicID)
	}
	return action, nil
}

// discard removes an asset that no stored action references any more.
func (s *DefaultBoardService) discard(ctx context.Context, publicID string) {
	if err := s.Storage.DeleteFile(ctx, publicID); err != nil {
		s.logger().Warn("failed to delete document", zap.String("publicID", publicID), zap.Error(err))
	}
}

func (s *DefaultBoardService) GetAction(ctx context.Context, ownerID, actionID string) (*models.BoardAction, error) {
	action, err := s.Actions.GetByID(ctx, actionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBusiness(ctx, ownerID, action.BusinessID); err != nil {
		return nil, err
	}
	return action, nil
}

func (s *DefaultBoardService) ListActions(ctx context.Context, ownerID, businessID, boardRef string) ([]models.BoardAction, error) {
	if _, err := s.ownedBusiness(ctx, ownerID, businessID); err != nil {
		return nil, err
	}
	return s.Actions.ListByBoard(ctx, businessID, boardRef)
}

// NewForm builds a blank form for an action type with the business's dynamic
// options resolved for rendering.
func (s *DefaultBoardService) NewForm(ctx context.Context, businessID, actionType, locale string) (*actions.Form, actions.RenderOptions, error) {
	opts := actions.RenderOptions{}
	form, err := actions.NewForm(s.Registry, actionType, locale, nil)
	if err != nil {
		return nil, opts, err
	}
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, opts, err
	}
	opts.Plan = biz.Plan
	opts.Sources = map[string][]models.CardOption{}
	if s.Options != nil {
		methods, err := s.Options.PaymentMethods(ctx, businessID)
		if err != nil {
			return nil, opts, err
		}
		for _, m := range methods {
			opts.Sources["payment_methods"] = append(opts.Sources["payment_methods"], models.CardOption{
				Value: m.ID, Title: m.Label, Description: m.Description, Icon: m.Type,
			})
		}
		platforms, err := s.Options.Platforms(ctx, businessID)
		if err != nil {
			return nil, opts, err
		}
		for _, p := range platforms {
			opts.Sources["platforms"] = append(opts.Sources["platforms"], models.CardOption{
				Value: p.ID, Title: p.Name, Icon: p.Icon,
			})
		}
	}
	return form, opts, nil
}

func (s *DefaultBoardService) ownedBusiness(ctx context.Context, ownerID, businessID string) (*models.Business, error) {
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if ownerID == "" || biz.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return biz, nil
}

func uploadField(cfg models.ActionConfig, name string) (models.FieldConfig, bool) {
	for _, f := range cfg.Fields {
		if f.Type != models.FieldFileUpload {
			continue
		}
		if name == "" || f.Name == name {
			return f, true
		}
	}
	return models.FieldConfig{}, false
}

func numberValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func (s *DefaultBoardService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultBoardService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
