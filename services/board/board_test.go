package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	memoryRepo "bizhub/database/repository/memory"
	"bizhub/models"
	"bizhub/services/actions"
	"bizhub/services/payments"
	"bizhub/services/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

const pdfBody = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"

type fakePayments struct {
	requests []payments.IntentRequest
	canceled []string
	err      error
}

func (p *fakePayments) CreateIntent(_ context.Context, req payments.IntentRequest) (*models.ActionPayment, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.requests = append(p.requests, req)
	return &models.ActionPayment{IntentID: "pi_1", ClientSecret: "secret", Amount: req.Amount, Currency: req.Currency, Status: "requires_payment_method"}, nil
}

func (p *fakePayments) CancelIntent(_ context.Context, intentID string) error {
	p.canceled = append(p.canceled, intentID)
	return nil
}

type fakeStorage struct {
	uploads   []string
	deleted   []string
	folders   []string
	n         int
	uploadErr error
}

func (s *fakeStorage) UploadDocument(_ context.Context, r io.Reader, folder string, meta storage.FileMeta) (*models.Document, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.n++
	s.uploads = append(s.uploads, string(b))
	s.folders = append(s.folders, folder)
	return &models.Document{
		PublicID:    fmt.Sprintf("%s/%s_%d", folder, meta.FileName, s.n),
		FileName:    meta.FileName,
		ContentType: meta.ContentType,
		Size:        meta.Size,
	}, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeStorage) GetSecureDownloadURL(context.Context, string, string, time.Duration) (string, error) {
	return "", nil
}

// failingBoard lets reads through and fails writes.
type failingBoard struct {
	*memoryRepo.Board
	err error
}

func (b failingBoard) Create(context.Context, *models.BoardAction) error { return b.err }

func (b failingBoard) Update(context.Context, *models.BoardAction) error { return b.err }

type fakeOptions struct{}

func (fakeOptions) PaymentMethods(context.Context, string) ([]models.PaymentMethod, error) {
	return []models.PaymentMethod{{ID: "card", Type: "card", Label: "Card", Enabled: true}}, nil
}

func (fakeOptions) Platforms(context.Context, string) ([]models.Platform, error) {
	return []models.Platform{{ID: "zoom", Name: "Zoom", Enabled: true}}, nil
}

func newTestBoardService(plan int) (*DefaultBoardService, *memoryRepo.Board, *fakeStorage, *fakePayments) {
	repo := memoryRepo.NewBoard()
	store := &fakeStorage{}
	pay := &fakePayments{}
	svc := &DefaultBoardService{
		Registry:   actions.Bootstrap(nil),
		Actions:    repo,
		Businesses: memoryRepo.NewBusinesses(models.Business{ID: "biz-1", OwnerID: "owner-1", Plan: plan}),
		Options:    fakeOptions{},
		Storage:    store,
		Payments:   pay,
		Now:        func() time.Time { return testNow },
	}
	return svc, repo, store, pay
}

func messageInput(formData map[string]any) CreateActionInput {
	return CreateActionInput{
		OwnerID:    "owner-1",
		BusinessID: "biz-1",
		BoardRef:   "board-1",
		ActionType: actions.TypeGenericMessage,
		FormData:   formData,
	}
}

func TestCreateActionUsesPlaceholdersAndSanitizes(t *testing.T) {
	svc, repo, _, _ := newTestBoardService(models.PlanFree)
	action, err := svc.CreateAction(context.Background(), messageInput(map[string]any{
		"message_body": `<p>Hello</p><script>alert(1)</script>`,
	}))
	require.NoError(t, err)

	assert.Equal(t, "A message about your service", action.Title)
	assert.Equal(t, models.ActionStatusSent, action.Status)
	assert.Equal(t, "<p>Hello</p>", action.Data["message_body"])

	stored, err := repo.ListByBoard(context.Background(), "biz-1", "board-1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateActionValidationErrors(t *testing.T) {
	svc, repo, _, _ := newTestBoardService(models.PlanFree)
	_, err := svc.CreateAction(context.Background(), messageInput(map[string]any{
		actions.FieldActionTitle: "",
	}))
	var formErr *FormValidationError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, "Title is required", formErr.Errors[actions.FieldActionTitle])
	assert.Equal(t, "Message is required", formErr.Errors["message_body"])

	stored, _ := repo.ListByBoard(context.Background(), "biz-1", "board-1")
	assert.Empty(t, stored)
}

func TestCreateActionRejectsScriptOnlyMessage(t *testing.T) {
	svc, repo, _, _ := newTestBoardService(models.PlanFree)
	_, err := svc.CreateAction(context.Background(), messageInput(map[string]any{
		"message_body": "<script>alert(1)</script>",
	}))
	var formErr *FormValidationError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, "Message is required", formErr.Errors["message_body"])

	stored, err := repo.ListByBoard(context.Background(), "biz-1", "board-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCreateActionRejectsUnknownTypeAndStranger(t *testing.T) {
	svc, _, _, _ := newTestBoardService(models.PlanPro)
	in := messageInput(nil)
	in.ActionType = "telepathy"
	_, err := svc.CreateAction(context.Background(), in)
	assert.ErrorIs(t, err, ErrUnknownActionType)

	in = messageInput(map[string]any{"message_body": "hi"})
	in.OwnerID = "someone-else"
	_, err = svc.CreateAction(context.Background(), in)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCreateActionPlanGating(t *testing.T) {
	svc, _, _, _ := newTestBoardService(models.PlanFree)
	_, err := svc.CreateAction(context.Background(), CreateActionInput{
		OwnerID: "owner-1", BusinessID: "biz-1", BoardRef: "board-1",
		ActionType: actions.TypePaymentRequest,
	})
	assert.ErrorIs(t, err, ErrPlanNotAllowed)
}

func paymentInput() CreateActionInput {
	return CreateActionInput{
		OwnerID:    "owner-1",
		BusinessID: "biz-1",
		BoardRef:   "board-1",
		ActionType: actions.TypePaymentRequest,
		FormData: map[string]any{
			"amount":          49.99,
			"currency":        "usd",
			"payment_methods": []any{"card"},
		},
	}
}

func TestCreatePaymentRequestCreatesIntent(t *testing.T) {
	svc, _, _, pay := newTestBoardService(models.PlanStarter)
	action, err := svc.CreateAction(context.Background(), paymentInput())
	require.NoError(t, err)

	require.Len(t, pay.requests, 1)
	assert.Equal(t, 49.99, pay.requests[0].Amount)
	assert.Equal(t, "usd", pay.requests[0].Currency)
	assert.Equal(t, action.ID, pay.requests[0].Metadata["actionId"])
	require.NotNil(t, action.Payment)
	assert.Equal(t, "pi_1", action.Payment.IntentID)
}

func TestCreatePaymentRequestWithoutPayments(t *testing.T) {
	svc, _, _, _ := newTestBoardService(models.PlanPro)
	svc.Payments = nil
	_, err := svc.CreateAction(context.Background(), paymentInput())
	assert.ErrorIs(t, err, ErrPaymentsDisabled)
}

func TestCreatePaymentRequestCancelsIntentWhenStoreFails(t *testing.T) {
	svc, repo, _, pay := newTestBoardService(models.PlanStarter)
	boom := errors.New("mongo down")
	svc.Actions = failingBoard{Board: repo, err: boom}

	_, err := svc.CreateAction(context.Background(), paymentInput())
	assert.ErrorIs(t, err, boom)
	require.Len(t, pay.requests, 1)
	assert.Equal(t, []string{"pi_1"}, pay.canceled)
}

func TestCreateActionPlanLimit(t *testing.T) {
	svc, repo, _, _ := newTestBoardService(models.PlanStarter)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.BoardAction{
			ID: "old", BusinessID: "biz-1", BoardRef: "board-1", ActionType: actions.TypePaymentRequest,
		}))
	}
	_, err := svc.CreateAction(context.Background(), paymentInput())
	var limitErr *PlanLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, models.UsageInfo{Current: 5, Limit: 5}, limitErr.Usage)

	// Other boards keep their own allowance.
	in := paymentInput()
	in.BoardRef = "board-2"
	_, err = svc.CreateAction(context.Background(), in)
	assert.NoError(t, err)
}

func TestStagedFilesAndUpload(t *testing.T) {
	svc, _, store, _ := newTestBoardService(models.PlanFree)
	action, err := svc.CreateAction(context.Background(), messageInput(map[string]any{
		"message_body": "See attached",
		"attachments":  []any{map[string]any{"name": "brief.pdf", "type": "application/pdf", "size": float64(2048)}},
	}))
	require.NoError(t, err)
	assert.Equal(t, models.ActionStatusPendingUpload, action.Status)

	updated, err := svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
		FileName:    "brief.pdf",
		ContentType: "application/octet-stream",
		Size:        int64(len(pdfBody)),
		Body:        strings.NewReader(pdfBody),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionStatusSent, updated.Status)
	require.Len(t, updated.Documents, 1)
	assert.Equal(t, "application/pdf", updated.Documents[0].ContentType)
	assert.Equal(t, []string{pdfBody}, store.uploads, "sniffed bytes reach storage")
	assert.Equal(t, "businesses/biz-1/boards/board-1/actions/"+action.ID, store.folders[0])
}

func TestStagedFilesRejected(t *testing.T) {
	svc, _, _, _ := newTestBoardService(models.PlanFree)
	_, err := svc.CreateAction(context.Background(), messageInput(map[string]any{
		"message_body": "See attached",
		"attachments":  []any{map[string]any{"name": "run.exe", "type": "application/x-msdownload", "size": float64(10)}},
	}))
	var formErr *FormValidationError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, "1 file was skipped: run.exe (type not allowed)", formErr.Errors["attachments"])
}

func signatureInput() CreateActionInput {
	return CreateActionInput{
		OwnerID:    "owner-1",
		BusinessID: "biz-1",
		BoardRef:   "board-1",
		ActionType: actions.TypeSignatureRequest,
		FormData: map[string]any{
			"document":     []any{map[string]any{"name": "contract.pdf", "type": "application/pdf", "size": float64(4096)}},
			"signer_email": "ada@example.com",
			"agree_terms":  true,
		},
	}
}

func TestUploadSniffsContentAndReplacesSingleFile(t *testing.T) {
	svc, _, store, _ := newTestBoardService(models.PlanPro)
	action, err := svc.CreateAction(context.Background(), signatureInput())
	require.NoError(t, err)

	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"
	_, err = svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
		FileName: "contract.pdf", ContentType: "application/pdf", Size: int64(len(png)), Body: strings.NewReader(png),
	})
	var formErr *FormValidationError
	require.True(t, errors.As(err, &formErr), "a renamed image is not a pdf")
	assert.Empty(t, store.uploads)

	upload := func(name string) *models.BoardAction {
		out, err := svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
			Field: "document", FileName: name, Size: int64(len(pdfBody)), Body: strings.NewReader(pdfBody),
		})
		require.NoError(t, err)
		return out
	}
	first := upload("v1.pdf")
	second := upload("v2.pdf")
	require.Len(t, second.Documents, 1)
	assert.Equal(t, "v2.pdf", second.Documents[0].FileName)
	assert.Equal(t, []string{first.Documents[0].PublicID}, store.deleted)
}

func TestFailedUploadKeepsExistingDocument(t *testing.T) {
	svc, repo, store, _ := newTestBoardService(models.PlanPro)
	action, err := svc.CreateAction(context.Background(), signatureInput())
	require.NoError(t, err)

	first, err := svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
		Field: "document", FileName: "v1.pdf", Size: int64(len(pdfBody)), Body: strings.NewReader(pdfBody),
	})
	require.NoError(t, err)
	kept := first.Documents[0].PublicID

	store.uploadErr = errors.New("cloudinary timeout")
	_, err = svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
		Field: "document", FileName: "v2.pdf", Size: int64(len(pdfBody)), Body: strings.NewReader(pdfBody),
	})
	assert.ErrorIs(t, err, store.uploadErr)
	assert.Empty(t, store.deleted)

	stored, err := repo.GetByID(context.Background(), action.ID)
	require.NoError(t, err)
	require.Len(t, stored.Documents, 1)
	assert.Equal(t, kept, stored.Documents[0].PublicID)
	assert.Equal(t, models.ActionStatusSent, stored.Status)
}

func TestUploadDiscardsNewAssetWhenStoreFails(t *testing.T) {
	svc, repo, store, _ := newTestBoardService(models.PlanPro)
	action, err := svc.CreateAction(context.Background(), signatureInput())
	require.NoError(t, err)

	first, err := svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
		Field: "document", FileName: "v1.pdf", Size: int64(len(pdfBody)), Body: strings.NewReader(pdfBody),
	})
	require.NoError(t, err)

	boom := errors.New("mongo down")
	svc.Actions = failingBoard{Board: repo, err: boom}
	_, err = svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
		Field: "document", FileName: "v2.pdf", Size: int64(len(pdfBody)), Body: strings.NewReader(pdfBody),
	})
	assert.ErrorIs(t, err, boom)
	require.Len(t, store.deleted, 1)
	assert.NotEqual(t, first.Documents[0].PublicID, store.deleted[0], "the stored document survives")
}

func TestUploadsDisabledWithoutStorage(t *testing.T) {
	svc, _, _, _ := newTestBoardService(models.PlanPro)
	action, err := svc.CreateAction(context.Background(), signatureInput())
	require.NoError(t, err)

	svc.Storage = nil
	_, err = svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
		Field: "document", FileName: "v1.pdf", Size: int64(len(pdfBody)), Body: strings.NewReader(pdfBody),
	})
	assert.ErrorIs(t, err, ErrUploadsDisabled)

	_, err = svc.CreateAction(context.Background(), signatureInput())
	assert.ErrorIs(t, err, ErrUploadsDisabled, "no action is left waiting for an upload that cannot happen")

	_, err = svc.CreateAction(context.Background(), messageInput(map[string]any{"message_body": "No files"}))
	assert.NoError(t, err)
}

func TestUploadDocumentOwnership(t *testing.T) {
	svc, _, _, _ := newTestBoardService(models.PlanPro)
	action, err := svc.CreateAction(context.Background(), signatureInput())
	require.NoError(t, err)

	_, err = svc.UploadDocument(context.Background(), "intruder", action.ID, UploadFile{
		FileName: "x.pdf", Body: strings.NewReader(pdfBody),
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.GetAction(context.Background(), "intruder", action.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := svc.GetAction(context.Background(), "owner-1", action.ID)
	require.NoError(t, err)
	assert.Equal(t, action.ID, got.ID)
}

func TestUploadWithoutFileField(t *testing.T) {
	svc, _, _, _ := newTestBoardService(models.PlanFree)
	in := messageInput(map[string]any{"message_body": "hi"})
	in.ActionType = actions.TypeResourceLink
	in.FormData = map[string]any{"resource_url": "https://example.com/guide"}
	action, err := svc.CreateAction(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.UploadDocument(context.Background(), "owner-1", action.ID, UploadFile{
		FileName: "x.pdf", Body: strings.NewReader(pdfBody),
	})
	assert.ErrorIs(t, err, ErrNoUploadField)
}

func TestNewFormResolvesCardSources(t *testing.T) {
	svc, _, _, _ := newTestBoardService(models.PlanPro)
	form, opts, err := svc.NewForm(context.Background(), "biz-1", actions.TypeAppointmentScheduling, "en")
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, opts.Plan)
	assert.Equal(t, "Let's schedule a meeting", form.Data()[actions.FieldActionTitle])
	require.Len(t, opts.Sources["platforms"], 1)
	assert.Equal(t, "zoom", opts.Sources["platforms"][0].Value)
	assert.Equal(t, "Card", opts.Sources["payment_methods"][0].Title)
}
