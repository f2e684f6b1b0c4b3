package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"bizhub/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

var ErrInvalidAmount = errors.New("payment amount must be positive")

// PaymentService creates payment intents for payment_request actions.
type PaymentService interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*models.ActionPayment, error)
	CancelIntent(ctx context.Context, intentID string) error
}

// IntentRequest describes the money a business asks for.
type IntentRequest struct {
	Amount      float64
	Currency    string
	Description string
	Metadata    map[string]string
}

type paymentIntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Cancel(id string, params *stripe.PaymentIntentCancelParams) (*stripe.PaymentIntent, error)
}

// StripePaymentService implements PaymentService on the Stripe API.
type StripePaymentService struct {
	intents paymentIntentAPI
	logger  *zap.Logger
}

func NewStripePaymentService(apiKey string, logger *zap.Logger) (*StripePaymentService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("stripe: api key is required")
	}
	sc := client.New(apiKey, nil)
	return newStripePaymentService(sc.PaymentIntents, logger), nil
}

func newStripePaymentService(intents paymentIntentAPI, logger *zap.Logger) *StripePaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripePaymentService{intents: intents, logger: logger}
}

func (s *StripePaymentService) CreateIntent(ctx context.Context, req IntentRequest) (*models.ActionPayment, error) {
	cents := int64(math.Round(req.Amount * 100))
	if cents <= 0 {
		return nil, ErrInvalidAmount
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	s.logger.Info("payment intent created", zap.String("intentID", pi.ID), zap.Int64("amount", cents), zap.String("currency", currency))
	return &models.ActionPayment{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       float64(pi.Amount) / 100,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

// CancelIntent abandons an intent that no stored action refers to.
func (s *StripePaymentService) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String(string(stripe.PaymentIntentCancellationReasonAbandoned)),
	}
	params.Context = ctx
	if _, err := s.intents.Cancel(intentID, params); err != nil {
		return fmt.Errorf("stripe: cancel payment intent %s: %w", intentID, err)
	}
	s.logger.Info("payment intent canceled", zap.String("intentID", intentID))
	return nil
}
