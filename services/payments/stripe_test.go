package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeIntents struct {
	params   *stripe.PaymentIntentParams
	canceled []string
	reason   string
	err      error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.params = params
	return &stripe.PaymentIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret",
		Amount:       *params.Amount,
		Currency:     stripe.Currency(*params.Currency),
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
	}, nil
}

func (f *fakeIntents) Cancel(id string, params *stripe.PaymentIntentCancelParams) (*stripe.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.canceled = append(f.canceled, id)
	f.reason = *params.CancellationReason
	return &stripe.PaymentIntent{ID: id, Status: stripe.PaymentIntentStatusCanceled}, nil
}

func TestCreateIntentConvertsToCents(t *testing.T) {
	api := &fakeIntents{}
	svc := newStripePaymentService(api, nil)
	payment, err := svc.CreateIntent(context.Background(), IntentRequest{
		Amount:      19.99,
		Currency:    " EUR ",
		Description: "Deposit",
		Metadata:    map[string]string{"actionId": "act-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1999), *api.params.Amount)
	assert.Equal(t, "eur", *api.params.Currency)
	assert.Equal(t, "Deposit", *api.params.Description)
	assert.Equal(t, "act-1", api.params.Metadata["actionId"])
	assert.True(t, *api.params.AutomaticPaymentMethods.Enabled)

	assert.Equal(t, "pi_123", payment.IntentID)
	assert.Equal(t, "pi_123_secret", payment.ClientSecret)
	assert.Equal(t, 19.99, payment.Amount)
	assert.Equal(t, "eur", payment.Currency)
	assert.Equal(t, "requires_payment_method", payment.Status)
}

func TestCreateIntentDefaultsCurrency(t *testing.T) {
	api := &fakeIntents{}
	_, err := newStripePaymentService(api, nil).CreateIntent(context.Background(), IntentRequest{Amount: 5})
	require.NoError(t, err)
	assert.Equal(t, "usd", *api.params.Currency)
	assert.Nil(t, api.params.Description)
}

func TestCreateIntentRejectsNonPositiveAmounts(t *testing.T) {
	svc := newStripePaymentService(&fakeIntents{}, nil)
	for _, amount := range []float64{0, -3, 0.004} {
		_, err := svc.CreateIntent(context.Background(), IntentRequest{Amount: amount})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", amount)
	}
}

func TestCreateIntentWrapsStripeErrors(t *testing.T) {
	boom := errors.New("card network down")
	_, err := newStripePaymentService(&fakeIntents{err: boom}, nil).CreateIntent(context.Background(), IntentRequest{Amount: 10})
	assert.ErrorIs(t, err, boom)
}

func TestNewStripePaymentServiceNeedsKey(t *testing.T) {
	_, err := NewStripePaymentService("  ", nil)
	assert.Error(t, err)
}

func TestCancelIntent(t *testing.T) {
	api := &fakeIntents{}
	require.NoError(t, newStripePaymentService(api, nil).CancelIntent(context.Background(), "pi_9"))
	assert.Equal(t, []string{"pi_9"}, api.canceled)
	assert.Equal(t, "abandoned", api.reason)

	boom := errors.New("stripe unavailable")
	err := newStripePaymentService(&fakeIntents{err: boom}, nil).CancelIntent(context.Background(), "pi_9")
	assert.ErrorIs(t, err, boom)
}
