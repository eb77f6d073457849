package services

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// PaymentGateway is the slice of the payment client checkout depends on.
type PaymentGateway interface {
	CreateIntent(amount decimal.Decimal, currency string, metadata map[string]string) *stripe.PaymentIntent
}

// PaymentClient wraps the Stripe API. Constructed once at startup and passed
// to the controllers that need it; there is no package-level client.
//
// Provider-side failures come back as a nil intent, not an error: callers
// must treat nil as "payment step failed" and abort whatever surrounds it.
type PaymentClient struct {
	api           *client.API
	webhookSecret string
}

func NewPaymentClient(secretKey, webhookSecret string) *PaymentClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &PaymentClient{api: api, webhookSecret: webhookSecret}
}

// CreateIntent opens a payment intent for amount in the given currency.
// Amount is converted to the provider's minor units (cents), truncating.
func (p *PaymentClient) CreateIntent(amount decimal.Decimal, currency string, metadata map[string]string) *stripe.PaymentIntent {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount.Mul(decimal.NewFromInt(100)).IntPart()),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		log.Error().Err(err).Str("currency", currency).Msg("Stripe error")
		return nil
	}
	return intent
}

func (p *PaymentClient) ConfirmIntent(paymentIntentID string) *stripe.PaymentIntent {
	intent, err := p.api.PaymentIntents.Confirm(paymentIntentID, &stripe.PaymentIntentConfirmParams{})
	if err != nil {
		log.Error().Err(err).Str("payment_intent", paymentIntentID).Msg("Payment confirmation error")
		return nil
	}
	return intent
}

// VerifyWebhook checks the provider signature over the raw body and returns
// the decoded event. Bad signatures and malformed payloads are errors.
func (p *PaymentClient) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
}
