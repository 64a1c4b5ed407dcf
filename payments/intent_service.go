package payments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	config "github.com/kiptoo5489/learnhub/configs"
)

// IntentClient talks to the card gateway's payment-intent API. The client
// secret returned from CreateIntent is handed to the browser SDK; the server
// later re-fetches the intent to learn whether the charge succeeded.
type IntentClient struct {
	client *resty.Client
}

func NewIntentClient() *IntentClient {
	return NewIntentClientWith(
		config.ConfigOr("STRIPE_API_BASE_URL", "https://api.stripe.com"),
		config.Config("STRIPE_SECRET_KEY"),
	)
}

// NewIntentClientWith builds a client against an explicit gateway base URL.
func NewIntentClientWith(apiBase, secretKey string) *IntentClient {
	client := resty.New().
		SetBaseURL(apiBase).
		SetBasicAuth(secretKey, "").
		SetTimeout(15 * time.Second)
	return &IntentClient{client: client}
}

type PaymentIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Metadata     map[string]string `json:"metadata"`
}

func (ic *IntentClient) CreateIntent(amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	form := map[string]string{
		"amount":   strconv.FormatInt(amount, 10),
		"currency": currency,
	}
	for k, v := range metadata {
		form[fmt.Sprintf("metadata[%s]", k)] = v
	}

	var intent PaymentIntent
	resp, err := ic.client.R().
		SetFormData(form).
		SetResult(&intent).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to create payment intent: %s", resp.String())
	}
	return &intent, nil
}

func (ic *IntentClient) RetrieveIntent(id string) (*PaymentIntent, error) {
	var intent PaymentIntent
	resp, err := ic.client.R().
		SetResult(&intent).
		Get(fmt.Sprintf("/v1/payment_intents/%s", id))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to retrieve payment intent: %s", resp.String())
	}
	return &intent, nil
}
