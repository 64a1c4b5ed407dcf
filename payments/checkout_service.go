package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	config "github.com/kiptoo5489/learnhub/configs"
)

// CheckoutClient talks to the order-based payment gateway. The gateway hands
// back an order id that the browser SDK charges against; completion is proven
// to us with an HMAC signature over the order and payment ids.
type CheckoutClient struct {
	APIBase   string
	KeyID     string
	KeySecret string
}

func NewCheckoutClient() *CheckoutClient {
	return &CheckoutClient{
		APIBase:   config.ConfigOr("RAZORPAY_API_BASE_URL", "https://api.razorpay.com"),
		KeyID:     config.Config("RAZORPAY_KEY_ID"),
		KeySecret: config.Config("RAZORPAY_KEY_SECRET"),
	}
}

type CheckoutOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder registers a pending order with the gateway. Amount is in minor
// currency units.
func (cc *CheckoutClient) CreateOrder(amount int64, currency, receipt string) (*CheckoutOrder, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/orders", cc.APIBase), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(cc.KeyID, cc.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create order: %s", string(respBody))
	}

	var order CheckoutOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifySignature recomputes HMAC-SHA256(secret, orderID+"|"+paymentID) and
// compares it to the supplied hex signature in constant time.
func (cc *CheckoutClient) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(cc.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
