package utils

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

func getPaystackConfig() (baseURL, secretKey, callbackURL string, err error) {
	baseURL = os.Getenv("PAYSTACK_BASE_URL")
	secretKey = os.Getenv("PAYSTACK_SECRET_KEY")
	callbackURL = os.Getenv("PAYSTACK_CALLBACK_URL")

	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	if secretKey == "" {
		return "", "", "", fmt.Errorf("PAYSTACK_SECRET_KEY is required")
	}
	return baseURL, secretKey, callbackURL, nil
}

// ValidPaystackSignature recomputes HMAC-SHA512 over the raw request body with
// the secret key and compares it to the x-paystack-signature header value.
func ValidPaystackSignature(secretKey string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// PaystackClient calls the Paystack REST API.
type PaystackClient struct {
	HTTP *http.Client
}

func NewPaystackClient() *PaystackClient {
	return &PaystackClient{HTTP: &http.Client{Timeout: 30 * time.Second}}
}

// PaystackInitResult is the data section of /transaction/initialize
type PaystackInitResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackInitResponse struct {
	Status  bool               `json:"status"`
	Message string             `json:"message"`
	Data    PaystackInitResult `json:"data"`
}

// InitializeTransaction creates a hosted checkout for the given amount (major
// units) and returns the authorization URL. The donation id travels in the
// transaction metadata so the webhook can correlate the callback.
func (c *PaystackClient) InitializeTransaction(ctx context.Context, email string, amount float64, currency, donationID string) (*PaystackInitResult, error) {
	baseURL, secretKey, callbackURL, err := getPaystackConfig()
	if err != nil {
		return nil, err
	}
	path := "/transaction/initialize"
	url := strings.TrimRight(baseURL, "/") + path

	// Paystack expects amounts in the currency subunit (pesewas/kobo)
	bodyObj := map[string]interface{}{
		"email":    email,
		"amount":   int64(amount*100 + 0.5),
		"currency": currency,
		"metadata": map[string]string{"donation_id": donationID},
	}
	if callbackURL != "" {
		bodyObj["callback_url"] = callbackURL
	}
	body, _ := json.Marshal(bodyObj)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secretKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	var result paystackInitResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse initialize response: %w (body: %s)", err, string(respBody))
	}
	if !result.Status {
		return nil, fmt.Errorf("paystack initialize: %s", result.Message)
	}
	if result.Data.AuthorizationURL == "" {
		return nil, fmt.Errorf("paystack initialize: empty authorization url")
	}
	return &result.Data, nil
}

// PaystackVerifyResult is the data section of /transaction/verify
type PaystackVerifyResult struct {
	Status    string `json:"status"` // success, failed, abandoned
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Metadata  struct {
		DonationID string `json:"donation_id"`
	} `json:"metadata"`
}

type paystackVerifyResponse struct {
	Status  bool                 `json:"status"`
	Message string               `json:"message"`
	Data    PaystackVerifyResult `json:"data"`
}

// VerifyTransaction checks the status of a transaction by reference.
func (c *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*PaystackVerifyResult, error) {
	baseURL, secretKey, _, err := getPaystackConfig()
	if err != nil {
		return nil, err
	}
	url := strings.TrimRight(baseURL, "/") + "/transaction/verify/" + reference

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+secretKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	var result paystackVerifyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse verify response: %w", err)
	}
	if !result.Status {
		return nil, fmt.Errorf("paystack verify: %s", result.Message)
	}
	return &result.Data, nil
}

// IsPaystackSuccessStatus returns true if a verify status means the charge settled.
func IsPaystackSuccessStatus(status string) bool {
	return strings.TrimSpace(status) == "success"
}
