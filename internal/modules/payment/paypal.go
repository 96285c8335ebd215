package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PayPalClient implements Provider against the PayPal REST payments
// API. A fresh OAuth token is fetched per call; top-ups are rare
// enough that caching the token buys nothing.
type PayPalClient struct {
	baseURL  string
	clientID string
	secret   string
	http     *http.Client
}

func NewPayPalClient(baseURL, clientID, secret string) *PayPalClient {
	return &PayPalClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		secret:   secret,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *PayPalClient) CreatePayment(ctx context.Context, amount float64, returnURL, cancelURL string) (*CreatedPayment, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"intent": "sale",
		"payer":  map[string]any{"payment_method": "paypal"},
		"transactions": []map[string]any{{
			"amount": map[string]any{
				"total":    strconv.FormatFloat(amount, 'f', 2, 64),
				"currency": "USD",
			},
			"description": "Wallet top-up",
		}},
		"redirect_urls": map[string]any{
			"return_url": returnURL,
			"cancel_url": cancelURL,
		},
	}

	var resp struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := p.post(ctx, "/v1/payments/payment", token, body, &resp); err != nil {
		return nil, err
	}

	created := &CreatedPayment{ID: resp.ID}
	for _, l := range resp.Links {
		if l.Rel == "approval_url" {
			created.ApprovalURL = l.Href
		}
	}
	if created.ApprovalURL == "" {
		return nil, fmt.Errorf("paypal: no approval_url in response for payment %s", resp.ID)
	}
	return created, nil
}

func (p *PayPalClient) ExecutePayment(ctx context.Context, paymentID, payerID string) (*ExecutedPayment, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]any{"payer_id": payerID}

	var resp struct {
		ID           string `json:"id"`
		State        string `json:"state"`
		Transactions []struct {
			Amount struct {
				Total string `json:"total"`
			} `json:"amount"`
		} `json:"transactions"`
	}
	path := fmt.Sprintf("/v1/payments/payment/%s/execute", url.PathEscape(paymentID))
	if err := p.post(ctx, path, token, body, &resp); err != nil {
		return nil, err
	}

	executed := &ExecutedPayment{ID: resp.ID, State: resp.State}
	if len(resp.Transactions) > 0 {
		executed.Amount, _ = strconv.ParseFloat(resp.Transactions[0].Amount.Total, 64)
	}
	return executed, nil
}

func (p *PayPalClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.clientID, p.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal: token request failed with status %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (p *PayPalClient) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("paypal: %s failed with status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
