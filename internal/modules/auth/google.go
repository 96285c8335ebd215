package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// googleVerifier exchanges an OAuth authorization code for the user's
// verified profile via Google's token and userinfo endpoints.
type googleVerifier struct {
	clientID     string
	clientSecret string
	redirectURL  string
	tokenURL     string
	userinfoURL  string
	client       *http.Client
}

func NewGoogleVerifier(clientID, clientSecret, redirectURL string) GoogleVerifier {
	return &googleVerifier{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		tokenURL:     "https://oauth2.googleapis.com/token",
		userinfoURL:  "https://www.googleapis.com/oauth2/v2/userinfo",
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *googleVerifier) Verify(ctx context.Context, code string) (*GoogleIdentity, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {g.clientID},
		"client_secret": {g.clientSecret},
		"redirect_uri":  {g.redirectURL},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google token exchange: status %d", resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, err
	}

	infoReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	infoReq.Header.Set("Authorization", "Bearer "+token.AccessToken)

	infoResp, err := g.client.Do(infoReq)
	if err != nil {
		return nil, err
	}
	defer infoResp.Body.Close()

	if infoResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo: status %d", infoResp.StatusCode)
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(infoResp.Body).Decode(&info); err != nil {
		return nil, err
	}

	return &GoogleIdentity{ID: info.ID, Email: info.Email, Name: info.Name}, nil
}
