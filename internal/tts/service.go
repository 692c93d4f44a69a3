package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// tokenExpiryMargin is subtracted from the vendor's expires_in so a token is
// refreshed slightly before it actually lapses.
const tokenExpiryMargin = 60 * time.Second

// ErrSynthesisFailed indicates the vendor answered with something other than
// audio; the detail carries a snippet of the upstream body.
type SynthesisError struct {
	Detail string
}

func (e *SynthesisError) Error() string {
	return "tts synthesis failed: " + e.Detail
}

// Service proxies text-to-speech through the Baidu short-text API, caching
// the OAuth access token until shortly before expiry. Refresh is serialized
// per service instance so concurrent expiries fetch one token, not many.
type Service struct {
	apiKey     string
	secretKey  string
	tokenURL   string
	ttsURL     string
	httpClient *http.Client

	mu           sync.Mutex
	token        string
	tokenExpires time.Time
}

func NewService(apiKey, secretKey, tokenURL, ttsURL string, timeout time.Duration) *Service {
	return &Service{
		apiKey:     apiKey,
		secretKey:  secretKey,
		tokenURL:   tokenURL,
		ttsURL:     ttsURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both vendor credentials are present.
func (s *Service) Configured() bool {
	return s.apiKey != "" && s.secretKey != ""
}

// accessToken returns a cached token, fetching a fresh one when the cached
// token is missing or within the expiry margin.
func (s *Service) accessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.token != "" && now.Before(s.tokenExpires) {
		return s.token, nil
	}

	q := url.Values{}
	q.Set("grant_type", "client_credentials")
	q.Set("client_id", s.apiKey)
	q.Set("client_secret", s.secretKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tokenURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	expiresIn := payload.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 2592000 // vendor default: 30 days
	}

	s.token = payload.AccessToken
	s.tokenExpires = now.Add(time.Duration(expiresIn)*time.Second - tokenExpiryMargin)
	return s.token, nil
}

// Synthesize converts text to audio. spd is clamped to 0-9; per must be one
// of the supported voices (0, 1, 3, 4), anything else falls back to 4.
// Returns the audio bytes with the upstream content type, or a
// *SynthesisError when the vendor answered with a non-audio body.
func (s *Service) Synthesize(ctx context.Context, text string, spd, per int) (contentType string, audio []byte, err error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return "", nil, err
	}

	if spd < 0 {
		spd = 0
	} else if spd > 9 {
		spd = 9
	}
	switch per {
	case 0, 1, 3, 4:
	default:
		per = 4
	}

	form := url.Values{}
	form.Set("tex", text)
	form.Set("tok", token)
	form.Set("cuid", "web-client")
	form.Set("ctp", "1")
	form.Set("lan", "zh")
	form.Set("spd", strconv.Itoa(spd))
	form.Set("pit", "5")
	form.Set("per", strconv.Itoa(per))
	form.Set("aue", "3")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ttsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", nil, fmt.Errorf("create synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("call tts endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read tts response: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "audio") {
		detail := string(body)
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return "", nil, &SynthesisError{Detail: detail}
	}

	return ct, body, nil
}
