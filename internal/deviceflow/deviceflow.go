// Package deviceflow implements the OAuth 2.0 device-authorization grant:
// request a device code, surface the user code and verification URI, then
// poll the token endpoint until the server reports a terminal outcome.
//
// The flow is modeled as an explicit state machine. INIT moves through
// CODE_REQUESTED and POLLING into exactly one of the four terminal states;
// a terminal state is never left again, and caller cancellation is its own
// outcome rather than being folded into EXPIRED or ERROR.
package deviceflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// State is the current position of a flow.
type State string

const (
	StateInit          State = "INIT"
	StateCodeRequested State = "CODE_REQUESTED"
	StatePolling       State = "POLLING"
	StateAuthorized    State = "AUTHORIZED"
	StateDenied        State = "DENIED"
	StateExpired       State = "EXPIRED"
	StateError         State = "ERROR"
)

// Terminal reports whether no further transition is allowed from s.
func (s State) Terminal() bool {
	switch s {
	case StateAuthorized, StateDenied, StateExpired, StateError:
		return true
	}
	return false
}

// Errors distinguishing the terminal non-success outcomes from transport
// failures. All three unwrap to ErrAuthorization so callers can treat them
// as one authentication-error class.
var (
	ErrAuthorization = errors.New("device authorization failed")
	ErrExpired       = fmt.Errorf("%w: device code expired", ErrAuthorization)
	ErrDenied        = fmt.Errorf("%w: authorization denied by user", ErrAuthorization)
)

// defaultInterval is used when the server omits the poll interval.
const defaultInterval = 5 * time.Second

// slowDownStep is the server-mandated backoff increment for slow_down.
// Variable so tests can compress the timeline.
var slowDownStep = 5 * time.Second

// Session holds the server-issued device authorization and its current
// state. UserCode and VerificationURI are the human-facing half; everything
// else drives polling.
type Session struct {
	DeviceCode      string
	UserCode        string
	VerificationURI string
	Interval        time.Duration
	ExpiresAt       time.Time
	State           State
}

// Config fixes one authorization server.
type Config struct {
	ClientID      string
	Scope         string
	DeviceCodeURL string
	TokenURL      string

	// HTTPClient defaults to a 30-second-timeout client.
	HTTPClient *http.Client

	// Persist, when set, receives the access token before PollToken
	// returns, so a crash after authorization still leaves the credential
	// saved.
	Persist func(token string) error
}

// Flow drives one device authorization end to end.
type Flow struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Flow {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Flow{cfg: cfg, client: client}
}

// RequestCode asks the authorization server for a device code. On success
// the session is in CODE_REQUESTED and carries the user-facing code and
// URI; this is the only point of the flow requiring human interaction.
func (f *Flow) RequestCode(ctx context.Context) (*Session, error) {
	form := url.Values{}
	form.Set("client_id", f.cfg.ClientID)
	form.Set("scope", f.cfg.Scope)

	body, status, err := f.postForm(ctx, f.cfg.DeviceCodeURL, form)
	if err != nil {
		return &Session{State: StateError}, fmt.Errorf("requesting device code: %w", err)
	}
	if status != http.StatusOK {
		return &Session{State: StateError}, fmt.Errorf("requesting device code: HTTP %d", status)
	}

	session := &Session{
		DeviceCode:      gjson.GetBytes(body, "device_code").String(),
		UserCode:        gjson.GetBytes(body, "user_code").String(),
		VerificationURI: gjson.GetBytes(body, "verification_uri").String(),
		Interval:        defaultInterval,
		State:           StateCodeRequested,
	}
	if interval := gjson.GetBytes(body, "interval"); interval.Type == gjson.Number && interval.Int() > 0 {
		session.Interval = time.Duration(interval.Int()) * time.Second
	}
	if expires := gjson.GetBytes(body, "expires_in"); expires.Type == gjson.Number && expires.Int() > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(expires.Int()) * time.Second)
	}

	if session.DeviceCode == "" {
		session.State = StateError
		return session, fmt.Errorf("requesting device code: response missing device_code")
	}
	return session, nil
}

// PollToken polls the token endpoint on the session's cadence until the
// server reports a terminal outcome or ctx is cancelled. slow_down
// responses stretch the cadence by five seconds each, as the server
// requires. The loop has no bound of its own beyond the server-declared
// code expiry.
func (f *Flow) PollToken(ctx context.Context, session *Session) (string, error) {
	if session.State.Terminal() {
		return "", fmt.Errorf("device flow already finished in state %s", session.State)
	}
	session.State = StatePolling

	interval := session.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	form := url.Values{}
	form.Set("client_id", f.cfg.ClientID)
	form.Set("device_code", session.DeviceCode)
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:device_code")

	for {
		select {
		case <-ctx.Done():
			// Cancellation is not a terminal server outcome; the session
			// stays in POLLING and the caller sees the context error.
			return "", ctx.Err()
		case <-ticker.C:
		}

		if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
			session.State = StateExpired
			return "", ErrExpired
		}

		body, _, err := f.postForm(ctx, f.cfg.TokenURL, form)
		if err != nil {
			session.State = StateError
			return "", fmt.Errorf("polling for token: %w", err)
		}

		if token := gjson.GetBytes(body, "access_token").String(); token != "" {
			if f.cfg.Persist != nil {
				if err := f.cfg.Persist(token); err != nil {
					session.State = StateError
					return "", fmt.Errorf("saving token: %w", err)
				}
			}
			session.State = StateAuthorized
			return token, nil
		}

		switch oauthErr := gjson.GetBytes(body, "error").String(); oauthErr {
		case "", "authorization_pending":
			continue
		case "slow_down":
			interval += slowDownStep
			ticker.Reset(interval)
		case "expired_token":
			session.State = StateExpired
			return "", ErrExpired
		case "access_denied":
			session.State = StateDenied
			return "", ErrDenied
		default:
			session.State = StateError
			return "", fmt.Errorf("%w: %s", ErrAuthorization, oauthErr)
		}
	}
}

func (f *Flow) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
