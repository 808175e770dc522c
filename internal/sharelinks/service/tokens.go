package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/domain"
	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/store"
	"github.com/aussiebroadwan/sharelinks/pkg/cryptox"
	"github.com/aussiebroadwan/sharelinks/pkg/spotify"

	"github.com/google/uuid"
)

// DefaultAuthWaitBudget is how long the manager waits for the user to
// complete the consent screen and relay the redirect URL.
const DefaultAuthWaitBudget = 60 * time.Second

var (
	// ErrAuthorizationTimeout reports that no redirect was captured
	// within the wait budget. The user simply didn't finish in time;
	// calling EnsureValidToken again starts a fresh attempt.
	ErrAuthorizationTimeout = errors.New("authorization not completed in time")

	// ErrStateMismatch reports a redirect whose state nonce does not
	// match the one generated for the current attempt. Such a redirect
	// is stale or hijacked and must never reach the token exchange.
	ErrStateMismatch = errors.New("redirect state does not match this authorization attempt")

	// ErrAuthorizationDenied reports that the provider returned an error
	// instead of an authorization code, e.g. the user declined consent.
	ErrAuthorizationDenied = errors.New("provider denied authorization")
)

// AuthorizeFunc hands the authorization URL off for external browsing.
// The core never embeds a browser; whoever wires the manager decides how
// the URL reaches the user.
type AuthorizeFunc func(authorizeURL string)

// TokenManagerConfig carries the collaborators and knobs for a TokenManager.
type TokenManagerConfig struct {
	Client      *spotify.Client
	Credentials store.Credentials
	Capture     *RedirectCapture
	Authorize   AuthorizeFunc
	RedirectURI string

	WaitBudget time.Duration    // defaults to DefaultAuthWaitBudget
	Logger     *slog.Logger     // defaults to slog.Default()
	Now        func() time.Time // defaults to time.Now, overridable in tests
}

// TokenManager owns the single authoritative credential. It loads the
// cached record, refreshes it when expired, and drives a fresh PKCE
// authorization when refreshing is impossible, persisting every successful
// transition before returning.
type TokenManager struct {
	client      *spotify.Client
	creds       store.Credentials
	capture     *RedirectCapture
	authorize   AuthorizeFunc
	redirectURI string
	waitBudget  time.Duration
	logger      *slog.Logger
	now         func() time.Time

	// mu serializes the whole token path: a caller arriving while an
	// authorization is in flight waits for its outcome instead of
	// starting a competing flow.
	mu      sync.Mutex
	current domain.Credential
	cached  bool
}

func NewTokenManager(cfg TokenManagerConfig) *TokenManager {
	if cfg.WaitBudget <= 0 {
		cfg.WaitBudget = DefaultAuthWaitBudget
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TokenManager{
		client:      cfg.Client,
		creds:       cfg.Credentials,
		capture:     cfg.Capture,
		authorize:   cfg.Authorize,
		redirectURI: cfg.RedirectURI,
		waitBudget:  cfg.WaitBudget,
		logger:      cfg.Logger,
		now:         cfg.Now,
	}
}

// EnsureValidToken returns a usable credential, taking whichever path is
// cheapest: the in-memory copy, the persisted record, a refresh grant, or
// a full authorization. Failures are returned to the caller and never
// retried automatically.
func (m *TokenManager) EnsureValidToken(ctx context.Context) (domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	if m.cached && !m.current.Expired(now) {
		return m.current, nil
	}

	if !m.cached {
		if cred, ok, _ := m.creds.Load(ctx); ok {
			m.current = cred
			m.cached = true
			if !cred.Expired(now) {
				return cred, nil
			}
		}
	}

	// Expired (or stale in-memory) record: try the refresh grant first.
	if m.cached && m.current.RefreshToken != "" {
		cred, err := m.refresh(ctx, m.current.RefreshToken)
		if err == nil {
			return cred, nil
		}
		m.logger.Warn("token refresh failed, forcing re-authorization", "error", err)
	}

	// The stale record is useless now; drop it so a failed authorization
	// leaves no misleading state behind.
	m.cached = false
	m.current = domain.Credential{}
	if err := m.creds.Clear(ctx); err != nil {
		m.logger.Warn("failed to clear stale credential", "error", err)
	}

	return m.runAuthorization(ctx)
}

// Invalidate drops the in-memory and persisted credential, forcing the
// next EnsureValidToken call to run a fresh authorization.
func (m *TokenManager) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cached = false
	m.current = domain.Credential{}
	return m.creds.Clear(ctx)
}

// refresh exchanges the refresh token for a new record. The new record
// fully replaces the old one and is persisted before use; when the
// provider omits a refresh token the prior one is retained.
func (m *TokenManager) refresh(ctx context.Context, refreshToken string) (domain.Credential, error) {
	resp, err := m.client.RefreshGrant(ctx, refreshToken)
	if err != nil {
		return domain.Credential{}, err
	}

	cred := credentialFromResponse(resp, m.now())
	if cred.RefreshToken == "" {
		cred.RefreshToken = refreshToken
	}

	m.persist(ctx, cred)
	m.current = cred
	m.cached = true

	m.logger.Debug("access token refreshed", "expires_at", cred.ExpiresAt())
	return cred, nil
}

// runAuthorization drives one full PKCE authorization attempt: fresh
// verifier/challenge/state, URL hand-off, redirect capture, strict parse,
// state check, code exchange, persist.
func (m *TokenManager) runAuthorization(ctx context.Context) (domain.Credential, error) {
	verifier, err := cryptox.GenerateVerifier()
	if err != nil {
		return domain.Credential{}, fmt.Errorf("failed to start authorization: %w", err)
	}
	challenge := cryptox.DeriveChallenge(verifier)
	state := uuid.NewString()

	authorizeURL := m.client.BuildAuthorizeURL(m.redirectURI, state, challenge)
	if m.authorize != nil {
		m.authorize(authorizeURL)
	}

	raw := m.capture.Await(ctx, m.redirectURI, m.waitBudget)
	if raw == "" {
		return domain.Credential{}, ErrAuthorizationTimeout
	}

	result, err := domain.ParseRedirect(raw)
	if err != nil {
		return domain.Credential{}, err
	}
	if result.State != state {
		return domain.Credential{}, ErrStateMismatch
	}
	if result.ErrorCode != "" {
		return domain.Credential{}, fmt.Errorf("%w: %s", ErrAuthorizationDenied, result.ErrorCode)
	}

	resp, err := m.client.ExchangeAuthorizationCode(ctx, result.Code, m.redirectURI, verifier)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	cred := credentialFromResponse(resp, m.now())
	m.persist(ctx, cred)
	m.current = cred
	m.cached = true

	m.logger.Info("authorization completed", "expires_at", cred.ExpiresAt())
	return cred, nil
}

// persist saves the credential, logging rather than failing: the caller
// holds a perfectly valid token either way.
func (m *TokenManager) persist(ctx context.Context, cred domain.Credential) {
	if err := m.creds.Save(ctx, cred); err != nil {
		m.logger.Error("failed to persist credential", "error", err)
	}
}

func credentialFromResponse(resp *spotify.TokenResponse, now time.Time) domain.Credential {
	return domain.Credential{
		AccessToken:  resp.AccessToken,
		TokenType:    resp.TokenType,
		Scope:        resp.Scope,
		ExpiresIn:    resp.ExpiresIn,
		RefreshToken: resp.RefreshToken,
		IssuedAt:     now,
	}
}
