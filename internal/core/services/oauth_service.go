package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

const (
	oauthStateTTL       = 10 * time.Minute
	GoogleUserInfoURL   = "https://openidconnect.googleapis.com/v1/userinfo"
	maxUserInfoBodySize = 1 << 20
)

var (
	ErrOAuthExchange     = errors.New("oauth code exchange failed")
	ErrOAuthUserInfo     = errors.New("oauth userinfo request failed")
	ErrOAuthEmailMissing = errors.New("oauth provider returned no verified email")
)

type OAuthService struct {
	provider    string
	config      *oauth2.Config
	userInfoURL string
	states      domain.OAuthStateStore
	users       domain.UserRepository
	tokens      *TokenService
}

func NewOAuthService(provider string, config *oauth2.Config, userInfoURL string, states domain.OAuthStateStore, users domain.UserRepository, tokens *TokenService) *OAuthService {
	return &OAuthService{
		provider:    provider,
		config:      config,
		userInfoURL: userInfoURL,
		states:      states,
		users:       users,
		tokens:      tokens,
	}
}

type userInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

type OAuthResult struct {
	User  *domain.User
	Token string
}

// Begin starts an authorization-code flow with PKCE and returns the URL
// the browser must be sent to.
func (s *OAuthService) Begin(ctx context.Context) (string, error) {
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	if err := s.states.Save(ctx, state, verifier, oauthStateTTL); err != nil {
		return "", fmt.Errorf("oauth service: failed to save state: %w", err)
	}

	return s.config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier)), nil
}

// Complete finishes the flow the provider redirected back with.
func (s *OAuthService) Complete(ctx context.Context, state, code string) (*OAuthResult, error) {
	if state == "" || code == "" {
		return nil, domain.ErrOAuthStateNotFound
	}

	verifier, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, err
	}

	token, err := s.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, info)
	if err != nil {
		return nil, err
	}

	signed, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &OAuthResult{User: user, Token: signed}, nil
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*userInfo, error) {
	client := s.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthUserInfo, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrOAuthUserInfo, resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBodySize)).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthUserInfo, err)
	}
	if info.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrOAuthUserInfo)
	}
	if strings.TrimSpace(info.Email) == "" || !info.EmailVerified {
		return nil, ErrOAuthEmailMissing
	}

	return &info, nil
}

// resolveUser finds the account for an external identity. Lookup goes by
// provider subject first, then by verified email (linking the identity to an
// existing password account), and creates the account otherwise.
func (s *OAuthService) resolveUser(ctx context.Context, info *userInfo) (*domain.User, error) {
	user, err := s.users.GetByProviderSubject(ctx, s.provider, info.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("oauth service: lookup by subject failed: %w", err)
	}

	user, err = s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(info.Email)))
	if err == nil {
		if err := s.users.LinkProvider(ctx, user.ID, s.provider, info.Subject); err != nil {
			return nil, fmt.Errorf("oauth service: failed to link provider: %w", err)
		}
		log.Printf("[AUTH] Linked %s identity to existing account %s", s.provider, user.ID)
		user.Provider = s.provider
		user.ProviderSubject = info.Subject
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("oauth service: lookup by email failed: %w", err)
	}

	user, err = domain.NewOAuthUser(uuid.NewString(), info.Email, s.provider, info.Subject)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("oauth service: failed to create user: %w", err)
	}

	return user, nil
}
