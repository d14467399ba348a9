package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	pkgauth "github.com/northhaul/fleetops-backend/pkg/auth"
	"github.com/northhaul/fleetops-backend/pkg/config"
	pkgerrors "github.com/northhaul/fleetops-backend/pkg/errors"
)

// LoginInput carries the credential pair submitted to the login endpoint.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the minted access token plus its lifetime.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Service authenticates the configured API credential pair and mints
// access tokens for it.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type service struct {
	creds config.AuthConfig
	jwt   config.JWTConfig
	now   func() time.Time
}

func NewService(creds config.AuthConfig, jwtCfg config.JWTConfig) Service {
	return &service{creds: creds, jwt: jwtCfg, now: time.Now}
}

func (s *service) Login(_ context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}
	if s.creds.Username == "" || s.creds.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "login credentials are not configured")
	}

	// Compare both fields unconditionally to keep timing independent of
	// which one mismatched.
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.creds.Username))
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.creds.Password))
	if userOK&passOK != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")
	}

	token, err := pkgauth.MintAccessToken(s.jwt, s.now().UTC(), input.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwt.ExpirationMinutes * 60,
	}, nil
}
