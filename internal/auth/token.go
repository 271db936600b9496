package auth

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
)

// tokenEnv holds raw env values before post-parse validation.
type tokenEnv struct {
	Issuer    string `env:"TASKDECK_SESSION_ISSUER"`
	Audience  string `env:"TASKDECK_SESSION_AUDIENCE"`
	PublicKey string `env:"TASKDECK_SESSION_PUBLIC_KEY"`
}

// TokenVerifierConfig defines how stateless session tokens are verified.
type TokenVerifierConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// LoadTokenVerifierConfigFromEnv reads session token verification
// configuration issued by the identity provider.
func LoadTokenVerifierConfigFromEnv(now func() time.Time) (TokenVerifierConfig, error) {
	var raw tokenEnv
	if err := env.Parse(&raw); err != nil {
		return TokenVerifierConfig{}, fmt.Errorf("parse session token env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return TokenVerifierConfig{}, fmt.Errorf("TASKDECK_SESSION_ISSUER is required")
	}
	if audience == "" {
		return TokenVerifierConfig{}, fmt.Errorf("TASKDECK_SESSION_AUDIENCE is required")
	}
	if publicKey == "" {
		return TokenVerifierConfig{}, fmt.Errorf("TASKDECK_SESSION_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return TokenVerifierConfig{}, fmt.Errorf("decode session public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return TokenVerifierConfig{}, fmt.Errorf("session public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return TokenVerifierConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// TokenIntrospector verifies ed25519-signed session JWTs locally, without
// a round trip to the identity provider.
type TokenIntrospector struct {
	cfg TokenVerifierConfig
}

// NewTokenIntrospector creates a local session token verifier.
func NewTokenIntrospector(cfg TokenVerifierConfig) (*TokenIntrospector, error) {
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return nil, errors.New("session token verifier is not configured")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TokenIntrospector{cfg: cfg}, nil
}

// IntrospectSession verifies the token signature and claims and resolves
// the subject as the acting user.
func (t *TokenIntrospector) IntrospectSession(_ context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrInvalidSession
	}

	var parsed jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return t.cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Identity{}, ErrInvalidSession
	}

	if parsed.Issuer != t.cfg.Issuer {
		return Identity{}, ErrInvalidSession
	}
	if !audienceContains(parsed.Audience, t.cfg.Audience) {
		return Identity{}, ErrInvalidSession
	}
	if parsed.ExpiresAt == nil {
		return Identity{}, ErrInvalidSession
	}

	now := t.cfg.Now().UTC()
	if !parsed.ExpiresAt.Time.UTC().After(now) {
		return Identity{}, ErrInvalidSession
	}
	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time.UTC()) {
		return Identity{}, ErrInvalidSession
	}

	subject := strings.TrimSpace(parsed.Subject)
	if subject == "" {
		return Identity{}, ErrInvalidSession
	}
	return Identity{UserID: subject}, nil
}

func audienceContains(audience jwt.ClaimStrings, expected string) bool {
	for _, value := range audience {
		if value == expected {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
		return decoded, nil
	}
	return base64.RawStdEncoding.DecodeString(value)
}
