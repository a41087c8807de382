package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/errs"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
)

// AuthConfig configures bearer token validation. Exactly one of SigningKey
// (HMAC) or PublicKeyFile (RSA, PEM encoded) must be set.
type AuthConfig struct {
	Issuer        string        `env:"AUTH_ISSUER" required:"true"`
	Audience      string        `env:"AUTH_AUDIENCE" required:"true"`
	SigningKey    string        `env:"AUTH_SIGNING_KEY"`
	PublicKeyFile string        `env:"AUTH_PUBLIC_KEY_FILE"`
	Leeway        time.Duration `env:"AUTH_LEEWAY" default:"30s"`
}

var errMissingToken = errors.New("expected authorization header format: Bearer <token>")

// Authenticator validates tokens issued by one identity issuer for one
// audience.
type Authenticator struct {
	issuer   string
	audience string
	leeway   time.Duration
	methods  []string
	key      any
}

// NewAuthenticator loads the verification key described by cfg.
func NewAuthenticator(cfg AuthConfig) (*Authenticator, error) {
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("auth: issuer and audience are required")
	}

	a := Authenticator{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		leeway:   cfg.Leeway,
	}

	switch {
	case cfg.PublicKeyFile != "" && cfg.SigningKey != "":
		return nil, errors.New("auth: set either a signing key or a public key file, not both")

	case cfg.PublicKeyFile != "":
		pem, err := os.ReadFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("auth: reading public key: %w", err)
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
		if err != nil {
			return nil, fmt.Errorf("auth: parsing public key: %w", err)
		}
		a.key = key
		a.methods = []string{jwt.SigningMethodRS256.Alg(), jwt.SigningMethodRS384.Alg(), jwt.SigningMethodRS512.Alg()}

	case cfg.SigningKey != "":
		a.key = []byte(cfg.SigningKey)
		a.methods = []string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}

	default:
		return nil, errors.New("auth: a signing key or a public key file is required")
	}

	return &a, nil
}

// Validate parses tokenString and checks its signature, issuer, audience and
// expiry.
func (a *Authenticator) Validate(tokenString string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return a.key, nil },
		jwt.WithValidMethods(a.methods),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(a.leeway),
	)
	if err != nil {
		return nil, err
	}

	return &claims, nil
}

// Authenticate rejects requests without a valid bearer token. The token
// subject is available to handlers through GetUserID.
func Authenticate(a *Authenticator) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			token, ok := bearerToken(r)
			if !ok {
				return errs.New(errs.Unauthenticated, "Unauthorized", errMissingToken)
			}

			claims, err := a.Validate(token)
			if err != nil {
				return errs.New(errs.Unauthenticated, "Unauthorized", err)
			}

			ctx = setClaims(ctx, claims)
			ctx = setUserID(ctx, claims.Subject)

			return next(ctx, r)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// IssueToken signs an HS256 token for subject that cfg's authenticator
// accepts. It is meant for development and tests.
func IssueToken(cfg AuthConfig, subject string, ttl time.Duration) (string, error) {
	if cfg.SigningKey == "" {
		return "", errors.New("auth: issuing tokens requires a signing key")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  jwt.ClaimStrings{cfg.Audience},
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SigningKey))
}
