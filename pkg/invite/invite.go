// Package invite issues and verifies short-lived project invite tokens.
// A token is an HMAC-signed JWT carrying only the project id. It names
// no invitee, so whoever presents it before expiry may join.
package invite

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Leeway absorbs clock drift between the issuing and verifying hosts.
const Leeway = 5 * time.Second

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, expired token, or a missing project claim. Callers
// must not learn which one it was.
var ErrInvalidToken = errors.New("invalid invite token")

type inviteClaims struct {
	ProjectID string `json:"ProjectId"`
	jwt.RegisteredClaims
}

// Service signs and verifies invite tokens with a shared HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates an invite token service. ttl bounds how long an
// issued token stays redeemable.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a new invite token for the project.
func (s *Service) Issue(projectID uuid.UUID) (string, error) {
	now := s.now()
	claims := inviteClaims{
		ProjectID: projectID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign invite token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the project
// it grants entry to. Issuer and audience are deliberately not checked;
// the secret is what scopes tokens to this deployment.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	claims := &inviteClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(Leeway),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	projectID, err := uuid.Parse(claims.ProjectID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return projectID, nil
}
