package invite

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	service := NewService([]byte("test-invite-secret"), 15*time.Minute)
	projectID := uuid.New()

	token, err := service.Issue(projectID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, projectID, got)
}

func TestVerifyExpiredToken(t *testing.T) {
	service := NewService([]byte("test-invite-secret"), 15*time.Minute)
	projectID := uuid.New()

	token, err := service.Issue(projectID)
	require.NoError(t, err)

	// Move the verifier's clock past the TTL plus leeway.
	service.now = func() time.Time {
		return time.Now().Add(15*time.Minute + Leeway + time.Second)
	}

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJustExpiredWithinLeeway(t *testing.T) {
	service := NewService([]byte("test-invite-secret"), 15*time.Minute)
	projectID := uuid.New()

	token, err := service.Issue(projectID)
	require.NoError(t, err)

	// Two seconds past expiry is still inside the five second leeway.
	service.now = func() time.Time {
		return time.Now().Add(15*time.Minute + 2*time.Second)
	}

	got, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, projectID, got)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewService([]byte("secret-a"), 15*time.Minute)
	verifier := NewService([]byte("secret-b"), 15*time.Minute)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	service := NewService([]byte("test-invite-secret"), 15*time.Minute)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.Verify(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	service := NewService([]byte("test-invite-secret"), 15*time.Minute)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"ProjectId": uuid.New().String(),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMissingProjectClaim(t *testing.T) {
	secret := []byte("test-invite-secret")
	service := NewService(secret, 15*time.Minute)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = service.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
