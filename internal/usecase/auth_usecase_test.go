package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/careers/internal/config"
	"github.com/fadilmartias/careers/internal/logger"
	"github.com/fadilmartias/careers/internal/repository"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase(t *testing.T, cfg *config.AdminConfig) *AuthUsecase {
	t.Helper()
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = time.Hour
	}
	uc, err := NewAuthUsecase(cfg, repository.NewMemorySessionRepository(), logger.Discard())
	require.NoError(t, err)
	return uc
}

func TestLoginWithPlainPassword(t *testing.T) {
	uc := newAuthUsecase(t, &config.AdminConfig{Password: "hunter2", SessionSecret: "secret"})
	ctx := context.Background()

	_, err := uc.Login(ctx, "hunter3")
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindAuthentication))
	assert.Equal(t, "Invalid password", util.UserMessage(err))

	out, err := uc.Login(ctx, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), out.ExpiresAt, time.Minute)

	require.NoError(t, uc.Authorize(ctx, out.Token))
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	uc := newAuthUsecase(t, &config.AdminConfig{Password: "ignored", PasswordHash: string(hash)})
	ctx := context.Background()

	_, err = uc.Login(ctx, "ignored")
	assert.True(t, util.IsKind(err, util.KindAuthentication))

	_, err = uc.Login(ctx, "hunter2")
	assert.NoError(t, err)
}

func TestLoginDisabledWithoutPassword(t *testing.T) {
	uc := newAuthUsecase(t, &config.AdminConfig{})

	_, err := uc.Login(context.Background(), "")
	assert.True(t, util.IsKind(err, util.KindAuthentication))
	_, err = uc.Login(context.Background(), "anything")
	assert.True(t, util.IsKind(err, util.KindAuthentication))
}

func TestAuthorizeRejectsBadTokens(t *testing.T) {
	uc := newAuthUsecase(t, &config.AdminConfig{Password: "pw", SessionSecret: "secret"})
	ctx := context.Background()

	assert.True(t, util.IsKind(uc.Authorize(ctx, ""), util.KindAuthentication))
	assert.True(t, util.IsKind(uc.Authorize(ctx, "garbage"), util.KindAuthentication))

	// signed with another secret
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other"))
	require.NoError(t, err)
	assert.True(t, util.IsKind(uc.Authorize(ctx, forged), util.KindAuthentication))

	// correctly signed but never issued as a session
	unknown, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	assert.True(t, util.IsKind(uc.Authorize(ctx, unknown), util.KindAuthentication))
}

func TestAuthorizeRejectsExpiredSession(t *testing.T) {
	uc := newAuthUsecase(t, &config.AdminConfig{Password: "pw", SessionSecret: "secret"})
	ctx := context.Background()

	out, err := uc.Login(ctx, "pw")
	require.NoError(t, err)

	uc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.True(t, util.IsKind(uc.Authorize(ctx, out.Token), util.KindAuthentication))
}

func TestLogoutRevokesSession(t *testing.T) {
	uc := newAuthUsecase(t, &config.AdminConfig{Password: "pw"})
	ctx := context.Background()

	first, err := uc.Login(ctx, "pw")
	require.NoError(t, err)
	second, err := uc.Login(ctx, "pw")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	require.NoError(t, uc.Logout(ctx, first.Token))
	assert.True(t, util.IsKind(uc.Authorize(ctx, first.Token), util.KindAuthentication))
	assert.NoError(t, uc.Authorize(ctx, second.Token))
}
