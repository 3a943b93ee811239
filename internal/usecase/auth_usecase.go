package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/fadilmartias/careers/internal/config"
	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/metrics"
	"github.com/fadilmartias/careers/internal/repository"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const sessionIssuer = "careers"

type AdminClaims struct {
	jwt.RegisteredClaims
}

// AuthUsecase issues and checks admin session tokens. A token is only
// accepted while its hash is in the session store, so logout revokes it.
type AuthUsecase struct {
	cfg      *config.AdminConfig
	sessions repository.SessionRepository
	secret   []byte
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewAuthUsecase(cfg *config.AdminConfig, sessions repository.SessionRepository, log logrus.FieldLogger) (*AuthUsecase, error) {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		log.Warn("ADMIN_SESSION_SECRET not set, sessions end when the server restarts")
	}
	if cfg.Password == "" && cfg.PasswordHash == "" {
		log.Warn("no admin password configured, admin login is disabled")
	}
	return &AuthUsecase{cfg: cfg, sessions: sessions, secret: secret, log: log, now: time.Now}, nil
}

// Login checks password and opens a new session.
func (uc *AuthUsecase) Login(ctx context.Context, password string) (*dto.LoginResponse, error) {
	if !uc.checkPassword(password) {
		metrics.AdminLogin(false)
		return nil, util.AuthenticationError("Invalid password")
	}

	now := uc.now()
	expiresAt := now.Add(uc.cfg.SessionTTL)
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "admin",
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return nil, util.InternalError("Internal server error", fmt.Errorf("sign session token: %w", err))
	}
	if err := uc.sessions.Save(ctx, hashToken(token), expiresAt); err != nil {
		return nil, util.InternalError("Internal server error", fmt.Errorf("save session: %w", err))
	}

	metrics.AdminLogin(true)
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Authorize accepts a token that is correctly signed, unexpired and not
// revoked.
func (uc *AuthUsecase) Authorize(ctx context.Context, token string) error {
	if token == "" {
		return util.AuthenticationError("Unauthorized")
	}

	parsed, err := jwt.ParseWithClaims(token, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil || !parsed.Valid {
		return util.AuthenticationError("Unauthorized")
	}

	ok, err := uc.sessions.Exists(ctx, hashToken(token))
	if err != nil {
		return util.InternalError("Internal server error", fmt.Errorf("lookup session: %w", err))
	}
	if !ok {
		return util.AuthenticationError("Unauthorized")
	}
	return nil
}

func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	if err := uc.sessions.Delete(ctx, hashToken(token)); err != nil {
		return util.InternalError("Internal server error", fmt.Errorf("delete session: %w", err))
	}
	return nil
}

func (uc *AuthUsecase) checkPassword(password string) bool {
	if password == "" {
		return false
	}
	if uc.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(password)) == nil
	}
	if uc.cfg.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(uc.cfg.Password), []byte(password)) == 1
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
