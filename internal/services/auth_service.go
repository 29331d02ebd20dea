package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/exam-portal/backend/internal/config"
	"github.com/exam-portal/backend/internal/store"
)

var (
	ErrInvalidPassword = errors.New("incorrect password")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthService guards the admin surface. Login is a plain equality check
// against the configured password; there is deliberately no user table,
// hashing, rate limiting or lockout. Sessions are short-lived JWTs.
type AuthService struct {
	cfg   *config.Config
	store *store.Store
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(cfg *config.Config, st *store.Store) *AuthService {
	return &AuthService{cfg: cfg, store: st}
}

// Login verifies the admin password and returns a signed session token.
// A wrong password is a message result, not an exception.
func (s *AuthService) Login(password string) (string, error) {
	if password != s.cfg.Admin.Password {
		return "", ErrInvalidPassword
	}

	if err := s.store.SetAdminAuthenticated(true); err != nil {
		return "", err
	}

	claims := &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWT.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   "admin",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}

// Logout clears the persisted session flag. Issued tokens simply expire.
func (s *AuthService) Logout() error {
	return s.store.SetAdminAuthenticated(false)
}

func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
