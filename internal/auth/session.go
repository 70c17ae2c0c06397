package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the cookie that carries the admin session token.
const CookieName = "__session"

var ErrInvalidCredentials = errors.New("auth: invalid email or password")

var _ domain.AdminResolver = (*SessionManager)(nil)

type Config struct {
	AdminEmail        string
	AdminPasswordHash string
	Secret            string
	TTL               time.Duration
	SecureCookie      bool
}

// SessionManager issues and verifies signed admin session cookies.
type SessionManager struct {
	adminEmail   string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	secure       bool
	now          func() time.Time
}

func NewSessionManager(cfg Config) *SessionManager {
	return &SessionManager{
		adminEmail:   cfg.AdminEmail,
		passwordHash: []byte(cfg.AdminPasswordHash),
		secret:       []byte(cfg.Secret),
		ttl:          cfg.TTL,
		secure:       cfg.SecureCookie,
		now:          time.Now,
	}
}

// HashPassword produces the bcrypt hash expected in the admin password configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyCredentials accepts only the configured admin email with a matching password.
func (m *SessionManager) VerifyCredentials(email, password string) (*domain.Admin, error) {
	if email == "" || email != m.adminEmail {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &domain.Admin{Email: email}, nil
}

// IssueToken signs a session token for admin.
func (m *SessionManager) IssueToken(admin *domain.Admin) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   admin.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// SetSession writes the session cookie for admin.
func (m *SessionManager) SetSession(w http.ResponseWriter, admin *domain.Admin) error {
	token, err := m.IssueToken(admin)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSession expires the session cookie.
func (m *SessionManager) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveAdmin implements domain.AdminResolver.
func (m *SessionManager) ResolveAdmin(r *http.Request) (*domain.Admin, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, domain.ErrUnauthorized
	}

	return m.ParseToken(cookie.Value)
}

// ParseToken verifies a session token and returns the admin it was issued to.
func (m *SessionManager) ParseToken(raw string) (*domain.Admin, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	// a session for a previous admin email is no longer an admin session
	if claims.Subject != m.adminEmail {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Admin{Email: claims.Subject}, nil
}
