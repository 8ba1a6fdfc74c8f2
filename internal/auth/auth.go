package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtIssuer   = "featuresgym-admin"
	jwtAudience = "featuresgym-backoffice"

	SessionTTL = 24 * time.Hour

	RoleAdmin = "admin"
)

var (
	ErrTokenExpired   = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid session token")
	ErrEmptySecret    = errors.New("session secret cannot be empty")
	ErrNotAdmin       = errors.New("account is not an administrator")
	ErrBadCredentials = errors.New("invalid email or password")
)

// SessionClaims is the payload of the admin session cookie. The CSRF token
// lives in the signed claims so state-changing forms can echo it back.
type SessionClaims struct {
	AdminID   int    `json:"admin_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CSRFToken string `json:"csrf_token"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func CheckPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// NewSessionToken mints a signed session token plus its CSRF token.
func NewSessionToken(adminID int, email, secret string) (token, csrfToken string, err error) {
	if secret == "" {
		return "", "", ErrEmptySecret
	}

	now := time.Now()
	csrfToken = uuid.NewString()

	claims := &SessionClaims{
		AdminID:   adminID,
		Email:     email,
		Role:      RoleAdmin,
		CSRFToken: csrfToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return signed, csrfToken, nil
}

func ValidateSession(tokenString, secret string) (*SessionClaims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role != RoleAdmin {
		return nil, ErrNotAdmin
	}

	return claims, nil
}
