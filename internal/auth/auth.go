// Package auth reads the signed-in user from a bearer token.
//
// The session is placed in the request context by Middleware. Handlers
// that need it call FromContext, there is no process-wide session.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("the session token is invalid or expired")
	ErrNoSession    = errors.New("you need to be signed in to access this resource")
)

const contextKey = "giftsplit-session"

// DefaultLifetime is how long issued tokens are valid.
const DefaultLifetime = 24 * time.Hour

// Session is the signed-in user.
type Session struct {
	Subject string `json:"subject" example:"google-oauth2|108"`
	Email   string `json:"email" example:"jane@example.com"`
	Name    string `json:"name" example:"Jane Doe"`
}

// Claims are the JWT claims of a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	signingKey []byte
	issuer     string
	lifetime   time.Duration
}

func NewIssuer(signingKey, issuer string, lifetime time.Duration) *Issuer {
	return &Issuer{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		lifetime:   lifetime,
	}
}

// Issue returns a signed token for the session.
func (i *Issuer) Issue(s Session) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: s.Email,
		Name:  s.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   s.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.signingKey)
}

// Verify parses a token and returns its session.
func (i *Issuer) Verify(tokenString string) (Session, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return i.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return Session{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

// Middleware puts the session of a valid bearer token into the context.
// Requests without a token pass through, requests with an invalid token
// are rejected. With a nil issuer, tokens are ignored.
func Middleware(i *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if i == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Next()
			return
		}

		session, err := i.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		c.Set(contextKey, session)
		c.Next()
	}
}

// FromContext returns the session of the request, if any.
func FromContext(c *gin.Context) (Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Session{}, false
	}

	s, ok := v.(Session)
	return s, ok
}
