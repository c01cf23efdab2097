package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// Tokens signs session ids so a client can only present ids the server issued.
type Tokens struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokens(secret, issuer, audience string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// New mints a fresh session id and its token.
func (t *Tokens) New() (sid, token string, err error) {
	sid = uuid.NewString()
	token, err = t.Issue(sid)
	return sid, token, err
}

func (t *Tokens) Issue(sid string) (string, error) {
	now := t.now()
	c := claims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Parse validates raw and returns the session id it carries.
func (t *Tokens) Parse(raw string) (string, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	},
		jwt.WithLeeway(30*time.Second), // small clock skew
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(c.SID); err != nil {
		return "", ErrInvalidToken
	}
	return c.SID, nil
}
