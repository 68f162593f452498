// Package jwtmw provides the signed-token codec and the Gin middleware
// that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeySecret is the environment variable holding the process-wide signing secret.
const EnvKeySecret = "SECRET_KEY"

var (
	// ErrTokenInvalid is returned when a token's signature, algorithm, or payload
	// does not verify.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned when a token's expiry instant has passed.
	// The HTTP boundary reports it with the same message as ErrTokenInvalid.
	ErrTokenExpired = errors.New("token is expired")
)

// Claims is the identity embedded in an issued token.
type Claims struct {
	UserID   uint
	Username string
}

// Codec defines the interface for issuing and verifying signed tokens.
type Codec interface {
	// GenerateToken creates a signed token embedding the user's id and name.
	GenerateToken(userID uint, username string) (string, error)

	// ParseToken verifies a token and returns the claims it carries.
	ParseToken(token string) (*Claims, error)
}

// codec implements the Codec interface with HS256 and a symmetric secret.
type codec struct {
	secret     []byte
	expiration time.Duration
}

// NewCodec creates a new token codec with the provided secret and expiration duration.
func NewCodec(secret string, expiration time.Duration) Codec {
	return &codec{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT whose payload is {id, username, exp}.
func (c *codec) GenerateToken(userID uint, username string) (string, error) {
	claims := jwt.MapClaims{
		"id":       userID,
		"username": username,
		"exp":      time.Now().Add(c.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken は署名と有効期限を検証し、トークンに埋め込まれたClaimsを返します。
// 署名不一致・アルゴリズム不一致・ペイロード不正はErrTokenInvalid、
// 期限切れはErrTokenExpiredを返します。
func (c *codec) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; anything else never came from GenerateToken.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	id, ok := mc["id"].(float64) // JWT numbers are decoded as float64
	if !ok {
		return nil, ErrTokenInvalid
	}
	username, _ := mc["username"].(string)

	return &Claims{UserID: uint(id), Username: username}, nil
}
