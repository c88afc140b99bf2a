// Package auth holds the credential primitives shared by both services:
// the HS256 token codec, the verifier that turns a bearer token into a
// principal and the bcrypt password hasher.
package auth

import (
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and decodes HS256 tokens with one shared secret.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret}
}

// Encode signs claims with HS256.
func (c *TokenCodec) Encode(claims jwt.MapClaims) (string, error) {
	if len(c.secret) == 0 {
		return "", common.ErrorConfiguration
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Decode verifies the signature and returns the claims. Expiry is not
// checked here; see Verifier.
func (c *TokenCodec) Decode(tokenString string) (jwt.MapClaims, error) {
	if len(c.secret) == 0 {
		return nil, common.ErrorConfiguration
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
		// Unpadded base64url ignores the trailing bits of the last
		// character unless decoding is strict.
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
