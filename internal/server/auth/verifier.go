package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// SubjectClaimKeys are tried in order; the first non-empty string wins.
var SubjectClaimKeys = []string{"user_id", "sub"}

// Verifier authenticates bearer tokens minted by the auth service.
type Verifier struct {
	codec         *TokenCodec
	requireExpiry bool
	now           func() time.Time
}

// NewVerifier builds a Verifier over secret. A nil now defaults to time.Now.
func NewVerifier(secret []byte, requireExpiry bool, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{codec: NewTokenCodec(secret), requireExpiry: requireExpiry, now: now}
}

// Authenticate checks, in order: configured secret, signature and
// structure, expiry, subject. A token without exp passes unless
// requireExpiry is set.
func (v *Verifier) Authenticate(token string) (models.Principal, error) {
	claims, err := v.codec.Decode(token)
	if err != nil {
		if errors.Is(err, common.ErrorConfiguration) {
			return models.Principal{}, err
		}
		return models.Principal{}, common.ErrInvalidToken
	}

	if err := v.checkExpiry(claims); err != nil {
		return models.Principal{}, err
	}

	id := subject(claims)
	if id == "" {
		return models.Principal{}, common.ErrorNoUserID
	}

	email, _ := claims["email"].(string)
	return models.Principal{ID: id, Email: email}, nil
}

func (v *Verifier) checkExpiry(claims jwt.MapClaims) error {
	if _, ok := claims["exp"]; !ok {
		if v.requireExpiry {
			return common.ErrInvalidToken
		}
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return common.ErrInvalidToken
	}
	if !exp.After(v.now()) {
		return common.ErrTokenExpired
	}
	return nil
}

func subject(claims jwt.MapClaims) string {
	for _, key := range SubjectClaimKeys {
		if s, ok := claims[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
