package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	c := NewTokenCodec([]byte("super-secret"))
	tok, err := c.Encode(jwt.MapClaims{"user_id": "u-1", "email": "a@x.com"})
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	claims, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if claims["user_id"] != "u-1" || claims["email"] != "a@x.com" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestDecode_DoesNotCheckExpiry(t *testing.T) {
	t.Parallel()

	c := NewTokenCodec([]byte("k"))
	tok, err := c.Encode(jwt.MapClaims{"user_id": "u", "exp": time.Now().Add(-time.Hour).Unix()})
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if _, err := c.Decode(tok); err != nil {
		t.Fatalf("Decode must ignore exp, got %v", err)
	}
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	secret := []byte("right-secret")
	c := NewTokenCodec(secret)

	good, _ := c.Encode(jwt.MapClaims{"user_id": "u"})
	wrongKey, _ := NewTokenCodec([]byte("wrong-secret")).Encode(jwt.MapClaims{"user_id": "u"})

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"user_id": "u"}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign HS512: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "u"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", wrongKey},
		{"hs512", hs512},
		{"alg none", none},
		{"tampered payload", tampered},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.token)
			if !errors.Is(err, common.ErrInvalidToken) {
				t.Fatalf("want ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestDecode_RejectsEverySignatureCharChange(t *testing.T) {
	t.Parallel()

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	c := NewTokenCodec([]byte("right-secret"))
	good, err := c.Encode(jwt.MapClaims{"user_id": "u", "email": "a@x.com"})
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	parts := strings.Split(good, ".")
	sig := []byte(parts[2])

	accepted := 0
	for i := range sig {
		for _, ch := range []byte(alphabet) {
			if ch == sig[i] {
				continue
			}
			altered := append([]byte(nil), sig...)
			altered[i] = ch
			tok := parts[0] + "." + parts[1] + "." + string(altered)
			if _, err := c.Decode(tok); !errors.Is(err, common.ErrInvalidToken) {
				accepted++
				t.Errorf("signature char %d %q -> %q: want ErrInvalidToken, got %v", i, sig[i], ch, err)
			}
		}
	}
	if accepted > 0 {
		t.Fatalf("%d altered signatures were not rejected", accepted)
	}
}

func TestCodec_EmptySecret(t *testing.T) {
	t.Parallel()

	c := NewTokenCodec(nil)
	if _, err := c.Encode(jwt.MapClaims{}); !errors.Is(err, common.ErrorConfiguration) {
		t.Fatalf("Encode: want ErrorConfiguration, got %v", err)
	}
	if _, err := c.Decode("a.b.c"); !errors.Is(err, common.ErrorConfiguration) {
		t.Fatalf("Decode: want ErrorConfiguration, got %v", err)
	}
}
