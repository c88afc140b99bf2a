package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func mint(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := NewTokenCodec([]byte(secret)).Encode(claims)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	return tok
}

func TestVerifier_Authenticate(t *testing.T) {
	const secret = "shared"

	tests := []struct {
		name          string
		secret        string
		requireExpiry bool
		token         func(t *testing.T) string
		want          models.Principal
		wantErr       error
	}{
		{
			name:   "valid user_id",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "u-1", "email": "a@x.com", "exp": fixedNow.Add(time.Hour).Unix()})
			},
			want: models.Principal{ID: "u-1", Email: "a@x.com"},
		},
		{
			name:   "sub fallback",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"sub": "u-2", "exp": fixedNow.Add(time.Minute).Unix()})
			},
			want: models.Principal{ID: "u-2"},
		},
		{
			name:   "user_id wins over sub",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "a", "sub": "b"})
			},
			want: models.Principal{ID: "a"},
		},
		{
			name:   "empty user_id falls back to sub",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "", "sub": "b"})
			},
			want: models.Principal{ID: "b"},
		},
		{
			name:   "missing exp accepted",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "u-3"})
			},
			want: models.Principal{ID: "u-3"},
		},
		{
			name:          "missing exp rejected when required",
			secret:        secret,
			requireExpiry: true,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "u-3"})
			},
			wantErr: common.ErrInvalidToken,
		},
		{
			name:   "expired",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "u", "exp": fixedNow.Add(-time.Second).Unix()})
			},
			wantErr: common.ErrTokenExpired,
		},
		{
			name:   "exp equal to now is expired",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "u", "exp": fixedNow.Unix()})
			},
			wantErr: common.ErrTokenExpired,
		},
		{
			name:   "non-numeric exp",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "u", "exp": "tomorrow"})
			},
			wantErr: common.ErrInvalidToken,
		},
		{
			name:   "no subject",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"email": "a@x.com", "exp": fixedNow.Add(time.Hour).Unix()})
			},
			wantErr: common.ErrorNoUserID,
		},
		{
			name:   "numeric user_id is not a subject",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": 42})
			},
			wantErr: common.ErrorNoUserID,
		},
		{
			name:   "signed with another secret",
			secret: secret,
			token: func(t *testing.T) string {
				return mint(t, "other", jwt.MapClaims{"user_id": "u"})
			},
			wantErr: common.ErrInvalidToken,
		},
		{
			name:   "garbage",
			secret: secret,
			token: func(t *testing.T) string {
				return "garbage"
			},
			wantErr: common.ErrInvalidToken,
		},
		{
			name:   "no secret configured",
			secret: "",
			token: func(t *testing.T) string {
				return mint(t, secret, jwt.MapClaims{"user_id": "u"})
			},
			wantErr: common.ErrorConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier([]byte(tt.secret), tt.requireExpiry, func() time.Time { return fixedNow })

			got, err := v.Authenticate(tt.token(t))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("principal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewVerifier_DefaultClock(t *testing.T) {
	v := NewVerifier([]byte("k"), false, nil)
	tok := mint(t, "k", jwt.MapClaims{"user_id": "u", "exp": time.Now().Add(time.Hour).Unix()})

	if _, err := v.Authenticate(tok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
