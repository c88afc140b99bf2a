package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// UserService is the issuer used by the auth endpoints.
type UserService interface {
	Register(ctx context.Context, email, password string, name *string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Refresh(ctx context.Context) (*services.AuthResult, error)
}

type AuthHandler struct {
	users  UserService
	logger logging.Logger
}

type registerRequest struct {
	Email    string  `json:"email"`
	Name     *string `json:"name"`
	Password string  `json:"password"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.users.Register(r.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info(r.Context(), "New user registered", "email", res.User.Email)
	writeJSON(w, http.StatusOK, res)
}

// login reads form fields, as OAuth2 password-flow clients send them.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, r, h.logger, common.WithDetail(common.ErrorValidation, "Email and password are required"))
		return
	}

	res, err := h.users.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.logger.Warn(r.Context(), "Failed login attempt", "email", email)
		}
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info(r.Context(), "Successful login", "email", res.User.Email)
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	_, err := h.users.Refresh(r.Context())
	writeError(w, r, h.logger, err)
}
