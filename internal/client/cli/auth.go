package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// Register creates an account and logs in with it.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	name, err := getSimpleText(a.reader, "Enter name (optional)", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	var namePtr *string
	if name != "" {
		namePtr = &name
	}

	res, err := a.api.Register(ctx, email, string(password), namePtr)
	if err != nil {
		return a.fail(err)
	}
	a.startSession(res)
	a.printf("Registered and logged in as %s\n", res.User.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return a.fail(err)
	}
	a.startSession(res)
	a.printf("Login successful\n")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.session = nil
	a.printf("Logged out\n")
	return nil
}

func (a *App) startSession(res *models.AuthResult) {
	a.session = &session{userID: res.User.ID, email: res.User.Email}
}

// fail reports err to the user. An expired or rejected token ends the
// session so the prompt reflects it.
func (a *App) fail(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		a.printf("Error: %s\n", apiErr.Detail)
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Error: server unavailable\n")
	default:
		a.printf("Error: %v\n", err)
	}

	if errors.Is(err, common.ErrorUnauthorized) && a.session != nil {
		a.api.Logout()
		a.session = nil
		a.printf("Session expired, please login again\n")
	}
	return err
}
