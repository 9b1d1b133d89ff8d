package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studymate/internal/client/api"
	"github.com/dmitrijs2005/studymate/internal/common"
)

// readCredentials prompts for a username and a hidden password.
func (a *App) readCredentials() (string, []byte, error) {
	userName, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}

	return userName, password, nil
}

func (a *App) Signup(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.api.Signup(ctx, userName, string(password))
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn(msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, string(password)); err != nil {
		reportError(err)
		return err
	}

	a.userName = userName
	printlnFn(fmt.Sprintf("Logged in as %s", userName))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}
	a.userName = ""
	printlnFn("Logged out")
	return nil
}

func reportError(err error) {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		printlnFn("Error:", apiErr.Message)
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable:", err)
	default:
		printlnFn("error:", err)
	}
}
