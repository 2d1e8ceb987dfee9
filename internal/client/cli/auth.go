package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates a new account.
// Registration does not log the user in; they authenticate separately.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, email, password); err != nil {
		printError(err)
		return err
	}

	printlnFn("Registered! You can log in now.")
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// is persisted, so the next run starts logged in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		printError(err)
		return err
	}

	printlnFn("Login successful")
	return nil
}

// Logout drops the session, in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printError(err)
		return err
	}
	printlnFn("Logged out")
	return nil
}
