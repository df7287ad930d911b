package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dontpanic-sante/dpcli/internal/client/api"
	"github.com/dontpanic-sante/dpcli/internal/client/nav"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the session
// is re-checked through the gate and the conversation list is loaded.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.input, "Email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Mot de passe")
	if err != nil {
		return err
	}

	if err := a.client.Login(ctx, email, password); err != nil {
		fmt.Println(loginMessage(err))
		return err
	}

	fmt.Println("Connexion réussie !")
	if a.gate.Check(ctx, nav.HomePath) {
		a.conversations.LoadAndDisplay(ctx)
	}
	return nil
}

// Register prompts for an email and a password typed twice, then creates the
// account. The server signs the new user in, so the flow continues like a
// login.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.input, "Email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Mot de passe")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirme le mot de passe")
	if err != nil {
		return err
	}
	if password != confirm {
		fmt.Println("Les mots de passe ne correspondent pas.")
		return errors.New("password mismatch")
	}

	if err := a.client.Register(ctx, email, password); err != nil {
		fmt.Println(registerMessage(err))
		return err
	}

	fmt.Println("Compte créé !")
	if a.gate.Check(ctx, nav.HomePath) {
		a.conversations.LoadAndDisplay(ctx)
	}
	return nil
}

// Logout ends the session and drops every in-memory trace of it.
func (a *App) Logout(ctx context.Context) error {
	a.gate.Logout(ctx)
	a.prescriptions.Clear()
	fmt.Println("Déconnecté.")
	return nil
}

// loginMessage translates a login failure into the message shown to the user.
func loginMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Email ou mot de passe incorrect"
	case errors.Is(err, api.ErrValidation):
		return "Données invalides. Vérifiez vos informations."
	case errors.Is(err, api.ErrBadRequest):
		return err.Error()
	case errors.Is(err, api.ErrUnavailable):
		return "Serveur injoignable. Réessaie plus tard."
	}

	var se *api.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("Erreur %d", se.Code)
	}
	return "Erreur de connexion"
}

// registerMessage translates a registration failure. The registration form
// shares the login form's status mapping.
func registerMessage(err error) string {
	if errors.Is(err, api.ErrUnauthorized) {
		return "Inscription refusée"
	}
	return loginMessage(err)
}
