package auth

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dontpanic-sante/dpcli/internal/client/api"
	"github.com/dontpanic-sante/dpcli/internal/client/models"
	"github.com/dontpanic-sante/dpcli/internal/client/nav"
	"github.com/dontpanic-sante/dpcli/internal/logging"
)

// LineSource delivers user input lines over a channel. The gate races a
// line against its countdown; when the countdown wins no line has been
// consumed, so the next reader of the same source still gets it.
type LineSource interface {
	Lines() <-chan string
}

// Gate verifies the session before a screen is shown. It fails closed: any
// doubt about the session state routes to the login page.
type Gate struct {
	client    api.Client
	session   *Session
	nav       nav.Navigator
	countdown time.Duration
	input     LineSource
	out       io.Writer
	log       logging.Logger
}

func NewGate(client api.Client, session *Session, navigator nav.Navigator, countdown time.Duration, input LineSource, out io.Writer, log logging.Logger) *Gate {
	return &Gate{
		client:    client,
		session:   session,
		nav:       navigator,
		countdown: countdown,
		input:     input,
		out:       out,
		log:       log.With("component", "auth"),
	}
}

// Check validates the session for the given path. It returns false after
// routing somewhere else: to the login page when the session is absent,
// expired, or cannot be verified, or to the profile page when the
// incomplete-profile prompt redirects. A false return means the caller must
// not render the screen it was about to show.
//
// The pages that fix the profile are exempt from the prompt so the user can
// actually reach them.
func (g *Gate) Check(ctx context.Context, path string) bool {
	status, err := g.client.CheckAuth(ctx)
	if err != nil {
		g.log.Warn(ctx, "vérification de session impossible", "err", err)
		g.nav.Goto(nav.LoginPath)
		return false
	}
	if !status.Authenticated {
		g.nav.Goto(nav.LoginPath)
		return false
	}

	var user models.User
	if status.User != nil {
		user = *status.User
	}
	g.session.SetUser(user)

	if name := user.DisplayName(); name != "" {
		fmt.Fprintf(g.out, "Salut %s !\n", name)
	}

	if !user.IsProfileComplete && !nav.IsBypassed(path) {
		if g.promptProfile(ctx) {
			return false
		}
	}
	return true
}

// promptProfile races the user's answer against the countdown and reports
// whether it redirected. Declining with "plus tard" keeps the current page;
// anything else, including the timeout, routes to the profile page. A
// timeout consumes no input line.
func (g *Gate) promptProfile(ctx context.Context) bool {
	fmt.Fprintf(g.out, "Ton profil est incomplet. Redirection vers le profil dans %s.\n", g.countdown)
	fmt.Fprintln(g.out, "Tape \"plus tard\" pour rester ici :")

	select {
	case answer, ok := <-g.input.Lines():
		if ok {
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer == "plus tard" || answer == "p" {
				fmt.Fprintln(g.out, "D'accord, on en reparle plus tard.")
				return false
			}
		}
	case <-time.After(g.countdown):
	case <-ctx.Done():
		return false
	}

	g.nav.Goto(nav.ProfilePath)
	return true
}

// Logout ends the server session, forgets the local user and routes to the
// login page. A failed remote logout still clears the local state.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.client.Logout(ctx); err != nil {
		g.log.Warn(ctx, "déconnexion serveur échouée", "err", err)
	}
	g.session.Clear()
	g.nav.Goto(nav.LoginPath)
}

// Greeting picks the salutation for the time of day: "Bonjour" from 06:00
// through 17:59, "Bonsoir" otherwise.
func Greeting(now time.Time) string {
	h := now.Hour()
	if h >= 6 && h < 18 {
		return "Bonjour"
	}
	return "Bonsoir"
}
