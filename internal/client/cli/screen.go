package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dontpanic-sante/dpcli/internal/client/nav"
)

// screenNav is the terminal implementation of nav.Navigator. A web front end
// would swap the page; here a navigation prints where the user landed plus a
// hint for the screens that expect an action.
type screenNav struct {
	out     io.Writer
	current string
}

func newScreenNav(out io.Writer) *screenNav {
	return &screenNav{out: out, current: nav.HomePath}
}

func (n *screenNav) Goto(path string) {
	n.current = path
	fmt.Fprintf(n.out, "Page: %s\n", path)

	switch {
	case path == nav.LoginPath:
		fmt.Fprintln(n.out, "Connecte-toi avec la commande 'login'.")
	case path == nav.ProfilePath:
		fmt.Fprintln(n.out, "Complète ton profil pour profiter de toutes les fonctionnalités.")
	case strings.HasPrefix(path, nav.ChatbotPath+"?"):
		fmt.Fprintln(n.out, "Conversation ouverte.")
	}
}

func (n *screenNav) Current() string {
	return n.current
}
