// Package nav models the app's navigation surface: path-based routes with
// query parameters carrying entity identifiers.
package nav

import (
	"net/url"
	"strings"
)

// Well-known pages.
const (
	LoginPath      = "/connexion/connexion"
	SignupPath     = "/inscription/inscription"
	HomePath       = "/home/home"
	ProfilePath    = "/profile/profile"
	ChatbotPath    = "/chatbot/chatbot"
	OrdonnancePath = "/ordonnance/ordonnance"
)

// bypassPrefixes are the paths exempt from the profile-completeness gate, to
// avoid redirect loops on the pages that fix the profile in the first place.
var bypassPrefixes = []string{"/profile", "/connexion", "/popupProfile"}

// ConversationURL routes into a conversation's detail view.
func ConversationURL(id string) string {
	return ChatbotPath + "?conversation_id=" + url.QueryEscape(id)
}

// OrdonnanceURL routes into a prescription's detail view.
func OrdonnanceURL(id string) string {
	return OrdonnancePath + "?id=" + url.QueryEscape(id)
}

// IsBypassed reports whether the profile gate should skip the given path.
func IsBypassed(path string) bool {
	for _, p := range bypassPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Navigator is the capability handed to components that need to move the
// user somewhere else. The CLI implementation switches screens; tests
// record the visited paths.
type Navigator interface {
	Goto(path string)
	Current() string
}

// Recorder is a simple Navigator keeping the visited path history.
type Recorder struct {
	history []string
}

func NewRecorder(start string) *Recorder {
	return &Recorder{history: []string{start}}
}

func (r *Recorder) Goto(path string) {
	r.history = append(r.history, path)
}

func (r *Recorder) Current() string {
	return r.history[len(r.history)-1]
}

// History returns all visited paths, oldest first.
func (r *Recorder) History() []string {
	return append([]string(nil), r.history...)
}
