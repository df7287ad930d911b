// Package models defines client-side data models for the Don't Panic app.
package models

// Conversation is one chat thread's summary metadata shown in the list UI.
//
// The id is stable across render cycles and is the sole key used for deletion
// and for routing into the conversation view. Local marks records that exist
// only in the cache and were never sent to the server.
type Conversation struct {
	ID           ID     `json:"id"`
	Titre        string `json:"titre"`
	LastActivity Time   `json:"date_derniere_activite"`
	NbMessages   int    `json:"nb_messages"`
	Local        bool   `json:"_local,omitempty"`
}

// DisplayTitle returns the title to render, defaulting to "Conversation".
func (c Conversation) DisplayTitle() string {
	if c.Titre == "" {
		return "Conversation"
	}
	return c.Titre
}
