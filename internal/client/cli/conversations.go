package cli

import (
	"context"
	"fmt"

	"github.com/dontpanic-sante/dpcli/internal/client/nav"
)

// List resolves the conversation list (server first, cache as fallback) and
// renders it.
func (a *App) List(ctx context.Context) error {
	a.conversations.LoadAndDisplay(ctx)
	return nil
}

// Refresh is an explicit resync, same path as List.
func (a *App) Refresh(ctx context.Context) error {
	a.conversations.LoadAndDisplay(ctx)
	return nil
}

// Search narrows the rendered list to titles or displayed dates containing
// the term. An empty term clears the filter.
func (a *App) Search(ctx context.Context, term string) error {
	a.renderer.Filter(term)
	return nil
}

// Open routes into a conversation's detail view.
func (a *App) Open(ctx context.Context, id string) error {
	if _, ok := a.renderer.Lookup(id); !ok {
		fmt.Println("Conversation introuvable :", id)
		return nil
	}
	a.nav.Goto(nav.ConversationURL(id))
	return nil
}

// Delete removes a conversation after confirmation. Records that only exist
// locally are deleted without touching the network.
func (a *App) Delete(ctx context.Context, id string) error {
	rec, ok := a.renderer.Lookup(id)
	if !ok {
		fmt.Println("Conversation introuvable :", id)
		return nil
	}
	a.conversations.Delete(ctx, id, rec.Local)
	return nil
}

// New starts a fresh conversation with the assistant.
func (a *App) New(ctx context.Context) error {
	a.nav.Goto(nav.ChatbotPath)
	return nil
}
