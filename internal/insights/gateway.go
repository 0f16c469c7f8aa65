package insights

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"librarydesk/internal/library"
)

// FallbackMessage is returned for every gateway failure class: transport,
// provider-side, and malformed or empty responses.
const FallbackMessage = "Insights are currently unavailable. Please try again later."

// ErrBusy means a request is already pending; user-triggered requests are
// serialized one at a time, with no queueing.
var ErrBusy = errors.New("an insights request is already in progress")

// Gateway turns aggregate state plus a free-text question into exactly one
// provider attempt. It holds no state between calls beyond the busy flag.
type Gateway struct {
	client *Client
	busy   atomic.Bool
}

// NewGateway wraps a client.
func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// Ask performs a single attempt against the provider and returns its text.
// A provider failure of any kind degrades to FallbackMessage; no error other
// than ErrBusy ever crosses this boundary. No retry is performed.
func (g *Gateway) Ask(ctx context.Context, state Snapshot, roster library.Roster, query string) (string, error) {
	if !g.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer g.busy.Store(false)

	text, err := g.client.Generate(ctx, BuildPrompt(state, roster, query))
	if err != nil {
		log.Printf("insights provider failed: %v", err)
		return FallbackMessage, nil
	}
	return text, nil
}
