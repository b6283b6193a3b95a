package domain

import "context"

type PropertyRepository interface {
	// Write paths
	UpsertProperty(ctx context.Context, p Property) error
	LogMiss(ctx context.Context, externalID string, reason string) error

	// Read paths. Search applies all filters conjunctively and returns
	// results ordered by ascending price; an empty FilterSet returns the
	// full catalog.
	Search(ctx context.Context, f FilterSet) ([]Property, error)
}

type ContactStore interface {
	UpsertContact(ctx context.Context, c Contact) error
}

type ConversationLog interface {
	Append(ctx context.Context, t ConversationTurn) error
	// Recent returns up to limit exchanges for the channel, most recent
	// first.
	Recent(ctx context.Context, channel string, limit int) ([]Exchange, error)
	// LastBotReply returns ErrNotFound when the channel has no history.
	LastBotReply(ctx context.Context, channel string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Completer is the LLM gateway contract: it never fails, returning either a
// genuine completion or the static fallback text.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}
