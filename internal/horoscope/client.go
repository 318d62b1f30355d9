//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE

package horoscope

import (
	"context"

	"horoscopo/internal/models"
)

// ChatClient sends a single chat request to the provider.
// Implementations must be safe for concurrent use.
type ChatClient interface {
	Chat(ctx context.Context, req models.ChatRequest) (models.ChatReply, error)
}
