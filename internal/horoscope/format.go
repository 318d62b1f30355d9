package horoscope

import (
	"fmt"

	"horoscopo/internal/models"
)

// FallbackMessage is returned whenever the provider gives no usable answer.
const FallbackMessage = "Lo siento, no pude obtener tu horóscopo en este momento."

// Format maps a provider reply into the message shown to the user.
func Format(sign Sign, reply models.ChatReply) string {
	content, ok := reply.FirstContent()
	if !ok {
		return FallbackMessage
	}
	return fmt.Sprintf("Tu horóscopo para %s: %s", sign.Capitalized(), content)
}
