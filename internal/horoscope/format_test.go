package horoscope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horoscopo/internal/horoscope"
	"horoscopo/internal/models"
)

func replyWith(contents ...string) models.ChatReply {
	choices := make([]models.Choice, len(contents))
	for i, c := range contents {
		choices[i] = models.Choice{Message: models.Message{Role: models.RoleAssistant, Content: c}}
	}
	return models.ChatReply{Choices: choices}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		sign  horoscope.Sign
		reply models.ChatReply
		want  string
	}{
		{
			name:  "first choice content",
			sign:  "leo",
			reply: replyWith("Hoy será un día excelente para ti"),
			want:  "Tu horóscopo para Leo: Hoy será un día excelente para ti",
		},
		{
			name:  "only first choice consulted",
			sign:  "virgo",
			reply: replyWith("primero", "segundo"),
			want:  "Tu horóscopo para Virgo: primero",
		},
		{
			name:  "accented sign",
			sign:  "géminis",
			reply: replyWith("Buen día."),
			want:  "Tu horóscopo para Géminis: Buen día.",
		},
		{
			name:  "no choices",
			sign:  "aries",
			reply: models.ChatReply{},
			want:  horoscope.FallbackMessage,
		},
		{
			name:  "empty choice list",
			sign:  "aries",
			reply: models.ChatReply{Choices: []models.Choice{}},
			want:  horoscope.FallbackMessage,
		},
		{
			name:  "choice without content",
			sign:  "tauro",
			reply: replyWith(""),
			want:  horoscope.FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, horoscope.Format(tt.sign, tt.reply))
		})
	}
}

func TestFormat_FallbackIsVerbatim(t *testing.T) {
	assert.Equal(t, "Lo siento, no pude obtener tu horóscopo en este momento.", horoscope.FallbackMessage)
	assert.Equal(t,
		horoscope.Format("leo", models.ChatReply{}),
		horoscope.Format("leo", replyWith("")),
	)
}

func TestFormat_IsPure(t *testing.T) {
	reply := replyWith("Todo saldrá bien hoy.")
	first := horoscope.Format("piscis", reply)
	second := horoscope.Format("piscis", reply)
	require.Equal(t, first, second)
	assert.Equal(t, "Todo saldrá bien hoy.", reply.Choices[0].Message.Content)
}
