package horoscope

import (
	"fmt"

	"horoscopo/internal/models"
)

const promptTemplate = "¿puedes consultar el horóscopo del día de hoy para el signo %s?, " +
	"no me des sugerencias, solo una descripción del horóscopo para el día de hoy"

// BuildRequest renders the prompt for sign into a single-message chat request.
func BuildRequest(sign Sign, model string, temperature float32) models.ChatRequest {
	return models.ChatRequest{
		Model: model,
		Messages: []models.Message{
			{Role: models.RoleUser, Content: fmt.Sprintf(promptTemplate, sign)},
		},
		Temperature: temperature,
	}
}
