package horoscope

import "errors"

var (
	// ErrValidation indicates the caller did not supply a usable sign.
	ErrValidation = errors.New("missing zodiac sign")
	// ErrProvider indicates the chat-completion provider could not be reached or answered badly.
	ErrProvider = errors.New("provider request failed")
)
