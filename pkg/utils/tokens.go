package utils

import (
	"github.com/pkoukk/tiktoken-go"
)

// NumTokensFromMessages estimates the token count of a prompt for logging
// before an oracle call. The encoding is an approximation for non-OpenAI
// backends.
func NumTokensFromMessages(text string) (int, error) {
	tkm, err := tiktoken.EncodingForModel("gpt-4-0613")
	if err != nil {
		return 0, err
	}

	return len(tkm.Encode(text, nil, nil)), nil
}
