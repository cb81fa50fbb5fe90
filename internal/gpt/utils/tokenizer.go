package utils

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
)

var (
	tokenizer *tiktoken.Tiktoken
	mu        sync.Mutex
)

func initTokenizer() error {
	mu.Lock()
	defer mu.Unlock()

	if tokenizer != nil {
		return nil
	}

	tkm, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.Error().Err(err).Msg("failed to init tokenizer")
		return err
	}

	tokenizer = tkm

	return nil
}

type Tokenizer struct {
	tokenizer *tiktoken.Tiktoken
}

func NewTokenizer() (Tokenizer, error) {
	if err := initTokenizer(); err != nil {
		return Tokenizer{}, err
	}

	return Tokenizer{tokenizer: tokenizer}, nil
}

// CountTokens returns the number of cl100k_base tokens in s.
func (t Tokenizer) CountTokens(s string) int {
	token := t.tokenizer.Encode(s, nil, nil)
	return len(token)
}
