package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

type Responder interface {
	Respond(ctx context.Context, text string) (string, error)
}

type rule struct {
	keywords []string
	reply    string
}

// rules are checked in order; the first keyword hit wins.
var rules = []rule{
	{keywords: []string{"inventory"}, reply: INVENTORY_REPLY},
	{keywords: []string{"statistics", "stats"}, reply: STATISTICS_REPLY},
	{keywords: []string{"export", "share"}, reply: EXPORT_REPLY},
	{keywords: []string{"search", "find"}, reply: SEARCH_REPLY},
	{keywords: []string{"help", "what"}, reply: HELP_REPLY},
}

func match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.reply, true
			}
		}
	}
	return "", false
}

func defaultReply(text string) string {
	return strings.ReplaceAll(DEFAULT_REPLY, "{query}", text)
}

// RuleResponder answers from the fixed keyword table.
type RuleResponder struct{}

func (RuleResponder) Respond(_ context.Context, text string) (string, error) {
	if reply, ok := match(text); ok {
		return reply, nil
	}
	return defaultReply(text), nil
}

type Asker interface {
	Ask(ctx context.Context, instruction, prompt string) (string, error)
}

type TokenCounter interface {
	CountTokens(s string) int
}

// GPTResponder answers keyword questions from the rule table and forwards the
// rest to the model while they fit in maxTokens.
type GPTResponder struct {
	asker     Asker
	tokens    TokenCounter
	maxTokens int
}

func NewGPTResponder(asker Asker, tokens TokenCounter, maxTokens int) *GPTResponder {
	return &GPTResponder{asker: asker, tokens: tokens, maxTokens: maxTokens}
}

func (r *GPTResponder) Respond(ctx context.Context, text string) (string, error) {
	if reply, ok := match(text); ok {
		return reply, nil
	}

	if n := r.tokens.CountTokens(text); n > r.maxTokens {
		log.Debug().Msgf("chat: message of %d tokens exceeds budget of %d", n, r.maxTokens)
		return defaultReply(text), nil
	}

	answer, err := r.asker.Ask(ctx, ASSISTANT_INSTRUCTION, text)
	if err != nil {
		log.Error().Err(err).Msg("chat: gpt request failed")
		return defaultReply(text), nil
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultReply(text), nil
	}
	return answer, nil
}
