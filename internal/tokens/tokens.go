// Package tokens estimates prompt sizes.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/igoryan-dao/ricochet-prompt/internal/logging"
)

// Encoding is the tiktoken encoding used for estimates.
const Encoding = "cl100k_base"

// FudgeFactor is a safety margin for tokenizers other than cl100k.
const FudgeFactor = 1.05

var (
	tkm     *tiktoken.Tiktoken
	tkmOnce sync.Once
)

func getTokenizer() *tiktoken.Tiktoken {
	tkmOnce.Do(func() {
		var err error
		tkm, err = tiktoken.GetEncoding(Encoding)
		if err != nil {
			log := logging.Component("tokens")
			log.Warn().Err(err).Msg("failed to load tiktoken encoding, falling back to heuristic")
		}
	})
	return tkm
}

// EstimateTokens counts tokens with tiktoken when the encoding is
// available, otherwise with a 1:4 character heuristic.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	if tokenizer := getTokenizer(); tokenizer != nil {
		return len(tokenizer.Encode(text, nil, nil))
	}

	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}

// EstimateBudgetedTokens applies FudgeFactor to the estimate.
func EstimateBudgetedTokens(text string) int {
	return int(float64(EstimateTokens(text)) * FudgeFactor)
}

// Stats summarizes a prompt.
type Stats struct {
	Chars    int `json:"chars"`
	Tokens   int `json:"tokens"`
	Budgeted int `json:"budgeted_tokens"`
}

func Measure(text string) Stats {
	return Stats{
		Chars:    len(text),
		Tokens:   EstimateTokens(text),
		Budgeted: EstimateBudgetedTokens(text),
	}
}
