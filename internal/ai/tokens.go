package ai

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

var encodings sync.Map // model -> *tiktoken.Tiktoken (nil, если кодировки нет)

// EstimateTokens оценивает число токенов текста.
// Для моделей без известной кодировки возвращает число символов.
func EstimateTokens(model, text string) int {
	if text == "" {
		return 0
	}
	if enc := encodingFor(model); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return utf8.RuneCountInString(text)
}

func encodingFor(model string) *tiktoken.Tiktoken {
	if cached, ok := encodings.Load(model); ok {
		enc, _ := cached.(*tiktoken.Tiktoken)
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc = nil
	}
	encodings.Store(model, enc)
	return enc
}
