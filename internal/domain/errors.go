package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var ErrStorageUnavailable = errors.New("storage unavailable")

// Message keys carried by ValidationError. They double as i18n catalog keys.
const (
	MsgRequired         = "field.required"
	MsgNicknameTooShort = "nickname.too_short"
	MsgNicknameTooLong  = "nickname.too_long"
	MsgNicknameCharset  = "nickname.charset"
	MsgGameUnknown      = "game.unknown"
	MsgScoreNotInteger  = "score.not_integer"
	MsgScoreNegative    = "score.negative"
	MsgScoreTooLarge    = "score.too_large"
)

type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Add(field, key string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], key)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
