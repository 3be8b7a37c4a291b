package service

import (
	"math"
	"unicode/utf8"

	"arcade-leaderboard/internal/constants"
	"arcade-leaderboard/internal/domain"

	"golang.org/x/text/unicode/norm"
)

type validSubmission struct {
	nickname string
	game     domain.GameID
	score    int
}

// validate checks every field and reports every failing rule; it never stops at the first one.
func validate(in domain.SubmitInput) (validSubmission, error) {
	var (
		out  validSubmission
		verr domain.ValidationError
	)

	if in.Nickname == nil {
		verr.Add("nickname", domain.MsgRequired)
	} else {
		// checked and stored in NFC, so conjoining jamo that compose into syllables are accepted
		out.nickname = norm.NFC.String(*in.Nickname)
		n := utf8.RuneCountInString(out.nickname)
		if n < constants.NicknameMinLen {
			verr.Add("nickname", domain.MsgNicknameTooShort)
		}
		if n > constants.NicknameMaxLen {
			verr.Add("nickname", domain.MsgNicknameTooLong)
		}
		if !validNicknameChars(out.nickname) {
			verr.Add("nickname", domain.MsgNicknameCharset)
		}
	}

	if in.Game == nil {
		verr.Add("game", domain.MsgRequired)
	} else if out.game = domain.GameID(*in.Game); !out.game.Valid() {
		verr.Add("game", domain.MsgGameUnknown)
	}

	if in.Score == nil {
		verr.Add("score", domain.MsgRequired)
	} else {
		s := *in.Score
		switch {
		case math.IsNaN(s) || math.IsInf(s, 0) || s != math.Trunc(s):
			verr.Add("score", domain.MsgScoreNotInteger)
		case s < 0:
			verr.Add("score", domain.MsgScoreNegative)
		case s > constants.MaxScore:
			verr.Add("score", domain.MsgScoreTooLarge)
		default:
			out.score = int(s)
		}
	}

	if !verr.Empty() {
		return validSubmission{}, &verr
	}
	return out, nil
}

// validNicknameChars accepts one or more precomposed Hangul syllables, ASCII letters and digits.
func validNicknameChars(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r >= '가' && r <= '힣':
		default:
			return false
		}
	}
	return true
}
