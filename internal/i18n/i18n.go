// Package i18n localizes user-facing messages. Korean is the default, English is available through
// the lang query parameter or Accept-Language.
package i18n

import (
	"net/http"
	"strings"

	"arcade-leaderboard/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const LangParam = "lang"

const (
	MsgLeaderboardFetched = "leaderboard.fetched"
	MsgScoreSubmitted     = "score.submitted"
	MsgInvalidInput       = "request.invalid_input"
	MsgInvalidBody        = "request.invalid_body"
	MsgRateLimited        = "request.rate_limited"
	MsgRouteNotFound      = "request.not_found"
	MsgInternal           = "request.internal"
	MsgHealthy            = "health.ok"
	MsgHealthDetailed     = "health.detailed"
)

var supported = []language.Tag{language.Korean, language.English}

var matcher = language.NewMatcher(supported)

var catalog = map[string]map[language.Tag]string{
	MsgLeaderboardFetched: {
		language.Korean:  "리더보드 조회 성공",
		language.English: "Leaderboard fetched",
	},
	MsgScoreSubmitted: {
		language.Korean:  "점수가 등록되었습니다",
		language.English: "Score submitted",
	},
	MsgInvalidInput: {
		language.Korean:  "입력값이 올바르지 않습니다",
		language.English: "Invalid input",
	},
	MsgInvalidBody: {
		language.Korean:  "요청 본문을 해석할 수 없습니다",
		language.English: "Request body is not valid JSON",
	},
	MsgRateLimited: {
		language.Korean:  "너무 많은 요청입니다. 잠시 후 다시 시도해 주세요.",
		language.English: "Too many requests. Please try again later.",
	},
	MsgRouteNotFound: {
		language.Korean:  "경로를 찾을 수 없습니다",
		language.English: "Route not found",
	},
	MsgInternal: {
		language.Korean:  "서버 내부 오류가 발생했습니다",
		language.English: "Internal server error",
	},
	MsgHealthy: {
		language.Korean:  "서버가 정상입니다",
		language.English: "Server is healthy",
	},
	MsgHealthDetailed: {
		language.Korean:  "상세 상태 점검",
		language.English: "Detailed health check",
	},
	domain.MsgRequired: {
		language.Korean:  "필수 항목입니다",
		language.English: "Required",
	},
	domain.MsgNicknameTooShort: {
		language.Korean:  "닉네임은 2자 이상이어야 합니다",
		language.English: "Nickname must be at least 2 characters",
	},
	domain.MsgNicknameTooLong: {
		language.Korean:  "닉네임은 12자 이하여야 합니다",
		language.English: "Nickname must be at most 12 characters",
	},
	domain.MsgNicknameCharset: {
		language.Korean:  "닉네임은 한글, 영문, 숫자만 사용 가능합니다",
		language.English: "Nickname may only contain Hangul, English letters and digits",
	},
	domain.MsgGameUnknown: {
		language.Korean:  "지원하지 않는 게임입니다",
		language.English: "Unknown game",
	},
	domain.MsgScoreNotInteger: {
		language.Korean:  "점수는 정수여야 합니다",
		language.English: "Score must be an integer",
	},
	domain.MsgScoreNegative: {
		language.Korean:  "점수는 0 이상이어야 합니다",
		language.English: "Score must not be negative",
	},
	domain.MsgScoreTooLarge: {
		language.Korean:  "유효하지 않은 점수입니다",
		language.English: "Invalid score",
	},
}

func init() {
	for key, translations := range catalog {
		for tag, text := range translations {
			if err := message.SetString(tag, key, text); err != nil {
				panic(err)
			}
		}
	}
}

func Default() language.Tag {
	return supported[0]
}

func Supported() []language.Tag {
	return supported
}

// ResolveTag picks the response language from ?lang= first, then Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}

	if lang := strings.TrimSpace(r.URL.Query().Get(LangParam)); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			return match(tag)
		}
	}

	return FromAcceptLanguage(r.Header.Get("Accept-Language"))
}

func FromAcceptLanguage(accept string) language.Tag {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	return match(tags...)
}

func match(tags ...language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

func PrinterFor(r *http.Request) *message.Printer {
	return Printer(ResolveTag(r))
}

// Translate renders message keys, leaving unknown keys as they are.
func Translate(p *message.Printer, keys []string) []string {
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = p.Sprintf(key)
	}
	return out
}
