package domain

import (
	"slices"
	"time"
)

type GameID string

const (
	GameStar   GameID = "star"
	GameMemory GameID = "memory"
	GameJump   GameID = "jump"
)

var Games = []GameID{GameStar, GameMemory, GameJump}

func (g GameID) Valid() bool {
	return slices.Contains(Games, g)
}

type Entry struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Score     int       `json:"score"`
	Game      GameID    `json:"game"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmitInput is a decoded submission. A nil field was missing or had the wrong type.
type SubmitInput struct {
	Nickname *string
	Game     *string
	Score    *float64
}

func NewSubmitInput(nickname, game string, score float64) SubmitInput {
	return SubmitInput{Nickname: &nickname, Game: &game, Score: &score}
}

// persisted layout of the json store
type LeaderboardData struct {
	Entries []Entry `json:"entries"`
}
