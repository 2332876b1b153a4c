package entity

import "strings"

const (
	DefaultPlayerXName = "Player X"
	DefaultPlayerOName = "Player O"
	DefaultBotName     = "Computer"
)

type Player struct {
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
	Bot  bool   `json:"bot,omitempty"`
}

// NewPlayer - blank names fall back to defaultName.
func NewPlayer(name, defaultName string, mark Mark) *Player {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	return &Player{
		Name: name,
		Mark: mark,
	}
}

func NewBotPlayer(name string) *Player {
	player := NewPlayer(name, DefaultBotName, PlayerO)
	player.Bot = true

	return player
}

func (that *Player) IsBot() bool {
	return that.Bot
}
