package model

import "strings"

// PlayerID is the stable identifier assigned by the external login provider.
// It is the primary identity of a player and is never reassigned.
type PlayerID int64

// Status is a player's presence state
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusInGame  Status = "in_game"
)

// LevelStep is the fixed increment applied per level-up call
const LevelStep = 0.125

// Player is the persisted player record
type Player struct {
	ID           PlayerID `json:"id"`
	Username     string   `json:"username"` // globally unique
	Avatar       string   `json:"avatar"`
	Level        float64  `json:"level"`
	Status       Status   `json:"status"`
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	TwoFAEnabled bool     `json:"two_fa_enabled"`
	Secret       string   `json:"secret,omitempty"` // TOTP shared secret, set by enrollment only; redacted at the API boundary
	Email        string   `json:"email"`
}

// PlayerPatch describes a partial update to a player record.
// Nil fields are left untouched.
type PlayerPatch struct {
	Username     *string
	Avatar       *string
	Level        *float64
	Status       *Status
	Wins         *int
	Losses       *int
	TwoFAEnabled *bool
	Secret       *string
}

// Apply copies the set fields of the patch onto the player
func (p PlayerPatch) Apply(player *Player) {
	if p.Username != nil {
		player.Username = *p.Username
	}
	if p.Avatar != nil {
		player.Avatar = *p.Avatar
	}
	if p.Level != nil {
		player.Level = *p.Level
	}
	if p.Status != nil {
		player.Status = *p.Status
	}
	if p.Wins != nil {
		player.Wins = *p.Wins
	}
	if p.Losses != nil {
		player.Losses = *p.Losses
	}
	if p.TwoFAEnabled != nil {
		player.TwoFAEnabled = *p.TwoFAEnabled
	}
	if p.Secret != nil {
		player.Secret = *p.Secret
	}
}

// PlayerFilter narrows a player listing
type PlayerFilter struct {
	// Status, if set, restricts results to players in that state
	Status *Status
	// Search, if non-empty, matches a substring of the username
	Search string
}

// Matches reports whether the player passes the filter
func (f PlayerFilter) Matches(p *Player) bool {
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Username), strings.ToLower(f.Search)) {
		return false
	}
	return true
}
