package response

import (
	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/services/twofactor"
)

// Player represents a player in API responses. The TOTP secret is never
// exposed here; only whether enrollment initiated it.
type Player struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Avatar       string  `json:"avatar"`
	Level        float64 `json:"level"`
	Status       string  `json:"status"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	TwoFAEnabled bool    `json:"two_fa_enabled"`
	Email        string  `json:"email"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:           int64(p.ID),
		Username:     p.Username,
		Avatar:       p.Avatar,
		Level:        p.Level,
		Status:       string(p.Status),
		Wins:         p.Wins,
		Losses:       p.Losses,
		TwoFAEnabled: p.TwoFAEnabled,
		Email:        p.Email,
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// AuthResponse is the response for the login callback
type AuthResponse struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// Enrollment is the response for initiating TOTP enrollment
type Enrollment struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauth_url"`
}

// EnrollmentFromService converts a twofactor.Enrollment
func EnrollmentFromService(e *twofactor.Enrollment) Enrollment {
	return Enrollment{
		Secret:     e.Secret,
		OtpauthURL: e.OtpauthURL,
	}
}

// VerifyResult is the response for a TOTP code check
type VerifyResult struct {
	Valid bool `json:"valid"`
}

// Achievements is the response listing a player's earned tiers
type Achievements struct {
	Tiers []string `json:"tiers"`
}

// Relation represents a relation in API responses
type Relation struct {
	ID       int64  `json:"id"`
	PlayerID int64  `json:"player_id"`
	TargetID int64  `json:"target_id"`
	Kind     string `json:"kind"`
}

// RelationFromModel converts a model.Relation
func RelationFromModel(r *model.Relation) Relation {
	return Relation{
		ID:       int64(r.ID),
		PlayerID: int64(r.PlayerID),
		TargetID: int64(r.TargetID),
		Kind:     string(r.Kind),
	}
}

// RelationsFromModel converts a slice of relations
func RelationsFromModel(relations []*model.Relation) []Relation {
	out := make([]Relation, len(relations))
	for i, r := range relations {
		out[i] = RelationFromModel(r)
	}
	return out
}
