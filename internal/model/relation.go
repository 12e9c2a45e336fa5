package model

// RelationID identifies a relation record, assigned by the store
type RelationID int64

// RelationKind classifies a relation between two players
type RelationKind string

const (
	RelationFriend  RelationKind = "friend"
	RelationBlocked RelationKind = "blocked"
)

// Relation links a player to another player
type Relation struct {
	ID       RelationID   `json:"id"`
	PlayerID PlayerID     `json:"player_id"`
	TargetID PlayerID     `json:"target_id"`
	Kind     RelationKind `json:"kind"`
}

// RelationFilter narrows a relation listing
type RelationFilter struct {
	// PlayerID, if set, restricts results to relations owned by that player
	PlayerID *PlayerID
	// Kind, if set, restricts results to that relation kind
	Kind *RelationKind
}

// Matches reports whether the relation passes the filter
func (f RelationFilter) Matches(r *Relation) bool {
	if f.PlayerID != nil && r.PlayerID != *f.PlayerID {
		return false
	}
	if f.Kind != nil && r.Kind != *f.Kind {
		return false
	}
	return true
}
