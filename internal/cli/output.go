package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case AuthResult:
		o.printAuthResult(v)
	case Enrollment:
		o.printEnrollment(v)
	case VerifyResult:
		o.printVerifyResult(v)
	case Achievements:
		o.printAchievements(v)
	case Relation:
		o.printRelation(v)
	case []Relation:
		o.printRelations(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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

// AuthResult combines player and token
type AuthResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// Enrollment response type
type Enrollment struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauth_url"`
}

// VerifyResult response type
type VerifyResult struct {
	Valid bool `json:"valid"`
}

// Achievements response type
type Achievements struct {
	Tiers []string `json:"tiers"`
}

// Relation response type
type Relation struct {
	ID       int64  `json:"id"`
	PlayerID int64  `json:"player_id"`
	TargetID int64  `json:"target_id"`
	Kind     string `json:"kind"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%d)\n", p.Username, p.ID)
	fmt.Printf("Status: %s\n", p.Status)
	fmt.Printf("Level: %g\n", p.Level)
	fmt.Printf("Record: %d wins / %d losses\n", p.Wins, p.Losses)
	twoFAStr := "off"
	if p.TwoFAEnabled {
		twoFAStr = "on"
	}
	fmt.Printf("Two-factor: %s\n", twoFAStr)
	if p.Email != "" {
		fmt.Printf("Email: %s\n", p.Email)
	}
	if p.Avatar != "" {
		fmt.Printf("Avatar: %s\n", p.Avatar)
	}
}

func (o *Output) printPlayers(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  - %s (%d) - %s\n", p.Username, p.ID, p.Status)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printEnrollment(e Enrollment) {
	fmt.Printf("Secret: %s\n", e.Secret)
	fmt.Printf("URI: %s\n", e.OtpauthURL)
}

func (o *Output) printVerifyResult(v VerifyResult) {
	if v.Valid {
		fmt.Println("Code accepted")
	} else {
		fmt.Println("Code rejected")
	}
}

func (o *Output) printAchievements(a Achievements) {
	if len(a.Tiers) == 0 {
		fmt.Println("No achievements yet")
		return
	}
	fmt.Printf("Achievements: %s\n", strings.Join(a.Tiers, ", "))
}

func (o *Output) printRelation(r Relation) {
	fmt.Printf("Relation %d: %d -> %d (%s)\n", r.ID, r.PlayerID, r.TargetID, r.Kind)
}

func (o *Output) printRelations(relations []Relation) {
	fmt.Printf("Relations (%d):\n", len(relations))
	for _, r := range relations {
		fmt.Printf("  - %d: %d -> %d (%s)\n", r.ID, r.PlayerID, r.TargetID, r.Kind)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
