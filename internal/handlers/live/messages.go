package live

import (
	"github.com/arychagov/w40k/internal/profiles"
	"github.com/arychagov/w40k/internal/stats"
)

// Client message types
const (
	TypeSet  = "set"
	TypeStep = "step"
	TypeForm = "form"
)

// Server message types
const (
	TypeSummary = "summary"
	TypeError   = "error"
)

// ClientMessage edits one field of the connection's form.
//
//	{"type":"set","field":"attacker.attacks","value":"2d6"}
//	{"type":"step","field":"defender.save","up":false}
//	{"type":"form"}
type ClientMessage struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	Up    bool   `json:"up,omitempty"`
}

// ServerMessage is either the current form, the latest summary or an error
// about a client message
type ServerMessage struct {
	Type string `json:"type"`

	Attacker *profiles.AttackerFields `json:"attacker,omitempty"`
	Defender *profiles.DefenderFields `json:"defender,omitempty"`

	Summary *stats.Summary `json:"summary,omitempty"`
	Display string         `json:"display,omitempty"`

	Field string `json:"field,omitempty"`
	Error string `json:"error,omitempty"`
}

func formMessage(form *profiles.Form) ServerMessage {
	attacker := form.Attacker()
	defender := form.Defender()
	return ServerMessage{
		Type:     TypeForm,
		Attacker: &attacker,
		Defender: &defender,
	}
}

func summaryMessage(summary stats.Summary) ServerMessage {
	return ServerMessage{
		Type:    TypeSummary,
		Summary: &summary,
		Display: summary.String(),
	}
}

func errorMessage(field string, err error) ServerMessage {
	return ServerMessage{
		Type:  TypeError,
		Field: field,
		Error: err.Error(),
	}
}
