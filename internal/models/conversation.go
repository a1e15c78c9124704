package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one turn of the follow-up conversation about a transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn is the role/text projection of a ChatMessage handed to the request builder.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
