package models

// ChatMessage is one line of the shared chat. Messages are ephemeral: once
// rendered into the chat log there is no identifier, no edit and no delete.
type ChatMessage struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}
