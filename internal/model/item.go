package model

// Item is the domain model for a todo entry.
// Both fields are set once by the store and never edited.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
