package domain

// Topic is a browsable legal subject mapped to a Wikidata class.
// Topics come from the topics source file and drive the /browse endpoint.
type Topic struct {
	// Key is the canonical unique identifier, lowercased.
	// Example: "constitutional-law"
	Key string `json:"key"`

	// Label is the human-readable name shown in the UI.
	Label string `json:"label"`

	// ClassQID is the Wikidata entity id whose instances are browsed.
	// Example: Q114047483
	ClassQID string `json:"classQid"`
}
