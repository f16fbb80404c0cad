package domain

import (
	"strings"
	"time"
)

// Collection is a named, user-curated group of case ids.
//
// Collections reference cases by id only. Membership is independent of the
// bookmark set: deleting a collection never removes bookmarks, and a
// collection may reference ids that were never bookmarked.
type Collection struct {
	// ID is the canonical unique identifier, generated at creation.
	ID string `json:"id"`

	// Name is a non-empty display string.
	Name string `json:"name"`

	// Description is optional.
	Description string `json:"description,omitempty"`

	// CaseIDs holds member case ids, unique, in insertion order.
	CaseIDs []string `json:"caseIds"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation of name, description or
	// membership.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Contains reports whether caseID is a member of the collection.
func (c *Collection) Contains(caseID string) bool {
	for _, id := range c.CaseIDs {
		if id == caseID {
			return true
		}
	}
	return false
}

// ValidateName trims and validates a collection name.
// Returns the trimmed name, or a ValidationError when empty.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return trimmed, nil
}
