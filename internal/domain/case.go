package domain

// Case is a normalized legal-case record as shaped from the Wikidata
// search/browse results.
//
// The record is display data only: the CaseID is the source of truth
// everywhere in the library subsystem, and the rest of the fields are a
// best-effort projection that may be stale or absent for a given id.
type Case struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// CaseID is the opaque unique identifier of the case.
	// Example: Q12345678 (a Wikidata entity id).
	CaseID string `json:"caseId"`

	// ─────────────────────────────
	// Display data
	// ─────────────────────────────

	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Date            string `json:"date,omitempty"`
	Citation        string `json:"citation,omitempty"`
	Court           string `json:"court,omitempty"`
	MajorityOpinion string `json:"majorityOpinion,omitempty"`
	SourceLabel     string `json:"sourceLabel,omitempty"`
	Judges          string `json:"judges,omitempty"`
	ArticleURL      string `json:"articleUrl,omitempty"`
}
