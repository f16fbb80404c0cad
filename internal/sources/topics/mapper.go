package topics

import (
	"fmt"
	"strings"

	"github.com/caselens/caselens/internal/domain"
)

// Mapper converts topics config entries to domain topics.
type Mapper struct{}

// NewMapper creates a topics mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapTopics converts a TopicsConfig to domain.Topic slice.
// Entries without a class QID are skipped; a missing key is derived from
// the label.
func (m *Mapper) MapTopics(config *TopicsConfig) ([]domain.Topic, error) {
	mapped := make([]domain.Topic, 0, len(config.Topics))
	seen := make(map[string]bool, len(config.Topics))

	for _, entry := range config.Topics {
		if entry.Class == "" || entry.Label == "" {
			continue
		}

		key := entry.Key
		if key == "" {
			key = slugify(entry.Label)
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		mapped = append(mapped, domain.Topic{
			Key:      key,
			Label:    entry.Label,
			ClassQID: entry.Class,
		})
	}

	if len(mapped) == 0 {
		return nil, fmt.Errorf("no valid topics found in config")
	}
	return mapped, nil
}

// slugify lowercases a label and collapses non-alphanumerics to hyphens.
func slugify(label string) string {
	var b strings.Builder
	lastHyphen := true
	for _, c := range strings.ToLower(label) {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
