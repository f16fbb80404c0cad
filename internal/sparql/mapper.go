package sparql

import (
	"strings"

	"github.com/caselens/caselens/internal/domain"
)

const entityPrefix = "http://www.wikidata.org/entity/"

// MapCases shapes raw SPARQL bindings into normalized case records.
//
// The query service returns one row per (case, judge, ...) combination, so
// rows are grouped by case id: the first row wins for scalar fields and
// judge labels are accumulated. Output preserves first-seen order.
func MapCases(rs *resultSet) []domain.Case {
	byID := make(map[string]*domain.Case)
	judges := make(map[string][]string)
	order := make([]string, 0, len(rs.Results.Bindings))

	for _, row := range rs.Results.Bindings {
		id := EntityID(row.get("case"))
		if id == "" {
			continue
		}

		cs, seen := byID[id]
		if !seen {
			cs = &domain.Case{
				CaseID:          id,
				Title:           row.get("caseLabel"),
				Description:     row.get("caseDescription"),
				Date:            formatDate(row.get("date")),
				Citation:        row.get("citation"),
				Court:           row.get("courtLabel"),
				MajorityOpinion: row.get("opinionLabel"),
				SourceLabel:     "Wikidata",
				ArticleURL:      row.get("article"),
			}
			byID[id] = cs
			order = append(order, id)
		}

		if judge := row.get("judgeLabel"); judge != "" && !containsString(judges[id], judge) {
			judges[id] = append(judges[id], judge)
		}
	}

	cases := make([]domain.Case, 0, len(order))
	for _, id := range order {
		cs := byID[id]
		cs.Judges = strings.Join(judges[id], ", ")
		cases = append(cases, *cs)
	}
	return cases
}

// MapLabels shapes a translations result into a case-id -> label map.
func MapLabels(rs *resultSet) map[string]string {
	labels := make(map[string]string, len(rs.Results.Bindings))
	for _, row := range rs.Results.Bindings {
		id := EntityID(row.get("case"))
		if id == "" {
			continue
		}
		if label := row.get("label"); label != "" {
			labels[id] = label
		}
	}
	return labels
}

// EntityID extracts the bare Qxxx id from a Wikidata entity URI.
// Returns "" for values that are not entity URIs.
func EntityID(uri string) string {
	if !strings.HasPrefix(uri, entityPrefix) {
		return ""
	}
	return uri[len(entityPrefix):]
}

// formatDate trims xsd:dateTime values ("1954-05-17T00:00:00Z") down to
// the date part the UI displays.
func formatDate(raw string) string {
	if i := strings.IndexByte(raw, 'T'); i > 0 {
		return raw[:i]
	}
	return raw
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
