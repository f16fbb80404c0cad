package sparql

import (
	"fmt"
	"strings"
)

// Query templates against the Wikidata Query Service. These are kept
// deliberately plain: one template per endpoint, user input interpolated
// only through escapeLiteral. No attempt is made to optimize them.

// searchQuery finds legal cases whose labels match the search term, via
// the EntitySearch mwapi bridge, and projects the display fields the
// frontend renders.
const searchQuery = `SELECT ?case ?caseLabel ?caseDescription ?date ?citation ?courtLabel ?opinionLabel ?judgeLabel ?article WHERE {
  SERVICE wikibase:mwapi {
    bd:serviceParam wikibase:api "EntitySearch";
                    wikibase:endpoint "www.wikidata.org";
                    mwapi:search "%s";
                    mwapi:language "%s".
    ?case wikibase:apiOutputItem mwapi:item.
  }
  ?case wdt:P31/wdt:P279* wd:Q2334719.
  OPTIONAL { ?case wdt:P577 ?date. }
  OPTIONAL { ?case wdt:P1031 ?citation. }
  OPTIONAL { ?case wdt:P4884 ?court. }
  OPTIONAL { ?case wdt:P1593 ?opinion. }
  OPTIONAL { ?case wdt:P1594 ?judge. }
  OPTIONAL {
    ?article schema:about ?case;
             schema:isPartOf <https://%s.wikipedia.org/>.
  }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "%s,en". }
}
LIMIT %d`

// browseQuery lists instances of a topic class (e.g. constitutional court
// decisions), newest first by decision date when present.
const browseQuery = `SELECT ?case ?caseLabel ?caseDescription ?date ?citation ?courtLabel ?article WHERE {
  ?case wdt:P31/wdt:P279* wd:%s.
  OPTIONAL { ?case wdt:P577 ?date. }
  OPTIONAL { ?case wdt:P1031 ?citation. }
  OPTIONAL { ?case wdt:P4884 ?court. }
  OPTIONAL {
    ?article schema:about ?case;
             schema:isPartOf <https://%s.wikipedia.org/>.
  }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "%s,en". }
}
ORDER BY DESC(?date)
LIMIT %d`

// translationsQuery fetches labels for a set of entity ids in one target
// language.
const translationsQuery = `SELECT ?case ?label WHERE {
  VALUES ?case { %s }
  ?case rdfs:label ?label.
  FILTER(LANG(?label) = "%s")
}`

// BuildSearchQuery renders the search template for a user term.
func BuildSearchQuery(term, lang string, limit int) string {
	return fmt.Sprintf(searchQuery,
		escapeLiteral(term), sanitizeLang(lang), sanitizeLang(lang), sanitizeLang(lang), limit)
}

// BuildBrowseQuery renders the browse template for a topic class QID.
func BuildBrowseQuery(classQID, lang string, limit int) string {
	return fmt.Sprintf(browseQuery, classQID, sanitizeLang(lang), sanitizeLang(lang), limit)
}

// BuildTranslationsQuery renders the label lookup for a set of case ids.
func BuildTranslationsQuery(caseIDs []string, lang string) string {
	refs := make([]string, 0, len(caseIDs))
	for _, id := range caseIDs {
		if isEntityID(id) {
			refs = append(refs, "wd:"+id)
		}
	}
	return fmt.Sprintf(translationsQuery, strings.Join(refs, " "), sanitizeLang(lang))
}

// escapeLiteral makes a user term safe inside a double-quoted SPARQL
// string literal.
func escapeLiteral(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}

// sanitizeLang restricts language tags to the safe subset Wikidata accepts.
func sanitizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "en"
	}
	for _, c := range lang {
		if (c < 'a' || c > 'z') && c != '-' {
			return "en"
		}
	}
	return lang
}

// isEntityID reports whether s looks like a Wikidata entity id (Q + digits).
func isEntityID(s string) bool {
	if len(s) < 2 || s[0] != 'Q' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
