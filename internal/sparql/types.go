package sparql

// resultSet mirrors the application/sparql-results+json envelope returned
// by the Wikidata Query Service.
type resultSet struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []binding `json:"bindings"`
	} `json:"results"`
}

// binding maps a projected variable name to its bound value.
type binding map[string]boundValue

type boundValue struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// get returns the bound string for a variable, or "" when unbound.
func (b binding) get(name string) string {
	if v, ok := b[name]; ok {
		return v.Value
	}
	return ""
}
