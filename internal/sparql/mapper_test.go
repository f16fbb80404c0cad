package sparql

import "testing"

func row(vars map[string]string) binding {
	b := make(binding, len(vars))
	for k, v := range vars {
		b[k] = boundValue{Type: "literal", Value: v}
	}
	return b
}

func TestMapCasesGroupsRowsByCase(t *testing.T) {
	rs := &resultSet{}
	rs.Results.Bindings = []binding{
		row(map[string]string{
			"case":       entityPrefix + "Q1",
			"caseLabel":  "Republic v. X",
			"date":       "1954-05-17T00:00:00Z",
			"citation":   "347 U.S. 483",
			"courtLabel": "Supreme Court",
			"judgeLabel": "Judge A",
		}),
		// second judge on the same case: must merge, not duplicate
		row(map[string]string{
			"case":       entityPrefix + "Q1",
			"caseLabel":  "Republic v. X",
			"judgeLabel": "Judge B",
		}),
		// repeated judge must not appear twice
		row(map[string]string{
			"case":       entityPrefix + "Q1",
			"judgeLabel": "Judge A",
		}),
		row(map[string]string{
			"case":      entityPrefix + "Q2",
			"caseLabel": "State v. Y",
		}),
		// row without an entity URI is dropped
		row(map[string]string{"caseLabel": "orphan"}),
	}

	cases := MapCases(rs)
	if len(cases) != 2 {
		t.Fatalf("MapCases returned %d cases, want 2", len(cases))
	}

	first := cases[0]
	if first.CaseID != "Q1" {
		t.Errorf("CaseID = %q, first-seen order broken", first.CaseID)
	}
	if first.Title != "Republic v. X" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Date != "1954-05-17" {
		t.Errorf("Date = %q, want date part only", first.Date)
	}
	if first.Citation != "347 U.S. 483" {
		t.Errorf("Citation = %q", first.Citation)
	}
	if first.Judges != "Judge A, Judge B" {
		t.Errorf("Judges = %q", first.Judges)
	}
	if first.SourceLabel != "Wikidata" {
		t.Errorf("SourceLabel = %q", first.SourceLabel)
	}

	if cases[1].CaseID != "Q2" || cases[1].Judges != "" {
		t.Errorf("second case = %+v", cases[1])
	}
}

func TestMapCasesEmptyResult(t *testing.T) {
	if got := MapCases(&resultSet{}); len(got) != 0 {
		t.Errorf("MapCases(empty) = %v", got)
	}
}

func TestMapLabels(t *testing.T) {
	rs := &resultSet{}
	rs.Results.Bindings = []binding{
		row(map[string]string{"case": entityPrefix + "Q1", "label": "Affaire X"}),
		row(map[string]string{"case": entityPrefix + "Q2", "label": ""}),
		row(map[string]string{"case": "not-a-uri", "label": "dropped"}),
	}

	labels := MapLabels(rs)
	if len(labels) != 1 {
		t.Fatalf("MapLabels returned %d entries, want 1", len(labels))
	}
	if labels["Q1"] != "Affaire X" {
		t.Errorf("labels[Q1] = %q", labels["Q1"])
	}
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{entityPrefix + "Q42", "Q42"},
		{"https://example.org/Q42", ""},
		{"Q42", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EntityID(tt.input); got != tt.want {
			t.Errorf("EntityID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1954-05-17T00:00:00Z", "1954-05-17"},
		{"1954-05-17", "1954-05-17"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatDate(tt.input); got != tt.want {
			t.Errorf("formatDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
