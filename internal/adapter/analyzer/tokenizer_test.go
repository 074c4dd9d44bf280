package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and drops stopwords",
			text: "The Election and the Economy",
			want: []string{"election", "economy"},
		},
		{
			name: "splits on punctuation",
			text: "U.S. jobs-report: August 2024",
			want: []string{"jobs", "report", "august", "2024"},
		},
		{
			name: "drops single characters",
			text: "a b candidate",
			want: []string{"candidate"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "accented words survive",
			text: "La economía española",
			want: []string{"la", "economía", "española"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTermFrequencies(t *testing.T) {
	tok := NewTokenizer()

	tf := tok.TermFrequencies("election results election night")
	if tf["election"] != 2 {
		t.Errorf("expected tf[election]=2, got %d", tf["election"])
	}
	if tf["results"] != 1 {
		t.Errorf("expected tf[results]=1, got %d", tf["results"])
	}
	if tf["night"] != 1 {
		t.Errorf("expected tf[night]=1, got %d", tf["night"])
	}
}
