package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestList(t *testing.T) {
	t.Parallel()

	var got [][2]string
	for _, topic := range List() {
		got = append(got, [2]string{topic.Name, topic.Title})
	}
	want := [][2]string{
		{"catalog", "Catalog files"},
		{"config", "Configuration"},
		{"keys", "Siralim party planner"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("topics: got %v want %v", got, want)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	topic, ok := Lookup("  KEYS ")
	if !ok || topic.Name != "keys" || !strings.Contains(topic.Body, "## Party grid") {
		t.Fatalf("expected keys topic; got %+v ok=%v", topic.Name, ok)
	}
	for _, name := range []string{"", "nope", "../docs", "keys.md"} {
		if _, ok := Lookup(name); ok {
			t.Fatalf("expected %q to be unknown", name)
		}
	}
}

func TestTitle_FallsBackToName(t *testing.T) {
	t.Parallel()

	if got := title("no heading here\n## sub", "misc"); got != "misc" {
		t.Fatalf("title: got %q", got)
	}
	if got := title("\n  # Spaced  \nbody", "misc"); got != "Spaced" {
		t.Fatalf("title: got %q", got)
	}
}
