// Package docs serves the help topics embedded under content/. Each topic is one markdown file;
// its first "# " heading is the topic title.
package docs

import (
	"bufio"
	"embed"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed content/*.md
var content embed.FS

type Topic struct {
	Name  string
	Title string
	Body  string
}

var index = sync.OnceValue(func() map[string]Topic {
	topics := map[string]Topic{}
	_ = fs.WalkDir(content, "content", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name, ok := strings.CutSuffix(d.Name(), ".md")
		if !ok || name == "" {
			return nil
		}
		b, err := content.ReadFile(p)
		if err != nil {
			return err
		}
		topics[name] = Topic{Name: name, Title: title(string(b), name), Body: string(b)}
		return nil
	})
	return topics
})

func title(body, fallback string) string {
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		if h, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "# "); ok {
			return strings.TrimSpace(h)
		}
	}
	return fallback
}

// List returns every topic ordered by name.
func List() []Topic {
	out := make([]Topic, 0, len(index()))
	for _, t := range index() {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a topic by name, ignoring case and surrounding space.
func Lookup(name string) (Topic, bool) {
	t, ok := index()[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}
