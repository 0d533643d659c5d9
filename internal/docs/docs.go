// Package docs serves the embedded help topics behind `navcard docs`.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one embedded help page.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// List returns every topic sorted by name. The title is the page's first
// heading, falling back to the name.
func List() []Topic {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return nil
	}
	topics := make([]Topic, 0, len(entries))
	for _, p := range entries {
		name := strings.TrimSuffix(path.Base(p), ".md")
		if name == "" {
			continue
		}
		title := name
		if b, err := contentFS.ReadFile(p); err == nil {
			if h := firstHeading(string(b)); h != "" {
				title = h
			}
		}
		topics = append(topics, Topic{Name: name, Title: title})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}

// Get returns the markdown body for a topic name, case-insensitively.
func Get(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", name+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func firstHeading(md string) string {
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
