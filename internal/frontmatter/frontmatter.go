// Package frontmatter reads and writes the YAML header embedded at the
// start of every rendered document. It is the only reader that inspects a
// rendered document's header; internal/convert is the only writer.
package frontmatter

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brume-cli/brume/internal/core/domain"
)

const delimiter = "---"

// Read returns the parsed frontmatter of the rendered document at path,
// or (nil, nil) when the file does not begin with the delimiter pair. A
// file whose first line is the delimiter but has no closing delimiter
// returns domain.ErrMalformedFrontmatter. Any other read failure is
// returned as-is (callers distinguish os.IsNotExist themselves).
func Read(path string) (*domain.Frontmatter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fm, _, err := Parse(raw)
	return fm, err
}

// Parse splits raw rendered-document bytes into frontmatter and body.
// When there is no frontmatter block at all, fm is nil, err is nil, and
// body is the whole of raw.
func Parse(raw []byte) (*domain.Frontmatter, string, error) {
	text := string(raw)
	if !strings.HasPrefix(text, delimiter+"\n") && text != delimiter {
		return nil, text, nil
	}

	rest := strings.TrimPrefix(text, delimiter+"\n")
	closeIdx := strings.Index(rest, "\n"+delimiter+"\n")
	if closeIdx < 0 {
		return nil, "", domain.Wrap(domain.KindParse, "reading frontmatter", domain.ErrMalformedFrontmatter)
	}

	yamlBlock := rest[:closeIdx]
	body := strings.TrimPrefix(rest[closeIdx+len(delimiter)+2:], "\n")

	var fm domain.Frontmatter
	if err := yaml.Unmarshal([]byte(yamlBlock), &fm); err != nil {
		return nil, "", domain.Wrap(domain.KindParse, "parsing frontmatter YAML", err)
	}
	return &fm, body, nil
}

// Render serializes frontmatter + body into the persisted document form:
// "---\n" + frontmatter_yaml + "---\n\n" + body.
func Render(fm domain.Frontmatter, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, domain.Wrap(domain.KindParse, "serializing frontmatter YAML", err)
	}
	var sb strings.Builder
	sb.WriteString(delimiter)
	sb.WriteByte('\n')
	sb.Write(yamlBytes)
	sb.WriteString(delimiter)
	sb.WriteString("\n\n")
	sb.WriteString(body)
	return []byte(sb.String()), nil
}
