// Package content reads content-description files: markdown with TOML
// (+++) or YAML (---) frontmatter, and plain TOML or YAML data files. The
// decoded fields are what field extensions resolve against.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat indicates a file extension Load does not know.
var ErrUnsupportedFormat = errors.New("unsupported content format")

// Record is one parsed content file.
type Record struct {
	Path   string
	Fields map[string]any
	Body   string
}

// Load reads and parses the content file at path.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading %s: %w", path, err)
	}
	rec, err := Parse(path, data)
	if err != nil {
		return Record{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}

// Parse decodes data according to the extension of name.
func Parse(name string, data []byte) (Record, error) {
	rec := Record{Path: name}
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdx":
		rec.Fields, rec.Body, err = parseMarkdown(string(data))
	case ".toml":
		rec.Fields, err = decodeTOML(data)
	case ".yaml", ".yml":
		rec.Fields, err = decodeYAML(data)
	default:
		return Record{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
	if err != nil {
		return Record{}, err
	}
	if rec.Fields == nil {
		rec.Fields = map[string]any{}
	}
	return rec, nil
}

// parseMarkdown splits off and decodes the frontmatter. A file without a
// frontmatter block has no fields.
func parseMarkdown(text string) (map[string]any, string, error) {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "+++"):
		fm, body, err := splitFrontmatter(trimmed, "+++")
		if err != nil {
			return nil, "", err
		}
		fields, err := decodeTOML([]byte(fm))
		return fields, strings.TrimSpace(body), err
	case strings.HasPrefix(trimmed, "---"):
		fm, body, err := splitFrontmatter(trimmed, "---")
		if err != nil {
			return nil, "", err
		}
		fields, err := decodeYAML([]byte(fm))
		return fields, strings.TrimSpace(body), err
	default:
		return nil, strings.TrimSpace(text), nil
	}
}

// splitFrontmatter splits content that starts with delim into the text
// between the first two delimiters and the remainder.
//
//	+++
//	<TOML>
//	+++
//	<body>
func splitFrontmatter(content, delim string) (string, string, error) {
	rest := content[len(delim):]
	idx := strings.Index(rest, "\n"+delim)
	if idx < 0 {
		return "", "", fmt.Errorf("missing closing %s frontmatter delimiter", delim)
	}
	frontmatter := rest[:idx]
	body := rest[idx+1+len(delim):]
	return frontmatter, body, nil
}

func decodeTOML(data []byte) (map[string]any, error) {
	var fields map[string]any
	if err := toml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	return fields, nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return fields, nil
}
