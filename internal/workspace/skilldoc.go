package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// frontmatterDelimiter encloses the YAML header of a SKILL.md file.
const frontmatterDelimiter = "---"

// SkillDoc is the descriptive header of a skill, taken from SKILL.md
// frontmatter.
type SkillDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Category    string `yaml:"category"`
}

// ParseSkillDoc extracts the skill header from SKILL.md content. The parse
// is total: missing or malformed frontmatter leaves the fields empty, the
// name falls back to the first "# " heading, then to dirName.
func ParseSkillDoc(content []byte, dirName string) *SkillDoc {
	doc := &SkillDoc{}

	trimmed := bytes.TrimLeft(content, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte(frontmatterDelimiter)) {
		rest := trimmed[len(frontmatterDelimiter):]
		if idx := bytes.Index(rest, []byte("\n"+frontmatterDelimiter)); idx != -1 {
			// Malformed YAML leaves the doc empty; the fallbacks fill it.
			_ = yaml.Unmarshal(rest[:idx], doc)
		}
	}

	if doc.Name == "" {
		doc.Name = firstHeading(content)
	}
	if doc.Name == "" {
		doc.Name = dirName
	}
	return doc
}

// ReadSkillDoc parses the workspace's SKILL.md. A workspace without one
// returns nil with no error.
func ReadSkillDoc(root string) (*SkillDoc, error) {
	content, err := os.ReadFile(filepath.Join(root, "SKILL.md"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading SKILL.md: %w", err)
	}
	return ParseSkillDoc(content, filepath.Base(root)), nil
}

// firstHeading returns the text of the first markdown h1 line, or "".
func firstHeading(content []byte) string {
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}
