package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/codenav/internal/model"
)

type yamlOutline struct {
	File     string                `yaml:"file"`
	Exported string                `yaml:"exported,omitempty"`
	Styles   []model.BookmarkStyle `yaml:"styles,omitempty"`
	Items    []yamlItem            `yaml:"items"`
}

type yamlItem struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Kind       string     `yaml:"kind"`
	Access     string     `yaml:"access"`
	Parameters string     `yaml:"parameters,omitempty"`
	Lines      [2]int     `yaml:"lines,flow"`
	Bookmark   string     `yaml:"bookmark,omitempty"`
	Members    []yamlItem `yaml:"members,omitempty"`
}

func toYAMLItems(outline Outline, items []*model.Item) []yamlItem {
	result := make([]yamlItem, 0, len(items))
	for _, item := range items {
		if item == nil || !outline.include(item) {
			continue
		}
		result = append(result, yamlItem{
			ID:         item.ID,
			Name:       item.Name,
			Kind:       item.Kind.String(),
			Access:     item.Access.String(),
			Parameters: item.Parameters,
			Lines:      [2]int{item.StartLine, item.EndLine},
			Bookmark:   outline.styleName(item),
			Members:    toYAMLItems(outline, item.Members),
		})
	}
	return result
}

// WriteYAML writes the outline and the bookmark palette as a YAML document
func WriteYAML(w io.Writer, outline Outline) error {
	doc := yamlOutline{
		File:     outline.File,
		Exported: outline.exportedAt(),
		Styles:   outline.Styles,
		Items:    toYAMLItems(outline, outline.Items),
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return nil
}
