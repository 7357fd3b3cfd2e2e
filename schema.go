package domsync

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Schema maps the view tree's element vocabulary onto model node types and
// marks. The reconciler consults it when parsing view regions and when
// deciding whether a node can carry inline text.
type Schema struct {
	blocks       map[string]string
	textblocks   map[string]bool
	marks        map[string]Mark
	defaultBlock string
}

// schemaConfig is the JSON shape accepted by SchemaFromJSON.
type schemaConfig struct {
	Blocks       map[string]string `json:"blocks"`
	Textblocks   []string          `json:"textblocks"`
	Marks        map[string]string `json:"marks"`
	DefaultBlock string            `json:"defaultBlock"`
}

// DefaultSchema returns the built-in vocabulary: common HTML block tags,
// heading levels, lists, and the strong/em/code marks.
func DefaultSchema() *Schema {
	return &Schema{
		blocks: map[string]string{
			"p":          "paragraph",
			"h1":         "heading",
			"h2":         "heading",
			"h3":         "heading",
			"blockquote": "blockquote",
			"pre":        "code_block",
			"ul":         "bullet_list",
			"ol":         "ordered_list",
			"li":         "list_item",
		},
		textblocks: map[string]bool{
			"paragraph":  true,
			"heading":    true,
			"code_block": true,
		},
		marks: map[string]Mark{
			"b":      "strong",
			"strong": "strong",
			"i":      "em",
			"em":     "em",
			"code":   "code",
		},
		defaultBlock: "paragraph",
	}
}

// SchemaFromJSON loads a schema from its JSON description.
func SchemaFromJSON(data []byte) (*Schema, error) {
	var cfg schemaConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse schema config: %w", err)
	}
	if len(cfg.Blocks) == 0 {
		return nil, errors.New("schema config defines no block tags")
	}
	s := &Schema{
		blocks:       cfg.Blocks,
		textblocks:   make(map[string]bool, len(cfg.Textblocks)),
		marks:        make(map[string]Mark, len(cfg.Marks)),
		defaultBlock: cfg.DefaultBlock,
	}
	for _, t := range cfg.Textblocks {
		s.textblocks[t] = true
	}
	for tag, m := range cfg.Marks {
		s.marks[tag] = Mark(m)
	}
	if s.defaultBlock == "" {
		return nil, errors.New("schema config defines no default block type")
	}
	if !s.textblocks[s.defaultBlock] {
		return nil, fmt.Errorf("default block type %q is not a textblock", s.defaultBlock)
	}
	return s, nil
}

// BlockType returns the model node type rendered as the given element tag.
func (s *Schema) BlockType(tag string) (string, bool) {
	t, ok := s.blocks[tag]
	return t, ok
}

// MarkForTag returns the mark an inline formatting element represents.
func (s *Schema) MarkForTag(tag string) (Mark, bool) {
	m, ok := s.marks[tag]
	return m, ok
}

// IsTextblock reports whether nodes of the given type hold inline text.
func (s *Schema) IsTextblock(typ string) bool {
	return s.textblocks[typ]
}

// DefaultBlock is the node type unknown block-level view content falls
// back to when parsed.
func (s *Schema) DefaultBlock() string {
	return s.defaultBlock
}
