// Package doctree defines the parsed document tree consumed by the
// LaTeX translator. The tree is produced by an upstream parser (or one
// of the bundled frontends) and is never mutated by the translator.
package doctree

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies a node's semantic role.
type Kind string

// Structural and block-level kinds.
const (
	KindDocument           Kind = "document"
	KindStartOfFile        Kind = "start_of_file"
	KindSection            Kind = "section"
	KindTitle              Kind = "title"
	KindParagraph          Kind = "paragraph"
	KindText               Kind = "text"
	KindTransition         Kind = "transition"
	KindTopic              Kind = "topic"
	KindSidebar            Kind = "sidebar"
	KindRubric             Kind = "rubric"
	KindGlossary           Kind = "glossary"
	KindCompound           Kind = "compound"
	KindContainer          Kind = "container"
	KindDecoration         Kind = "decoration"
	KindGenerated          Kind = "generated"
	KindProblematic        Kind = "problematic"
	KindSystemMessage      Kind = "system_message"
	KindComment            Kind = "comment"
	KindSubstitutionDef    Kind = "substitution_definition"
	KindSubstitutionRef    Kind = "substitution_reference"
	KindPendingXref        Kind = "pending_xref"
	KindHighlightLang      Kind = "highlightlang"
	KindBulletList         Kind = "bullet_list"
	KindEnumeratedList     Kind = "enumerated_list"
	KindListItem           Kind = "list_item"
	KindDefinitionList     Kind = "definition_list"
	KindDefinitionListItem Kind = "definition_list_item"
	KindTerm               Kind = "term"
	KindClassifier         Kind = "classifier"
	KindDefinition         Kind = "definition"
	KindFieldList          Kind = "field_list"
	KindField              Kind = "field"
	KindFieldName          Kind = "field_name"
	KindFieldBody          Kind = "field_body"
	KindOptionList         Kind = "option_list"
	KindOptionListItem     Kind = "option_list_item"
	KindOptionGroup        Kind = "option_group"
	KindOption             Kind = "option"
	KindOptionString       Kind = "option_string"
	KindOptionArgument     Kind = "option_argument"
	KindDescription        Kind = "description"
	KindLiteralBlock       Kind = "literal_block"
	KindDoctestBlock       Kind = "doctest_block"
	KindLineBlock          Kind = "line_block"
	KindLine               Kind = "line"
	KindBlockQuote         Kind = "block_quote"
	KindTable              Kind = "table"
	KindTabularColSpec     Kind = "tabular_col_spec"
	KindTgroup             Kind = "tgroup"
	KindColspec            Kind = "colspec"
	KindThead              Kind = "thead"
	KindTbody              Kind = "tbody"
	KindRow                Kind = "row"
	KindEntry              Kind = "entry"
	KindImage              Kind = "image"
	KindFigure             Kind = "figure"
	KindCaption            Kind = "caption"
	KindLegend             Kind = "legend"
	KindCentered           Kind = "centered"
	KindAttribution        Kind = "attribution"
	KindAcks               Kind = "acks"
)

// Admonition kinds.
const (
	KindAdmonition      Kind = "admonition"
	KindAttention       Kind = "attention"
	KindCaution         Kind = "caution"
	KindDanger          Kind = "danger"
	KindError           Kind = "error"
	KindHint            Kind = "hint"
	KindImportant       Kind = "important"
	KindNote            Kind = "note"
	KindTip             Kind = "tip"
	KindWarning         Kind = "warning"
	KindSeealso         Kind = "seealso"
	KindVersionModified Kind = "versionmodified"
)

// Reference-related kinds.
const (
	KindFootnote          Kind = "footnote"
	KindFootnoteReference Kind = "footnote_reference"
	KindCitation          Kind = "citation"
	KindCitationReference Kind = "citation_reference"
	KindLabel             Kind = "label"
	KindReference         Kind = "reference"
	KindTarget            Kind = "target"
	KindIndex             Kind = "index"
	KindRaw               Kind = "raw"
)

// Inline kinds.
const (
	KindEmphasis        Kind = "emphasis"
	KindStrong          Kind = "strong"
	KindLiteral         Kind = "literal"
	KindLiteralEmphasis Kind = "literal_emphasis"
	KindTitleReference  Kind = "title_reference"
	KindSuperscript     Kind = "superscript"
	KindSubscript       Kind = "subscript"
)

// Described-object kinds.
const (
	KindDesc              Kind = "desc"
	KindDescSignature     Kind = "desc_signature"
	KindDescType          Kind = "desc_type"
	KindDescName          Kind = "desc_name"
	KindDescAddname       Kind = "desc_addname"
	KindDescParameterlist Kind = "desc_parameterlist"
	KindDescAnnotation    Kind = "desc_annotation"
	KindDescContent       Kind = "desc_content"
	KindRefcount          Kind = "refcount"
	KindProductionList    Kind = "productionlist"
	KindProduction        Kind = "production"
	KindModule            Kind = "module"
)

// Node represents any node in the document tree. Text is set only for
// text leaves; Attrs carries kind-specific attributes (refuri, ids,
// language, align, scale, ...).
type Node struct {
	Kind    Kind           `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
}

// NewText returns a text leaf.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewNode returns a node of the given kind with the given children.
func NewNode(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Content: children}
}

// Append adds children and returns the node for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Content = append(n.Content, children...)
	return n
}

// SetAttr sets an attribute and returns the node for chaining.
func (n *Node) SetAttr(key string, value any) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = value
	return n
}

// GetStringAttr returns a string attribute or the fallback.
func (n *Node) GetStringAttr(key, fallback string) string {
	if n.Attrs == nil {
		return fallback
	}
	if value, ok := n.Attrs[key].(string); ok {
		return value
	}
	return fallback
}

// GetIntAttr returns an integer attribute or the fallback. JSON
// decoding produces float64, so both shapes are accepted.
func (n *Node) GetIntAttr(key string, fallback int) int {
	if n.Attrs == nil {
		return fallback
	}
	switch value := n.Attrs[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return fallback
	}
}

// GetFloatAttr returns a float attribute or the fallback.
func (n *Node) GetFloatAttr(key string, fallback float64) float64 {
	if n.Attrs == nil {
		return fallback
	}
	switch value := n.Attrs[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	default:
		return fallback
	}
}

// GetBoolAttr returns a boolean attribute or the fallback.
func (n *Node) GetBoolAttr(key string, fallback bool) bool {
	if n.Attrs == nil {
		return fallback
	}
	if value, ok := n.Attrs[key].(bool); ok {
		return value
	}
	return fallback
}

// GetStringsAttr returns a string-list attribute. Both []string and
// JSON-decoded []any shapes are accepted.
func (n *Node) GetStringsAttr(key string) []string {
	if n.Attrs == nil {
		return nil
	}
	switch value := n.Attrs[key].(type) {
	case []string:
		return value
	case []any:
		result := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(key string) bool {
	if n.Attrs == nil {
		return false
	}
	_, ok := n.Attrs[key]
	return ok
}

// PlainText returns the concatenated text of the subtree.
func (n *Node) PlainText() string {
	if n.Kind == KindText {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Content {
		sb.WriteString(child.PlainText())
	}
	return sb.String()
}

// Index returns the position of child within n's content, or -1.
func (n *Node) Index(child *Node) int {
	for i, c := range n.Content {
		if c == child {
			return i
		}
	}
	return -1
}

// IsTextElement reports whether nodes of this kind contain inline
// content, which decides e.g. whether an image renders inline.
func IsTextElement(kind Kind) bool {
	switch kind {
	case KindParagraph, KindTitle, KindTerm, KindCaption, KindLine,
		KindEmphasis, KindStrong, KindLiteralEmphasis, KindTitleReference,
		KindReference, KindFieldName, KindAttribution, KindRubric,
		KindSuperscript, KindSubscript, KindProblematic, KindGenerated:
		return true
	default:
		return false
	}
}

// Unmarshal parses a JSON-encoded document tree.
func Unmarshal(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse document tree JSON: %w", err)
	}
	if root.Kind == "" {
		return nil, fmt.Errorf("document tree root has no kind")
	}
	return &root, nil
}

// Marshal encodes a document tree as JSON.
func Marshal(root *Node) ([]byte, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document tree JSON: %w", err)
	}
	return data, nil
}
