// Package htmltree parses HTML into a document tree suitable for the
// latex translator. It builds section nesting from heading tags and
// skips non-content elements.
package htmltree

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/rgonek/doctree-latex-converter/doctree"
	"github.com/rgonek/doctree-latex-converter/latex"
)

// Converter parses HTML into document trees.
type Converter struct{}

// Result is a parsed document tree plus the warnings collected while
// building it.
type Result struct {
	Tree     *doctree.Node
	Warnings []latex.Warning
}

type state struct {
	warnings []latex.Warning

	// parents and levels form the open-section stack; parents[0] is the
	// document node at pseudo-level 0.
	parents []*doctree.Node
	levels  []int
}

// New creates a new HTML Converter.
func New() *Converter {
	return &Converter{}
}

// Convert parses an HTML document into a document tree.
func (c *Converter) Convert(r io.Reader) (Result, error) {
	root, err := html.Parse(r)
	if err != nil {
		return Result{}, err
	}

	doc := doctree.NewNode(doctree.KindDocument)
	s := &state{
		parents: []*doctree.Node{doc},
		levels:  []int{0},
	}

	body := findBody(root)
	if body == nil {
		body = root
	}
	s.convertBlockChildren(body, nil)

	return Result{
		Tree:     doc,
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType latex.WarningType, nodeKind, message string) {
	s.warnings = append(s.warnings, latex.Warning{
		Type:     warnType,
		NodeKind: nodeKind,
		Message:  message,
	})
}

func (s *state) top() *doctree.Node {
	return s.parents[len(s.parents)-1]
}

func (s *state) openSection(level int, title string) {
	for len(s.levels) > 1 && s.levels[len(s.levels)-1] >= level {
		s.parents = s.parents[:len(s.parents)-1]
		s.levels = s.levels[:len(s.levels)-1]
	}

	section := doctree.NewNode(doctree.KindSection,
		doctree.NewNode(doctree.KindTitle, doctree.NewText(title)))
	s.top().Append(section)
	s.parents = append(s.parents, section)
	s.levels = append(s.levels, level)
}

// convertBlockChildren walks element children in block context. When
// into is non-nil new blocks land there; otherwise they attach to the
// innermost open section, which headings may change mid-walk.
func (s *state) convertBlockChildren(n *html.Node, into *doctree.Node) {
	attach := func(block *doctree.Node) {
		if into != nil {
			into.Append(block)
		} else {
			s.top().Append(block)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if text := collapseSpace(c.Data); strings.TrimSpace(text) != "" {
				attach(doctree.NewNode(doctree.KindParagraph, doctree.NewText(strings.TrimSpace(text))))
			}
			continue
		case html.ElementNode:
		default:
			continue
		}

		if level := headingLevel(c.Data); level > 0 {
			if into != nil {
				// Headings inside a cell or quote degrade to bold text.
				attach(doctree.NewNode(doctree.KindParagraph,
					doctree.NewNode(doctree.KindStrong, doctree.NewText(textContent(c)))))
				continue
			}
			s.openSection(level, textContent(c))
			continue
		}

		switch c.Data {
		case "script", "style", "nav", "header", "footer":
			continue
		case "div", "article", "section", "main", "figure":
			s.convertBlockChildren(c, into)
		case "p":
			paragraph := doctree.NewNode(doctree.KindParagraph)
			paragraph.Content = s.convertInlineChildren(c)
			attach(paragraph)
		case "pre":
			attach(preBlock(c))
		case "blockquote":
			quote := doctree.NewNode(doctree.KindBlockQuote)
			s.convertBlockChildren(c, quote)
			attach(quote)
		case "ul", "ol":
			kind := doctree.KindBulletList
			if c.Data == "ol" {
				kind = doctree.KindEnumeratedList
			}
			list := doctree.NewNode(kind)
			for li := c.FirstChild; li != nil; li = li.NextSibling {
				if li.Type == html.ElementNode && li.Data == "li" {
					list.Append(s.listItem(li))
				}
			}
			attach(list)
		case "dl":
			attach(s.definitionList(c))
		case "hr":
			attach(doctree.NewNode(doctree.KindTransition))
		case "img":
			attach(imageNode(c))
		case "table":
			attach(s.convertTableNode(c))
		default:
			// Unknown element in block position: treat its children as
			// inline flow if it has any text, otherwise recurse.
			if strings.TrimSpace(textContent(c)) == "" {
				s.convertBlockChildren(c, into)
				continue
			}
			paragraph := doctree.NewNode(doctree.KindParagraph)
			paragraph.Content = s.convertInlineChildren(c)
			attach(paragraph)
		}
	}
}

func (s *state) listItem(li *html.Node) *doctree.Node {
	item := doctree.NewNode(doctree.KindListItem)
	if hasBlockChild(li) {
		s.convertBlockChildren(li, item)
		return item
	}
	paragraph := doctree.NewNode(doctree.KindParagraph)
	paragraph.Content = s.convertInlineChildren(li)
	item.Append(paragraph)
	return item
}

func (s *state) definitionList(dl *html.Node) *doctree.Node {
	list := doctree.NewNode(doctree.KindDefinitionList)
	var item *doctree.Node
	for c := dl.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "dt":
			item = doctree.NewNode(doctree.KindDefinitionListItem)
			term := doctree.NewNode(doctree.KindTerm)
			term.Content = s.convertInlineChildren(c)
			item.Append(term)
			list.Append(item)
		case "dd":
			if item == nil {
				continue
			}
			definition := doctree.NewNode(doctree.KindDefinition)
			s.convertBlockChildren(c, definition)
			item.Append(definition)
		}
	}
	return list
}

func (s *state) convertInlineChildren(n *html.Node) []*doctree.Node {
	var content []*doctree.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		content = append(content, s.convertInlineNode(c)...)
	}
	return content
}

func (s *state) convertInlineNode(n *html.Node) []*doctree.Node {
	switch n.Type {
	case html.TextNode:
		if text := collapseSpace(n.Data); text != "" {
			return []*doctree.Node{doctree.NewText(text)}
		}
		return nil
	case html.ElementNode:
	default:
		return nil
	}

	wrap := func(kind doctree.Kind) []*doctree.Node {
		node := doctree.NewNode(kind)
		node.Content = s.convertInlineChildren(n)
		return []*doctree.Node{node}
	}

	switch n.Data {
	case "em", "i":
		return wrap(doctree.KindEmphasis)
	case "strong", "b":
		return wrap(doctree.KindStrong)
	case "code", "tt", "kbd", "samp":
		return []*doctree.Node{
			doctree.NewNode(doctree.KindLiteral, doctree.NewText(textContent(n))),
		}
	case "sup":
		return wrap(doctree.KindSuperscript)
	case "sub":
		return wrap(doctree.KindSubscript)
	case "a":
		href := attrValue(n, "href")
		content := s.convertInlineChildren(n)
		if href == "" {
			return content
		}
		reference := doctree.NewNode(doctree.KindReference)
		reference.SetAttr("refuri", href)
		reference.Content = content
		return []*doctree.Node{reference}
	case "img":
		return []*doctree.Node{imageNode(n)}
	case "br":
		return []*doctree.Node{doctree.NewText("\n")}
	case "script", "style":
		return nil
	default:
		return s.convertInlineChildren(n)
	}
}

var languageClassRe = regexp.MustCompile(`(?:^|\s)(?:language|lang)-(\S+)`)

// preBlock builds a literal block from a pre element, lifting the
// language off a nested code element's class when present.
func preBlock(pre *html.Node) *doctree.Node {
	language := ""
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			if m := languageClassRe.FindStringSubmatch(attrValue(c, "class")); m != nil {
				language = m[1]
			}
			break
		}
	}

	block := doctree.NewNode(doctree.KindLiteralBlock,
		doctree.NewText(strings.TrimRight(rawText(pre), "\n")))
	if language != "" {
		block.SetAttr("language", language)
	}
	return block
}

func imageNode(img *html.Node) *doctree.Node {
	image := doctree.NewNode(doctree.KindImage)
	image.SetAttr("uri", attrValue(img, "src"))
	for _, key := range []string{"alt", "width", "height", "align"} {
		if value := attrValue(img, key); value != "" {
			image.SetAttr(key, value)
		}
	}
	return image
}

var blockTags = map[string]bool{
	"p": true, "pre": true, "blockquote": true, "ul": true, "ol": true,
	"dl": true, "table": true, "div": true, "hr": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.Data] {
			return true
		}
	}
	return false
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(text string) string {
	return spaceRe.ReplaceAllString(text, " ")
}

// textContent returns the whitespace-collapsed text under a node.
func textContent(n *html.Node) string {
	return strings.TrimSpace(collapseSpace(rawText(n)))
}

// rawText returns the concatenated text under a node, verbatim.
func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
