package latex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

func (s *state) enterText(n *doctree.Node) (bool, error) {
	if s.verbatim != nil {
		s.verbatim.WriteString(n.Text)
		return true, nil
	}
	s.body.append(smartQuotes(s.encode(n.Text)))
	return true, nil
}

func (s *state) enterLiteral(n *doctree.Node) (bool, error) {
	content := s.encode(strings.TrimSpace(n.PlainText()))
	switch {
	case s.inTitle:
		s.body.append(fmt.Sprintf("\\texttt{%s}", content))
	case n.GetStringAttr("role", "") == "samp":
		s.body.append(fmt.Sprintf("\\samp{%s}", content))
	default:
		s.body.append(fmt.Sprintf("\\code{%s}", content))
	}
	return true, nil
}

func (s *state) enterReference(n *doctree.Node) (bool, error) {
	uri := n.GetStringAttr("refuri", "")
	switch {
	case s.inTitle || uri == "":
		s.pushContext("")
	case strings.HasPrefix(uri, "mailto:") || strings.HasPrefix(uri, "http:") ||
		strings.HasPrefix(uri, "https:") || strings.HasPrefix(uri, "ftp:"):
		s.body.append(fmt.Sprintf("\\href{%s}{", s.encode(uri)))
		s.pushContext("}")
	case strings.HasPrefix(uri, "#"):
		s.body.append(fmt.Sprintf("\\hyperlink{%s}{", uri[1:]))
		s.pushContext("}")
	case strings.HasPrefix(uri, "@token"):
		if s.inProductionList {
			s.body.append("\\token{")
		} else {
			s.body.append("\\grammartoken{")
		}
		s.pushContext("}")
	default:
		s.addWarning(WarningUnusableReference, n.Kind,
			fmt.Sprintf("unusable reference target found: %s", uri))
		s.pushContext("")
	}
	return false, nil
}

func (s *state) exitReference(n *doctree.Node) error {
	return s.popContextTo()
}

func (s *state) enterFootnoteReference(n *doctree.Node) (bool, error) {
	s.body.append(fmt.Sprintf("\\footnotemark[%s]", n.PlainText()))
	return true, nil
}

func (s *state) enterTarget(n *doctree.Node) (bool, error) {
	refid := n.GetStringAttr("refid", "")
	if refid == "" || s.writtenIDs[refid] {
		return false, nil
	}
	// A target immediately before a section becomes the section's
	// hypertarget instead, so the link lands below the heading.
	if parent := s.parent(); parent != nil {
		if idx := parent.Index(n); idx >= 0 && idx+1 < len(parent.Content) {
			if parent.Content[idx+1].Kind == doctree.KindSection {
				s.nextSectionTarget = refid
				return false, nil
			}
		}
	}
	// Index targets are generated through the index markup itself.
	if !strings.HasPrefix(refid, "index-") {
		s.body.append(fmt.Sprintf("\\hypertarget{%s}{}", refid))
	}
	s.writtenIDs[refid] = true
	return false, nil
}

var indexSepRe = regexp.MustCompile(`;\s*`)

func (s *state) enterIndex(n *doctree.Node) (bool, error) {
	entries, _ := n.Attrs["entries"].([]any)
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		entryType, _ := entry["type"].(string)
		value, _ := entry["value"].(string)
		switch entryType {
		case "single":
			s.body.append(fmt.Sprintf("\\index{%s}", indexSepRe.ReplaceAllString(s.encode(value), "!")))
		case "pair":
			parts := splitIndexParts(value, 2)
			s.body.append(fmt.Sprintf("\\indexii{%s}{%s}", s.encode(parts[0]), s.encode(parts[1])))
		case "triple":
			parts := splitIndexParts(value, 3)
			s.body.append(fmt.Sprintf("\\indexiii{%s}{%s}{%s}",
				s.encode(parts[0]), s.encode(parts[1]), s.encode(parts[2])))
		default:
			s.addWarning(WarningUnknownIndexType, n.Kind,
				fmt.Sprintf("unknown index entry type %q found", entryType))
		}
	}
	return true, nil
}

// splitIndexParts splits a semicolon-separated index value into exactly
// count trimmed parts, padding with empty strings.
func splitIndexParts(value string, count int) []string {
	parts := strings.SplitN(value, ";", count)
	result := make([]string, count)
	for i := 0; i < count; i++ {
		if i < len(parts) {
			result[i] = strings.TrimSpace(parts[i])
		}
	}
	return result
}

func (s *state) enterRaw(n *doctree.Node) (bool, error) {
	formats := n.GetStringsAttr("format")
	if formats == nil {
		formats = strings.Fields(n.GetStringAttr("format", ""))
	}
	for _, format := range formats {
		if format == "latex" {
			s.body.append(n.PlainText())
			break
		}
	}
	return true, nil
}
