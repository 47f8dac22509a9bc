package latex

import (
	"fmt"
	"strings"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

// bibEntry holds one citation captured out of the document flow for the
// bibliography emitted at the end of the document.
type bibEntry struct {
	label string
	body  string
}

func (s *state) enterCitation(n *doctree.Node) (bool, error) {
	s.bibitems = append(s.bibitems, bibEntry{})
	s.citeStarts = append(s.citeStarts, s.body.checkpoint())
	return false, nil
}

func (s *state) exitCitation(n *doctree.Node) error {
	if len(s.citeStarts) == 0 {
		return fmt.Errorf("citation exit without matching enter")
	}
	mark := s.citeStarts[len(s.citeStarts)-1]
	s.citeStarts = s.citeStarts[:len(s.citeStarts)-1]
	s.bibitems[len(s.bibitems)-1].body = s.body.capture(mark)
	return nil
}

func (s *state) enterCitationReference(n *doctree.Node) (bool, error) {
	// The key stays raw so it matches the \bibitem key, which is the
	// label with escapes undone.
	s.body.append(fmt.Sprintf("\\cite{%s}", n.PlainText()))
	return true, nil
}

// enterLabel handles the label child of a citation; labels of other
// constructs render nothing here.
func (s *state) enterLabel(n *doctree.Node) (bool, error) {
	if p := s.parent(); p != nil && p.Kind == doctree.KindCitation {
		s.bibitems[len(s.bibitems)-1].label = s.encode(n.PlainText())
	}
	return true, nil
}

// flushBibliography renders the captured citations as a thebibliography
// environment at the end of the document body.
func (s *state) flushBibliography() {
	if len(s.bibitems) == 0 {
		return
	}
	widest := ""
	for _, b := range s.bibitems {
		if len(b.label) > len(widest) {
			widest = b.label
		}
	}
	s.body.append(fmt.Sprintf("\n\\begin{thebibliography}{%s}\n", widest))
	for _, b := range s.bibitems {
		// The cite key must match the raw label, before escaping.
		key := strings.ReplaceAll(b.label, `\_`, "_")
		s.body.append(fmt.Sprintf("\\bibitem[%s]{%s}{%s}\n", b.label, key, b.body))
	}
	s.body.append("\\end{thebibliography}\n")
	s.bibitems = s.bibitems[:0]
}
