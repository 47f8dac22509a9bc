package latex

import (
	"errors"
	"fmt"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

// tableState exists only while a table node is open. Nested tables are
// not supported and fail fast.
type tableState struct {
	col         int
	colCount    int
	colspec     string
	hadHead     bool
	hasVerbatim bool
}

func (s *state) enterTabularColSpec(n *doctree.Node) (bool, error) {
	s.nextTableColspec = n.GetStringAttr("spec", "")
	return true, nil
}

func (s *state) enterTable(n *doctree.Node) (bool, error) {
	if s.table != nil {
		return false, errors.New("nested tables are not supported")
	}
	s.table = &tableState{}
	// Redirect body output until the table is finished.
	s.tableSink = newSink()
	s.outerBody = s.body
	s.body = s.tableSink
	return false, nil
}

func (s *state) exitTable(n *doctree.Node) error {
	s.body = s.outerBody
	s.outerBody = nil

	if s.table.hasVerbatim {
		// Auto-sizing column layouts reject verbatim content.
		s.body.append("\n\\begin{tabular}")
	} else {
		s.body.append("\n\\begin{tabulary}{\\textwidth}")
	}
	switch {
	case s.table.colspec != "":
		s.body.append(s.table.colspec)
	case s.table.hasVerbatim:
		colWidth := 0.95 / float64(s.table.colCount)
		colspec := ""
		for i := 0; i < s.table.colCount; i++ {
			colspec += fmt.Sprintf("p{%.3f\\textwidth}|", colWidth)
		}
		s.body.append("{|" + colspec + "}\n")
	default:
		colspec := ""
		for i := 0; i < s.table.colCount; i++ {
			colspec += "L|"
		}
		s.body.append("{|" + colspec + "}\n")
	}
	s.body.extend(s.tableSink)
	if s.table.hasVerbatim {
		s.body.append("\\end{tabular}\n\n")
	} else {
		s.body.append("\\end{tabulary}\n\n")
	}
	s.table = nil
	s.tableSink = nil
	return nil
}

func (s *state) enterColspec(n *doctree.Node) (bool, error) {
	if s.table == nil {
		return false, errors.New("column definition outside table")
	}
	s.table.colCount++
	return false, nil
}

func (s *state) enterThead(n *doctree.Node) (bool, error) {
	if s.table == nil {
		return false, errors.New("table header group outside table")
	}
	if s.nextTableColspec != "" {
		s.table.colspec = "{" + s.nextTableColspec + "}\n"
	}
	s.nextTableColspec = ""
	s.body.append("\\hline\n")
	s.table.hadHead = true
	return false, nil
}

func (s *state) exitThead(n *doctree.Node) error {
	s.body.append("\\hline\n")
	return nil
}

func (s *state) enterTbody(n *doctree.Node) (bool, error) {
	if s.table == nil {
		return false, errors.New("table body group outside table")
	}
	if !s.table.hadHead {
		// No explicit header: the first body group supplies the header
		// rule so a separator appears exactly once.
		return s.enterThead(n)
	}
	return false, nil
}

func (s *state) exitTbody(n *doctree.Node) error {
	s.body.append("\\hline\n")
	return nil
}

func (s *state) enterRow(n *doctree.Node) (bool, error) {
	if s.table == nil {
		return false, errors.New("table row outside table")
	}
	s.table.col = 0
	return false, nil
}

func (s *state) exitRow(n *doctree.Node) error {
	s.body.append("\\\\\n")
	return nil
}

func (s *state) enterEntry(n *doctree.Node) (bool, error) {
	if s.table == nil {
		return false, errors.New("table cell outside table")
	}
	if n.HasAttr("morerows") || n.HasAttr("morecols") {
		return false, errors.New("column or row spanning cells are not supported")
	}
	if s.table.col > 0 {
		s.body.append(" & ")
	}
	s.table.col++
	if grandparent := s.parentAt(1); grandparent != nil && grandparent.Kind == doctree.KindThead {
		s.body.append("\\textbf{")
		s.pushContext("}")
	} else {
		s.pushContext("")
	}
	return false, nil
}

func (s *state) exitEntry(n *doctree.Node) error {
	return s.popContextTo()
}
