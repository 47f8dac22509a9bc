package latex

import (
	"fmt"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

func (s *state) enterListItem(n *doctree.Node) (bool, error) {
	// The "{}" protects against a following "[", which list
	// environments would swallow as an optional argument.
	s.body.append("\\item {} ")
	return false, nil
}

// Terms of definition lists; also reused for field names.
func (s *state) enterTerm(n *doctree.Node) (bool, error) {
	closing := "]"
	if ids := n.GetStringsAttr("ids"); len(ids) > 0 {
		closing += fmt.Sprintf("\\hypertarget{%s}{}", ids[0])
	}
	s.body.append("\\item[")
	s.pushContext(closing)
	return false, nil
}

func (s *state) exitTerm(n *doctree.Node) error {
	return s.popContextTo()
}

func (s *state) enterOptionGroup(n *doctree.Node) (bool, error) {
	s.body.append("\\item [")
	// Counter for options rendered in this group; the first one is not
	// comma-separated.
	s.optionFlags = append(s.optionFlags, 0)
	return false, nil
}

func (s *state) exitOptionGroup(n *doctree.Node) error {
	if len(s.optionFlags) == 0 {
		return fmt.Errorf("option group exit without matching enter")
	}
	s.optionFlags = s.optionFlags[:len(s.optionFlags)-1]
	s.body.append("] ")
	return nil
}

func (s *state) enterOption(n *doctree.Node) (bool, error) {
	if len(s.optionFlags) == 0 {
		return false, fmt.Errorf("option node outside option group")
	}
	if s.optionFlags[len(s.optionFlags)-1] > 0 {
		// Not the first option in the group.
		s.body.append(", ")
	}
	return false, nil
}

func (s *state) exitOption(n *doctree.Node) error {
	s.optionFlags[len(s.optionFlags)-1]++
	return nil
}

// The delimiter between an option and its argument.
func (s *state) enterOptionArgument(n *doctree.Node) (bool, error) {
	s.body.append(n.GetStringAttr("delimiter", " "))
	return false, nil
}
