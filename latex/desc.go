package latex

import (
	"fmt"
	"strings"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

// descEnvironments maps a described-object kind to its LaTeX block
// environment. Every unlisted kind renders as a generic "describe".
var descEnvironments = map[string]string{
	"function":     "funcdesc",
	"class":        "classdesc",
	"method":       "methoddesc",
	"staticmethod": "staticmethoddesc",
	"exception":    "excdesc",
	"data":         "datadesc",
	"attribute":    "memberdesc",
	"opcode":       "opcodedesc",

	"cfunction": "cfuncdesc",
	"cmember":   "cmemberdesc",
	"cmacro":    "csimplemacrodesc",
	"ctype":     "ctypedesc",
	"cvar":      "cvardesc",

	"describe": "describe",
}

// descState accumulates the typed parts of one described object. A
// stack of these supports nested described objects.
type descState struct {
	env        string
	noindex    bool
	typ        string
	cls        string
	name       string
	params     string
	annotation string
	count      int
}

func newDescState(n *doctree.Node) *descState {
	env, ok := descEnvironments[n.GetStringAttr("desctype", "")]
	if !ok {
		env = "describe"
	}
	return &descState{
		env:     env,
		noindex: n.GetBoolAttr("noindex", false),
	}
}

func (d *descState) niSuffix() string {
	if d.noindex {
		return "ni"
	}
	return ""
}

func (s *state) topDesc() (*descState, error) {
	if len(s.descStack) == 0 {
		return nil, fmt.Errorf("description part outside described object")
	}
	return s.descStack[len(s.descStack)-1], nil
}

func (s *state) enterDesc(n *doctree.Node) (bool, error) {
	s.descStack = append(s.descStack, newDescState(n))
	return false, nil
}

func (s *state) exitDesc(n *doctree.Node) error {
	d := s.descStack[len(s.descStack)-1]
	s.descStack = s.descStack[:len(s.descStack)-1]
	s.body.append(fmt.Sprintf("\\end{%s%s}\n", d.env, d.niSuffix()))
	return nil
}

func (s *state) enterDescSignature(n *doctree.Node) (bool, error) {
	d, err := s.topDesc()
	if err != nil {
		return false, err
	}
	// Reset the per-signature fields; annotation carries over.
	d.typ, d.cls, d.name, d.params = "", "", "", ""
	return false, nil
}

// exitDescSignature synthesizes one signature line. The first signature
// of an object opens the block environment; later ones append
// continuation lines inside it.
func (s *state) exitDescSignature(n *doctree.Node) error {
	d, err := s.topDesc()
	if err != nil {
		return err
	}
	d.cls = strings.TrimRight(d.cls, ".")

	hyper := ""
	parent := s.parent()
	if parent != nil && parent.GetStringAttr("desctype", "") != "describe" {
		if ids := n.GetStringsAttr("ids"); len(ids) > 0 {
			hyper = fmt.Sprintf("\\hypertarget{%s}{}", ids[0])
		}
	}

	var opening string
	if d.count == 0 {
		opening = fmt.Sprintf("\n\n%s\\begin{%s%s}", hyper, d.env, d.niSuffix())
	} else {
		// The line macro drops the trailing "desc", so a generic
		// describe continues with \descline.
		opening = fmt.Sprintf("\n%s\\%sline%s", hyper, d.env[:len(d.env)-4], d.niSuffix())
	}
	d.count++

	var fields string
	switch d.env {
	case "funcdesc", "classdesc", "excclassdesc":
		fields = fmt.Sprintf("{%s}{%s}", d.name, d.params)
	case "datadesc", "classdesc*", "excdesc", "csimplemacrodesc":
		fields = fmt.Sprintf("{%s}", d.name)
	case "methoddesc", "staticmethoddesc":
		if d.cls != "" {
			fields = fmt.Sprintf("[%s]{%s}{%s}", d.cls, d.name, d.params)
		} else {
			fields = fmt.Sprintf("{%s}{%s}", d.name, d.params)
		}
	case "memberdesc":
		if d.cls != "" {
			fields = fmt.Sprintf("[%s]{%s}", d.cls, d.name)
		} else {
			fields = fmt.Sprintf("{%s}", d.name)
		}
	case "cfuncdesc":
		if d.cls != "" {
			// C++ class scoping.
			d.name = d.cls + "::" + d.name
		}
		fields = fmt.Sprintf("{%s}{%s}{%s}", d.typ, d.name, d.params)
	case "cmemberdesc":
		typ, container := d.typ, ""
		if idx := strings.LastIndex(d.typ, " "); idx >= 0 {
			typ = d.typ[:idx]
			container = strings.TrimRight(d.typ[idx+1:], ".")
		}
		fields = fmt.Sprintf("{%s}{%s}{%s}", container, typ, d.name)
	case "cvardesc":
		fields = fmt.Sprintf("{%s}{%s}", d.typ, d.name)
	case "ctypedesc":
		fields = fmt.Sprintf("{%s}", d.name)
	case "opcodedesc":
		fields = fmt.Sprintf("{%s}{%s}", d.name, d.params)
	default: // describe
		fields = fmt.Sprintf("{%s}", d.name)
	}
	s.body.append(opening + fields)
	return nil
}

// descPartEnter builds the enter hook for a signature part: the part is
// rendered into the current descState instead of the output buffer.
func descPartEnter(set func(d *descState, text string)) enterFunc {
	return func(s *state, n *doctree.Node) (bool, error) {
		d, err := s.topDesc()
		if err != nil {
			return false, err
		}
		if d.env == "describe" {
			// Generic describe keeps the full signature text verbatim.
			d.name += s.encode(n.PlainText())
		} else {
			set(d, s.encode(strings.TrimSpace(n.PlainText())))
		}
		return true, nil
	}
}

func (s *state) enterDescType(n *doctree.Node) (bool, error) {
	return descPartEnter(func(d *descState, text string) { d.typ = text })(s, n)
}

func (s *state) enterDescName(n *doctree.Node) (bool, error) {
	return descPartEnter(func(d *descState, text string) { d.name = text })(s, n)
}

func (s *state) enterDescAddname(n *doctree.Node) (bool, error) {
	return descPartEnter(func(d *descState, text string) { d.cls = text })(s, n)
}

func (s *state) enterDescParameterlist(n *doctree.Node) (bool, error) {
	return descPartEnter(func(d *descState, text string) { d.params = text })(s, n)
}

func (s *state) enterDescAnnotation(n *doctree.Node) (bool, error) {
	return descPartEnter(func(d *descState, text string) { d.annotation = text })(s, n)
}

func (s *state) enterDescContent(n *doctree.Node) (bool, error) {
	if len(n.Content) > 0 && n.Content[0].Kind == doctree.KindDesc {
		// An immediately nested description would otherwise produce an
		// empty block with broken spacing.
		s.body.append("~")
	}
	return false, nil
}
