package latex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

var imageLengthRe = regexp.MustCompile(`^(\d*\.?\d*)\s*(\S*)`)

// latexImageLength converts a doctree length to one LaTeX understands.
// Pixels become points; percentages become fractions of \linewidth.
func latexImageLength(width string) string {
	m := imageLengthRe.FindStringSubmatch(width)
	if m == nil {
		return width
	}
	amount, unit := m[1], m[2]
	switch unit {
	case "px":
		return amount + "pt"
	case "%":
		var f float64
		fmt.Sscanf(amount, "%f", &f)
		return fmt.Sprintf("%.3f\\linewidth", f/100.0)
	}
	return width
}

// alignPrePost keys on (inline, align). LaTeX aligns the top of an
// inline image by default, so (inline, top) needs no wrapping.
var alignPrePost = map[[2]string][2]string{
	{"inline", "top"}:    {"", ""},
	{"inline", "middle"}: {"\\raisebox{-0.5\\height}{", "}"},
	{"inline", "bottom"}: {"\\raisebox{-\\height}{", "}"},
	{"block", "center"}:  {"{\\hfill", "\\hfill}"},
	{"block", "left"}:    {"{", "\\hfill}"},
	{"block", "right"}:   {"{\\hfill", "}"},
}

func (s *state) enterImage(n *doctree.Node) (bool, error) {
	s.needGraphicx = true

	var pre, post []string
	var options []string
	inline := "block"
	if p := s.parent(); p != nil && doctree.IsTextElement(p.Kind) {
		inline = "inline"
	}
	if n.HasAttr("scale") {
		pre = append(pre, fmt.Sprintf("\\scalebox{%f}{", n.GetFloatAttr("scale", 100)/100.0))
		post = append(post, "}")
	}
	if width := n.GetStringAttr("width", ""); width != "" {
		options = append(options, "width="+latexImageLength(width))
	}
	if height := n.GetStringAttr("height", ""); height != "" {
		options = append(options, "height="+latexImageLength(height))
	}
	if align := n.GetStringAttr("align", ""); align != "" {
		if pp, ok := alignPrePost[[2]string{inline, align}]; ok {
			pre = append(pre, pp[0])
			post = append(post, pp[1])
		}
	}
	if inline == "block" {
		pre = append(pre, "\n")
		post = append(post, "\n")
	}

	uri := n.GetStringAttr("uri", "")
	if s.config.ImageResolver != nil {
		if resolved, ok := s.config.ImageResolver(uri); ok {
			uri = resolved
		} else {
			switch s.config.MissingImages {
			case MissingImageSkip:
				s.addWarning(WarningMissingImage, n.Kind, fmt.Sprintf("image %q not found", uri))
				return true, nil
			case MissingImageFail:
				return false, fmt.Errorf("image %q: %w", uri, ErrMissingImage)
			}
		}
	}
	if strings.Contains(uri, "://") {
		// Remote images cannot be included.
		return true, nil
	}

	for i := len(pre) - 1; i >= 0; i-- {
		s.body.append(pre[i])
	}
	opts := ""
	if len(options) > 0 {
		opts = "[" + strings.Join(options, ",") + "]"
	}
	s.body.append(fmt.Sprintf("\\includegraphics%s{%s}", opts, uri))
	for _, p := range post {
		s.body.append(p)
	}
	return true, nil
}

func (s *state) enterFigure(n *doctree.Node) (bool, error) {
	align := n.GetStringAttr("align", "")
	if align == "" || align == "center" {
		// centering does not add vertical space like center.
		s.body.append("\\begin{figure}[htbp]\n\\centering\n")
		s.pushContext("\\end{figure}\n")
	} else {
		s.body.append(fmt.Sprintf("\\begin{figure}[htbp]\\begin{flush%s}\n", align))
		s.pushContext(fmt.Sprintf("\\end{flush%s}\\end{figure}\n", align))
	}
	return false, nil
}

func (s *state) exitFigure(n *doctree.Node) error {
	top, err := s.popContext()
	if err != nil {
		return err
	}
	s.body.append(top)
	return nil
}
