package latex

import (
	"fmt"
	"strings"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

func (s *state) enterDocument(n *doctree.Node) (bool, error) {
	switch s.firstDocument {
	case 1:
		// The first document is all the regular content ...
		s.body.append(s.beginDocument())
		s.firstDocument = 0
	case 0:
		// ... and all others are the appendices.
		s.body.append("\n\\appendix\n")
		s.firstDocument = -1
	}
	// The level is increased before the title is visited.
	s.sectionLevel = s.topSectionLevel - 1
	return false, nil
}

func (s *state) exitDocument(n *doctree.Node) error {
	s.flushBibliography()
	return nil
}

func (s *state) enterStartOfFile(n *doctree.Node) (bool, error) {
	// A new source file begins; the current module and object context
	// no longer applies.
	s.body.append("\n\\resetcurrentobjects\n")
	return true, nil
}

func (s *state) enterSection(n *doctree.Node) (bool, error) {
	if !s.thisIsTheTitle {
		s.sectionLevel++
	}
	s.body.append("\n\n")
	if s.nextSectionTarget != "" {
		s.body.append(fmt.Sprintf("\\hypertarget{%s}{}", s.nextSectionTarget))
		s.nextSectionTarget = ""
	}
	return false, nil
}

func (s *state) exitSection(n *doctree.Node) error {
	s.sectionLevel = max(s.sectionLevel-1, s.topSectionLevel-1)
	return nil
}

func (s *state) enterTitle(n *doctree.Node) (bool, error) {
	parent := s.parent()
	switch {
	case parent != nil && parent.Kind == doctree.KindSeealso:
		// The environment already renders its own heading.
		return true, nil
	case s.thisIsTheTitle:
		if len(n.Content) != 1 || n.Content[0].Kind != doctree.KindText {
			s.addWarning(WarningMalformedTitle, n.Kind, "document title is not a single text node")
		}
		if s.title == "" {
			s.title = n.PlainText()
		}
		s.thisIsTheTitle = false
		return true, nil
	case parent != nil && parent.Kind == doctree.KindSection:
		level := s.sectionLevel
		if level >= len(sectionNames) {
			level = len(sectionNames) - 1
		}
		s.body.append(fmt.Sprintf("\\%s{", sectionNames[level]))
		s.pushContext("}\n")
	case parent != nil && (parent.Kind == doctree.KindTopic ||
		parent.Kind == doctree.KindSidebar || parent.Kind == doctree.KindAdmonition):
		s.body.append("\\textbf{")
		s.pushContext("}\n\n\\medskip\n\n")
	default:
		s.addWarning(WarningMalformedTitle, n.Kind,
			"encountered title node not in section, topic, admonition or sidebar")
		s.body.append("\\textbf{")
		s.pushContext("}")
	}
	s.inTitle = true
	return false, nil
}

func (s *state) exitTitle(n *doctree.Node) error {
	s.inTitle = false
	return s.popContextTo()
}

func (s *state) enterTopic(n *doctree.Node) (bool, error) {
	s.body.append("\\setbox0\\vbox{\n\\begin{minipage}{0.95\\textwidth}\n")
	return false, nil
}

func (s *state) exitTopic(n *doctree.Node) error {
	s.body.append("\\end{minipage}}\n" +
		"\\begin{center}\\setlength{\\fboxsep}{5pt}" +
		"\\shadowbox{\\box0}\\end{center}\n")
	return nil
}

func (s *state) enterRubric(n *doctree.Node) (bool, error) {
	// The footnotes rubric is implicit in LaTeX output.
	if len(n.Content) == 1 && n.PlainText() == "Footnotes" {
		return true, nil
	}
	s.body.append("\\paragraph{")
	s.pushContext("}\n")
	return false, nil
}

func (s *state) exitRubric(n *doctree.Node) error {
	return s.popContextTo()
}

func (s *state) enterHighlightLang(n *doctree.Node) (bool, error) {
	s.highlightLang = n.GetStringAttr("lang", s.highlightLang)
	s.highlightLinenoTh = n.GetIntAttr("linenothreshold", s.highlightLinenoTh)
	return true, nil
}

func (s *state) enterLiteralBlock(n *doctree.Node) (bool, error) {
	s.verbatim = &strings.Builder{}
	return false, nil
}

func (s *state) exitLiteralBlock(n *doctree.Node) error {
	code := strings.TrimRight(s.verbatim.String(), "\n")
	lang := s.highlightLang
	linenos := strings.Count(code, "\n") >= s.highlightLinenoTh-1
	if n.HasAttr("language") {
		lang = n.GetStringAttr("language", lang)
	}
	if n.HasAttr("linenos") {
		linenos = n.GetBoolAttr("linenos", linenos)
	}
	hlcode := s.config.Highlighter.HighlightBlock(code, lang, linenos)
	// The euro sign breaks inside Verbatim.
	hlcode = strings.ReplaceAll(hlcode, "€", "@texteuro[]")
	envPrefix := ""
	if s.table != nil {
		// Nested inside tabular: the shadowed Verbatim environment must
		// not be used there.
		hlcode = strings.ReplaceAll(hlcode, "\\begin{Verbatim}", "\\begin{OriginalVerbatim}")
		s.table.hasVerbatim = true
		envPrefix = "Original"
	}
	// Re-close with a consistent trailer.
	hlcode = strings.TrimRight(hlcode, " \t\n")
	hlcode = strings.TrimSuffix(hlcode, "\\end{Verbatim}")
	hlcode = strings.TrimRight(hlcode, " \t\n") + "\n"
	s.body.append("\n" + hlcode + fmt.Sprintf("\\end{%sVerbatim}\n", envPrefix))
	s.verbatim = nil
	return nil
}

// Line blocks: whitespace (including linebreaks) is significant and
// inline markup is supported.
func (s *state) enterLineBlock(n *doctree.Node) (bool, error) {
	s.body.append("{\\raggedright{}")
	s.literalWhitespace = true
	return false, nil
}

func (s *state) exitLineBlock(n *doctree.Node) error {
	s.literalWhitespace = false
	// Remove the last line's forced break.
	s.body.popLast()
	s.body.append("}\n")
	return nil
}

func (s *state) enterLine(n *doctree.Node) (bool, error) {
	s.lineStart = s.body.len()
	return false, nil
}

func (s *state) exitLine(n *doctree.Node) error {
	if s.lineStart == s.body.len() {
		// No output in this line; a bare \\ would be an error.
		s.body.append("~")
	}
	s.body.append("\\\\\n")
	return nil
}

// blockQuoteIsBareList reports whether the quote holds a single list,
// which then renders as an indented list instead of a quote.
func blockQuoteIsBareList(n *doctree.Node) bool {
	if len(n.Content) != 1 {
		return false
	}
	kind := n.Content[0].Kind
	return kind == doctree.KindBulletList || kind == doctree.KindEnumeratedList
}

func (s *state) enterBlockQuote(n *doctree.Node) (bool, error) {
	if !blockQuoteIsBareList(n) {
		s.body.append("\\begin{quote}\n")
	}
	return false, nil
}

func (s *state) exitBlockQuote(n *doctree.Node) error {
	if !blockQuoteIsBareList(n) {
		s.body.append("\\end{quote}\n")
	}
	return nil
}

// admonitionEnter builds the enter hook for a named admonition.
func admonitionEnter(name string) enterFunc {
	return func(s *state, _ *doctree.Node) (bool, error) {
		s.body.append(fmt.Sprintf("\n\\begin{notice}{%s}{%s:}", name, s.label(name)))
		return false, nil
	}
}

func (s *state) enterSeealso(n *doctree.Node) (bool, error) {
	s.body.append(fmt.Sprintf("\n\n\\strong{%s:}\n\n", s.label("seealso")))
	return false, nil
}

func (s *state) enterVersionModified(n *doctree.Node) (bool, error) {
	changeType := n.GetStringAttr("type", "")
	format, ok := versionIntros[changeType]
	if !ok {
		s.addWarning(WarningMissingAttribute, n.Kind,
			fmt.Sprintf("unknown version change type %q", changeType))
		format = "%s"
	}
	intro := fmt.Sprintf(format, n.GetStringAttr("version", ""))
	if len(n.Content) > 0 {
		intro += ": "
	} else {
		intro += "."
	}
	s.body.append(intro)
	return false, nil
}

func (s *state) enterFootnote(n *doctree.Node) (bool, error) {
	num := ""
	if len(n.Content) > 0 {
		num = strings.TrimSpace(n.Content[0].PlainText())
	}
	s.body.append(fmt.Sprintf("\\footnotetext[%s]{", num))
	return false, nil
}

func (s *state) enterAcks(n *doctree.Node) (bool, error) {
	// A list in the source, rendered as a comma-separated sentence.
	if len(n.Content) == 0 {
		return true, nil
	}
	names := make([]string, 0, len(n.Content[0].Content))
	for _, item := range n.Content[0].Content {
		names = append(names, item.PlainText())
	}
	s.body.append("\n\n")
	s.body.append(strings.Join(names, ", ") + ".")
	s.body.append("\n\n")
	return true, nil
}

func (s *state) enterModule(n *doctree.Node) (bool, error) {
	modname := n.GetStringAttr("modname", "")
	s.body.append(fmt.Sprintf("\n\\declaremodule[%s]{}{%s}",
		strings.ReplaceAll(modname, "_", ""), s.encode(modname)))
	s.body.append(fmt.Sprintf("\n\\modulesynopsis{%s}", s.encode(n.GetStringAttr("synopsis", ""))))
	if n.HasAttr("platform") {
		s.body.append(fmt.Sprintf("\\platform{%s}", s.encode(n.GetStringAttr("platform", ""))))
	}
	return false, nil
}

func (s *state) enterProductionList(n *doctree.Node) (bool, error) {
	s.body.append("\n\n\\begin{productionlist}\n")
	s.inProductionList = true
	return false, nil
}

func (s *state) exitProductionList(n *doctree.Node) error {
	s.body.append("\\end{productionlist}\n\n")
	s.inProductionList = false
	return nil
}

func (s *state) enterProduction(n *doctree.Node) (bool, error) {
	if tokenName := n.GetStringAttr("tokenname", ""); tokenName != "" {
		s.body.append(fmt.Sprintf("\\production{%s}{", s.encode(tokenName)))
	} else {
		s.body.append("\\productioncont{")
	}
	return false, nil
}
