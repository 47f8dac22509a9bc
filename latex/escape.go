package latex

import (
	"strings"
	"unicode"
)

// texReplacements maps TeX-reserved and a fixed set of special
// characters to safe markup. The table is applied in a single pass;
// replacement text is never rescanned, so escaping is deliberately not
// idempotent.
var texReplacements = []string{
	"\\", "\\textbackslash{}",
	"{", "\\{",
	"}", "\\}",
	"$", "\\$",
	"%", "\\%",
	"&", "\\&",
	"#", "\\#",
	"_", "\\_",
	"[", "{[}",
	"]", "{]}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
	"<", "\\textless{}",
	">", "\\textgreater{}",
	"|", "\\textbar{}",
	"¶", "\\P{}",
	"§", "\\S{}",
	"€", "\\texteuro{}",
	"∞", "\\(\\infty\\)",
	"±", "\\(\\pm\\)",
	"→", "\\(\\rightarrow\\)",
	"‣", "\\(\\rightarrow\\)",
	"à", "\\`a{}",
	"á", "\\'a{}",
	"â", "\\^a{}",
	"ä", "\\\"a{}",
	"è", "\\`e{}",
	"é", "\\'e{}",
	"ê", "\\^e{}",
	"ë", "\\\"e{}",
	"ì", "\\`i{}",
	"í", "\\'i{}",
	"î", "\\^i{}",
	"ï", "\\\"i{}",
	"ò", "\\`o{}",
	"ó", "\\'o{}",
	"ô", "\\^o{}",
	"ö", "\\\"o{}",
	"ù", "\\`u{}",
	"ú", "\\'u{}",
	"û", "\\^u{}",
	"ü", "\\\"u{}",
	"ñ", "\\~n{}",
	"ç", "\\c{c}",
	"É", "\\'E{}",
	"È", "\\`E{}",
	"Ü", "\\\"U{}",
	"Ö", "\\\"O{}",
	"Ä", "\\\"A{}",
}

var texEscaper = strings.NewReplacer(texReplacements...)

// escape maps raw text to TeX-safe text via the substitution table.
func escape(text string) string {
	return texEscaper.Replace(text)
}

// escapeLiteral escapes text for literal-whitespace contexts (line
// blocks): spaces become non-collapsing ties and newlines become forced
// breaks. The tie before the break avoids empty-line errors.
func escapeLiteral(text string) string {
	text = escape(text)
	text = strings.ReplaceAll(text, "\n", "~\\\\\n")
	text = strings.ReplaceAll(text, " ", "~")
	return text
}

// smartQuotes applies the typographic quote substitution pass. It runs
// after escape, which leaves quote characters untouched.
func smartQuotes(text string) string {
	var sb strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		switch r {
		case '"':
			if quoteOpens(runes, i) {
				sb.WriteString("``")
			} else {
				sb.WriteString("''")
			}
		case '\'':
			if quoteOpens(runes, i) {
				sb.WriteString("`")
			} else {
				sb.WriteRune('\'')
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func quoteOpens(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := runes[i-1]
	if unicode.IsSpace(prev) {
		return true
	}
	switch prev {
	case '(', '[', '{', '-', '\n':
		return true
	default:
		return false
	}
}
