package latex

import (
	"fmt"
	"path/filepath"
)

const headerTemplate = `%%%% Generated by doctree-latex-converter.
\documentclass[%spaper,%s%s]{%s}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage{babel}
\title{%s}
\date{%s}
\release{%s}
\author{%s}
\newcommand{\doclogo}{%s}
\renewcommand{\releasename}{%s}
%s
\makeindex
`

const beginDocTemplate = `
\begin{document}
%s
\maketitle
\tableofcontents
`

const footer = `
\printindex
\end{document}
`

// graphicxSetup is only emitted when the body contains images.
const graphicxSetup = `
%% Check if we are compiling under latex or pdflatex.
\ifx\pdftexversion\undefined
  \usepackage{graphicx}
\else
  \usepackage[pdftex]{graphicx}
\fi
`

// beginDocument renders the markup that opens the document body.
func (s *state) beginDocument() string {
	return fmt.Sprintf(beginDocTemplate, s.config.shorthandoff())
}

// header renders the documentclass preamble. The title falls back to
// the first section title captured during traversal.
func (s *state) header() string {
	logo := ""
	if s.config.Logo != "" {
		logo = fmt.Sprintf(`\includegraphics{%s}\par`, filepath.Base(s.config.Logo))
	}
	h := fmt.Sprintf(headerTemplate,
		s.config.PaperSize,
		s.config.PointSize,
		s.config.classOptions(),
		s.config.DocClass,
		s.title,
		s.config.Date,
		s.config.Release,
		s.config.Author,
		logo,
		s.label("release"),
		s.config.Preamble,
	)
	if s.config.UseModindex {
		h += "\\makemodindex\n"
	}
	return h
}

// assemble concatenates preamble, stylesheet, body, and footer into the
// final document.
func (s *state) assemble() string {
	out := s.header() + s.config.Highlighter.Stylesheet()
	if s.needGraphicx {
		out += graphicxSetup
	}
	out += "\n\n" + s.doc.String()
	if s.config.UseModindex {
		out += fmt.Sprintf("\\renewcommand{\\indexname}{%s}", s.label("modindex")) +
			"\\printmodindex" +
			fmt.Sprintf("\\renewcommand{\\indexname}{%s}\n", s.label("index"))
	}
	return out + footer
}
