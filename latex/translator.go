// Package latex translates a parsed document tree into a complete
// LaTeX document in a single depth-first pass.
package latex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

// sectionNames maps section nesting depth to LaTeX sectioning commands.
var sectionNames = []string{
	"part", "chapter", "section", "subsection",
	"subsubsection", "paragraph", "subparagraph",
}

// Translator converts document trees to LaTeX.
type Translator struct {
	config Config
}

// New creates a new Translator with the given config.
func New(config Config) (*Translator, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Translator{config: cfg}, nil
}

// Translate converts one document tree and returns the complete LaTeX
// document.
func (t *Translator) Translate(root *doctree.Node) (Result, error) {
	return t.TranslateAll(root)
}

// TranslateAll converts several document trees into one LaTeX document.
// The first tree is the regular content; all further trees render as
// appendices.
func (t *Translator) TranslateAll(roots ...*doctree.Node) (Result, error) {
	if len(roots) == 0 {
		return Result{}, errors.New("no document to translate")
	}

	s := newState(t.config)
	for _, root := range roots {
		if root == nil {
			return Result{}, errors.New("nil document tree")
		}
		if err := s.walk(root); err != nil {
			return Result{}, err
		}
	}
	if err := s.checkBalanced(); err != nil {
		return Result{}, err
	}

	return Result{
		TeX:      s.assemble(),
		Warnings: s.warnings,
	}, nil
}

type enterFunc func(*state, *doctree.Node) (skipChildren bool, err error)
type exitFunc func(*state, *doctree.Node) error

type nodeHandler struct {
	enter enterFunc
	exit  exitFunc
}

// state is the mutable emission context of one in-flight translation.
// It must not be reused across documents.
type state struct {
	config Config

	body *sink // active sink
	doc  *sink // main document sink

	// context holds pending closing markup, pushed at enter and popped
	// in LIFO order at the matching exit.
	context  []string
	ancestry []*doctree.Node

	table     *tableState
	tableSink *sink
	outerBody *sink
	// nextTableColspec is set by a tabular_col_spec node and consumed
	// by the next table's header group.
	nextTableColspec string

	descStack []*descState
	bibitems  []bibEntry
	// citeStarts holds sink checkpoints for open citation captures.
	citeStarts []int
	// optionFlags counts options emitted per open option group.
	optionFlags []int

	writtenIDs        map[string]bool
	nextSectionTarget string
	sectionLevel      int
	topSectionLevel   int

	highlightLang     string
	highlightLinenoTh int

	// verbatim accumulates raw text while inside a literal block.
	verbatim *strings.Builder

	inTitle           bool
	inProductionList  bool
	literalWhitespace bool
	needGraphicx      bool

	// firstDocument is 1 before the first document node, 0 before the
	// second (which starts the appendices), -1 afterwards.
	firstDocument  int
	thisIsTheTitle bool
	title          string

	lineStart int

	warnings []Warning
}

func newState(config Config) *state {
	doc := newSink()
	return &state{
		config:            config,
		body:              doc,
		doc:               doc,
		writtenIDs:        make(map[string]bool),
		topSectionLevel:   config.topSectionLevel(),
		sectionLevel:      config.topSectionLevel() - 1,
		highlightLang:     config.HighlightLanguage,
		highlightLinenoTh: config.LinenoThreshold,
		firstDocument:     1,
		thisIsTheTitle:    true,
		title:             config.Title,
	}
}

// walk visits a node depth-first: enter hook, children (unless the
// enter hook claimed the subtree), then exit hook.
func (s *state) walk(n *doctree.Node) error {
	h, ok := nodeHandlers[n.Kind]
	if !ok {
		return fmt.Errorf("unsupported node kind %q", n.Kind)
	}

	if h.enter != nil {
		skip, err := h.enter(s, n)
		if err != nil {
			return err
		}
		if skip {
			return nil
		}
	}

	s.ancestry = append(s.ancestry, n)
	for _, child := range n.Content {
		if err := s.walk(child); err != nil {
			return err
		}
	}
	s.ancestry = s.ancestry[:len(s.ancestry)-1]

	if h.exit != nil {
		return h.exit(s, n)
	}
	return nil
}

// parent returns the parent of the node currently being entered or
// exited, or nil at the root.
func (s *state) parent() *doctree.Node {
	if len(s.ancestry) == 0 {
		return nil
	}
	return s.ancestry[len(s.ancestry)-1]
}

// parentAt returns the ancestor depth levels above the parent.
func (s *state) parentAt(depth int) *doctree.Node {
	idx := len(s.ancestry) - 1 - depth
	if idx < 0 {
		return nil
	}
	return s.ancestry[idx]
}

func (s *state) pushContext(closing string) {
	s.context = append(s.context, closing)
}

// popContext fails loudly on underflow: an empty stack at exit time is
// an enter/exit pairing bug, and emitting anything would corrupt all
// following closing markup.
func (s *state) popContext() (string, error) {
	if len(s.context) == 0 {
		return "", errors.New("closing-markup stack underflow: unbalanced enter/exit pair")
	}
	closing := s.context[len(s.context)-1]
	s.context = s.context[:len(s.context)-1]
	return closing, nil
}

// popContextTo pops one closing-markup entry and appends it to the
// active sink.
func (s *state) popContextTo() error {
	closing, err := s.popContext()
	if err != nil {
		return err
	}
	s.body.append(closing)
	return nil
}

func (s *state) addWarning(warnType WarningType, nodeKind doctree.Kind, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeKind: string(nodeKind),
		Message:  message,
	})
}

// encode maps raw text to TeX-safe text, honoring the running
// literal-whitespace mode.
func (s *state) encode(text string) string {
	if s.literalWhitespace {
		return escapeLiteral(text)
	}
	return escape(text)
}

func (s *state) label(key string) string {
	if value, ok := s.config.Labels[key]; ok {
		return value
	}
	return key
}

// checkBalanced verifies that every stack and mode flag returned to its
// initial value once traversal completed.
func (s *state) checkBalanced() error {
	switch {
	case len(s.context) != 0:
		return fmt.Errorf("closing-markup stack not empty after traversal: %d entries leaked", len(s.context))
	case len(s.descStack) != 0:
		return errors.New("description stack not empty after traversal")
	case len(s.citeStarts) != 0:
		return errors.New("citation capture not closed after traversal")
	case len(s.optionFlags) != 0:
		return errors.New("option group not closed after traversal")
	case s.table != nil:
		return errors.New("table not closed after traversal")
	case s.verbatim != nil:
		return errors.New("literal block not closed after traversal")
	case s.inTitle || s.inProductionList || s.literalWhitespace:
		return errors.New("mode flag leaked after traversal")
	}
	return nil
}

// emitEnter returns an enter hook that appends fixed markup.
func emitEnter(text string) enterFunc {
	return func(s *state, _ *doctree.Node) (bool, error) {
		s.body.append(text)
		return false, nil
	}
}

// emitExit returns an exit hook that appends fixed markup.
func emitExit(text string) exitFunc {
	return func(s *state, _ *doctree.Node) error {
		s.body.append(text)
		return nil
	}
}

// skipNode is an enter hook that drops the subtree without output.
func skipNode(_ *state, _ *doctree.Node) (bool, error) {
	return true, nil
}

// nodeHandlers maps every supported node kind to its enter/exit hook
// pair. A kind missing from this table aborts the translation.
var nodeHandlers = map[doctree.Kind]nodeHandler{
	doctree.KindDocument:    {(*state).enterDocument, (*state).exitDocument},
	doctree.KindStartOfFile: {(*state).enterStartOfFile, nil},
	doctree.KindSection:     {(*state).enterSection, (*state).exitSection},
	doctree.KindTitle:       {(*state).enterTitle, (*state).exitTitle},
	doctree.KindParagraph:   {emitEnter("\n"), emitExit("\n")},
	doctree.KindText:        {(*state).enterText, nil},
	doctree.KindTransition:  {emitEnter("\n\n\\bigskip\\hrule{}\\bigskip\n\n"), nil},

	doctree.KindTopic:         {(*state).enterTopic, (*state).exitTopic},
	doctree.KindSidebar:       {(*state).enterTopic, (*state).exitTopic},
	doctree.KindRubric:        {(*state).enterRubric, (*state).exitRubric},
	doctree.KindGlossary:      {nil, nil},
	doctree.KindCompound:      {nil, nil},
	doctree.KindContainer:     {nil, nil},
	doctree.KindDecoration:    {nil, nil},
	doctree.KindGenerated:     {nil, nil},
	doctree.KindPendingXref:   {nil, nil},
	doctree.KindProblematic:   {emitEnter("{\\color{red}\\bfseries{}"), emitExit("}")},
	doctree.KindSystemMessage: {nil, emitExit("\n")},

	doctree.KindComment:         {skipNode, nil},
	doctree.KindSubstitutionDef: {skipNode, nil},
	doctree.KindSubstitutionRef: {skipNode, nil},
	doctree.KindHighlightLang:   {(*state).enterHighlightLang, nil},

	doctree.KindBulletList:         {emitEnter("\\begin{itemize}\n"), emitExit("\\end{itemize}\n")},
	doctree.KindEnumeratedList:     {emitEnter("\\begin{enumerate}\n"), emitExit("\\end{enumerate}\n")},
	doctree.KindListItem:           {(*state).enterListItem, emitExit("\n")},
	doctree.KindDefinitionList:     {emitEnter("\\begin{description}\n"), emitExit("\\end{description}\n")},
	doctree.KindDefinitionListItem: {nil, nil},
	doctree.KindTerm:               {(*state).enterTerm, (*state).exitTerm},
	doctree.KindClassifier:         {emitEnter("{[}"), emitExit("{]}")},
	doctree.KindDefinition:         {nil, emitExit("\n")},
	doctree.KindFieldList:          {emitEnter("\\begin{quote}\\begin{description}\n"), emitExit("\\end{description}\\end{quote}\n")},
	doctree.KindField:              {nil, nil},
	doctree.KindFieldName:          {(*state).enterTerm, (*state).exitTerm},
	doctree.KindFieldBody:          {nil, emitExit("\n")},

	doctree.KindOptionList:     {emitEnter("\\begin{optionlist}{3cm}\n"), emitExit("\\end{optionlist}\n")},
	doctree.KindOptionListItem: {nil, nil},
	doctree.KindOptionGroup:    {(*state).enterOptionGroup, (*state).exitOptionGroup},
	doctree.KindOption:         {(*state).enterOption, (*state).exitOption},
	doctree.KindOptionString:   {nil, nil},
	doctree.KindOptionArgument: {(*state).enterOptionArgument, nil},
	doctree.KindDescription:    {emitEnter(" "), nil},

	doctree.KindLiteralBlock: {(*state).enterLiteralBlock, (*state).exitLiteralBlock},
	doctree.KindDoctestBlock: {(*state).enterLiteralBlock, (*state).exitLiteralBlock},
	doctree.KindLineBlock:    {(*state).enterLineBlock, (*state).exitLineBlock},
	doctree.KindLine:         {(*state).enterLine, (*state).exitLine},
	doctree.KindBlockQuote:   {(*state).enterBlockQuote, (*state).exitBlockQuote},

	doctree.KindTable:          {(*state).enterTable, (*state).exitTable},
	doctree.KindTabularColSpec: {(*state).enterTabularColSpec, nil},
	doctree.KindTgroup:         {nil, nil},
	doctree.KindColspec:        {(*state).enterColspec, nil},
	doctree.KindThead:          {(*state).enterThead, (*state).exitThead},
	doctree.KindTbody:          {(*state).enterTbody, (*state).exitTbody},
	doctree.KindRow:            {(*state).enterRow, (*state).exitRow},
	doctree.KindEntry:          {(*state).enterEntry, (*state).exitEntry},

	doctree.KindImage:       {(*state).enterImage, nil},
	doctree.KindFigure:      {(*state).enterFigure, (*state).exitFigure},
	doctree.KindCaption:     {emitEnter("\\caption{"), emitExit("}")},
	doctree.KindLegend:      {emitEnter("{\\small "), emitExit("}")},
	doctree.KindCentered:    {emitEnter("\n\\begin{centering}"), emitExit("\n\\end{centering}")},
	doctree.KindAttribution: {emitEnter("\n\\begin{flushright}\n---"), emitExit("\n\\end{flushright}\n")},
	doctree.KindAcks:        {(*state).enterAcks, nil},

	doctree.KindAdmonition:      {emitEnter("\n\\begin{quote}"), emitExit("\\end{quote}\n")},
	doctree.KindAttention:       {admonitionEnter("attention"), emitExit("\\end{notice}\n")},
	doctree.KindCaution:         {admonitionEnter("caution"), emitExit("\\end{notice}\n")},
	doctree.KindDanger:          {admonitionEnter("danger"), emitExit("\\end{notice}\n")},
	doctree.KindError:           {admonitionEnter("error"), emitExit("\\end{notice}\n")},
	doctree.KindHint:            {admonitionEnter("hint"), emitExit("\\end{notice}\n")},
	doctree.KindImportant:       {admonitionEnter("important"), emitExit("\\end{notice}\n")},
	doctree.KindNote:            {admonitionEnter("note"), emitExit("\\end{notice}\n")},
	doctree.KindTip:             {admonitionEnter("tip"), emitExit("\\end{notice}\n")},
	doctree.KindWarning:         {admonitionEnter("warning"), emitExit("\\end{notice}\n")},
	doctree.KindSeealso:         {(*state).enterSeealso, emitExit("\n\n")},
	doctree.KindVersionModified: {(*state).enterVersionModified, nil},

	doctree.KindFootnote:          {(*state).enterFootnote, emitExit("}")},
	doctree.KindFootnoteReference: {(*state).enterFootnoteReference, nil},
	doctree.KindCitation:          {(*state).enterCitation, (*state).exitCitation},
	doctree.KindCitationReference: {(*state).enterCitationReference, nil},
	doctree.KindLabel:             {(*state).enterLabel, nil},
	doctree.KindReference:         {(*state).enterReference, (*state).exitReference},
	doctree.KindTarget:            {(*state).enterTarget, nil},
	doctree.KindIndex:             {(*state).enterIndex, nil},
	doctree.KindRaw:               {(*state).enterRaw, nil},

	doctree.KindEmphasis:        {emitEnter("\\emph{"), emitExit("}")},
	doctree.KindStrong:          {emitEnter("\\textbf{"), emitExit("}")},
	doctree.KindLiteral:         {(*state).enterLiteral, nil},
	doctree.KindLiteralEmphasis: {emitEnter("\\emph{\\texttt{"), emitExit("}}")},
	doctree.KindTitleReference:  {emitEnter("\\emph{"), emitExit("}")},
	doctree.KindSuperscript:     {emitEnter("$^{\\text{"), emitExit("}}$")},
	doctree.KindSubscript:       {emitEnter("$_{\\text{"), emitExit("}}$")},

	doctree.KindDesc:              {(*state).enterDesc, (*state).exitDesc},
	doctree.KindDescSignature:     {(*state).enterDescSignature, (*state).exitDescSignature},
	doctree.KindDescType:          {(*state).enterDescType, nil},
	doctree.KindDescName:          {(*state).enterDescName, nil},
	doctree.KindDescAddname:       {(*state).enterDescAddname, nil},
	doctree.KindDescParameterlist: {(*state).enterDescParameterlist, nil},
	doctree.KindDescAnnotation:    {(*state).enterDescAnnotation, nil},
	doctree.KindDescContent:       {(*state).enterDescContent, nil},
	doctree.KindRefcount:          {emitEnter("\\emph{"), emitExit("}\\\\")},

	doctree.KindProductionList: {(*state).enterProductionList, (*state).exitProductionList},
	doctree.KindProduction:     {(*state).enterProduction, emitExit("}\n")},
	doctree.KindModule:         {(*state).enterModule, nil},
}
