package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

func signature(parts ...*doctree.Node) *doctree.Node {
	return doctree.NewNode(doctree.KindDescSignature, parts...)
}

func descPart(kind doctree.Kind, text string) *doctree.Node {
	return doctree.NewNode(kind, doctree.NewText(text))
}

func describedObject(desctype string, children ...*doctree.Node) *doctree.Node {
	node := doctree.NewNode(doctree.KindDesc, children...)
	node.SetAttr("desctype", desctype)
	return node
}

func TestDescFunction(t *testing.T) {
	obj := describedObject("function",
		signature(
			descPart(doctree.KindDescName, "foo"),
			descPart(doctree.KindDescParameterlist, "(x)"),
		),
		doctree.NewNode(doctree.KindDescContent, paragraph("Does foo things.")),
	)

	result := translate(t, Config{}, document(section("T", obj)))

	assert.Contains(t, result.TeX, "\\begin{funcdesc}{foo}{(x)}")
	assert.Contains(t, result.TeX, "Does foo things.")
	assert.Contains(t, result.TeX, "\\end{funcdesc}\n")
}

// A second signature on the same object becomes a continuation line
// inside the already-open environment.
func TestDescMultipleSignatures(t *testing.T) {
	obj := describedObject("function",
		signature(
			descPart(doctree.KindDescName, "foo"),
			descPart(doctree.KindDescParameterlist, "(x)"),
		),
		signature(
			descPart(doctree.KindDescName, "bar"),
			descPart(doctree.KindDescParameterlist, "(y)"),
		),
		doctree.NewNode(doctree.KindDescContent, paragraph("Shared description.")),
	)

	result := translate(t, Config{}, document(section("T", obj)))

	assert.Contains(t, result.TeX, "\\begin{funcdesc}{foo}{(x)}")
	assert.Contains(t, result.TeX, "\n\\funcline{bar}{(y)}")
	assert.Equal(t, 1, strings.Count(result.TeX, "\\begin{funcdesc}"))
	assert.Equal(t, 1, strings.Count(result.TeX, "\\end{funcdesc}"))
}

func TestDescMethodWithClass(t *testing.T) {
	obj := describedObject("method",
		signature(
			descPart(doctree.KindDescAddname, "Conn."),
			descPart(doctree.KindDescName, "close"),
			descPart(doctree.KindDescParameterlist, "()"),
		),
		doctree.NewNode(doctree.KindDescContent, paragraph("Closes the connection.")),
	)

	result := translate(t, Config{}, document(section("T", obj)))

	// The trailing dot of the class prefix is dropped.
	assert.Contains(t, result.TeX, "\\begin{methoddesc}[Conn]{close}{()}")
}

func TestDescData(t *testing.T) {
	obj := describedObject("data",
		signature(descPart(doctree.KindDescName, "MAX_SIZE")),
		doctree.NewNode(doctree.KindDescContent, paragraph("Upper bound.")),
	)

	result := translate(t, Config{}, document(section("T", obj)))

	assert.Contains(t, result.TeX, "\\begin{datadesc}{MAX\\_SIZE}")
}

func TestDescCFunction(t *testing.T) {
	obj := describedObject("cfunction",
		signature(
			descPart(doctree.KindDescType, "int"),
			descPart(doctree.KindDescName, "PyObject_Print"),
			descPart(doctree.KindDescParameterlist, "(PyObject *o)"),
		),
		doctree.NewNode(doctree.KindDescContent, paragraph("Prints o.")),
	)

	result := translate(t, Config{}, document(section("T", obj)))

	assert.Contains(t, result.TeX, "\\begin{cfuncdesc}{int}{PyObject\\_Print}{(PyObject *o)}")
}

func TestDescNoindexSuffix(t *testing.T) {
	obj := describedObject("data",
		signature(descPart(doctree.KindDescName, "x")),
		doctree.NewNode(doctree.KindDescContent, paragraph("No index entry.")),
	)
	obj.SetAttr("noindex", true)

	result := translate(t, Config{}, document(section("T", obj)))

	assert.Contains(t, result.TeX, "\\begin{datadescni}{x}")
	assert.Contains(t, result.TeX, "\\end{datadescni}\n")
}

func TestDescUnknownTypeFallsBackToDescribe(t *testing.T) {
	obj := describedObject("envvar",
		signature(descPart(doctree.KindDescName, "PATH")),
		doctree.NewNode(doctree.KindDescContent, paragraph("Search path.")),
	)

	result := translate(t, Config{}, document(section("T", obj)))

	assert.Contains(t, result.TeX, "\\begin{describe}{PATH}")
	assert.Contains(t, result.TeX, "\\end{describe}\n")
}

// The describe continuation macro is \descline, not \describeline.
func TestDescDescribeContinuationLine(t *testing.T) {
	obj := describedObject("envvar",
		signature(descPart(doctree.KindDescName, "PATH")),
		signature(descPart(doctree.KindDescName, "HOME")),
		doctree.NewNode(doctree.KindDescContent, paragraph("Search paths.")),
	)

	result := translate(t, Config{}, document(section("T", obj)))

	assert.Contains(t, result.TeX, "\\begin{describe}{PATH}")
	assert.Contains(t, result.TeX, "\n\\descline{HOME}")
	assert.NotContains(t, result.TeX, "\\describeline")
}

func TestDescSignatureHypertarget(t *testing.T) {
	sig := signature(
		descPart(doctree.KindDescName, "foo"),
		descPart(doctree.KindDescParameterlist, "()"),
	)
	sig.SetAttr("ids", []string{"mod.foo"})
	obj := describedObject("function", sig,
		doctree.NewNode(doctree.KindDescContent, paragraph("Text.")))

	result := translate(t, Config{}, document(section("T", obj)))

	assert.Contains(t, result.TeX, "\\hypertarget{mod.foo}{}\\begin{funcdesc}{foo}{()}")
}

func TestDescPartOutsideObjectFails(t *testing.T) {
	_, err := newTestTranslator(t, Config{}).Translate(
		document(section("T", descPart(doctree.KindDescName, "stray"))),
	)

	require.Error(t, err)
}

