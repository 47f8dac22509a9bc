package htmltree

import (
	"golang.org/x/net/html"

	"github.com/rgonek/doctree-latex-converter/doctree"
	"github.com/rgonek/doctree-latex-converter/latex"
)

// convertTableNode builds the table/tgroup/colspec/thead/tbody shape
// the latex translator expects. Spanning cells are flattened with a
// warning since the downstream grid does not support them.
func (s *state) convertTableNode(table *html.Node) *doctree.Node {
	header := doctree.NewNode(doctree.KindThead)
	body := doctree.NewNode(doctree.KindTbody)
	columns := 0

	var collectRows func(n *html.Node, intoHeader bool)
	collectRows = func(n *html.Node, intoHeader bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead":
				collectRows(c, true)
			case "tbody", "tfoot":
				collectRows(c, false)
			case "tr":
				row, cells, allHeaderCells := s.tableRow(c)
				if cells > columns {
					columns = cells
				}
				if intoHeader || (allHeaderCells && len(body.Content) == 0) {
					header.Append(row)
				} else {
					body.Append(row)
				}
			}
		}
	}
	collectRows(table, false)

	tgroup := doctree.NewNode(doctree.KindTgroup)
	tgroup.SetAttr("cols", columns)
	for i := 0; i < columns; i++ {
		tgroup.Append(doctree.NewNode(doctree.KindColspec))
	}
	if len(header.Content) > 0 {
		tgroup.Append(header)
	}
	tgroup.Append(body)

	return doctree.NewNode(doctree.KindTable, tgroup)
}

func (s *state) tableRow(tr *html.Node) (row *doctree.Node, cells int, allHeaderCells bool) {
	row = doctree.NewNode(doctree.KindRow)
	allHeaderCells = true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		if c.Data != "th" {
			allHeaderCells = false
		}
		if attrValue(c, "colspan") != "" || attrValue(c, "rowspan") != "" {
			s.addWarning(
				latex.WarningDroppedFeature,
				c.Data,
				"cell spanning not supported; span ignored",
			)
		}

		entry := doctree.NewNode(doctree.KindEntry)
		if hasBlockChild(c) {
			s.convertBlockChildren(c, entry)
		} else {
			entry.Content = s.convertInlineChildren(c)
		}
		row.Append(entry)
		cells++
	}
	return row, cells, allHeaderCells
}
