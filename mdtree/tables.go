package mdtree

import (
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

// convertTableNode builds the table/tgroup/colspec/thead/tbody shape
// the latex translator expects from a GFM table.
func (s *state) convertTableNode(node *east.Table) (*doctree.Node, bool, error) {
	header := doctree.NewNode(doctree.KindThead)
	body := doctree.NewNode(doctree.KindTbody)
	columns := 0

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		row := doctree.NewNode(doctree.KindRow)
		cells := 0
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			content, err := s.convertInlineChildren(cell)
			if err != nil {
				return nil, false, err
			}
			entry := doctree.NewNode(doctree.KindEntry)
			entry.Content = content
			row.Append(entry)
			cells++
		}
		if cells > columns {
			columns = cells
		}

		if _, ok := child.(*east.TableHeader); ok {
			header.Append(row)
		} else {
			body.Append(row)
		}
	}

	tgroup := doctree.NewNode(doctree.KindTgroup)
	tgroup.SetAttr("cols", columns)
	for i := 0; i < columns; i++ {
		tgroup.Append(doctree.NewNode(doctree.KindColspec))
	}
	if len(header.Content) > 0 {
		tgroup.Append(header)
	}
	tgroup.Append(body)

	return doctree.NewNode(doctree.KindTable, tgroup), true, nil
}
