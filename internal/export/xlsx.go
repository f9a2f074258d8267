// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/book-rank/pkg/types"
)

// Workbook layout.
const (
	SheetName  = "Books"
	TableName  = "TopBooks"
	TableStyle = "TableStyleMedium9"

	minColWidth = 8
	maxColWidth = 60
)

// WriteXLSX renders books as a workbook at path: an inverted header row,
// first row and column frozen, columns sized to their content, link cells
// as hyperlinks, and the data wrapped in a banded table. With no books only
// the header row is written.
func WriteXLSX(path string, books []types.Book) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	widths := make([]int, len(Columns))
	for c, h := range Columns {
		if err := setCell(f, c, 1, h); err != nil {
			return err
		}
		widths[c] = utf8.RuneCountInString(h)
	}

	linkStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "1265BE", Underline: "single"},
	})
	if err != nil {
		return fmt.Errorf("creating link style: %w", err)
	}

	for r, b := range books {
		row := r + 2
		for c, v := range Row(b) {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return err
			}

			switch c {
			case colPages:
				err = f.SetCellValue(SheetName, cell, b.PageCount)
			case colRating:
				err = f.SetCellValue(SheetName, cell, b.Rating)
			default:
				url, label, ok := types.ParseHyperlink(v)
				if !ok {
					err = f.SetCellValue(SheetName, cell, v)
					break
				}
				v = label
				if err = f.SetCellValue(SheetName, cell, label); err != nil {
					break
				}
				if err = f.SetCellHyperLink(SheetName, cell, url, "External"); err != nil {
					break
				}
				err = f.SetCellStyle(SheetName, cell, cell, linkStyle)
			}
			if err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
			widths[c] = max(widths[c], utf8.RuneCountInString(v))
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"000000"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
		Selection: []excelize.Selection{
			{SQRef: "B2", ActiveCell: "B2", Pane: "bottomRight"},
		},
	}); err != nil {
		return fmt.Errorf("freezing panes: %w", err)
	}

	for c, w := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := float64(min(max(w+2, minColWidth), maxColWidth))
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}

	if len(books) > 0 {
		banded := true
		if err := f.AddTable(SheetName, &excelize.Table{
			Range:          fmt.Sprintf("A1:%s%d", lastCol, len(books)+1),
			Name:           TableName,
			StyleName:      TableStyle,
			ShowRowStripes: &banded,
		}); err != nil {
			return fmt.Errorf("adding table: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("writing cell %s: %w", cell, err)
	}
	return nil
}
