// Package xlsx renders the review table as a workbook that re-checks
// itself: match columns carry live formulas against hidden normalization
// helpers, so reviewers editing cells in Excel see statuses update.
package xlsx

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/JSHWJ/QA-helper/internal/domain"
)

const sheetName = "비교결과"

// Visible layout: A..P follow domain.Columns. Hidden helpers Q..V hold
// normalized dictionary/JSON values feeding the match formulas.
var helperCols = []struct {
	col    string
	source string
	header string
}{
	{"Q", "F", "_norm_dict_ko"},
	{"R", "I", "_norm_json_ko"},
	{"S", "G", "_norm_dict_ru"},
	{"T", "J", "_norm_json_ru"},
	{"U", "E", "_norm_dict_en"},
	{"V", "H", "_norm_json_en"},
}

// fill colors for the mismatch highlighting
const (
	colorMismatch = "FFF59D"
	colorMissing  = "ECEFF1"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "xlsx" }

func (e *Exporter) Export(rows []domain.ComparisonRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	if err := writeHeader(f); err != nil {
		return nil, err
	}
	for i := range rows {
		if err := writeRow(f, i+2, &rows[i]); err != nil {
			return nil, err
		}
	}
	if err := applyFormatting(f, len(rows)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File) error {
	for j, col := range domain.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return err
		}
	}
	for _, h := range helperCols {
		if err := f.SetCellValue(sheetName, h.col+"1", h.header); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, r *domain.ComparisonRow) error {
	for j, col := range domain.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
		if err != nil {
			return err
		}
		var v any
		if col == domain.ColSeq {
			v = r.Seq
		} else {
			v = r.Cell(col)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}

	n := strconv.Itoa(rowNum)
	for _, h := range helperCols {
		formula := fmt.Sprintf(
			`TRIM(SUBSTITUTE(SUBSTITUTE(SUBSTITUTE(%s%s,CHAR(13),""),CHAR(10)," "),CHAR(160)," "))`,
			h.source, n)
		if err := f.SetCellFormula(sheetName, h.col+n, formula); err != nil {
			return err
		}
	}

	// Match cells keep the computed value as the cached result and a live
	// formula on top, so both Excel and plain readers agree.
	if err := setMatchCell(f, "K"+n, string(r.KoMatch), matchFormula("Q", "R", n)); err != nil {
		return err
	}
	if err := setMatchCell(f, "L"+n, string(r.EnMatch), matchFormula("U", "V", n)); err != nil {
		return err
	}
	if err := setMatchCell(f, "M"+n, string(r.RuMatch), matchFormula("S", "T", n)); err != nil {
		return err
	}
	overall := fmt.Sprintf(`IF(AND(K%s="Y",L%s="Y",M%s="Y"),"Y","N")`, n, n, n)
	return setMatchCell(f, "N"+n, string(r.Overall), overall)
}

// matchFormula rebuilds the row-match rule in Excel terms: an empty JSON
// value is 파일없음, an empty dictionary value is N, otherwise look for the
// JSON value in the comma-separated dictionary candidate list.
func matchFormula(dict, json, n string) string {
	return fmt.Sprintf(
		`IF(%[2]s%[3]s="","파일없음",IF(%[1]s%[3]s="","N",`+
			`IF(ISNUMBER(SEARCH(","&%[2]s%[3]s&",",","&SUBSTITUTE(%[1]s%[3]s,", ",",")&",")),"Y","N")))`,
		dict, json, n)
}

func setMatchCell(f *excelize.File, cell, cached, formula string) error {
	if err := f.SetCellValue(sheetName, cell, cached); err != nil {
		return err
	}
	return f.SetCellFormula(sheetName, cell, formula)
}

func applyFormatting(f *excelize.File, rowCount int) error {
	for _, h := range helperCols {
		if err := f.SetColVisible(sheetName, h.col, false); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetName, "B", "J", 24); err != nil {
		return err
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}
	if rowCount == 0 {
		return nil
	}

	mismatch, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorMismatch}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	missing, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorMissing}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	area := fmt.Sprintf("K2:N%d", rowCount+1)
	return f.SetConditionalFormat(sheetName, area, []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: "==", Value: `"N"`, Format: &mismatch},
		{Type: "cell", Criteria: "==", Value: `"파일없음"`, Format: &missing},
	})
}
