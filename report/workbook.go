package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/z3rotig4r/he_opbench/sweep"
)

const (
	SummarySheet = "Summary"
	ChartSheet   = "Chart"
	RawSheet     = "Raw"
	SourceSheet  = "Source"
)

// WriteWorkbook saves the summaries, a mean-time pivot with a log-scale
// column chart, the raw rows and the source digest to an xlsx file.
func WriteWorkbook(path string, l *Log, summary []Stat, digest string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SummarySheet)
	for _, name := range []string{ChartSheet, RawSheet, SourceSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	if err := writeSummary(f, l.Variant, summary); err != nil {
		return err
	}
	if err := writeChart(f, l.Variant, summary); err != nil {
		return err
	}
	if err := writeRaw(f, l); err != nil {
		return err
	}

	source := [][]interface{}{
		{"Variant", string(l.Variant)},
		{"Rows", len(l.Rows)},
		{"BLAKE3", digest},
	}
	for i, row := range source {
		if err := f.SetSheetRow(SourceSheet, cellName(1, i+1), &row); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeSummary(f *excelize.File, variant sweep.Variant, summary []Stat) error {
	header := []interface{}{"Operation", "PolyModulusDegree"}
	if variant == sweep.Vector {
		header = append(header, "VectorSize")
	}
	header = append(header, "Samples", "Mean(ms)", "Median(ms)", "StdDev(ms)", "Min(ms)", "Max(ms)")
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}

	for i, s := range summary {
		row := []interface{}{s.Operation, s.Degree}
		if variant == sweep.Vector {
			row = append(row, s.VectorSize)
		}
		row = append(row, s.Samples, s.Mean, s.Median, s.StdDev, s.Min, s.Max)
		if err := f.SetSheetRow(SummarySheet, cellName(1, i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

// writeChart pivots the mean times into one row per category (degree, or
// degree/size) and one column per operation, then charts every column.
func writeChart(f *excelize.File, variant sweep.Variant, summary []Stat) error {
	var categories, ops []string
	catIdx := map[string]int{}
	opIdx := map[string]int{}

	for _, s := range summary {
		cat := strconv.Itoa(s.Degree)
		if variant == sweep.Vector {
			cat = fmt.Sprintf("%d/%d", s.Degree, s.VectorSize)
		}
		if _, ok := catIdx[cat]; !ok {
			catIdx[cat] = len(categories)
			categories = append(categories, cat)
		}
		if _, ok := opIdx[s.Operation]; !ok {
			opIdx[s.Operation] = len(ops)
			ops = append(ops, s.Operation)
		}
	}
	if len(categories) == 0 {
		return nil
	}

	first := "PolyModulusDegree"
	if variant == sweep.Vector {
		first = "PolyModulusDegree/VectorSize"
	}
	if err := f.SetCellValue(ChartSheet, "A1", first); err != nil {
		return err
	}
	for j, op := range ops {
		if err := f.SetCellValue(ChartSheet, cellName(j+2, 1), op); err != nil {
			return err
		}
	}
	for i, cat := range categories {
		if err := f.SetCellValue(ChartSheet, cellName(1, i+2), cat); err != nil {
			return err
		}
	}
	for _, s := range summary {
		cat := strconv.Itoa(s.Degree)
		if variant == sweep.Vector {
			cat = fmt.Sprintf("%d/%d", s.Degree, s.VectorSize)
		}
		if err := f.SetCellValue(ChartSheet, cellName(opIdx[s.Operation]+2, catIdx[cat]+2), s.Mean); err != nil {
			return err
		}
	}

	last := len(categories) + 1
	series := make([]excelize.ChartSeries, len(ops))
	for j := range ops {
		col, _ := excelize.ColumnNumberToName(j + 2)
		series[j] = excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", ChartSheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", ChartSheet, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", ChartSheet, col, col, last),
		}
	}

	title := "Scalar Homomorphic Operations Benchmark"
	if variant == sweep.Vector {
		title = "Vector Homomorphic Operations Benchmark"
	}

	return f.AddChart(ChartSheet, cellName(len(ops)+3, 2), &excelize.Chart{
		Type:   excelize.Col,
		Series: series,
		Title:  excelize.ChartTitle{Name: title},
		YAxis:  excelize.ChartAxis{LogBase: 10},
	})
}

func writeRaw(f *excelize.File, l *Log) error {
	cols := sweep.ScalarHeader
	if l.Variant == sweep.Vector {
		cols = sweep.VectorHeader
	}
	header := make([]interface{}, len(cols))
	for i, h := range cols {
		header[i] = h
	}
	if err := f.SetSheetRow(RawSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range l.Rows {
		row := []interface{}{r.Operation, r.Degree}
		if l.Variant == sweep.Vector {
			row = append(row, r.VectorSize)
		}
		row = append(row, r.Millis)
		if err := f.SetSheetRow(RawSheet, cellName(1, i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
