package services

import (
	"encoding/csv"
	"io"
	"strconv"
)

// utf8BOM makes Excel pick up the encoding; the export carries Japanese
// labels that render as mojibake without it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"日付", "時限", "クラス", "出席番号", "学籍番号", "氏名", "状態", "備考"}

// WriteCSV flattens a grid to one row per (date, period, student), ascending
// by date, period and roll number. Every cell of the cross product is
// emitted; cells without a record carry データなし and an empty note.
func WriteCSV(w io.Writer, grid *Grid) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, date := range grid.Dates {
		for period := 1; period <= PeriodsPerDay; period++ {
			for _, student := range grid.Students {
				cell := student.Dates[date][period-1]
				record := []string{
					date,
					strconv.Itoa(period),
					grid.ClassName,
					strconv.Itoa(student.Number),
					student.StudentNumber,
					student.Name,
					cell.Text,
					cell.Note,
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
