package serviceImp

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"kiku/entities"
	"kiku/pkg/record/repository"
)

const (
	recordsSheet = "作業記録"
	summarySheet = "作業時間集計"
)

var recordHeader = []interface{}{"日付", "ハウス", "作業", "ロット", "面積(a)", "作業時間(h)", "備考", "写真"}

func (s *service) Export(ctx context.Context, from, to time.Time, w io.Writer) error {
	recs, err := s.repo.List(ctx, repository.RecordFilter{From: &from, To: &to})
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	x, err := buildWorkbook(recs, s.clk.Location())
	if err != nil {
		return err
	}
	defer x.Close()
	if err := x.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type summaryKey struct{ work, greenhouse string }

func buildWorkbook(recs []entities.WorkRecord, loc *time.Location) (*excelize.File, error) {
	x := excelize.NewFile()
	if err := x.SetSheetName("Sheet1", recordsSheet); err != nil {
		x.Close()
		return nil, err
	}
	if _, err := x.NewSheet(summarySheet); err != nil {
		x.Close()
		return nil, err
	}
	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		x.Close()
		return nil, err
	}

	hours := map[summaryKey]float64{}
	var keys []summaryKey
	rows := [][]interface{}{recordHeader}
	for _, r := range recs {
		rows = append(rows, []interface{}{
			r.Date.In(loc).Format("2006-01-02"),
			r.GreenhouseName,
			r.WorkName,
			r.BatchNumber,
			r.AreaA,
			r.SpentTime,
			r.Note,
			r.PhotoURL,
		})
		k := summaryKey{entities.BaseWorkName(r.WorkName), r.GreenhouseName}
		if _, ok := hours[k]; !ok {
			keys = append(keys, k)
		}
		hours[k] += r.SpentTime
	}
	if err := writeRows(x, recordsSheet, rows); err != nil {
		x.Close()
		return nil, err
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].work != keys[j].work {
			return keys[i].work < keys[j].work
		}
		return keys[i].greenhouse < keys[j].greenhouse
	})
	sum := [][]interface{}{{"作業", "ハウス", "作業時間(h)"}}
	var total float64
	for _, k := range keys {
		sum = append(sum, []interface{}{k.work, k.greenhouse, hours[k]})
		total += hours[k]
	}
	sum = append(sum, []interface{}{"合計", "", total})
	if err := writeRows(x, summarySheet, sum); err != nil {
		x.Close()
		return nil, err
	}

	for sheet, last := range map[string]string{recordsSheet: "H1", summarySheet: "C1"} {
		if err := x.SetCellStyle(sheet, "A1", last, bold); err != nil {
			x.Close()
			return nil, err
		}
	}
	_ = x.SetColWidth(recordsSheet, "A", "D", 12)
	_ = x.SetColWidth(recordsSheet, "G", "H", 30)
	return x, nil
}

func writeRows(x *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := x.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
