package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"billsmith/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportSheetName Excel 工作表名称
const ExportSheetName = "Bills"

var exportHeaders = []string{
	"ID", "Category", "Vendor", "Invoice Number", "Account Number",
	"Billing Start", "Billing End", "Due Date", "Amount Due",
	"Usage", "Usage Unit", "Tax Total", "Needs Review", "Created At",
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateOrEmpty(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func decimalOrEmpty(d *decimal.Decimal, places int32) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(places)
}

// exportRow 单行导出内容，CSV 和 Excel 共用
func exportRow(b models.Bill) []string {
	return []string{
		strconv.FormatUint(uint64(b.ID), 10),
		b.Category.Name,
		b.Vendor,
		strOrEmpty(b.InvoiceNumber),
		strOrEmpty(b.AccountNumber),
		dateOrEmpty(b.BillingStart),
		dateOrEmpty(b.BillingEnd),
		dateOrEmpty(b.DueDate),
		b.AmountDue.StringFixed(2),
		decimalOrEmpty(b.UsageQty, 3),
		strOrEmpty(b.UsageUnit),
		decimalOrEmpty(b.TaxTotal, 2),
		strconv.FormatBool(b.NeedsReview),
		b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// WriteBillsCSV 写出 CSV，带 BOM 以便 Excel 正确识别 UTF-8
func WriteBillsCSV(w io.Writer, bills []models.Bill) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range bills {
		if err := writer.Write(exportRow(b)); err != nil {
			return fmt.Errorf("write csv row %d: %w", b.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// BuildBillsWorkbook 生成账单工作簿，最后一行为合计
// 调用方负责 Close
func BuildBillsWorkbook(bills []models.Bill) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2222FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFB800"}, Pattern: 1},
		Border: border,
	})

	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	f.SetColWidth(ExportSheetName, "A", "A", 8)
	f.SetColWidth(ExportSheetName, "B", "C", 24)
	f.SetColWidth(ExportSheetName, "D", lastCol, 16)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ExportSheetName, cell, header)
	}
	f.SetCellStyle(ExportSheetName, "A1", lastCol+"1", headerStyle)

	total := decimal.Zero
	row := 2
	for _, b := range bills {
		values := exportRow(b)
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(ExportSheetName, cell, v)
		}
		// 金额列写成数字，便于在 Excel 里求和
		amount, _ := b.AmountDue.Round(2).Float64()
		f.SetCellValue(ExportSheetName, fmt.Sprintf("I%d", row), amount)
		f.SetCellStyle(ExportSheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), dataStyle)
		total = total.Add(b.AmountDue)
		row++
	}

	totalAmount, _ := total.Round(2).Float64()
	f.SetCellValue(ExportSheetName, fmt.Sprintf("A%d", row), "Total")
	f.MergeCell(ExportSheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row))
	f.SetCellValue(ExportSheetName, fmt.Sprintf("I%d", row), totalAmount)
	f.SetCellValue(ExportSheetName, fmt.Sprintf("J%d", row), fmt.Sprintf("%d bills", len(bills)))
	f.MergeCell(ExportSheetName, fmt.Sprintf("J%d", row), fmt.Sprintf("%s%d", lastCol, row))
	f.SetCellStyle(ExportSheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), summaryStyle)

	return f, nil
}

// WriteBillsExcel 写出 xlsx
func WriteBillsExcel(w io.Writer, bills []models.Bill) error {
	f, err := BuildBillsWorkbook(bills)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
