package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

type borrowingReport struct {
	Period     string
	StartDate  time.Time
	EndDate    time.Time
	Borrowings []models.Borrowing

	TotalBorrowed  int
	TotalReturned  int
	CurrentlyOpen  int
	CurrentOverdue int
	UniqueReaders  int
}

func reportPeriodRange(period string) (time.Time, time.Time, bool) {
	now := time.Now()
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.Add(24 * time.Hour), true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, true
	case "month":
		return now.AddDate(0, 0, -30), now.Add(24 * time.Hour), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

func buildBorrowingReport(period string) (*borrowingReport, error) {
	startDate, endDate, ok := reportPeriodRange(period)
	if !ok {
		return nil, utils.BadRequestError("Period must be day, week, or month", nil)
	}

	var borrowings []models.Borrowing
	if err := config.DB.
		Where("borrow_date >= ? AND borrow_date <= ?", startDate, endDate).
		Preload("User").
		Preload("Book").
		Order("borrow_date DESC").
		Find(&borrowings).Error; err != nil {
		return nil, err
	}

	report := &borrowingReport{
		Period:     period,
		StartDate:  startDate,
		EndDate:    endDate,
		Borrowings: borrowings,
	}
	readerSet := make(map[uint]bool)
	for i := range borrowings {
		b := &borrowings[i]
		report.TotalBorrowed++
		readerSet[b.UserID] = true
		if b.ReturnDate != nil {
			report.TotalReturned++
		} else {
			report.CurrentlyOpen++
			if b.IsOverdue() {
				report.CurrentOverdue++
			}
		}
	}
	report.UniqueReaders = len(readerSet)
	return report, nil
}

func borrowingStatus(b *models.Borrowing) string {
	switch {
	case b.ReturnDate != nil:
		return "Returned"
	case b.IsOverdue():
		return fmt.Sprintf("Overdue (%dd)", b.DaysOverdue())
	default:
		return "Open"
	}
}

// DownloadBorrowingReportExcel exports borrowing activity as a spreadsheet
func DownloadBorrowingReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadBorrowingReportExcel called")

	period := c.DefaultQuery("period", "day")
	report, err := buildBorrowingReport(period)
	if err != nil {
		utils.LogError("Failed to build borrowing report: %v", err)
		utils.AppErrorResponse(c, err)
		return
	}
	utils.LogDebug("Retrieved %d borrowings for Excel report", len(report.Borrowings))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Borrowing Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("OPENSHELF - Borrowing Report")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " +
		report.StartDate.Format("2006-01-02") + " to " + report.EndDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Borrowing ID", "User", "Book", "ISBN", "Borrowed", "Due", "Returned", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for i := range report.Borrowings {
		b := &report.Borrowings[i]
		row := sheet.AddRow()
		row.AddCell().SetInt(int(b.ID))
		row.AddCell().SetString(b.User.Username)
		row.AddCell().SetString(b.Book.Title)
		row.AddCell().SetString(b.Book.ISBN)
		row.AddCell().SetString(b.BorrowDate.Format("2006-01-02"))
		row.AddCell().SetString(b.DueDate.Format("2006-01-02"))
		if b.ReturnDate != nil {
			row.AddCell().SetString(b.ReturnDate.Format("2006-01-02"))
		} else {
			row.AddCell().SetString("-")
		}
		row.AddCell().SetString(borrowingStatus(b))
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryData := [][2]string{
		{"Total Borrowed", fmt.Sprintf("%d", report.TotalBorrowed)},
		{"Total Returned", fmt.Sprintf("%d", report.TotalReturned)},
		{"Currently Open", fmt.Sprintf("%d", report.CurrentlyOpen)},
		{"Currently Overdue", fmt.Sprintf("%d", report.CurrentOverdue)},
		{"Unique Readers", fmt.Sprintf("%d", report.UniqueReaders)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=borrowing_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}

// DownloadBorrowingReportPDF exports borrowing activity as a PDF
func DownloadBorrowingReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadBorrowingReportPDF called")

	period := c.DefaultQuery("period", "day")
	report, err := buildBorrowingReport(period)
	if err != nil {
		utils.LogError("Failed to build borrowing report: %v", err)
		utils.AppErrorResponse(c, err)
		return
	}
	utils.LogDebug("Retrieved %d borrowings for PDF report", len(report.Borrowings))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "OPENSHELF - Borrowing Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+
		report.StartDate.Format("2006-01-02")+" to "+report.EndDate.Format("2006-01-02"))
	pdf.Ln(12)

	headers := []string{"ID", "User", "Book", "ISBN", "Borrowed", "Due", "Returned", "Status"}
	colWidths := []float64{15, 40, 70, 32, 28, 28, 28, 32}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for i := range report.Borrowings {
		b := &report.Borrowings[i]
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		returned := "-"
		if b.ReturnDate != nil {
			returned = b.ReturnDate.Format("2006-01-02")
		}
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", b.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, b.User.Username, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, b.Book.Title, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, b.Book.ISBN, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, b.BorrowDate.Format("2006-01-02"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, b.DueDate.Format("2006-01-02"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, returned, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, borrowingStatus(b), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	summaryData := [][2]string{
		{"Total Borrowed", fmt.Sprintf("%d", report.TotalBorrowed)},
		{"Total Returned", fmt.Sprintf("%d", report.TotalReturned)},
		{"Currently Open", fmt.Sprintf("%d", report.CurrentlyOpen)},
		{"Currently Overdue", fmt.Sprintf("%d", report.CurrentOverdue)},
		{"Unique Readers", fmt.Sprintf("%d", report.UniqueReaders)},
	}
	for _, data := range summaryData {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=borrowing_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", period)
}
