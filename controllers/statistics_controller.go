package controllers

import (
	"fmt"
	"io"
	"time"

	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// GetStatistics returns the sales of the staff member's bookstore,
// filtered by ?start_date= and ?end_date=
func GetStatistics(c *gin.Context) {
	_, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}

	filter := services.ParseStatisticsFilter(c.Query("start_date"), c.Query("end_date"))
	stats, err := services.StoreStatistics(db(c), bookstoreID, filter)
	if err != nil {
		utils.LogError("Failed to compute statistics of bookstore %s: %v", bookstoreID, err)
		utils.InternalServerError(c, "Failed to compute statistics", nil)
		return
	}
	utils.Success(c, "Statistics retrieved successfully", stats)
}

// ExportStatistics returns the statistics as an Excel workbook
func ExportStatistics(c *gin.Context) {
	_, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}

	filter := services.ParseStatisticsFilter(c.Query("start_date"), c.Query("end_date"))
	stats, err := services.StoreStatistics(db(c), bookstoreID, filter)
	if err != nil {
		utils.LogError("Failed to compute statistics of bookstore %s: %v", bookstoreID, err)
		utils.InternalServerError(c, "Failed to compute statistics", nil)
		return
	}
	bookstore, err := services.GetBookstore(db(c), bookstoreID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=statistics_%s.xlsx", time.Now().Format("20060102")))
	if err := writeStatistics(c.Writer, bookstore.Name, stats); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
		return
	}
	utils.LogInfo("Generated statistics workbook for bookstore %s", bookstoreID)
}

func boldStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	return style
}

func writeStatistics(w io.Writer, bookstoreName string, stats *services.Statistics) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Statistics")
	if err != nil {
		return err
	}

	period := "All time"
	if stats.Start != nil || stats.End != nil {
		from, to := "...", "..."
		if stats.Start != nil {
			from = stats.Start.Format(utils.DateLayout)
		}
		if stats.End != nil {
			to = stats.End.Format(utils.DateLayout)
		}
		period = from + " to " + to
	}
	sheet.AddRow().AddCell().SetString(bookstoreName + " - Sales Statistics")
	sheet.AddRow().AddCell().SetString("Period: " + period)
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range []string{"Title", "ISBN", "Units Sold", "Revenue"} {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(boldStyle())
	}
	for _, book := range stats.Books {
		row := sheet.AddRow()
		row.AddCell().SetString(book.Title)
		row.AddCell().SetString(book.ISBN)
		row.AddCell().SetInt(int(book.UnitsSold))
		row.AddCell().SetInt(int(book.Revenue))
	}
	sheet.AddRow()

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryRow.Cells[0].SetStyle(boldStyle())
	summary := []struct {
		label string
		value int64
	}{
		{"Orders", stats.OrderCount},
		{"Books Sold", stats.TotalBooksSold},
		{"Revenue", stats.TotalRevenue},
	}
	for _, line := range summary {
		row := sheet.AddRow()
		row.AddCell().SetString(line.label)
		row.AddCell().SetInt(int(line.value))
	}

	return file.Write(w)
}
