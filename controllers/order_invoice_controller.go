package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoice generates and returns a PDF invoice for the order
func DownloadInvoice(c *gin.Context) {
	utils.LogInfo("Starting invoice download process")

	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := services.GetCustomerOrder(db(c), customer.Account(), id)
	if err != nil {
		utils.LogError("Order not found for invoice download - Order ID: %s, Customer: %s", id, customer.Account())
		utils.RespondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := writeInvoice(&buf, order); err != nil {
		utils.LogError("Failed to render invoice for order %s: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}
	utils.LogInfo("PDF invoice generated successfully for order ID: %s", order.ID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func writeInvoice(buf *bytes.Buffer, order *models.Order) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Bookstore info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, order.Bookstore.Name)
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	if order.Bookstore.Address != "" {
		pdf.Cell(100, 8, order.Bookstore.Address)
		pdf.Ln(8)
	}
	pdf.Cell(100, 8, "Email: "+order.Bookstore.Email+" | Phone: "+order.Bookstore.PhoneNumber)
	pdf.Ln(12)

	// Invoice title and order info
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(100, 8, "Order ID: "+order.ID.String())
	pdf.Ln(6)
	pdf.Cell(70, 8, "Order Date: "+order.OrderDate.Format("2006-01-02 15:04:05"))
	pdf.Cell(60, 8, "Status: "+string(order.Status))
	pdf.Ln(10)

	// Customer and shipping info
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.CustomerName)
	pdf.Ln(6)
	if order.CustomerEmail != "" {
		pdf.Cell(100, 8, order.CustomerEmail)
		pdf.Ln(6)
	}
	pdf.Cell(100, 8, "Phone: "+order.CustomerPhoneNumber)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Ship To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.RecipientName)
	pdf.Ln(6)
	pdf.MultiCell(0, 6, order.ShippingAddress, "", "L", false)
	pdf.Ln(6)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 8, "Book", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		pdf.CellFormat(80, 8, item.Listing.Book.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, strconv.FormatInt(item.Price, 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, strconv.FormatInt(item.Price*int64(item.Quantity), 10), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Summary
	subtotal := order.ItemsSubtotal()
	discount := subtotal + order.ShippingFee - order.TotalPrice
	summary := [][2]string{
		{"Subtotal:", strconv.FormatInt(subtotal, 10)},
		{"Shipping:", strconv.FormatInt(order.ShippingFee, 10)},
	}
	if order.Coupon != nil {
		summary = append(summary, [2]string{"Coupon (" + order.Coupon.Name + "):", "-" + strconv.FormatInt(discount, 10)})
	}
	pdf.Ln(4)
	for _, line := range summary {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(130, 8, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(30, 8, line[1], "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(130, 10, "Grand Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, strconv.FormatInt(order.TotalPrice, 10), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for shopping with "+utils.AppName+"!")

	return pdf.Output(buf)
}
