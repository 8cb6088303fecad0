package utils

import (
	"fmt"
	"html"
	"strings"

	"github.com/Govind-619/BookMall/models"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether an SMTP server is configured
func (c EmailConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// BuildOrderConfirmation renders the confirmation mail for a placed order
func BuildOrderConfirmation(from string, order *models.Order, bookstoreName string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", order.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your %s order %s", AppName, order.ID))
	m.SetBody("text/html", orderConfirmationBody(order, bookstoreName))
	return m
}

// orderConfirmationBody renders the HTML body. Every customer or staff
// supplied value is escaped.
func orderConfirmationBody(order *models.Order, bookstoreName string) string {
	var rows strings.Builder
	for _, item := range order.Items {
		title := item.Listing.Book.Title
		if title == "" {
			title = item.ListingID.String()
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%d</td></tr>", html.EscapeString(title), item.Quantity, item.Price)
	}

	return fmt.Sprintf(`
		<h2>Thank you for your order, %s!</h2>
		<p>Your order from <b>%s</b> has been received.</p>
		<table>
			<tr><th>Book</th><th>Qty</th><th>Unit price</th></tr>
			%s
		</table>
		<p>Shipping fee: %d</p>
		<p>Total: <b>%d</b></p>
		<p>Ship to: %s, %s</p>
	`, html.EscapeString(order.CustomerName), html.EscapeString(bookstoreName), rows.String(),
		order.ShippingFee, order.TotalPrice,
		html.EscapeString(order.RecipientName), html.EscapeString(order.ShippingAddress))
}

// SendOrderConfirmation mails the order summary to the customer
func SendOrderConfirmation(cfg EmailConfig, order *models.Order, bookstoreName string) error {
	if !cfg.Enabled() || order.CustomerEmail == "" {
		return nil
	}

	m := BuildOrderConfirmation(cfg.From, order, bookstoreName)
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
