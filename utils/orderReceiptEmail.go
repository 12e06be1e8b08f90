package utils

import (
	"CarePoint/models"
	"fmt"
	"os"
	"strings"

	"gopkg.in/gomail.v2"
)

// SendOrderReceiptEmail sends a receipt for a newly placed pharmacy order.
func SendOrderReceiptEmail(email string, order *models.Order) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Pharmacy Order %s", order.ID))

	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "%s x%d @ %.2f\n", item.MedicineID, item.Quantity, item.UnitPrice)
	}
	body := fmt.Sprintf(
		"Your pharmacy order %s has been placed.\n\n%s\nTotal: %.2f\n\nPayment is due on collection.",
		order.ID, lines.String(), order.TotalPrice)
	m.SetBody("text/plain", body)

	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>", item.MedicineID, item.Quantity, item.UnitPrice)
	}
	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Pharmacy Order Receipt</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #333333;
			}
			table {
				width: 100%;
				border-collapse: collapse;
			}
			td, th {
				padding: 6px;
				border-bottom: 1px solid #eeeeee;
				text-align: left;
			}
			.total {
				font-weight: bold;
				color: #007bff;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Order ` + order.ID + `</h1>
			<table>
				<tr><th>Medicine</th><th>Quantity</th><th>Unit Price</th></tr>
				` + rows.String() + `
			</table>
			<p class="total">Total: ` + fmt.Sprintf("%.2f", order.TotalPrice) + `</p>
			<p>Payment is due on collection.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	return dialAndSend(m)
}
