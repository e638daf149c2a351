package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"

	"github.com/jordan-wright/email"

	"github.com/knirb/bikeshop-api/models"
)

const confirmationSubject = "Order Confirmation"

// Notifier sends the one confirmation message a successful order produces.
// Delivery is best-effort: callers log failures and keep the order.
type Notifier interface {
	SendConfirmation(order *models.Order) error
}

// SMTPMailer sends order confirmations through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

// FromEnv builds a Notifier from SMTP_* and MAIL_FROM. Without SMTP_HOST it
// falls back to a log-only notifier so local runs still complete checkout.
func FromEnv() Notifier {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST not set, order confirmations will only be logged")
		return LogNotifier{}
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "orders@bikeshop.example"
	}
	return NewSMTPMailer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), from)
}

func (m *SMTPMailer) SendConfirmation(order *models.Order) error {
	body, err := renderConfirmation(order)
	if err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = []string{fmt.Sprintf("%s <%s>", order.Name, order.Email)}
	e.Subject = confirmationSubject
	e.HTML = body

	if err := e.Send(m.addr, m.auth); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

// LogNotifier records the confirmation instead of delivering it.
type LogNotifier struct{}

func (LogNotifier) SendConfirmation(order *models.Order) error {
	log.Printf("📧 order %s confirmed for %s <%s>", order.OrderRef, order.Name, order.Email)
	return nil
}

func renderConfirmation(order *models.Order) ([]byte, error) {
	tmpl, err := template.New("confirmation").Parse(confirmationTemplate)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, order); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const confirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Order Confirmation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2c3e50; color: white; padding: 20px; text-align: center; }
        .content { padding: 30px; background-color: #f9f9f9; }
        table { width: 100%; border-collapse: collapse; }
        td, th { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
        .footer { padding: 20px; text-align: center; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Thank you for your order, {{.Name}}!</h1>
        </div>

        <div class="content">
            <p>Your order <strong>{{.OrderRef}}</strong> has been placed.</p>

            <table>
                <tr><th>Product</th><th>Price</th></tr>
                {{range .Products}}
                <tr><td>{{.Name}}</td><td>{{printf "%.2f" .Price}}</td></tr>
                {{end}}
            </table>

            <p>We will ship it to:</p>
            <p>{{.Address}}</p>
        </div>

        <div class="footer">
            <p>This email was sent automatically, please do not reply.</p>
        </div>
    </div>
</body>
</html>
`
