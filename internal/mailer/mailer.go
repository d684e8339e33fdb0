package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/naiaprojects/linkwedding/config"
	"github.com/naiaprojects/linkwedding/models"
	"go.uber.org/zap"
)

// Mailer sends the two transactional templates: order confirmation to the
// customer and payment-proof notification to the admin inbox. Failures are
// logged and never block the order flow.
type Mailer struct {
	Config *config.Config
	Logger *zap.SugaredLogger
}

func NewMailer(cfg *config.Config, logger *zap.SugaredLogger) *Mailer {
	return &Mailer{
		Config: cfg,
		Logger: logger,
	}
}

func (m *Mailer) send(to string, subject string, body string) error {
	if m.Config.SMTPHost == "" {
		return fmt.Errorf("smtp is not configured")
	}

	from := m.Config.EmailFrom
	message := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.Config.SMTPUsername, m.Config.SMTPPassword, m.Config.SMTPHost)
	return smtp.SendMail(m.Config.SMTPHost+":"+m.Config.SMTPPort, auth, from, []string{to}, message)
}

func (m *Mailer) SendOrderConfirmation(order *models.Order, invoiceURL string) {
	subject := fmt.Sprintf("Pesanan Anda - %s", order.InvoiceNumber)
	body := fmt.Sprintf(
		"Halo %s,\n\n"+
			"Terima kasih telah memesan. Berikut detail pesanan Anda:\n\n"+
			"No. Invoice: %s\n"+
			"Produk: %s\n"+
			"Paket: %s\n"+
			"Total Pembayaran: Rp%d\n\n"+
			"Batas waktu pembayaran: %s\n\n"+
			"Lihat invoice: %s\n",
		order.CustomerName, order.InvoiceNumber, order.ProductName, order.PackageName,
		order.Total, order.PaymentDeadline.Format("02 January 2006 15:04"), invoiceURL)

	if err := m.send(order.CustomerEmail, subject, body); err != nil {
		m.Logger.Warnw("failed to send order confirmation email", "invoice", order.InvoiceNumber, "error", err)
		return
	}
	m.Logger.Infow("order confirmation email sent", "invoice", order.InvoiceNumber)
}

func (m *Mailer) SendPaymentProofNotification(order *models.Order, proofURL string) {
	subject := fmt.Sprintf("[Bukti Bayar] Invoice #%s - %s", order.InvoiceNumber, order.CustomerName)
	body := fmt.Sprintf(
		"Ada bukti pembayaran baru yang diupload oleh customer.\n\n"+
			"No. Invoice: %s\n"+
			"Customer: %s\n"+
			"Total: Rp%d\n"+
			"Metode: %s\n\n"+
			"Bukti pembayaran: %s\n",
		order.InvoiceNumber, order.CustomerName, order.Total, order.PaymentMethod, proofURL)

	if err := m.send(m.Config.AdminEmail, subject, body); err != nil {
		m.Logger.Warnw("failed to send payment proof notification", "invoice", order.InvoiceNumber, "error", err)
		return
	}
	m.Logger.Infow("payment proof notification sent", "invoice", order.InvoiceNumber)
}
