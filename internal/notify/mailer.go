// Package notify sends the low-stock alert email. Delivery is best effort:
// failures are logged by the caller and never retried or surfaced to the
// HTTP request that triggered the stock change.
package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"warehouse-backend/internal/core"
)

// LowStockMailer composes the fixed-template low-stock message and hands it
// to an SMTP transport.
type LowStockMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewLowStockMailer returns nil when host is empty, which disables
// notifications entirely; callers must tolerate a nil mailer.
func NewLowStockMailer(host string, port int, user, password, to string) *LowStockMailer {
	if host == "" || to == "" {
		return nil
	}
	return &LowStockMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   user,
		to:     to,
	}
}

// Notify sends the alert for one product at its post-mutation quantity.
func (m *LowStockMailer) Notify(product core.Product) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("Low Stock Alert: %s", product.Name))
	msg.SetBody("text/plain",
		fmt.Sprintf("Product %s is low on stock. Only %d left.", product.Name, product.Quantity))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send low stock email for product %d: %w", product.ID, err)
	}
	return nil
}
