package email

import (
	"fmt"
	"net/smtp"
)

// Conf holds the smtp settings for transactional mail.
type Conf struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewConf(host, port, user, pass, from string) Conf {
	return Conf{Host: host, Port: port, User: user, Pass: pass, From: from}
}

// Enabled reports whether smtp is configured at all. Mail is best-effort;
// an unconfigured mailer just skips sends.
func (c Conf) Enabled() bool {
	return c.Host != ""
}

// SendOrderConfirmation mails the shopper after a successful payment.
func (c Conf) SendOrderConfirmation(to, orderID string) error {
	subject := "Order Confirmation"
	body := fmt.Sprintf("Thank you for your order! Your order ID is %s. We are processing it now.", orderID)
	return c.send(to, subject, body)
}

// SendContactNotification forwards a contact-form message to the site owner.
func (c Conf) SendContactNotification(to, fromName, fromEmail, subject, message string) error {
	body := fmt.Sprintf("New message from %s <%s>:\r\n\r\n%s", fromName, fromEmail, message)
	if subject == "" {
		subject = "New contact form message"
	}
	return c.send(to, subject, body)
}

func (c Conf) send(to, subject, body string) error {
	if !c.Enabled() {
		return nil
	}

	message := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", c.User, c.Pass, c.Host)
	if err := smtp.SendMail(c.Host+":"+c.Port, auth, c.From, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
