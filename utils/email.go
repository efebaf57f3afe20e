package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/openshelf/openshelf/models"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email via the configured SMTP server
func SendEmail(to, subject, body string) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendOverdueReminder emails a user about their overdue loans. Each
// borrowing is expected to arrive with its Book preloaded.
func SendOverdueReminder(user *models.User, overdue []models.Borrowing) error {
	var items strings.Builder
	for _, b := range overdue {
		items.WriteString(fmt.Sprintf(
			"<li><strong>%s</strong> by %s, due %s (%d days overdue)</li>",
			b.Book.Title, b.Book.Author, b.DueDate.Format("2006-01-02"), b.DaysOverdue()))
	}

	body := fmt.Sprintf(`
		<h2>Overdue books reminder</h2>
		<p>Hello %s,</p>
		<p>The following books are past their due date. Please return them at your earliest convenience:</p>
		<ul>%s</ul>
		<p>Thank you,<br>OpenShelf Library</p>
	`, user.Username, items.String())

	return SendEmail(user.Email, "Overdue books reminder", body)
}
