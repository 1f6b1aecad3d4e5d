package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

const verifyBaseURL = "https://wanderlist-kdgg.onrender.com/verify-email"

// Mailer sends account verification emails over SMTP. When no credentials
// are configured it only logs the link, so local setups still work.
type Mailer struct {
	user   string
	pass   string
	dialer *gomail.Dialer
}

func New(user, pass string) *Mailer {
	m := &Mailer{user: user, pass: pass}
	if m.Enabled() {
		m.dialer = gomail.NewDialer("smtp.gmail.com", 465, user, pass)
		m.dialer.SSL = true
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m.user != "" && m.pass != ""
}

// SendVerification delivers the verify-account email. Callers dispatch it in
// a goroutine; a failure here is logged by the caller and never fails the
// registration request.
func (m *Mailer) SendVerification(email, token string) error {
	url := fmt.Sprintf("%s?token=%s", verifyBaseURL, token)

	log.Printf("Sending verification email to %s: %s", email, url)

	if !m.Enabled() {
		log.Println("Skipping email: no credentials provided in environment")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.user, "Wanderlist")
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Verify your Wanderlist account")
	msg.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2>Welcome to Wanderlist! 🌍</h2>
			<p>Please verify your email address to start your journey.</p>
			<a href="%s" style="display: inline-block; background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Verify Email</a>
			<p style="margin-top: 20px; color: #777;">Or copy this link: <br/>%s</p>
		</div>
	`, url, url))

	return m.dialer.DialAndSend(msg)
}
