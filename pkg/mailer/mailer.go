package mailer

import (
	"fmt"
	"os"
	"strconv"

	"revuea.app/configs/configslog"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// IMailer giden e-posta için dar arayüz. Servis katmanı yalnızca bunu görür;
// testlerde sahte implementasyonla değiştirilir.
type IMailer interface {
	SendVerificationCode(to, code string) error
}

// SMTPMailer IMailer'ın gomail/SMTP implementasyonu.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer SMTP ayarlarını ortam değişkenlerinden okuyarak mailer oluşturur.
// MAIL_HOST, MAIL_PORT, MAIL_USER, MAIL_PASS beklenir.
func NewSMTPMailer() IMailer {
	port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	host := os.Getenv("MAIL_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	user := os.Getenv("MAIL_USER")
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = user
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, os.Getenv("MAIL_PASS")),
		from:   from,
	}
}

// SendVerificationCode kayıt doğrulama OTP'sini HTML gövdeli e-posta ile yollar.
func (m *SMTPMailer) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf(`
      <div style="font-family:sans-serif;">
        <h2>Verify your email</h2>
        <p>Your OTP for verifying your account on <b>Revuea</b> is:</p>
        <h3 style="color:#4f46e5;">%s</h3>
        <p>This OTP is valid for a few minutes. If you didn't request this, please ignore.</p>
      </div>`, code)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "Revuea")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your OTP for Revuea Signup")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		configslog.Log.Error("OTP e-postası gönderilemedi", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}
