package services

import (
	"fmt"
	"log"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/config"
	"github.com/resend/resend-go/v2"
)

// Mailer is the global email service instance
var Mailer *EmailService

// EmailService sends transactional email through Resend. In test mode the
// message is logged instead of sent.
type EmailService struct {
	client     *resend.Client
	from       string
	fromName   string
	testMode   bool
	appURL     string
	configured bool
}

// InitEmail sets up the global mailer from configuration
func InitEmail(cfg *config.Config) {
	svc := &EmailService{
		from:     cfg.EmailFrom,
		fromName: cfg.EmailFromName,
		testMode: cfg.EmailTestMode,
		appURL:   cfg.AppURL,
	}

	if cfg.ResendAPIKey != "" {
		svc.client = resend.NewClient(cfg.ResendAPIKey)
		svc.configured = true
	}

	Mailer = svc

	if svc.testMode {
		log.Println("Email service initialized (test mode: messages logged, not sent)")
	} else if svc.configured {
		log.Println("Email service initialized (Resend)")
	} else {
		log.Println("Email service initialized without API key; messages will be logged")
	}
}

// SendRolTerminado sends a notice that every diligencia of a rol has been
// completed
func (s *EmailService) SendRolTerminado(to, rol string) error {
	subject := fmt.Sprintf("Rol %s terminado", rol)
	htmlBody := fmt.Sprintf(
		"<p>Todas las diligencias del rol <strong>%s</strong> fueron completadas.</p><p><a href=\"%s\">Ver en la aplicación</a></p>",
		rol, s.appURL,
	)
	textBody := fmt.Sprintf("Todas las diligencias del rol %s fueron completadas. %s", rol, s.appURL)

	return s.send(to, subject, htmlBody, textBody)
}

func (s *EmailService) send(to, subject, htmlBody, textBody string) error {
	if s.testMode || !s.configured {
		log.Printf("[EMAIL] To: %s | Subject: %s | Body: %s", to, subject, textBody)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
