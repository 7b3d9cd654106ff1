package email

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service sends transactional emails through SendGrid. A Service built
// without an API key is disabled: every send becomes a logged no-op so a
// missing key never breaks signup or payment confirmation.
type Service struct {
	client     *sendgrid.Client
	sender     string
	senderName string
	enabled    bool
}

// NewService builds the email service. An empty API key yields a disabled
// no-op service.
func NewService(apiKey, sender, senderName string) *Service {
	svc := &Service{
		sender:     sender,
		senderName: senderName,
		enabled:    apiKey != "",
	}
	if svc.enabled {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

// Enabled reports whether emails are actually delivered
func (s *Service) Enabled() bool {
	return s.enabled
}

// Send delivers a single HTML email. Errors are returned so callers can
// log them, but callers must never fail their primary operation on them.
func (s *Service) Send(toEmail, toName, subject, htmlBody string) error {
	if !s.enabled {
		log.Printf("[EMAIL] Disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := sgmail.NewEmail(s.senderName, s.sender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// sendAsync fires the email in the background and logs failures
func (s *Service) sendAsync(toEmail, toName, subject, htmlBody string) {
	go func() {
		if err := s.Send(toEmail, toName, subject, htmlBody); err != nil {
			log.Printf("[EMAIL] Error sending %q to %s: %v", subject, toEmail, err)
		}
	}()
}

// --- Triggers ---

// 1. Welcome / Signup
func (s *Service) SendWelcomeEmail(toEmail, name string) {
	subject := "Bienvenue chez Inspecteur Auto"
	body := fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Bienvenue chez <strong>Inspecteur Auto</strong> ! Votre compte a bien été créé.</p>
		<p>Le premier module de la formation est accessible gratuitement. Débloquez l'intégralité du parcours à tout moment depuis votre espace.</p>
		<p>À très vite,<br>L'équipe Inspecteur Auto</p>
	`, name)

	s.sendAsync(toEmail, name, subject, getEmailTemplate("Bienvenue !", body))
}

// 2. Purchase confirmation
func (s *Service) SendPurchaseEmail(toEmail, name string) {
	subject := "Votre formation est débloquée"
	body := fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Votre paiement a bien été reçu. <strong>Tous les modules de la formation sont maintenant accessibles.</strong></p>
		<div class="info-box">
			Reprenez la formation là où vous vous étiez arrêté depuis votre tableau de bord.
		</div>
	`, name)

	s.sendAsync(toEmail, name, subject, getEmailTemplate("Paiement confirmé", body))
}

// 3. Certificate issued
func (s *Service) SendCertificateEmail(toEmail, name string) {
	subject := "Félicitations, votre certificat est disponible"
	body := fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Vous avez terminé l'intégralité de la formation <strong>Inspecteur Auto</strong>. Bravo !</p>
		<p>Votre certificat de réussite est disponible dans votre espace personnel.</p>
	`, name)

	s.sendAsync(toEmail, name, subject, getEmailTemplate("Formation terminée", body))
}

// 4. Admin replied to a student message
func (s *Service) SendAdminReplyEmail(toEmail, name, preview string) {
	subject := "Nouvelle réponse à votre message"
	body := fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Un formateur a répondu à votre message :</p>
		<div style="margin: 20px 0; padding: 15px; background: #E8F0FE; border-radius: 4px;">
			<em>"%s"</em>
		</div>
		<p>Connectez-vous à votre espace pour consulter la conversation complète.</p>
	`, name, preview)

	s.sendAsync(toEmail, name, subject, getEmailTemplate("Nouveau message", body))
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.content h2 { color: #1A1A2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #E94560; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #E94560; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>INSPECTEUR AUTO</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Inspecteur Auto. Tous droits réservés.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
