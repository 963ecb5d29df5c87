package utils

import (
	"academia/config"
	courseModels "academia/models/course"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid when an API key is
// configured, otherwise through the SMTP relay.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridApiKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Academia Santafé <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func sendViaSendGrid(to []string, subject string, htmlBody string) error {
	from := sgmail.NewEmail("Academia Santafé", config.AppConfig.EmailSender)

	p := sgmail.NewPersonalization()
	p.Subject = subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// getEmailTemplate wraps body content in the Academia Santafé layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 640px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A5C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A5C; line-height: 1.6; }
			.content h2 { color: #1B3A5C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			table.report { width: 100%%; border-collapse: collapse; margin: 20px 0; }
			table.report th, table.report td { border: 1px solid #E0E0E0; padding: 8px; text-align: left; font-size: 13px; }
			table.report th { background: #E8F0FE; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ACADEMIA SANTAFÉ</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Academia Santafé. Todos los derechos reservados.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendCourseReportEmail sends the participants report for one course.
// newEnrollments is the count of sign-ups inside the reporting window.
func SendCourseReportEmail(destination string, course courseModels.Course, enrollments []courseModels.Enrollment, newEnrollments int64) error {
	subject := fmt.Sprintf("Reporte de participantes: %s", course.Title)

	var rows strings.Builder
	completed := 0
	for _, e := range enrollments {
		estado := "En curso"
		if e.Completed {
			estado = "Completado"
			completed++
		}
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d%%</td><td>%s</td></tr>",
			e.FullName, e.Document, e.JobTitle, e.Company, e.Progress, estado,
		))
	}

	body := fmt.Sprintf(`
		<p>Reporte del curso <strong>%s</strong> generado el %s.</p>
		<p>Participantes: <strong>%d</strong> &mdash; Completados: <strong>%d</strong> &mdash; Nuevos en el período: <strong>%d</strong></p>
		<table class="report">
			<tr><th>Nombre</th><th>Documento</th><th>Cargo</th><th>Empresa</th><th>Progreso</th><th>Estado</th></tr>
			%s
		</table>
	`, course.Title, time.Now().Format("2006-01-02"), len(enrollments), completed, newEnrollments, rows.String())

	return SendEmail([]string{destination}, subject, getEmailTemplate("Reporte diario de participantes", body))
}

// SendCertificateEmail notifies a learner that their certificate is ready
func SendCertificateEmail(email, name, courseTitle, certificateURL string) {
	subject := "Certificado disponible: " + courseTitle
	body := fmt.Sprintf(`
		<p>Estimado/a %s,</p>
		<p>Ha completado el curso <strong>%s</strong>. Su certificado ya está disponible:</p>
		<p><a href="%s">Descargar certificado</a></p>
	`, name, courseTitle, certificateURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("¡Felicitaciones!", body))
}
