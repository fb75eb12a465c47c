package utils

import (
	"fmt"
	"log"

	"learnix/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid
func SendEmail(to, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Println("SendGrid not configured, skipping email:", subject)
		return nil
	}

	from := mail.NewEmail("Learnix", config.AppConfig.EmailSender)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	if response.StatusCode >= 300 {
		log.Printf("SendGrid rejected email (%d): %s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid error: %d", response.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all platform emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2B6D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B6D; line-height: 1.6; }
			.content h2 { color: #1A2B6D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5B8DEF; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNIX</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Learnix. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Learnix"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Learnix</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. You can now browse courses, start certifications, and build personal lessons from your own notes.</p>
	`, name)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Enrollment Confirmation
func SendEnrollmentEmail(email, name, courseTitle string) {
	subject := "Enrollment Confirmed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next steps:</strong> Open your dashboard to start the first lesson.
		</div>
	`, name, courseTitle)

	go SendEmail(email, name, subject, getEmailTemplate("Enrollment Successful", body))
}

// 3. Certificate Issued
func SendCertificateEmail(email, name, certificationTitle, certificateNumber string) {
	subject := "Your Certificate: " + certificationTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong>.</p>
		<div class="info-box">
			Certificate number: <strong>%s</strong>
		</div>
		<p>You can view and share your certificate from your dashboard.</p>
	`, name, certificationTitle, certificateNumber)

	go SendEmail(email, name, subject, getEmailTemplate("Certification Complete!", body))
}

// 4. Weekly Learning Reminder
func SendLearningReminderEmail(email, name, courseTitle string) {
	subject := "Keep your streak going"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>It has been a while since your last lesson in <strong>%s</strong>.</p>
		<p>A few minutes today keeps your progress moving. Pick up right where you left off.</p>
	`, name, courseTitle)

	go SendEmail(email, name, subject, getEmailTemplate("Time to Learn", body))
}
