package notify

import (
	"fmt"
	"log"
	"net/smtp"
)

type MailService interface {
	SendHostApproval(email, name string) error
}

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

func (m *SMTPMailer) SendHostApproval(email, name string) error {
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Host access approved\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\nHi %s,\r\n\r\nYour host application has been approved. You can now create and manage competitions.",
		m.username,
		email,
		name,
	)
	err := smtp.SendMail(
		fmt.Sprintf("%s:%s", m.host, m.port),
		auth,
		m.username,
		[]string{email},
		[]byte(msg),
	)

	if err != nil {
		log.Printf("SMTP error: %v", err)
		return err
	}
	return nil
}
