package mailer

type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendGuestLink(email, name, propertyName, link string) error
}
