package smtp

import (
	"fmt"
	"mime"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(to []string, subject, body string) error
	IsConfigured() bool
}

func Connect(user, password, host, port, senderName string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		senderName: senderName,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	senderName string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(to []string, subject, body string) (err error) {
	logger := log.WithField("subject", subject)
	if !i.IsConfigured() {
		logger.Warn("письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	if len(to) == 0 {
		return nil
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	message := strings.NewReader(buildMessage(i.senderName, i.user, to, subject, body))
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, to, message)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, to, message)
	}
	if err != nil {
		logger.WithError(err).Error("ошибка отправки сообщения")
		return errors.Wrap(err, "ошибка отправки сообщения")
	}
	logger.WithField("recipients", len(to)).Info("письмо отправлено")
	return nil
}

func buildMessage(senderName, from string, to []string, subject, body string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", senderName), from)
	fmt.Fprintf(&sb, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&sb, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	sb.WriteString("\r\n")
	return sb.String()
}
