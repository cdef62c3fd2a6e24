package services

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// Mailer is what the workflows see. Every send is fire-and-forget from the
// caller's perspective: errors are reported but never abort the operation
// that triggered them.
type Mailer interface {
	SendOrderStatusEmail(recipient, orderNumber, statusText string) error
	SendReturnStatusEmail(request *models.ReturnRequest) error
	SendVerificationCode(recipient, code string) error
}

// EmailService sends HTML mail over SMTP. With no server configured it
// degrades to log-only, which is what development setups run with.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

type SMTPConfig struct {
	Server   string
	Port     int
	Username string
	Password string
	From     string
}

func NewEmailService(cfg SMTPConfig, log *logrus.Logger) *EmailService {
	s := &EmailService{from: cfg.From, log: log}
	if cfg.Server != "" {
		s.dialer = gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *EmailService) SendOrderStatusEmail(recipient, orderNumber, statusText string) error {
	subject := fmt.Sprintf("Изменение статуса заказа №%s", orderNumber)
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h2>Уведомление о статусе заказа</h2>
<p>Уважаемый клиент!</p>
<p>Статус вашего заказа №%s был изменен на «%s».</p>
<p>С уважением,<br>Команда магазина StoreOfHandWork</p>
</body></html>`, orderNumber, statusText)

	return s.send(recipient, subject, body)
}

func (s *EmailService) SendReturnStatusEmail(request *models.ReturnRequest) error {
	if request.User == nil {
		return fmt.Errorf("return request %d has no user loaded", request.ID)
	}

	productName := "товар"
	if request.OrderItem != nil && request.OrderItem.Product != nil {
		productName = request.OrderItem.Product.Name
	}
	typeText := "Возврат денежных средств"
	if request.Type == models.ReturnTypeExchange {
		typeText = "Обмен товара"
	}

	subject := fmt.Sprintf("Обновление статуса заявки на возврат №%d", request.ID)
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h2>Уведомление о статусе возврата</h2>
<p>Уважаемый клиент!</p>
<p>Статус вашей заявки на возврат №%d был обновлен.</p>
<p><strong>Новый статус:</strong> %s</p>
<p><strong>Товар:</strong> %s</p>
<p><strong>Тип возврата:</strong> %s</p>%s
<p>С уважением,<br>Команда магазина StoreOfHandWork</p>
</body></html>`,
		request.ID,
		models.ReturnStatusDisplay(request.Status),
		productName,
		typeText,
		returnInstructions(request.Status),
	)

	return s.send(request.User.Email, subject, body)
}

func (s *EmailService) SendVerificationCode(recipient, code string) error {
	subject := "Подтверждение регистрации"
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h2>Добро пожаловать в МАГАЗИН ТОВАРОВ РУЧНОЙ РАБОТЫ!</h2>
<p>Для завершения регистрации введите следующий код подтверждения:</p>
<h3 style="color: #6B4CE6; font-size: 24px; text-align: center;">%s</h3>
<p>Если вы не регистрировались на нашем сайте, просто проигнорируйте это письмо.</p>
<p>С уважением,<br>Команда магазина StoreOfHandWork</p>
</body></html>`, code)

	return s.send(recipient, subject, body)
}

func (s *EmailService) send(to, subject, body string) error {
	if s.dialer == nil {
		s.log.WithFields(logrus.Fields{"to": to, "subject": subject}).
			Info("email: SMTP not configured, skipping send")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func returnInstructions(status models.ReturnStatus) string {
	switch status {
	case models.ReturnStatusApproved:
		return `
<div style="background-color: #f5f5f5; padding: 15px; margin: 10px 0;">
<h3>Инструкции по возврату:</h3>
<ol>
<li>Упакуйте товар в оригинальную или подходящую упаковку</li>
<li>Приложите копию заявки на возврат</li>
<li>Доставьте товар в пункт выдачи</li>
</ol>
</div>`
	case models.ReturnStatusRefundCompleted:
		return `
<div style="background-color: #f5f5f5; padding: 15px; margin: 10px 0;">
<p>Возврат денежных средств будет выполнен в течение 3-5 рабочих дней.</p>
</div>`
	default:
		return ""
	}
}

// GenerateVerificationCode returns a 6-digit registration code.
func GenerateVerificationCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
