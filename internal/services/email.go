package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"sort"

	"party-package-store/internal/models"
)

// SMTPConfig represents email service configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPEmailService sends transactional email over SMTP
type SMTPEmailService struct {
	config    SMTPConfig
	templates map[string]*template.Template
}

// NewSMTPEmailService creates a new email service
func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	service := &SMTPEmailService{
		config:    config,
		templates: make(map[string]*template.Template),
	}

	service.loadTemplates()

	return service
}

// ContactForm represents a contact form submission relayed to the shop's
// inbox
type ContactForm struct {
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Subject string            `json:"subject"`
	Fields  map[string]string `json:"fields"`
}

// Validate validates a contact form submission
func (f *ContactForm) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if f.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

type orderConfirmationData struct {
	Order       *models.Order
	TotalAmount string
	OrderDate   string
}

type contactInquiryData struct {
	Form   *ContactForm
	Fields []contactField
}

type contactField struct {
	Label string
	Value string
}

// SendOrderConfirmation sends the post-payment order confirmation to the
// shipping email on the order
func (s *SMTPEmailService) SendOrderConfirmation(order *models.Order) error {
	data := &orderConfirmationData{
		Order:       order,
		TotalAmount: fmt.Sprintf("%.2f", order.TotalAmountInCurrency()),
		OrderDate:   order.CreatedAt.Format("Monday, January 2, 2006"),
	}

	subject := fmt.Sprintf("Order Confirmation #%d", order.ID)
	return s.sendTemplatedEmail("order_confirmation", order.Email, order.FullName, subject, data)
}

// SendContactInquiry relays a contact form submission to the admin inbox
func (s *SMTPEmailService) SendContactInquiry(adminEmail string, form *ContactForm) error {
	fields := make([]contactField, 0, len(form.Fields))
	for label, value := range form.Fields {
		fields = append(fields, contactField{Label: label, Value: value})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Label < fields[j].Label })

	data := &contactInquiryData{Form: form, Fields: fields}

	subject := fmt.Sprintf("Contact Inquiry from %s", form.Name)
	if form.Subject != "" {
		subject = form.Subject
	}
	return s.sendTemplatedEmail("contact_inquiry", adminEmail, form.Name, subject, data)
}

type emailData struct {
	To            string
	Subject       string
	RecipientName string
	Data          interface{}
}

func (s *SMTPEmailService) sendTemplatedEmail(templateName, to, recipientName, subject string, data interface{}) error {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	payload := emailData{
		To:            to,
		Subject:       subject,
		RecipientName: recipientName,
		Data:          data,
	}

	var htmlBuf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBuf, "html", payload); err != nil {
		return fmt.Errorf("failed to render HTML template: %w", err)
	}

	var textBuf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&textBuf, "text", payload); err != nil {
		return fmt.Errorf("failed to render text template: %w", err)
	}

	message := s.createMIMEMessage(to, subject, htmlBuf.String(), textBuf.String())
	return s.sendEmail(to, message)
}

func (s *SMTPEmailService) sendEmail(to, message string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// createMIMEMessage creates a MIME email message with both HTML and text parts
func (s *SMTPEmailService) createMIMEMessage(to, subject, htmlBody, textBody string) string {
	boundary := "boundary123456789"

	return fmt.Sprintf(`From: %s <%s>
To: %s
Subject: %s
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="%s"

--%s
Content-Type: text/plain; charset=UTF-8
Content-Transfer-Encoding: 7bit

%s

--%s
Content-Type: text/html; charset=UTF-8
Content-Transfer-Encoding: 7bit

%s

--%s--
`, s.config.FromName, s.config.FromEmail, to, subject, boundary, boundary, textBody, boundary, htmlBody, boundary)
}

func (s *SMTPEmailService) loadTemplates() {
	s.templates["order_confirmation"] = template.Must(template.New("order_confirmation").Parse(`
{{define "html"}}
<html>
<body>
	<h2>Thank you for your order, {{.RecipientName}}!</h2>
	<p>Your order #{{.Data.Order.ID}} has been confirmed and paid.</p>
	<table>
		{{range .Data.Order.Items}}
		<tr>
			<td>{{.EventTitle}}</td>
			<td>x{{.Quantity}}</td>
		</tr>
		{{end}}
	</table>
	<p><strong>Total: {{.Data.TotalAmount}}</strong></p>
	<p>Placed on {{.Data.OrderDate}}. We will email you when your order ships.</p>
</body>
</html>
{{end}}
{{define "text"}}
Thank you for your order, {{.RecipientName}}!

Your order #{{.Data.Order.ID}} has been confirmed and paid.

{{range .Data.Order.Items}}- {{.EventTitle}} x{{.Quantity}}
{{end}}
Total: {{.Data.TotalAmount}}
Placed on {{.Data.OrderDate}}.
{{end}}`))

	s.templates["contact_inquiry"] = template.Must(template.New("contact_inquiry").Parse(`
{{define "html"}}
<html>
<body>
	<h2>New contact inquiry</h2>
	<p>From: {{.Data.Form.Name}} ({{.Data.Form.Email}})</p>
	<table>
		{{range .Data.Fields}}
		<tr>
			<td><strong>{{.Label}}</strong></td>
			<td>{{.Value}}</td>
		</tr>
		{{end}}
	</table>
</body>
</html>
{{end}}
{{define "text"}}
New contact inquiry

From: {{.Data.Form.Name}} ({{.Data.Form.Email}})

{{range .Data.Fields}}{{.Label}}: {{.Value}}
{{end}}
{{end}}`))
}
