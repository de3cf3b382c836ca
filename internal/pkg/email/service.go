package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"

	"github.com/rs/zerolog/log"
)

// BookingDetails carries the fields the booking templates render.
type BookingDetails struct {
	GuestName     string
	GuestEmail    string
	BookingNumber string
	CheckInDate   string
	CheckOutDate  string
	Nights        int
	Guests        int
	Total         float64
}

// RefundDetails carries the refund outcome for the cancellation template.
type RefundDetails struct {
	RefundPercent   int
	RefundAmount    float64
	CancellationFee float64
	NetRefund       float64
}

// Service handles email sending with templates
type Service struct {
	client       *SendGridClient
	templates    map[string]*template.Template
	baseTemplate *template.Template
	frontendURL  string
	queue        chan *QueuedEmail
	wg           sync.WaitGroup
}

// QueuedEmail represents an email in the send queue
type QueuedEmail struct {
	To           string
	ToName       string
	Subject      string
	TemplateName string
	Data         interface{}
}

// NewService creates the email service and starts its async worker.
func NewService(config SendGridConfig, frontendURL string) *Service {
	s := &Service{
		client:      NewSendGridClient(config),
		templates:   make(map[string]*template.Template),
		frontendURL: frontendURL,
		queue:       make(chan *QueuedEmail, 100),
	}

	s.baseTemplate, _ = template.New("base").Parse(BaseTemplate)
	s.loadTemplates()

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) loadTemplates() {
	templates := map[string]string{
		"booking_confirmation": BookingConfirmationTemplate,
		"booking_cancelled":    BookingCancellationTemplate,
	}

	for name, content := range templates {
		tmpl, err := template.New(name).Parse(content)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Failed to parse email template")
			continue
		}
		s.templates[name] = tmpl
	}
}

// worker processes queued emails asynchronously
func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		ctx := context.Background()
		if err := s.send(ctx, email); err != nil {
			log.Error().Err(err).
				Str("to", email.To).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
	}
}

func (s *Service) send(ctx context.Context, email *QueuedEmail) error {
	tmpl, ok := s.templates[email.TemplateName]
	if !ok {
		log.Warn().Str("template", email.TemplateName).Msg("Template not found")
		return nil
	}

	var contentBuf bytes.Buffer
	if err := tmpl.Execute(&contentBuf, email.Data); err != nil {
		return err
	}

	var htmlBuf bytes.Buffer
	if err := s.baseTemplate.Execute(&htmlBuf, map[string]interface{}{
		"Content": template.HTML(contentBuf.String()),
	}); err != nil {
		return err
	}

	return s.client.Send(ctx, &EmailMessage{
		To:          email.To,
		ToName:      email.ToName,
		Subject:     email.Subject,
		HTMLContent: htmlBuf.String(),
	})
}

// Queue adds an email to the async send queue
func (s *Service) Queue(to, toName, templateName, subject string, data interface{}) {
	select {
	case s.queue <- &QueuedEmail{
		To:           to,
		ToName:       toName,
		Subject:      subject,
		TemplateName: templateName,
		Data:         data,
	}:
	default:
		log.Warn().Str("to", to).Msg("Email queue full, dropping email")
	}
}

// SendSync sends an email synchronously (blocking)
func (s *Service) SendSync(ctx context.Context, to, toName, templateName, subject string, data interface{}) error {
	return s.send(ctx, &QueuedEmail{
		To:           to,
		ToName:       toName,
		Subject:      subject,
		TemplateName: templateName,
		Data:         data,
	})
}

// Close stops the email worker
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}

// SendBookingConfirmation queues the reservation confirmation email
func (s *Service) SendBookingConfirmation(b BookingDetails) {
	s.Queue(b.GuestEmail, b.GuestName, "booking_confirmation",
		"Confirmación de reserva "+b.BookingNumber,
		map[string]interface{}{
			"GuestName":     b.GuestName,
			"BookingNumber": b.BookingNumber,
			"CheckInDate":   b.CheckInDate,
			"CheckOutDate":  b.CheckOutDate,
			"Nights":        b.Nights,
			"Guests":        b.Guests,
			"Total":         formatAmount(b.Total),
			"BookingURL":    fmt.Sprintf("%s/bookings/search?number=%s", s.frontendURL, b.BookingNumber),
		})
}

// SendBookingCancellation queues the cancellation email with the refund
// outcome
func (s *Service) SendBookingCancellation(b BookingDetails, refund RefundDetails) {
	s.Queue(b.GuestEmail, b.GuestName, "booking_cancelled",
		"Reserva "+b.BookingNumber+" cancelada",
		map[string]interface{}{
			"GuestName":       b.GuestName,
			"BookingNumber":   b.BookingNumber,
			"HasRefund":       refund.NetRefund > 0,
			"RefundPercent":   refund.RefundPercent,
			"RefundAmount":    formatAmount(refund.RefundAmount),
			"CancellationFee": formatAmount(refund.CancellationFee),
			"NetRefund":       formatAmount(refund.NetRefund),
		})
}

// formatAmount renders a COP amount with thousands separators, no decimals
func formatAmount(v float64) string {
	n := int64(v + 0.5)
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	var parts []string
	for n > 0 {
		if n >= 1000 {
			parts = append([]string{fmt.Sprintf("%03d", n%1000)}, parts...)
		} else {
			parts = append([]string{fmt.Sprintf("%d", n)}, parts...)
		}
		n /= 1000
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}
