package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	"github.com/Tazdar-Rahim/artmuse-server/internal/sender"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// defaultTemplates holds the built-in subject and body for each email type.
// A stored template overrides the default for its type. Bodies are Go
// text/template over the dispatch data map.
var defaultTemplates = map[string]struct {
	Subject string
	Body    string
}{
	domain.EmailTypeWelcome: {
		Subject: "Welcome to Artmuse",
		Body:    "Hi {{.Name}},\n\nThanks for joining Artmuse. Browse the gallery and find something you love.\n",
	},
	domain.EmailTypeOrderConfirmation: {
		Subject: "Your order is confirmed",
		Body:    "Hi {{.Name}},\n\nWe received your order {{.OrderID}} with a total of {{.Total}}.\nUpload your payment screenshot to get it moving.\n",
	},
	domain.EmailTypeOrderStatus: {
		Subject: "Your order status changed",
		Body:    "Hi {{.Name}},\n\nOrder {{.OrderID}} is now {{.Status}}.\n",
	},
	domain.EmailTypeCommissionStatus: {
		Subject: "Your commission request was updated",
		Body:    "Hi {{.Name}},\n\nCommission request {{.RequestID}} is now {{.Status}}.\n",
	},
	domain.EmailTypeCommissionQuote: {
		Subject: "Your commission quote is ready",
		Body:    "Hi {{.Name}},\n\nWe quoted {{.Quote}} for commission request {{.RequestID}}.\nReply to accept and we will get started.\n",
	},
	domain.EmailTypeConsultationConfirmed: {
		Subject: "Your consultation is booked",
		Body:    "Hi {{.Name}},\n\nYour consultation is booked for {{.Date}} at {{.Time}}.\n",
	},
	domain.EmailTypeConsultationReschedule: {
		Subject: "Your consultation was rescheduled",
		Body:    "Hi {{.Name}},\n\nYour consultation moved from {{.OldDate}} {{.OldTime}} to {{.NewDate}} {{.NewTime}}.\n",
	},
	domain.EmailTypePasswordReset: {
		Subject: "Reset your password",
		Body:    "Hi {{.Name}},\n\nUse this token to reset your password: {{.Token}}\nIt expires in one hour. If you did not ask for this, ignore this email.\n",
	},
	domain.EmailTypeEmailVerify: {
		Subject: "Verify your email",
		Body:    "Hi {{.Name}},\n\nUse this token to verify your email address: {{.Token}}\n",
	},
	domain.EmailTypeContactReply: {
		Subject: "We received your message",
		Body:    "Hi {{.Name}},\n\nThanks for reaching out. We received your message and will get back to you within two business days.\n\nYour message:\n{{.Message}}\n",
	},
}

// EmailService renders and sends templated emails and records every dispatch
// attempt. Delivery failures are logged and recorded but never propagated,
// so a broken mailbox cannot fail an order or wedge the event stream.
type EmailService struct {
	templates repository.EmailTemplateRepository
	logs      repository.EmailLogRepository
	sender    sender.Sender
	logger    *slog.Logger
}

// NewEmailService creates a new email service.
func NewEmailService(
	templates repository.EmailTemplateRepository,
	logs repository.EmailLogRepository,
	snd sender.Sender,
	logger *slog.Logger,
) *EmailService {
	return &EmailService{
		templates: templates,
		logs:      logs,
		sender:    snd,
		logger:    logger,
	}
}

// UpsertTemplateInput is the admin input for overriding a built-in template.
type UpsertTemplateInput struct {
	EmailType string `json:"email_type" validate:"required"`
	Subject   string `json:"subject" validate:"required,max=500"`
	Body      string `json:"body" validate:"required,max=50000"`
	IsActive  *bool  `json:"is_active"`
}

// Dispatch renders the template for the given email type and sends it.
// An unknown email type is the only input error; everything downstream is
// absorbed into the email log.
func (s *EmailService) Dispatch(ctx context.Context, emailType, to string, data map[string]any) error {
	if !domain.IsValidEmailType(emailType) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown email type %q", emailType))
	}
	if to == "" {
		return apperrors.InvalidInput("recipient is required")
	}

	subject, body, err := s.render(ctx, emailType, data)
	if err != nil {
		s.recordLog(ctx, emailType, to, subject, domain.EmailStatusFailed, err)
		s.logger.ErrorContext(ctx, "failed to render email",
			slog.String("email_type", emailType),
			slog.String("error", err.Error()),
		)
		return nil
	}

	sendErr := s.sender.Send(ctx, &sender.Message{
		To:      to,
		Subject: subject,
		Body:    body,
	})

	if sendErr != nil {
		s.recordLog(ctx, emailType, to, subject, domain.EmailStatusFailed, sendErr)
		s.logger.ErrorContext(ctx, "failed to send email",
			slog.String("email_type", emailType),
			slog.String("sender", s.sender.Name()),
			slog.String("error", sendErr.Error()),
		)
		return nil
	}

	s.recordLog(ctx, emailType, to, subject, domain.EmailStatusSent, nil)
	s.logger.InfoContext(ctx, "email sent",
		slog.String("email_type", emailType),
		slog.String("sender", s.sender.Name()),
	)

	return nil
}

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// SubmitContact records a contact form submission and sends the automatic
// reply to the submitter. Input validation is the only hard failure; the
// reply itself follows the usual dispatch rules.
func (s *EmailService) SubmitContact(ctx context.Context, input ContactInput) error {
	if err := validator.Validate(input); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "contact message received",
		slog.String("name", input.Name),
		slog.String("email", input.Email),
	)

	return s.Dispatch(ctx, domain.EmailTypeContactReply, input.Email, map[string]any{
		"Name":    input.Name,
		"Message": input.Message,
	})
}

// ListTemplates returns all stored template overrides.
func (s *EmailService) ListTemplates(ctx context.Context) ([]domain.EmailTemplate, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	return templates, nil
}

// UpsertTemplate creates or replaces the override for an email type. The
// body must parse as a valid template before it is stored.
func (s *EmailService) UpsertTemplate(ctx context.Context, input UpsertTemplateInput) (*domain.EmailTemplate, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if !domain.IsValidEmailType(input.EmailType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown email type %q", input.EmailType))
	}
	if _, err := template.New(input.EmailType).Parse(input.Body); err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid template body: %v", err))
	}
	if _, err := template.New(input.EmailType + "_subject").Parse(input.Subject); err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid template subject: %v", err))
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	tmpl := &domain.EmailTemplate{
		ID:        uuid.NewString(),
		EmailType: input.EmailType,
		Subject:   input.Subject,
		Body:      input.Body,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.templates.Upsert(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("upsert email template: %w", err)
	}

	s.logger.InfoContext(ctx, "email template updated", slog.String("email_type", tmpl.EmailType))

	return tmpl, nil
}

// DeleteTemplate removes the override for an email type, reverting that
// type to its built-in default.
func (s *EmailService) DeleteTemplate(ctx context.Context, emailType string) error {
	if !domain.IsValidEmailType(emailType) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown email type %q", emailType))
	}

	if err := s.templates.Delete(ctx, emailType); err != nil {
		return fmt.Errorf("delete email template: %w", err)
	}

	return nil
}

// ListLogs returns dispatch logs matching the filter, newest first.
func (s *EmailService) ListLogs(ctx context.Context, filter repository.EmailLogFilter, params pagination.Params) (*pagination.Result[domain.EmailLog], error) {
	filter.Page = params.Page
	filter.PerPage = params.PerPage

	logs, total, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}

	result := pagination.NewResult(logs, total, params)
	return &result, nil
}

// render resolves the template for an email type (stored override first,
// built-in default otherwise) and executes it over the data map.
func (s *EmailService) render(ctx context.Context, emailType string, data map[string]any) (subject, body string, err error) {
	subjectSrc := defaultTemplates[emailType].Subject
	bodySrc := defaultTemplates[emailType].Body

	stored, err := s.templates.GetByType(ctx, emailType)
	switch {
	case err == nil:
		subjectSrc = stored.Subject
		bodySrc = stored.Body
	case errors.Is(err, apperrors.ErrNotFound):
		// No override, use the default.
	default:
		return subjectSrc, "", fmt.Errorf("load email template: %w", err)
	}

	subject, err = renderTemplate(emailType+"_subject", subjectSrc, data)
	if err != nil {
		return subjectSrc, "", fmt.Errorf("render subject: %w", err)
	}

	body, err = renderTemplate(emailType, bodySrc, data)
	if err != nil {
		return subject, "", fmt.Errorf("render body: %w", err)
	}

	return subject, body, nil
}

func renderTemplate(name, src string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}

	return b.String(), nil
}

func (s *EmailService) recordLog(ctx context.Context, emailType, to, subject, status string, cause error) {
	entry := &domain.EmailLog{
		ID:        uuid.NewString(),
		EmailType: emailType,
		Recipient: to,
		Subject:   subject,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if cause != nil {
		entry.Error = cause.Error()
	}

	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "failed to record email log",
			slog.String("email_type", emailType),
			slog.String("error", err.Error()),
		)
	}
}
