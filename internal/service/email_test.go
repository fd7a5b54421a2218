package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/sender"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

type emailServiceFixture struct {
	svc       *EmailService
	templates *mockTemplateRepo
	logs      *mockEmailLogRepo
	sender    *mockSender
}

func newEmailServiceFixture() *emailServiceFixture {
	f := &emailServiceFixture{
		templates: new(mockTemplateRepo),
		logs:      new(mockEmailLogRepo),
		sender:    new(mockSender),
	}
	f.svc = NewEmailService(f.templates, f.logs, f.sender, newTestLogger())
	return f
}

func TestEmailService_Dispatch_UnknownType(t *testing.T) {
	f := newEmailServiceFixture()

	err := f.svc.Dispatch(context.Background(), "carrier_pigeon", "ana@example.com", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEmailService_Dispatch_EmptyRecipient(t *testing.T) {
	f := newEmailServiceFixture()

	err := f.svc.Dispatch(context.Background(), domain.EmailTypeWelcome, "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEmailService_Dispatch_RendersDefaultTemplate(t *testing.T) {
	f := newEmailServiceFixture()
	ctx := context.Background()

	f.templates.On("GetByType", ctx, domain.EmailTypeWelcome).Return(nil, apperrors.ErrNotFound)
	f.sender.On("Send", ctx, mock.MatchedBy(func(msg *sender.Message) bool {
		return msg.To == "ana@example.com" &&
			msg.Subject == "Welcome to Artmuse" &&
			strings.Contains(msg.Body, "Hi Ana,")
	})).Return(nil)
	f.logs.On("Create", ctx, mock.MatchedBy(func(log *domain.EmailLog) bool {
		return log.Status == domain.EmailStatusSent && log.Recipient == "ana@example.com"
	})).Return(nil)

	err := f.svc.Dispatch(ctx, domain.EmailTypeWelcome, "ana@example.com", map[string]any{"Name": "Ana"})
	require.NoError(t, err)
	f.sender.AssertExpectations(t)
	f.logs.AssertExpectations(t)
}

func TestEmailService_Dispatch_StoredOverrideWins(t *testing.T) {
	f := newEmailServiceFixture()
	ctx := context.Background()

	override := &domain.EmailTemplate{
		EmailType: domain.EmailTypeWelcome,
		Subject:   "Hello from the studio",
		Body:      "Dear {{.Name}}, welcome aboard.",
		IsActive:  true,
	}
	f.templates.On("GetByType", ctx, domain.EmailTypeWelcome).Return(override, nil)
	f.sender.On("Send", ctx, mock.MatchedBy(func(msg *sender.Message) bool {
		return msg.Subject == "Hello from the studio" && msg.Body == "Dear Ana, welcome aboard."
	})).Return(nil)
	f.logs.On("Create", ctx, mock.AnythingOfType("*domain.EmailLog")).Return(nil)

	err := f.svc.Dispatch(ctx, domain.EmailTypeWelcome, "ana@example.com", map[string]any{"Name": "Ana"})
	require.NoError(t, err)
	f.sender.AssertExpectations(t)
}

func TestEmailService_Dispatch_SendFailureIsAbsorbed(t *testing.T) {
	f := newEmailServiceFixture()
	ctx := context.Background()

	f.templates.On("GetByType", ctx, domain.EmailTypeWelcome).Return(nil, apperrors.ErrNotFound)
	f.sender.On("Send", ctx, mock.AnythingOfType("*sender.Message")).Return(assert.AnError)
	f.logs.On("Create", ctx, mock.MatchedBy(func(log *domain.EmailLog) bool {
		return log.Status == domain.EmailStatusFailed && log.Error != ""
	})).Return(nil)

	// A broken mailbox must not propagate into the caller.
	err := f.svc.Dispatch(ctx, domain.EmailTypeWelcome, "ana@example.com", map[string]any{"Name": "Ana"})
	assert.NoError(t, err)
	f.logs.AssertExpectations(t)
}

func TestEmailService_SubmitContact_SendsAutoReply(t *testing.T) {
	f := newEmailServiceFixture()
	ctx := context.Background()

	f.templates.On("GetByType", ctx, domain.EmailTypeContactReply).Return(nil, apperrors.ErrNotFound)
	f.sender.On("Send", ctx, mock.MatchedBy(func(msg *sender.Message) bool {
		return msg.To == "ana@example.com" &&
			msg.Subject == "We received your message" &&
			strings.Contains(msg.Body, "Hi Ana,") &&
			strings.Contains(msg.Body, "Is the harbor painting still available?")
	})).Return(nil)
	f.logs.On("Create", ctx, mock.MatchedBy(func(log *domain.EmailLog) bool {
		return log.EmailType == domain.EmailTypeContactReply && log.Status == domain.EmailStatusSent
	})).Return(nil)

	err := f.svc.SubmitContact(ctx, ContactInput{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Is the harbor painting still available?",
	})
	require.NoError(t, err)
	f.sender.AssertExpectations(t)
	f.logs.AssertExpectations(t)
}

func TestEmailService_SubmitContact_RejectsInvalidEmail(t *testing.T) {
	f := newEmailServiceFixture()

	err := f.svc.SubmitContact(context.Background(), ContactInput{
		Name:    "Ana",
		Email:   "not-an-email",
		Message: "Hello",
	})
	require.Error(t, err)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestEmailService_UpsertTemplate_RejectsBadTemplateBody(t *testing.T) {
	f := newEmailServiceFixture()

	_, err := f.svc.UpsertTemplate(context.Background(), UpsertTemplateInput{
		EmailType: domain.EmailTypeWelcome,
		Subject:   "Hi",
		Body:      "Hello {{.Name",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEmailService_UpsertTemplate_RejectsUnknownType(t *testing.T) {
	f := newEmailServiceFixture()

	_, err := f.svc.UpsertTemplate(context.Background(), UpsertTemplateInput{
		EmailType: "carrier_pigeon",
		Subject:   "Hi",
		Body:      "Hello",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEmailService_UpsertTemplate_Success(t *testing.T) {
	f := newEmailServiceFixture()
	ctx := context.Background()

	f.templates.On("Upsert", ctx, mock.MatchedBy(func(tmpl *domain.EmailTemplate) bool {
		return tmpl.EmailType == domain.EmailTypeOrderStatus && tmpl.IsActive
	})).Return(nil)

	tmpl, err := f.svc.UpsertTemplate(ctx, UpsertTemplateInput{
		EmailType: domain.EmailTypeOrderStatus,
		Subject:   "Order {{.OrderID}} update",
		Body:      "Your order is now {{.Status}}.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tmpl.ID)
	f.templates.AssertExpectations(t)
}

func TestEmailService_DeleteTemplate_UnknownType(t *testing.T) {
	f := newEmailServiceFixture()

	err := f.svc.DeleteTemplate(context.Background(), "carrier_pigeon")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
