package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tazdar-Rahim/artmuse-server/internal/auth"
	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/event"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	"github.com/Tazdar-Rahim/artmuse-server/internal/sender"
	"github.com/Tazdar-Rahim/artmuse-server/internal/storage"
	pkgkafka "github.com/Tazdar-Rahim/artmuse-server/pkg/kafka"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestEventProducer returns a real producer pointed at a local broker.
// Publish failures are absorbed by every service, so tests pass with or
// without Kafka running.
func newTestEventProducer() *event.Producer {
	logger := newTestLogger()
	return event.NewProducer(
		pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger),
		logger,
	)
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
}

// hashForTest uses a low cost so the test suite stays fast.
func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Repository mocks
// ---------------------------------------------------------------------------

type mockArtworkRepo struct{ mock.Mock }

var _ repository.ArtworkRepository = (*mockArtworkRepo)(nil)

func (m *mockArtworkRepo) Create(ctx context.Context, artwork *domain.Artwork) error {
	args := m.Called(ctx, artwork)
	return args.Error(0)
}

func (m *mockArtworkRepo) GetByID(ctx context.Context, id string) (*domain.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *mockArtworkRepo) GetBySlug(ctx context.Context, slug string) (*domain.Artwork, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *mockArtworkRepo) List(ctx context.Context, filter repository.ArtworkFilter) ([]domain.Artwork, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Artwork), args.Int(1), args.Error(2)
}

func (m *mockArtworkRepo) Update(ctx context.Context, artwork *domain.Artwork) error {
	args := m.Called(ctx, artwork)
	return args.Error(0)
}

func (m *mockArtworkRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCartRepo struct{ mock.Mock }

var _ repository.CartRepository = (*mockCartRepo)(nil)

func (m *mockCartRepo) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepo) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockWishlistRepo struct{ mock.Mock }

var _ repository.WishlistRepository = (*mockWishlistRepo)(nil)

func (m *mockWishlistRepo) Add(ctx context.Context, userID, artworkID string) (bool, error) {
	args := m.Called(ctx, userID, artworkID)
	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepo) Remove(ctx context.Context, userID, artworkID string) error {
	args := m.Called(ctx, userID, artworkID)
	return args.Error(0)
}

func (m *mockWishlistRepo) List(ctx context.Context, userID string, page, perPage int) ([]domain.WishlistEntry, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.WishlistEntry), args.Int(1), args.Error(2)
}

func (m *mockWishlistRepo) Exists(ctx context.Context, userID, artworkID string) (bool, error) {
	args := m.Called(ctx, userID, artworkID)
	return args.Bool(0), args.Error(1)
}

type mockPackageRepo struct{ mock.Mock }

var _ repository.CommissionPackageRepository = (*mockPackageRepo)(nil)

func (m *mockPackageRepo) Create(ctx context.Context, pkg *domain.CommissionPackage) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *mockPackageRepo) GetByID(ctx context.Context, id string) (*domain.CommissionPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionPackage), args.Error(1)
}

func (m *mockPackageRepo) List(ctx context.Context, activeOnly bool) ([]domain.CommissionPackage, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommissionPackage), args.Error(1)
}

func (m *mockPackageRepo) Update(ctx context.Context, pkg *domain.CommissionPackage) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *mockPackageRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRequestRepo struct{ mock.Mock }

var _ repository.CommissionRequestRepository = (*mockRequestRepo)(nil)

func (m *mockRequestRepo) Create(ctx context.Context, req *domain.CommissionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (*domain.CommissionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionRequest), args.Error(1)
}

func (m *mockRequestRepo) List(ctx context.Context, filter repository.CommissionRequestFilter) ([]domain.CommissionRequest, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CommissionRequest), args.Int(1), args.Error(2)
}

func (m *mockRequestRepo) Update(ctx context.Context, req *domain.CommissionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type mockConsultationRepo struct{ mock.Mock }

var _ repository.ConsultationRepository = (*mockConsultationRepo)(nil)

func (m *mockConsultationRepo) Create(ctx context.Context, booking *domain.ConsultationBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockConsultationRepo) GetByID(ctx context.Context, id string) (*domain.ConsultationBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsultationBooking), args.Error(1)
}

func (m *mockConsultationRepo) List(ctx context.Context, filter repository.ConsultationFilter) ([]domain.ConsultationBooking, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ConsultationBooking), args.Int(1), args.Error(2)
}

func (m *mockConsultationRepo) Update(ctx context.Context, booking *domain.ConsultationBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type mockOrderRepo struct{ mock.Mock }

var _ repository.OrderRepository = (*mockOrderRepo)(nil)

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOrderRepo) ConfirmPayment(ctx context.Context, id string, proofURL string) error {
	args := m.Called(ctx, id, proofURL)
	return args.Error(0)
}

type mockUserRepo struct{ mock.Mock }

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockRefreshTokenRepo struct{ mock.Mock }

var _ repository.RefreshTokenRepository = (*mockRefreshTokenRepo)(nil)

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *domain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepo) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) RevokeByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockUserTokenRepo struct{ mock.Mock }

var _ repository.UserTokenRepository = (*mockUserTokenRepo)(nil)

func (m *mockUserTokenRepo) Create(ctx context.Context, token *domain.UserToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockUserTokenRepo) GetByHash(ctx context.Context, tokenHash, purpose string) (*domain.UserToken, error) {
	args := m.Called(ctx, tokenHash, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserToken), args.Error(1)
}

func (m *mockUserTokenRepo) Consume(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type mockTemplateRepo struct{ mock.Mock }

var _ repository.EmailTemplateRepository = (*mockTemplateRepo)(nil)

func (m *mockTemplateRepo) GetByType(ctx context.Context, emailType string) (*domain.EmailTemplate, error) {
	args := m.Called(ctx, emailType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *mockTemplateRepo) List(ctx context.Context) ([]domain.EmailTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmailTemplate), args.Error(1)
}

func (m *mockTemplateRepo) Upsert(ctx context.Context, tmpl *domain.EmailTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *mockTemplateRepo) Delete(ctx context.Context, emailType string) error {
	args := m.Called(ctx, emailType)
	return args.Error(0)
}

type mockEmailLogRepo struct{ mock.Mock }

var _ repository.EmailLogRepository = (*mockEmailLogRepo)(nil)

func (m *mockEmailLogRepo) Create(ctx context.Context, log *domain.EmailLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockEmailLogRepo) List(ctx context.Context, filter repository.EmailLogFilter) ([]domain.EmailLog, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.EmailLog), args.Int(1), args.Error(2)
}

type mockMediaRepo struct{ mock.Mock }

var _ repository.MediaRepository = (*mockMediaRepo)(nil)

func (m *mockMediaRepo) Create(ctx context.Context, file *domain.MediaFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *mockMediaRepo) GetByID(ctx context.Context, id string) (*domain.MediaFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaFile), args.Error(1)
}

func (m *mockMediaRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ---------------------------------------------------------------------------
// Collaborator mocks
// ---------------------------------------------------------------------------

type mockDispatcher struct{ mock.Mock }

var _ event.EmailDispatcher = (*mockDispatcher)(nil)

func (m *mockDispatcher) Dispatch(ctx context.Context, emailType, to string, data map[string]any) error {
	args := m.Called(ctx, emailType, to, data)
	return args.Error(0)
}

type mockSender struct{ mock.Mock }

var _ sender.Sender = (*mockSender)(nil)

func (m *mockSender) Name() string { return "mock" }

func (m *mockSender) Send(ctx context.Context, msg *sender.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type mockStorage struct{ mock.Mock }

var _ storage.Storage = (*mockStorage)(nil)

func (m *mockStorage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockStorage) GetURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
