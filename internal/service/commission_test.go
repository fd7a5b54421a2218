package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
)

func newCommissionServiceFixture() (*CommissionService, *mockPackageRepo, *mockRequestRepo) {
	packages := new(mockPackageRepo)
	requests := new(mockRequestRepo)
	svc := NewCommissionService(packages, requests, newTestEventProducer(), newTestLogger())
	return svc, packages, requests
}

func requestInput() CreateRequestInput {
	return CreateRequestInput{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		Description:   "A portrait of my dog in watercolor, A4 size.",
	}
}

func TestCommissionService_CreatePackage_DefaultsCurrencyAndActive(t *testing.T) {
	svc, packages, _ := newCommissionServiceFixture()
	ctx := context.Background()

	packages.On("Create", ctx, mock.AnythingOfType("*domain.CommissionPackage")).Return(nil)

	pkg, err := svc.CreatePackage(ctx, CreatePackageInput{
		Name:      "Portrait Sketch",
		BasePrice: 15000,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", pkg.Currency)
	assert.True(t, pkg.IsActive)
	packages.AssertExpectations(t)
}

func TestCommissionService_GetPackage_HidesInactiveFromPublic(t *testing.T) {
	svc, packages, _ := newCommissionServiceFixture()
	ctx := context.Background()

	inactive := &domain.CommissionPackage{ID: "pkg-1", Name: "Retired", IsActive: false}
	packages.On("GetByID", ctx, "pkg-1").Return(inactive, nil)

	_, err := svc.GetPackage(ctx, "pkg-1", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	pkg, err := svc.GetPackage(ctx, "pkg-1", true)
	require.NoError(t, err)
	assert.Equal(t, "pkg-1", pkg.ID)
}

func TestCommissionService_CreateRequest_Success(t *testing.T) {
	svc, _, requests := newCommissionServiceFixture()
	ctx := context.Background()

	requests.On("Create", ctx, mock.AnythingOfType("*domain.CommissionRequest")).Return(nil)

	req, err := svc.CreateRequest(ctx, requestInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.CommissionStatusPending, req.Status)
	assert.NotEmpty(t, req.ID)
	requests.AssertExpectations(t)
}

func TestCommissionService_CreateRequest_InactivePackage(t *testing.T) {
	svc, packages, _ := newCommissionServiceFixture()
	ctx := context.Background()

	inactive := &domain.CommissionPackage{ID: "3b0e3a1a-94a7-4f5f-95a1-2f51a2f0c9d4", IsActive: false}
	packages.On("GetByID", ctx, inactive.ID).Return(inactive, nil)

	input := requestInput()
	input.PackageID = &inactive.ID

	_, err := svc.CreateRequest(ctx, input, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCommissionService_CreateRequest_UnknownPackage(t *testing.T) {
	svc, packages, _ := newCommissionServiceFixture()
	ctx := context.Background()

	missing := "1f2d3c4b-5a69-4788-9796-a5b4c3d2e1f0"
	packages.On("GetByID", ctx, missing).Return(nil, apperrors.ErrNotFound)

	input := requestInput()
	input.PackageID = &missing

	_, err := svc.CreateRequest(ctx, input, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCommissionService_UpdateRequestStatus_QuoteRequiresAmount(t *testing.T) {
	svc, _, _ := newCommissionServiceFixture()

	_, err := svc.UpdateRequestStatus(context.Background(), "req-1", UpdateRequestStatusInput{
		Status: domain.CommissionStatusQuoted,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCommissionService_UpdateRequestStatus_Quote(t *testing.T) {
	svc, _, requests := newCommissionServiceFixture()
	ctx := context.Background()

	reviewed := &domain.CommissionRequest{
		ID:            "req-1",
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		Status:        domain.CommissionStatusReviewed,
	}
	requests.On("GetByID", ctx, "req-1").Return(reviewed, nil)
	requests.On("Update", ctx, mock.AnythingOfType("*domain.CommissionRequest")).Return(nil)

	req, err := svc.UpdateRequestStatus(ctx, "req-1", UpdateRequestStatusInput{
		Status:      domain.CommissionStatusQuoted,
		QuoteAmount: ptr(int64(40000)),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CommissionStatusQuoted, req.Status)
	require.NotNil(t, req.QuoteAmount)
	assert.Equal(t, int64(40000), *req.QuoteAmount)
}

func TestCommissionService_UpdateRequestStatus_InvalidTransition(t *testing.T) {
	svc, _, requests := newCommissionServiceFixture()
	ctx := context.Background()

	completed := &domain.CommissionRequest{ID: "req-1", Status: domain.CommissionStatusCompleted}
	requests.On("GetByID", ctx, "req-1").Return(completed, nil)

	_, err := svc.UpdateRequestStatus(ctx, "req-1", UpdateRequestStatusInput{
		Status: domain.CommissionStatusInProgress,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCommissionService_ListRequests_InvalidStatusFilter(t *testing.T) {
	svc, _, _ := newCommissionServiceFixture()

	bogus := "daydreaming"
	_, err := svc.ListRequests(context.Background(), repository.CommissionRequestFilter{Status: &bogus}, pagination.DefaultParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
