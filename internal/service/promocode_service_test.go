package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/promoshare/promocode-backend/internal/models"
)

type mockPromocodeRepo struct {
	mock.Mock
}

func (m *mockPromocodeRepo) Create(ctx context.Context, promocode *models.Promocode) error {
	args := m.Called(ctx, promocode)
	if args.Error(0) == nil {
		promocode.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockPromocodeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Promocode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promocode), args.Error(1)
}

func (m *mockPromocodeRepo) GetByIDWithOwner(ctx context.Context, id uuid.UUID) (*models.PromocodeWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromocodeWithOwner), args.Error(1)
}

func (m *mockPromocodeRepo) ListByCategory(ctx context.Context, slug string, limit, offset int) ([]models.Promocode, int, error) {
	args := m.Called(ctx, slug, limit, offset)
	return args.Get(0).([]models.Promocode), args.Int(1), args.Error(2)
}

func (m *mockPromocodeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Promocode, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Promocode), args.Error(1)
}

func (m *mockPromocodeRepo) Update(ctx context.Context, promocode *models.Promocode) error {
	args := m.Called(ctx, promocode)
	return args.Error(0)
}

func (m *mockPromocodeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPromocodeRepo) IncrementUses(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type mockReportResolver struct {
	mock.Mock
}

func (m *mockReportResolver) ResolvePendingByPromocode(ctx context.Context, promocodeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, promocodeID)
	return args.Get(0).(int64), args.Error(1)
}

func validInput() PromocodeInput {
	return PromocodeInput{
		ServiceName: "Netflix",
		Code:        "SPRING2026",
		Description: "Скидка на первый месяц подписки",
		Discount:    "30%",
		Category:    "動画配信",
	}
}

func TestPromocodeService_Submit_Success(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)
	ctx := context.Background()
	ownerID := uuid.New()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Promocode")).Return(nil)

	promocode, err := svc.Submit(ctx, ownerID, validInput())
	assert.NoError(t, err)
	assert.Equal(t, ownerID, promocode.OwnerID)
	assert.Equal(t, "video-streaming", promocode.CategorySlug)
	repo.AssertExpectations(t)
}

func TestPromocodeService_Submit_LinkInDescription(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)

	in := validInput()
	in.Description = "Подробности на www.acme.com не пропустите"

	_, err := svc.Submit(context.Background(), uuid.New(), in)
	assert.Error(t, err)
	assert.True(t, IsValidation(err))
	repo.AssertNotCalled(t, "Create")
}

func TestPromocodeService_Submit_StoreErrorIsNotValidation(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Promocode")).
		Return(errors.New("promocode repository: create pq: connection refused"))

	_, err := svc.Submit(ctx, uuid.New(), validInput())
	assert.Error(t, err)
	assert.False(t, IsValidation(err))
}

func TestPromocodeService_ListCategory_PageOffset(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)
	ctx := context.Background()

	repo.On("ListByCategory", ctx, "music", PageSize, 9).Return([]models.Promocode{}, 19, nil)

	page, err := svc.ListCategory(ctx, "music", 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 19, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	repo.AssertExpectations(t)
}

func TestPromocodeService_ListCategory_UnknownSlug(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)

	_, err := svc.ListCategory(context.Background(), "casino", 1)
	assert.Error(t, err)
	assert.True(t, IsValidation(err))
	repo.AssertNotCalled(t, "ListByCategory")
}

func TestPromocodeService_Update_Forbidden(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)
	ctx := context.Background()

	id := uuid.New()
	ownerID := uuid.New()
	stranger := uuid.New()

	repo.On("GetByID", ctx, id).Return(&models.Promocode{ID: id, OwnerID: ownerID}, nil)

	_, err := svc.Update(ctx, id, stranger, false, validInput())
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Update")
}

func TestPromocodeService_Update_AdminAllowed(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)
	ctx := context.Background()

	id := uuid.New()
	ownerID := uuid.New()
	admin := uuid.New()

	repo.On("GetByID", ctx, id).Return(&models.Promocode{ID: id, OwnerID: ownerID}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*models.Promocode")).Return(nil)

	updated, err := svc.Update(ctx, id, admin, true, validInput())
	assert.NoError(t, err)
	assert.Equal(t, "video-streaming", updated.CategorySlug)
	repo.AssertExpectations(t)
}

func TestPromocodeService_Delete_ResolvesPendingReports(t *testing.T) {
	repo := new(mockPromocodeRepo)
	resolver := new(mockReportResolver)
	svc := NewPromocodeService(repo, resolver)
	ctx := context.Background()

	id := uuid.New()
	ownerID := uuid.New()

	repo.On("GetByID", ctx, id).Return(&models.Promocode{ID: id, OwnerID: ownerID}, nil)
	repo.On("Delete", ctx, id).Return(nil)
	resolver.On("ResolvePendingByPromocode", ctx, id).Return(int64(2), nil)

	err := svc.Delete(ctx, id, ownerID, false)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestPromocodeService_GetWithOwner(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)
	ctx := context.Background()

	id := uuid.New()
	repo.On("GetByIDWithOwner", ctx, id).Return(&models.PromocodeWithOwner{
		Promocode:  models.Promocode{ID: id},
		OwnerEmail: "owner@example.com",
	}, nil)

	promocode, err := svc.GetWithOwner(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "owner@example.com", promocode.OwnerEmail)
	repo.AssertExpectations(t)
}

func TestPromocodeService_Copy(t *testing.T) {
	repo := new(mockPromocodeRepo)
	svc := NewPromocodeService(repo, nil)
	ctx := context.Background()

	id := uuid.New()
	repo.On("IncrementUses", ctx, id).Return(5, nil)

	uses, err := svc.Copy(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, 5, uses)
}
