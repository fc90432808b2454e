package manufacturer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/repositories"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, item *Manufacturer) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil {
		item.ID = 42
	}
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*Manufacturer, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*Manufacturer)
	return item, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter repositories.ListFilter) ([]Manufacturer, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]Manufacturer)
	return items, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id int64, fields repositories.Fields) (*Manufacturer, error) {
	args := m.Called(ctx, id, fields)
	item, _ := args.Get(0).(*Manufacturer)
	return item, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService(repo *mockRepository) Service {
	return NewService(repo, duplicates.DefaultConfig(), nil, nil)
}

func TestCreate_RejectsDuplicateWithTrailingWhitespace(t *testing.T) {
	repo := &mockRepository{}
	existing := Manufacturer{ID: 1, Name: "ABC Steel", ProductType: "W-Beam", Price: 1200}
	repo.On("List", mock.Anything, repositories.ListFilter{}).Return([]Manufacturer{existing}, nil)

	_, err := newTestService(repo).Create(context.Background(), CreateRequest{
		Name:        "ABC Steel   ",
		ProductType: "W-Beam",
		Price:       1200,
	})

	var conflict *duplicates.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(1), conflict.ExistingID)
	assert.Equal(t, existing, conflict.Existing)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_InsertsWhenNoDuplicate(t *testing.T) {
	repo := &mockRepository{}
	repo.On("List", mock.Anything, repositories.ListFilter{}).
		Return([]Manufacturer{{ID: 1, Name: "ABC Steel", ProductType: "W-Beam", Price: 1200}}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*repositories.Manufacturer")).Return(nil)

	created, err := newTestService(repo).Create(context.Background(), CreateRequest{
		Name:        "  ABC Steel ",
		ProductType: "W-Beam",
		Price:       1350,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, "ABC Steel", created.Name)
	repo.AssertExpectations(t)
}

func TestCreate_ListFailureDoesNotBlockInsert(t *testing.T) {
	repo := &mockRepository{}
	repo.On("List", mock.Anything, repositories.ListFilter{}).Return(nil, errors.New("disk I/O error"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := newTestService(repo).Create(context.Background(), CreateRequest{Name: "ABC Steel"})

	require.NoError(t, err)
	repo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(&mockRepository{})

	_, err := svc.Create(context.Background(), CreateRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrManufacturerNameRequired)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "ABC Steel", Price: -1})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestGet_MapsNotFound(t *testing.T) {
	repo := &mockRepository{}
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, repositories.ErrNotFound)

	_, err := newTestService(repo).Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrManufacturerNotFound)

	_, err = newTestService(repo).Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidManufacturerID)
}

func TestUpdate_SendsOnlyProvidedFields(t *testing.T) {
	repo := &mockRepository{}
	location := " Pune "
	price := 990.0
	repo.On("Update", mock.Anything, int64(3), repositories.Fields{"location": "Pune", "price": 990.0}).
		Return(&Manufacturer{ID: 3, Name: "ABC Steel", Location: "Pune", Price: 990}, nil)

	updated, err := newTestService(repo).Update(context.Background(), 3, UpdateRequest{Location: &location, Price: &price})

	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.Location)
	repo.AssertExpectations(t)

	_, err = newTestService(repo).Update(context.Background(), 3, UpdateRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestDelete_MapsNotFound(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Delete", mock.Anything, int64(5)).Return(repositories.ErrNotFound)

	assert.ErrorIs(t, newTestService(repo).Delete(context.Background(), 5), ErrManufacturerNotFound)
}
