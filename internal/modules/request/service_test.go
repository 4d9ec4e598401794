package request

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/pkg/apperr"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, r *domain.ItemRequest) error {
	args := m.Called(ctx, r)
	if r != nil {
		r.ID = 99
	}
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	args := m.Called(ctx, requestorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) ListByOthers(ctx context.Context, userID int64) ([]domain.ItemRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemRequest), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) ListByRequest(ctx context.Context, requestID int64) ([]domain.Item, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListByRequests(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func newTestService() (*Service, *MockRequestRepository, *MockUserRepository, *MockItemRepository) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	items := new(MockItemRepository)
	log := zerolog.Nop()
	return NewService(requests, users, items, &log), requests, users, items
}

func TestCreateRequestAssignsCreated(t *testing.T) {
	svc, requests, users, _ := newTestService()

	users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.ItemRequest")).Return(nil)

	before := time.Now()
	resp, err := svc.Create(context.Background(), 2, CreateRequestRequest{Description: "need a ladder"})

	require.NoError(t, err)
	assert.Equal(t, int64(99), resp.ID)
	assert.False(t, resp.Created.Before(before))
	assert.False(t, resp.Created.After(time.Now()))
}

func TestCreateRequestUnknownUser(t *testing.T) {
	svc, _, users, _ := newTestService()

	users.On("Exists", mock.Anything, int64(42)).Return(false, nil)

	_, err := svc.Create(context.Background(), 42, CreateRequestRequest{Description: "need a ladder"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListOwnGroupsAnswersByRequest(t *testing.T) {
	svc, requests, users, items := newTestService()

	rid1, rid2 := int64(10), int64(11)
	users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	requests.On("ListByRequestor", mock.Anything, int64(2)).Return([]domain.ItemRequest{
		{ID: rid1, Description: "ladder", RequestorID: 2},
		{ID: rid2, Description: "tent", RequestorID: 2},
	}, nil)
	items.On("ListByRequests", mock.Anything, []int64{rid1, rid2}).Return([]domain.Item{
		{ID: 3, Name: "step ladder", OwnerID: 1, RequestID: &rid1},
		{ID: 4, Name: "extension ladder", OwnerID: 5, RequestID: &rid1},
	}, nil)

	resp, err := svc.ListOwn(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Len(t, resp[0].Items, 2)
	assert.Empty(t, resp[1].Items)
}

func TestGetRequestWithAnswers(t *testing.T) {
	svc, requests, _, items := newTestService()

	rid := int64(10)
	requests.On("GetByID", mock.Anything, rid).
		Return(&domain.ItemRequest{ID: rid, Description: "ladder", RequestorID: 2}, nil)
	items.On("ListByRequest", mock.Anything, rid).Return([]domain.Item{
		{ID: 3, Name: "step ladder", OwnerID: 1, RequestID: &rid},
	}, nil)

	resp, err := svc.Get(context.Background(), rid)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "step ladder", resp.Items[0].Name)
}

func TestGetUnknownRequest(t *testing.T) {
	svc, requests, _, _ := newTestService()

	requests.On("GetByID", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.Get(context.Background(), 404)

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
