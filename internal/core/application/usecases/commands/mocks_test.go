package commands_test

import (
	"context"
	"errors"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/pod"
	"lastmile/internal/core/domain/model/route"
	"lastmile/internal/core/domain/model/stopevent"
	"lastmile/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllByRouteID(ctx context.Context, routeID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(
	ctx context.Context, id kernel.UUID, status order.Status, updatedAt time.Time,
) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatusIfNotTerminal(
	ctx context.Context, id kernel.UUID, status order.Status, updatedAt time.Time,
) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(_ context.Context, _ *route.Route) error {
	return errors.New("not implemented in mock")
}

func (m *MockRouteRepository) Update(ctx context.Context, r *route.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(_ context.Context, _ kernel.UUID) (*route.Route, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockRouteRepository) GetAllActive(ctx context.Context) ([]*route.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Route), args.Error(1)
}

type MockPodRepository struct{ mock.Mock }

func (m *MockPodRepository) Add(ctx context.Context, p *pod.POD) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockStopEventRepository struct{ mock.Mock }

func (m *MockStopEventRepository) Add(ctx context.Context, e *stopevent.StopEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockDriverPositionRepository struct{ mock.Mock }

func (m *MockDriverPositionRepository) Upsert(ctx context.Context, p *driver.Position) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockUoW satisfies all the role-specific unit of work interfaces so one
// mock type serves every handler test.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

func (m *MockUoW) PodRepository() ports.PodRepository {
	args := m.Called()
	return args.Get(0).(ports.PodRepository)
}

func (m *MockUoW) StopEventRepository() ports.StopEventRepository {
	args := m.Called()
	return args.Get(0).(ports.StopEventRepository)
}

func (m *MockUoW) DriverPositionRepository() ports.DriverPositionRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverPositionRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockStopEventUoWFactory struct{ mock.Mock }

func (m *MockStopEventUoWFactory) Create() commands.StopEventUoW {
	args := m.Called()
	return args.Get(0).(commands.StopEventUoW)
}

type MockPositionUoWFactory struct{ mock.Mock }

func (m *MockPositionUoWFactory) Create() commands.PositionUoW {
	args := m.Called()
	return args.Get(0).(commands.PositionUoW)
}

type MockRouteProgressUoWFactory struct{ mock.Mock }

func (m *MockRouteProgressUoWFactory) Create() commands.RouteProgressUoW {
	args := m.Called()
	return args.Get(0).(commands.RouteProgressUoW)
}

type MockBlobStorage struct{ mock.Mock }

func (m *MockBlobStorage) Upload(ctx context.Context, objectName, contentType, payload string) (string, error) {
	args := m.Called(ctx, objectName, contentType, payload)
	return args.String(0), args.Error(1)
}

type MockNotificationSender struct{ mock.Mock }

func (m *MockNotificationSender) SendPODEmail(ctx context.Context, orderID, podID kernel.UUID) error {
	args := m.Called(ctx, orderID, podID)
	return args.Error(0)
}
