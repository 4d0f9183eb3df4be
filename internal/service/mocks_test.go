package service

import (
	"context"
	"time"

	"peluqueria/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateCliente(ctx context.Context, c *models.Cliente) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockRepo) GetCliente(ctx context.Context, id int64) (*models.Cliente, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cliente), args.Error(1)
}
func (m *mockRepo) ListClientes(ctx context.Context) ([]*models.Cliente, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Cliente), args.Error(1)
}
func (m *mockRepo) SearchClientes(ctx context.Context, q string) ([]*models.Cliente, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Cliente), args.Error(1)
}
func (m *mockRepo) UpdateCliente(ctx context.Context, c *models.Cliente) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockRepo) DeleteCliente(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CreateServicio(ctx context.Context, s *models.Servicio) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockRepo) GetServicio(ctx context.Context, id int64) (*models.Servicio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Servicio), args.Error(1)
}
func (m *mockRepo) GetServicioByNombre(ctx context.Context, n string) (*models.Servicio, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Servicio), args.Error(1)
}
func (m *mockRepo) ListServicios(ctx context.Context) ([]*models.Servicio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Servicio), args.Error(1)
}
func (m *mockRepo) ListServiciosActivos(ctx context.Context) ([]*models.Servicio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Servicio), args.Error(1)
}
func (m *mockRepo) ListServiciosByTipo(ctx context.Context, tipo models.TipoServicio) ([]*models.Servicio, error) {
	args := m.Called(ctx, tipo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Servicio), args.Error(1)
}
func (m *mockRepo) UpdateServicio(ctx context.Context, s *models.Servicio) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockRepo) DeleteServicio(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CreateTurno(ctx context.Context, t *models.Turno) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockRepo) CreateTurnoIfFree(ctx context.Context, t *models.Turno) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockRepo) GetTurno(ctx context.Context, id int64) (*models.Turno, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Turno), args.Error(1)
}
func (m *mockRepo) ListTurnos(ctx context.Context) ([]*models.Turno, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Turno), args.Error(1)
}
func (m *mockRepo) ListTurnosByFecha(ctx context.Context, f time.Time) ([]*models.Turno, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Turno), args.Error(1)
}
func (m *mockRepo) ListTurnosByCliente(ctx context.Context, id int64) ([]*models.Turno, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Turno), args.Error(1)
}
func (m *mockRepo) ListTurnosByEstado(ctx context.Context, e models.EstadoTurno) ([]*models.Turno, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Turno), args.Error(1)
}
func (m *mockRepo) UpdateTurno(ctx context.Context, t *models.Turno) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockRepo) DeleteTurno(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) ExistsTurnoAtSlot(ctx context.Context, id int64, f time.Time) (bool, error) {
	args := m.Called(ctx, id, f)
	return args.Bool(0), args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) PublishJSON(t string, p interface{}) error {
	return m.Called(t, p).Error(0)
}
