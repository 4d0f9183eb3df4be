package domain

import (
	"context"
	"time"

	"peluqueria/internal/models"

	"github.com/shopspring/decimal"
)

type ClienteRepository interface {
	CreateCliente(ctx context.Context, cliente *models.Cliente) error
	GetCliente(ctx context.Context, id int64) (*models.Cliente, error)
	ListClientes(ctx context.Context) ([]*models.Cliente, error)
	SearchClientes(ctx context.Context, query string) ([]*models.Cliente, error)
	UpdateCliente(ctx context.Context, cliente *models.Cliente) error
	DeleteCliente(ctx context.Context, id int64) error
}

type ServicioRepository interface {
	CreateServicio(ctx context.Context, servicio *models.Servicio) error
	GetServicio(ctx context.Context, id int64) (*models.Servicio, error)
	GetServicioByNombre(ctx context.Context, nombre string) (*models.Servicio, error)
	ListServicios(ctx context.Context) ([]*models.Servicio, error)
	ListServiciosActivos(ctx context.Context) ([]*models.Servicio, error)
	ListServiciosByTipo(ctx context.Context, tipo models.TipoServicio) ([]*models.Servicio, error)
	UpdateServicio(ctx context.Context, servicio *models.Servicio) error
	DeleteServicio(ctx context.Context, id int64) error
}

type TurnoRepository interface {
	CreateTurno(ctx context.Context, turno *models.Turno) error
	CreateTurnoIfFree(ctx context.Context, turno *models.Turno) error
	GetTurno(ctx context.Context, id int64) (*models.Turno, error)
	ListTurnos(ctx context.Context) ([]*models.Turno, error)
	ListTurnosByFecha(ctx context.Context, fecha time.Time) ([]*models.Turno, error)
	ListTurnosByCliente(ctx context.Context, clienteID int64) ([]*models.Turno, error)
	ListTurnosByEstado(ctx context.Context, estado models.EstadoTurno) ([]*models.Turno, error)
	UpdateTurno(ctx context.Context, turno *models.Turno) error
	DeleteTurno(ctx context.Context, id int64) error
	ExistsTurnoAtSlot(ctx context.Context, servicioID int64, fechaHora time.Time) (bool, error)
}

// Repository is the full persistence gateway.
type Repository interface {
	ClienteRepository
	ServicioRepository
	TurnoRepository
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type ActivityStore interface {
	Append(ctx context.Context, entry models.Actividad) error
	Recent(ctx context.Context, limit int) ([]models.Actividad, error)
}

type ClienteService interface {
	CreateCliente(ctx context.Context, cliente *models.Cliente) error
	GetCliente(ctx context.Context, id int64) (*models.Cliente, error)
	ListClientes(ctx context.Context) ([]*models.Cliente, error)
	SearchClientes(ctx context.Context, query string) ([]*models.Cliente, error)
	UpdateCliente(ctx context.Context, cliente *models.Cliente) error
	DeleteCliente(ctx context.Context, id int64) error
}

type ServicioService interface {
	Validar(servicio *models.Servicio) bool
	CreateServicio(ctx context.Context, servicio *models.Servicio) error
	GetServicio(ctx context.Context, id int64) (*models.Servicio, error)
	ListServicios(ctx context.Context) ([]*models.Servicio, error)
	ListServiciosActivos(ctx context.Context) ([]*models.Servicio, error)
	ListServiciosByTipo(ctx context.Context, tipo models.TipoServicio) ([]*models.Servicio, error)
	UpdateServicio(ctx context.Context, servicio *models.Servicio) error
	DeleteServicio(ctx context.Context, id int64) error
}

type TurnoService interface {
	CreateTurno(ctx context.Context, turno *models.Turno) error
	GetTurno(ctx context.Context, id int64) (*models.Turno, error)
	ListTurnos(ctx context.Context) ([]*models.Turno, error)
	ListTurnosByFecha(ctx context.Context, fecha time.Time) ([]*models.Turno, error)
	ListTurnosByCliente(ctx context.Context, clienteID int64) ([]*models.Turno, error)
	ListTurnosByEstado(ctx context.Context, estado models.EstadoTurno) ([]*models.Turno, error)
	UpdateTurno(ctx context.Context, turno *models.Turno) error
	DeleteTurno(ctx context.Context, id int64) error
	CompleteTurno(ctx context.Context, id int64) (*models.Turno, error)
	CancelTurno(ctx context.Context, id int64) (*models.Turno, error)
	RegisterPayment(ctx context.Context, id int64, monto decimal.Decimal, forma models.FormaPago) (*models.Turno, error)
	IsAvailable(ctx context.Context, servicioID int64, fechaHora time.Time) (bool, error)
	TotalPaidToday(ctx context.Context) (decimal.Decimal, error)
	ResumenHoy(ctx context.Context) (*models.ResumenCaja, error)
}
