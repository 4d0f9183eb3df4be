package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"peluqueria/internal/database"
	"peluqueria/internal/domain"
	"peluqueria/internal/events"
	"peluqueria/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const msgSinDisponibilidad = "no hay disponibilidad para ese horario"

type TurnoService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	validate *validator.Validate
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewTurnoService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *TurnoService {
	return &TurnoService{
		repo:     repo,
		eventBus: eventBus,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

// CreateTurno books a new turno in state CONFIRMADO, PENDIENTE, nothing paid.
// The slot must be free for the servicio at exactly turno.FechaHora.
func (s *TurnoService) CreateTurno(ctx context.Context, turno *models.Turno) error {
	const op = "crear_turno"
	if turno == nil {
		return domain.Validation(op, "datos del turno no válidos")
	}
	if err := s.validate.Struct(turno); err != nil {
		return domain.Validation(op, validationMessage(err))
	}

	cliente, err := s.repo.GetCliente(ctx, turno.ClienteID)
	if errors.Is(err, database.ErrNotFound) {
		return domain.Validation(op, fmt.Sprintf("cliente inexistente: %d", turno.ClienteID))
	}
	if err != nil {
		return domain.Storage(op, "error al crear turno", err)
	}

	servicio, err := s.repo.GetServicio(ctx, turno.ServicioID)
	if errors.Is(err, database.ErrNotFound) {
		return domain.Validation(op, fmt.Sprintf("servicio inexistente: %d", turno.ServicioID))
	}
	if err != nil {
		return domain.Storage(op, "error al crear turno", err)
	}

	available, err := s.IsAvailable(ctx, turno.ServicioID, turno.FechaHora)
	if err != nil {
		return err
	}
	if !available {
		return domain.Validation(op, msgSinDisponibilidad)
	}

	turno.Estado = models.EstadoConfirmado
	turno.EstadoPago = models.PagoPendiente
	turno.FormaPago = ""
	turno.MontoPagado = decimal.Zero
	turno.FechaCreacion = s.now()

	// the gateway re-checks the slot inside its transaction
	err = s.repo.CreateTurnoIfFree(ctx, turno)
	if errors.Is(err, database.ErrSlotTaken) {
		return domain.Validation(op, msgSinDisponibilidad)
	}
	if err != nil {
		return domain.Storage(op, "error al crear turno", err)
	}
	turno.Cliente = cliente
	turno.Servicio = servicio

	s.logger.Info().
		Int64("turno_id", turno.ID).
		Int64("servicio_id", turno.ServicioID).
		Time("fecha_hora", turno.FechaHora).
		Msg("turno created")
	s.publishEvent(events.EventTurnoCreated, turno)
	return nil
}

// IsAvailable is true iff no non-cancelled turno exists for the servicio at
// exactly fechaHora. Nearby or overlapping times are not considered.
func (s *TurnoService) IsAvailable(ctx context.Context, servicioID int64, fechaHora time.Time) (bool, error) {
	exists, err := s.repo.ExistsTurnoAtSlot(ctx, servicioID, fechaHora)
	if err != nil {
		return false, domain.Storage("validar_disponibilidad", "error al validar disponibilidad", err)
	}
	return !exists, nil
}

func (s *TurnoService) GetTurno(ctx context.Context, id int64) (*models.Turno, error) {
	turno, err := s.repo.GetTurno(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, domain.NotFound("buscar_turno", fmt.Sprintf("turno no encontrado con ID: %d", id))
	}
	if err != nil {
		return nil, domain.Storage("buscar_turno", "error al buscar turno por ID", err)
	}
	return turno, nil
}

func (s *TurnoService) ListTurnos(ctx context.Context) ([]*models.Turno, error) {
	turnos, err := s.repo.ListTurnos(ctx)
	if err != nil {
		return nil, domain.Storage("listar_turnos", "error al buscar todos los turnos", err)
	}
	return turnos, nil
}

func (s *TurnoService) ListTurnosByFecha(ctx context.Context, fecha time.Time) ([]*models.Turno, error) {
	turnos, err := s.repo.ListTurnosByFecha(ctx, fecha)
	if err != nil {
		return nil, domain.Storage("listar_turnos_fecha", "error al buscar turnos por fecha", err)
	}
	return turnos, nil
}

func (s *TurnoService) ListTurnosByCliente(ctx context.Context, clienteID int64) ([]*models.Turno, error) {
	turnos, err := s.repo.ListTurnosByCliente(ctx, clienteID)
	if err != nil {
		return nil, domain.Storage("listar_turnos_cliente", "error al buscar turnos por cliente", err)
	}
	return turnos, nil
}

func (s *TurnoService) ListTurnosByEstado(ctx context.Context, estado models.EstadoTurno) ([]*models.Turno, error) {
	const op = "listar_turnos_estado"
	if !estado.Valid() {
		return nil, domain.Validation(op, fmt.Sprintf("estado de turno desconocido: %s", estado))
	}
	turnos, err := s.repo.ListTurnosByEstado(ctx, estado)
	if err != nil {
		return nil, domain.Storage(op, "error al buscar turnos por estado", err)
	}
	return turnos, nil
}

// UpdateTurno overwrites the turno as given. Any estado is accepted,
// including AUSENTE, and availability is not re-checked. Cliente and
// servicio must exist; they are reloaded when the IDs no longer match.
func (s *TurnoService) UpdateTurno(ctx context.Context, turno *models.Turno) error {
	const op = "actualizar_turno"
	if turno == nil {
		return domain.Validation(op, "datos del turno no válidos")
	}
	if err := s.validate.Struct(turno); err != nil {
		return domain.Validation(op, validationMessage(err))
	}
	if !turno.Estado.Valid() {
		return domain.Validation(op, fmt.Sprintf("estado de turno desconocido: %s", turno.Estado))
	}
	if !turno.EstadoPago.Valid() {
		return domain.Validation(op, fmt.Sprintf("estado de pago desconocido: %s", turno.EstadoPago))
	}
	if turno.FormaPago != "" && !turno.FormaPago.Valid() {
		return domain.Validation(op, fmt.Sprintf("forma de pago desconocida: %s", turno.FormaPago))
	}
	if turno.MontoPagado.IsNegative() {
		return domain.Validation(op, "el monto pagado no puede ser negativo")
	}
	if err := s.attachRefs(ctx, op, turno); err != nil {
		return err
	}

	if err := s.persist(ctx, op, "error al actualizar turno", turno); err != nil {
		return err
	}
	s.logger.Info().Int64("turno_id", turno.ID).Str("estado", string(turno.Estado)).Msg("turno updated")
	s.publishEvent(events.EventTurnoUpdated, turno)
	return nil
}

func (s *TurnoService) DeleteTurno(ctx context.Context, id int64) error {
	const op = "eliminar_turno"
	err := s.repo.DeleteTurno(ctx, id)
	if errors.Is(err, database.ErrNoRowsAffected) {
		return domain.Storage(op, fmt.Sprintf("error al eliminar turno: no existe el ID %d", id), err)
	}
	if err != nil {
		return domain.Storage(op, "error al eliminar turno", err)
	}

	s.logger.Info().Int64("turno_id", id).Msg("turno deleted")
	s.publishEvent(events.EventTurnoDeleted, &models.Turno{ID: id})
	return nil
}

// CompleteTurno marks the turno COMPLETADO and fully paid at the servicio
// price. Calling it again rewrites the same state.
func (s *TurnoService) CompleteTurno(ctx context.Context, id int64) (*models.Turno, error) {
	const op = "completar_turno"
	turno, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	cobrado := turno.Servicio.Precio.Sub(turno.MontoPagado)
	turno.Estado = models.EstadoCompletado
	turno.EstadoPago = models.PagoPagado
	turno.MontoPagado = turno.Servicio.Precio

	if err := s.persist(ctx, op, "error al completar turno", turno); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("turno_id", id).Str("monto", turno.MontoPagado.String()).Msg("turno completed")
	s.publishPayment(events.EventTurnoCompleted, turno, cobrado)
	return turno, nil
}

// CancelTurno marks the turno CANCELADO and frees its slot. Payment fields
// are left as they are.
func (s *TurnoService) CancelTurno(ctx context.Context, id int64) (*models.Turno, error) {
	const op = "cancelar_turno"
	turno, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	turno.Estado = models.EstadoCancelado

	if err := s.persist(ctx, op, "error al cancelar turno", turno); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("turno_id", id).Msg("turno cancelled")
	s.publishEvent(events.EventTurnoCancelled, turno)
	return turno, nil
}

// RegisterPayment adds monto to the paid amount and marks the turno PAGADO
// once nothing is left to pay. monto may not exceed the saldo pendiente.
func (s *TurnoService) RegisterPayment(ctx context.Context, id int64, monto decimal.Decimal, forma models.FormaPago) (*models.Turno, error) {
	const op = "registrar_pago"
	if !monto.IsPositive() {
		return nil, domain.Validation(op, "el monto debe ser mayor que cero")
	}
	if !forma.Valid() {
		return nil, domain.Validation(op, fmt.Sprintf("forma de pago desconocida: %s", forma))
	}

	turno, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if turno.Estado == models.EstadoCancelado {
		return nil, domain.Validation(op, "no se puede registrar un pago en un turno cancelado")
	}
	if turno.EstadoPago == models.PagoPagado {
		return nil, domain.Validation(op, "el turno ya está pagado")
	}
	if monto.GreaterThan(turno.SaldoPendiente()) {
		return nil, domain.Validation(op, fmt.Sprintf("el monto supera el saldo pendiente: %s", turno.SaldoPendiente()))
	}

	turno.MontoPagado = turno.MontoPagado.Add(monto)
	turno.FormaPago = forma
	if !turno.SaldoPendiente().IsPositive() {
		turno.EstadoPago = models.PagoPagado
	}

	if err := s.persist(ctx, op, "error al registrar pago", turno); err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("turno_id", id).
		Str("monto", monto.String()).
		Str("forma_pago", string(forma)).
		Str("saldo", turno.SaldoPendiente().String()).
		Msg("payment registered")
	s.publishPayment(events.EventTurnoPaid, turno, monto)
	return turno, nil
}

// TotalPaidToday sums montoPagado over today's PAGADO turnos.
func (s *TurnoService) TotalPaidToday(ctx context.Context) (decimal.Decimal, error) {
	resumen, err := s.ResumenHoy(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return resumen.TotalPagado, nil
}

// ResumenHoy is recomputed on every call.
func (s *TurnoService) ResumenHoy(ctx context.Context) (*models.ResumenCaja, error) {
	now := s.now()
	turnos, err := s.repo.ListTurnosByFecha(ctx, now)
	if err != nil {
		return nil, domain.Storage("total_pagado_hoy", "error al calcular total pagado hoy", err)
	}

	resumen := &models.ResumenCaja{
		Fecha:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		TurnosHoy:   len(turnos),
		TotalPagado: decimal.Zero,
	}
	for _, t := range turnos {
		if t.EstadoPago != models.PagoPagado {
			continue
		}
		resumen.TurnosPagados++
		resumen.TotalPagado = resumen.TotalPagado.Add(t.MontoPagado)
	}
	return resumen, nil
}

// load fetches the turno and makes sure its servicio is attached.
func (s *TurnoService) load(ctx context.Context, op string, id int64) (*models.Turno, error) {
	turno, err := s.repo.GetTurno(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, domain.NotFound(op, fmt.Sprintf("turno no encontrado con ID: %d", id))
	}
	if err != nil {
		return nil, domain.Storage(op, "error al buscar turno por ID", err)
	}

	if turno.Servicio == nil {
		servicio, err := s.repo.GetServicio(ctx, turno.ServicioID)
		if err != nil {
			return nil, domain.Storage(op, "error al buscar servicio del turno", err)
		}
		turno.Servicio = servicio
	}
	return turno, nil
}

// attachRefs checks the turno's cliente and servicio and attaches them when
// missing or stale.
func (s *TurnoService) attachRefs(ctx context.Context, op string, turno *models.Turno) error {
	if turno.Cliente == nil || turno.Cliente.ID != turno.ClienteID {
		cliente, err := s.repo.GetCliente(ctx, turno.ClienteID)
		if errors.Is(err, database.ErrNotFound) {
			return domain.Validation(op, fmt.Sprintf("cliente inexistente: %d", turno.ClienteID))
		}
		if err != nil {
			return domain.Storage(op, "error al buscar cliente del turno", err)
		}
		turno.Cliente = cliente
	}
	if turno.Servicio == nil || turno.Servicio.ID != turno.ServicioID {
		servicio, err := s.repo.GetServicio(ctx, turno.ServicioID)
		if errors.Is(err, database.ErrNotFound) {
			return domain.Validation(op, fmt.Sprintf("servicio inexistente: %d", turno.ServicioID))
		}
		if err != nil {
			return domain.Storage(op, "error al buscar servicio del turno", err)
		}
		turno.Servicio = servicio
	}
	return nil
}

func (s *TurnoService) persist(ctx context.Context, op, msg string, turno *models.Turno) error {
	err := s.repo.UpdateTurno(ctx, turno)
	if errors.Is(err, database.ErrNoRowsAffected) {
		return domain.Storage(op, fmt.Sprintf("%s: no existe el ID %d", msg, turno.ID), err)
	}
	if err != nil {
		return domain.Storage(op, msg, err)
	}
	return nil
}

func (s *TurnoService) publishEvent(eventType string, turno *models.Turno) {
	s.publishPayment(eventType, turno, decimal.Zero)
}

// publishPayment publishes the turno snapshot along with what was collected.
func (s *TurnoService) publishPayment(eventType string, turno *models.Turno, cobrado decimal.Decimal) {
	if s.eventBus == nil {
		return
	}

	payload := events.TurnoEventPayload{
		TurnoID:     turno.ID,
		ClienteID:   turno.ClienteID,
		ServicioID:  turno.ServicioID,
		FechaHora:   turno.FechaHora,
		Estado:      string(turno.Estado),
		EstadoPago:  string(turno.EstadoPago),
		MontoPagado: turno.MontoPagado,
		Monto:       cobrado,
	}
	if turno.Servicio != nil {
		payload.Servicio = turno.Servicio.Nombre
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("turno_id", turno.ID).Msg("publish event error")
	}
}
