package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"peluqueria/internal/models"
)

const turnoSelect = `SELECT t.id, t.cliente_id, t.servicio_id, t.fecha_hora, COALESCE(t.notas, ''),
                 t.estado, t.estado_pago, COALESCE(t.forma_pago, ''), t.monto_pagado, t.fecha_creacion,
                 c.nombre, c.apellido, c.telefono, COALESCE(c.email, ''),
                 s.nombre, COALESCE(s.descripcion, ''), s.precio, s.duracion_minutos, s.tipo_servicio, s.activo
          FROM turnos t
          INNER JOIN clientes c ON t.cliente_id = c.id
          INNER JOIN servicios s ON t.servicio_id = s.id`

func scanTurno(row rowScanner) (*models.Turno, error) {
	t := &models.Turno{Cliente: &models.Cliente{}, Servicio: &models.Servicio{}}
	var fechaHora string
	err := row.Scan(
		&t.ID, &t.ClienteID, &t.ServicioID, &fechaHora, &t.Notas,
		&t.Estado, &t.EstadoPago, &t.FormaPago, &t.MontoPagado, &t.FechaCreacion,
		&t.Cliente.Nombre, &t.Cliente.Apellido, &t.Cliente.Telefono, &t.Cliente.Email,
		&t.Servicio.Nombre, &t.Servicio.Descripcion, &t.Servicio.Precio, &t.Servicio.DuracionMinutos,
		&t.Servicio.TipoServicio, &t.Servicio.Activo,
	)
	if err != nil {
		return nil, err
	}

	t.FechaHora, err = parseFechaHora(fechaHora)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fecha_hora %s: %w", fechaHora, err)
	}
	t.Cliente.ID = t.ClienteID
	t.Servicio.ID = t.ServicioID
	return t, nil
}

const turnoInsert = `INSERT INTO turnos (
				cliente_id, servicio_id, fecha_hora, notas, estado,
				estado_pago, forma_pago, monto_pagado, fecha_creacion
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func turnoInsertArgs(turno *models.Turno) []interface{} {
	return []interface{}{
		turno.ClienteID,
		turno.ServicioID,
		formatFechaHora(turno.FechaHora),
		nullIfEmpty(turno.Notas),
		string(turno.Estado),
		string(turno.EstadoPago),
		nullIfEmpty(string(turno.FormaPago)),
		turno.MontoPagado.String(),
		turno.FechaCreacion,
	}
}

func (db *DB) CreateTurno(ctx context.Context, turno *models.Turno) error {
	result, err := db.ExecContext(ctx, turnoInsert, turnoInsertArgs(turno)...)
	if err != nil {
		return fmt.Errorf("failed to create turno: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	turno.ID = id
	return nil
}

// CreateTurnoIfFree checks the slot and inserts in one transaction.
// Returns ErrSlotTaken when an active turno already holds the slot.
func (db *DB) CreateTurnoIfFree(ctx context.Context, turno *models.Turno) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 1. Check the slot inside the transaction
	var taken bool
	err = tx.QueryRowContext(ctx, existsAtSlotQuery,
		turno.ServicioID, formatFechaHora(turno.FechaHora), string(models.EstadoCancelado)).Scan(&taken)
	if err != nil {
		return fmt.Errorf("failed to check slot in tx: %w", err)
	}
	if taken {
		return ErrSlotTaken
	}

	// 2. Insert
	result, err := tx.ExecContext(ctx, turnoInsert, turnoInsertArgs(turno)...)
	if err != nil {
		return fmt.Errorf("failed to insert turno in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit turno: %w", err)
	}
	turno.ID = id
	return nil
}

func (db *DB) GetTurno(ctx context.Context, id int64) (*models.Turno, error) {
	turno, err := scanTurno(db.QueryRowContext(ctx, turnoSelect+` WHERE t.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get turno: %w", err)
	}
	return turno, nil
}

func (db *DB) ListTurnos(ctx context.Context) ([]*models.Turno, error) {
	return db.queryTurnos(ctx, turnoSelect+` ORDER BY t.fecha_hora DESC`)
}

// ListTurnosByFecha returns the turnos of one calendar day in chronological order.
func (db *DB) ListTurnosByFecha(ctx context.Context, fecha time.Time) ([]*models.Turno, error) {
	query := turnoSelect + ` WHERE date(t.fecha_hora) = ? ORDER BY t.fecha_hora ASC`
	return db.queryTurnos(ctx, query, fecha.In(time.Local).Format(models.DateLayout))
}

func (db *DB) ListTurnosByCliente(ctx context.Context, clienteID int64) ([]*models.Turno, error) {
	query := turnoSelect + ` WHERE t.cliente_id = ? ORDER BY t.fecha_hora DESC`
	return db.queryTurnos(ctx, query, clienteID)
}

func (db *DB) ListTurnosByEstado(ctx context.Context, estado models.EstadoTurno) ([]*models.Turno, error) {
	query := turnoSelect + ` WHERE t.estado = ? ORDER BY t.fecha_hora DESC`
	return db.queryTurnos(ctx, query, string(estado))
}

func (db *DB) queryTurnos(ctx context.Context, query string, args ...interface{}) ([]*models.Turno, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query turnos: %w", err)
	}
	defer rows.Close()

	turnos := make([]*models.Turno, 0)
	for rows.Next() {
		t, err := scanTurno(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turno: %w", err)
		}
		turnos = append(turnos, t)
	}
	return turnos, rows.Err()
}

// UpdateTurno overwrites every mutable column. fecha_creacion is never written.
func (db *DB) UpdateTurno(ctx context.Context, turno *models.Turno) error {
	query := `UPDATE turnos SET cliente_id = ?, servicio_id = ?, fecha_hora = ?, notas = ?, estado = ?,
              estado_pago = ?, forma_pago = ?, monto_pagado = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		turno.ClienteID,
		turno.ServicioID,
		formatFechaHora(turno.FechaHora),
		nullIfEmpty(turno.Notas),
		string(turno.Estado),
		string(turno.EstadoPago),
		nullIfEmpty(string(turno.FormaPago)),
		turno.MontoPagado.String(),
		turno.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update turno: %w", err)
	}
	return checkAffected(result)
}

func (db *DB) DeleteTurno(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM turnos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete turno: %w", err)
	}
	return checkAffected(result)
}

const existsAtSlotQuery = `SELECT EXISTS(
	SELECT 1 FROM turnos WHERE servicio_id = ? AND fecha_hora = ? AND estado != ?
)`

// ExistsTurnoAtSlot reports whether a non-cancelled turno holds exactly this
// servicio and timestamp.
func (db *DB) ExistsTurnoAtSlot(ctx context.Context, servicioID int64, fechaHora time.Time) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, existsAtSlotQuery,
		servicioID, formatFechaHora(fechaHora), string(models.EstadoCancelado)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return exists, nil
}
