package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"peluqueria/internal/models"
)

const servicioColumns = `id, nombre, COALESCE(descripcion, ''), precio, duracion_minutos, tipo_servicio, activo`

func scanServicio(row rowScanner) (*models.Servicio, error) {
	var s models.Servicio
	if err := row.Scan(&s.ID, &s.Nombre, &s.Descripcion, &s.Precio, &s.DuracionMinutos, &s.TipoServicio, &s.Activo); err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) CreateServicio(ctx context.Context, servicio *models.Servicio) error {
	query := `INSERT INTO servicios (nombre, descripcion, precio, duracion_minutos, tipo_servicio, activo)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		servicio.Nombre,
		nullIfEmpty(servicio.Descripcion),
		servicio.Precio.String(),
		servicio.DuracionMinutos,
		string(servicio.TipoServicio),
		servicio.Activo,
	)
	if err != nil {
		return fmt.Errorf("failed to create servicio: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	servicio.ID = id
	return nil
}

func (db *DB) GetServicio(ctx context.Context, id int64) (*models.Servicio, error) {
	query := `SELECT ` + servicioColumns + ` FROM servicios WHERE id = ?`
	return db.getServicio(ctx, query, id)
}

func (db *DB) GetServicioByNombre(ctx context.Context, nombre string) (*models.Servicio, error) {
	query := `SELECT ` + servicioColumns + ` FROM servicios WHERE nombre = ? COLLATE NOCASE LIMIT 1`
	return db.getServicio(ctx, query, nombre)
}

func (db *DB) getServicio(ctx context.Context, query string, arg interface{}) (*models.Servicio, error) {
	servicio, err := scanServicio(db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get servicio: %w", err)
	}
	return servicio, nil
}

func (db *DB) ListServicios(ctx context.Context) ([]*models.Servicio, error) {
	query := `SELECT ` + servicioColumns + ` FROM servicios ORDER BY nombre`
	return db.queryServicios(ctx, query)
}

func (db *DB) ListServiciosActivos(ctx context.Context) ([]*models.Servicio, error) {
	query := `SELECT ` + servicioColumns + ` FROM servicios WHERE activo = 1 ORDER BY nombre`
	return db.queryServicios(ctx, query)
}

// ListServiciosByTipo returns only active servicios of the given category.
func (db *DB) ListServiciosByTipo(ctx context.Context, tipo models.TipoServicio) ([]*models.Servicio, error) {
	query := `SELECT ` + servicioColumns + ` FROM servicios WHERE tipo_servicio = ? AND activo = 1 ORDER BY nombre`
	return db.queryServicios(ctx, query, string(tipo))
}

func (db *DB) queryServicios(ctx context.Context, query string, args ...interface{}) ([]*models.Servicio, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query servicios: %w", err)
	}
	defer rows.Close()

	servicios := make([]*models.Servicio, 0)
	for rows.Next() {
		s, err := scanServicio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan servicio: %w", err)
		}
		servicios = append(servicios, s)
	}
	return servicios, rows.Err()
}

func (db *DB) UpdateServicio(ctx context.Context, servicio *models.Servicio) error {
	query := `UPDATE servicios SET nombre = ?, descripcion = ?, precio = ?, duracion_minutos = ?,
              tipo_servicio = ?, activo = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		servicio.Nombre,
		nullIfEmpty(servicio.Descripcion),
		servicio.Precio.String(),
		servicio.DuracionMinutos,
		string(servicio.TipoServicio),
		servicio.Activo,
		servicio.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update servicio: %w", err)
	}
	return checkAffected(result)
}

func (db *DB) DeleteServicio(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM servicios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete servicio: %w", translate(err))
	}
	return checkAffected(result)
}
