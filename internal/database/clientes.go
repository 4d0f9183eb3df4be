package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"peluqueria/internal/models"
)

const clienteColumns = `id, nombre, apellido, telefono, COALESCE(email, ''), fecha_registro`

func scanCliente(row rowScanner) (*models.Cliente, error) {
	var c models.Cliente
	var fechaStr string
	if err := row.Scan(&c.ID, &c.Nombre, &c.Apellido, &c.Telefono, &c.Email, &fechaStr); err != nil {
		return nil, err
	}
	fecha, err := time.ParseInLocation(models.DateLayout, fechaStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fecha_registro %s: %w", fechaStr, err)
	}
	c.FechaRegistro = fecha
	return &c, nil
}

func (db *DB) CreateCliente(ctx context.Context, cliente *models.Cliente) error {
	query := `INSERT INTO clientes (nombre, apellido, telefono, email, fecha_registro) VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		cliente.Nombre,
		cliente.Apellido,
		cliente.Telefono,
		nullIfEmpty(cliente.Email),
		cliente.FechaRegistro.Format(models.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create cliente: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	cliente.ID = id
	return nil
}

func (db *DB) GetCliente(ctx context.Context, id int64) (*models.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = ?`
	cliente, err := scanCliente(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cliente: %w", err)
	}
	return cliente, nil
}

func (db *DB) ListClientes(ctx context.Context) ([]*models.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes ORDER BY apellido, nombre`
	return db.queryClientes(ctx, query)
}

// SearchClientes matches the query as a substring of nombre, apellido or telefono.
func (db *DB) SearchClientes(ctx context.Context, q string) ([]*models.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes
              WHERE nombre LIKE ? OR apellido LIKE ? OR telefono LIKE ?
              ORDER BY apellido, nombre`
	pattern := "%" + q + "%"
	return db.queryClientes(ctx, query, pattern, pattern, pattern)
}

func (db *DB) queryClientes(ctx context.Context, query string, args ...interface{}) ([]*models.Cliente, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clientes: %w", err)
	}
	defer rows.Close()

	clientes := make([]*models.Cliente, 0)
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cliente: %w", err)
		}
		clientes = append(clientes, c)
	}
	return clientes, rows.Err()
}

// UpdateCliente never touches fecha_registro.
func (db *DB) UpdateCliente(ctx context.Context, cliente *models.Cliente) error {
	query := `UPDATE clientes SET nombre = ?, apellido = ?, telefono = ?, email = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		cliente.Nombre,
		cliente.Apellido,
		cliente.Telefono,
		nullIfEmpty(cliente.Email),
		cliente.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cliente: %w", err)
	}
	return checkAffected(result)
}

func (db *DB) DeleteCliente(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM clientes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cliente: %w", translate(err))
	}
	return checkAffected(result)
}
