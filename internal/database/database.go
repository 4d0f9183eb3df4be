package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"peluqueria/internal/models"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrSlotTaken      = errors.New("slot already taken")
	ErrInUse          = errors.New("record is referenced by other records")
)

type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return &DB{DB: sqlDB, logger: logger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS clientes (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            nombre TEXT NOT NULL,
            apellido TEXT NOT NULL,
            telefono TEXT NOT NULL,
            email TEXT,
            fecha_registro TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS servicios (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            nombre TEXT NOT NULL,
            descripcion TEXT,
            precio TEXT NOT NULL,
            duracion_minutos INTEGER NOT NULL,
            tipo_servicio TEXT NOT NULL,
            activo BOOLEAN NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS turnos (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            cliente_id INTEGER NOT NULL REFERENCES clientes(id) ON DELETE RESTRICT,
            servicio_id INTEGER NOT NULL REFERENCES servicios(id) ON DELETE RESTRICT,
            fecha_hora TEXT NOT NULL,
            notas TEXT,
            estado TEXT NOT NULL DEFAULT 'CONFIRMADO',
            estado_pago TEXT NOT NULL DEFAULT 'PENDIENTE',
            forma_pago TEXT,
            monto_pagado TEXT NOT NULL DEFAULT '0',
            fecha_creacion DATETIME NOT NULL
        )`,

		`CREATE INDEX IF NOT EXISTS idx_clientes_apellido ON clientes(apellido, nombre)`,
		`CREATE INDEX IF NOT EXISTS idx_servicios_nombre ON servicios(nombre)`,
		`CREATE INDEX IF NOT EXISTS idx_servicios_tipo ON servicios(tipo_servicio, activo)`,
		`CREATE INDEX IF NOT EXISTS idx_turnos_fecha_hora ON turnos(fecha_hora)`,
		`CREATE INDEX IF NOT EXISTS idx_turnos_slot ON turnos(servicio_id, fecha_hora)`,
		`CREATE INDEX IF NOT EXISTS idx_turnos_cliente_id ON turnos(cliente_id)`,
		`CREATE INDEX IF NOT EXISTS idx_turnos_estado ON turnos(estado)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func formatFechaHora(t time.Time) string {
	return t.In(time.Local).Format(models.DateTimeLayout)
}

func parseFechaHora(s string) (time.Time, error) {
	return time.ParseInLocation(models.DateTimeLayout, s, time.Local)
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// translate maps driver-level constraint failures onto package errors.
func translate(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return fmt.Errorf("%w: %v", ErrInUse, err)
	}
	return err
}
