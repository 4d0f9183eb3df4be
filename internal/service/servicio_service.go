package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"peluqueria/internal/database"
	"peluqueria/internal/domain"
	"peluqueria/internal/models"

	"github.com/rs/zerolog"
)

type ServicioService struct {
	repo   domain.ServicioRepository
	logger *zerolog.Logger
}

func NewServicioService(repo domain.ServicioRepository, logger *zerolog.Logger) *ServicioService {
	return &ServicioService{repo: repo, logger: logger}
}

// Validar reports whether servicio can be created: a non-blank nombre,
// positive precio and duracion, and a known tipo.
func (s *ServicioService) Validar(servicio *models.Servicio) bool {
	if servicio == nil {
		return false
	}
	if strings.TrimSpace(servicio.Nombre) == "" {
		return false
	}
	if !servicio.Precio.IsPositive() {
		return false
	}
	if servicio.DuracionMinutos <= 0 {
		return false
	}
	return servicio.TipoServicio.Valid()
}

// CreateServicio validates and stores a new, active servicio.
func (s *ServicioService) CreateServicio(ctx context.Context, servicio *models.Servicio) error {
	const op = "crear_servicio"
	if !s.Validar(servicio) {
		return domain.Validation(op, "datos del servicio no válidos")
	}

	servicio.Nombre = strings.TrimSpace(servicio.Nombre)
	servicio.Activo = true
	if err := s.repo.CreateServicio(ctx, servicio); err != nil {
		return domain.Storage(op, "error al crear servicio", err)
	}

	s.logger.Info().Int64("servicio_id", servicio.ID).Str("nombre", servicio.Nombre).Msg("servicio created")
	return nil
}

func (s *ServicioService) GetServicio(ctx context.Context, id int64) (*models.Servicio, error) {
	servicio, err := s.repo.GetServicio(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, domain.NotFound("buscar_servicio", fmt.Sprintf("servicio no encontrado con ID: %d", id))
	}
	if err != nil {
		return nil, domain.Storage("buscar_servicio", "error al buscar servicio por ID", err)
	}
	return servicio, nil
}

func (s *ServicioService) ListServicios(ctx context.Context) ([]*models.Servicio, error) {
	servicios, err := s.repo.ListServicios(ctx)
	if err != nil {
		return nil, domain.Storage("listar_servicios", "error al buscar todos los servicios", err)
	}
	return servicios, nil
}

func (s *ServicioService) ListServiciosActivos(ctx context.Context) ([]*models.Servicio, error) {
	servicios, err := s.repo.ListServiciosActivos(ctx)
	if err != nil {
		return nil, domain.Storage("listar_servicios_activos", "error al buscar servicios activos", err)
	}
	return servicios, nil
}

func (s *ServicioService) ListServiciosByTipo(ctx context.Context, tipo models.TipoServicio) ([]*models.Servicio, error) {
	const op = "listar_servicios_tipo"
	if !tipo.Valid() {
		return nil, domain.Validation(op, fmt.Sprintf("tipo de servicio desconocido: %s", tipo))
	}
	servicios, err := s.repo.ListServiciosByTipo(ctx, tipo)
	if err != nil {
		return nil, domain.Storage(op, "error al buscar servicios por tipo", err)
	}
	return servicios, nil
}

// UpdateServicio writes the servicio as given. Unlike creation it does not
// run Validar.
func (s *ServicioService) UpdateServicio(ctx context.Context, servicio *models.Servicio) error {
	const op = "actualizar_servicio"
	if servicio == nil {
		return domain.Validation(op, "datos del servicio no válidos")
	}

	err := s.repo.UpdateServicio(ctx, servicio)
	if errors.Is(err, database.ErrNoRowsAffected) {
		return domain.Storage(op, fmt.Sprintf("error al actualizar servicio: no existe el ID %d", servicio.ID), err)
	}
	if err != nil {
		return domain.Storage(op, "error al actualizar servicio", err)
	}

	s.logger.Info().Int64("servicio_id", servicio.ID).Msg("servicio updated")
	return nil
}

func (s *ServicioService) DeleteServicio(ctx context.Context, id int64) error {
	const op = "eliminar_servicio"
	err := s.repo.DeleteServicio(ctx, id)
	switch {
	case errors.Is(err, database.ErrInUse):
		return domain.Storage(op, "error al eliminar servicio: tiene turnos asociados", err)
	case errors.Is(err, database.ErrNoRowsAffected):
		return domain.Storage(op, fmt.Sprintf("error al eliminar servicio: no existe el ID %d", id), err)
	case err != nil:
		return domain.Storage(op, "error al eliminar servicio", err)
	}

	s.logger.Info().Int64("servicio_id", id).Msg("servicio deleted")
	return nil
}

// SeedCatalog creates every servicio whose nombre is not stored yet and
// returns how many were created. Invalid entries are skipped with a warning.
func (s *ServicioService) SeedCatalog(ctx context.Context, catalog []*models.Servicio) (int, error) {
	created := 0
	for _, servicio := range catalog {
		_, err := s.repo.GetServicioByNombre(ctx, strings.TrimSpace(servicio.Nombre))
		if err == nil {
			continue
		}
		if !errors.Is(err, database.ErrNotFound) {
			return created, domain.Storage("seed_servicios", "error al cargar catálogo de servicios", err)
		}

		if err := s.CreateServicio(ctx, servicio); err != nil {
			if domain.IsKind(err, domain.KindValidation) {
				s.logger.Warn().Str("nombre", servicio.Nombre).Msg("skipping invalid catalog entry")
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
