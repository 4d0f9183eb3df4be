package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"peluqueria/internal/database"
	"peluqueria/internal/domain"
	"peluqueria/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type ClienteService struct {
	repo     domain.ClienteRepository
	validate *validator.Validate
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewClienteService(repo domain.ClienteRepository, logger *zerolog.Logger) *ClienteService {
	return &ClienteService{
		repo:     repo,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ClienteService) check(op string, cliente *models.Cliente) error {
	if cliente == nil {
		return domain.Validation(op, "datos del cliente no válidos")
	}
	cliente.Nombre = strings.TrimSpace(cliente.Nombre)
	cliente.Apellido = strings.TrimSpace(cliente.Apellido)
	cliente.Telefono = strings.TrimSpace(cliente.Telefono)
	cliente.Email = strings.TrimSpace(cliente.Email)
	if err := s.validate.Struct(cliente); err != nil {
		return domain.Validation(op, validationMessage(err))
	}
	return nil
}

// CreateCliente stamps fechaRegistro with today's date.
func (s *ClienteService) CreateCliente(ctx context.Context, cliente *models.Cliente) error {
	const op = "crear_cliente"
	if err := s.check(op, cliente); err != nil {
		return err
	}

	now := s.now()
	cliente.FechaRegistro = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.repo.CreateCliente(ctx, cliente); err != nil {
		return domain.Storage(op, "error al crear cliente", err)
	}

	s.logger.Info().Int64("cliente_id", cliente.ID).Str("nombre", cliente.NombreCompleto()).Msg("cliente created")
	return nil
}

func (s *ClienteService) GetCliente(ctx context.Context, id int64) (*models.Cliente, error) {
	cliente, err := s.repo.GetCliente(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, domain.NotFound("buscar_cliente", fmt.Sprintf("cliente no encontrado con ID: %d", id))
	}
	if err != nil {
		return nil, domain.Storage("buscar_cliente", "error al buscar cliente por ID", err)
	}
	return cliente, nil
}

func (s *ClienteService) ListClientes(ctx context.Context) ([]*models.Cliente, error) {
	clientes, err := s.repo.ListClientes(ctx)
	if err != nil {
		return nil, domain.Storage("listar_clientes", "error al buscar todos los clientes", err)
	}
	return clientes, nil
}

// SearchClientes falls back to the full list for a blank query.
func (s *ClienteService) SearchClientes(ctx context.Context, query string) ([]*models.Cliente, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListClientes(ctx)
	}
	clientes, err := s.repo.SearchClientes(ctx, query)
	if err != nil {
		return nil, domain.Storage("buscar_clientes", "error al buscar clientes", err)
	}
	return clientes, nil
}

func (s *ClienteService) UpdateCliente(ctx context.Context, cliente *models.Cliente) error {
	const op = "actualizar_cliente"
	if err := s.check(op, cliente); err != nil {
		return err
	}

	err := s.repo.UpdateCliente(ctx, cliente)
	if errors.Is(err, database.ErrNoRowsAffected) {
		return domain.Storage(op, fmt.Sprintf("error al actualizar cliente: no existe el ID %d", cliente.ID), err)
	}
	if err != nil {
		return domain.Storage(op, "error al actualizar cliente", err)
	}

	s.logger.Info().Int64("cliente_id", cliente.ID).Msg("cliente updated")
	return nil
}

func (s *ClienteService) DeleteCliente(ctx context.Context, id int64) error {
	const op = "eliminar_cliente"
	err := s.repo.DeleteCliente(ctx, id)
	switch {
	case errors.Is(err, database.ErrInUse):
		return domain.Storage(op, "error al eliminar cliente: tiene turnos asociados", err)
	case errors.Is(err, database.ErrNoRowsAffected):
		return domain.Storage(op, fmt.Sprintf("error al eliminar cliente: no existe el ID %d", id), err)
	case err != nil:
		return domain.Storage(op, "error al eliminar cliente", err)
	}

	s.logger.Info().Int64("cliente_id", id).Msg("cliente deleted")
	return nil
}
