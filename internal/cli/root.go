// Package cli implements salonctl, the operator command line for the salon.
package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"peluqueria/internal/config"
	"peluqueria/internal/database"
	"peluqueria/internal/logging"
	"peluqueria/internal/service"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "salonctl",
		Short:        "Manage clientes, servicios and turnos of the salon",
		SilenceUsage: true,
	}

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "configs/config.yaml"
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "path to config.yaml")

	cmd.AddCommand(
		clientesCmd(&configPath),
		serviciosCmd(&configPath),
		turnosCmd(&configPath),
		cajaCmd(&configPath),
		disponibleCmd(&configPath),
	)
	return cmd
}

type salonCtx struct {
	db        *database.DB
	clientes  *service.ClienteService
	servicios *service.ServicioService
	turnos    *service.TurnoService
}

func (s *salonCtx) Close() error {
	return s.db.Close()
}

// openSalon loads config and wires the services against the database.
func openSalon(cmd *cobra.Command, configPath string) (*salonCtx, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	time.Local = cfg.Location()

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging, cfg.App)

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	// one-shot commands have nobody listening for turno events
	return &salonCtx{
		db:        db,
		clientes:  service.NewClienteService(db, logger),
		servicios: service.NewServicioService(db, logger),
		turnos:    service.NewTurnoService(db, nil, logger),
	}, nil
}

// withSalon runs fn with an opened salon and closes it afterwards.
func withSalon(configPath *string, fn func(cmd *cobra.Command, args []string, s *salonCtx) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSalon(cmd, *configPath)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		return fn(cmd, args, s)
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
