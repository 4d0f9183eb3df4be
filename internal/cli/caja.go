package cli

import (
	"fmt"

	"peluqueria/internal/models"

	"github.com/spf13/cobra"
)

func cajaCmd(configPath *string) *cobra.Command {
	c := &cobra.Command{
		Use:   "caja",
		Short: "Cash summaries",
	}
	c.AddCommand(&cobra.Command{
		Use:   "hoy",
		Short: "Show today's turnos and collected total",
		Args:  cobra.NoArgs,
		RunE: withSalon(configPath, func(cmd *cobra.Command, _ []string, s *salonCtx) error {
			r, err := s.turnos.ResumenHoy(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "fecha\t%s\n", r.Fecha.Format(models.DateLayout))
			fmt.Fprintf(tw, "turnos\t%d\n", r.TurnosHoy)
			fmt.Fprintf(tw, "pagados\t%d\n", r.TurnosPagados)
			fmt.Fprintf(tw, "total\t%s\n", r.TotalPagado.StringFixed(2))
			return tw.Flush()
		}),
	})
	return c
}

func disponibleCmd(configPath *string) *cobra.Command {
	var (
		servicioID int64
		fechaHora  string
	)

	cmd := &cobra.Command{
		Use:   "disponible",
		Short: "Check whether a servicio is free at an exact time",
		Args:  cobra.NoArgs,
		RunE: withSalon(configPath, func(cmd *cobra.Command, _ []string, s *salonCtx) error {
			fh, err := parseFechaHora(fechaHora)
			if err != nil {
				return err
			}
			ok, err := s.turnos.IsAvailable(cmd.Context(), servicioID, fh)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), "disponible")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "ocupado")
			}
			return nil
		}),
	}

	cmd.Flags().Int64Var(&servicioID, "servicio", 0, "servicio id")
	cmd.Flags().StringVar(&fechaHora, "fecha-hora", "", "YYYY-MM-DDTHH:MM")
	_ = cmd.MarkFlagRequired("servicio")
	_ = cmd.MarkFlagRequired("fecha-hora")
	return cmd
}
