package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"peluqueria/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func turnosCmd(configPath *string) *cobra.Command {
	c := &cobra.Command{
		Use:   "turnos",
		Short: "Book and manage turnos",
	}
	c.AddCommand(
		turnosListCmd(configPath),
		turnosAddCmd(configPath),
		turnosCompletarCmd(configPath),
		turnosCancelarCmd(configPath),
		turnosPagarCmd(configPath),
	)
	return c
}

func turnosListCmd(configPath *string) *cobra.Command {
	var fecha, estado string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List turnos, newest first unless --fecha is given",
		Args:  cobra.NoArgs,
		RunE: withSalon(configPath, func(cmd *cobra.Command, _ []string, s *salonCtx) error {
			var (
				turnos []*models.Turno
				err    error
			)
			switch {
			case fecha != "":
				day, perr := time.ParseInLocation(models.DateLayout, fecha, time.Local)
				if perr != nil {
					return fmt.Errorf("invalid --fecha %q, expected YYYY-MM-DD", fecha)
				}
				turnos, err = s.turnos.ListTurnosByFecha(cmd.Context(), day)
			case estado != "":
				turnos, err = s.turnos.ListTurnosByEstado(cmd.Context(), models.EstadoTurno(strings.ToUpper(estado)))
			default:
				turnos, err = s.turnos.ListTurnos(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printTurnos(cmd.OutOrStdout(), turnos)
		}),
	}

	cmd.Flags().StringVar(&fecha, "fecha", "", "day, YYYY-MM-DD")
	cmd.Flags().StringVar(&estado, "estado", "", "CONFIRMADO, COMPLETADO, CANCELADO or AUSENTE")
	return cmd
}

func turnosAddCmd(configPath *string) *cobra.Command {
	var (
		t         models.Turno
		fechaHora string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a turno",
		Args:  cobra.NoArgs,
		RunE: withSalon(configPath, func(cmd *cobra.Command, _ []string, s *salonCtx) error {
			fh, err := parseFechaHora(fechaHora)
			if err != nil {
				return err
			}
			t.FechaHora = fh

			if err := s.turnos.CreateTurno(cmd.Context(), &t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "turno %d: %s %s\n",
				t.ID, t.FechaHora.Format(models.APIDateTimeLayout), t.Servicio.Nombre)
			return nil
		}),
	}

	cmd.Flags().Int64Var(&t.ClienteID, "cliente", 0, "cliente id")
	cmd.Flags().Int64Var(&t.ServicioID, "servicio", 0, "servicio id")
	cmd.Flags().StringVar(&fechaHora, "fecha-hora", "", "YYYY-MM-DDTHH:MM")
	cmd.Flags().StringVar(&t.Notas, "notas", "", "notes")
	return cmd
}

func turnosCompletarCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "completar <id>",
		Short: "Mark a turno completed and paid in full",
		Args:  cobra.ExactArgs(1),
		RunE: withSalon(configPath, func(cmd *cobra.Command, args []string, s *salonCtx) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := s.turnos.CompleteTurno(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "turno %d %s, pagado %s\n", t.ID, t.Estado, t.MontoPagado.StringFixed(2))
			return nil
		}),
	}
}

func turnosCancelarCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cancelar <id>",
		Short: "Cancel a turno and free its slot",
		Args:  cobra.ExactArgs(1),
		RunE: withSalon(configPath, func(cmd *cobra.Command, args []string, s *salonCtx) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := s.turnos.CancelTurno(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "turno %d %s\n", t.ID, t.Estado)
			return nil
		}),
	}
}

func turnosPagarCmd(configPath *string) *cobra.Command {
	var monto, forma string

	cmd := &cobra.Command{
		Use:   "pagar <id>",
		Short: "Register a payment on a turno",
		Args:  cobra.ExactArgs(1),
		RunE: withSalon(configPath, func(cmd *cobra.Command, args []string, s *salonCtx) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			m, err := decimal.NewFromString(monto)
			if err != nil {
				return fmt.Errorf("invalid --monto %q", monto)
			}
			t, err := s.turnos.RegisterPayment(cmd.Context(), id, m, models.FormaPago(strings.ToUpper(forma)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "turno %d %s, saldo %s\n", t.ID, t.EstadoPago, t.SaldoPendiente().StringFixed(2))
			return nil
		}),
	}

	cmd.Flags().StringVar(&monto, "monto", "", "amount")
	cmd.Flags().StringVar(&forma, "forma", string(models.FormaEfectivo), "EFECTIVO, TARJETA_DEBITO, TARJETA_CREDITO or TRANSFERENCIA")
	return cmd
}

func printTurnos(w io.Writer, turnos []*models.Turno) error {
	if len(turnos) == 0 {
		fmt.Fprintln(w, "(no turnos)")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tFECHA_HORA\tCLIENTE\tSERVICIO\tESTADO\tPAGO\tMONTO")
	for _, t := range turnos {
		cliente, servicio := "", ""
		if t.Cliente != nil {
			cliente = t.Cliente.NombreCompleto()
		}
		if t.Servicio != nil {
			servicio = t.Servicio.Nombre
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.FechaHora.Format(models.APIDateTimeLayout), cliente, servicio,
			t.Estado, t.EstadoPago, t.MontoPagado.StringFixed(2))
	}
	return tw.Flush()
}

func parseFechaHora(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(models.APIDateTimeLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid fecha-hora %q, expected YYYY-MM-DDTHH:MM", raw)
	}
	return t, nil
}
