package cli

import (
	"fmt"

	"peluqueria/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func serviciosCmd(configPath *string) *cobra.Command {
	c := &cobra.Command{
		Use:   "servicios",
		Short: "Manage the servicio catalog",
	}
	c.AddCommand(serviciosListCmd(configPath), serviciosAddCmd(configPath))
	return c
}

func serviciosListCmd(configPath *string) *cobra.Command {
	var (
		tipo    string
		activos bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servicios",
		Args:  cobra.NoArgs,
		RunE: withSalon(configPath, func(cmd *cobra.Command, _ []string, s *salonCtx) error {
			var (
				servicios []*models.Servicio
				err       error
			)
			switch {
			case tipo != "":
				t, _ := models.ParseTipoServicio(tipo)
				servicios, err = s.servicios.ListServiciosByTipo(cmd.Context(), t)
			case activos:
				servicios, err = s.servicios.ListServiciosActivos(cmd.Context())
			default:
				servicios, err = s.servicios.ListServicios(cmd.Context())
			}
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNOMBRE\tTIPO\tPRECIO\tMINUTOS\tACTIVO")
			for _, sv := range servicios {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%t\n",
					sv.ID, sv.Nombre, sv.TipoServicio, sv.Precio.StringFixed(2), sv.DuracionMinutos, sv.Activo)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().StringVar(&tipo, "tipo", "", "filter by tipo (CORTE, TINTURA, ...)")
	cmd.Flags().BoolVar(&activos, "activos", false, "only active servicios")
	return cmd
}

func serviciosAddCmd(configPath *string) *cobra.Command {
	var (
		sv     models.Servicio
		precio string
		tipo   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a servicio to the catalog",
		Args:  cobra.NoArgs,
		RunE: withSalon(configPath, func(cmd *cobra.Command, _ []string, s *salonCtx) error {
			p, err := decimal.NewFromString(precio)
			if err != nil {
				return fmt.Errorf("invalid precio %q", precio)
			}
			sv.Precio = p
			sv.TipoServicio, _ = models.ParseTipoServicio(tipo)

			if err := s.servicios.CreateServicio(cmd.Context(), &sv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "servicio %d: %s\n", sv.ID, sv.Nombre)
			return nil
		}),
	}

	cmd.Flags().StringVar(&sv.Nombre, "nombre", "", "name")
	cmd.Flags().StringVar(&sv.Descripcion, "descripcion", "", "description")
	cmd.Flags().StringVar(&precio, "precio", "0", "price")
	cmd.Flags().IntVar(&sv.DuracionMinutos, "duracion", 0, "duration in minutes")
	cmd.Flags().StringVar(&tipo, "tipo", "", "tipo (CORTE, TINTURA, PEINADO, ...)")
	return cmd
}
