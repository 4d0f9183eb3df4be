package cli

import (
	"fmt"
	"strconv"

	"peluqueria/internal/models"

	"github.com/spf13/cobra"
)

func clientesCmd(configPath *string) *cobra.Command {
	c := &cobra.Command{
		Use:   "clientes",
		Short: "Manage clientes",
	}
	c.AddCommand(clientesListCmd(configPath), clientesAddCmd(configPath), clientesRmCmd(configPath))
	return c
}

func clientesListCmd(configPath *string) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clientes, optionally filtered by name, phone or email",
		Args:  cobra.NoArgs,
		RunE: withSalon(configPath, func(cmd *cobra.Command, _ []string, s *salonCtx) error {
			clientes, err := s.clientes.SearchClientes(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(clientes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no clientes)")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNOMBRE\tTELEFONO\tEMAIL")
			for _, c := range clientes {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.NombreCompleto(), c.Telefono, c.Email)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	return cmd
}

func clientesAddCmd(configPath *string) *cobra.Command {
	var c models.Cliente

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a cliente",
		Args:  cobra.NoArgs,
		RunE: withSalon(configPath, func(cmd *cobra.Command, _ []string, s *salonCtx) error {
			if err := s.clientes.CreateCliente(cmd.Context(), &c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cliente %d: %s\n", c.ID, c.NombreCompleto())
			return nil
		}),
	}

	cmd.Flags().StringVar(&c.Nombre, "nombre", "", "first name")
	cmd.Flags().StringVar(&c.Apellido, "apellido", "", "last name")
	cmd.Flags().StringVar(&c.Telefono, "telefono", "", "phone, digits only")
	cmd.Flags().StringVar(&c.Email, "email", "", "email (optional)")
	return cmd
}

func clientesRmCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a cliente without turnos",
		Args:  cobra.ExactArgs(1),
		RunE: withSalon(configPath, func(cmd *cobra.Command, args []string, s *salonCtx) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.clientes.DeleteCliente(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cliente %d deleted\n", id)
			return nil
		}),
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
