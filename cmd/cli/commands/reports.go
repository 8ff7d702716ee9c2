package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GetReportsCmd returns the reports command group
func GetReportsCmd() *cobra.Command {
	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "Progress reports",
	}

	reportsCmd.AddCommand(&cobra.Command{
		Use:   "projects",
		Short: "Show per-project progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := apiClient.ProjectReport(cmd.Context())
			if err != nil {
				return err
			}
			for _, row := range rows {
				hours := "-"
				if row.TotalHoras != nil {
					hours = fmt.Sprintf("%.2f", *row.TotalHoras)
				}
				fmt.Printf("%d\t%s\t%s hours\t%d/%d tasks\t%.0f%%\n",
					row.ID, row.Nombre, hours, row.TareasHechas, row.TareasTotales, row.Progreso)
			}
			return nil
		},
	})

	return reportsCmd
}
