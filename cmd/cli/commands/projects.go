package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// GetProjectsCmd returns the projects command group
func GetProjectsCmd() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := apiClient.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range projects {
				hours := "-"
				if p.DurationHours != nil {
					hours = fmt.Sprintf("%.2f", *p.DurationHours)
				}
				fmt.Printf("%d\t%s\t%s hours\t%d tasks\n", p.ID, p.Name, hours, len(p.Tasks))
			}
			return nil
		},
	})

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one project with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			project, err := apiClient.GetProject(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%s\n", project.ID, project.Name)
			if project.Description != nil {
				fmt.Printf("  %s\n", *project.Description)
			}
			for _, t := range project.Tasks {
				fmt.Printf("  - %s [%s]\n", t.Title, t.Status)
			}
			return nil
		},
	})

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and all its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			if err := apiClient.DeleteProject(cmd.Context(), uint(id)); err != nil {
				return err
			}
			fmt.Printf("project %d deleted\n", id)
			return nil
		},
	})

	return projectsCmd
}
