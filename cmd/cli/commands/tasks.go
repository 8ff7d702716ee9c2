package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// GetTasksCmd returns the tasks command group
func GetTasksCmd() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := apiClient.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tasks {
				hours := "-"
				if t.DurationHours != nil {
					hours = fmt.Sprintf("%.2f", *t.DurationHours)
				}
				fmt.Printf("%d\t%s\t[%s]\t%s hours\n", t.ID, t.Title, t.Status, hours)
			}
			return nil
		},
	})

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			task, err := apiClient.GetTask(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%s\t[%s]\n", task.ID, task.Title, task.Status)
			if task.Description != nil {
				fmt.Printf("  %s\n", *task.Description)
			}
			if task.Notes != nil {
				fmt.Printf("  %s\n", *task.Notes)
			}
			return nil
		},
	})

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			if err := apiClient.DeleteTask(cmd.Context(), uint(id)); err != nil {
				return err
			}
			fmt.Printf("task %d deleted\n", id)
			return nil
		},
	})

	return tasksCmd
}
