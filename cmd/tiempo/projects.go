package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tiempo/internal/model"
	"tiempo/internal/tracker"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListProjects")
		if err != nil {
			return err
		}
		defer a.Close()

		projects, err := a.Service().ListProjects()
		if err != nil {
			return err
		}

		if len(projects) == 0 {
			fmt.Println("No projects.")
			return nil
		}

		for _, p := range projects {
			deadline := "-"
			if p.Deadline != nil {
				deadline = p.Deadline.Format("2006-01-02")
			}
			fmt.Printf("%s  p%d  %-9s  %-10s  %s\n", p.ID, p.Priority, p.Status, deadline, p.Name)
		}
		return nil
	},
}

var projectGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetProject")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Service().GetProject(args[0])
		if err != nil {
			return err
		}

		printProject(p)
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateProject")
		if err != nil {
			return err
		}
		defer a.Close()

		fields, err := projectFieldsFromFlags(cmd, args[0])
		if err != nil {
			return err
		}

		p, err := a.Service().CreateProject(fields)
		if err != nil {
			return err
		}

		fmt.Printf("Created project %s\n", p.ID)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update ID NAME",
	Short: "Replace a project's fields",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateProject")
		if err != nil {
			return err
		}
		defer a.Close()

		fields, err := projectFieldsFromFlags(cmd, args[1])
		if err != nil {
			return err
		}

		p, err := a.Service().UpdateProject(args[0], fields)
		if err != nil {
			return err
		}

		printProject(p)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a project and all of its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteProject")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteProject(args[0]); err != nil {
			return err
		}

		fmt.Println("Deleted.")
		return nil
	},
}

func projectFieldsFromFlags(cmd *cobra.Command, name string) (tracker.ProjectFields, error) {
	priority, _ := cmd.Flags().GetInt("priority")
	status, _ := cmd.Flags().GetString("status")

	var deadline *time.Time
	if cmd.Flags().Changed("deadline") {
		raw, _ := cmd.Flags().GetString("deadline")
		t, err := parseTimeArg(raw)
		if err != nil {
			return tracker.ProjectFields{}, err
		}
		deadline = &t
	}

	return tracker.ProjectFields{
		Name:           name,
		Description:    optionalFlag(cmd, "description"),
		ClientID:       optionalFlag(cmd, "client"),
		Color:          optionalFlag(cmd, "color"),
		Priority:       priority,
		Status:         status,
		EstimatedHours: optionalFloatFlag(cmd, "estimated-hours"),
		HoursPerDay:    optionalFloatFlag(cmd, "hours-per-day"),
		HoursPerWeek:   optionalFloatFlag(cmd, "hours-per-week"),
		Deadline:       deadline,
	}, nil
}

func printProject(p *model.Project) {
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("Description: %s\n", deref(p.Description))
	fmt.Printf("Client:      %s\n", deref(p.ClientID))
	fmt.Printf("Color:       %s\n", deref(p.Color))
	fmt.Printf("Priority:    %d\n", p.Priority)
	fmt.Printf("Status:      %s\n", p.Status)
	if p.Deadline != nil {
		fmt.Printf("Deadline:    %s\n", p.Deadline.Format("2006-01-02"))
	}
	fmt.Printf("Created:     %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:     %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func init() {
	for _, c := range []*cobra.Command{projectCreateCmd, projectUpdateCmd} {
		c.Flags().String("description", "", "project description")
		c.Flags().String("client", "", "client id")
		c.Flags().String("color", "", "display color (hex)")
		c.Flags().Int("priority", 2, "priority 1 (low) to 4 (urgent)")
		c.Flags().String("status", model.StatusActive, "active, paused, completed or archived")
		c.Flags().Float64("estimated-hours", 0, "estimated total hours")
		c.Flags().Float64("hours-per-day", 0, "daily target hours")
		c.Flags().Float64("hours-per-week", 0, "weekly target hours")
		c.Flags().String("deadline", "", "deadline (RFC3339)")
	}

	projectCmd.AddCommand(projectListCmd, projectGetCmd, projectCreateCmd, projectUpdateCmd, projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}
