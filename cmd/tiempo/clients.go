package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tiempo/internal/model"
	"tiempo/internal/tracker"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListClients")
		if err != nil {
			return err
		}
		defer a.Close()

		clients, err := a.Service().ListClients()
		if err != nil {
			return err
		}

		if len(clients) == 0 {
			fmt.Println("No clients.")
			return nil
		}

		for _, c := range clients {
			fmt.Printf("%s  %s\n", c.ID, c.Name)
		}
		return nil
	},
}

var clientGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetClient")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Service().GetClient(args[0])
		if err != nil {
			return err
		}

		printClient(c)
		return nil
	},
}

var clientCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateClient")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Service().CreateClient(tracker.ClientFields{
			Name:        args[0],
			Description: optionalFlag(cmd, "description"),
			Color:       optionalFlag(cmd, "color"),
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created client %s\n", c.ID)
		return nil
	},
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update ID NAME",
	Short: "Replace a client's fields",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateClient")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Service().UpdateClient(args[0], tracker.ClientFields{
			Name:        args[1],
			Description: optionalFlag(cmd, "description"),
			Color:       optionalFlag(cmd, "color"),
		})
		if err != nil {
			return err
		}

		printClient(c)
		return nil
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a client (its projects keep existing without a client)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteClient")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteClient(args[0]); err != nil {
			return err
		}

		fmt.Println("Deleted.")
		return nil
	},
}

func printClient(c *model.Client) {
	fmt.Printf("ID:          %s\n", c.ID)
	fmt.Printf("Name:        %s\n", c.Name)
	fmt.Printf("Description: %s\n", deref(c.Description))
	fmt.Printf("Color:       %s\n", deref(c.Color))
	fmt.Printf("Created:     %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:     %s\n", c.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func init() {
	for _, c := range []*cobra.Command{clientCreateCmd, clientUpdateCmd} {
		c.Flags().String("description", "", "client description")
		c.Flags().String("color", "", "display color (hex)")
	}

	clientCmd.AddCommand(clientListCmd, clientGetCmd, clientCreateCmd, clientUpdateCmd, clientDeleteCmd)
	rootCmd.AddCommand(clientCmd)
}
