package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tiempo/internal/export"
	"tiempo/internal/model"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage time sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListSessions")
		if err != nil {
			return err
		}
		defer a.Close()

		var sessions []*model.TimeSession
		if project := optionalFlag(cmd, "project"); project != nil {
			sessions, err = a.Service().ListProjectSessions(*project)
		} else {
			sessions, err = a.Service().ListSessions()
		}
		if err != nil {
			return err
		}

		printSessions(sessions)
		return nil
	},
}

var sessionRunningCmd = &cobra.Command{
	Use:   "running",
	Short: "List running sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListRunningSessions")
		if err != nil {
			return err
		}
		defer a.Close()

		sessions, err := a.Service().ListRunningSessions()
		if err != nil {
			return err
		}

		if len(sessions) == 0 {
			fmt.Println("No running sessions.")
			return nil
		}
		printSessions(sessions)
		return nil
	},
}

var sessionStartCmd = &cobra.Command{
	Use:   "start PROJECT_ID",
	Short: "Start a new session on a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("StartSession")
		if err != nil {
			return err
		}
		defer a.Close()

		session, err := a.Service().StartSession(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Started session %s at %s\n", session.ID, session.StartTime.Format("15:04:05"))
		return nil
	},
}

var sessionStopCmd = &cobra.Command{
	Use:   "stop SESSION_ID",
	Short: "Stop a running session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("StopSession")
		if err != nil {
			return err
		}
		defer a.Close()

		session, err := a.Service().StopSession(args[0], optionalFlag(cmd, "notes"))
		if err != nil {
			return err
		}

		fmt.Printf("Stopped session %s (%s)\n", session.ID, formatSessionDuration(session))
		return nil
	},
}

var sessionStopAllCmd = &cobra.Command{
	Use:   "stop-all",
	Short: "Stop every running session, marking them auto-stopped",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("StopAllRunning")
		if err != nil {
			return err
		}
		defer a.Close()

		stopped, err := a.Service().StopAllRunning()
		for _, s := range stopped {
			fmt.Printf("Stopped session %s (%s)\n", s.ID, formatSessionDuration(s))
		}
		if err != nil {
			return err
		}

		if len(stopped) == 0 {
			fmt.Println("No running sessions.")
		}
		return nil
	},
}

var sessionUpdateCmd = &cobra.Command{
	Use:   "update SESSION_ID PROJECT_ID START END",
	Short: "Rewrite a session's project, time bounds and notes",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateSession")
		if err != nil {
			return err
		}
		defer a.Close()

		start, err := parseTimeArg(args[2])
		if err != nil {
			return err
		}
		end, err := parseTimeArg(args[3])
		if err != nil {
			return err
		}

		session, err := a.Service().UpdateSession(args[0], args[1], start, end, optionalFlag(cmd, "notes"))
		if err != nil {
			return err
		}

		printSession(session)
		return nil
	},
}

var sessionNotesCmd = &cobra.Command{
	Use:   "notes SESSION_ID NOTES",
	Short: "Replace a session's notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateSessionNotes")
		if err != nil {
			return err
		}
		defer a.Close()

		notes := args[1]
		session, err := a.Service().UpdateSessionNotes(args[0], &notes)
		if err != nil {
			return err
		}

		printSession(session)
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete SESSION_ID",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteSession")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteSession(args[0]); err != nil {
			return err
		}

		fmt.Println("Deleted.")
		return nil
	},
}

func printSessions(sessions []*model.TimeSession) {
	if len(sessions) == 0 {
		fmt.Println("No sessions.")
		return
	}
	for _, s := range sessions {
		state := formatSessionDuration(s)
		fmt.Printf("%s  %s  %-10s  %s\n", s.ID, s.StartTime.Format("2006-01-02 15:04"), state, s.ProjectID)
	}
}

func printSession(s *model.TimeSession) {
	fmt.Printf("ID:       %s\n", s.ID)
	fmt.Printf("Project:  %s\n", s.ProjectID)
	fmt.Printf("Start:    %s\n", s.StartTime.Format("2006-01-02 15:04:05"))
	if s.EndTime != nil {
		fmt.Printf("End:      %s\n", s.EndTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Duration: %s\n", formatSessionDuration(s))
	fmt.Printf("Notes:    %s\n", deref(s.Notes))
}

func formatSessionDuration(s *model.TimeSession) string {
	if s.IsRunning {
		return "running"
	}
	if s.DurationSeconds == nil {
		return "-"
	}
	return export.FormatDuration(*s.DurationSeconds)
}

func init() {
	sessionListCmd.Flags().String("project", "", "only sessions of this project")
	sessionStopCmd.Flags().String("notes", "", "notes to attach when stopping")
	sessionUpdateCmd.Flags().String("notes", "", "replacement notes")

	sessionCmd.AddCommand(sessionListCmd, sessionRunningCmd, sessionStartCmd, sessionStopCmd,
		sessionStopAllCmd, sessionUpdateCmd, sessionNotesCmd, sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}
