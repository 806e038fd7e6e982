package main

import (
	"fmt"
	"runtime"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"tiempo/internal/syslock"
	"tiempo/internal/tracker"
	"tiempo/internal/tray"
)

var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Run the system-tray app",
	Long: "Runs the tray resident: a menu of running sessions and startable\n" +
		"projects, refreshed every second, plus the screen-lock watcher. Quit\n" +
		"stops all running sessions before exiting.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Tray")
		if err != nil {
			return err
		}
		defer a.Close()

		fa := fyneapp.New()
		desk, ok := fa.(desktop.App)
		if !ok {
			return fmt.Errorf("no system tray support on this platform")
		}

		svc := a.Service()

		refresh := func() {
			projects, err := svc.ListProjects()
			if err != nil {
				return
			}
			running, err := svc.ListRunningSessions()
			if err != nil {
				return
			}

			menu := tray.BuildMenu(projects, running, time.Now())
			desk.SetSystemTrayMenu(tray.ToFyneMenu(menu, tray.Handlers{
				OnRunningSelected: func(projectID string) {
					stopRunningOnProject(svc, projectID)
				},
				OnStartProject: func(projectID string) {
					_, _ = svc.StartSession(projectID)
				},
				OnQuit: func() {
					_, _ = svc.StopAllRunning()
					fa.Quit()
				},
			}))
		}

		refresh()

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		go func() {
			for range ticker.C {
				refresh()
			}
		}()

		if watcher := newLockWatcher(a.Config().Lock.PollSeconds, svc, a.Logger()); watcher != nil {
			watcher.Start()
			defer watcher.Stop()
		}

		fa.Run()
		return nil
	},
}

// stopRunningOnProject stops the running session of one project, the
// action behind clicking a running entry in the tray menu.
func stopRunningOnProject(svc *tracker.Service, projectID string) {
	running, err := svc.ListRunningSessions()
	if err != nil {
		return
	}
	for _, s := range running {
		if s.ProjectID == projectID {
			_, _ = svc.StopSession(s.ID, nil)
			return
		}
	}
}

// newLockWatcher builds the screen-lock watcher for this platform, or nil
// when disabled (poll interval zero) or unsupported.
func newLockWatcher(pollSeconds int, svc *tracker.Service, logger tracker.Logger) *syslock.Watcher {
	if pollSeconds <= 0 {
		return nil
	}

	var probe syslock.Probe
	switch runtime.GOOS {
	case "darwin":
		probe = syslock.DarwinProbe()
	default:
		return nil
	}

	return syslock.NewWatcher(probe, svc, logger, time.Duration(pollSeconds)*time.Second)
}

func init() {
	rootCmd.AddCommand(trayCmd)
}
