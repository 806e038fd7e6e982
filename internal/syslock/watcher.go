// Package syslock watches for the machine's screen locking and stops all
// running sessions when it happens. Detection is poll-and-diff: a probe
// reports the current lock state on a fixed interval and the watcher
// edge-triggers on the unlocked-to-locked transition.
package syslock

import (
	"os/exec"
	"time"

	"tiempo/internal/model"
	"tiempo/internal/tracker"
)

// Probe reports whether the screen is currently locked.
type Probe func() (bool, error)

// Stopper is the slice of the tracker service the watcher invokes.
type Stopper interface {
	StopAllRunning() ([]*model.TimeSession, error)
}

// Watcher polls the probe and fires StopAllRunning on a lock transition.
// The stop is best-effort: there is no user to report to when the screen
// locks, so failures are logged and swallowed.
type Watcher struct {
	probe      Probe
	stopper    Stopper
	logger     tracker.Logger
	interval   time.Duration
	wasLocked  bool
	stop       chan struct{}
	done       chan struct{}
}

// NewWatcher creates a Watcher. interval must be positive.
func NewWatcher(probe Probe, stopper Stopper, logger tracker.Logger, interval time.Duration) *Watcher {
	return &Watcher{
		probe:    probe,
		stopper:  stopper,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling in a background goroutine.
func (w *Watcher) Start() {
	go w.run()
}

// Stop halts polling and waits for the poll goroutine to exit.
func (w *Watcher) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Watcher) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	locked, err := w.probe()
	if err != nil {
		// Probe failures are transient (helper missing, session busy);
		// keep the last known state and try again next tick.
		w.logger.Debug("lock probe failed", "error", err)
		return
	}

	switch {
	case locked && !w.wasLocked:
		w.logger.Info("screen lock detected, stopping running sessions")
		if _, err := w.stopper.StopAllRunning(); err != nil {
			w.logger.Error("auto-stop on screen lock failed", "error", err)
		}
		w.wasLocked = true
	case !locked && w.wasLocked:
		w.logger.Info("screen unlock detected")
		w.wasLocked = false
	}
}

// CommandProbe builds a Probe that shells out to a helper process and
// treats a non-zero exit as "locked". This is the portable fallback; a
// native lock-state notification API is preferable where one exists.
func CommandProbe(name string, args ...string) Probe {
	return func() (bool, error) {
		err := exec.Command(name, args...).Run()
		if err == nil {
			return false, nil
		}
		if _, ok := err.(*exec.ExitError); ok {
			return true, nil
		}
		return false, err
	}
}

// DarwinProbe probes the macOS session state through Quartz: there is no
// session dictionary while the screen is locked.
func DarwinProbe() Probe {
	return CommandProbe("python3", "-c",
		"import Quartz; import sys; sys.exit(0 if Quartz.CGSessionCopyCurrentDictionary() else 1)")
}
