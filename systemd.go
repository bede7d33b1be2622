package main

import (
	"context"
	"fmt"
	"github.com/coreos/go-systemd/v22/daemon"
	"time"
)

// notifySystemd reports readiness and then pets the watchdog at half its
// interval until ctx is done. Outside of systemd it returns right away.
func notifySystemd(ctx context.Context, status string) error {
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady+"\nSTATUS="+status)
	if err != nil {
		return fmt.Errorf("notify ready: %w", err)
	}
	if !supported {
		return nil
	}

	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	if interval == 0 {
		<-ctx.Done()
		_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
		return ctx.Err()
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
			return ctx.Err()
		case <-ticker.C:
			if _, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog); err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}
