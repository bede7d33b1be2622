package niriwindows

import (
	"codeberg.org/miketth/niriwindows/pkg/niri"
	"fmt"
)

// Apply folds one event into the state and reports whether the status needs
// to be redrawn. Every event is checked against the model before anything is
// mutated, so a failing event leaves the state untouched.
func (s *State) Apply(ev niri.Event) (bool, error) {
	switch ev := ev.(type) {
	case niri.WorkspacesChanged:
		s.UpsertWorkspaces(ev.Workspaces)
		return true, nil

	case niri.WindowsChanged:
		if err := s.applyWindows(ev.Windows); err != nil {
			return false, fmt.Errorf("windows changed: %w", err)
		}
		return true, nil

	case niri.WorkspaceActivated:
		if err := s.applyActivation(ev); err != nil {
			return false, fmt.Errorf("workspace activated: %w", err)
		}
		return true, nil

	case niri.WindowOpenedOrChanged:
		if err := s.applyWindow(ev.Window); err != nil {
			return false, fmt.Errorf("window opened or changed: %w", err)
		}
		return true, nil

	case niri.WindowClosed:
		s.RemoveWindow(ev.ID)
		return true, nil

	case niri.UnknownEvent:
		return false, nil
	}

	return false, fmt.Errorf("unhandled event type %T", ev)
}

func (s *State) applyWindows(windows []niri.WindowInfo) error {
	for _, w := range windows {
		if err := s.checkWorkspace(w); err != nil {
			return err
		}
	}

	for _, w := range windows {
		if err := s.putWindow(w); err != nil {
			return err
		}
	}

	return nil
}

func (s *State) applyActivation(ev niri.WorkspaceActivated) error {
	if _, ok := s.workspaces[ev.ID]; !ok {
		return fmt.Errorf("workspace %d: %w", ev.ID, ErrUnknownWorkspace)
	}

	if ev.Focused {
		if err := s.RecordFocus(ev.ID); err != nil {
			return err
		}
	}

	return s.RecordActivation(ev.ID)
}

// applyWindow handles both a newly opened window and one that moved to
// another workspace, niri reports both with the same event. The window is
// always evicted first so it can never end up on two workspaces.
func (s *State) applyWindow(w niri.WindowInfo) error {
	if err := s.checkWorkspace(w); err != nil {
		return err
	}

	s.RemoveWindow(w.ID)
	return s.putWindow(w)
}

func (s *State) checkWorkspace(w niri.WindowInfo) error {
	if !w.HasWorkspace {
		return nil
	}
	if _, ok := s.workspaces[w.WorkspaceID]; !ok {
		return fmt.Errorf("window %d on workspace %d: %w", w.ID, w.WorkspaceID, ErrUnknownWorkspace)
	}
	return nil
}

// putWindow places a window on its workspace, or just drops it when niri
// reports it on no workspace at all.
func (s *State) putWindow(w niri.WindowInfo) error {
	if !w.HasWorkspace {
		s.RemoveWindow(w.ID)
		return nil
	}

	return s.UpsertWindow(w.WorkspaceID, Window{
		ID:    w.ID,
		Title: w.Title,
		AppID: w.AppID,
	})
}
