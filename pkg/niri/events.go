package niri

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrDecode = errors.New("malformed event")

// Event is one record of the event stream. The concrete types below are the
// only implementations; kinds this package does not model decode to
// UnknownEvent.
type Event interface {
	Kind() string
	isEvent()
}

type WorkspaceInfo struct {
	ID uint64
	// Output is empty when the workspace is not on any output.
	Output    string
	IsFocused bool
	IsActive  bool
}

type WindowInfo struct {
	ID uint64
	// WorkspaceID is only meaningful when HasWorkspace is set.
	WorkspaceID  uint64
	HasWorkspace bool
	Title        string
	AppID        string
}

type WorkspacesChanged struct {
	Workspaces []WorkspaceInfo
}

type WindowsChanged struct {
	Windows []WindowInfo
}

type WorkspaceActivated struct {
	ID      uint64
	Focused bool
}

type WindowOpenedOrChanged struct {
	Window WindowInfo
}

type WindowClosed struct {
	ID uint64
}

type UnknownEvent struct {
	Name string
}

func (WorkspacesChanged) Kind() string     { return "WorkspacesChanged" }
func (WindowsChanged) Kind() string        { return "WindowsChanged" }
func (WorkspaceActivated) Kind() string    { return "WorkspaceActivated" }
func (WindowOpenedOrChanged) Kind() string { return "WindowOpenedOrChanged" }
func (WindowClosed) Kind() string          { return "WindowClosed" }
func (e UnknownEvent) Kind() string        { return e.Name }

func (WorkspacesChanged) isEvent()     {}
func (WindowsChanged) isEvent()        {}
func (WorkspaceActivated) isEvent()    {}
func (WindowOpenedOrChanged) isEvent() {}
func (WindowClosed) isEvent()          {}
func (UnknownEvent) isEvent()          {}

// DecodeEvent decodes a single event stream line. The record must be a JSON
// object with exactly one key naming the event kind.
func DecodeEvent(line []byte) (Event, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("%w: expected one event kind, got %d keys", ErrDecode, len(envelope))
	}

	var kind string
	var payload json.RawMessage
	for k, v := range envelope {
		kind, payload = k, v
		break
	}

	ev, err := decodePayload(kind, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, kind, err)
	}

	return ev, nil
}

func decodePayload(kind string, payload json.RawMessage) (Event, error) {
	switch kind {
	case "WorkspacesChanged":
		var raw struct {
			Workspaces *[]workspaceJSON `json:"workspaces"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		if raw.Workspaces == nil {
			return nil, missing("workspaces")
		}
		workspaces := make([]WorkspaceInfo, 0, len(*raw.Workspaces))
		for _, ws := range *raw.Workspaces {
			info, err := ws.toInfo()
			if err != nil {
				return nil, err
			}
			workspaces = append(workspaces, info)
		}
		return WorkspacesChanged{Workspaces: workspaces}, nil

	case "WindowsChanged":
		var raw struct {
			Windows *[]windowJSON `json:"windows"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		if raw.Windows == nil {
			return nil, missing("windows")
		}
		windows := make([]WindowInfo, 0, len(*raw.Windows))
		for _, w := range *raw.Windows {
			info, err := w.toInfo()
			if err != nil {
				return nil, err
			}
			windows = append(windows, info)
		}
		return WindowsChanged{Windows: windows}, nil

	case "WorkspaceActivated":
		var raw struct {
			ID      *uint64 `json:"id"`
			Focused *bool   `json:"focused"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		if raw.ID == nil {
			return nil, missing("id")
		}
		if raw.Focused == nil {
			return nil, missing("focused")
		}
		return WorkspaceActivated{ID: *raw.ID, Focused: *raw.Focused}, nil

	case "WindowOpenedOrChanged":
		var raw struct {
			Window *windowJSON `json:"window"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		if raw.Window == nil {
			return nil, missing("window")
		}
		info, err := raw.Window.toInfo()
		if err != nil {
			return nil, err
		}
		return WindowOpenedOrChanged{Window: info}, nil

	case "WindowClosed":
		var raw struct {
			ID *uint64 `json:"id"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
		if raw.ID == nil {
			return nil, missing("id")
		}
		return WindowClosed{ID: *raw.ID}, nil
	}

	return UnknownEvent{Name: kind}, nil
}

type workspaceJSON struct {
	ID        *uint64 `json:"id"`
	Output    *string `json:"output"`
	IsFocused *bool   `json:"is_focused"`
	IsActive  *bool   `json:"is_active"`
}

func (w workspaceJSON) toInfo() (WorkspaceInfo, error) {
	switch {
	case w.ID == nil:
		return WorkspaceInfo{}, missing("id")
	case w.IsFocused == nil:
		return WorkspaceInfo{}, missing("is_focused")
	case w.IsActive == nil:
		return WorkspaceInfo{}, missing("is_active")
	}

	return WorkspaceInfo{
		ID:        *w.ID,
		Output:    deref(w.Output),
		IsFocused: *w.IsFocused,
		IsActive:  *w.IsActive,
	}, nil
}

type windowJSON struct {
	ID          *uint64 `json:"id"`
	WorkspaceID *uint64 `json:"workspace_id"`
	Title       *string `json:"title"`
	AppID       *string `json:"app_id"`
}

func (w windowJSON) toInfo() (WindowInfo, error) {
	if w.ID == nil {
		return WindowInfo{}, missing("id")
	}

	info := WindowInfo{
		ID:    *w.ID,
		Title: deref(w.Title),
		AppID: deref(w.AppID),
	}
	if w.WorkspaceID != nil {
		info.WorkspaceID = *w.WorkspaceID
		info.HasWorkspace = true
	}

	return info, nil
}

func missing(key string) error {
	return fmt.Errorf("missing %q", key)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
