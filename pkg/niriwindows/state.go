package niriwindows

import (
	"codeberg.org/miketth/niriwindows/pkg/niri"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownWorkspace = errors.New("unknown workspace")
	ErrUnknownOutput    = errors.New("no active workspace on output")
)

type Window struct {
	ID    uint64
	Title string
	AppID string
}

func (w Window) String() string {
	return fmt.Sprintf("%s: %s", w.AppID, w.Title)
}

type Workspace struct {
	ID     uint64
	Output string

	windows map[uint64]Window
	order   []uint64
}

func newWorkspace(id uint64, output string) *Workspace {
	return &Workspace{
		ID:      id,
		Output:  output,
		windows: make(map[uint64]Window),
	}
}

func (w *Workspace) Has(id uint64) bool {
	_, ok := w.windows[id]
	return ok
}

func (w *Workspace) Count() int {
	return len(w.windows)
}

// Windows returns the workspace's windows in the order they were added.
func (w *Workspace) Windows() []Window {
	out := make([]Window, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.windows[id])
	}
	return out
}

func (w *Workspace) add(win Window) {
	if _, ok := w.windows[win.ID]; !ok {
		w.order = append(w.order, win.ID)
	}
	w.windows[win.ID] = win
}

func (w *Workspace) remove(id uint64) bool {
	if _, ok := w.windows[id]; !ok {
		return false
	}

	delete(w.windows, id)
	for i, other := range w.order {
		if other == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	return true
}

// State is the topology of workspaces and windows as reported by niri.
//
// Invariants, held between calls:
//   - a window id is owned by at most one workspace
//   - the focused workspace, if any, is known
//   - every active entry points at a known workspace on that output
type State struct {
	focused    uint64
	hasFocused bool
	active     map[string]uint64
	workspaces map[uint64]*Workspace
}

func NewState() *State {
	return &State{
		active:     make(map[string]uint64),
		workspaces: make(map[uint64]*Workspace),
	}
}

func (s *State) Focused() (uint64, bool) {
	return s.focused, s.hasFocused
}

func (s *State) Active(output string) (uint64, bool) {
	id, ok := s.active[output]
	return id, ok
}

func (s *State) Workspace(id uint64) (*Workspace, bool) {
	ws, ok := s.workspaces[id]
	return ws, ok
}

// WorkspaceIDs returns the known workspace ids in ascending order.
func (s *State) WorkspaceIDs() []uint64 {
	ids := make([]uint64, 0, len(s.workspaces))
	for id := range s.workspaces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// UpsertWorkspaces replaces the known workspace set with infos. Workspaces
// missing from infos are dropped together with their windows.
func (s *State) UpsertWorkspaces(infos []niri.WorkspaceInfo) {
	seen := make(map[uint64]struct{}, len(infos))
	for _, info := range infos {
		seen[info.ID] = struct{}{}

		ws, ok := s.workspaces[info.ID]
		if !ok {
			ws = newWorkspace(info.ID, info.Output)
			s.workspaces[info.ID] = ws
		}
		ws.Output = info.Output

		if info.IsFocused {
			s.focused, s.hasFocused = info.ID, true
		}
		if info.IsActive && info.Output != "" {
			s.active[info.Output] = info.ID
		}
	}

	for id := range s.workspaces {
		if _, ok := seen[id]; !ok {
			delete(s.workspaces, id)
		}
	}

	s.pruneReferences()
}

// pruneReferences drops focus and activation entries that no longer point at
// a known workspace on the right output.
func (s *State) pruneReferences() {
	if s.hasFocused {
		if _, ok := s.workspaces[s.focused]; !ok {
			s.focused, s.hasFocused = 0, false
		}
	}

	for output, id := range s.active {
		ws, ok := s.workspaces[id]
		if !ok || ws.Output != output {
			delete(s.active, output)
		}
	}
}

func (s *State) RecordActivation(id uint64) error {
	ws, ok := s.workspaces[id]
	if !ok {
		return fmt.Errorf("activate workspace %d: %w", id, ErrUnknownWorkspace)
	}

	if ws.Output != "" {
		s.active[ws.Output] = id
	}
	return nil
}

func (s *State) RecordFocus(id uint64) error {
	if _, ok := s.workspaces[id]; !ok {
		return fmt.Errorf("focus workspace %d: %w", id, ErrUnknownWorkspace)
	}

	s.focused, s.hasFocused = id, true
	return nil
}

// UpsertWindow puts win on the given workspace, evicting it from wherever it
// was before. Nothing changes when the workspace is unknown.
func (s *State) UpsertWindow(workspaceID uint64, win Window) error {
	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return fmt.Errorf("add window %d to workspace %d: %w", win.ID, workspaceID, ErrUnknownWorkspace)
	}

	s.RemoveWindow(win.ID)
	ws.add(win)
	return nil
}

// RemoveWindow is a no-op for windows that were never seen.
func (s *State) RemoveWindow(id uint64) {
	for _, ws := range s.workspaces {
		if ws.remove(id) {
			return
		}
	}
}

// Scope selects the workspace a count or listing is computed for. An explicit
// workspace wins over an output, the zero Scope means the focused workspace.
type Scope struct {
	Output       string
	Workspace    uint64
	HasWorkspace bool
}

func (sc Scope) String() string {
	switch {
	case sc.HasWorkspace:
		return fmt.Sprintf("workspace %d", sc.Workspace)
	case sc.Output != "":
		return "output " + sc.Output
	}
	return "focused workspace"
}

func FocusedScope() Scope {
	return Scope{}
}

func OutputScope(output string) Scope {
	return Scope{Output: output}
}

func WorkspaceScope(id uint64) Scope {
	return Scope{Workspace: id, HasWorkspace: true}
}

func (s *State) resolve(scope Scope) (*Workspace, error) {
	var id uint64
	switch {
	case scope.HasWorkspace:
		id = scope.Workspace
	case scope.Output != "":
		activeID, ok := s.active[scope.Output]
		if !ok {
			return nil, fmt.Errorf("output %q: %w", scope.Output, ErrUnknownOutput)
		}
		id = activeID
	case s.hasFocused:
		id = s.focused
	default:
		return nil, fmt.Errorf("no focused workspace: %w", ErrUnknownWorkspace)
	}

	ws, ok := s.workspaces[id]
	if !ok {
		return nil, fmt.Errorf("workspace %d: %w", id, ErrUnknownWorkspace)
	}

	return ws, nil
}

func (s *State) CountFor(scope Scope) (int, error) {
	ws, err := s.resolve(scope)
	if err != nil {
		return 0, err
	}
	return ws.Count(), nil
}

func (s *State) WindowsFor(scope Scope) ([]Window, error) {
	ws, err := s.resolve(scope)
	if err != nil {
		return nil, err
	}
	return ws.Windows(), nil
}

func (s *State) String() string {
	var b strings.Builder

	if s.hasFocused {
		fmt.Fprintf(&b, "focused: %d\n", s.focused)
	} else {
		b.WriteString("focused: none\n")
	}

	outputs := make([]string, 0, len(s.active))
	for output := range s.active {
		outputs = append(outputs, output)
	}
	sort.Strings(outputs)
	for _, output := range outputs {
		fmt.Fprintf(&b, "%s: %d\n", output, s.active[output])
	}

	for _, id := range s.WorkspaceIDs() {
		fmt.Fprintf(&b, "id: %d, win: %v\n", id, s.workspaces[id].order)
	}

	return b.String()
}
