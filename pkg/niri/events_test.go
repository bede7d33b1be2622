package niri

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Event
	}{
		{
			name: "workspaces changed",
			line: `{"WorkspacesChanged":{"workspaces":[` +
				`{"id":1,"idx":1,"name":null,"output":"DP-1","is_urgent":false,"is_active":true,"is_focused":true,"active_window_id":null},` +
				`{"id":2,"idx":2,"name":"web","output":null,"is_urgent":false,"is_active":false,"is_focused":false,"active_window_id":7}]}}`,
			want: WorkspacesChanged{Workspaces: []WorkspaceInfo{
				{ID: 1, Output: "DP-1", IsFocused: true, IsActive: true},
				{ID: 2, Output: "", IsFocused: false, IsActive: false},
			}},
		},
		{
			name: "empty workspace list",
			line: `{"WorkspacesChanged":{"workspaces":[]}}`,
			want: WorkspacesChanged{Workspaces: []WorkspaceInfo{}},
		},
		{
			name: "windows changed",
			line: `{"WindowsChanged":{"windows":[` +
				`{"id":10,"title":"vim","app_id":"foot","pid":42,"workspace_id":1,"is_focused":true,"is_floating":false,"is_urgent":false},` +
				`{"id":11,"title":null,"app_id":null,"pid":null,"workspace_id":null,"is_focused":false}]}}`,
			want: WindowsChanged{Windows: []WindowInfo{
				{ID: 10, WorkspaceID: 1, HasWorkspace: true, Title: "vim", AppID: "foot"},
				{ID: 11},
			}},
		},
		{
			name: "workspace activated",
			line: `{"WorkspaceActivated":{"id":3,"focused":true}}`,
			want: WorkspaceActivated{ID: 3, Focused: true},
		},
		{
			name: "window opened or changed",
			line: `{"WindowOpenedOrChanged":{"window":{"id":10,"title":"a","app_id":"app","workspace_id":2}}}`,
			want: WindowOpenedOrChanged{Window: WindowInfo{ID: 10, WorkspaceID: 2, HasWorkspace: true, Title: "a", AppID: "app"}},
		},
		{
			name: "window closed",
			line: `{"WindowClosed":{"id":10}}`,
			want: WindowClosed{ID: 10},
		},
		{
			name: "unknown kind",
			line: `{"KeyboardLayoutsChanged":{"keyboard_layouts":{"names":["English (US)"],"current_idx":0}}}`,
			want: UnknownEvent{Name: "KeyboardLayoutsChanged"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEvent([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Kind(), got.Kind())
		})
	}
}

func TestDecodeEventMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "not json", line: `{"WindowClosed":`},
		{name: "not an object", line: `["WindowClosed"]`},
		{name: "null", line: `null`},
		{name: "no kind", line: `{}`},
		{name: "two kinds", line: `{"WindowClosed":{"id":1},"WorkspaceActivated":{"id":1,"focused":true}}`},
		{name: "missing id", line: `{"WindowClosed":{}}`},
		{name: "null payload", line: `{"WindowClosed":null}`},
		{name: "wrong id type", line: `{"WindowClosed":{"id":"ten"}}`},
		{name: "negative id", line: `{"WindowClosed":{"id":-1}}`},
		{name: "missing focused", line: `{"WorkspaceActivated":{"id":1}}`},
		{name: "missing workspaces", line: `{"WorkspacesChanged":{}}`},
		{name: "workspace without is_active", line: `{"WorkspacesChanged":{"workspaces":[{"id":1,"output":"DP-1","is_focused":true}]}}`},
		{name: "missing windows", line: `{"WindowsChanged":{}}`},
		{name: "window without id", line: `{"WindowsChanged":{"windows":[{"workspace_id":1}]}}`},
		{name: "missing window", line: `{"WindowOpenedOrChanged":{}}`},
		{name: "window wrong type", line: `{"WindowOpenedOrChanged":{"window":[]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := DecodeEvent([]byte(tt.line))
			assert.ErrorIs(t, err, ErrDecode)
			assert.Nil(t, ev)
		})
	}
}
