package viewer

import (
	"strings"
	"testing"
)

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		path     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "macOS uses open",
			goos:     "darwin",
			path:     "/photos/Beach.jpg",
			wantName: "open",
			wantArgs: []string{"/photos/Beach.jpg"},
		},
		{
			name:     "linux uses xdg-open",
			goos:     "linux",
			path:     "/photos/Beach.jpg",
			wantName: "xdg-open",
			wantArgs: []string{"/photos/Beach.jpg"},
		},
		{
			name:     "windows uses start",
			goos:     "windows",
			path:     `C:\photos\Beach.jpg`,
			wantName: "cmd",
			wantArgs: []string{"/c", "start", "", `C:\photos\Beach.jpg`},
		},
		{
			name:    "unknown platform",
			goos:    "plan9",
			path:    "/photos/Beach.jpg",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotArgs, err := openCommand(tt.goos, tt.path)

			if (err != nil) != tt.wantErr {
				t.Errorf("openCommand() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), tt.goos) {
					t.Errorf("Expected error to name the platform, got %q", err.Error())
				}
				return
			}

			if gotName != tt.wantName {
				t.Errorf("openCommand() name = %q, want %q", gotName, tt.wantName)
			}
			if len(gotArgs) != len(tt.wantArgs) {
				t.Fatalf("openCommand() args = %v, want %v", gotArgs, tt.wantArgs)
			}
			for i := range gotArgs {
				if gotArgs[i] != tt.wantArgs[i] {
					t.Errorf("openCommand() args[%d] = %q, want %q", i, gotArgs[i], tt.wantArgs[i])
				}
			}
		})
	}
}
