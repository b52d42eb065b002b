package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		wantProject string
		wantExtra   []string
		wantErr     bool
	}{
		{name: "nothing", args: []string{}},
		{name: "project only", args: []string{"backend"}, wantProject: "backend"},
		{name: "git args only", args: []string{"--", "-m", "msg"}, wantExtra: []string{"-m", "msg"}},
		{name: "project and git args", args: []string{"backend", "--", "-b", "topic"}, wantProject: "backend", wantExtra: []string{"-b", "topic"}},
		{name: "two projects", args: []string{"a", "b"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				project string
				extra   []string
				err     error
			)
			cmd := &cobra.Command{
				Use: "test",
				RunE: func(cmd *cobra.Command, args []string) error {
					project, extra, err = splitArgs(cmd, args)
					return nil
				},
			}
			cmd.SetArgs(tt.args)
			if execErr := cmd.Execute(); execErr != nil {
				t.Fatalf("execute: %v", execErr)
			}

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if project != tt.wantProject {
				t.Errorf("project = %q, want %q", project, tt.wantProject)
			}
			if len(extra) != len(tt.wantExtra) {
				t.Fatalf("extra = %v, want %v", extra, tt.wantExtra)
			}
			for i := range extra {
				if extra[i] != tt.wantExtra[i] {
					t.Errorf("extra[%d] = %q, want %q", i, extra[i], tt.wantExtra[i])
				}
			}
		})
	}
}

func TestProjectArg(t *testing.T) {
	t.Parallel()

	if got := projectArg(nil); got != "" {
		t.Errorf("projectArg(nil) = %q, want empty", got)
	}
	if got := projectArg([]string{"backend"}); got != "backend" {
		t.Errorf("projectArg = %q, want backend", got)
	}
}
