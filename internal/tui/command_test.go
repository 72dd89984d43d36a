package tui

import (
	"testing"

	"github.com/matheus3301/hirechat/internal/chat"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		name  string
		args  []string
	}{
		{"quit", "quit", nil},
		{"q", "quit", nil},
		{"  VIEW messages ", "view", []string{"messages"}},
		{"view jobs open", "view", []string{"jobs", "open"}},
		{"open application 42 Jane Doe", "open", []string{"application", "42", "Jane", "Doe"}},
		{"qr", "share", nil},
		{"", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			if cmd.Name != tt.name {
				t.Errorf("Name = %q, want %q", cmd.Name, tt.name)
			}
			if len(cmd.Args) != len(tt.args) {
				t.Fatalf("Args = %q, want %q", cmd.Args, tt.args)
			}
			for i := range tt.args {
				if cmd.Args[i] != tt.args[i] {
					t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], tt.args[i])
				}
			}
		})
	}
}

func TestCommandArgHelpers(t *testing.T) {
	cmd := ParseCommand("open application 42 Jane Doe")
	if got := cmd.Arg(1); got != "42" {
		t.Errorf("Arg(1) = %q", got)
	}
	if got := cmd.Arg(9); got != "" {
		t.Errorf("Arg(9) = %q, want empty", got)
	}
	if got := cmd.Rest(2); got != "Jane Doe" {
		t.Errorf("Rest(2) = %q", got)
	}
	if got := cmd.Rest(7); got != "" {
		t.Errorf("Rest(7) = %q, want empty", got)
	}
}

func TestParseOpen(t *testing.T) {
	tests := []struct {
		input   string
		want    chat.Conversation
		title   string
		wantErr bool
	}{
		{"open application 42 Jane Doe", chat.Conversation{Channel: chat.Application, Key: "42"}, "Jane Doe", false},
		{"open direct-user 7", chat.Conversation{Channel: chat.DirectUser, Key: "7"}, "", false},
		{"open support Help desk", chat.Conversation{Channel: chat.Support}, "Help desk", false},
		{"open application", chat.Conversation{}, "", true},
		{"open group 1", chat.Conversation{}, "", true},
		{"open", chat.Conversation{}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			conv, title, err := parseOpen(ParseCommand(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if conv != tt.want || title != tt.title {
				t.Errorf("got %v %q, want %v %q", conv, title, tt.want, tt.title)
			}
		})
	}
}
