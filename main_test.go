package main

import (
	"testing"

	"github.com/gyokusei/nga-cli/infra/config"
)

func TestProxyFor(t *testing.T) {
	tests := []struct {
		name string
		set  config.Settings
		want string
	}{
		{name: "none", set: config.Settings{}, want: ""},
		{name: "http only", set: config.Settings{HTTPProxy: "http://h:1"}, want: "http://h:1"},
		{name: "https only", set: config.Settings{HTTPSProxy: "http://s:2"}, want: "http://s:2"},
		{
			name: "https wins",
			set:  config.Settings{HTTPProxy: "http://h:1", HTTPSProxy: "http://s:2"},
			want: "http://s:2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := proxyFor(tt.set); got != tt.want {
				t.Fatalf("proxyFor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_ShortensCommit(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() { version, commit, date = origVersion, origCommit, origDate }()

	version, commit, date = "1.2.3", "abcdef0123456789", "2026-01-01"
	if got := build(); got != "1.2.3 (abcdef0) 2026-01-01" {
		t.Fatalf("unexpected build string: %q", got)
	}
}
