package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommandIsRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "version" {
			return
		}
	}
	t.Error("Expected a 'version' subcommand on the root command")
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")

	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	cmd.Run(cmd, nil)

	if !strings.Contains(out.String(), "shiftcal version 1.2.3") {
		t.Errorf("Expected version output, got %q", out.String())
	}
}
