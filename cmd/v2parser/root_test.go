package main

import (
	"strings"
	"testing"

	"v2parser/internal/config"
)

func TestZeroPortFlagsDisableListeners(t *testing.T) {
	cmd := rootCmd
	t.Cleanup(func() {
		socksPort, httpPort = 0, 0
		cmd.Flags().Lookup("socksport").Changed = false
		cmd.Flags().Lookup("httpport").Changed = false
	})

	if err := cmd.ParseFlags([]string{"--socksport", "0", "--httpport", "8080"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	cfg := config.Default()
	cfg.Inbounds.SocksPort = 1080
	applyFlags(cmd, cfg)

	if p := cfg.SocksPort(); p != nil {
		t.Errorf("SocksPort() = %d, want no listener", *p)
	}
	if p := cfg.HTTPPort(); p == nil || *p != 8080 {
		t.Errorf("HTTPPort() = %v, want 8080", p)
	}

	for _, name := range []string{"socksport", "httpport"} {
		if usage := cmd.Flags().Lookup(name).Usage; !strings.Contains(usage, "0 means no") {
			t.Errorf("--%s help does not explain 0: %q", name, usage)
		}
	}
}
