package app

import (
	"flag"
	"testing"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("life", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-resolution", "256", "-kernel", "fft", "-workers", "3", "-turbo", "-seed", "7"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	sc := cfg.SimConfig()
	if sc.Resolution != 256 || sc.Kernel != "fft" || !sc.MaxSpeed || sc.Seed != 7 {
		t.Fatalf("unexpected sim config %+v", sc)
	}
	if sc.KernelConfig["workers"] != "3" {
		t.Fatalf("workers = %q", sc.KernelConfig["workers"])
	}
}

func TestSimConfigAspect(t *testing.T) {
	cfg := NewConfig()
	cfg.WindowW, cfg.WindowH, cfg.HUDWidth = 1000, 400, 200
	if got := cfg.SimConfig().Aspect; got != 2 {
		t.Fatalf("aspect = %v, expected 2", got)
	}
	cfg.Aspect = 1.5
	if got := cfg.SimConfig().Aspect; got != 1.5 {
		t.Fatalf("explicit aspect = %v", got)
	}
	cfg = NewConfig()
	if cfg.SimConfig().KernelConfig != nil {
		t.Fatalf("default workers should leave the kernel config empty")
	}
}
