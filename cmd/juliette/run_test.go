package main

import (
	"flag"
	"strings"
	"testing"

	"github.com/urfave/cli"

	"juliette/config"
)

func contextWith(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("run", flag.ContinueOnError)
	for _, f := range runFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cli.NewContext(nil, set, nil)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := configFromContext(contextWith(t))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := config.Default(config.Viewer)
	if cfg != want {
		t.Errorf("expected the viewer preset unchanged, got %+v", cfg)
	}
}

func TestConfigOverrides(t *testing.T) {
	cfg, err := configFromContext(contextWith(t,
		"--variant", "physics",
		"--objects", "12",
		"--seed", "7",
		"--fov", "60",
		"--no-debug-draw",
		"--bench", "--bench-duration", "2.5",
	))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != config.Physics || cfg.ObjectCount != 12 || cfg.Seed != 7 || cfg.FieldOfView != 60 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.DebugDrawEnabled {
		t.Error("--no-debug-draw should disable the preset's debug drawing")
	}
	if !cfg.BenchmarkEnabled || cfg.BenchDurationSeconds != 2.5 {
		t.Errorf("expected a 2.5s benchmark, got %v/%v", cfg.BenchmarkEnabled, cfg.BenchDurationSeconds)
	}
	if cfg.SpawnBounds != 20 {
		t.Errorf("unset flags should keep the preset, got bounds %v", cfg.SpawnBounds)
	}
}

func TestConfigRejectsInvalid(t *testing.T) {
	if _, err := configFromContext(contextWith(t, "--variant", "editor")); err == nil {
		t.Error("expected an unknown variant to fail")
	}
	if _, err := configFromContext(contextWith(t, "--fov", "200")); err == nil {
		t.Error("expected an out of range field of view to fail")
	}
}

func TestVariantTable(t *testing.T) {
	out := variantTable()
	for _, v := range config.Variants() {
		if !strings.Contains(out, string(v)) {
			t.Errorf("table is missing %s:\n%s", v, out)
		}
	}
	if !strings.Contains(out, "Randomized bodies in a walled box") {
		t.Errorf("expected capitalized descriptions:\n%s", out)
	}
}
