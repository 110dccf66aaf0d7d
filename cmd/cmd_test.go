package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/ziadkadry99/aliverse/internal/config"
)

func newChartFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "chart"}
	addChartFlags(c.Flags())
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return c
}

func TestBirthFromFlagsOnlySetFields(t *testing.T) {
	c := newChartFlags(t, "--year", "1990", "--slot", "0", "--name", "小美")
	in, err := birthFromFlags(c)
	if err != nil {
		t.Fatal(err)
	}
	if in.Year == nil || *in.Year != 1990 {
		t.Errorf("year = %v", in.Year)
	}
	if in.HourSlot == nil || *in.HourSlot != 0 {
		t.Errorf("slot 0 must count as set, got %v", in.HourSlot)
	}
	if in.Month != nil || in.Day != nil {
		t.Error("unset flags must stay nil")
	}
	if in.Name != "小美" {
		t.Errorf("name = %q", in.Name)
	}
}

func TestBirthFromFlagsClock(t *testing.T) {
	c := newChartFlags(t, "--clock", "23")
	in, err := birthFromFlags(c)
	if err != nil {
		t.Fatal(err)
	}
	if in.HourSlot == nil || *in.HourSlot != 12 {
		t.Errorf("23:00 should be the late rat slot, got %v", in.HourSlot)
	}

	c = newChartFlags(t, "--clock", "5", "--slot", "3")
	if _, err := birthFromFlags(c); err == nil {
		t.Error("expected error for both --slot and --clock")
	}
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(config.LogWarn, false)
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("warn logger should drop info")
	}

	l, err = newLogger(config.LogWarn, true)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose should enable debug")
	}

	if _, err := newLogger("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}
