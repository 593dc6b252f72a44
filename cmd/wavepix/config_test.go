package main

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want color.RGBA
		bad  bool
	}{
		{in: "ff0080", want: color.RGBA{R: 0xff, B: 0x80, A: 0xff}},
		{in: "#32dcaa", want: color.RGBA{R: 0x32, G: 0xdc, B: 0xaa, A: 0xff}},
		{in: "fff", bad: true},
		{in: "gghhii", bad: true},
		{in: "ff0080aa", bad: true},
	} {
		got, err := parseColor(tc.in)

		if tc.bad {
			if err == nil {
				t.Errorf("parseColor(%q) accepted", tc.in)
			}
			continue
		}

		if err != nil {
			t.Errorf("parseColor(%q): %v", tc.in, err)
			continue
		}

		if got != tc.want {
			t.Errorf("parseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBuildRejectsBadColor(t *testing.T) {
	cfg := newZeroConfig()
	cfg.foreground = "xyz"

	if _, err := cfg.build(); err == nil {
		t.Error("bad foreground color accepted")
	}
}

func TestBuildDefaults(t *testing.T) {
	cfg := newZeroConfig()

	out, err := cfg.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if out.SampleRate != 44100 || out.SampleSize != 1024 {
		t.Errorf("defaults = %v/%d, want 44100/1024",
			out.SampleRate, out.SampleSize)
	}
}
