package render

import (
	"errors"
	"testing"
)

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RenderMode
		wantErr bool
	}{
		{"wireframe", ModeWireframe, false},
		{"Flat", ModeFlat, false},
		{"TEXTURED", ModeTextured, false},
		{"gouraud", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRenderMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMode) {
					t.Errorf("err = %v, want ErrUnknownMode", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseRenderMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestRenderModeNext(t *testing.T) {
	m := ModeWireframe
	for _, want := range []RenderMode{ModeFlat, ModeTextured, ModeWireframe} {
		m = m.Next()
		if m != want {
			t.Errorf("Next() = %v, want %v", m, want)
		}
	}
}

func TestRenderModeText(t *testing.T) {
	var m RenderMode
	if err := m.UnmarshalText([]byte("textured")); err != nil || m != ModeTextured {
		t.Errorf("UnmarshalText = %v, %v", m, err)
	}
	b, _ := ModeFlat.MarshalText()
	if string(b) != "flat" {
		t.Errorf("MarshalText = %q", b)
	}
	if s := RenderMode(9).String(); s != "RenderMode(9)" {
		t.Errorf("String = %q", s)
	}
}
