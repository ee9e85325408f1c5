package core

import (
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		hex     string
		want    RGB
		wantErr bool
	}{
		{"#FF0000", RGB{255, 0, 0}, false},
		{"ff0000", RGB{255, 0, 0}, false},
		{"#00FF00", RGB{0, 255, 0}, false},
		{"#abc", RGB{170, 187, 204}, false},
		{"#000000", RGB{0, 0, 0}, false},
		{"invalid", RGB{}, true},
		{"#GG0000", RGB{}, true},
		{"#12345", RGB{}, true},
	}

	for _, tt := range tests {
		c, err := ParseHex(tt.hex)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error", tt.hex)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): unexpected error: %v", tt.hex, err)
			continue
		}
		if c != tt.want {
			t.Errorf("ParseHex(%q): expected %v, got %v", tt.hex, tt.want, c)
		}
	}
}

func TestRGBArithmetic(t *testing.T) {
	c := NewRGB(10, 20, 30)

	if got := c.Add(NewRGB(1, 2, 3)); got != NewRGB(11, 22, 33) {
		t.Errorf("Add: got %v", got)
	}
	if got := c.Offset(127); got != NewRGB(137, 147, 157) {
		t.Errorf("Offset: got %v", got)
	}
	if got := c.Scale(0.5); got != NewRGB(5, 10, 15) {
		t.Errorf("Scale: got %v", got)
	}
	if got := NewRGB(7, 7, 7).Scale(0.5); got != NewRGB(3, 3, 3) {
		t.Errorf("Scale should truncate, got %v", got)
	}
	if got := c.ScaleChannels(1, 2, 0); got != NewRGB(10, 40, 0) {
		t.Errorf("ScaleChannels: got %v", got)
	}
}

func TestRGBNotClamped(t *testing.T) {
	c := NewRGB(200, 200, 200).Scale(2)
	if c.R != 400 {
		t.Errorf("arithmetic must not clamp, got %v", c)
	}
	if c.InGamut() {
		t.Error("expected out of gamut")
	}
	if got := c.Clamp(); got != White {
		t.Errorf("Clamp: expected white, got %v", got)
	}
	if got := NewRGB(-5, 300, 12).Clamp(); got != NewRGB(0, 255, 12) {
		t.Errorf("Clamp: got %v", got)
	}
}

func TestRGBHex(t *testing.T) {
	if h := NewRGB(255, 128, 1).Hex(); h != "#ff8001" {
		t.Errorf("expected #ff8001, got %s", h)
	}
}

func TestStyle(t *testing.T) {
	s := NewStyle(NewRGB(100, 100, 100), NewRGB(50, 50, 50))

	scaled := s.Scale(2, 0.5)
	if scaled.Fore != NewRGB(200, 200, 200) || scaled.Back != NewRGB(25, 25, 25) {
		t.Errorf("Scale: got %v", scaled)
	}

	added := s.Add(NewRGB(1, 1, 1), NewRGB(2, 2, 2))
	if added.Fore != NewRGB(101, 101, 101) || added.Back != NewRGB(52, 52, 52) {
		t.Errorf("Add: got %v", added)
	}

	inv := s.Invert()
	if inv.Fore != s.Back || inv.Back != s.Fore {
		t.Errorf("Invert: got %v", inv)
	}

	if !s.Equals(NewStyle(NewRGB(100, 100, 100), NewRGB(50, 50, 50))) {
		t.Error("identical styles should be equal")
	}
	if s.Equals(inv) {
		t.Error("inverted style should differ")
	}
}
