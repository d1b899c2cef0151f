// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package catalog

import (
	"strings"
	"testing"

	"github.com/dwkim-lab/homepick/internal/models"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"832L", 832, true},
		{"21kg", 21, true},
		{"1,920", 1920, true},
		{"최대 120Hz", 120, true},
		{"4.5점", 4.5, true},
		{"", 0, false},
		{"없음", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		input      string
		wantWidth  int
		wantHeight int
	}{
		{"1,920 × 1,080", 1920, 1080},
		{"3840 x 2160", 3840, 2160},
		{"4K", 4, 0},
		{"", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w, h := ParseResolution(tt.input)
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("ParseResolution(%q) = (%d,%d), want (%d,%d)",
					tt.input, w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestParseWatts(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"150W", 150},
		{"최대 85.5 W", 85.5},
		{"200", 200},
	}

	for _, tt := range tests {
		got, ok := ParseWatts(tt.input)
		if !ok {
			t.Fatalf("ParseWatts(%q) not ok", tt.input)
		}
		if got != tt.want {
			t.Errorf("ParseWatts(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCapacity(t *testing.T) {
	p := &models.Product{Specs: map[string]string{"총 용량": "832L"}}
	got, ok := Capacity(p)
	if !ok || got != 832 {
		t.Errorf("Capacity() = (%v,%v), want (832,true)", got, ok)
	}

	empty := &models.Product{}
	if _, ok := Capacity(empty); ok {
		t.Error("Capacity() on empty specs should not be ok")
	}
}

func TestSizeCM(t *testing.T) {
	tests := []struct {
		name  string
		specs map[string]string
		want  float64
	}{
		{"centimeters", map[string]string{"크기": "120cm"}, 120},
		{"inches converted", map[string]string{"패널 크기": "65인치"}, 65 * 2.54},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Product{Specs: tt.specs}
			got, ok := SizeCM(p)
			if !ok {
				t.Fatal("SizeCM() not ok")
			}
			if got != tt.want {
				t.Errorf("SizeCM() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnergyGrade(t *testing.T) {
	tests := []struct {
		name   string
		specs  map[string]string
		want   int
		wantOK bool
	}{
		{"grade with suffix", map[string]string{"에너지등급": "1등급"}, 1, true},
		{"alternate key", map[string]string{"에너지 효율 등급": "3"}, 3, true},
		{"missing", map[string]string{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Product{Specs: tt.specs}
			got, ok := EnergyGrade(p)
			if ok != tt.wantOK {
				t.Fatalf("EnergyGrade() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("EnergyGrade() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDepthMM(t *testing.T) {
	p := &models.Product{Specs: map[string]string{"깊이": "600mm"}}
	got, ok := DepthMM(p)
	if !ok || got != 600 {
		t.Errorf("DepthMM() = (%v,%v), want (600,true)", got, ok)
	}
}

func TestSpecText(t *testing.T) {
	p := &models.Product{Specs: map[string]string{"기능": "펫케어 모드"}}
	text := SpecText(p)
	if text == "" {
		t.Fatal("SpecText() empty")
	}
	if want := "펫케어"; !strings.Contains(text, want) {
		t.Errorf("SpecText() missing %q: %s", want, text)
	}
}
