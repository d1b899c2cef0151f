// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dwkim-lab/homepick/internal/models"
)

// Spec values arrive as free-form Korean strings ("832L", "1,920 × 1,080",
// "21kg", "최대 120Hz"). Parsing is lenient: the first number wins and
// anything unparseable reports !ok so callers can fail open.

var (
	numberRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	integerRe = regexp.MustCompile(`\d+`)
	wattRe    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*W`)
)

// ParseNumber extracts the first number from a spec value.
func ParseNumber(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	m := numberRe.FindString(strings.ReplaceAll(value, ",", ""))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseResolution extracts (width, height) from a resolution value like
// "1,920 × 1,080". A single number yields (n, 0).
func ParseResolution(value string) (width, height int) {
	nums := integerRe.FindAllString(strings.ReplaceAll(value, ",", ""), 2)
	if len(nums) >= 1 {
		width, _ = strconv.Atoi(nums[0])
	}
	if len(nums) >= 2 {
		height, _ = strconv.Atoi(nums[1])
	}
	return width, height
}

// ParseWatts extracts a power draw in watts, preferring an explicit "W"
// suffix over the first bare number.
func ParseWatts(value string) (float64, bool) {
	if m := wattRe.FindStringSubmatch(value); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return f, true
		}
	}
	return ParseNumber(value)
}

// Capacity extracts a capacity figure (liters or kilograms depending on
// the product) from the usual spec keys.
func Capacity(p *models.Product) (float64, bool) {
	v, ok := p.Spec("용량", "총 용량", "세탁 용량", "냉장실 용량", "냉동실 용량")
	if !ok {
		return 0, false
	}
	return ParseNumber(v)
}

// Size extracts a physical or panel size (inches or centimeters).
func Size(p *models.Product) (float64, bool) {
	v, ok := p.Spec("패널 크기", "크기", "화면 크기")
	if !ok {
		return 0, false
	}
	return ParseNumber(v)
}

// SizeCM extracts a size normalized to centimeters; inch-denominated values
// are converted.
func SizeCM(p *models.Product) (float64, bool) {
	v, ok := p.Spec("패널 크기", "크기", "화면 크기")
	if !ok {
		return 0, false
	}
	n, ok := ParseNumber(v)
	if !ok {
		return 0, false
	}
	lower := strings.ToLower(v)
	if strings.Contains(v, "인치") || strings.Contains(v, `"`) || strings.Contains(lower, "inch") {
		n *= 2.54
	}
	return n, true
}

// DepthMM extracts the depth in millimeters.
func DepthMM(p *models.Product) (float64, bool) {
	v, ok := p.Spec("깊이", "깊이(mm)")
	if !ok {
		return 0, false
	}
	return ParseNumber(v)
}

// EnergyGrade extracts the Korean energy-efficiency grade (1 is best).
func EnergyGrade(p *models.Product) (int, bool) {
	v, ok := p.Spec("에너지등급", "에너지 효율 등급")
	if !ok {
		return 0, false
	}
	m := integerRe.FindString(v)
	if m == "" {
		return 0, false
	}
	g, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return g, true
}

// SpecText flattens the spec map into one uppercase string for keyword
// scans (pet features, capacity hints).
func SpecText(p *models.Product) string {
	if len(p.Specs) == 0 {
		return ""
	}
	var b strings.Builder
	for k, v := range p.Specs {
		b.WriteString(k)
		b.WriteByte(' ')
		b.WriteString(v)
		b.WriteByte(' ')
	}
	return strings.ToUpper(b.String())
}
