// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package catalog

import (
	"testing"

	"github.com/dwkim-lab/homepick/internal/models"
)

func TestProductType(t *testing.T) {
	tests := []struct {
		name     string
		product  models.Product
		want     string
		wantOK   bool
	}{
		{
			name:    "OLED TV by keyword",
			product: models.Product{Name: "LG 올레드 evo 65형", Category: BucketTV},
			want:    "TV",
			wantOK:  true,
		},
		{
			name:    "washtower beats washer",
			product: models.Product{Name: "LG 트롬 워시타워", Category: BucketLiving},
			want:    "워시타워",
			wantOK:  true,
		},
		{
			name:    "plain washer",
			product: models.Product{Name: "LG 트롬 세탁기 21kg", Category: BucketLiving},
			want:    "세탁기",
			wantOK:  true,
		},
		{
			name:    "dryer",
			product: models.Product{Name: "LG 의류건조기 21kg", Category: BucketLiving},
			want:    "의류건조기",
			wantOK:  true,
		},
		{
			name:    "vacuum by model token",
			product: models.Product{Name: "코드제로 A9S", Category: BucketLiving},
			want:    "청소기",
			wantOK:  true,
		},
		{
			name:    "kimchi fridge before fridge",
			product: models.Product{Name: "디오스 김치톡톡 김치냉장고", Category: BucketKitchen},
			want:    "김치냉장고",
			wantOK:  true,
		},
		{
			name:    "air conditioner korean brand word",
			product: models.Product{Name: "휘센 타워 2in1", Category: BucketAir},
			want:    "에어컨",
			wantOK:  true,
		},
		{
			name:    "styler",
			product: models.Product{Name: "스타일러 오브제컬렉션", Category: BucketLiving},
			want:    "스타일러",
			wantOK:  true,
		},
		{
			name:    "case-insensitive english keyword",
			product: models.Product{Name: "CordZero A9S", Category: BucketLiving},
			want:    "청소기",
			wantOK:  true,
		},
		{
			name:    "TV bucket fallback",
			product: models.Product{Name: "시네빔 레이저", Category: BucketTV},
			want:    "TV",
			wantOK:  true,
		},
		{
			name:    "fridge by brand keyword",
			product: models.Product{Name: "디오스 매직스페이스", Category: BucketKitchen},
			want:    "냉장고",
			wantOK:  true,
		},
		{
			name:    "kitchen bucket fallback",
			product: models.Product{Name: "식기 스팀 세척", Category: BucketKitchen},
			want:    "식기세척기",
			wantOK:  true,
		},
		{
			name:    "unclassifiable",
			product: models.Product{Name: "틔운 미니", Category: BucketLiving},
			want:    "",
			wantOK:  false,
		},
		{
			name:    "empty name",
			product: models.Product{Name: ""},
			want:    "",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ProductType(&tt.product)
			if ok != tt.wantOK {
				t.Fatalf("ProductType() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ProductType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProductTypeNil(t *testing.T) {
	if _, ok := ProductType(nil); ok {
		t.Error("ProductType(nil) should not classify")
	}
}

func TestGroupByType(t *testing.T) {
	products := []*models.Product{
		{Name: "LG 올레드 TV", Category: BucketTV},
		{Name: "LG 올레드 evo", Category: BucketTV},
		{Name: "틔운 미니", Category: BucketLiving},
	}

	grouped := GroupByType(products)

	if len(grouped["TV"]) != 2 {
		t.Errorf("TV group size = %d, want 2", len(grouped["TV"]))
	}
	if len(grouped[TypeOther]) != 1 {
		t.Errorf("%s group size = %d, want 1", TypeOther, len(grouped[TypeOther]))
	}
}

func TestClassifierOrderIsStable(t *testing.T) {
	// The same name must always classify identically.
	p := &models.Product{Name: "트롬 워시타워 컴팩트", Category: BucketLiving}
	first, _ := ProductType(p)
	for i := 0; i < 100; i++ {
		got, _ := ProductType(p)
		if got != first {
			t.Fatalf("classification changed between runs: %q then %q", first, got)
		}
	}
}
