// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

// Package catalog maps raw catalog rows onto the coarse buckets and
// fine-grained product types the recommendation pipeline works with.
package catalog

import "sort"

// Bucket labels.
const (
	BucketTV        = "TV"
	BucketKitchen   = "KITCHEN"
	BucketLiving    = "LIVING"
	BucketAir       = "AIR"
	BucketAI        = "AI"
	BucketObjet     = "OBJET"
	BucketSignature = "SIGNATURE"
)

// mainCategoryToBucket maps upstream MAIN_CATEGORY values to buckets.
var mainCategoryToBucket = map[string]string{
	"TV":        BucketTV,
	"오디오":       BucketTV,
	"사운드바":      BucketTV,
	"프로젝터":      BucketTV,
	"스탠바이미":     BucketTV,
	"상업용 디스플레이": BucketTV,

	"냉장고":       BucketKitchen,
	"김치냉장고":     BucketKitchen,
	"전기레인지":     BucketKitchen,
	"식기세척기":     BucketKitchen,
	"오븐":        BucketKitchen,
	"인덕션":       BucketKitchen,
	"전자레인지":     BucketKitchen,
	"광파오븐전자레인지": BucketKitchen,
	"컨버터블 패키":   BucketKitchen,
	"맥주제조기":     BucketKitchen,
	"와인셀러":      BucketKitchen,

	"세탁":     BucketLiving,
	"세탁기":    BucketLiving,
	"건조기":    BucketLiving,
	"청소기":    BucketLiving,
	"의류관리기":  BucketLiving,
	"정수기":    BucketLiving,
	"가습기":    BucketLiving,
	"제습기":    BucketLiving,
	"공기청정기":  BucketLiving,
	"식물생활가전": BucketLiving,
	"신발관리":   BucketLiving,
	"안마의자":   BucketLiving,

	"에어컨":     BucketAir,
	"시스템 에어컨": BucketAir,
	"환기 시스템":  BucketAir,

	"AIHome":    BucketAI,
	"OBJET":     BucketObjet,
	"SIGNATURE": BucketSignature,
}

// bucketToMainCategories is the reverse mapping.
var bucketToMainCategories = map[string][]string{
	BucketTV: {"TV", "오디오", "사운드바", "프로젝터", "스탠바이미", "상업용 디스플레이"},
	BucketKitchen: {"냉장고", "김치냉장고", "전기레인지", "식기세척기", "오븐", "인덕션",
		"전자레인지", "광파오븐전자레인지", "컨버터블 패키", "맥주제조기", "와인셀러"},
	BucketLiving: {"세탁", "세탁기", "건조기", "청소기", "의류관리기", "정수기", "가습기",
		"제습기", "공기청정기", "식물생활가전", "신발관리", "안마의자"},
	BucketAir:       {"에어컨", "시스템 에어컨", "환기 시스템"},
	BucketAI:        {"AIHome"},
	BucketObjet:     {"OBJET"},
	BucketSignature: {"SIGNATURE"},
}

// Bucket returns the bucket for an upstream MAIN_CATEGORY value.
// Unknown categories default to LIVING.
func Bucket(mainCategory string) string {
	if b, ok := mainCategoryToBucket[mainCategory]; ok {
		return b
	}
	return BucketLiving
}

// BucketsFor maps a list of MAIN_CATEGORY values to a deduplicated bucket
// list, preserving first-seen order.
func BucketsFor(mainCategories []string) []string {
	seen := make(map[string]struct{}, len(mainCategories))
	out := make([]string, 0, len(mainCategories))
	for _, mc := range mainCategories {
		b := Bucket(mc)
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}

// MainCategoriesFor returns the upstream categories belonging to a bucket.
func MainCategoriesFor(bucket string) []string {
	return bucketToMainCategories[bucket]
}

// AllMainCategories returns every known MAIN_CATEGORY value in sorted order.
func AllMainCategories() []string {
	out := make([]string, 0, len(mainCategoryToBucket))
	for mc := range mainCategoryToBucket {
		out = append(out, mc)
	}
	sort.Strings(out)
	return out
}

// bucketDisplay holds the Korean display labels for buckets.
var bucketDisplay = map[string]string{
	BucketTV:        "TV/오디오",
	BucketKitchen:   "주방가전",
	BucketLiving:    "생활가전",
	BucketAir:       "에어컨/에어케어",
	BucketAI:        "AI Home",
	BucketObjet:     "LG Objet",
	BucketSignature: "LG SIGNATURE",
}

// DisplayName returns the Korean display label for a bucket, falling back
// to the bucket key itself.
func DisplayName(bucket string) string {
	if d, ok := bucketDisplay[bucket]; ok {
		return d
	}
	return bucket
}

// IsBucket reports whether the label is a known bucket.
func IsBucket(label string) bool {
	_, ok := bucketToMainCategories[label]
	return ok
}
