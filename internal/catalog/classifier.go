// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package catalog

import (
	"strings"

	"github.com/dwkim-lab/homepick/internal/models"
)

// TypeOther is the bucket for products no keyword rule matches.
// Selection never emits it.
const TypeOther = "기타"

// typeKeywords is one priority-ordered classifier entry.
type typeKeywords struct {
	productType string
	keywords    []string
}

// productTypeKeywords is matched top to bottom; the first type whose
// keyword list hits wins. Ordering is semantic: more specific types come
// before their supersets (워시타워 before 세탁기, 광파오븐전자레인지 before
// 전자레인지, 의류건조기 before 건조기).
var productTypeKeywords = []typeKeywords{
	{"TV", []string{"TV", "티비", "올레드", "OLED", "QNED", "나노셀", "울트라", "QLED"}},

	{"에어컨", []string{"에어컨", "AIR CONDITIONER", "휘센", "WHISEN", "CONDITIONER"}},
	{"CONDITIONER", []string{"CONDITIONER", "에어컨", "AIR CONDITIONER"}},

	{"워시타워", []string{"워시타워", "워시타", "WASHTOWER", "세탁+건조"}},
	{"워시콤보", []string{"워시콤보", "워시콤", "콤보", "WASHCOMBO"}},
	{"세탁기", []string{"세탁기", "트롬", "워시", "WASH", "통돌이"}},
	{"의류건조기", []string{"의류건조기", "건조의류"}},
	{"건조기", []string{"건조기", "DRY", "드라이", "건조"}},

	{"공기청정기", []string{"공기청정기", "공청", "에어케어", "AIR PURIFIER", "공기", "퓨리케어 360"}},
	{"제습기", []string{"제습기", "DEHUMIDIFIER", "제습"}},
	{"가습기", []string{"가습기", "HUMIDIFIER", "가습"}},

	{"안마의자", []string{"안마의자", "안마", "MASSAGE", "쇼파", "MASSAGE CHAIR"}},

	{"청소기", []string{"청소기", "코드제로", "CODEZERO", "로봇청소기", "로보킹", "로봇",
		"A5", "A7", "A9", "R5", "R9", "M9", "VACUUM"}},

	{"식기세척기", []string{"식기세척기", "식세기", "DISHWASHER", "DUE"}},
	{"와인셀러", []string{"와인셀러", "와인", "WINE", "WINE CELLAR"}},
	{"전기레인지", []string{"전기레인지", "인덕션", "레인지", "INDUCTION", "RANGE"}},
	{"정수기", []string{"정수기", "퓨리케어", "PURICARE", "정수", "WATER PURIFIER"}},
	{"맥주제조기", []string{"맥주제조기", "홈브루", "맥주", "BREW", "HOMEBREW"}},
	{"광파오븐전자레인지", []string{"광파오븐", "전자레인지", "레인지", "MICROWAVE", "큐커", "오븐레인지"}},
	{"전자레인지", []string{"전자레인지", "MICROWAVE", "큐커"}},
	{"오븐", []string{"오븐", "OVEN"}},
	{"김치냉장고", []string{"김치냉장고", "김치", "KIMCHI"}},
	{"냉장고", []string{"냉장고", "디오스", "DIOS", "컨버터블", "일반냉장고", "냉동고", "REFRIGERATOR"}},

	{"스타일러", []string{"스타일러", "STYLER", "스티머", "의류관리기"}},
	{"모니터", []string{"모니터", "MONITOR", "게이밍모니터"}},
}

// ProductType classifies a product by its name, falling back to
// bucket-conditioned heuristics. The second return is false when the
// product could not be classified.
func ProductType(p *models.Product) (string, bool) {
	if p == nil || p.Name == "" {
		return "", false
	}

	nameUpper := strings.ToUpper(p.Name)

	for _, entry := range productTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(nameUpper, strings.ToUpper(kw)) || strings.Contains(p.Name, kw) {
				return entry.productType, true
			}
		}
	}

	return fallbackType(nameUpper, p.Category)
}

// fallbackType resolves unclassified names by bucket.
func fallbackType(nameUpper, bucket string) (string, bool) {
	containsAny := func(kws ...string) bool {
		for _, kw := range kws {
			if strings.Contains(nameUpper, kw) {
				return true
			}
		}
		return false
	}

	switch bucket {
	case BucketTV:
		return "TV", true
	case BucketKitchen:
		switch {
		case containsAny("냉장고", "DIOS", "컨버터블"):
			return "냉장고", true
		case containsAny("식기", "DISH"):
			return "식기세척기", true
		case containsAny("정수", "PURI"):
			return "정수기", true
		case containsAny("오븐", "OVEN"):
			return "오븐", true
		case containsAny("레인지", "MICRO"):
			return "전자레인지", true
		}
	case BucketLiving:
		switch {
		case containsAny("세탁", "WASH", "트롬"):
			return "세탁기", true
		case containsAny("청소", "CODEZERO", "로봇"):
			return "청소기", true
		case containsAny("스타일러", "STYLER"):
			return "스타일러", true
		}
	case BucketAir:
		switch {
		case containsAny("공기청정", "AIR PURIFIER"):
			return "공기청정기", true
		case containsAny("제습", "DEHUMID"):
			return "제습기", true
		case containsAny("에어컨", "AIR CONDITIONER"):
			return "에어컨", true
		}
	}

	return "", false
}

// GroupByType groups products by their classified type. Unclassified
// products land under TypeOther.
func GroupByType(products []*models.Product) map[string][]*models.Product {
	grouped := make(map[string][]*models.Product)
	for _, p := range products {
		t, ok := ProductType(p)
		if !ok {
			t = TypeOther
		}
		grouped[t] = append(grouped[t], p)
	}
	return grouped
}
