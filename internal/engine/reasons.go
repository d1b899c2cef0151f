// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dwkim-lab/homepick/internal/catalog"
	"github.com/dwkim-lab/homepick/internal/models"
)

var priorityLabels = map[string]string{
	"design": "디자인",
	"tech":   "기술 사양",
	"eco":    "에너지 효율",
	"value":  "가성비",
}

var housingLabels = map[string]string{
	"studio":    "원룸",
	"apartment": "아파트",
	"detached":  "단독주택",
	"villa":     "빌라/연립",
	"officetel": "오피스텔",
}

var vibeLabels = map[string]string{
	"modern": "모던한",
	"cozy":   "따뜻한",
	"luxury": "럭셔리한",
	"pop":    "트렌디한",
}

var vibeDesignLabels = map[string]string{
	"modern": "모던하고 미니멀한",
	"cozy":   "따뜻하고 아늑한",
	"luxury": "럭셔리하고 고급스러운",
	"pop":    "트렌디하고 생기 있는",
}

// weightedReason builds the one-line justification of the weighted path
// from the final score, the lead priority and any meaningful discount.
func weightedReason(p *models.Product, profile *models.UserProfile, score float64) string {
	var parts []string

	switch {
	case score >= 0.8:
		label := "개인맞춤"
		if len(profile.Priority) > 0 {
			if l, ok := priorityLabels[strings.ToLower(profile.Priority[0])]; ok {
				label = l
			}
		}
		parts = append(parts, fmt.Sprintf("당신의 선호도(%s)에 가장 잘 맞는 제품입니다.", label))
	case score >= 0.6:
		parts = append(parts, "우수한 성능과 가성비를 갖춘 제품입니다.")
	default:
		parts = append(parts, "조건에 맞는 추천 제품입니다.")
	}

	if p.DiscountPrice > 0 && p.Price > 0 {
		pct := float64(p.Price-p.DiscountPrice) / float64(p.Price) * 100
		if pct > 10 {
			parts = append(parts, fmt.Sprintf("%d%% 할인 중입니다.", int(pct)))
		}
	}

	return strings.Join(parts, " ")
}

// ProfileSummary renders the household one-liner shown atop the playbook
// response.
func ProfileSummary(profile *models.UserProfile) string {
	housing := housingLabels[profile.HousingType]
	if housing == "" {
		housing = "아파트"
	}
	vibe := vibeLabels[strings.ToLower(profile.Vibe)]
	if vibe == "" {
		vibe = "모던한"
	}
	household := profile.HouseholdSize
	if household <= 0 {
		household = 2
	}
	pyung := profile.Pyung
	if pyung <= 0 {
		pyung = 25
	}
	return fmt.Sprintf("%d인 가족이 %s %d평에 살며 %s 인테리어 스타일을 선호합니다.",
		household, housing, pyung, vibe)
}

// explain assembles the per-item message block of the playbook response
// from the score breakdown and the profile.
func explain(p *models.Product, breakdown models.ScoreBreakdown, profile *models.UserProfile) *models.Explanation {
	return &models.Explanation{
		WhySummary:       whySummary(p, breakdown, profile),
		LifestyleMessage: lifestyleMessage(p, profile),
		DesignMessage:    designMessage(p, profile),
		ReviewHighlight:  reviewHighlight(p, breakdown.ReviewScore),
	}
}

// whySummary names the two strongest score components and ties them to the
// profile.
func whySummary(p *models.Product, breakdown models.ScoreBreakdown, profile *models.UserProfile) string {
	type component struct {
		name  string
		score float64
	}
	components := []component{
		{"spec", breakdown.SpecScore},
		{"preference", breakdown.PreferenceScore},
		{"lifestyle", breakdown.LifestyleScore},
		{"review", breakdown.ReviewScore},
		{"price", breakdown.PriceScore},
	}
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].score > components[j].score
	})

	household := profile.HouseholdSize
	if household <= 0 {
		household = 2
	}
	bucket := catalog.Bucket(p.MainCategory)

	var parts []string
	for _, c := range components[:2] {
		if c.score <= 0 {
			continue
		}
		switch {
		case c.name == "spec" && c.score >= 15:
			switch {
			case bucket == catalog.BucketKitchen || strings.Contains(p.Name, "냉장고"):
				parts = append(parts, fmt.Sprintf("%d인 가족 구성에 맞는 적정 용량", household))
			case bucket == catalog.BucketTV:
				parts = append(parts, "선명한 화질과 적정 크기")
			default:
				parts = append(parts, "적합한 스펙")
			}
		case c.name == "preference" && c.score >= 10:
			label := "선호사항"
			if len(profile.Priority) > 0 {
				if l, ok := priorityLabels[strings.ToLower(profile.Priority[0])]; ok {
					label = l
				}
			}
			parts = append(parts, fmt.Sprintf("'%s' 우선순위 반영", label))
		case c.name == "lifestyle" && c.score >= 5:
			if profile.Cooking == "high" || profile.Cooking == "often" {
				parts = append(parts, "요리 빈도가 높은 라이프스타일에 맞춤")
			}
		case c.name == "review" && c.score >= 5:
			parts = append(parts, "실제 구매자들의 긍정적 평가")
		case c.name == "price" && c.score >= 5:
			parts = append(parts, "예산 범위 내 합리적 가격")
		}
	}

	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d인 가족 구성에 적합한", household))
	}
	return fmt.Sprintf("%s을 갖춘 %s", strings.Join(parts, " "), p.Name)
}

func lifestyleMessage(p *models.Product, profile *models.UserProfile) string {
	household := profile.HouseholdSize
	if household <= 0 {
		household = 2
	}
	nameUpper := strings.ToUpper(p.Name)
	bucket := catalog.Bucket(p.MainCategory)

	switch {
	case strings.Contains(p.Name, "냉장고") || bucket == catalog.BucketKitchen:
		if profile.Cooking == "high" || profile.Cooking == "often" {
			return "요리를 자주 하시는 당신을 위해, 넉넉한 용량으로 식자재를 편리하게 보관할 수 있습니다."
		}
		return fmt.Sprintf("%d인 가족의 식자재를 충분히 보관할 수 있는 용량입니다.", household)

	case strings.Contains(p.Name, "세탁기") || strings.Contains(nameUpper, "워시"):
		switch profile.Laundry {
		case "daily":
			return "매일 조금씩 세탁하는 패턴에 맞춰, 효율적으로 세탁할 수 있습니다."
		case "few_times":
			return fmt.Sprintf("일주일 2~3번 정도의 세탁 패턴에 맞춘 용량으로, %d인 가족의 세탁량을 처리할 수 있습니다.", household)
		default:
			return fmt.Sprintf("%d인 가족의 세탁량에 적합한 용량입니다.", household)
		}

	case strings.Contains(nameUpper, "TV") || bucket == catalog.BucketTV:
		switch profile.Media {
		case "gaming":
			return "게임을 즐기시는 취향에 맞춰, 높은 주사율과 빠른 응답 속도를 제공합니다."
		case "ott":
			return "영화와 드라마 감상을 위해, 선명한 화질과 몰입감 있는 사운드를 제공합니다."
		case "none":
			return "TV 사용이 적더라도, 필요할 때 선명한 화질을 즐길 수 있습니다."
		default:
			return fmt.Sprintf("%d인 가족이 함께 시청하기에 적합한 크기입니다.", household)
		}
	}

	return "당신의 라이프스타일에 맞춘 제품입니다."
}

func designMessage(p *models.Product, profile *models.UserProfile) string {
	desc := vibeDesignLabels[strings.ToLower(profile.Vibe)]
	if desc == "" {
		desc = "세련된"
	}
	nameUpper := strings.ToUpper(p.Name)

	switch {
	case strings.Contains(nameUpper, "OBJET") || strings.Contains(p.Name, "오브제"):
		return fmt.Sprintf("%s 디자인의 OBJET 컬렉션으로, 인테리어 포인트가 되어줄 거예요. 깔끔하고 세련된 공간 연출에 도움이 됩니다.", desc)
	case strings.Contains(nameUpper, "SIGNATURE") || strings.Contains(p.Name, "시그니처"):
		return fmt.Sprintf("프리미엄 %s 디자인으로, 특별한 공간을 완성해줍니다. 고급스러운 마감과 세련된 디테일이 돋보입니다.", desc)
	default:
		return fmt.Sprintf("%s 디자인으로 어떤 공간에도 잘 어울립니다. 실용적이면서도 스타일리시한 외관을 갖추고 있어요.", desc)
	}
}

func reviewHighlight(p *models.Product, reviewScore float64) string {
	if p.ReviewCount == 0 {
		return "아직 리뷰가 없어요."
	}
	if p.ReviewRating == 0 {
		if p.ReviewCount >= 100 {
			return fmt.Sprintf("%d개 이상의 리뷰가 있습니다.", p.ReviewCount)
		}
		return fmt.Sprintf("%d개의 리뷰가 있습니다.", p.ReviewCount)
	}

	switch {
	case reviewScore >= 8:
		return fmt.Sprintf("별점 %.1f점, %d개 이상의 리뷰에서 높은 만족도를 보여줍니다. 소음, 수납력, 디자인에 대한 긍정적 피드백이 많습니다.",
			p.ReviewRating, p.ReviewCount)
	case reviewScore >= 5:
		return fmt.Sprintf("별점 %.1f점, %d개 이상의 리뷰에서 긍정적 평가를 받았습니다. 실용성과 성능에 대한 좋은 반응이 많습니다.",
			p.ReviewRating, p.ReviewCount)
	case reviewScore >= 3:
		return fmt.Sprintf("별점 %.1f점, %d개의 리뷰에서 만족도가 확인되었습니다.", p.ReviewRating, p.ReviewCount)
	default:
		return fmt.Sprintf("%d개의 리뷰가 있습니다.", p.ReviewCount)
	}
}
