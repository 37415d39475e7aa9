package core

import (
	"sort"
	"strings"
)

// TasteProfile 是从库存归纳出的用户口味画像：
// accord 频次、常见香型、香型多样性。
// 它是解释文案与偏好洞察的数据源，不直接参与模型打分。
type TasteProfile struct {
	Size int

	// AccordCounts 是库存中各 accord（小写）的出现次数。
	AccordCounts map[string]int

	// ScentTypes 是库存中每瓶香水的香型（含重复）。
	ScentTypes []string

	// accordOrder 记录 accord 的首次出现顺序，频次相同时按此定序。
	accordOrder []string
}

// BuildTasteProfile 遍历库存构建口味画像。
func BuildTasteProfile(inventory []*Perfume) *TasteProfile {
	p := &TasteProfile{
		Size:         len(inventory),
		AccordCounts: make(map[string]int),
	}
	for _, perfume := range inventory {
		if perfume == nil {
			continue
		}
		for _, accord := range perfume.MainAccords {
			a := strings.ToLower(accord)
			if a == "" {
				continue
			}
			if _, seen := p.AccordCounts[a]; !seen {
				p.accordOrder = append(p.accordOrder, a)
			}
			p.AccordCounts[a]++
		}
		st := perfume.ScentType
		if st == "" {
			st = "Fresh"
		}
		p.ScentTypes = append(p.ScentTypes, st)
	}
	return p
}

// TopAccords 返回频次最高的 n 个 accord。
// 频次相同时按首次出现顺序定序，保证结果稳定。
func (p *TasteProfile) TopAccords(n int) []string {
	if p == nil || n <= 0 || len(p.accordOrder) == 0 {
		return nil
	}
	ordered := make([]string, len(p.accordOrder))
	copy(ordered, p.accordOrder)
	sort.SliceStable(ordered, func(i, j int) bool {
		return p.AccordCounts[ordered[i]] > p.AccordCounts[ordered[j]]
	})
	if n > len(ordered) {
		n = len(ordered)
	}
	return ordered[:n]
}

// DiversityScore 返回香型多样性：不同香型数 / 总数，库存为空时为 0。
func (p *TasteProfile) DiversityScore() float64 {
	if p == nil || len(p.ScentTypes) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(p.ScentTypes))
	for _, st := range p.ScentTypes {
		unique[st] = struct{}{}
	}
	return float64(len(unique)) / float64(len(p.ScentTypes))
}
