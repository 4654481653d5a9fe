package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PageCondition grades the state of the pages.
type PageCondition string

const (
	PagePristine       PageCondition = "pristine"
	PageMinorYellowing PageCondition = "minor-yellowing"
	PageYellowed       PageCondition = "yellowed"
	PageDamaged        PageCondition = "damaged"
)

// BindingCondition grades the spine and binding.
type BindingCondition string

const (
	BindingPerfect BindingCondition = "perfect"
	BindingTight   BindingCondition = "tight"
	BindingLoose   BindingCondition = "loose"
	BindingBroken  BindingCondition = "broken"
)

// CoverCondition grades the cover.
type CoverCondition string

const (
	CoverLikeNew   CoverCondition = "like-new"
	CoverMinorWear CoverCondition = "minor-wear"
	CoverWorn      CoverCondition = "worn"
	CoverDamaged   CoverCondition = "damaged"
)

// Markings grades highlighting and handwriting inside the book.
type Markings string

const (
	MarkingsNone     Markings = "none"
	MarkingsMinimal  Markings = "minimal"
	MarkingsModerate Markings = "moderate"
	MarkingsHeavy    Markings = "heavy"
)

// Damage grades overall physical damage (water, tears, missing pages).
type Damage string

const (
	DamageNone     Damage = "none"
	DamageMinor    Damage = "minor"
	DamageModerate Damage = "moderate"
	DamageSevere   Damage = "severe"
)

// Tier is the coarse overall condition the customer picks. It is recorded with the
// request for the admin's reference and does not affect the price.
type Tier string

const (
	TierLikeNew Tier = "like-new"
	TierGood    Tier = "good"
	TierFair    Tier = "fair"
	TierPoor    Tier = "poor"
)

var (
	pageDeductions = map[PageCondition]decimal.Decimal{
		PagePristine:       decimal.Zero,
		PageMinorYellowing: decimal.RequireFromString("0.05"),
		PageYellowed:       decimal.RequireFromString("0.10"),
		PageDamaged:        decimal.RequireFromString("0.15"),
	}
	bindingDeductions = map[BindingCondition]decimal.Decimal{
		BindingPerfect: decimal.Zero,
		BindingTight:   decimal.RequireFromString("0.02"),
		BindingLoose:   decimal.RequireFromString("0.08"),
		BindingBroken:  decimal.RequireFromString("0.15"),
	}
	coverDeductions = map[CoverCondition]decimal.Decimal{
		CoverLikeNew:   decimal.Zero,
		CoverMinorWear: decimal.RequireFromString("0.05"),
		CoverWorn:      decimal.RequireFromString("0.10"),
		CoverDamaged:   decimal.RequireFromString("0.15"),
	}
	markingsDeductions = map[Markings]decimal.Decimal{
		MarkingsNone:     decimal.Zero,
		MarkingsMinimal:  decimal.RequireFromString("0.05"),
		MarkingsModerate: decimal.RequireFromString("0.10"),
		MarkingsHeavy:    decimal.RequireFromString("0.20"),
	}
	damageDeductions = map[Damage]decimal.Decimal{
		DamageNone:     decimal.Zero,
		DamageMinor:    decimal.RequireFromString("0.08"),
		DamageModerate: decimal.RequireFromString("0.15"),
		DamageSevere:   decimal.RequireFromString("0.25"),
	}
)

// PageConditions lists the page tiers from best to worst.
func PageConditions() []PageCondition {
	return []PageCondition{PagePristine, PageMinorYellowing, PageYellowed, PageDamaged}
}

// BindingConditions lists the binding tiers from best to worst.
func BindingConditions() []BindingCondition {
	return []BindingCondition{BindingPerfect, BindingTight, BindingLoose, BindingBroken}
}

// CoverConditions lists the cover tiers from best to worst.
func CoverConditions() []CoverCondition {
	return []CoverCondition{CoverLikeNew, CoverMinorWear, CoverWorn, CoverDamaged}
}

// MarkingsLevels lists the markings tiers from best to worst.
func MarkingsLevels() []Markings {
	return []Markings{MarkingsNone, MarkingsMinimal, MarkingsModerate, MarkingsHeavy}
}

// DamageLevels lists the damage tiers from best to worst.
func DamageLevels() []Damage {
	return []Damage{DamageNone, DamageMinor, DamageModerate, DamageSevere}
}

// Conditions holds the five condition answers plus the coarse tier.
type Conditions struct {
	Page     PageCondition
	Binding  BindingCondition
	Cover    CoverCondition
	Markings Markings
	Damage   Damage
	Tier     Tier
}

// ParseConditions normalizes raw answers ("Minor Yellowing", "minor_yellowing") and
// substitutes the best tier for anything unrecognized.
func ParseConditions(page, binding, cover, markings, damage, tier string) Conditions {
	return Conditions{
		Page:     parseTier(page, pageDeductions, PagePristine),
		Binding:  parseTier(binding, bindingDeductions, BindingPerfect),
		Cover:    parseTier(cover, coverDeductions, CoverLikeNew),
		Markings: parseTier(markings, markingsDeductions, MarkingsNone),
		Damage:   parseTier(damage, damageDeductions, DamageNone),
		Tier:     parseTier(tier, map[Tier]decimal.Decimal{TierLikeNew: {}, TierGood: {}, TierFair: {}, TierPoor: {}}, TierGood),
	}
}

// BestConditions returns the answers of a book in perfect shape.
func BestConditions() Conditions {
	return ParseConditions("", "", "", "", "", "")
}

// TotalDeduction sums the deductions of every axis.
func (c Conditions) TotalDeduction() decimal.Decimal {
	return pageDeductions[c.Page].
		Add(bindingDeductions[c.Binding]).
		Add(coverDeductions[c.Cover]).
		Add(markingsDeductions[c.Markings]).
		Add(damageDeductions[c.Damage])
}

func parseTier[T ~string](raw string, table map[T]decimal.Decimal, fallback T) T {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	if _, ok := table[T(normalized)]; ok {
		return T(normalized)
	}
	return fallback
}
