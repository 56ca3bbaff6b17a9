package usecase

import (
	"regexp"
	"sort"

	"FinScope/internal/domain/models"
	"FinScope/pkg/util"
)

// TextRule labels a profile text field by regular expression.
type TextRule struct {
	Name      string
	Field     string
	Pattern   *regexp.Regexp
	Match     string
	Otherwise string
}

// Band is one threshold step of a ThresholdRule.
type Band struct {
	Bound float64
	Label string
}

// ThresholdRule labels a number with the first band it satisfies. Bands are
// lower bounds unless AtMost is set. Missing values get DataNotAvailable.
type ThresholdRule struct {
	Name      string
	Value     func(moatInputs) *float64
	Bands     []Band
	AtMost    bool
	Otherwise string
}

// HolderRule classifies institutional holders by name.
type HolderRule struct {
	Type    string
	Pattern *regexp.Regexp
}

const (
	holderPassive       = "passive"
	holderInstitutional = "institutional"
	topHolderCount      = 5
)

type moatInputs struct {
	profile *models.CompanyProfile
	ratios  *models.RatiosTTM
	metrics *models.KeyMetrics
	holders []models.Holder
	esg     *models.ESGScore
}

var MoatTextRules = []TextRule{
	{
		Name:      "moat",
		Field:     "description",
		Pattern:   regexp.MustCompile(`(?i)(competitive advantage|market leader|leading (provider|position|supplier)|dominant|world'?s largest|industry leader)`),
		Match:     "strong",
		Otherwise: "unclear",
	},
	{
		Name:      "pricing_power",
		Field:     "description",
		Pattern:   regexp.MustCompile(`(?i)(premium|pricing power|luxury|proprietary|patent)`),
		Match:     "high",
		Otherwise: "low",
	},
	{
		Name:      "switching_costs",
		Field:     "description",
		Pattern:   regexp.MustCompile(`(?i)(subscription|recurring|enterprise software|ecosystem|integrated|mission[- ]critical|cloud)`),
		Match:     "high",
		Otherwise: "low",
	},
	{
		Name:      "network_effects",
		Field:     "description",
		Pattern:   regexp.MustCompile(`(?i)(network|marketplace|social|payments?|two[- ]sided|community|platform)`),
		Match:     "present",
		Otherwise: "absent",
	},
	{
		Name:      "brand_strength",
		Field:     "description",
		Pattern:   regexp.MustCompile(`(?i)(brand|iconic|trusted|well[- ]known|household)`),
		Match:     "strong",
		Otherwise: "weak",
	},
	{
		Name:      "cost_advantage",
		Field:     "description",
		Pattern:   regexp.MustCompile(`(?i)(low[- ]cost|economies of scale|scale|efficien|lowest prices?)`),
		Match:     "present",
		Otherwise: "absent",
	},
}

var MoatThresholdRules = []ThresholdRule{
	{
		Name:      "profitability",
		Value:     func(in moatInputs) *float64 { return in.ratios.GrossMargin },
		Bands:     []Band{{0.6, "excellent"}, {0.4, "good"}, {0.2, "average"}},
		Otherwise: "weak",
	},
	{
		Name: "capital_efficiency",
		Value: func(in moatInputs) *float64 {
			if in.metrics.ROIC != nil {
				return in.metrics.ROIC
			}
			return in.ratios.ROE
		},
		Bands:     []Band{{0.15, "high"}, {0.08, "moderate"}},
		Otherwise: "low",
	},
	{
		Name:      "balance_sheet",
		Value:     func(in moatInputs) *float64 { return in.ratios.DebtToEquity },
		Bands:     []Band{{0.5, "conservative"}, {1.5, "moderate"}},
		AtMost:    true,
		Otherwise: "leveraged",
	},
	{
		Name:      "esg_rating",
		Value:     func(in moatInputs) *float64 { return in.esg.Total },
		Bands:     []Band{{70, "leader"}, {50, "average"}},
		Otherwise: "laggard",
	},
}

var HolderRules = []HolderRule{
	{
		Type:    holderPassive,
		Pattern: regexp.MustCompile(`(?i)(vanguard|blackrock|state street|ishares|spdr|geode|northern trust|\bindex\b|\betf\b)`),
	},
}

// Apply returns r.Match when the field matches and r.Otherwise else.
func (r TextRule) Apply(p *models.CompanyProfile) string {
	if r.Pattern.MatchString(profileField(p, r.Field)) {
		return r.Match
	}
	return r.Otherwise
}

func (r ThresholdRule) apply(in moatInputs) string {
	v := r.Value(in)
	if v == nil {
		return models.DataNotAvailable
	}
	for _, b := range r.Bands {
		if (!r.AtMost && *v >= b.Bound) || (r.AtMost && *v <= b.Bound) {
			return b.Label
		}
	}
	return r.Otherwise
}

func profileField(p *models.CompanyProfile, field string) string {
	switch field {
	case "description":
		return p.Description
	case "industry":
		return p.Industry
	case "sector":
		return p.Sector
	case "name":
		return p.CompanyName
	default:
		return ""
	}
}

// ClassifyHolder returns the first matching HolderRules type, or
// "institutional".
func ClassifyHolder(name string) string {
	for _, r := range HolderRules {
		if r.Pattern.MatchString(name) {
			return r.Type
		}
	}
	return holderInstitutional
}

// SharesOutstanding prefers the reported count and falls back to
// market cap over price. Zero means unknown.
func SharesOutstanding(p *models.CompanyProfile) float64 {
	if p.SharesOutstanding > 0 {
		return p.SharesOutstanding
	}
	if p.Price > 0 && p.MktCap > 0 {
		return p.MktCap / p.Price
	}
	return 0
}

// ownership sums holder shares by type as a percentage of shares
// outstanding, and returns the largest holders classified. Only unknown
// shares outstanding yields the marker; no holders is 0%.
func ownership(holders []models.Holder, shares float64) (map[string]models.Percent, []models.Holder) {
	classified := make([]models.Holder, 0, len(holders))
	sums := map[string]float64{}
	for _, h := range holders {
		h.Type = ClassifyHolder(h.Name)
		sums[h.Type] += h.Shares
		classified = append(classified, h)
	}

	pct := map[string]models.Percent{}
	for _, typ := range []string{holderPassive, holderInstitutional} {
		if shares <= 0 {
			pct[typ] = models.Percent{}
			continue
		}
		pct[typ] = models.Percent{Value: util.Round(sums[typ]/shares*100, 2), Valid: true}
	}

	sort.SliceStable(classified, func(i, j int) bool { return classified[i].Shares > classified[j].Shares })
	if len(classified) > topHolderCount {
		classified = classified[:topHolderCount]
	}
	return pct, classified
}
