package models

import "time"

// Article is one news search hit.
type Article struct {
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt time.Time
}

// AnalystRecommendation is the latest analyst rating tally.
type AnalystRecommendation struct {
	Date       string
	StrongBuy  int
	Buy        int
	Hold       int
	Sell       int
	StrongSell int
}

// DailyClose is one end-of-day price.
type DailyClose struct {
	Date  string
	Close float64
}

type CompanyProfile struct {
	Symbol            string
	CompanyName       string
	Description       string
	Sector            string
	Industry          string
	Price             float64
	MktCap            float64
	SharesOutstanding float64
}

// RatiosTTM are trailing-twelve-month ratios; nil means not reported.
type RatiosTTM struct {
	GrossMargin     *float64
	OperatingMargin *float64
	NetMargin       *float64
	ROE             *float64
	DebtToEquity    *float64
	CurrentRatio    *float64
}

type KeyMetrics struct {
	Date       string
	ROIC       *float64
	FCFYield   *float64
	PERatio    *float64
	EVToEBITDA *float64
}

type Holder struct {
	Name   string  `json:"holder"`
	Shares float64 `json:"shares"`
	Type   string  `json:"type"`
}

type ESGScore struct {
	Date          string
	Environmental *float64
	Social        *float64
	Governance    *float64
	Total         *float64
}
