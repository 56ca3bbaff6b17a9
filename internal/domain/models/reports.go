package models

import "encoding/json"

// ProfileReport is the /fmp/:ticker response. Each leaf is either the raw
// upstream JSON or an ErrorRecord.
type ProfileReport struct {
	Ticker string                            `json:"ticker"`
	Data   map[string]map[string]interface{} `json:"data"`
}

// Sentiment is the label assigned to a headline.
type Sentiment string

const (
	SentimentPositive Sentiment = "positivo"
	SentimentNegative Sentiment = "negativo"
	SentimentNeutral  Sentiment = "neutral"
)

type ClassifiedHeadline struct {
	Titulo      string    `json:"titulo"`
	Sentimiento Sentiment `json:"sentimiento"`
	URL         string    `json:"url"`
	Fuente      string    `json:"fuente"`
	Fecha       string    `json:"fecha"`
}

type NewsSummary struct {
	Positivas int                  `json:"positivas"`
	Negativas int                  `json:"negativas"`
	Neutrales int                  `json:"neutrales"`
	Resumen   []string             `json:"resumen"`
	Titulares []ClassifiedHeadline `json:"titulares"`
}

// AnalystSummary folds strong buy/sell into buy/sell. Nota is set when the
// ratings could not be fetched and the counts are placeholders.
type AnalystSummary struct {
	Compra   int     `json:"compra"`
	Mantener int     `json:"mantener"`
	Venta    int     `json:"venta"`
	Nota     *string `json:"nota"`
}

// Technicals are null when the price series is too short for the window.
type Technicals struct {
	PrecioActual  *float64 `json:"precio_actual"`
	Media200      *float64 `json:"media_200"`
	MuestrasMedia int      `json:"muestras_media"`
	Cambio7d      *float64 `json:"cambio_7d"`
	Cambio30d     *float64 `json:"cambio_30d"`
	Tendencia     *string  `json:"tendencia"`
}

type SentimentReport struct {
	Empresa   string         `json:"empresa"`
	Ticker    string         `json:"ticker"`
	Noticias  NewsSummary    `json:"noticias"`
	Analistas AnalystSummary `json:"analistas"`
	Tecnica   Technicals     `json:"tecnica"`
	Redes     string         `json:"redes"`
}

// DataNotAvailable marks a derived value whose inputs were missing.
const DataNotAvailable = "data not available"

// Percent marshals as a number, or as DataNotAvailable when not Valid.
type Percent struct {
	Value float64
	Valid bool
}

func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return json.Marshal(DataNotAvailable)
	}
	return json.Marshal(p.Value)
}

// MoatReport is the flat /moat-check response.
type MoatReport struct {
	Ticker   string `json:"ticker"`
	Company  string `json:"company"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`

	Moat           string `json:"moat"`
	PricingPower   string `json:"pricing_power"`
	SwitchingCosts string `json:"switching_costs"`
	NetworkEffects string `json:"network_effects"`
	BrandStrength  string `json:"brand_strength"`
	CostAdvantage  string `json:"cost_advantage"`

	Profitability     string `json:"profitability"`
	CapitalEfficiency string `json:"capital_efficiency"`
	BalanceSheet      string `json:"balance_sheet"`
	ESGRating         string `json:"esg_rating"`

	GrossMargin     *float64 `json:"gross_margin"`
	OperatingMargin *float64 `json:"operating_margin"`
	ROE             *float64 `json:"roe"`
	ROIC            *float64 `json:"roic"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
	ESGScore        *float64 `json:"esg_score"`

	SharesOutstanding      *float64 `json:"shares_outstanding"`
	InstitutionalOwnership Percent  `json:"institutional_ownership_pct"`
	PassiveOwnership       Percent  `json:"passive_ownership_pct"`
	TopHolders             []Holder `json:"top_holders"`
}
