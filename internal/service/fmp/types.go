package fmp

// Wire shapes of the FMP endpoints the typed helpers read. Pointer fields are
// nil when FMP omits the value or sends null.

type recommendationDTO struct {
	Symbol     string `json:"symbol"`
	Date       string `json:"date"`
	StrongBuy  int    `json:"analystRatingsStrongBuy"`
	Buy        int    `json:"analystRatingsbuy"`
	Hold       int    `json:"analystRatingsHold"`
	Sell       int    `json:"analystRatingsSell"`
	StrongSell int    `json:"analystRatingsStrongSell"`
}

type historicalDTO struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"historical"`
}

type profileDTO struct {
	Symbol            string   `json:"symbol"`
	CompanyName       string   `json:"companyName"`
	Description       string   `json:"description"`
	Sector            string   `json:"sector"`
	Industry          string   `json:"industry"`
	Price             float64  `json:"price"`
	MktCap            float64  `json:"mktCap"`
	SharesOutstanding *float64 `json:"sharesOutstanding"`
}

type ratiosTTMDTO struct {
	GrossMargin     *float64 `json:"grossProfitMarginTTM"`
	OperatingMargin *float64 `json:"operatingProfitMarginTTM"`
	NetMargin       *float64 `json:"netProfitMarginTTM"`
	ROE             *float64 `json:"returnOnEquityTTM"`
	DebtToEquity    *float64 `json:"debtEquityRatioTTM"`
	CurrentRatio    *float64 `json:"currentRatioTTM"`
}

type keyMetricsDTO struct {
	Date       string   `json:"date"`
	ROIC       *float64 `json:"roic"`
	FCFYield   *float64 `json:"freeCashFlowYield"`
	PERatio    *float64 `json:"peRatio"`
	EVToEBITDA *float64 `json:"enterpriseValueOverEBITDA"`
}

type holderDTO struct {
	Holder       string  `json:"holder"`
	Shares       float64 `json:"shares"`
	DateReported string  `json:"dateReported"`
}

type esgDTO struct {
	Date          string   `json:"date"`
	Environmental *float64 `json:"environmentalScore"`
	Social        *float64 `json:"socialScore"`
	Governance    *float64 `json:"governanceScore"`
	Total         *float64 `json:"ESGScore"`
}

// providerErrorDTO is what FMP sends with a 200 for rejected keys.
type providerErrorDTO struct {
	ErrorMessage string `json:"Error Message"`
}
