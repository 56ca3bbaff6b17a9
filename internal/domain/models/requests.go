package models

// Requests for the aggregation endpoints, bound by pkg/http.ReadAndValidateRequest.

type ProfileRequest struct {
	Ticker string `param:"ticker" validate:"required,max=32"`
	APIKey string `query:"apiKey"`
}

// SentimentRequest leaves presence checks to the usecase, which answers
// with a single message for either missing field.
type SentimentRequest struct {
	Ticker  string `query:"ticker" validate:"max=32"`
	Empresa string `query:"empresa" validate:"max=200"`
}

type MoatRequest struct {
	Ticker string `query:"ticker" validate:"required,max=32"`
}
