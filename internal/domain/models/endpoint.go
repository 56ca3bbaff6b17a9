package models

import "strings"

// APIVersion selects the provider base path.
type APIVersion string

const (
	APIv3 APIVersion = "v3"
	APIv4 APIVersion = "v4"
)

// TickerPlaceholder is replaced by the requested ticker in endpoint paths.
const TickerPlaceholder = "{ticker}"

// EndpointSpec is one fixed upstream call of the profile table.
type EndpointSpec struct {
	Category       string
	Path           string
	RequiresTicker bool
	Version        APIVersion
}

// Render returns the path with the ticker interpolated.
func (e EndpointSpec) Render(ticker string) string {
	if !e.RequiresTicker {
		return e.Path
	}
	return strings.ReplaceAll(e.Path, TickerPlaceholder, ticker)
}

// Endpoint is a rendered EndpointSpec ready to be called.
type Endpoint struct {
	Category string
	Path     string
	Version  APIVersion
}
