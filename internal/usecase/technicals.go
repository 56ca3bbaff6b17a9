package usecase

import (
	"FinScope/internal/domain/models"
	"FinScope/pkg/util"
)

const (
	maWindow     = 200
	weekOffset   = 6
	monthOffset  = 29
	trendAbove   = "above"
	trendBelow   = "below"
	changePlaces = 2
)

// ComputeTechnicals derives price indicators from closes ordered most recent
// first. The moving average uses min(200, len(closes)) points.
func ComputeTechnicals(closes []models.DailyClose) models.Technicals {
	var t models.Technicals
	if len(closes) == 0 {
		return t
	}

	current := closes[0].Close
	t.PrecioActual = util.Float(current)

	window := len(closes)
	if window > maWindow {
		window = maWindow
	}
	var sum float64
	for _, c := range closes[:window] {
		sum += c.Close
	}
	ma := sum / float64(window)
	t.Media200 = util.Float(ma)
	t.MuestrasMedia = window

	t.Cambio7d = changeAt(closes, weekOffset)
	t.Cambio30d = changeAt(closes, monthOffset)

	trend := trendBelow
	if current > ma {
		trend = trendAbove
	}
	t.Tendencia = &trend
	return t
}

func changeAt(closes []models.DailyClose, offset int) *float64 {
	if offset >= len(closes) {
		return nil
	}
	pct, ok := util.PercentChange(closes[0].Close, closes[offset].Close)
	if !ok {
		return nil
	}
	return util.Float(util.Round(pct, changePlaces))
}
