package usecase

import (
	"sort"
	"strings"
	"unicode/utf8"

	"FinScope/internal/domain/models"
)

var (
	negativeKeywords = []string{
		"pánico", "demanda", "problemas", "escándalo", "caída",
		"riesgo", "regulación", "fraude", "protesta", "violación",
	}
	positiveKeywords = []string{
		"récord", "acuerdo", "expansión", "ganancia", "crecimiento",
		"aprobado", "premio", "mejora", "autonomía", "liderazgo",
	}
	stopWords = map[string]struct{}{
		"de": {}, "la": {}, "el": {}, "en": {}, "por": {}, "con": {},
		"y": {}, "a": {}, "para": {}, "un": {}, "del": {},
	}
)

// minWordRunes is the shortest token counted by TopWords.
const minWordRunes = 5

// ClassifyHeadline labels a headline by keyword containment. Negative
// keywords are checked first.
func ClassifyHeadline(title string) models.Sentiment {
	lower := strings.ToLower(title)
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			return models.SentimentNegative
		}
	}
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			return models.SentimentPositive
		}
	}
	return models.SentimentNeutral
}

// TopWords returns up to n words by descending frequency across titles.
// Ties keep first-seen order.
func TopWords(titles []string, n int) []string {
	counts := map[string]int{}
	var order []string
	for _, title := range titles {
		for _, w := range strings.Fields(strings.ToLower(title)) {
			if utf8.RuneCountInString(w) < minWordRunes {
				continue
			}
			if _, stop := stopWords[w]; stop {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	if order == nil {
		order = []string{}
	}
	return order
}
