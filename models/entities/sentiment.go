package entities

type Sentiment string

const (
	SentimentVeryNegative Sentiment = "Very Negative"
	SentimentNegative     Sentiment = "Negative"
	SentimentNeutral      Sentiment = "Neutral"
	SentimentPositive     Sentiment = "Positive"
	SentimentVeryPositive Sentiment = "Very Positive"
	SentimentUnavailable  Sentiment = "unavailable"
)

var sentimentScale = []Sentiment{
	SentimentVeryNegative,
	SentimentNegative,
	SentimentNeutral,
	SentimentPositive,
	SentimentVeryPositive,
}

// SentimentFromScore maps a 1..5 score to its label.
func SentimentFromScore(score int) (Sentiment, bool) {
	if score < 1 || score > len(sentimentScale) {
		return SentimentNeutral, false
	}
	return sentimentScale[score-1], true
}

// IsScaled reports whether the label belongs to the 5-point scale.
func (s Sentiment) IsScaled() bool {
	for _, label := range sentimentScale {
		if s == label {
			return true
		}
	}
	return false
}
