package models

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
	SentimentMixed    Sentiment = "Mixed"
)

// QuickScanResult is the low-latency partial assessment. It does not depend
// on an AnalysisResult existing for the same transcript.
type QuickScanResult struct {
	Sentiment    Sentiment `json:"sentiment" jsonschema:"required,enum=Positive,enum=Neutral,enum=Negative,enum=Mixed,description=Overall sentiment of the conversation." validate:"oneof=Positive Neutral Negative Mixed"`
	Topic        string    `json:"topic" jsonschema:"required,description=The main topic in a few words."`
	QuickSummary string    `json:"quickSummary" jsonschema:"required,description=A one-sentence summary of the conversation."`
}
