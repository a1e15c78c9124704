package models

// RelationshipType is the classified relationship between the two participants.
type RelationshipType string

const (
	RelationshipFriends RelationshipType = "Friends"
	RelationshipFamily  RelationshipType = "Family"
	RelationshipCrush   RelationshipType = "Crush"
	RelationshipCouple  RelationshipType = "Couple"
	RelationshipUnknown RelationshipType = "Unknown"
)

// AnalysisResult is the deep-analysis payload. The struct tags double as the
// structured-output contract: jsonschema tags drive the schema sent to the
// model and validate tags are checked when the response comes back.
type AnalysisResult struct {
	RelationshipType  RelationshipType `json:"relationshipType" jsonschema:"required,enum=Friends,enum=Family,enum=Crush,enum=Couple,enum=Unknown,description=The classified relationship type based on the chat content." validate:"oneof=Friends Family Crush Couple Unknown"`
	TypeConfidence    float64          `json:"typeConfidence" jsonschema:"minimum=0,maximum=100,description=Confidence score for the relationship type (0-100)." validate:"min=0,max=100"`
	HealthScore       float64          `json:"healthScore" jsonschema:"required,minimum=0,maximum=100,description=Overall relationship health score (0-100)." validate:"min=0,max=100"`
	Subscores         []Subscore       `json:"subscores" jsonschema:"required" validate:"dive"`
	SentimentTimeline []SentimentPoint `json:"sentimentTimeline" jsonschema:"required,description=A series of 10-20 data points representing the emotional journey throughout the conversation." validate:"dive"`
	WordCloud         []WordCloudEntry `json:"wordCloud" jsonschema:"required,description=Top 15-20 most significant words or topics or emojis used in the chat." validate:"dive"`
	KeyInsights       []string         `json:"keyInsights" jsonschema:"required,description=List of 3-5 key qualitative insights about the relationship dynamic."`
	Summary           string           `json:"summary" jsonschema:"required,description=A concise executive summary of the relationship analysis."`
	Participants      []string         `json:"participants" jsonschema:"description=Names or identifiers of the two participants."`
}

type Subscore struct {
	Category  string  `json:"category" jsonschema:"required,description=e.g. Emotional Tone or Responsiveness or Engagement" validate:"required"`
	Score     float64 `json:"score" jsonschema:"required,minimum=0,maximum=100,description=Score 0-100" validate:"min=0,max=100"`
	Reasoning string  `json:"reasoning" jsonschema:"required,description=Brief explanation for this score"`
}

type SentimentPoint struct {
	Index     float64 `json:"index" jsonschema:"required,minimum=0,maximum=100,description=Relative time/index (0-100)" validate:"min=0,max=100"`
	Sentiment float64 `json:"sentiment" jsonschema:"required,minimum=-100,maximum=100,description=Sentiment score from -100 (Negative) to 100 (Positive)" validate:"min=-100,max=100"`
	Label     string  `json:"label" jsonschema:"required,description=Very brief (2-3 words) label for this moment or interaction"`
}

// WordCloudEntry keeps the wire name "count" for the weight; the value is a
// relative importance rather than a literal frequency.
type WordCloudEntry struct {
	Word   string  `json:"word" jsonschema:"required" validate:"required"`
	Weight float64 `json:"count" jsonschema:"required,minimum=1,maximum=10,description=Relative importance/frequency (1-10)" validate:"min=1,max=10"`
}

// AnalysisResultV1 is the narrower predecessor of AnalysisResult, without the
// sentiment timeline and word cloud.
//
// Deprecated: request AnalysisResult. Kept so older clients can still ask for
// the v1 shape.
type AnalysisResultV1 struct {
	RelationshipType RelationshipType `json:"relationshipType" jsonschema:"required,enum=Friends,enum=Family,enum=Crush,enum=Couple,enum=Unknown,description=The classified relationship type based on the chat content." validate:"oneof=Friends Family Crush Couple Unknown"`
	TypeConfidence   float64          `json:"typeConfidence" jsonschema:"minimum=0,maximum=100,description=Confidence score for the relationship type (0-100)." validate:"min=0,max=100"`
	HealthScore      float64          `json:"healthScore" jsonschema:"required,minimum=0,maximum=100,description=Overall relationship health score (0-100)." validate:"min=0,max=100"`
	Subscores        []Subscore       `json:"subscores" jsonschema:"required" validate:"dive"`
	KeyInsights      []string         `json:"keyInsights" jsonschema:"required,description=List of 3-5 key qualitative insights about the relationship dynamic."`
	Summary          string           `json:"summary" jsonschema:"required,description=A concise executive summary of the relationship analysis."`
	Participants     []string         `json:"participants" jsonschema:"description=Names or identifiers of the two participants."`
}

// Upgrade lifts a v1 result into the canonical shape with an empty timeline
// and word cloud.
func (r AnalysisResultV1) Upgrade() AnalysisResult {
	return AnalysisResult{
		RelationshipType:  r.RelationshipType,
		TypeConfidence:    r.TypeConfidence,
		HealthScore:       r.HealthScore,
		Subscores:         r.Subscores,
		SentimentTimeline: []SentimentPoint{},
		WordCloud:         []WordCloudEntry{},
		KeyInsights:       r.KeyInsights,
		Summary:           r.Summary,
		Participants:      r.Participants,
	}
}
