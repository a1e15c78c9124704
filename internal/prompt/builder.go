// Package prompt turns a transcript and a task kind into a bounded inference
// request. Building never fails; input validation happens upstream.
package prompt

import (
	"fmt"

	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/providers/llm"
)

// Response schemas, reflected once from the result types.
var (
	AnalysisSchema   = llm.GenerateSchema[models.AnalysisResult]()
	AnalysisSchemaV1 = llm.GenerateSchema[models.AnalysisResultV1]()
	QuickScanSchema  = llm.GenerateSchema[models.QuickScanResult]()
)

// Variant selects the deep-analysis schema.
type Variant string

const (
	VariantRich Variant = "rich"
	VariantV1   Variant = "v1" // deprecated
)

func ParseVariant(s string) (Variant, bool) {
	switch Variant(s) {
	case "", VariantRich:
		return VariantRich, true
	case VariantV1:
		return VariantV1, true
	}
	return "", false
}

// DeepAnalysis builds the high-effort analysis request.
func DeepAnalysis(transcript string, variant Variant) llm.Request {
	log := Truncate(transcript, MaxDeepAnalysisChars)
	if variant == VariantV1 {
		return llm.Request{
			Kind:       models.TaskDeepAnalysis,
			Prompt:     fmt.Sprintf(deepAnalysisPromptV1, log),
			Schema:     AnalysisSchemaV1,
			SchemaName: "AnalysisResultV1",
			Effort:     llm.EffortHigh,
		}
	}
	return llm.Request{
		Kind:       models.TaskDeepAnalysis,
		Prompt:     fmt.Sprintf(deepAnalysisPrompt, log),
		Schema:     AnalysisSchema,
		SchemaName: "AnalysisResult",
		Effort:     llm.EffortHigh,
	}
}

// QuickScan builds the low-latency request.
func QuickScan(transcript string) llm.Request {
	return llm.Request{
		Kind:       models.TaskQuickScan,
		Prompt:     fmt.Sprintf(quickScanPrompt, Truncate(transcript, MaxQuickScanChars)),
		Schema:     QuickScanSchema,
		SchemaName: "QuickScanResult",
		Effort:     llm.EffortLow,
	}
}

// Chat builds a follow-up question. The transcript is the only budgeted part:
// history is passed through whole and in order.
func Chat(transcript string, history []models.Turn, message string) llm.Request {
	turns := make([]models.Turn, len(history))
	copy(turns, history)
	return llm.Request{
		Kind:              models.TaskChat,
		SystemInstruction: fmt.Sprintf(chatSystemInstruction, Truncate(transcript, MaxChatContextChars)),
		History:           turns,
		Prompt:            message,
	}
}
