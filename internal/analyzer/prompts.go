package analyzer

import "fmt"

const AnalysisPrompt = "Analyze the content of the provided document. Generate a concise, executive summary (3-5 sentences) and extract a list of 5 to 10 key topics or keywords. Return the result in the specified JSON format."

const (
	summaryDescription     = "A concise executive summary of the document, 3-5 sentences long."
	topicsDescription      = "A list of all the topics discussed in the document, each with a deep explanation, ensuring no significant topic is omitted."
	topicDescription       = "The main subject or key concept discussed."
	explanationDescription = "A detailed explanation of the topic, summarizing the relevant sections of the document. If any formulas, equations, or technical terms are present, include them directly in the text for deep understanding."
)

// QAPrompt restricts the model to the document for one question.
func QAPrompt(question string) string {
	return fmt.Sprintf(`Based ONLY on the content of the provided document, answer the following question clearly and concisely. If the document does not contain the information needed to answer the question, state that the information is not available in the document.

User Question: %q`, question)
}

// analysisJSONSchema is the JSON Schema form of the analysis reply, used by
// OpenAI-compatible endpoints.
func analysisJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"summary", "topics"},
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": summaryDescription,
			},
			"topics": map[string]any{
				"type":        "array",
				"description": topicsDescription,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"topic", "explanation"},
					"properties": map[string]any{
						"topic": map[string]any{
							"type":        "string",
							"description": topicDescription,
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": explanationDescription,
						},
					},
				},
			},
		},
	}
}
