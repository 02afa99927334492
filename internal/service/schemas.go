package service

import "github.com/noah-isme/gema-feedback-api/pkg/ai"

func stringProperty(description string) map[string]any {
	property := map[string]any{"type": "string"}
	if description != "" {
		property["description"] = description
	}
	return property
}

func enumProperty(description string, values ...any) map[string]any {
	return map[string]any{
		"type":        "string",
		"enum":        values,
		"description": description,
	}
}

func arrayOf(description string, items map[string]any) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       items,
		"description": description,
	}
}

// closedObject builds an object schema whose properties are all required.
func closedObject(properties map[string]any, order ...string) map[string]any {
	required := make([]any, 0, len(order))
	for _, name := range order {
		required = append(required, name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// FeedbackSchema is the structural contract of a FeedbackResult.
var FeedbackSchema = &ai.Schema{
	Name:        "submission-feedback",
	Description: "Structured feedback for an essay, code or maths submission",
	Definition: closedObject(map[string]any{
		"overallScore": map[string]any{
			"type":        "number",
			"description": "Overall score from 0-100",
		},
		"summary": stringProperty("2-3 sentence summary of the overall quality"),
		"strengths": arrayOf("What the submission does well", closedObject(map[string]any{
			"title":       stringProperty("Short name of the strength"),
			"description": stringProperty("Why this is a strength"),
		}, "title", "description")),
		"improvements": arrayOf("Areas to improve, most important first", closedObject(map[string]any{
			"title":       stringProperty("Short name of the improvement"),
			"description": stringProperty("What to change and how"),
			"severity":    enumProperty("How much this affects the result", "high", "medium", "low"),
		}, "title", "description", "severity")),
		"annotations": arrayOf("Inline comments anchored to excerpts of the submission", closedObject(map[string]any{
			"text":       stringProperty("Exact excerpt copied verbatim from the submission"),
			"issue":      stringProperty("What is wrong with the excerpt"),
			"suggestion": stringProperty("How to fix the excerpt"),
			"category": enumProperty("Kind of issue",
				"grammar", "logic", "style", "accuracy", "syntax", "optimization", "clarity"),
		}, "text", "issue", "suggestion", "category")),
		"weakTopics": arrayOf("Topics the student should review", stringProperty("")),
		"practiceRecommendations": arrayOf("Suggested practice exercises", closedObject(map[string]any{
			"topic":       stringProperty("Practice topic"),
			"description": stringProperty("What to practise and why"),
			"difficulty":  enumProperty("Recommended level", "beginner", "intermediate", "advanced"),
		}, "topic", "description", "difficulty")),
		"letterGrade": stringProperty("Letter grade from A+ to F"),
	}, "overallScore", "summary", "strengths", "improvements", "annotations", "weakTopics", "practiceRecommendations", "letterGrade"),
}

// PracticeSchema is the structural contract of a PracticeResult.
var PracticeSchema = &ai.Schema{
	Name:        "practice-problem",
	Description: "A practice problem with progressive hints and a worked answer",
	Definition: closedObject(map[string]any{
		"question":            stringProperty("The practice question or prompt"),
		"hints":               arrayOf("2-3 progressive hints", stringProperty("")),
		"sampleAnswer":        stringProperty("A model answer or solution"),
		"explanation":         stringProperty("Detailed explanation of the answer"),
		"keyConceptsToReview": arrayOf("Key concepts this question tests", stringProperty("")),
	}, "question", "hints", "sampleAnswer", "explanation", "keyConceptsToReview"),
}
