package dto

// FeedbackRequest is the payload accepted by the feedback endpoint.
type FeedbackRequest struct {
	Content string `json:"content" validate:"required"`
	Type    string `json:"type"`
}

// Severity ranks an improvement item.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// AnnotationCategory classifies an inline annotation.
type AnnotationCategory string

const (
	AnnotationGrammar      AnnotationCategory = "grammar"
	AnnotationLogic        AnnotationCategory = "logic"
	AnnotationStyle        AnnotationCategory = "style"
	AnnotationAccuracy     AnnotationCategory = "accuracy"
	AnnotationSyntax       AnnotationCategory = "syntax"
	AnnotationOptimization AnnotationCategory = "optimization"
	AnnotationClarity      AnnotationCategory = "clarity"
)

// Difficulty is the level of a practice recommendation or problem.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Strength is something the submission does well.
type Strength struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Improvement is an area the submission should work on.
type Improvement struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Annotation points at a verbatim excerpt of the submission.
type Annotation struct {
	Text       string             `json:"text"`
	Issue      string             `json:"issue"`
	Suggestion string             `json:"suggestion"`
	Category   AnnotationCategory `json:"category"`
}

// PracticeRecommendation suggests a follow-up practice topic.
type PracticeRecommendation struct {
	Topic       string     `json:"topic"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
}

// FeedbackResult is the complete structured feedback for a submission.
type FeedbackResult struct {
	OverallScore            float64                  `json:"overallScore"`
	Summary                 string                   `json:"summary"`
	Strengths               []Strength               `json:"strengths"`
	Improvements            []Improvement            `json:"improvements"`
	Annotations             []Annotation             `json:"annotations"`
	WeakTopics              []string                 `json:"weakTopics"`
	PracticeRecommendations []PracticeRecommendation `json:"practiceRecommendations"`
	LetterGrade             string                   `json:"letterGrade"`
}

// ErrorResponse is the failure body of the generation endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
