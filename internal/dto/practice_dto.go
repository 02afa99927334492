package dto

// PracticeRequest is the payload accepted by the practice endpoint.
type PracticeRequest struct {
	Topic      string `json:"topic" validate:"required"`
	Difficulty string `json:"difficulty"`
	Type       string `json:"type"`
}

// PracticeResult is a generated practice problem.
type PracticeResult struct {
	Question            string   `json:"question"`
	Hints               []string `json:"hints"`
	SampleAnswer        string   `json:"sampleAnswer"`
	Explanation         string   `json:"explanation"`
	KeyConceptsToReview []string `json:"keyConceptsToReview"`
}

// PracticeTopicsResponse lists suggested topics for a category.
type PracticeTopicsResponse struct {
	Type   string   `json:"type"`
	Topics []string `json:"topics"`
}
