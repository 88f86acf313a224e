package models

// AnalysisRecord represents a persisted AI analysis result
type AnalysisRecord struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	AnalysisType string `json:"analysis_type"`
	Prompt       string `json:"prompt"`
	AIResponse   string `json:"ai_response"`
	CreatedAt    string `json:"created_at"`
}

// CategoryTotal represents an aggregated expense total for a category
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}
