package models

// Requests for the forecast HTTP endpoints. Defined in domain for consistency
// and reuse.

// ForecastRequest selects a sub-category and horizon for one pipeline run.
// Horizon is 30..360 in steps of 30, default 90.
type ForecastRequest struct {
	Subcategory    string `query:"subcategory" json:"subcategory" validate:"required"`
	Horizon        int    `query:"horizon" json:"horizon" default:"90" validate:"oneof=30 60 90 120 150 180 210 240 270 300 330 360"`
	FutureOnly     bool   `query:"future_only" json:"future_only"`
	IncludeHistory *bool  `query:"include_history" json:"include_history" default:"true"`
}

// WithHistory reports whether the actual-sales overlay is enabled.
func (r *ForecastRequest) WithHistory() bool {
	return r.IncludeHistory == nil || *r.IncludeHistory
}

// UploadResponse is returned after a successful ingest.
type UploadResponse struct {
	SessionID     string   `json:"session_id"`
	FileName      string   `json:"file_name"`
	Rows          int      `json:"rows"`
	Subcategories []string `json:"subcategories"`
	FirstDate     string   `json:"first_date"`
	LastDate      string   `json:"last_date"`
}
