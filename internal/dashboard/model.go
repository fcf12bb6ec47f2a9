package dashboard

// Counters is a user's usage snapshot. Absent users read as all-zero.
type Counters struct {
	UserID            string `json:"user_id"`
	TotalSearches     int64  `json:"total_searches"`
	DocumentsUploaded int64  `json:"documents_uploaded"`
	PlansCreated      int64  `json:"plans_created"`
}
