package model

// Candidate кандидат на интервью
type Candidate struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
