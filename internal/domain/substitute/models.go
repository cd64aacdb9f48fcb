package substitute

import "time"

// Substitute is an employee additionally available to cover vacancies opened
// by vacation periods flagged as needing replacement.
type Substitute struct {
	ID           string    `json:"id"`
	Registration string    `json:"registration"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
}
