package models

import "time"

// Enrollment is a snapshot of the course display fields taken at join time.
type Enrollment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Language   string    `json:"language"`
	Flag       string    `json:"flag"`
	Level      string    `json:"level"`
	Rating     float64   `json:"rating"`
	Price      float64   `json:"price"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func NewEnrollment(c Course, at time.Time) Enrollment {
	return Enrollment{
		ID:         c.ID,
		Name:       c.Title,
		Language:   c.Language,
		Flag:       c.Flag,
		Level:      c.Level,
		Rating:     c.Rating,
		Price:      c.Price,
		EnrolledAt: at,
	}
}
