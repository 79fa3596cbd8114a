package domain

import "time"

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	ProjectType string
	IsRead      bool
	CreatedAt   time.Time
}
