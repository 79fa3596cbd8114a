package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/pkg/idx"
)

// ContactInput carries a public contact-form submission.
type ContactInput struct {
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	ProjectType string
}

func (in ContactInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	if in.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrValidation)
	}
	if in.Message == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}
	return nil
}

// ContactService records contact-form submissions and exposes them to the
// admin inbox. Submission is the only unauthenticated write in the system.
type ContactService struct {
	Store        store.Store
	StoreTimeout time.Duration
}

// Submit validates and stores a new message.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (domain.ContactMessage, error) {
	if err := in.validate(); err != nil {
		return domain.ContactMessage{}, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	m := domain.ContactMessage{
		ID:          idx.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Subject:     in.Subject,
		Message:     in.Message,
		ProjectType: in.ProjectType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.ContactMessages().CreateContactMessage(ctx, m); err != nil {
		return domain.ContactMessage{}, fmt.Errorf("create contact message: %w", err)
	}
	return m, nil
}

// List returns every message newest first.
func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	msgs, err := s.Store.ContactMessages().ListContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}

// MarkRead flags a message as handled.
func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	return s.Store.ContactMessages().MarkContactMessageRead(ctx, id)
}

func (s *ContactService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}
