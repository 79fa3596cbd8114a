package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/internal/store"
)

func TestContactSubmitValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &service.ContactService{Store: st}

	cases := map[string]service.ContactInput{
		"missing name":    {Email: "a@example.com", Subject: "s", Message: "m"},
		"invalid email":   {Name: "A", Email: "not-an-email", Subject: "s", Message: "m"},
		"missing subject": {Name: "A", Email: "a@example.com", Message: "m"},
		"missing message": {Name: "A", Email: "a@example.com", Subject: "s"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Submit(ctx, in)
			require.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestContactInbox(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &service.ContactService{Store: st}

	first, err := svc.Submit(ctx, service.ContactInput{
		Name:        "Dana",
		Email:       "dana@example.com",
		Phone:       "+61 400 000 000",
		Subject:     "Website build",
		Message:     "Looking for a quote",
		ProjectType: "web",
	})
	require.NoError(t, err)
	require.False(t, first.IsRead)

	_, err = svc.Submit(ctx, service.ContactInput{
		Name: "Eve", Email: "eve@example.com", Subject: "Logo", Message: "Need a logo",
	})
	require.NoError(t, err)

	msgs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	require.NoError(t, svc.MarkRead(ctx, first.ID))

	msgs, err = svc.List(ctx)
	require.NoError(t, err)
	for _, m := range msgs {
		if m.ID == first.ID {
			require.True(t, m.IsRead)
		}
	}

	require.ErrorIs(t, svc.MarkRead(ctx, "missing"), store.ErrNotFound)
}
