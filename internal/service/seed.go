package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/atlas_derslik/internal/models"
	"github.com/Skotchmaster/atlas_derslik/internal/transport"
)

const (
	DemoIdentifier = "demo@example.com"
	DemoSecret     = "password123"
)

// SeedDemo makes sure the local-development student account exists.
func (s *AuthService) SeedDemo(ctx context.Context) error {
	_, err := s.Register(ctx, transport.RegisterRequest{
		Identifier: DemoIdentifier,
		Secret:     DemoSecret,
		Role:       models.RoleStudent,
		FullName:   "Demo Student",
		GradeLevel: "10",
	})
	if err != nil && !errors.Is(err, ErrConflict) {
		return err
	}
	return nil
}
