package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
)

// PortService exposes the port registry operations. It depends only on the
// PortStore port interface.
type PortService struct {
	store  driven.PortStore
	logger *slog.Logger
}

// NewPortService creates a new PortService.
func NewPortService(store driven.PortStore, logger *slog.Logger) *PortService {
	return &PortService{store: store, logger: logger}
}

// List returns all ports in insertion order.
func (s *PortService) List(ctx context.Context) ([]model.Port, error) {
	return s.store.List(ctx)
}

// Create stores a new port definition and returns it with its assigned ID.
func (s *PortService) Create(ctx context.Context, name string, number int, protocol model.Protocol) (model.Port, error) {
	return s.store.Create(ctx, model.Port{Name: name, Number: number, Protocol: protocol})
}

// Update renames the port with the given number and changes its protocol.
func (s *PortService) Update(ctx context.Context, number int, name string, protocol model.Protocol) (model.Port, error) {
	return s.store.Update(ctx, number, name, protocol)
}

// Delete removes the port with the given number.
func (s *PortService) Delete(ctx context.Context, number int) error {
	return s.store.Delete(ctx, number)
}

// EnsureDefaults seeds the well-known ports when the store is empty. It is
// safe to call on every startup.
func (s *PortService) EnsureDefaults(ctx context.Context) error {
	defaults := model.DefaultPorts()

	seeded, err := s.store.SeedIfEmpty(ctx, defaults)
	if err != nil {
		return fmt.Errorf("seed default ports: %w", err)
	}

	if seeded {
		s.logger.Info("seeded default ports", "count", len(defaults))
	}
	return nil
}
