package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
)

// Sentinel errors returned by PortStore implementations.
var (
	// ErrPortNotFound indicates no port has the requested number.
	ErrPortNotFound = errors.New("port not found")

	// ErrPortAlreadyExists indicates a port with the same number already exists.
	ErrPortAlreadyExists = errors.New("port already exists")
)

// PortStore defines the driven port for port definition persistence.
// Create returns ErrPortAlreadyExists if the number is taken.
// Update and Delete return ErrPortNotFound if the number is unknown.
type PortStore interface {
	List(ctx context.Context) ([]model.Port, error)
	Create(ctx context.Context, port model.Port) (model.Port, error)
	// Update changes name and protocol of the port with the given number.
	// The number itself is never modified.
	Update(ctx context.Context, number int, name string, protocol model.Protocol) (model.Port, error)
	Delete(ctx context.Context, number int) error
	// SeedIfEmpty inserts all ports in one transaction when the store is empty and
	// reports whether anything was inserted.
	SeedIfEmpty(ctx context.Context, ports []model.Port) (bool, error)
}
