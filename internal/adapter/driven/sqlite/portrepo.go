package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PortStore = (*PortRepo)(nil)

// PortRepo is the SQLite implementation of the PortStore port interface.
type PortRepo struct {
	db *DB
}

// NewPortRepo creates a new PortRepo backed by the given DB.
func NewPortRepo(db *DB) *PortRepo {
	return &PortRepo{db: db}
}

// List returns all ports in insertion order.
func (r *PortRepo) List(ctx context.Context) ([]model.Port, error) {
	const query = `SELECT id, name, port_number, protocol FROM ports ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	defer rows.Close()

	var ports []model.Port
	for rows.Next() {
		port, err := scanPort(rows)
		if err != nil {
			return nil, fmt.Errorf("scan port: %w", err)
		}
		ports = append(ports, *port)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ports: %w", err)
	}

	return ports, nil
}

// Create inserts a new port and returns it with the assigned ID. Returns
// ErrPortAlreadyExists if the port number is already taken.
func (r *PortRepo) Create(ctx context.Context, port model.Port) (model.Port, error) {
	const query = `INSERT INTO ports (name, port_number, protocol) VALUES (?, ?, ?)`

	result, err := r.db.Writer.ExecContext(ctx, query, port.Name, port.Number, string(port.Protocol))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Port{}, fmt.Errorf("create port %d: %w", port.Number, driven.ErrPortAlreadyExists)
		}
		return model.Port{}, fmt.Errorf("create port %d: %w", port.Number, err)
	}

	port.ID, err = result.LastInsertId()
	if err != nil {
		return model.Port{}, fmt.Errorf("last insert id: %w", err)
	}

	return port, nil
}

// Update changes name and protocol of the port identified by number.
func (r *PortRepo) Update(ctx context.Context, number int, name string, protocol model.Protocol) (model.Port, error) {
	var updated model.Port

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		const selectQuery = `SELECT id, name, port_number, protocol FROM ports WHERE port_number = ?`

		port, err := scanPort(tx.QueryRowContext(ctx, selectQuery, number))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update port %d: %w", number, driven.ErrPortNotFound)
		}
		if err != nil {
			return fmt.Errorf("update port %d: %w", number, err)
		}

		const updateQuery = `UPDATE ports SET name = ?, protocol = ? WHERE id = ?`
		if _, err := tx.ExecContext(ctx, updateQuery, name, string(protocol), port.ID); err != nil {
			return fmt.Errorf("update port %d: %w", number, err)
		}

		port.Name = name
		port.Protocol = protocol
		updated = *port
		return nil
	})
	if err != nil {
		return model.Port{}, err
	}

	return updated, nil
}

// Delete removes the port identified by number. Returns ErrPortNotFound if
// no such port exists.
func (r *PortRepo) Delete(ctx context.Context, number int) error {
	const query = `DELETE FROM ports WHERE port_number = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, number)
	if err != nil {
		return fmt.Errorf("delete port %d: %w", number, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete port %d: %w", number, driven.ErrPortNotFound)
	}

	return nil
}

// SeedIfEmpty inserts ports when the table holds no rows. The count and the
// inserts share one transaction.
func (r *PortRepo) SeedIfEmpty(ctx context.Context, ports []model.Port) (bool, error) {
	seeded := false

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM ports`).Scan(&count); err != nil {
			return fmt.Errorf("count ports: %w", err)
		}
		if count > 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO ports (name, port_number, protocol) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare seed insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range ports {
			if _, err := stmt.ExecContext(ctx, p.Name, p.Number, string(p.Protocol)); err != nil {
				return fmt.Errorf("seed port %d: %w", p.Number, err)
			}
		}

		seeded = len(ports) > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return seeded, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPort(s scanner) (*model.Port, error) {
	var port model.Port
	var protocol string

	if err := s.Scan(&port.ID, &port.Name, &port.Number, &protocol); err != nil {
		return nil, err
	}
	port.Protocol = model.Protocol(protocol)

	return &port, nil
}
