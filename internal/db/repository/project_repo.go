package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ProjectRepository contains DB helpers for projects.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository constructs a new project repository.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// Create persists a new project row.
func (r *ProjectRepository) Create(ctx context.Context, name, ownerRef string) (Project, error) {
	p := Project{ID: uuid.New(), Name: name, OwnerRef: ownerRef}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO projects (project_id, name, owner_ref)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		p.ID, p.Name, p.OwnerRef)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// Get fetches a project by id. Returns ErrNotFound for unknown ids.
func (r *ProjectRepository) Get(ctx context.Context, id uuid.UUID) (Project, error) {
	var p Project
	row := r.pool.QueryRow(ctx,
		`SELECT project_id, name, owner_ref, created_at
		 FROM projects WHERE project_id = $1`, id)
	if err := row.Scan(&p.ID, &p.Name, &p.OwnerRef, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, fmt.Errorf("select project: %w", err)
	}
	return p, nil
}
