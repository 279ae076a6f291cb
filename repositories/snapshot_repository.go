package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrSnapshotRefNotFound    = errors.New("snapshot reference not found")
	ErrSnapshotRefNameInvalid = errors.New("snapshot reference name must not be empty")
)

// SnapshotRefRepository keeps the name -> latest content id index.
type SnapshotRefRepository interface {
	Upsert(ctx context.Context, exec SQLExecutor, ref *models.SnapshotRef) error
	GetByName(ctx context.Context, name string) (*models.SnapshotRef, error)
	ListByKind(ctx context.Context, kind string) ([]models.SnapshotRef, error)
	Delete(ctx context.Context, name string) error
}

type sqlSnapshotRefRepository struct {
	db     *sql.DB
	driver string
}

// NewPostgresSnapshotRefRepository uses $n placeholders and pq error codes.
func NewPostgresSnapshotRefRepository(db *sql.DB) SnapshotRefRepository {
	return &sqlSnapshotRefRepository{db: db, driver: "postgres"}
}

// NewSQLiteSnapshotRefRepository rewrites placeholders to ? for go-sqlite3.
func NewSQLiteSnapshotRefRepository(db *sql.DB) SnapshotRefRepository {
	return &sqlSnapshotRefRepository{db: db, driver: "sqlite3"}
}

func (r *sqlSnapshotRefRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// bind turns $1, $2 ... into ? for sqlite.
func (r *sqlSnapshotRefRepository) bind(query string) string {
	if r.driver != "sqlite3" {
		return query
	}
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '$' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (r *sqlSnapshotRefRepository) Upsert(ctx context.Context, exec SQLExecutor, ref *models.SnapshotRef) error {
	executor := r.getExecutor(exec)
	if ref.UpdatedAt.IsZero() {
		ref.UpdatedAt = time.Now().UTC()
	}
	query := r.bind(`INSERT INTO snapshot_refs (name, cid, kind, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET cid = excluded.cid, kind = excluded.kind, updated_at = excluded.updated_at`)

	_, err := executor.ExecContext(ctx, query, ref.Name, ref.CID, ref.Kind, ref.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return ErrSnapshotRefNameInvalid
		}
		return fmt.Errorf("failed to upsert snapshot reference %q: %w", ref.Name, err)
	}
	return nil
}

func (r *sqlSnapshotRefRepository) GetByName(ctx context.Context, name string) (*models.SnapshotRef, error) {
	query := r.bind(`SELECT name, cid, kind, updated_at FROM snapshot_refs WHERE name = $1`)

	var ref models.SnapshotRef
	err := r.db.QueryRowContext(ctx, query, name).Scan(&ref.Name, &ref.CID, &ref.Kind, &ref.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotRefNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot reference %q: %w", name, err)
	}
	return &ref, nil
}

func (r *sqlSnapshotRefRepository) ListByKind(ctx context.Context, kind string) ([]models.SnapshotRef, error) {
	query := r.bind(`SELECT name, cid, kind, updated_at FROM snapshot_refs WHERE kind = $1 ORDER BY name ASC`)

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot references: %w", err)
	}
	defer rows.Close()

	refs := make([]models.SnapshotRef, 0)
	for rows.Next() {
		var ref models.SnapshotRef
		if err := rows.Scan(&ref.Name, &ref.CID, &ref.Kind, &ref.UpdatedAt); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *sqlSnapshotRefRepository) Delete(ctx context.Context, name string) error {
	query := r.bind(`DELETE FROM snapshot_refs WHERE name = $1`)

	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot reference %q: %w", name, err)
	}
	return checkAffectedRows(result, ErrSnapshotRefNotFound)
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23514" // check_violation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintCheck
	}
	return false
}

// memorySnapshotRefRepository is used when no DATABASE_URL is configured.
type memorySnapshotRefRepository struct {
	mu   sync.RWMutex
	refs map[string]models.SnapshotRef
}

func NewMemorySnapshotRefRepository() SnapshotRefRepository {
	return &memorySnapshotRefRepository{refs: make(map[string]models.SnapshotRef)}
}

func (r *memorySnapshotRefRepository) Upsert(_ context.Context, _ SQLExecutor, ref *models.SnapshotRef) error {
	if ref.Name == "" {
		return ErrSnapshotRefNameInvalid
	}
	if ref.UpdatedAt.IsZero() {
		ref.UpdatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	r.refs[ref.Name] = *ref
	r.mu.Unlock()
	return nil
}

func (r *memorySnapshotRefRepository) GetByName(_ context.Context, name string) (*models.SnapshotRef, error) {
	r.mu.RLock()
	ref, ok := r.refs[name]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSnapshotRefNotFound
	}
	return &ref, nil
}

func (r *memorySnapshotRefRepository) ListByKind(_ context.Context, kind string) ([]models.SnapshotRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]models.SnapshotRef, 0)
	for _, ref := range r.refs {
		if ref.Kind == kind {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func (r *memorySnapshotRefRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.refs[name]; !ok {
		return ErrSnapshotRefNotFound
	}
	delete(r.refs, name)
	return nil
}
