package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mogiel/konec/internal/domain"
)

const concreteColumns = `name, fck, fck_cube, fcm, fctm, fctk_0_05, fctk_0_95, ecm,
	eps_c1, eps_cu1, eps_c2, eps_cu2, n, eps_c3, eps_cu3`

type ConcreteRepo struct {
	pool *pgxpool.Pool
}

var _ domain.ConcreteRepository = (*ConcreteRepo)(nil)

func NewConcreteRepo(pool *pgxpool.Pool) *ConcreteRepo {
	return &ConcreteRepo{pool: pool}
}

func (r *ConcreteRepo) List(ctx context.Context) ([]domain.ConcreteClass, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+concreteColumns+` FROM concrete_strength_class ORDER BY fck, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list concrete classes: %w", err)
	}

	classes, err := pgx.CollectRows(rows, scanConcreteClass)
	if err != nil {
		return nil, fmt.Errorf("failed to scan concrete classes: %w", err)
	}
	return classes, nil
}

func (r *ConcreteRepo) Get(ctx context.Context, name string) (*domain.ConcreteClass, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+concreteColumns+` FROM concrete_strength_class WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get concrete class: %w", err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanConcreteClass)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrConcreteClassNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan concrete class: %w", err)
	}
	return &c, nil
}

// SeedConcreteClasses upserts classes in one transaction. Rows not in classes are left alone.
func (r *ConcreteRepo) SeedConcreteClasses(ctx context.Context, classes []domain.ConcreteClass) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, c := range classes {
		batch.Queue(`
			INSERT INTO concrete_strength_class (`+concreteColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (name) DO UPDATE SET
				fck = EXCLUDED.fck,
				fck_cube = EXCLUDED.fck_cube,
				fcm = EXCLUDED.fcm,
				fctm = EXCLUDED.fctm,
				fctk_0_05 = EXCLUDED.fctk_0_05,
				fctk_0_95 = EXCLUDED.fctk_0_95,
				ecm = EXCLUDED.ecm,
				eps_c1 = EXCLUDED.eps_c1,
				eps_cu1 = EXCLUDED.eps_cu1,
				eps_c2 = EXCLUDED.eps_c2,
				eps_cu2 = EXCLUDED.eps_cu2,
				n = EXCLUDED.n,
				eps_c3 = EXCLUDED.eps_c3,
				eps_cu3 = EXCLUDED.eps_cu3,
				updated_at = NOW()`,
			c.Name, c.Fck, c.FckCube, c.Fcm, c.Fctm, c.Fctk005, c.Fctk095, c.Ecm,
			c.EpsC1, c.EpsCU1, c.EpsC2, c.EpsCU2, c.N, c.EpsC3, c.EpsCU3,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to seed concrete classes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit concrete seed: %w", err)
	}
	return nil
}

func scanConcreteClass(row pgx.CollectableRow) (domain.ConcreteClass, error) {
	var c domain.ConcreteClass
	err := row.Scan(
		&c.Name, &c.Fck, &c.FckCube, &c.Fcm, &c.Fctm, &c.Fctk005, &c.Fctk095, &c.Ecm,
		&c.EpsC1, &c.EpsCU1, &c.EpsC2, &c.EpsCU2, &c.N, &c.EpsC3, &c.EpsCU3,
	)
	return c, err
}
