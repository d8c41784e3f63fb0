package store

import (
	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const donorTableName = schema + ".donors"

var donorColumns = utils.StructTagValues(types.Donor{})

type DonorRepository struct {
	pool *pgxpool.Pool
}

func NewDonorRepository(pool *pgxpool.Pool) *DonorRepository {
	return &DonorRepository{pool: pool}
}

func (r *DonorRepository) Donor(ctx context.Context, donorID string) (*types.Donor, error) {
	query, args, err := psql().
		Select(donorColumns...).
		From(donorTableName).
		Where(sq.Eq{"id": donorID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor query: %w", err)
	}

	var donor types.Donor
	err = pgxscan.Get(ctx, r.pool, &donor, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonorNotFound
		}
		return nil, fmt.Errorf("failed to fetch donor: %w", err)
	}

	return &donor, nil
}

// Donors reads every donor in one statement, so the result is a consistent
// snapshot of the table.
func (r *DonorRepository) Donors(ctx context.Context) ([]*types.Donor, error) {
	query, args, err := psql().
		Select(donorColumns...).
		From(donorTableName).
		OrderBy("registered_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donors query: %w", err)
	}

	donors := make([]*types.Donor, 0)
	err = pgxscan.Select(ctx, r.pool, &donors, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donors: %w", err)
	}

	return donors, nil
}

func (r *DonorRepository) CreateDonor(ctx context.Context, donor *types.Donor) error {
	if donor.ID == "" {
		donor.ID = utils.NanoID()
	}
	if donor.RegisteredAt.IsZero() {
		donor.RegisteredAt = time.Now()
	}
	if donor.Badges == nil {
		donor.Badges = []string{}
	}
	if donor.MedicalConditions == nil {
		donor.MedicalConditions = []string{}
	}

	query, args, err := psql().
		Insert(donorTableName).
		SetMap(utils.StructToMap(donor)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donor query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donor")
}

func (r *DonorRepository) UpdateDonor(ctx context.Context, donor *types.Donor) error {
	query, args, err := psql().
		Update(donorTableName).
		SetMap(utils.StructToMap(donor, "id", "registered_at")).
		Where(sq.Eq{"id": donor.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update donor query for donor %s: %w", donor.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update donor: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrDonorNotFound
	}

	return nil
}
