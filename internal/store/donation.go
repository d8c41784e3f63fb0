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

const donationTableName = schema + ".donations"

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) CreateDonation(ctx context.Context, donation *types.Donation) error {
	donation.ID = utils.NanoID()
	if donation.DonatedAt.IsZero() {
		donation.DonatedAt = time.Now()
	}

	query, args, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(donation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donation")
}

// Donations returns donations oldest first. An empty donorID returns all.
func (r *DonationRepository) Donations(ctx context.Context, donorID string) ([]*types.Donation, error) {
	builder := psql().
		Select(donationColumns...).
		From(donationTableName).
		OrderBy("donated_at ASC")

	if donorID != "" {
		builder = builder.Where(sq.Eq{"donor_id": donorID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donations query: %w", err)
	}

	out := make([]*types.Donation, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch donations: %w", err)
	}

	return out, nil
}
