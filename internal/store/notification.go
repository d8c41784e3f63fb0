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

const notificationTableName = schema + ".notifications"

var notificationColumns = utils.StructTagValues(types.Notification{})

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, notification *types.Notification) error {
	notification.ID = utils.NanoID()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	if notification.Status == "" {
		notification.Status = types.NotificationUnread
	}

	query, args, err := psql().
		Insert(notificationTableName).
		SetMap(utils.StructToMap(notification)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert notification query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create notification")
}

func (r *NotificationRepository) Notification(ctx context.Context, notificationID string) (*types.Notification, error) {
	query, args, err := psql().
		Select(notificationColumns...).
		From(notificationTableName).
		Where(sq.Eq{"id": notificationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notification query: %w", err)
	}

	var notification types.Notification
	err = pgxscan.Get(ctx, r.pool, &notification, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to fetch notification: %w", err)
	}

	return &notification, nil
}

// Notifications returns notifications newest first. An empty donorID
// returns every donor's notifications.
func (r *NotificationRepository) Notifications(ctx context.Context, donorID string) ([]*types.Notification, error) {
	builder := psql().
		Select(notificationColumns...).
		From(notificationTableName).
		OrderBy("created_at DESC")

	if donorID != "" {
		builder = builder.Where(sq.Eq{"donor_id": donorID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notifications query: %w", err)
	}

	out := make([]*types.Notification, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return out, nil
}

func (r *NotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string) error {
	query, args, err := psql().
		Update(notificationTableName).
		Set("status", types.NotificationRead).
		Where(sq.Eq{"id": notificationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate mark read query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrNotificationNotFound
	}

	return nil
}
