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

const (
	requestTableName  = schema + ".blood_requests"
	responseTableName = schema + ".request_responses"
)

var (
	requestColumns  = utils.StructTagValues(types.BloodRequest{})
	responseColumns = utils.StructTagValues(types.DonorResponse{})
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) CreateRequest(ctx context.Context, request *types.BloodRequest) error {
	request.ID = utils.NanoID()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	if request.Status == "" {
		request.Status = types.RequestStatusActive
	}

	query, args, err := psql().
		Insert(requestTableName).
		SetMap(utils.StructToMap(request)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create request")
}

func (r *RequestRepository) Request(ctx context.Context, requestID string) (*types.BloodRequest, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var request types.BloodRequest
	err = pgxscan.Get(ctx, r.pool, &request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}

	responses, err := r.responses(ctx, []string{requestID})
	if err != nil {
		return nil, err
	}
	request.Responses = responses[requestID]

	return &request, nil
}

// Requests returns every request in submission order with its responses.
func (r *RequestRepository) Requests(ctx context.Context) ([]*types.BloodRequest, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTableName).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate requests query: %w", err)
	}

	requests := make([]*types.BloodRequest, 0)
	if err := pgxscan.Select(ctx, r.pool, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}

	if len(requests) == 0 {
		return requests, nil
	}

	requestIDs := make([]string, 0, len(requests))
	for _, request := range requests {
		requestIDs = append(requestIDs, request.ID)
	}

	responses, err := r.responses(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		request.Responses = responses[request.ID]
	}

	return requests, nil
}

func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, requestID string, status types.RequestStatus) error {
	query, args, err := psql().
		Update(requestTableName).
		Set("status", status).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update request status query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrRequestNotFound
	}

	return nil
}

func (r *RequestRepository) AddResponse(ctx context.Context, requestID string, response types.DonorResponse) error {
	response.RequestID = requestID

	query, args, err := psql().
		Insert(responseTableName).
		SetMap(utils.StructToMap(response)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert response query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to record donor response")
}

func (r *RequestRepository) responses(ctx context.Context, requestIDs []string) (map[string][]types.DonorResponse, error) {
	query, args, err := psql().
		Select(responseColumns...).
		From(responseTableName).
		Where(sq.Eq{"request_id": requestIDs}).
		OrderBy("responded_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate responses query: %w", err)
	}

	var rows []types.DonorResponse
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch responses: %w", err)
	}

	out := make(map[string][]types.DonorResponse, len(requestIDs))
	for _, row := range rows {
		out[row.RequestID] = append(out[row.RequestID], row)
	}

	return out, nil
}
