package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colegioeccos/requesthub/internal/domain"
)

// ErrDateUnavailable is returned when a reservation's date is no longer in
// the availability ledger at commit time.
var ErrDateUnavailable = errors.New("reservation date not available")

// RequestFilter captures listing parameters. Statuses and ExcludeStatuses
// are mutually exclusive in practice; callers set one of them.
type RequestFilter struct {
	RequesterID     *string
	Types           []domain.RequestType
	Statuses        []domain.RequestStatus
	ExcludeStatuses []domain.RequestStatus
	SearchTerm      *string
	// OrderByStatusFirst mirrors the portal views: lists constrained by a
	// status predicate co-order by status before recency.
	OrderByStatusFirst bool
	Limit              int
	Offset             int
}

// RequestRepository encapsulates aggregate persistence. Mutations that the
// original portal implemented as read-modify-write (chat append, status
// swap, availability recheck) are atomic statements here.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.RequestStatus, error)
	AppendChat(ctx context.Context, id string, message domain.ChatMessage) error
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
	Delete(ctx context.Context, id string) error
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

// Create persists the aggregate. For reservations the availability ledger is
// re-checked inside the same transaction, closing most of the window between
// the caller's pre-check and the insert.
func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	payload, err := marshalPayload(request)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if request.Type == domain.RequestTypeReservation {
		const check = `
            SELECT EXISTS (
                SELECT 1 FROM availability WHERE day = $1::date AND is_available = TRUE
            )`
		var available bool
		if err := tx.QueryRow(ctx, check, domain.DayOf(request.Reservation.Date)).Scan(&available); err != nil {
			return err
		}
		if !available {
			return ErrDateUnavailable
		}
	}

	const insert = `
        INSERT INTO requests (requester_id, requester_name, requester_email, type, status, payload, chat)
        VALUES ($1,$2,$3,$4,$5,$6,'[]'::jsonb)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		request.RequesterID,
		request.RequesterName,
		request.RequesterEmail,
		request.Type,
		request.Status,
		payload,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	const query = `
        SELECT id, requester_id, requester_name, requester_email, type, status, payload, chat, created_at, updated_at
        FROM requests WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanRequestRow(row)
}

// UpdateStatus swaps the status atomically and returns the overwritten
// value, so callers can key side effects off the actual previous state.
func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.RequestStatus, error) {
	const query = `
        UPDATE requests r SET status=$2, updated_at=NOW()
        FROM (SELECT id, status AS prev FROM requests WHERE id=$1 FOR UPDATE) p
        WHERE r.id = p.id
        RETURNING p.prev`
	var prev domain.RequestStatus
	if err := r.pool.QueryRow(ctx, query, id, status).Scan(&prev); err != nil {
		return "", err
	}
	return prev, nil
}

// AppendChat appends one message to the embedded chat log in a single
// statement; concurrent appends cannot lose each other.
func (r *requestRepository) AppendChat(ctx context.Context, id string, message domain.ChatMessage) error {
	encoded, err := json.Marshal(message)
	if err != nil {
		return err
	}
	const query = `
        UPDATE requests SET chat = chat || $2::jsonb, updated_at=NOW()
        WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id, encoded)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *requestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	base := `SELECT id, requester_id, requester_name, requester_email, type, status, payload, chat, created_at, updated_at
             FROM requests`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("requester_id=$%d", len(args)))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			args = append(args, t)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("type IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	for _, status := range filter.ExcludeStatuses {
		args = append(args, status)
		clauses = append(clauses, fmt.Sprintf("status <> $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(requester_name) LIKE %s OR LOWER(requester_email) LIKE %s OR LOWER(payload::text) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	order := "created_at DESC"
	if filter.OrderByStatusFirst {
		order = "status ASC, created_at DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), order, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Request
	for rows.Next() {
		request, err := scanRequestRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *request)
	}
	return result, rows.Err()
}

func (r *requestRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func marshalPayload(request *domain.Request) ([]byte, error) {
	switch request.Type {
	case domain.RequestTypePurchase:
		return json.Marshal(request.Purchase)
	case domain.RequestTypeSupport:
		return json.Marshal(request.Support)
	case domain.RequestTypeReservation:
		return json.Marshal(request.Reservation)
	default:
		return nil, fmt.Errorf("unknown request type %q", request.Type)
	}
}

func scanRequestRow(row pgx.Row) (*domain.Request, error) {
	var (
		request domain.Request
		payload []byte
		chat    []byte
	)
	if err := row.Scan(
		&request.ID,
		&request.RequesterID,
		&request.RequesterName,
		&request.RequesterEmail,
		&request.Type,
		&request.Status,
		&payload,
		&chat,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}

	switch request.Type {
	case domain.RequestTypePurchase:
		request.Purchase = &domain.PurchaseDetails{}
		if err := json.Unmarshal(payload, request.Purchase); err != nil {
			return nil, err
		}
	case domain.RequestTypeSupport:
		request.Support = &domain.SupportDetails{}
		if err := json.Unmarshal(payload, request.Support); err != nil {
			return nil, err
		}
	case domain.RequestTypeReservation:
		request.Reservation = &domain.ReservationDetails{}
		if err := json.Unmarshal(payload, request.Reservation); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown request type %q", request.Type)
	}

	if err := json.Unmarshal(chat, &request.Chat); err != nil {
		return nil, err
	}
	return &request, nil
}
