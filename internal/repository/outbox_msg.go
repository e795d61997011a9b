package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db/sqlc"
)

var errOutboxMsgTopicRequired = errors.New("outbox msg topic is required")

// CreateOutboxMsgParams describes an event about a single product. Events are
// keyed by product so the broker keeps them in order per product.
type CreateOutboxMsgParams struct {
	Topic     string
	ProductID int64
	Headers   map[string]string
	Payload   json.RawMessage
}

func (p CreateOutboxMsgParams) PartitionKey() string {
	return strconv.FormatInt(p.ProductID, 10)
}

type ListUnprocessedOutboxMsgsParams struct {
	BatchSize int32
}

type ListUnprocessedOutboxMsgsResult struct {
	ID           uuid.UUID
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
}

// OutboxMsgRelayResult is the outcome of publishing one message. A nil Error
// means the broker accepted it.
type OutboxMsgRelayResult struct {
	ID    uuid.UUID
	Error *string
}

type OutboxMsgRepository interface {
	WithDB(db db.DB) OutboxMsgRepository
	CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error
	ListUnprocessedOutboxMsgs(ctx context.Context, params ListUnprocessedOutboxMsgsParams) ([]ListUnprocessedOutboxMsgsResult, error)
	MarkOutboxMsgsRelayed(ctx context.Context, results []OutboxMsgRelayResult) error
}

type outboxMsgRepository struct {
	db      db.DB
	queries *sqlc.Queries
}

func NewOutboxMsgRepository(db db.DB, queries *sqlc.Queries) OutboxMsgRepository {
	return &outboxMsgRepository{
		db:      db,
		queries: queries,
	}
}

func (r outboxMsgRepository) WithDB(db db.DB) OutboxMsgRepository {
	return &outboxMsgRepository{
		db:      db,
		queries: r.queries,
	}
}

func (r outboxMsgRepository) CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error {
	if params.Topic == "" {
		return errOutboxMsgTopicRequired
	}

	headers, err := encodeHeaders(params.Headers)
	if err != nil {
		return err
	}

	key := params.PartitionKey()
	if err := r.queries.OutboxMsgCreate(ctx, r.db, sqlc.OutboxMsgCreateParams{
		Topic:        params.Topic,
		Headers:      headers,
		Payload:      params.Payload,
		PartitionKey: &key,
		CreatedAt:    timeNow(),
	}); err != nil {
		return fmt.Errorf("outbox msg create %s for product %d: %w", params.Topic, params.ProductID, err)
	}

	return nil
}

func (r outboxMsgRepository) ListUnprocessedOutboxMsgs(ctx context.Context, params ListUnprocessedOutboxMsgsParams) ([]ListUnprocessedOutboxMsgsResult, error) {
	rows, err := r.queries.OutboxMsgListUnprocessed(ctx, r.db, params.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("outbox msg list unprocessed: %w", err)
	}

	results := make([]ListUnprocessedOutboxMsgsResult, len(rows))
	for i, row := range rows {
		headers, err := decodeHeaders(row.Headers)
		if err != nil {
			return nil, fmt.Errorf("outbox msg %s: %w", row.ID, err)
		}

		results[i] = ListUnprocessedOutboxMsgsResult{
			ID:           row.ID,
			Topic:        row.Topic,
			Headers:      headers,
			Payload:      row.Payload,
			PartitionKey: row.PartitionKey,
		}
	}

	return results, nil
}

// MarkOutboxMsgsRelayed stamps processed_at on every message of a relay batch,
// storing the publish error for the ones the broker rejected.
func (r outboxMsgRepository) MarkOutboxMsgsRelayed(ctx context.Context, results []OutboxMsgRelayResult) error {
	if len(results) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(results))
	errs := make([]*string, len(results))
	for i, res := range results {
		ids[i] = res.ID
		errs[i] = res.Error
	}

	if _, err := r.db.Exec(ctx, `
		UPDATE outbox_messages AS o
		SET processed_at = NOW(),
			error        = r.error
		FROM UNNEST(@ids::uuid[], @errors::text[]) AS r(id, error)
		WHERE o.id = r.id
	`, pgx.NamedArgs{
		"ids":    ids,
		"errors": errs,
	}); err != nil {
		return fmt.Errorf("outbox msg mark relayed: %w", err)
	}

	return nil
}

func encodeHeaders(headers map[string]string) (*json.RawMessage, error) {
	if len(headers) == 0 {
		return nil, nil
	}

	b, err := json.Marshal(headers)
	if err != nil {
		return nil, fmt.Errorf("marshal headers: %w", err)
	}

	raw := json.RawMessage(b)
	return &raw, nil
}

func decodeHeaders(raw *json.RawMessage) (map[string]string, error) {
	headers := map[string]string{}
	if raw == nil {
		return headers, nil
	}

	if err := json.Unmarshal(*raw, &headers); err != nil {
		return nil, fmt.Errorf("unmarshal headers: %w", err)
	}
	return headers, nil
}
