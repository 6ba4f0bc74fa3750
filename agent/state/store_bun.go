package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// BunStore persists sessions in Postgres as JSON payloads. It satisfies the
// same Store contract as MemoryStore for deployments that need sessions to
// survive a process restart.
type BunStore struct {
	db  *bun.DB
	ttl time.Duration
}

type sessionRow struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID        string    `bun:"id,pk"`
	Payload   []byte    `bun:"payload,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type BunStoreConfig struct {
	DSN string        `envconfig:"DSN" split_words:"true" required:"true"`
	TTL time.Duration `envconfig:"TTL" split_words:"true" default:"24h"`
}

func NewBunStore(cfg BunStoreConfig) (*BunStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	ttl := cfg.TTL
	if ttl < 0 {
		return nil, errors.New("ttl must be >= 0")
	}

	return &BunStore{db: db, ttl: ttl}, nil
}

// EnsureSchema creates the sessions table when missing.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*sessionRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *BunStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrEmptySessionID
	}

	row := new(sessionRow)
	err := s.db.NewSelect().
		Model(row).
		Where("id = ?", sessionID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if s.ttl > 0 && time.Since(row.UpdatedAt) > s.ttl {
		if err := s.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal(row.Payload, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session payload: %w", err)
	}
	if err := sess.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session loaded from store: %w", err)
	}
	return &sess, nil
}

func (s *BunStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrNilSession
	}
	if strings.TrimSpace(sess.ID) == "" {
		return ErrEmptySessionID
	}
	if err := sess.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	row := &sessionRow{
		ID:        sess.ID,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	_, err = s.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrEmptySessionID
	}
	_, err := s.db.NewDelete().
		Model((*sessionRow)(nil)).
		Where("id = ?", sessionID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *BunStore) Close() error {
	return s.db.Close()
}
