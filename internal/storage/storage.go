package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage interface {
	SaveGuildWatch(ctx context.Context, guildID, channelID string) error
	DeleteGuildWatch(ctx context.Context, guildID string) error
	GetWatches(ctx context.Context) (map[string]string, error)
	MarkReminded(ctx context.Context, eventID string) (bool, error)
	DeleteOldReminders(ctx context.Context, threshold time.Duration) (int64, error)
	Close()
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) SaveGuildWatch(ctx context.Context, guildID, channelID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO guild_watches (guild_id, channel_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (guild_id) DO UPDATE SET channel_id = $2, updated_at = now()`,
		guildID, channelID)
	return err
}

func (s *PostgresStore) DeleteGuildWatch(ctx context.Context, guildID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM guild_watches WHERE guild_id = $1`, guildID)
	return err
}

// GetWatches returns announcement channel IDs keyed by guild ID.
func (s *PostgresStore) GetWatches(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT guild_id, channel_id FROM guild_watches`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var guildID, channelID string
		if err := rows.Scan(&guildID, &channelID); err != nil {
			return nil, err
		}
		result[guildID] = channelID
	}
	return result, rows.Err()
}

// MarkReminded records that a reminder went out for the event. It
// returns true only on the first call per event, so announcements are
// sent at most once.
func (s *PostgresStore) MarkReminded(ctx context.Context, eventID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO event_reminders (event_id, reminded_at)
		VALUES ($1, now())
		ON CONFLICT (event_id) DO NOTHING`,
		eventID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) DeleteOldReminders(ctx context.Context, threshold time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM event_reminders WHERE reminded_at < now() - $1::interval`,
		fmt.Sprintf("%d seconds", int64(threshold.Seconds())))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
