package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

const uniqueViolation = "23505"

type PgConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

func (r *PgConversationRepository) FindByID(ctx context.Context, id int64) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	var c chat.Conversation
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM conversations WHERE id = $1",
		id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgConversationRepository) FindPairwise(ctx context.Context, userA, userB int64) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	var c chat.Conversation
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM conversations WHERE pair_key = $1",
		chat.PairKey(userA, userB),
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the conversation, its participants and the seed message in a
// single transaction. Two concurrent creates for the same pair race on the
// pair_key unique index; the loser gets chat.ErrConversationExists and is
// expected to re-fetch.
func (r *PgConversationRepository) Create(ctx context.Context, name string, participantIDs []int64, seed chat.Message) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var pairKey *string
	if len(participantIDs) == 2 {
		k := chat.PairKey(participantIDs[0], participantIDs[1])
		pairKey = &k
	}

	var c chat.Conversation
	err = tx.QueryRow(ctx, `
		INSERT INTO conversations (name, pair_key, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, name, created_at
	`, name, pairKey, seed.CreatedAt).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, chat.ErrConversationExists
		}
		return nil, err
	}

	for _, uid := range participantIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO conversation_user (conversation_id, user_id, unread)
			VALUES ($1, $2, false)
			ON CONFLICT (conversation_id, user_id) DO NOTHING
		`, c.ID, uid); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO messages (conversation_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, seed.UserID, seed.Content, seed.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgConversationRepository) Participants(ctx context.Context, conversationID int64) ([]chat.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name
		FROM users u
		JOIN conversation_user cu ON cu.user_id = u.id
		WHERE cu.conversation_id = $1
		ORDER BY u.id
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []chat.User
	for rows.Next() {
		var u chat.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgConversationRepository) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgConversationRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM conversation_user
			WHERE conversation_id = $1 AND user_id = $2
		)
	`, conversationID, userID).Scan(&exists)
	return exists, err
}

func (r *PgConversationRepository) ListByUser(ctx context.Context, userID int64) ([]chat.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT conversation_id, user_id, unread
		FROM conversation_user
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []chat.Participant
	for rows.Next() {
		var p chat.Participant
		if err := rows.Scan(&p.ConversationID, &p.UserID, &p.Unread); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *PgConversationRepository) MarkRead(ctx context.Context, conversationID, userID int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgConversationRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE conversation_user
		SET unread = false
		WHERE conversation_id = $1 AND user_id = $2
	`, conversationID, userID)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
