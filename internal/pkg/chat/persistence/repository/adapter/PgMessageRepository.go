package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Append inserts the message and flips unread for every other participant in
// one transaction, so readers never see one without the other.
func (r *PgMessageRepository) Append(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	saved := m
	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, m.ConversationID, m.UserID, m.Content, m.CreatedAt).Scan(&saved.ID)
	if err != nil {
		return nil, err
	}

	// The sender's own flag is left untouched.
	if _, err := tx.Exec(ctx, `
		UPDATE conversation_user
		SET unread = true
		WHERE conversation_id = $1 AND user_id != $2
	`, m.ConversationID, m.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PgMessageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]chat.MessageWithSender, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.conversation_id, m.user_id, m.content, m.created_at, u.id, u.name
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC, m.id ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.MessageWithSender
	for rows.Next() {
		var mw chat.MessageWithSender
		if err := rows.Scan(
			&mw.ID, &mw.ConversationID, &mw.UserID, &mw.Content, &mw.CreatedAt,
			&mw.Sender.ID, &mw.Sender.Name,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, mw)
	}
	return msgs, rows.Err()
}

func (r *PgMessageRepository) LastByConversation(ctx context.Context, conversationID int64) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	var m chat.Message
	err := r.pool.QueryRow(ctx, `
		SELECT id, conversation_id, user_id, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, conversationID).Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Content, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
