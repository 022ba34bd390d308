package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"poputkaBack/internal/models"
)

type ChatRepository struct {
	DB *sql.DB
}

func (r *ChatRepository) GetChatByTripID(ctx context.Context, tripID int) (models.Chat, error) {
	var chat models.Chat
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, trip_id, created_at FROM chats WHERE trip_id = ?`, tripID,
	).Scan(&chat.ID, &chat.TripID, &chat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, models.ErrChatNotFound
	}
	if err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}

func (r *ChatRepository) IsMember(ctx context.Context, chatID, userID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM chat_members WHERE chat_id = ? AND user_id = ?)`,
		chatID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ChatRepository) GetMembers(ctx context.Context, chatID int) ([]models.ChatMember, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT chat_id, user_id, joined_at FROM chat_members WHERE chat_id = ? ORDER BY joined_at`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.ChatMember
	for rows.Next() {
		var member models.ChatMember
		if err := rows.Scan(&member.ChatID, &member.UserID, &member.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// GetMessages returns the chat history oldest first.
func (r *ChatRepository) GetMessages(ctx context.Context, chatID int) ([]models.Message, error) {
	query := `SELECT id, chat_id, sender_id, content, type, metadata, created_at
                  FROM messages WHERE chat_id = ? ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var (
			message  models.Message
			metadata sql.NullString
		)
		err := rows.Scan(&message.ID, &message.ChatID, &message.SenderID,
			&message.Content, &message.Type, &metadata, &message.CreatedAt)
		if err != nil {
			return nil, err
		}
		if metadata.Valid {
			message.Metadata = []byte(metadata.String)
		}
		messages = append(messages, message)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	message.ID = uuid.NewString()
	message.CreatedAt = time.Now().UTC()

	var metadata sql.NullString
	if len(message.Metadata) > 0 {
		metadata = sql.NullString{String: string(message.Metadata), Valid: true}
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO messages (id, chat_id, sender_id, content, type, metadata, created_at)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.ID, message.ChatID, message.SenderID, message.Content, message.Type, metadata, message.CreatedAt,
	)
	if err != nil {
		return models.Message{}, err
	}
	return message, nil
}
