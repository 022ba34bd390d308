package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
)

func newChatService(t *testing.T) (*ChatService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &ChatService{ChatRepo: &repositories.ChatRepository{DB: db}}, mock
}

func TestGetTripChatNotMember(t *testing.T) {
	svc, mock := newChatService(t)

	mock.ExpectQuery("FROM chats WHERE trip_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "created_at"}).AddRow(9, 3, time.Now()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(9, 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.GetTripChat(context.Background(), 42, 3)
	if !errors.Is(err, models.ErrNotChatMember) {
		t.Fatalf("err = %v; want ErrNotChatMember", err)
	}
}

func TestGetTripChatNotFound(t *testing.T) {
	svc, mock := newChatService(t)

	mock.ExpectQuery("FROM chats WHERE trip_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "created_at"}))

	_, err := svc.GetTripChat(context.Background(), 42, 3)
	if !errors.Is(err, models.ErrChatNotFound) {
		t.Fatalf("err = %v; want ErrChatNotFound", err)
	}
}

func TestSendMessageNotMember(t *testing.T) {
	svc, mock := newChatService(t)

	mock.ExpectQuery("FROM chats WHERE trip_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "created_at"}).AddRow(9, 3, time.Now()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(9, 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, _, err := svc.SendMessage(context.Background(), 42, 3, models.CreateMessageRequest{Content: "hi"})
	if !errors.Is(err, models.ErrNotChatMember) {
		t.Fatalf("err = %v; want ErrNotChatMember", err)
	}
}

func TestSendMessageRejectsUnknownType(t *testing.T) {
	svc, mock := newChatService(t)

	mock.ExpectQuery("FROM chats WHERE trip_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "created_at"}).AddRow(9, 3, time.Now()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(9, 11).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, _, err := svc.SendMessage(context.Background(), 11, 3, models.CreateMessageRequest{Content: "hi", Type: "VOICE"})
	var validationErr models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v; want ValidationError", err)
	}
}

func TestSendMessageReturnsOrderedHistory(t *testing.T) {
	svc, mock := newChatService(t)

	mock.ExpectQuery("FROM chats WHERE trip_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "created_at"}).AddRow(9, 3, time.Now()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(9, 11).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(sqlmock.AnyArg(), 9, 11, "second", models.MessageTypeText, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM chat_members").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"chat_id", "user_id", "joined_at"}).
			AddRow(9, 5, time.Now()).
			AddRow(9, 11, time.Now()))
	mock.ExpectQuery("FROM messages").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "chat_id", "sender_id", "content", "type", "metadata", "created_at"}).
			AddRow("m-1", 9, 5, "first", models.MessageTypeText, nil, time.Now().Add(-time.Minute)).
			AddRow("m-2", 9, 11, "second", models.MessageTypeText, nil, time.Now()))

	chat, message, err := svc.SendMessage(context.Background(), 11, 3, models.CreateMessageRequest{Content: "second"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if message.Type != models.MessageTypeText {
		t.Errorf("type = %q; want TEXT", message.Type)
	}
	if message.ID == "" {
		t.Error("message id should be generated")
	}
	if len(chat.Messages) != 2 {
		t.Fatalf("messages = %d; want the full history", len(chat.Messages))
	}
	if chat.Messages[0].Content != "first" || chat.Messages[1].Content != "second" {
		t.Errorf("history out of order: %q, %q", chat.Messages[0].Content, chat.Messages[1].Content)
	}
	if ids := chat.MemberIDs(); len(ids) != 2 || ids[0] != 5 || ids[1] != 11 {
		t.Errorf("member ids = %v; want [5 11]", ids)
	}
}
