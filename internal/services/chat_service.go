package services

import (
	"context"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
)

type ChatService struct {
	ChatRepo *repositories.ChatRepository
}

// GetTripChat returns the chat of a trip with its members and full
// history. Only chat members may read it.
func (s *ChatService) GetTripChat(ctx context.Context, viewerID, tripID int) (models.ChatResponse, error) {
	chat, err := s.ChatRepo.GetChatByTripID(ctx, tripID)
	if err != nil {
		return models.ChatResponse{}, err
	}

	member, err := s.ChatRepo.IsMember(ctx, chat.ID, viewerID)
	if err != nil {
		return models.ChatResponse{}, err
	}
	if !member {
		return models.ChatResponse{}, models.ErrNotChatMember
	}

	members, err := s.ChatRepo.GetMembers(ctx, chat.ID)
	if err != nil {
		return models.ChatResponse{}, err
	}
	messages, err := s.ChatRepo.GetMessages(ctx, chat.ID)
	if err != nil {
		return models.ChatResponse{}, err
	}
	if messages == nil {
		messages = []models.Message{}
	}

	return models.ChatResponse{
		ChatID:   chat.ID,
		TripID:   chat.TripID,
		Members:  members,
		Messages: messages,
	}, nil
}

// SendMessage appends a message to the trip chat. It returns the updated
// chat with its full ordered history plus the stored message itself, which
// carries the generated id and timestamp for the websocket fan-out.
func (s *ChatService) SendMessage(ctx context.Context, senderID, tripID int, req models.CreateMessageRequest) (models.ChatResponse, models.Message, error) {
	chat, err := s.ChatRepo.GetChatByTripID(ctx, tripID)
	if err != nil {
		return models.ChatResponse{}, models.Message{}, err
	}

	member, err := s.ChatRepo.IsMember(ctx, chat.ID, senderID)
	if err != nil {
		return models.ChatResponse{}, models.Message{}, err
	}
	if !member {
		return models.ChatResponse{}, models.Message{}, models.ErrNotChatMember
	}

	messageType := req.Type
	if messageType == "" {
		messageType = models.MessageTypeText
	}
	switch messageType {
	case models.MessageTypeText, models.MessageTypeImage, models.MessageTypeLocation:
	default:
		return models.ChatResponse{}, models.Message{}, models.Validationf("unknown message type %q", messageType)
	}

	message, err := s.ChatRepo.CreateMessage(ctx, models.Message{
		ChatID:   chat.ID,
		SenderID: senderID,
		Content:  req.Content,
		Type:     messageType,
		Metadata: req.Metadata,
	})
	if err != nil {
		return models.ChatResponse{}, models.Message{}, err
	}

	members, err := s.ChatRepo.GetMembers(ctx, chat.ID)
	if err != nil {
		return models.ChatResponse{}, models.Message{}, err
	}
	messages, err := s.ChatRepo.GetMessages(ctx, chat.ID)
	if err != nil {
		return models.ChatResponse{}, models.Message{}, err
	}
	if messages == nil {
		messages = []models.Message{}
	}

	return models.ChatResponse{
		ChatID:   chat.ID,
		TripID:   chat.TripID,
		Members:  members,
		Messages: messages,
	}, message, nil
}
