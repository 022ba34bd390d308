package services

import (
	"context"
	"strconv"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
)

type TripRequestService struct {
	RequestRepo   *repositories.TripRequestRepository
	TripRepo      *repositories.TripRepository
	Notifications *NotificationService
}

// CreateRequest validates the preconditions in order: the trip must exist,
// must not be the requester's own, the payload must be valid, and there
// must be no active duplicate.
func (s *TripRequestService) CreateRequest(ctx context.Context, requesterID, tripID int, req models.CreateTripRequestRequest) (models.TripRequest, error) {
	trip, err := s.TripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return models.TripRequest{}, err
	}
	if trip.UserID == requesterID {
		return models.TripRequest{}, models.ErrOwnTrip
	}

	requestType := req.Type
	if requestType == "" {
		requestType = models.RequestTypeBooking
	}
	if requestType != models.RequestTypeBooking && requestType != models.RequestTypeChat {
		return models.TripRequest{}, models.Validationf("unknown request type %q", requestType)
	}

	if requestType == models.RequestTypeBooking {
		if req.SeatsRequested == nil || *req.SeatsRequested < 1 {
			return models.TripRequest{}, models.ErrSeatsRequired
		}
		if trip.IsFull {
			return models.TripRequest{}, models.ErrTripFull
		}
		if *req.SeatsRequested > trip.AvailableSeats {
			return models.TripRequest{}, models.ErrNotEnoughSeats
		}
	}

	exists, err := s.RequestRepo.HasActiveRequest(ctx, tripID, requesterID, requestType)
	if err != nil {
		return models.TripRequest{}, err
	}
	if exists {
		return models.TripRequest{}, models.ErrDuplicateRequest
	}

	request := models.TripRequest{
		TripID:      tripID,
		RequesterID: requesterID,
		Type:        requestType,
		Status:      models.RequestStatusPending,
	}
	if requestType == models.RequestTypeBooking {
		request.SeatsRequested = req.SeatsRequested
	}
	return s.RequestRepo.CreateRequest(ctx, request)
}

// ListRequests returns the trip's requests. The trip owner sees all of
// them, anyone else only their own.
func (s *TripRequestService) ListRequests(ctx context.Context, viewerID, tripID int) ([]models.TripRequest, error) {
	trip, err := s.TripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	requests, err := s.RequestRepo.ListRequestsByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID == viewerID {
		return requests, nil
	}

	var own []models.TripRequest
	for _, request := range requests {
		if request.RequesterID == viewerID {
			own = append(own, request)
		}
	}
	return own, nil
}

// UpdateRequest applies a transition. CANCEL belongs to the requester,
// ACCEPT and REJECT to the trip owner; only PENDING requests move.
func (s *TripRequestService) UpdateRequest(ctx context.Context, actorID, requestID int, action string) (models.TripRequestResult, error) {
	request, err := s.RequestRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.TripRequestResult{}, err
	}
	if request.Status != models.RequestStatusPending {
		return models.TripRequestResult{}, models.ErrRequestNotPending
	}

	switch action {
	case models.RequestActionCancel:
		if request.RequesterID != actorID {
			return models.TripRequestResult{}, models.ErrNotRequester
		}
		if err = s.RequestRepo.UpdateStatus(ctx, requestID, models.RequestStatusCancelled); err != nil {
			return models.TripRequestResult{}, err
		}
		request.Status = models.RequestStatusCancelled
		return models.TripRequestResult{TripRequest: request}, nil

	case models.RequestActionReject:
		if request.TripOwnerID != actorID {
			return models.TripRequestResult{}, models.ErrNotTripOwner
		}
		if err = s.RequestRepo.UpdateStatus(ctx, requestID, models.RequestStatusRejected); err != nil {
			return models.TripRequestResult{}, err
		}
		request.Status = models.RequestStatusRejected
		return models.TripRequestResult{TripRequest: request}, nil

	case models.RequestActionAccept:
		if request.TripOwnerID != actorID {
			return models.TripRequestResult{}, models.ErrNotTripOwner
		}
		chatID, err := s.RequestRepo.AcceptRequest(ctx, request)
		if err != nil {
			return models.TripRequestResult{}, err
		}
		request.Status = models.RequestStatusAccepted

		if s.Notifications != nil {
			s.Notifications.SendToUser(ctx, request.RequesterID,
				"Request accepted",
				"Your trip request was accepted by the driver",
				map[string]string{
					"trip_id": strconv.Itoa(request.TripID),
					"chat_id": strconv.Itoa(chatID),
				})
		}
		return models.TripRequestResult{TripRequest: request, ChatID: &chatID}, nil

	default:
		return models.TripRequestResult{}, models.Validationf("unknown action %q", action)
	}
}
