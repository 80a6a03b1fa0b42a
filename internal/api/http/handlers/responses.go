package handlers

import (
	"github.com/colegioeccos/requesthub/internal/api/dto"
	"github.com/colegioeccos/requesthub/internal/domain"
)

func requestResponse(request *domain.Request) dto.RequestResponse {
	chat := make([]dto.ChatMessageResponse, 0, len(request.Chat))
	for _, message := range request.Chat {
		chat = append(chat, dto.ChatMessageResponse{
			SenderID:   message.SenderID,
			SenderName: message.SenderName,
			Text:       message.Text,
			SentAt:     message.SentAt,
		})
	}
	return dto.RequestResponse{
		ID:             request.ID,
		RequesterID:    request.RequesterID,
		RequesterName:  request.RequesterName,
		RequesterEmail: request.RequesterEmail,
		Type:           request.Type,
		Status:         request.Status,
		Purchase:       request.Purchase,
		Support:        request.Support,
		Reservation:    request.Reservation,
		Chat:           chat,
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
	}
}

func requestResponses(requests []domain.Request) []dto.RequestResponse {
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return items
}

func principalResponse(principal *domain.Principal) dto.PrincipalResponse {
	return dto.PrincipalResponse{
		ID:          principal.ID,
		Email:       principal.Email,
		DisplayName: principal.DisplayName,
		PhotoURL:    principal.PhotoURL,
		Role:        principal.Role,
		LastLogin:   principal.LastLogin,
	}
}

func equipmentResponse(equipment *domain.Equipment) dto.EquipmentResponse {
	return dto.EquipmentResponse{
		ID:          equipment.ID,
		Type:        equipment.Type,
		Name:        equipment.Name,
		IsAvailable: equipment.IsAvailable,
		CreatedAt:   equipment.CreatedAt,
	}
}

func availabilityResponse(entry domain.AvailabilityDate) dto.AvailabilityResponse {
	return dto.AvailabilityResponse{
		ID:          entry.ID,
		Date:        entry.Date.Format("2006-01-02"),
		IsAvailable: entry.IsAvailable,
	}
}
