package request

import (
	"time"

	"shareit/internal/domain"
)

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
}

// AnswerResponse is an item offered in answer to a request.
type AnswerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type RequestWithAnswersResponse struct {
	ID          int64            `json:"id"`
	Description string           `json:"description"`
	RequestorID int64            `json:"requestorId"`
	Created     time.Time        `json:"created"`
	Items       []AnswerResponse `json:"items"`
}

func toRequestResponse(r domain.ItemRequest) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     r.Created,
	}
}

func toRequestWithAnswers(r domain.ItemRequest, items []domain.Item) RequestWithAnswersResponse {
	answers := make([]AnswerResponse, 0, len(items))
	for _, i := range items {
		answers = append(answers, AnswerResponse{
			ID:      i.ID,
			Name:    i.Name,
			OwnerID: i.OwnerID,
		})
	}
	return RequestWithAnswersResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     r.Created,
		Items:       answers,
	}
}
