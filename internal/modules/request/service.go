package request

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/pkg/apperr"
)

type Service struct {
	requests RequestRepository
	users    UserRepository
	items    ItemRepository
	log      *zerolog.Logger
}

func NewService(requests RequestRepository, users UserRepository, items ItemRepository, log *zerolog.Logger) *Service {
	return &Service{
		requests: requests,
		users:    users,
		items:    items,
		log:      log,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequestRequest) (*RequestResponse, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user not found")
	}

	r := &domain.ItemRequest{
		Description: req.Description,
		RequestorID: userID,
		Created:     time.Now(),
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("request_id", r.ID).Int64("requestor_id", userID).Msg("item request created")

	resp := toRequestResponse(*r)
	return &resp, nil
}

// ListOwn returns the user's requests newest first, each with the items
// answering it. Answers for all requests are fetched in one query and
// grouped by request id.
func (s *Service) ListOwn(ctx context.Context, userID int64) ([]RequestWithAnswersResponse, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user not found")
	}

	requests, err := s.requests.ListByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	answers, err := s.items.ListByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	answersByRequest := make(map[int64][]domain.Item)
	for _, i := range answers {
		if i.RequestID == nil {
			continue
		}
		answersByRequest[*i.RequestID] = append(answersByRequest[*i.RequestID], i)
	}

	out := make([]RequestWithAnswersResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestWithAnswers(r, answersByRequest[r.ID]))
	}
	return out, nil
}

// ListAll returns requests created by other users, newest first.
func (s *Service) ListAll(ctx context.Context, userID int64) ([]RequestWithAnswersResponse, error) {
	requests, err := s.requests.ListByOthers(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]RequestWithAnswersResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestWithAnswers(r, nil))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, requestID int64) (*RequestWithAnswersResponse, error) {
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.NotFound("item request not found")
	}

	answers, err := s.items.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	resp := toRequestWithAnswers(*r, answers)
	return &resp, nil
}
