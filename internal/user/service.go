package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/hunger"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

// Profile is the read-model returned to clients. Hunger is settled lazily
// before the snapshot is taken, so the values already include any decay and
// penalties up to the request instant.
type Profile struct {
	ID           string                 `json:"account_id"`
	Username     string                 `json:"username"`
	Balance      int                    `json:"balance"`
	HungerMS     int64                  `json:"hunger_ms"`
	StolenFlies  int                    `json:"stolen_flies"`
	Inventory    map[string]int         `json:"inventory"`
	Equipped     map[domain.Slot]string `json:"equipped"`
	UnseenItems  []string               `json:"unseen_items"`
	CreatedAt    time.Time              `json:"created_at"`
}

// Service defines account lifecycle operations.
type Service interface {
	// Register creates a new account with a generated ID.
	Register(ctx context.Context, username string, now time.Time) (*domain.Account, error)

	// Profile settles hunger at now and returns the account snapshot.
	Profile(ctx context.Context, accountID string, now time.Time) (*Profile, error)
}

type service struct {
	repo   repository.Account
	hunger hunger.Service
}

// NewService creates a user service.
func NewService(repo repository.Account, hungerSvc hunger.Service) Service {
	return &service{repo: repo, hunger: hungerSvc}
}

func (s *service) Register(ctx context.Context, username string, now time.Time) (*domain.Account, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterCalled, "username", username)

	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be %d-%d characters",
			domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}

	acc := domain.NewAccount(uuid.NewString(), username, now)
	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, fmt.Errorf(ErrMsgRegisterFailed, err)
	}

	log.Info(LogMsgAccountRegistered, "account_id", acc.ID, "username", username)
	return acc, nil
}

func (s *service) Profile(ctx context.Context, accountID string, now time.Time) (*Profile, error) {
	acc, err := s.hunger.Settle(ctx, accountID, now)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgProfileFailed, err)
	}

	return &Profile{
		ID:          acc.ID,
		Username:    acc.Username,
		Balance:     acc.Balance,
		HungerMS:    acc.Hunger.Milliseconds(),
		StolenFlies: acc.StolenFlies,
		Inventory:   acc.Inventory,
		Equipped:    acc.Equipped,
		UnseenItems: acc.UnseenItemIDs,
		CreatedAt:   acc.CreatedAt,
	}, nil
}
