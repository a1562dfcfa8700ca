// internal/service/client_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/util"
)

// ClientInput carries the fields for creating or updating a client, including
// the full replacement set of phones and addresses.
type ClientInput struct {
	Name      string
	Email     *string
	Notes     *string
	Phones    []domain.ClientPhone
	Addresses []domain.ClientAddress
}

// ClientStats summarises a client's purchase history.
type ClientStats struct {
	TotalSpend        decimal.Decimal            `json:"total_spend"`
	TotalProfit       decimal.Decimal            `json:"total_profit"`
	ItemCount         int                        `json:"item_count"`
	PlatformBreakdown map[string]int             `json:"platform_breakdown"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
}

// ClientDetail is a client plus their purchased items and statistics.
type ClientDetail struct {
	Client domain.Client `json:"client"`
	Items  []domain.Item `json:"items"`
	Stats  ClientStats   `json:"stats"`
}

// ClientService manages clients and their contact details, and derives
// per-client purchase statistics from the items sold to them.
type ClientService interface {
	SaveClient(ctx context.Context, userID int64, id *int64, in ClientInput) (*domain.Client, error)
	GetClientDetail(ctx context.Context, userID, clientID int64) (*ClientDetail, error)
	ListClients(ctx context.Context, userID int64) ([]domain.Client, error)
	DeleteClient(ctx context.Context, userID, clientID int64) error
}

type clientService struct {
	dbExecutor repository.DBExecutor
	clientRepo repository.ClientRepository
	itemRepo   repository.ItemRepository
}

// NewClientService creates a new instance of ClientService.
func NewClientService(dbExecutor repository.DBExecutor, clientRepo repository.ClientRepository, itemRepo repository.ItemRepository) ClientService {
	return &clientService{
		dbExecutor: dbExecutor,
		clientRepo: clientRepo,
		itemRepo:   itemRepo,
	}
}

func (s *clientService) SaveClient(ctx context.Context, userID int64, id *int64, in ClientInput) (*domain.Client, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("client name is required: %w", util.ErrInvalidInput)
	}

	client := &domain.Client{
		UserID:    userID,
		Name:      in.Name,
		Email:     in.Email,
		Notes:     in.Notes,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if id == nil {
		if err := s.clientRepo.CreateClient(ctx, s.dbExecutor, client); err != nil {
			return nil, fmt.Errorf("save client: failed to create client: %w", err)
		}
	} else {
		client.ID = *id
		if err := s.clientRepo.UpdateClient(ctx, s.dbExecutor, client); err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return nil, util.ErrClientNotFound
			}
			return nil, fmt.Errorf("save client: failed to update client %d: %w", *id, err)
		}
	}

	if err := s.clientRepo.ReplacePhones(ctx, s.dbExecutor, client.ID, in.Phones); err != nil {
		return nil, fmt.Errorf("save client: failed to save phones: %w", err)
	}
	if err := s.clientRepo.ReplaceAddresses(ctx, s.dbExecutor, client.ID, in.Addresses); err != nil {
		return nil, fmt.Errorf("save client: failed to save addresses: %w", err)
	}

	client.Phones = in.Phones
	client.Addresses = in.Addresses
	return client, nil
}

func (s *clientService) GetClientDetail(ctx context.Context, userID, clientID int64) (*ClientDetail, error) {
	client, err := s.clientRepo.GetClientByID(ctx, s.dbExecutor, userID, clientID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrClientNotFound
		}
		return nil, fmt.Errorf("get client detail: failed to get client %d: %w", clientID, err)
	}

	client.Phones, err = s.clientRepo.ListPhones(ctx, s.dbExecutor, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client detail: %w", err)
	}
	client.Addresses, err = s.clientRepo.ListAddresses(ctx, s.dbExecutor, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client detail: %w", err)
	}

	items, err := s.itemRepo.ListItemsByClient(ctx, s.dbExecutor, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client detail: %w", err)
	}

	return &ClientDetail{
		Client: *client,
		Items:  items,
		Stats:  ComputeClientStats(items),
	}, nil
}

func (s *clientService) ListClients(ctx context.Context, userID int64) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) DeleteClient(ctx context.Context, userID, clientID int64) error {
	if err := s.clientRepo.DeleteClient(ctx, s.dbExecutor, userID, clientID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrClientNotFound
		}
		return fmt.Errorf("delete client: failed to delete client %d: %w", clientID, err)
	}
	return nil
}

// ComputeClientStats derives purchase statistics from a client's items.
func ComputeClientStats(items []domain.Item) ClientStats {
	stats := ClientStats{
		TotalSpend:        decimal.Zero,
		TotalProfit:       decimal.Zero,
		PlatformBreakdown: map[string]int{},
		CategoryBreakdown: map[string]decimal.Decimal{},
	}
	for i := range items {
		item := &items[i]
		if item.Status != domain.ItemStatusSold {
			continue
		}
		stats.ItemCount++
		stats.TotalSpend = stats.TotalSpend.Add(item.SellingPrice)
		stats.TotalProfit = stats.TotalProfit.Add(item.Profit())
		for _, p := range item.SoldPlatforms {
			stats.PlatformBreakdown[p]++
		}
		if item.Category != "" {
			stats.CategoryBreakdown[item.Category] = stats.CategoryBreakdown[item.Category].Add(item.SellingPrice)
		}
	}
	return stats
}
