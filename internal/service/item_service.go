// internal/service/item_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/util"
	"rarebit-ledger/pkg/blob"
)

// SaveAction tells the caller which user-facing outcome a save produced.
type SaveAction string

const (
	SaveActionCreated     SaveAction = "created"
	SaveActionUpdated     SaveAction = "updated"
	SaveActionSold        SaveAction = "sold"
	SaveActionUpdatedSale SaveAction = "updated_sale"
	SaveActionReverted    SaveAction = "reverted"
)

// ItemInput carries the full set of item fields for a save. WalletID is
// transient input: it designates the wallet receiving sale proceeds and is
// never persisted on the item itself.
type ItemInput struct {
	ID            *int64
	Name          string
	Category      string
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	Status        domain.ItemStatus
	DateBought    *time.Time
	DateSold      *time.Time
	Platforms     []string
	SoldPlatforms []string
	ImageURL      *string
	ClientID      *int64
	WalletID      *int64
}

// ItemService owns the item lifecycle: the available/reserved/sold status
// machine and its coupling to ledger events. Moving into or out of the sold
// state, or editing a sale in place, triggers the matching ledger operation.
type ItemService interface {
	// SaveItem creates or updates an item and performs whatever ledger action
	// the status transition requires. originalStatus is the status before this
	// edit (empty for a new item).
	SaveItem(ctx context.Context, userID int64, in ItemInput, originalStatus domain.ItemStatus) (*domain.Item, SaveAction, error)
	// DeleteItem reverses any sale the item produced, best-effort deletes its
	// image, and removes the item record.
	DeleteItem(ctx context.Context, userID, itemID int64) error

	GetItem(ctx context.Context, userID, itemID int64) (*domain.Item, error)
	ListItems(ctx context.Context, userID int64) ([]domain.Item, error)
}

type itemService struct {
	dbExecutor repository.DBExecutor
	itemRepo   repository.ItemRepository
	ledger     LedgerService
	images     blob.Store
	logger     *slog.Logger
}

// NewItemService creates a new instance of ItemService.
func NewItemService(
	dbExecutor repository.DBExecutor,
	itemRepo repository.ItemRepository,
	ledger LedgerService,
	images blob.Store,
	logger *slog.Logger,
) ItemService {
	return &itemService{
		dbExecutor: dbExecutor,
		itemRepo:   itemRepo,
		ledger:     ledger,
		images:     images,
		logger:     logger,
	}
}

func (s *itemService) validateInput(in ItemInput) error {
	if in.Name == "" {
		return fmt.Errorf("item name is required: %w", util.ErrInvalidInput)
	}
	if in.CostPrice.IsNegative() {
		return fmt.Errorf("cost price must not be negative: %w", util.ErrInvalidInput)
	}
	if !in.Status.Valid() {
		return fmt.Errorf("unknown item status %q: %w", in.Status, util.ErrInvalidInput)
	}
	if in.Status == domain.ItemStatusSold {
		if in.SellingPrice.IsNegative() || in.SellingPrice.IsZero() {
			return fmt.Errorf("selling price is required for a sold item: %w", util.ErrInvalidInput)
		}
		if in.DateSold == nil {
			return fmt.Errorf("date sold is required for a sold item: %w", util.ErrInvalidInput)
		}
		if in.WalletID == nil {
			return fmt.Errorf("a wallet is required for a sold item: %w", util.ErrInvalidInput)
		}
	}
	return nil
}

// SaveItem runs as an ordered, non-atomic sequence: the item upsert commits
// first and is not rolled back if the ledger step then fails. Such failures
// surface as a PartialFailure naming the committed step, and the caller must
// refetch to see what actually happened.
func (s *itemService) SaveItem(ctx context.Context, userID int64, in ItemInput, originalStatus domain.ItemStatus) (*domain.Item, SaveAction, error) {
	if err := s.validateInput(in); err != nil {
		return nil, "", err
	}

	wasSold := originalStatus == domain.ItemStatusSold
	isNowSold := in.Status == domain.ItemStatusSold

	item := s.normalize(userID, in)

	// Step one: upsert the item record.
	if in.ID == nil {
		if err := s.itemRepo.CreateItem(ctx, s.dbExecutor, item); err != nil {
			return nil, "", fmt.Errorf("save item: failed to create item: %w", err)
		}
	} else {
		item.ID = *in.ID
		if err := s.itemRepo.UpdateItem(ctx, s.dbExecutor, item); err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return nil, "", util.ErrItemNotFound
			}
			return nil, "", fmt.Errorf("save item: failed to update item %d: %w", item.ID, err)
		}
	}

	// Step two: the ledger action the status transition demands.
	switch {
	case !wasSold && isNowSold:
		if _, err := s.ledger.RecordSale(ctx, userID, item.ID, *in.WalletID, item.SellingPrice, *item.DateSold); err != nil {
			return item, "", &util.PartialFailure{Committed: "item record saved", Err: fmt.Errorf("sale recording failed: %w", err)}
		}
		return item, SaveActionSold, nil

	case wasSold && isNowSold:
		// Editing a sale in place: undo the prior sale, then record the new
		// values. The reversal tolerates a missing prior transaction.
		if err := s.ledger.ReverseSaleForItem(ctx, userID, item.ID); err != nil {
			return item, "", &util.PartialFailure{Committed: "item record saved", Err: fmt.Errorf("prior sale reversal failed: %w", err)}
		}
		if _, err := s.ledger.RecordSale(ctx, userID, item.ID, *in.WalletID, item.SellingPrice, *item.DateSold); err != nil {
			return item, "", &util.PartialFailure{Committed: "item record saved and prior sale reversed", Err: fmt.Errorf("new sale recording failed: %w", err)}
		}
		return item, SaveActionUpdatedSale, nil

	case wasSold && !isNowSold:
		if err := s.ledger.ReverseSaleForItem(ctx, userID, item.ID); err != nil {
			return item, "", &util.PartialFailure{Committed: "item record saved", Err: fmt.Errorf("sale reversal failed: %w", err)}
		}
		return item, SaveActionReverted, nil
	}

	if in.ID == nil {
		return item, SaveActionCreated, nil
	}
	return item, SaveActionUpdated, nil
}

// normalize maps input to a storable item, blanking the sale-only fields when
// the item is not sold.
func (s *itemService) normalize(userID int64, in ItemInput) *domain.Item {
	now := time.Now().UTC()
	item := &domain.Item{
		UserID:        userID,
		Name:          in.Name,
		Category:      in.Category,
		CostPrice:     in.CostPrice,
		SellingPrice:  in.SellingPrice,
		Status:        in.Status,
		DateBought:    in.DateBought,
		DateSold:      in.DateSold,
		Platforms:     in.Platforms,
		SoldPlatforms: in.SoldPlatforms,
		ImageURL:      in.ImageURL,
		ClientID:      in.ClientID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Status != domain.ItemStatusSold {
		item.SellingPrice = decimal.Zero
		item.DateSold = nil
		item.SoldPlatforms = nil
		item.ClientID = nil
	}
	return item
}

// DeleteItem is the other non-atomic sequence: reverse the sale first, then
// remove the image, then the item row. Image removal is best-effort; a
// failure there is logged and does not stop the delete.
func (s *itemService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	item, err := s.itemRepo.GetItemByID(ctx, s.dbExecutor, userID, itemID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrItemNotFound
		}
		return fmt.Errorf("delete item: failed to get item %d: %w", itemID, err)
	}

	if item.Status == domain.ItemStatusSold {
		if err := s.ledger.ReverseSaleForItem(ctx, userID, itemID); err != nil {
			return fmt.Errorf("delete item: failed to reverse sale for item %d: %w", itemID, err)
		}
	}

	if item.ImageURL != nil && *item.ImageURL != "" && s.images != nil {
		if err := s.images.DeleteByURL(ctx, *item.ImageURL); err != nil {
			s.logger.Warn("Could not delete item image from storage", "item_id", itemID, "error", err)
		}
	}

	if err := s.itemRepo.DeleteItem(ctx, s.dbExecutor, userID, itemID); err != nil {
		if item.Status == domain.ItemStatusSold {
			return &util.PartialFailure{Committed: "sale reversed", Err: fmt.Errorf("item deletion failed: %w", err)}
		}
		return fmt.Errorf("delete item: failed to delete item %d: %w", itemID, err)
	}
	return nil
}

func (s *itemService) GetItem(ctx context.Context, userID, itemID int64) (*domain.Item, error) {
	item, err := s.itemRepo.GetItemByID(ctx, s.dbExecutor, userID, itemID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: failed to get item %d: %w", itemID, err)
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, userID int64) ([]domain.Item, error) {
	items, err := s.itemRepo.ListItems(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}
