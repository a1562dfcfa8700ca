// internal/repository/postgres/client_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/util"
)

// ClientRepository implements repository.ClientRepository for PostgreSQL.
type ClientRepository struct{}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *sqlx.DB) repository.ClientRepository {
	return &ClientRepository{}
}

func (r *ClientRepository) CreateClient(ctx context.Context, q repository.DBExecutor, client *domain.Client) error {
	query := `INSERT INTO clients (user_id, name, email, notes, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query, client.UserID, client.Name, client.Email, client.Notes, client.CreatedAt, client.UpdatedAt).Scan(&client.ID)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) UpdateClient(ctx context.Context, q repository.DBExecutor, client *domain.Client) error {
	query := `UPDATE clients SET name = $1, email = $2, notes = $3, updated_at = $4 WHERE id = $5 AND user_id = $6`
	result, err := q.ExecContext(ctx, query, client.Name, client.Email, client.Notes, time.Now().UTC(), client.ID, client.UserID)
	if err != nil {
		return fmt.Errorf("failed to update client %d: %w", client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating client %d: %w", client.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) GetClientByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Client, error) {
	var client domain.Client
	query := `SELECT id, user_id, name, email, notes, created_at, updated_at FROM clients WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &client, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID %d: %w", id, err)
	}
	return &client, nil
}

func (r *ClientRepository) ListClients(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Client, error) {
	clients := []domain.Client{}
	query := `SELECT id, user_id, name, email, notes, created_at, updated_at FROM clients WHERE user_id = $1 ORDER BY name ASC`
	if err := q.SelectContext(ctx, &clients, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list clients for user %d: %w", userID, err)
	}
	return clients, nil
}

func (r *ClientRepository) DeleteClient(ctx context.Context, q repository.DBExecutor, userID, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM clients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting client %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ReplacePhones deletes a client's phone rows and inserts the given set.
func (r *ClientRepository) ReplacePhones(ctx context.Context, q repository.DBExecutor, clientID int64, phones []domain.ClientPhone) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM client_phones WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("failed to clear phones for client %d: %w", clientID, err)
	}
	for i := range phones {
		err := q.QueryRowContext(ctx,
			`INSERT INTO client_phones (client_id, phone, label) VALUES ($1, $2, $3) RETURNING id`,
			clientID, phones[i].Phone, phones[i].Label,
		).Scan(&phones[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert phone for client %d: %w", clientID, err)
		}
		phones[i].ClientID = clientID
	}
	return nil
}

// ReplaceAddresses deletes a client's address rows and inserts the given set.
func (r *ClientRepository) ReplaceAddresses(ctx context.Context, q repository.DBExecutor, clientID int64, addresses []domain.ClientAddress) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM client_addresses WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("failed to clear addresses for client %d: %w", clientID, err)
	}
	for i := range addresses {
		err := q.QueryRowContext(ctx,
			`INSERT INTO client_addresses (client_id, address, label) VALUES ($1, $2, $3) RETURNING id`,
			clientID, addresses[i].Address, addresses[i].Label,
		).Scan(&addresses[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert address for client %d: %w", clientID, err)
		}
		addresses[i].ClientID = clientID
	}
	return nil
}

func (r *ClientRepository) ListPhones(ctx context.Context, q repository.DBExecutor, clientID int64) ([]domain.ClientPhone, error) {
	phones := []domain.ClientPhone{}
	query := `SELECT id, client_id, phone, label FROM client_phones WHERE client_id = $1 ORDER BY id ASC`
	if err := q.SelectContext(ctx, &phones, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to list phones for client %d: %w", clientID, err)
	}
	return phones, nil
}

func (r *ClientRepository) ListAddresses(ctx context.Context, q repository.DBExecutor, clientID int64) ([]domain.ClientAddress, error) {
	addresses := []domain.ClientAddress{}
	query := `SELECT id, client_id, address, label FROM client_addresses WHERE client_id = $1 ORDER BY id ASC`
	if err := q.SelectContext(ctx, &addresses, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to list addresses for client %d: %w", clientID, err)
	}
	return addresses, nil
}
