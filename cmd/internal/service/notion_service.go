package service

import (
	"context"
	"sorta/cmd/internal/domain/entity"
	"sorta/cmd/internal/infrastructure/notion"
	"sorta/cmd/internal/vault"
	"sync"

	"github.com/labstack/gommon/log"
)

// SyncClient is what the service needs from the Notion protocol client.
type SyncClient interface {
	TestConnection(ctx context.Context) bool
	SyncNote(ctx context.Context, note *entity.Note) (string, error)
}

// NotionService owns the remote-sync connection lifecycle: it validates
// and persists credentials through the vault and holds the active client.
// Reconfiguration swaps the client instance; in-flight syncs keep the one
// they snapshotted.
type NotionService struct {
	mu        sync.RWMutex
	vault     *vault.Vault
	newClient func(creds vault.Credentials) SyncClient

	client    SyncClient
	connected bool
}

func NewNotionService(v *vault.Vault) *NotionService {
	return &NotionService{
		vault: v,
		newClient: func(creds vault.Credentials) SyncClient {
			return notion.NewClient(creds.APIKey, creds.DatabaseID)
		},
	}
}

// RestoreConnection re-validates credentials already in the vault, if
// any. Invalid stored credentials leave the connected state false but
// stay in the vault: only an explicit Disconnect clears them.
func (n *NotionService) RestoreConnection(ctx context.Context, userID string) bool {
	creds, ok, err := n.vault.Get(ctx, userID)
	if err != nil {
		log.Errorf("failed to read notion credentials: %v", err)
		return false
	}
	if !ok {
		return false
	}

	client := n.newClient(creds)
	connected := client.TestConnection(ctx)

	n.mu.Lock()
	n.client = client
	n.connected = connected
	n.mu.Unlock()

	if !connected {
		log.Warnf("stored notion credentials for user %s are no longer valid", userID)
	}
	return connected
}

// Connect validates the given credential pair against the remote service
// and persists it only on success.
func (n *NotionService) Connect(ctx context.Context, userID, apiKey, databaseID string) (bool, error) {
	creds := vault.Credentials{APIKey: apiKey, DatabaseID: databaseID}
	client := n.newClient(creds)
	if !client.TestConnection(ctx) {
		return false, nil
	}

	if err := n.vault.Set(ctx, userID, creds); err != nil {
		log.Errorf("failed to store notion credentials: %v", err)
		return false, err
	}

	n.mu.Lock()
	n.client = client
	n.connected = true
	n.mu.Unlock()
	return true, nil
}

// Disconnect clears the stored credentials and drops the active client.
func (n *NotionService) Disconnect(ctx context.Context, userID string) error {
	if err := n.vault.Clear(ctx, userID); err != nil {
		log.Errorf("failed to clear notion credentials: %v", err)
		return err
	}

	n.mu.Lock()
	n.client = nil
	n.connected = false
	n.mu.Unlock()
	return nil
}

func (n *NotionService) Connected() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.connected
}

// TestConnection re-checks the active connection on demand.
func (n *NotionService) TestConnection(ctx context.Context) bool {
	n.mu.RLock()
	client := n.client
	connected := n.connected
	n.mu.RUnlock()

	if !connected || client == nil {
		return false
	}
	return client.TestConnection(ctx)
}

// SyncNote forwards to the active client. Each call snapshots the client
// once, so a concurrent reconfiguration cannot tear a sync in half.
func (n *NotionService) SyncNote(ctx context.Context, note *entity.Note) (string, error) {
	n.mu.RLock()
	client := n.client
	n.mu.RUnlock()

	if client == nil {
		return "", notion.ErrNotInitialized
	}
	return client.SyncNote(ctx, note)
}
