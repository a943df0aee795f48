package service

import (
	"context"
	"errors"
	"sorta/cmd/internal/domain/entity"
	"sorta/cmd/internal/infrastructure/notion"
	"sorta/cmd/internal/vault"
	"testing"
)

type fakeSyncClient struct {
	creds vault.Credentials
	valid bool
}

func (f *fakeSyncClient) TestConnection(context.Context) bool {
	return f.valid
}

func (f *fakeSyncClient) SyncNote(context.Context, *entity.Note) (string, error) {
	if !f.valid {
		return "", errors.New("unauthorized")
	}
	return "page-1", nil
}

// newTestNotionService wires a service whose clients accept only the
// given credential pair.
func newTestNotionService(validCreds vault.Credentials) (*NotionService, *vault.Vault) {
	v := vault.New(vault.NewMemorySecretStore())
	n := NewNotionService(v)
	n.newClient = func(creds vault.Credentials) SyncClient {
		return &fakeSyncClient{creds: creds, valid: creds == validCreds}
	}
	return n, v
}

func TestConnect_PersistsOnlyValidCredentials(t *testing.T) {
	ctx := context.Background()
	valid := vault.Credentials{APIKey: "good", DatabaseID: "db"}
	n, v := newTestNotionService(valid)

	ok, err := n.Connect(ctx, "user-1", "bad", "db")
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if ok || n.Connected() {
		t.Error("invalid credentials must not connect")
	}
	if _, stored, _ := v.Get(ctx, "user-1"); stored {
		t.Error("invalid credentials must not be persisted")
	}

	ok, err = n.Connect(ctx, "user-1", "good", "db")
	if err != nil || !ok {
		t.Fatalf("Connect with valid credentials failed: ok=%v err=%v", ok, err)
	}
	if !n.Connected() {
		t.Error("service must report connected")
	}

	got, stored, _ := v.Get(ctx, "user-1")
	if !stored || got != valid {
		t.Errorf("credentials not persisted: %+v", got)
	}
}

func TestRestoreConnection_InvalidCredsStayStored(t *testing.T) {
	ctx := context.Background()
	n, v := newTestNotionService(vault.Credentials{APIKey: "good", DatabaseID: "db"})

	// Credentials that were valid once but no longer pass the test.
	stale := vault.Credentials{APIKey: "revoked", DatabaseID: "db"}
	if err := v.Set(ctx, "user-1", stale); err != nil {
		t.Fatal(err)
	}

	if n.RestoreConnection(ctx, "user-1") {
		t.Error("restore with invalid credentials must not connect")
	}
	if n.Connected() {
		t.Error("connected state must stay false")
	}

	// Only an explicit disconnect clears the vault.
	got, stored, _ := v.Get(ctx, "user-1")
	if !stored || got != stale {
		t.Error("invalid stored credentials must not be auto-cleared")
	}
}

func TestRestoreConnection_NoCredentials(t *testing.T) {
	n, _ := newTestNotionService(vault.Credentials{APIKey: "good", DatabaseID: "db"})

	if n.RestoreConnection(context.Background(), "user-1") {
		t.Error("restore without stored credentials must not connect")
	}
}

func TestDisconnect_ClearsVaultAndState(t *testing.T) {
	ctx := context.Background()
	n, v := newTestNotionService(vault.Credentials{APIKey: "good", DatabaseID: "db"})

	if ok, _ := n.Connect(ctx, "user-1", "good", "db"); !ok {
		t.Fatal("Connect failed")
	}

	if err := n.Disconnect(ctx, "user-1"); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if n.Connected() {
		t.Error("still connected after disconnect")
	}
	if _, stored, _ := v.Get(ctx, "user-1"); stored {
		t.Error("credentials survived disconnect")
	}

	if _, err := n.SyncNote(ctx, &entity.Note{ID: "1"}); !errors.Is(err, notion.ErrNotInitialized) {
		t.Errorf("got %v, want ErrNotInitialized", err)
	}
}

func TestSyncNote_WithoutConfiguration(t *testing.T) {
	n, _ := newTestNotionService(vault.Credentials{})

	_, err := n.SyncNote(context.Background(), &entity.Note{ID: "1"})
	if !errors.Is(err, notion.ErrNotInitialized) {
		t.Errorf("got %v, want ErrNotInitialized", err)
	}
}
