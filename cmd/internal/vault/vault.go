package vault

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that a secret does not exist. SecretStore
// implementations must return it (possibly wrapped) for missing keys so
// the vault can tell "no credentials yet" from a real storage failure.
var ErrNotFound = errors.New("secret not found")

// SecretStore is the injected secure-storage capability. Implementations
// must keep values encrypted at rest; plain application storage does not
// satisfy the contract.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Credentials is the per-user secret pair for the remote workspace.
type Credentials struct {
	APIKey     string
	DatabaseID string
}

// Vault stores and retrieves the remote-workspace credential pair,
// namespaced per user id.
type Vault struct {
	store SecretStore
}

func New(store SecretStore) *Vault {
	return &Vault{store: store}
}

// Get returns the stored credentials for the user. The second return is
// false when no credentials are stored; an error means the secret store
// itself failed.
func (v *Vault) Get(ctx context.Context, userID string) (Credentials, bool, error) {
	apiKey, err := v.store.Get(ctx, apiKeyName(userID))
	if errors.Is(err, ErrNotFound) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}

	databaseID, err := v.store.Get(ctx, databaseIDName(userID))
	if errors.Is(err, ErrNotFound) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}

	return Credentials{APIKey: apiKey, DatabaseID: databaseID}, true, nil
}

func (v *Vault) Set(ctx context.Context, userID string, creds Credentials) error {
	if err := v.store.Set(ctx, apiKeyName(userID), creds.APIKey); err != nil {
		return err
	}
	return v.store.Set(ctx, databaseIDName(userID), creds.DatabaseID)
}

// Clear removes both secrets. Clearing an empty vault is success.
func (v *Vault) Clear(ctx context.Context, userID string) error {
	if err := ignoreMissing(v.store.Delete(ctx, apiKeyName(userID))); err != nil {
		return err
	}
	return ignoreMissing(v.store.Delete(ctx, databaseIDName(userID)))
}

func ignoreMissing(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func apiKeyName(userID string) string {
	return fmt.Sprintf("notion_api_key_%s", userID)
}

func databaseIDName(userID string) string {
	return fmt.Sprintf("notion_database_id_%s", userID)
}
