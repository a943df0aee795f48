package vault

import (
	"context"
	"testing"
)

func TestVault_SetGetClear(t *testing.T) {
	ctx := context.Background()
	v := New(NewMemorySecretStore())

	creds := Credentials{APIKey: "secret_abc", DatabaseID: "db_123"}
	if err := v.Set(ctx, "user-1", creds); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := v.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || got != creds {
		t.Errorf("got %+v (ok=%v), want %+v", got, ok, creds)
	}

	if err := v.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok, _ := v.Get(ctx, "user-1"); ok {
		t.Error("credentials survived Clear")
	}
}

func TestVault_MissingCredentials(t *testing.T) {
	ctx := context.Background()
	v := New(NewMemorySecretStore())

	_, ok, err := v.Get(ctx, "nobody")
	if err != nil {
		t.Fatalf("missing credentials must not be an error: %v", err)
	}
	if ok {
		t.Error("got ok=true for a user with no credentials")
	}
}

func TestVault_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	v := New(NewMemorySecretStore())

	if err := v.Clear(ctx, "nobody"); err != nil {
		t.Errorf("clearing an empty vault must succeed: %v", err)
	}
}

func TestVault_NamespacesPerUser(t *testing.T) {
	ctx := context.Background()
	v := New(NewMemorySecretStore())

	one := Credentials{APIKey: "key-one", DatabaseID: "db-one"}
	two := Credentials{APIKey: "key-two", DatabaseID: "db-two"}
	if err := v.Set(ctx, "user-1", one); err != nil {
		t.Fatal(err)
	}
	if err := v.Set(ctx, "user-2", two); err != nil {
		t.Fatal(err)
	}

	if err := v.Clear(ctx, "user-1"); err != nil {
		t.Fatal(err)
	}

	got, ok, err := v.Get(ctx, "user-2")
	if err != nil || !ok {
		t.Fatalf("user-2 credentials lost: ok=%v err=%v", ok, err)
	}
	if got != two {
		t.Errorf("got %+v, want %+v", got, two)
	}
}
