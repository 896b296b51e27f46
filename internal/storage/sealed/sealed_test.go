package sealed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmynk/groovematch/internal/storage/memory"
)

// fastParams keeps Argon2id cheap in tests.
var fastParams = KDFParams{Time: 1, Memory: 1024, Threads: 1}

func TestSealedRoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()

	kv, err := Open(ctx, inner, []byte("salsa-on-2"), fastParams)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	secret := `{"users":[{"email":"ana@x.com"}]}`
	if err := kv.Set(ctx, "groovematch.document", secret); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, ok, _ := inner.Get(ctx, "groovematch.document")
	if !ok {
		t.Fatal("expected value in wrapped KV")
	}
	if strings.Contains(raw, "ana@x.com") {
		t.Error("plaintext leaked into wrapped KV")
	}

	got, ok, err := kv.Get(ctx, "groovematch.document")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v)", ok, err)
	}
	if got != secret {
		t.Errorf("Get = %q, want %q", got, secret)
	}
}

func TestSealedReopenSharesSalt(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()

	first, err := Open(ctx, inner, []byte("pass"), fastParams)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	first.Set(ctx, "k", "v")

	second, err := Open(ctx, inner, []byte("pass"), fastParams)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got, _, err := second.Get(ctx, "k"); err != nil || got != "v" {
		t.Errorf("Get after reopen = (%q, %v), want (v, nil)", got, err)
	}
}

func TestSealedWrongPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()

	kv, err := Open(ctx, inner, []byte("right"), fastParams)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	kv.Set(ctx, "groovematch.document", "ana")

	if _, err := Open(ctx, inner, []byte("typo"), fastParams); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("Open with wrong passphrase = %v, want ErrDecrypt", err)
	}

	raw, ok, _ := inner.Get(ctx, CheckKey)
	if !ok || strings.Contains(raw, checkValue) {
		t.Errorf("check value missing or stored in clear: %q", raw)
	}

	again, err := Open(ctx, inner, []byte("right"), fastParams)
	if err != nil {
		t.Fatalf("reopen with right passphrase failed: %v", err)
	}
	if got, _, err := again.Get(ctx, "groovematch.document"); err != nil || got != "ana" {
		t.Errorf("Get after rejected open = (%q, %v), want (ana, nil)", got, err)
	}
}

func TestSealedWritesCheckForExistingSalt(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()

	kv, _ := Open(ctx, inner, []byte("right"), fastParams)
	kv.Set(ctx, "k", "v")
	inner.Remove(ctx, CheckKey)

	if _, err := Open(ctx, inner, []byte("right"), fastParams); err != nil {
		t.Fatalf("Open without check value failed: %v", err)
	}
	if _, ok, _ := inner.Get(ctx, CheckKey); !ok {
		t.Error("expected the check value to be written")
	}
	if _, err := Open(ctx, inner, []byte("wrong"), fastParams); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Open with wrong passphrase = %v, want ErrDecrypt", err)
	}
}

func TestSealedMissingKeyAndEmptyPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()

	if _, err := Open(ctx, inner, nil, fastParams); err == nil {
		t.Error("expected error for empty passphrase")
	}

	kv, _ := Open(ctx, inner, []byte("p"), fastParams)
	if _, ok, err := kv.Get(ctx, "absent"); ok || err != nil {
		t.Errorf("Get(absent) = (%v, %v), want (false, nil)", ok, err)
	}
}
