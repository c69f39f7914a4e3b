package loader

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestExpireArgsNil(t *testing.T) {
	if args := expireArgs(nil); args != nil {
		t.Fatalf("expireArgs(nil) = %v, want nil", args)
	}
}

func TestExpireArgsSet(t *testing.T) {
	expiry := int64(1700000000000)
	args := expireArgs(&expiry)
	if len(args) != 2 || args[0] != "PXAT" || args[1] != expiry {
		t.Fatalf("expireArgs = %v", args)
	}
}

func TestApplyContainerExpiryClearsAfterUse(t *testing.T) {
	// Pipeline commands are only buffered until Exec; with batchSize 10
	// a single queued command never reaches the (unreachable) server.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	l := &Loader{ctx: context.Background(), pipe: client.Pipeline(), batchSize: 10}
	expiry := int64(42)
	l.containerExpiry = &expiry
	if err := l.applyContainerExpiry([]byte("k")); err != nil {
		t.Fatalf("applyContainerExpiry with pending expiry: %v", err)
	}
	if l.containerExpiry != nil || l.pending != 1 {
		t.Fatalf("containerExpiry = %v, pending = %d; want nil, 1", l.containerExpiry, l.pending)
	}
	if err := l.applyContainerExpiry([]byte("k")); err != nil {
		t.Fatalf("applyContainerExpiry with nil pending expiry: %v", err)
	}
	if l.pending != 1 {
		t.Fatalf("pending = %d after nil expiry, want 1", l.pending)
	}
}
