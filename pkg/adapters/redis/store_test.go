package redis_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/luthierlabs/fretbridge/pkg/adapters/redis"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

func TestRedisStore_Contract(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client)
	ports.RunTemplateStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithPrefix("shop:boards:"))
	ports.RunTemplateStoreContract(t, store)

	keys := mr.Keys()
	for _, k := range keys {
		if len(k) < len("shop:boards:") || k[:len("shop:boards:")] != "shop:boards:" {
			t.Fatalf("key %q escaped the configured prefix", k)
		}
	}
}
