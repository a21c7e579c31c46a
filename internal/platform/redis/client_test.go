package redis

import (
	"testing"
	"time"

	"github.com/ogurasousui/placement-crm/internal/platform/config"
)

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	opts := BuildOptions(config.RedisConfig{
		Addr:        "cache.local:6380",
		Password:    "secret",
		DB:          2,
		DialTimeout: 3 * time.Second,
	})

	if opts.Addr != "cache.local:6380" || opts.Password != "secret" || opts.DB != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.DialTimeout != 3*time.Second {
		t.Errorf("unexpected DialTimeout: %v", opts.DialTimeout)
	}
}
