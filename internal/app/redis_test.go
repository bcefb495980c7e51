package app

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestKeyspace(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		args []interface{}
		want string
	}{
		{[]interface{}{"set", "lock:signup:a@x.com", "1"}, "lock:signup"},
		{[]interface{}{"get", "idempotency:key-1:abcdef"}, "idempotency"},
		{[]interface{}{"get", "plain"}, "plain"},
		{[]interface{}{"ping"}, "redis"},
	}

	for _, tt := range tests {
		cmd := redis.NewStringCmd(ctx, tt.args...)
		if got := keyspace(cmd); got != tt.want {
			t.Errorf("keyspace(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
