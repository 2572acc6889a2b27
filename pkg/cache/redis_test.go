package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDedupeWithoutRedisProcessesEverything(t *testing.T) {
	d := NewDedupe(nil, time.Hour, zap.NewNop())
	ctx := context.Background()

	assert.False(t, d.Seen(ctx, "webhook:RB_abc_1"))

	// Recording is a no-op without a client; nothing becomes seen.
	d.MarkDelivered(ctx, "webhook:RB_abc_1")
	assert.False(t, d.Seen(ctx, "webhook:RB_abc_1"))
}

func TestDedupeNilReceiver(t *testing.T) {
	var d *Dedupe
	ctx := context.Background()

	assert.False(t, d.Seen(ctx, "webhook:RB_abc_2"))
	d.MarkDelivered(ctx, "webhook:RB_abc_2")
}
