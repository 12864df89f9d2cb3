package database

import (
	"context"
	"testing"
)

func TestHealth(t *testing.T) {

	tests := []struct {
		name string
		ctx  context.Context
		down bool
	}{
		{"cancelled context", noCtx, true},
		{"valid result", baseCtx, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := testDB.Health(tt.ctx)
			down := stats["status"] == "down"
			if down != tt.down {
				t.Errorf("got down = %t, want down = %t", down, tt.down)
			}
		})
	}
}
