package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBurstAllowsInitialRequests(t *testing.T) {
	kl := New(1, 3)

	passed := 0
	for i := 0; i < 5; i++ {
		if kl.Allow("client-a") {
			passed++
		}
	}
	assert.Equal(t, 3, passed)
}

func TestKeysAreIndependent(t *testing.T) {
	kl := New(1, 1)

	assert.True(t, kl.Allow("client-a"))
	assert.False(t, kl.Allow("client-a"))

	// A fresh key gets its own bucket.
	assert.True(t, kl.Allow("client-b"))
}

func TestConcurrentAccess(t *testing.T) {
	kl := New(1000, 1000)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				kl.Allow("shared")
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
