package coordinator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFutureResolveUnblocksDone(t *testing.T) {
	f := newFuture()
	select {
	case <-f.Done():
		t.Fatal("future should not be done before resolve")
	default:
	}

	f.resolve(nil)
	<-f.Done()
	assert.NoError(t, f.Err())
}

func TestFutureResolveIsIdempotent(t *testing.T) {
	f := newFuture()
	f.resolve(errors.New("boom"))
	f.resolve(nil)
	assert.EqualError(t, f.Err(), "boom")
}

func TestNewResolvedFutureLetsCallerResolveOutOfBand(t *testing.T) {
	f, resolve := NewResolvedFuture()
	resolve(errors.New("boom"))
	<-f.Done()
	assert.EqualError(t, f.Err(), "boom")
}
