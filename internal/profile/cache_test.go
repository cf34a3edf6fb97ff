package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	name  string
	err   error
	calls int
}

func (s *stubService) DisplayName(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.name, s.err
}

func TestCachedService_Hit(t *testing.T) {
	rdc, mock := redismock.NewClientMock()
	mock.ExpectGet("profile:u1").SetVal("Alice")

	inner := &stubService{name: "stale"}
	svc := NewCachedService(inner, rdc, time.Minute)

	name, err := svc.DisplayName(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Zero(t, inner.calls, "cache hit must not reach the store")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedService_MissFillsCache(t *testing.T) {
	rdc, mock := redismock.NewClientMock()
	mock.ExpectGet("profile:u2").RedisNil()
	mock.ExpectSet("profile:u2", "Bob", time.Minute).SetVal("OK")

	inner := &stubService{name: "Bob"}
	svc := NewCachedService(inner, rdc, time.Minute)

	name, err := svc.DisplayName(context.Background(), "u2")

	require.NoError(t, err)
	assert.Equal(t, "Bob", name)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedService_RedisDownFallsThrough(t *testing.T) {
	rdc, mock := redismock.NewClientMock()
	mock.ExpectGet("profile:u3").SetErr(errors.New("connection refused"))
	mock.ExpectSet("profile:u3", "Cleo", time.Minute).SetErr(errors.New("connection refused"))

	inner := &stubService{name: "Cleo"}
	svc := NewCachedService(inner, rdc, time.Minute)

	name, err := svc.DisplayName(context.Background(), "u3")

	require.NoError(t, err)
	assert.Equal(t, "Cleo", name)
}

func TestCachedService_LookupErrorPropagates(t *testing.T) {
	rdc, mock := redismock.NewClientMock()
	mock.ExpectGet("profile:u4").RedisNil()

	inner := &stubService{err: ErrNotFound}
	svc := NewCachedService(inner, rdc, time.Minute)

	_, err := svc.DisplayName(context.Background(), "u4")

	assert.ErrorIs(t, err, ErrNotFound)
}
