package service_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"nevochat/internal/config"
	"nevochat/internal/repository"
	"nevochat/internal/repository/db"
	"nevochat/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSQLiteService(t *testing.T) *service.Service {
	t.Helper()
	conn, err := db.InitDB(context.Background(), config.DB{
		Path:          filepath.Join(t.TempDir(), "chat.db"),
		MaxOpenConns:  4,
		MaxIdleConns:  4,
		BusyTimeoutMS: 5000,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return service.NewService(repository.NewRepository(conn), service.Options{
		BcryptCost:       bcrypt.MinCost,
		MaxMessageLength: 4096,
	})
}

func TestSQLite_RegisterTwice(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "p1"))
	assert.ErrorIs(t, svc.Register(ctx, "alice", "p2"), service.ErrUsernameTaken)

	// the original password still works, so the failed attempt wrote nothing
	_, err := svc.Verify(ctx, "alice", "p1")
	assert.NoError(t, err)
	_, err = svc.Verify(ctx, "alice", "p2")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestSQLite_VerifyDoesNotEnumerate(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "alice", "p1"))

	id, err := svc.Verify(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, wrong := svc.Verify(ctx, "alice", "wrong")
	_, missing := svc.Verify(ctx, "bob", "anything")
	assert.ErrorIs(t, wrong, service.ErrInvalidCredentials)
	assert.ErrorIs(t, missing, service.ErrInvalidCredentials)
	assert.Equal(t, wrong, missing)
}

func TestSQLite_LoginResolveRevoke(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "alice", "p1"))

	userID, err := svc.Verify(ctx, "alice", "p1")
	require.NoError(t, err)

	token, err := svc.CreateSession(ctx, userID, "alice")
	require.NoError(t, err)

	s, err := svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, "alice", s.Username)

	_, err = svc.RevokeSessions(ctx, "alice")
	require.NoError(t, err)

	s, err = svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSQLite_ListAllInInsertionOrder(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, "alice", "hi")
	require.NoError(t, err)
	_, err = svc.Append(ctx, "bob", "yo")
	require.NoError(t, err)

	got, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, [2]string{"alice", "hi"}, [2]string{got[0].Username, got[0].Content})
	assert.Equal(t, [2]string{"bob", "yo"}, [2]string{got[1].Username, got[1].Content})
}

func TestSQLite_ConcurrentAppends(t *testing.T) {
	svc := newSQLiteService(t)
	const (
		callers   = 8
		perCaller = 20
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{})
	)
	for c := 0; c < callers; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			for i := 0; i < perCaller; i++ {
				id, err := svc.Append(context.Background(), fmt.Sprintf("caller-%d", c), fmt.Sprintf("%d/%d", c, i))
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}(c)
	}
	wg.Wait()

	got, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, callers*perCaller)
	assert.Len(t, ids, callers*perCaller)

	for i, m := range got {
		_, acknowledged := ids[m.MessageID]
		assert.True(t, acknowledged, "message %s was never acknowledged", m.MessageID)
		if i > 0 {
			assert.Greater(t, m.Seq, got[i-1].Seq)
		}
	}
}
