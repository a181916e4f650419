package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"nevochat/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestMessageSQLite_Append(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns assigned seq", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(insertMessageSQL)).
			WithArgs("m-1", "alice", "hi", now.UnixMilli()).
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(17))

		seq, err := NewMessageSQLite(db).Append(ctx(t), models.Message{
			MessageID: "m-1", Username: "alice", Content: "hi", CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if seq != 17 {
			t.Fatalf("expected seq 17, got %d", seq)
		}
	})

	t.Run("db error surfaces", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(insertMessageSQL)).
			WillReturnError(errors.New("database or disk is full"))

		if _, err := NewMessageSQLite(db).Append(ctx(t), models.Message{MessageID: "m", Username: "a", Content: "c", CreatedAt: now}); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestMessageSQLite_ListAll(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"seq", "message_id", "sender", "content", "created_at"}

	t.Run("keeps row order", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectMessageSQL)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "m-1", "alice", "hi", now.UnixMilli()).
				AddRow(2, "m-2", "bob", "yo", now.Add(time.Second).UnixMilli()))

		got, err := NewMessageSQLite(db).ListAll(ctx(t))
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(got))
		}
		if got[0].Username != "alice" || got[0].Content != "hi" || got[1].Username != "bob" || got[1].Content != "yo" {
			t.Fatalf("unexpected order/content: %+v", got)
		}
		if got[0].Seq != 1 || !got[1].CreatedAt.Equal(now.Add(time.Second)) {
			t.Fatalf("unexpected seq/time: %+v", got)
		}
	})

	t.Run("empty log is an empty slice", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectMessageSQL)).
			WillReturnRows(sqlmock.NewRows(columns))

		got, err := NewMessageSQLite(db).ListAll(ctx(t))
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectMessageSQL)).
			WillReturnError(errors.New("boom"))

		if _, err := NewMessageSQLite(db).ListAll(ctx(t)); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("row error", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectMessageSQL)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "m-1", "alice", "hi", now.UnixMilli()).
				RowError(0, errors.New("corrupt page")))

		if _, err := NewMessageSQLite(db).ListAll(ctx(t)); err == nil {
			t.Fatal("expected error")
		}
	})
}
