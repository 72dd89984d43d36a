package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var supportRef = Ref{Surface: "seeker", Channel: "support"}

func TestOpenMigratesFreshCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	got := db.Schema()
	if !got.Applied || got.Version != 2 || got.Latest != 2 {
		t.Errorf("fresh schema = %+v, want version 2 applied (init + indexes)", got)
	}
	if db.Path() != path {
		t.Errorf("path = %q", db.Path())
	}
	_ = db.Close()

	// Reopening an up-to-date cache runs nothing.
	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()
	if got := db.Schema(); got.Applied || got.Version != 2 {
		t.Errorf("reopened schema = %+v", got)
	}
}

func TestOpenRejectsForeignSchema(t *testing.T) {
	tests := []struct {
		name   string
		update string
		want   error
	}{
		{"newer build", "UPDATE schema_migrations SET version = 99", ErrSchemaTooNew},
		{"interrupted migration", "UPDATE schema_migrations SET dirty = 1", ErrSchemaDirty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.db")
			db, err := Open(path)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := db.Exec(tt.update); err != nil {
				t.Fatal(err)
			}
			_ = db.Close()

			_, err = Open(path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Open error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestMigrateSchemaHasRequiredColumns verifies the migration creates all
// columns the cache engine and outbox log depend on.
func TestMigrateSchemaHasRequiredColumns(t *testing.T) {
	db := testDB(t)

	requiredOps := []struct {
		desc  string
		query string
		args  []any
	}{
		{"insert conversation", "INSERT INTO conversations (surface, channel, key, title, opened_at) VALUES (?, ?, ?, ?, ?)", []any{"employer", "application", "42", "Jane", 1000}},
		{"insert message", "INSERT INTO messages (surface, channel, key, seq, sender_id, sender_role, sender_name, body, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", []any{"employer", "application", "42", 0, 7, "JOB_SEEKER", "Jane Doe", "hello", "2024-05-01"}},
		{"queue outbox", "INSERT INTO outbox (client_msg_id, surface, channel, key, body) VALUES (?, ?, ?, ?, ?)", []any{"cid", "employer", "support", "", "text"}},
	}

	for _, op := range requiredOps {
		t.Run(op.desc, func(t *testing.T) {
			if _, err := db.Exec(op.query, op.args...); err != nil {
				t.Fatalf("%s failed: %v", op.desc, err)
			}
		})
	}
}

func TestConversationUpsertAndList(t *testing.T) {
	db := testDB(t)

	convs := []*Conversation{
		{Ref: Ref{"employer", "application", "1"}, Title: "Alice", OpenedAt: 100},
		{Ref: Ref{"employer", "application", "2"}, Title: "Bob", OpenedAt: 300},
		{Ref: Ref{"employer", "support", ""}, Title: "Support", OpenedAt: 0},
		{Ref: Ref{"seeker", "support", ""}, Title: "Other surface", OpenedAt: 999},
	}
	for _, c := range convs {
		if err := db.UpsertConversation(c); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.ListConversations("employer", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d conversations, want 3", len(got))
	}
	if got[0].Title != "Bob" || got[1].Title != "Alice" || got[2].Title != "Support" {
		t.Errorf("order = %q, %q, %q; want Bob, Alice, Support", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestConversationUpsertKeepsTitleAndOpenedAt(t *testing.T) {
	db := testDB(t)
	ref := Ref{"admin", "direct-user", "5"}

	if err := db.UpsertConversation(&Conversation{Ref: ref, Title: "Dana", OpenedAt: 500}); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertConversation(&Conversation{Ref: ref}); err != nil {
		t.Fatal(err)
	}

	c, err := db.GetConversation(ref)
	if err != nil {
		t.Fatal(err)
	}
	if c == nil {
		t.Fatal("conversation not found")
	}
	if c.Title != "Dana" {
		t.Errorf("title = %q, want Dana", c.Title)
	}
	if c.OpenedAt != 500 {
		t.Errorf("opened_at = %d, want 500", c.OpenedAt)
	}
}

func TestGetConversationUnknown(t *testing.T) {
	db := testDB(t)
	c, err := db.GetConversation(Ref{"admin", "direct-user", "404"})
	if err != nil {
		t.Fatal(err)
	}
	if c != nil {
		t.Errorf("got %+v, want nil", c)
	}
}

func TestReplaceTranscript(t *testing.T) {
	db := testDB(t)

	first := []Message{
		{SenderRole: "ADMIN", SenderName: "Ana Lima", Body: "hi", CreatedAt: "2024-05-01"},
		{SenderRole: "JOB_SEEKER", Body: "hello", CreatedAt: "2024-05-02"},
	}
	if err := db.ReplaceTranscript(supportRef, first); err != nil {
		t.Fatal(err)
	}

	second := append(first, Message{SenderRole: "ADMIN", Body: "how can I help?", CreatedAt: "2024-05-03"})
	if err := db.ReplaceTranscript(supportRef, second); err != nil {
		t.Fatal(err)
	}

	msgs, err := db.ListMessages(supportRef, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3 (snapshot replaced, not appended)", len(msgs))
	}
	for i, m := range msgs {
		if m.Seq != i {
			t.Errorf("msgs[%d].Seq = %d", i, m.Seq)
		}
	}
	if msgs[0].SenderName != "Ana Lima" || msgs[2].Body != "how can I help?" {
		t.Errorf("unexpected transcript: %+v", msgs)
	}

	c, err := db.GetConversation(supportRef)
	if err != nil {
		t.Fatal(err)
	}
	if c.MessageCount != 3 || c.LastMessageAt != "2024-05-03" || c.LastMessagePreview != "how can I help?" {
		t.Errorf("summary = %+v", c)
	}
}

func TestListMessagesTail(t *testing.T) {
	db := testDB(t)
	var msgs []Message
	for i := 0; i < 10; i++ {
		msgs = append(msgs, Message{SenderRole: "ADMIN", Body: string(rune('a' + i)), CreatedAt: "2024-05-01"})
	}
	if err := db.ReplaceTranscript(supportRef, msgs); err != nil {
		t.Fatal(err)
	}

	got, err := db.ListMessages(supportRef, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d, want 3", len(got))
	}
	if got[0].Body != "h" || got[2].Body != "j" {
		t.Errorf("tail = %q..%q, want h..j", got[0].Body, got[2].Body)
	}
}

func TestReplaceTranscriptEmpty(t *testing.T) {
	db := testDB(t)
	if err := db.ReplaceTranscript(supportRef, []Message{{Body: "x", CreatedAt: "2024-05-01"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.ReplaceTranscript(supportRef, nil); err != nil {
		t.Fatal(err)
	}
	msgs, err := db.ListMessages(supportRef, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("got %d messages, want 0", len(msgs))
	}
	c, _ := db.GetConversation(supportRef)
	if c.MessageCount != 0 || c.LastMessagePreview != "" {
		t.Errorf("summary = %+v, want empty", c)
	}
}

func TestSearchMessages(t *testing.T) {
	db := testDB(t)
	app := Ref{"seeker", "application", "9"}
	if err := db.ReplaceTranscript(app, []Message{
		{SenderRole: "EMPLOYER", Body: "Can you do an Interview on Monday?", CreatedAt: "2024-05-01"},
		{SenderRole: "JOB_SEEKER", Body: "Yes, monday works", CreatedAt: "2024-05-02"},
		{SenderRole: "EMPLOYER", Body: "100% remote", CreatedAt: "2024-05-03"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.ReplaceTranscript(Ref{"employer", "support", ""}, []Message{
		{SenderRole: "ADMIN", Body: "monday maintenance", CreatedAt: "2024-05-01"},
	}); err != nil {
		t.Fatal(err)
	}

	results, err := db.SearchMessages("seeker", "monday", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (other surface excluded)", len(results))
	}
	for _, r := range results {
		if !strings.Contains(strings.ToLower(r.Snippet), "<<monday>>") {
			t.Errorf("snippet %q missing marked match", r.Snippet)
		}
	}

	// LIKE wildcards in the query are literal.
	results, err = db.SearchMessages("seeker", "0%", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Message.Body != "100% remote" {
		t.Errorf("literal %% search = %+v", results)
	}

	results, err = db.SearchMessages("seeker", "   ", 10)
	if err != nil || results != nil {
		t.Errorf("blank query = %v, %v; want nil, nil", results, err)
	}
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("x", 50) + "needle" + strings.Repeat("y", 50)
	got := snippet(long, "needle")
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") || !strings.Contains(got, "<<needle>>") {
		t.Errorf("snippet = %q", got)
	}
	if got := snippet("short needle", "NEEDLE"); got != "short <<needle>>" {
		t.Errorf("snippet = %q", got)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	db := testDB(t)
	ref := Ref{"employer", "application", "42"}

	for _, id := range []string{"a", "b", "c"} {
		if err := db.QueueOutbox(&OutboxEntry{ClientMsgID: id, Ref: ref, Body: "msg " + id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.MarkOutboxSent("a"); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkOutboxFailed("b", "POST /x: status 403"); err != nil {
		t.Fatal(err)
	}

	all, err := db.ListOutbox("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}

	failed, err := db.ListOutbox(OutboxFailed, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 1 || failed[0].ClientMsgID != "b" || failed[0].ErrorMessage != "POST /x: status 403" {
		t.Errorf("failed = %+v", failed)
	}
	if failed[0].Ref != ref {
		t.Errorf("ref = %+v, want %+v", failed[0].Ref, ref)
	}

	queued, _ := db.ListOutbox(OutboxQueued, 10)
	if len(queued) != 1 || queued[0].ClientMsgID != "c" {
		t.Errorf("queued = %+v", queued)
	}

	if err := db.QueueOutbox(&OutboxEntry{ClientMsgID: "a", Ref: ref, Body: "dup"}); err == nil {
		t.Error("duplicate client_msg_id should fail")
	}
}
