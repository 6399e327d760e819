package collection

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wathera-admin/internal/signal"
	"github.com/example/wathera-admin/internal/storage"
	"github.com/example/wathera-admin/internal/storage/mocks"
)

type note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (n note) RecordID() string { return n.ID }

func sampleNotes() []note {
	return []note{
		{ID: "a", Text: "first"},
		{ID: "b", Text: "second"},
	}
}

func newTestCollection(opts ...Option[note]) (*Collection[note], *mocks.MockStore, *signal.Hub) {
	store := mocks.NewMockStore()
	hub := signal.NewHub()
	opts = append([]Option[note]{
		WithLegacyKey[note]("notes-data"),
		WithSample[note](sampleNotes),
	}, opts...)
	col := New(store, hub, "notes", opts...)
	return col, store, hub
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func storedNotes(t *testing.T, store *mocks.MockStore, key string) []note {
	t.Helper()
	raw, ok := store.Data(key)
	require.True(t, ok, "nothing stored under %s", key)
	var records []note
	require.NoError(t, json.Unmarshal(raw, &records))
	return records
}

func TestCollection_Load_SeedsSampleWhenEmpty(t *testing.T) {
	col, store, _ := newTestCollection()

	got := col.Load(context.Background())

	assert.Equal(t, sampleNotes(), got)
	// The seed is persisted so the next load reads it back.
	assert.Equal(t, sampleNotes(), storedNotes(t, store, "notes"))
}

func TestCollection_Load_ReadsStoredValue(t *testing.T) {
	col, store, _ := newTestCollection()
	store.SetData("notes", mustJSON(t, []note{{ID: "x", Text: "kept"}}))

	got := col.Load(context.Background())

	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}

func TestCollection_Load_MalformedValueFallsBackWithoutOverwrite(t *testing.T) {
	col, store, _ := newTestCollection()
	store.SetData("notes", []byte("{not json"))

	got := col.Load(context.Background())

	assert.Equal(t, sampleNotes(), got)
	// The corrupt bytes stay in place for inspection.
	raw, ok := store.Data("notes")
	require.True(t, ok)
	assert.Equal(t, []byte("{not json"), raw)
	assert.Empty(t, store.PutCalls)
}

func TestCollection_Load_LegacyKeyMigratesForward(t *testing.T) {
	col, store, _ := newTestCollection()
	legacy := []note{{ID: "old", Text: "from legacy key"}}
	store.SetData("notes-data", mustJSON(t, legacy))

	got := col.Load(context.Background())

	assert.Equal(t, legacy, got)
	assert.Equal(t, legacy, storedNotes(t, store, "notes"))
}

func TestCollection_Load_RemoteFallbackBeforeSample(t *testing.T) {
	remote := []note{{ID: "r1", Text: "remote"}}
	col, store, _ := newTestCollection(WithRemote[note](func(context.Context) ([]note, error) {
		return remote, nil
	}))

	got := col.Load(context.Background())

	assert.Equal(t, remote, got)
	assert.Equal(t, remote, storedNotes(t, store, "notes"))
}

func TestCollection_Load_RemoteErrorFallsBackToSample(t *testing.T) {
	col, _, _ := newTestCollection(WithRemote[note](func(context.Context) ([]note, error) {
		return nil, errors.New("record service unreachable")
	}))

	got := col.Load(context.Background())

	assert.Equal(t, sampleNotes(), got)
}

func TestCollection_Load_NoSampleYieldsEmpty(t *testing.T) {
	store := mocks.NewMockStore()
	col := New[note](store, signal.NewHub(), "notes")

	got := col.Load(context.Background())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollection_SaveLoad_RoundTrip(t *testing.T) {
	col, _, _ := newTestCollection()
	records := []note{{ID: "1", Text: "one"}, {ID: "2", Text: "two"}}

	require.NoError(t, col.Save(context.Background(), records))

	assert.Equal(t, records, col.Load(context.Background()))
}

func TestCollection_Save_SignalsAfterWrite(t *testing.T) {
	col, _, _ := newTestCollection()
	fired := 0
	sub := col.Subscribe(func() { fired++ })
	defer sub.Cancel()

	require.NoError(t, col.Save(context.Background(), sampleNotes()))

	assert.Equal(t, 1, fired)
}

func TestCollection_Save_NoSignalOnWriteFailure(t *testing.T) {
	col, store, _ := newTestCollection()
	store.PutErr = errors.New("disk full")
	fired := 0
	sub := col.Subscribe(func() { fired++ })
	defer sub.Cancel()

	err := col.Save(context.Background(), sampleNotes())

	require.Error(t, err)
	assert.Equal(t, 0, fired)
}

func TestCollection_Create_AppendsRecord(t *testing.T) {
	col, _, _ := newTestCollection()
	ctx := context.Background()

	require.NoError(t, col.Create(ctx, note{ID: "c", Text: "third"}))

	got := col.Load(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[2].ID)
}

func TestCollection_Create_ValidatorRejects(t *testing.T) {
	wantErr := errors.New("text required")
	col, store, _ := newTestCollection(WithValidator[note](func(n *note) error {
		if n.Text == "" {
			return wantErr
		}
		return nil
	}))

	err := col.Create(context.Background(), note{ID: "c"})

	assert.ErrorIs(t, err, wantErr)
	assert.Empty(t, store.PutCalls)
}

func TestCollection_IDsStayUniqueAcrossMutations(t *testing.T) {
	col, _, _ := newTestCollection()
	ctx := context.Background()

	require.NoError(t, col.Create(ctx, note{ID: "c", Text: "new"}))
	_, err := col.DeleteOne(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, col.Create(ctx, note{ID: "d", Text: "newer"}))

	seen := make(map[string]bool)
	for _, n := range col.Load(ctx) {
		require.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
	}
}

func TestCollection_Patch_MergesFields(t *testing.T) {
	col, _, _ := newTestCollection()
	ctx := context.Background()

	require.NoError(t, col.Patch(ctx, "a", []byte(`{"text":"patched"}`)))

	got := col.Load(ctx)
	assert.Equal(t, "patched", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
}

func TestCollection_Patch_UnknownID(t *testing.T) {
	col, store, _ := newTestCollection()
	col.Load(context.Background())
	writes := len(store.PutCalls)

	err := col.Patch(context.Background(), "missing", []byte(`{"text":"x"}`))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, store.PutCalls, writes)
}

func TestCollection_Patch_IdentifierImmutable(t *testing.T) {
	col, _, _ := newTestCollection()

	err := col.Patch(context.Background(), "a", []byte(`{"id":"z"}`))

	require.Error(t, err)
	got := col.Load(context.Background())
	assert.Equal(t, "a", got[0].ID)
}

func TestCollection_Update_AppliesMutation(t *testing.T) {
	col, _, _ := newTestCollection()
	ctx := context.Background()

	err := col.Update(ctx, "b", func(n *note) { n.Text = "updated" })

	require.NoError(t, err)
	assert.Equal(t, "updated", col.Load(ctx)[1].Text)
}

func TestCollection_DeleteMany_SingleWriteSingleSignal(t *testing.T) {
	col, store, _ := newTestCollection()
	ctx := context.Background()
	col.Load(ctx)
	writes := len(store.PutCalls)
	fired := 0
	sub := col.Subscribe(func() { fired++ })
	defer sub.Cancel()

	removed, err := col.DeleteMany(ctx, []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, fired)
	assert.Len(t, store.PutCalls, writes+1)
	assert.Empty(t, col.Load(ctx))
}

func TestCollection_DeleteMany_StaleIDsAreNoop(t *testing.T) {
	col, store, _ := newTestCollection()
	ctx := context.Background()
	col.Load(ctx)
	writes := len(store.PutCalls)
	fired := 0
	sub := col.Subscribe(func() { fired++ })
	defer sub.Cancel()

	removed, err := col.DeleteMany(ctx, []string{"missing", "also-missing"})

	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 0, fired)
	assert.Len(t, store.PutCalls, writes)
}

func TestCollection_BulkUpdate_SingleWrite(t *testing.T) {
	col, store, _ := newTestCollection()
	ctx := context.Background()
	col.Load(ctx)
	writes := len(store.PutCalls)

	matched, err := col.BulkUpdate(ctx, []string{"a", "b", "missing"}, func(n *note) {
		n.Text = "bulk"
	})

	require.NoError(t, err)
	assert.Equal(t, 2, matched)
	assert.Len(t, store.PutCalls, writes+1)
	for _, n := range col.Load(ctx) {
		assert.Equal(t, "bulk", n.Text)
	}
}

func TestCollection_Clear_DropsBothKeysAndSignals(t *testing.T) {
	col, store, _ := newTestCollection()
	ctx := context.Background()
	store.SetData("notes", mustJSON(t, sampleNotes()))
	store.SetData("notes-data", mustJSON(t, sampleNotes()))
	fired := 0
	sub := col.Subscribe(func() { fired++ })
	defer sub.Cancel()

	require.NoError(t, col.Clear(ctx))

	_, ok := store.Data("notes")
	assert.False(t, ok)
	_, ok = store.Data("notes-data")
	assert.False(t, ok)
	assert.Equal(t, 1, fired)
}

func TestCollection_Load_StoreErrorFallsBackToSample(t *testing.T) {
	col, store, _ := newTestCollection()
	store.GetErr = errors.New("backend down")

	got := col.Load(context.Background())

	assert.Equal(t, sampleNotes(), got)
}

var _ storage.Store = (*mocks.MockStore)(nil)
