package store

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
)

func texts(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

// sequenceIDs returns an id source that yields ids in order, then repeats the last one.
func sequenceIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i]
		if i < len(ids)-1 {
			i++
		}
		return id
	}
}

func TestStore_Scenario(t *testing.T) {
	s := New()
	assert.Empty(t, s.List())

	a, err := s.Add("Buy milk")
	require.NoError(t, err)
	b, err := s.Add("Practice")
	require.NoError(t, err)

	assert.Equal(t, []model.Item{a, b}, s.List())

	assert.True(t, s.Remove(a.ID))
	assert.Equal(t, []model.Item{b}, s.List())

	assert.False(t, s.Remove(a.ID))
	assert.Equal(t, []model.Item{b}, s.List())
}

func TestStore_AppendOrder(t *testing.T) {
	s := New()
	want := []string{"one", "two", "three", "four", "five"}
	for _, text := range want {
		_, err := s.Add(text)
		require.NoError(t, err)
	}
	assert.Equal(t, want, texts(s.List()))
}

func TestStore_Add(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "plain", text: "Buy milk", want: "Buy milk"},
		{name: "trims whitespace", text: "  Practice Redux!\n", want: "Practice Redux!"},
		{name: "inner spaces kept", text: "a  b", want: "a  b"},
		{name: "empty", text: "", wantErr: true},
		{name: "whitespace only", text: " \t\n ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			item, err := s.Add(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Equal(t, 0, s.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, item.Text)
			assert.NotEmpty(t, item.ID)
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestStore_UniqueIDs(t *testing.T) {
	s := New()
	seen := make(map[string]bool)
	for i := range 500 {
		item, err := s.Add(fmt.Sprintf("item %d", i))
		require.NoError(t, err)
		assert.False(t, seen[item.ID], "id %q issued twice", item.ID)
		seen[item.ID] = true
	}
}

func TestStore_IDsNeverReissued(t *testing.T) {
	// The source hands out "a" again after it was removed; the store must skip it.
	s := New(WithIDFunc(sequenceIDs("a", "a", "b")))

	first, err := s.Add("first")
	require.NoError(t, err)
	assert.Equal(t, "a", first.ID)
	require.True(t, s.Remove("a"))

	second, err := s.Add("second")
	require.NoError(t, err)
	assert.Equal(t, "b", second.ID)
}

func TestStore_IDExhausted(t *testing.T) {
	s := New(WithIDFunc(func() string { return "same" }))

	_, err := s.Add("first")
	require.NoError(t, err)

	_, err = s.Add("second")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIDExhausted))
	assert.Equal(t, 1, s.Len())
}

func TestStore_RemoveUnknown(t *testing.T) {
	s := New(WithSeed("Buy milk", "Practice"))
	before := s.List()

	assert.False(t, s.Remove("does-not-exist"))
	assert.False(t, s.Remove(""))
	assert.Equal(t, before, s.List())
}

func TestStore_RemovePreservesOrder(t *testing.T) {
	s := New(WithSeed("a", "b", "c", "d"))
	items := s.List()

	require.True(t, s.Remove(items[1].ID))
	assert.Equal(t, []string{"a", "c", "d"}, texts(s.List()))

	require.True(t, s.Remove(items[3].ID))
	assert.Equal(t, []string{"a", "c"}, texts(s.List()))
}

func TestStore_ListIsolated(t *testing.T) {
	s := New(WithSeed("Buy milk"))

	got := s.List()
	got[0].Text = "changed"
	got[0].ID = "x"

	assert.Equal(t, []string{"Buy milk"}, texts(s.List()))
	assert.Equal(t, 1, s.Len())
}

func TestStore_Get(t *testing.T) {
	s := New()
	a, err := s.Add("Buy milk")
	require.NoError(t, err)

	got, ok := s.Get(a.ID)
	assert.True(t, ok)
	assert.Equal(t, a, got)

	s.Remove(a.ID)
	_, ok = s.Get(a.ID)
	assert.False(t, ok)
}

func TestStore_LengthInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := New()

	var ids []string
	added, removed := 0, 0

	for i := range 1000 {
		switch {
		case rng.Intn(3) > 0:
			item, err := s.Add(fmt.Sprintf("t%d", i))
			require.NoError(t, err)
			ids = append(ids, item.ID)
			added++
		case len(ids) > 0:
			id := ids[rng.Intn(len(ids))]
			if s.Remove(id) {
				removed++
			}
		default:
			assert.False(t, s.Remove("missing"))
		}
		require.Equal(t, added-removed, len(s.List()))
	}
}

func TestStore_Seed(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	s := New(WithLogger(logger), WithSeed("Buy milk!", "   ", "Practice React!"))

	assert.Equal(t, []string{"Buy milk!", "Practice React!"}, texts(s.List()))
	assert.Contains(t, buf.String(), "skipping seed item")
}

func TestStore_Subscribe(t *testing.T) {
	s := New()

	var kinds []string
	var lens []int
	unsubscribe := s.Subscribe(func(action Action, items []model.Item) {
		kinds = append(kinds, action.Kind())
		lens = append(lens, len(items))
	})

	a, err := s.Add("Buy milk")
	require.NoError(t, err)
	_, err = s.Add("Practice")
	require.NoError(t, err)
	s.Remove(a.ID)
	s.Remove(a.ID) // no change, no notification
	_, _ = s.Add("")

	assert.Equal(t, []string{"add", "add", "remove"}, kinds)
	assert.Equal(t, []int{1, 2, 1}, lens)

	unsubscribe()
	unsubscribe()
	_, err = s.Add("after")
	require.NoError(t, err)
	assert.Len(t, kinds, 3)
}

func TestStore_SubscribeSnapshotIsolated(t *testing.T) {
	s := New()
	s.Subscribe(func(_ Action, items []model.Item) {
		for i := range items {
			items[i].Text = "mutated"
		}
	})

	_, err := s.Add("Buy milk")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk"}, texts(s.List()))
}

func TestStore_UnsubscribeKeepsOthers(t *testing.T) {
	s := New()

	var first, second int
	stopFirst := s.Subscribe(func(Action, []model.Item) { first++ })
	s.Subscribe(func(Action, []model.Item) { second++ })

	_, _ = s.Add("a")
	stopFirst()
	_, _ = s.Add("b")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestStore_Dispatch(t *testing.T) {
	s := New()

	assert.True(t, s.Dispatch(AddAction{Item: model.Item{ID: "a", Text: "Buy milk"}}))
	assert.False(t, s.Dispatch(AddAction{Item: model.Item{ID: "a", Text: "again"}}), "reused id")
	assert.False(t, s.Dispatch(AddAction{Item: model.Item{ID: "", Text: "no id"}}))
	assert.False(t, s.Dispatch(AddAction{Item: model.Item{ID: "b", Text: "  "}}))
	assert.Equal(t, []string{"Buy milk"}, texts(s.List()))

	assert.True(t, s.Dispatch(RemoveAction{ID: "a"}))
	assert.False(t, s.Dispatch(RemoveAction{ID: "a"}))
	assert.Empty(t, s.List())

	// "a" was issued through Dispatch, so it is never accepted again.
	assert.False(t, s.Dispatch(AddAction{Item: model.Item{ID: "a", Text: "Buy milk"}}))
}

func TestStore_DispatchNil(t *testing.T) {
	s := New(WithSeed("Buy milk"))

	assert.NotPanics(t, func() {
		assert.False(t, s.Dispatch(nil))
	})
	assert.Equal(t, 1, s.Len())
}

func TestStore_DispatchTrimsText(t *testing.T) {
	s := New()

	var notified []model.Item
	s.Subscribe(func(action Action, _ []model.Item) {
		notified = append(notified, action.(AddAction).Item)
	})

	require.True(t, s.Dispatch(AddAction{Item: model.Item{ID: "a", Text: "  padded  "}}))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "padded", got.Text)
	require.Len(t, notified, 1)
	assert.Equal(t, "padded", notified[0].Text)
}

func TestStore_Logging(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	a, err := s.Add("Buy milk")
	require.NoError(t, err)
	s.Remove(a.ID)
	s.Remove(a.ID)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "state changed"))
	assert.Contains(t, out, "no change")
}

func TestStore_ConcurrentUse(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				item, err := s.Add(fmt.Sprintf("w%d-%d", w, i))
				if err != nil {
					t.Error(err)
					return
				}
				if i%2 == 0 {
					s.Remove(item.ID)
				}
				_ = s.List()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*25, s.Len())
}
