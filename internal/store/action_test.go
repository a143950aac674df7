package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/tada/internal/model"
)

func TestReduce(t *testing.T) {
	a := model.Item{ID: "a", Text: "Buy milk"}
	b := model.Item{ID: "b", Text: "Practice"}
	c := model.Item{ID: "c", Text: "Practice Redux!"}

	tests := []struct {
		name   string
		state  []model.Item
		action Action
		want   []model.Item
	}{
		{name: "add to empty", state: nil, action: AddAction{Item: a}, want: []model.Item{a}},
		{name: "add appends", state: []model.Item{a, b}, action: AddAction{Item: c}, want: []model.Item{a, b, c}},
		{name: "remove middle", state: []model.Item{a, b, c}, action: RemoveAction{ID: "b"}, want: []model.Item{a, c}},
		{name: "remove last", state: []model.Item{a}, action: RemoveAction{ID: "a"}, want: []model.Item{}},
		{name: "remove unknown", state: []model.Item{a, b}, action: RemoveAction{ID: "zzz"}, want: []model.Item{a, b}},
		{name: "nil action", state: []model.Item{a}, action: nil, want: []model.Item{a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.state, tt.action)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	// Spare capacity would let a naive append write into the caller's array.
	state := make([]model.Item, 2, 8)
	state[0] = model.Item{ID: "a", Text: "Buy milk"}
	state[1] = model.Item{ID: "b", Text: "Practice"}
	orig := append([]model.Item(nil), state...)

	added := Reduce(state, AddAction{Item: model.Item{ID: "c", Text: "new"}})
	assert.Len(t, added, 3)
	assert.Equal(t, orig, state)
	assert.Equal(t, model.Item{}, state[:3][2], "spare capacity written")

	removed := Reduce(state, RemoveAction{ID: "a"})
	assert.Equal(t, []model.Item{{ID: "b", Text: "Practice"}}, removed)
	assert.Equal(t, orig, state)

	added[0].Text = "changed"
	assert.Equal(t, "Buy milk", state[0].Text)
}

func TestAction_Kind(t *testing.T) {
	assert.Equal(t, "add", AddAction{}.Kind())
	assert.Equal(t, "remove", RemoveAction{}.Kind())
}
