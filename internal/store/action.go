package store

import "github.com/idilsaglam/tada/internal/model"

// Action describes an intended state change. The set of actions is closed:
// only AddAction and RemoveAction implement it.
type Action interface {
	Kind() string
	isAction()
}

// AddAction appends Item to the end of the list. The item carries an
// already-issued ID so Reduce can stay pure.
type AddAction struct {
	Item model.Item
}

// RemoveAction drops the item whose ID equals ID.
type RemoveAction struct {
	ID string
}

func (AddAction) Kind() string    { return "add" }
func (RemoveAction) Kind() string { return "remove" }

func (AddAction) isAction()    {}
func (RemoveAction) isAction() {}

// Reduce computes the list that results from applying action to state.
//
// state is never mutated. When the action changes the list the result is a
// freshly allocated slice; when it does not (a removal matching nothing, or a
// nil action) state itself is returned.
func Reduce(state []model.Item, action Action) []model.Item {
	switch a := action.(type) {
	case AddAction:
		next := make([]model.Item, len(state), len(state)+1)
		copy(next, state)
		return append(next, a.Item)

	case RemoveAction:
		idx := indexOf(state, a.ID)
		if idx < 0 {
			return state
		}
		next := make([]model.Item, 0, len(state)-1)
		next = append(next, state[:idx]...)
		return append(next, state[idx+1:]...)
	}
	return state
}

func indexOf(items []model.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
