// Package shelf tracks which of the four reading shelves a book sits on:
// currently reading, completed, to-be-read, did-not-finish. Membership is
// device-local state, persisted to a JSON file in the data dir with no
// server-side identity attached.
package shelf

type Set string

const (
	SetReading   Set = "reading"
	SetCompleted Set = "completed"
	SetTBR       Set = "tbr"
	SetDNF       Set = "dnf"
)

func (s Set) Valid() bool {
	switch s {
	case SetReading, SetCompleted, SetTBR, SetDNF:
		return true
	}
	return false
}

// State holds the four shelves. Insertion order is preserved. A book may
// legally be on no shelf at all.
type State struct {
	Reading   []string `json:"reading"`
	Completed []string `json:"completed"`
	TBR       []string `json:"tbr"`
	DNF       []string `json:"dnf"`
}

func emptyState() State {
	return State{
		Reading:   []string{},
		Completed: []string{},
		TBR:       []string{},
		DNF:       []string{},
	}
}

type ActionKind string

const (
	// ActionToggle flips membership of a book on one shelf. Entering a
	// shelf evicts the book from conflicting shelves; leaving one
	// removes it from that shelf only.
	ActionToggle ActionKind = "toggle"
	// ActionForget drops a book from every shelf, used when the book
	// itself is deleted.
	ActionForget ActionKind = "forget"
)

type Action struct {
	Kind   ActionKind `json:"kind"`
	Set    Set        `json:"set,omitempty"`
	BookID string     `json:"book_id"`
}

// conflicts lists the shelves a book leaves when it enters the keyed one.
var conflicts = map[Set][]Set{
	SetReading:   {SetTBR},
	SetCompleted: {SetReading, SetTBR},
	SetTBR:       {SetReading},
	SetDNF:       {SetReading, SetTBR, SetCompleted},
}

// Reduce applies one action and returns the next state. It is the single
// place the transition rules live; the input state is not mutated.
func Reduce(state State, action Action) State {
	next := clone(state)

	switch action.Kind {
	case ActionForget:
		for _, set := range []Set{SetReading, SetCompleted, SetTBR, SetDNF} {
			next.set(set, remove(next.get(set), action.BookID))
		}
	case ActionToggle:
		if !action.Set.Valid() {
			return next
		}
		current := next.get(action.Set)
		if contains(current, action.BookID) {
			// Already on the shelf: drop it there, nothing re-enters
			// elsewhere.
			next.set(action.Set, remove(current, action.BookID))
			return next
		}
		for _, other := range conflicts[action.Set] {
			next.set(other, remove(next.get(other), action.BookID))
		}
		next.set(action.Set, append(current, action.BookID))
	}
	return next
}

func (s *State) get(set Set) []string {
	switch set {
	case SetReading:
		return s.Reading
	case SetCompleted:
		return s.Completed
	case SetTBR:
		return s.TBR
	case SetDNF:
		return s.DNF
	}
	return nil
}

func (s *State) set(set Set, books []string) {
	switch set {
	case SetReading:
		s.Reading = books
	case SetCompleted:
		s.Completed = books
	case SetTBR:
		s.TBR = books
	case SetDNF:
		s.DNF = books
	}
}

func clone(s State) State {
	return State{
		Reading:   append([]string{}, s.Reading...),
		Completed: append([]string{}, s.Completed...),
		TBR:       append([]string{}, s.TBR...),
		DNF:       append([]string{}, s.DNF...),
	}
}

func contains(books []string, id string) bool {
	for _, b := range books {
		if b == id {
			return true
		}
	}
	return false
}

func remove(books []string, id string) []string {
	out := books[:0]
	for _, b := range books {
		if b != id {
			out = append(out, b)
		}
	}
	return out
}
