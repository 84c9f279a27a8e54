package addressbook

import "fmt"

// AddressBook maps a name to exactly one Record and remembers insertion order.
// The underlying map is never exposed.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Add upserts r under its name. An existing entry is replaced, not merged,
// and keeps its original position.
func (b *AddressBook) Add(r *Record) {
	key := r.name.value
	if _, exists := b.records[key]; !exists {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("contact %q: %w", name, ErrNotFound)
	}
	return r, nil
}

// Delete removes the record stored under name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return fmt.Errorf("contact %q: %w", name, ErrNotFound)
	}
	delete(b.records, name)
	for i, key := range b.order {
		if key == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Records lists every record in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Len reports the number of records in the book.
func (b *AddressBook) Len() int { return len(b.order) }
