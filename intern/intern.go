// Package intern maps shape ids and style class names
// to small integer keys, so that theme lookups hash integers
// instead of strings.
package intern

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Text for a key never
// produced by the Interner.
var ErrNotFound = errors.New("intern: key not found")

// Key is an interned string. The zero value is never allocated.
type Key uint32

// Interner is a growth-only, two way string table.
// It is not safe for concurrent use.
type Interner struct {
	keys  map[string]Key
	texts []string // texts[k-1] is the text of k
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{keys: make(map[string]Key)}
}

// Intern returns the key of text, allocating the next
// sequential key (starting at 1) on first sight.
func (in *Interner) Intern(text string) Key {
	if k, ok := in.keys[text]; ok {
		return k
	}
	in.texts = append(in.texts, text)
	k := Key(len(in.texts))
	in.keys[text] = k
	return k
}

// Lookup returns the key of text without allocating one.
func (in *Interner) Lookup(text string) (Key, bool) {
	k, ok := in.keys[text]
	return k, ok
}

// Text resolves a key back to its string.
func (in *Interner) Text(k Key) (string, error) {
	if k == 0 || int(k) > len(in.texts) {
		return "", fmt.Errorf("%w: %d", ErrNotFound, k)
	}
	return in.texts[k-1], nil
}

// Len returns the number of interned strings.
func (in *Interner) Len() int { return len(in.texts) }
