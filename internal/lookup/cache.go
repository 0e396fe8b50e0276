// Package lookup memoizes word definitions for one quiz screen and decides
// which of several in-flight lookups may update the display.
package lookup

import (
	"context"
	"sync"

	"github.com/abhisek/lexiquiz/internal/quizgen"
)

// Definer fetches a definition for a cleaned word.
type Definer interface {
	GetWordDefinition(ctx context.Context, word string) (quizgen.Definition, error)
}

// Request identifies one lookup started with Begin.
type Request struct {
	Word string
	Seq  uint64
}

// Result is the outcome of fetching a Request.
type Result struct {
	Request
	Definition quizgen.Definition
	Err        error
}

// Entry is what the definition panel shows.
type Entry struct {
	Word       string
	Definition quizgen.Definition
	Err        error
	Loading    bool
	Seq        uint64
}

// Cache holds definitions fetched during one quiz. Safe for concurrent use.
type Cache struct {
	definer Definer

	mu      sync.Mutex
	seq     uint64
	defs    map[string]quizgen.Definition
	current Entry
}

// New creates an empty Cache backed by d.
func New(d Definer) *Cache {
	return &Cache{definer: d, defs: make(map[string]quizgen.Definition)}
}

// Begin starts a lookup for word and marks the display as loading. If the
// definition is already cached the entry is filled immediately.
func (c *Cache) Begin(word string) Request {
	word = quizgen.CleanWord(word)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	req := Request{Word: word, Seq: c.seq}
	c.current = Entry{Word: word, Seq: req.Seq, Loading: true}
	if def, ok := c.defs[word]; ok && word != "" {
		c.current.Definition = def
		c.current.Loading = false
	}
	return req
}

// Fetch resolves req, calling the provider only on a cache miss. Failed
// lookups are not cached.
func (c *Cache) Fetch(ctx context.Context, req Request) Result {
	c.mu.Lock()
	def, ok := c.defs[req.Word]
	c.mu.Unlock()
	if ok {
		return Result{Request: req, Definition: def}
	}

	def, err := c.definer.GetWordDefinition(ctx, req.Word)
	if err != nil {
		return Result{Request: req, Err: err}
	}

	c.mu.Lock()
	c.defs[req.Word] = def
	c.mu.Unlock()
	return Result{Request: req, Definition: def}
}

// Complete applies res to the display if it belongs to the latest lookup.
// It reports whether the result was applied.
func (c *Cache) Complete(res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Seq != c.seq {
		return false
	}
	c.current = Entry{
		Word:       res.Word,
		Definition: res.Definition,
		Err:        res.Err,
		Seq:        res.Seq,
	}
	return true
}

// Current returns the entry for the latest lookup.
func (c *Cache) Current() Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Reset clears the display without dropping cached definitions.
// In-flight results from earlier lookups are discarded.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.current = Entry{}
}

// Lookup runs Begin, Fetch and Complete in one call.
func (c *Cache) Lookup(ctx context.Context, word string) (quizgen.Definition, error) {
	res := c.Fetch(ctx, c.Begin(word))
	c.Complete(res)
	return res.Definition, res.Err
}
