package differ

import (
	"crypto/sha256"
	"sync"
	"sync/atomic"

	"cardgen/internal/decl"
)

// Key is the digest of both signatures, the named error sets they refer to
// and the rule set.
type Key [32]byte

// Cache memoizes classification verdicts. Safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	items  map[Key]verdict
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewCache() *Cache {
	return &Cache{items: make(map[Key]verdict)}
}

func (c *Cache) get(k Key) (verdict, bool) {
	c.mu.RLock()
	v, ok := c.items[k]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

func (c *Cache) put(k Key, v verdict) {
	c.mu.Lock()
	c.items[k] = v
	c.mu.Unlock()
}

// Len returns the number of memoized verdicts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (df *Differ) key(old, new side) Key {
	h := sha256.New()
	// NUL не встречается в исходниках (их отсекает загрузчик), он и разделитель
	writeString := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	writeString(df.digest)
	for _, s := range []side{old, new} {
		writeString(decl.Join(s.d.Signature))
		for _, ctx := range errorContext(s) {
			writeString(ctx)
		}
		writeString("")
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// errorContext: сигнатуры именованных error set, на которые ссылается
// декларация; от них зависит вердикт, хотя токены самой декларации те же.
func errorContext(s side) []string {
	if s.file == nil {
		return nil
	}
	var out []string
	visit := func(ret []string) {
		set, _, ok := splitErrorUnion(ret)
		if !ok || len(set) != 1 {
			return
		}
		if d := s.file.Lookup(set[0]); d != nil && d.Container == "error" {
			out = append(out, d.SignatureText())
		}
	}
	visit(s.d.Return)
	for _, m := range s.d.PublicMembers() {
		visit(m.Return)
	}
	return out
}
