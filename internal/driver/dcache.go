package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cardgen/internal/card"
	"cardgen/internal/project"
	"cardgen/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит собранные карточки на диске по ключу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of one cached card.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Key    project.Digest
	Card   card.Card
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки: подкаталог "cards".
	return filepath.Join(c.dir, "cards", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a card to the disk cache.
func (c *DiskCache) Put(key project.Digest, cd *card.Card) (err error) {
	if c == nil || cd == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()           //nolint:errcheck
			_ = os.Remove(f.Name()) //nolint:errcheck
		}
	}()

	payload := DiskPayload{Schema: diskCacheSchemaVersion, Key: key, Card: *cd}
	payload.Card.Index = 0
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a card from the disk cache. A missing entry, a stale schema or
// a key mismatch all report a miss.
func (c *DiskCache) Get(key project.Digest) (*card.Card, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close() //nolint:errcheck

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Key != key {
		return nil, false, nil
	}
	cd := payload.Card
	return &cd, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, затем удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cardKey identifies a card by path, presence and content of both sides,
// both tags and the rule set. A side that is present but was not read digests
// differently from an absent one.
func cardKey(p source.Pair, oldFile, newFile *source.File, oldTag, newTag, rulesDigest string) project.Digest {
	return project.Combine(
		project.StringDigest("cardgen-card-v"+strconv.Itoa(int(diskCacheSchemaVersion))),
		project.StringDigest(p.Rel),
		sideDigest(p.InOld, oldFile),
		sideDigest(p.InNew, newFile),
		project.StringDigest(oldTag),
		project.StringDigest(newTag),
		project.StringDigest(rulesDigest),
	)
}

func sideDigest(present bool, f *source.File) project.Digest {
	switch {
	case !present:
		return project.StringDigest("absent")
	case f == nil:
		return project.StringDigest("unreadable")
	default:
		return project.Digest(f.Hash)
	}
}
