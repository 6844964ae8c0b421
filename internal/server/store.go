package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// download is a processed workbook waiting to be fetched.
type download struct {
	fileName  string
	data      []byte
	expiresAt time.Time
}

// downloadStore keeps processed workbooks in memory until they expire.
type downloadStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]download
}

func newDownloadStore(ttl time.Duration) *downloadStore {
	return &downloadStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]download),
	}
}

func (s *downloadStore) put(fileName string, data []byte) (id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	id = uuid.NewString()
	s.items[id] = download{
		fileName:  fileName,
		data:      data,
		expiresAt: now.Add(s.ttl),
	}
	return id
}

func (s *downloadStore) get(id string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	v, ok := s.items[id]
	return v, ok
}

func (s *downloadStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
