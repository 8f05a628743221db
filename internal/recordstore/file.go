package recordstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"unicube-hr/internal/shared/apperror"
)

// FileStore keeps one pretty-printed JSON file per collection under dir.
// Writes to a collection are serialized through a per-collection mutex, so
// two admin actions on the same collection cannot interleave their
// read-modify-write cycles and silently lose an update.
type FileStore struct {
	dir    string
	logger *zap.Logger

	mu    sync.Mutex // guards locks
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string, logger ...*zap.Logger) (*FileStore, error) {
	l := zap.L().Named("recordstore.file")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recordstore.file")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.StoreIO(err)
	}
	return &FileStore{
		dir:    dir,
		logger: l,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

func (s *FileStore) collectionLock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[collection]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[collection] = lock
	}
	return lock
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) ReadAll(ctx context.Context, collection string, out any) error {
	lock := s.collectionLock(collection)
	lock.Lock()
	defer lock.Unlock()
	return s.readLocked(collection, out)
}

func (s *FileStore) readLocked(collection string, out any) error {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return json.Unmarshal([]byte("[]"), out)
		}
		s.logger.Error("read collection failed",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return apperror.StoreIO(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Error("decode collection failed",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return apperror.StoreIO(err)
	}
	return nil
}

func (s *FileStore) WriteAll(ctx context.Context, collection string, records any) error {
	lock := s.collectionLock(collection)
	lock.Lock()
	defer lock.Unlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperror.StoreIO(err)
	}

	// write-then-rename so a crash mid-write never truncates the collection
	target := s.path(collection)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Error("write collection failed",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return apperror.StoreIO(err)
	}
	if err := os.Rename(tmp, target); err != nil {
		s.logger.Error("rename collection failed",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return apperror.StoreIO(err)
	}
	return nil
}
