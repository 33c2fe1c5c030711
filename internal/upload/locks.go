package upload

import (
	"hash/fnv"
	"sync"
)

const defaultLockStripes = 64

// uploadLocks сериализует обработку чанков одного fileID. Разные fileID могут
// делить мьютекс, если попали в одну полосу.
type uploadLocks struct {
	stripes []sync.Mutex
}

func newUploadLocks(n int) *uploadLocks {
	if n <= 0 {
		n = defaultLockStripes
	}
	return &uploadLocks{stripes: make([]sync.Mutex, n)}
}

func (l *uploadLocks) lock(fileID string) (unlock func()) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fileID))
	mu := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	mu.Lock()
	return mu.Unlock
}
