// Package iocache keeps a history of loaded reports in a SQL archive.
package iocache

import (
	"sync"

	"github.com/huangsam/debtboard/internal/contract"
)

// ArchiveStoreManager manages the ArchiveStore instance.
type ArchiveStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	archive      contract.ArchiveStore
}

var _ contract.ArchiveManager = &ArchiveStoreManager{} // Compile-time check

// GetArchiveStore returns the archive store, or nil when archiving is disabled.
func (mgr *ArchiveStoreManager) GetArchiveStore() contract.ArchiveStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.archive
}
