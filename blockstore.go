package vfs

import "sync"

// block is one fixed-size byte region owned by the disk and referenced by a
// RegularFile. Its contents are protected by the owning RegularFile's lock,
// never by the disk.
type block struct {
	buf []byte
}

// HeapDisk is the pooled arena of fixed-size blocks backing every
// RegularFile in a Filesystem. It tracks total allocated bytes against
// Configuration's maxSize, and retains up to maxCacheSize worth of freed
// blocks for reuse; beyond that, freed blocks are dropped for the garbage
// collector to reclaim.
type HeapDisk struct {
	blockSize     int
	maxTotalBytes int64 // 0 means unbounded
	maxCacheBytes int64

	mu             sync.Mutex
	freeBufs       [][]byte
	allocatedBytes int64
}

// NewHeapDisk creates a block pool with the given block size, a maximum
// total resident size (0 for unbounded), and a maximum amount of freed
// bytes retained in the free-list for reuse.
func NewHeapDisk(blockSize int, maxTotalBytes, maxCacheBytes int64) *HeapDisk {
	return &HeapDisk{
		blockSize:     blockSize,
		maxTotalBytes: maxTotalBytes,
		maxCacheBytes: maxCacheBytes,
	}
}

// BlockSize returns the configured bytes per block.
func (d *HeapDisk) BlockSize() int {
	return d.blockSize
}

// allocate returns n freshly zeroed blocks, reusing pooled buffers where
// possible. It fails OutOfSpace, freeing anything it already allocated in
// this call, if the total would exceed maxTotalBytes.
func (d *HeapDisk) allocate(n int) ([]*block, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	blocks := make([]*block, 0, n)
	for i := 0; i < n; i++ {
		if d.maxTotalBytes > 0 && d.allocatedBytes+int64(d.blockSize) > d.maxTotalBytes {
			d.releaseLocked(blocks)
			return nil, newErr(OutOfSpace, "")
		}
		var buf []byte
		if l := len(d.freeBufs); l > 0 {
			buf = d.freeBufs[l-1]
			d.freeBufs = d.freeBufs[:l-1]
		} else {
			buf = make([]byte, d.blockSize)
		}
		d.allocatedBytes += int64(d.blockSize)
		blocks = append(blocks, &block{buf: buf})
	}
	return blocks, nil
}

// free returns blocks to the pool, zeroing and retaining up to
// maxCacheBytes worth of them; the rest are simply dropped.
func (d *HeapDisk) free(blocks []*block) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.releaseLocked(blocks)
}

func (d *HeapDisk) releaseLocked(blocks []*block) {
	maxCacheBlocks := 0
	if d.blockSize > 0 {
		maxCacheBlocks = int(d.maxCacheBytes / int64(d.blockSize))
	}
	for _, b := range blocks {
		d.allocatedBytes -= int64(len(b.buf))
		if len(d.freeBufs) < maxCacheBlocks {
			for i := range b.buf {
				b.buf[i] = 0
			}
			d.freeBufs = append(d.freeBufs, b.buf)
		}
	}
}

// AllocatedBytes returns the total bytes currently checked out to RegularFiles.
func (d *HeapDisk) AllocatedBytes() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allocatedBytes
}
