package economy

// snapshotRing is a fixed-capacity FIFO of snapshots. Appending past capacity
// evicts the oldest entry.
type snapshotRing struct {
	buf   []Snapshot
	head  int
	count int
}

func newSnapshotRing(capacity int) *snapshotRing {
	if capacity < 1 {
		capacity = 1
	}
	return &snapshotRing{buf: make([]Snapshot, capacity)}
}

func (r *snapshotRing) push(s Snapshot) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = s
		r.count++
		return
	}
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
}

// items returns the snapshots oldest-first.
func (r *snapshotRing) items() []Snapshot {
	out := make([]Snapshot, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *snapshotRing) latest() (Snapshot, bool) {
	if r.count == 0 {
		return Snapshot{}, false
	}
	return r.buf[(r.head+r.count-1)%len(r.buf)], true
}
