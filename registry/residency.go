package registry

import "sync/atomic"

// Residency is the module-wide keep-resident count: the number of live
// handles minted for one compiled module. The module's loader may only
// unload it when the count is zero.
//
// A Residency is usually wired up as a registry observer so the count
// follows entry lifetime exactly:
//
//	res := &registry.Residency{}
//	reg.Subscribe(res)
//
// One Residency may observe several registries when a module binds more
// than one class.
type Residency struct {
	count  atomic.Int64
	faults atomic.Int64
}

// Acquire increments the count.
func (l *Residency) Acquire() {
	l.count.Add(1)
}

// Release decrements the count. The count never goes below zero; a release
// at zero is refused and recorded as a fault.
func (l *Residency) Release() {
	for {
		n := l.count.Load()
		if n <= 0 {
			l.faults.Add(1)
			return
		}
		if l.count.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Count returns the number of outstanding handles.
func (l *Residency) Count() int64 {
	return l.count.Load()
}

// Faults returns how many releases were refused at zero. A nonzero value
// means some caller tried to double-release.
func (l *Residency) Faults() int64 {
	return l.faults.Load()
}

// OnRegistryEvent implements Observer: created entries acquire, destroyed
// entries release.
func (l *Residency) OnRegistryEvent(e Event) {
	switch e.Type {
	case EventCreated:
		l.Acquire()
	case EventDestroyed:
		l.Release()
	}
}
