package engine

import (
	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// workItem says: design is settled for every point below ptOn; decide
// whether to add option optionOn among the lines of length lengthOn
// through ptOn.
type workItem struct {
	design      *design.Design
	fingerprint canon.Fingerprint
	ptOn        int
	lengthOn    int
	optionOn    int
}

// frontier is a double-ended queue of work items backed by a ring buffer.
// It is only ever touched by the goroutine running the search.
type frontier struct {
	buf  []workItem
	head int
	n    int
}

func newFrontier() *frontier {
	return &frontier{buf: make([]workItem, 64)}
}

// PushFront adds an item that is processed next.
func (f *frontier) PushFront(w workItem) {
	f.grow()
	f.head = (f.head - 1 + len(f.buf)) % len(f.buf)
	f.buf[f.head] = w
	f.n++
}

// PushBack adds an item that is processed after everything queued so far.
func (f *frontier) PushBack(w workItem) {
	f.grow()
	f.buf[(f.head+f.n)%len(f.buf)] = w
	f.n++
}

// PopFront removes and returns the front item.
func (f *frontier) PopFront() (workItem, bool) {
	if f.n == 0 {
		return workItem{}, false
	}
	w := f.buf[f.head]
	// Release the design so abandoned branches can be collected.
	f.buf[f.head] = workItem{}
	f.head = (f.head + 1) % len(f.buf)
	f.n--
	return w, true
}

// Len returns the number of queued items.
func (f *frontier) Len() int { return f.n }

func (f *frontier) grow() {
	if f.n < len(f.buf) {
		return
	}
	buf := make([]workItem, 2*len(f.buf))
	for i := 0; i < f.n; i++ {
		buf[i] = f.buf[(f.head+i)%len(f.buf)]
	}
	f.buf = buf
	f.head = 0
}
