package cache

import (
	"container/list"
	"sync"
)

type entry struct {
	key string
	val any
}

// LRU is an in-memory least-recently-used cache, safe for concurrent use.
type LRU struct {
	mu    sync.Mutex
	size  int
	ll    *list.List
	index map[string]*list.Element
}

type LRUOpts struct {
	Size int
}

func NewLRU(opts LRUOpts) *LRU {
	if opts.Size <= 0 {
		opts.Size = 128
	}
	return &LRU{
		size:  opts.Size,
		ll:    list.New(),
		index: make(map[string]*list.Element),
	}
}

func (l *LRU) Get(key string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ele, ok := l.index[key]
	if !ok {
		return nil, false
	}
	l.ll.MoveToFront(ele)
	return ele.Value.(*entry).val, true
}

func (l *LRU) Put(key string, val any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ele, ok := l.index[key]; ok {
		l.ll.MoveToFront(ele)
		ele.Value.(*entry).val = val
		return
	}

	l.index[key] = l.ll.PushFront(&entry{key: key, val: val})
	if l.ll.Len() > l.size {
		last := l.ll.Back()
		if last != nil {
			l.ll.Remove(last)
			delete(l.index, last.Value.(*entry).key)
		}
	}
}

func (l *LRU) Delete(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ele, ok := l.index[key]; ok {
		l.ll.Remove(ele)
		delete(l.index, key)
	}
}

var _ Cache = (*LRU)(nil)
