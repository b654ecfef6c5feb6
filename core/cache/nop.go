package cache

// Nop is a cache that never stores anything.
type Nop struct{}

func NewNop() *Nop { return &Nop{} }

func (n *Nop) Get(key string) (any, bool) { return nil, false }
func (n *Nop) Put(key string, val any)    {}
func (n *Nop) Delete(key string)          {}

var _ Cache = (*Nop)(nil)
