package cache

// LayoutKeyOpts lists the options that change a computed layout.
type LayoutKeyOpts struct {
	Direction  string
	IDStrategy string
	NodeSep    float64
	RankSep    float64
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of the records whose
	// canonical JSON hashes to recordsHash.
	LayoutKey(recordsHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(recordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordsHash, opts.Direction, opts.IDStrategy, opts.NodeSep, opts.RankSep)
}

// LayoutKey is DefaultKeyer.LayoutKey.
func LayoutKey(recordsHash string, opts LayoutKeyOpts) string {
	return DefaultKeyer{}.LayoutKey(recordsHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, giving tenants or
// environments separate namespaces in a shared backend.
//
//	staging := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(recordsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(recordsHash, opts)
}
