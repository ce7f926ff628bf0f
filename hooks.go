package diskcache

// Hooks are callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking: EntryCorrupt runs on the
// lookup path and the GC hooks run inside the sweep. Wrap slow sinks with
// hooks/async.
type Hooks interface {
	// An entry could not be used and will be regenerated.
	// where is a file path or a hot-tier key.
	// reason ∈ {"envelope", "decode", "memory_envelope", "memory_decode"}
	EntryCorrupt(where, reason string)

	// A sweep finished (successfully or not).
	GCCompleted(r GCResult)

	// A sweep hit a filesystem error that is not one of the expected races
	// (not-exist, permission, directory not empty).
	GCError(path string, err error)

	// The hot tier refused a write (backpressure/eviction).
	MemorySetRejected(key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

var _ Hooks = NopHooks{}

func (NopHooks) EntryCorrupt(string, string) {}
func (NopHooks) GCCompleted(GCResult)        {}
func (NopHooks) GCError(string, error)       {}
func (NopHooks) MemorySetRejected(string)    {}
