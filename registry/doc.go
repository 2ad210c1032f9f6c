// Package registry implements the handle table backing the dispatch
// protocol.
//
// Each live native instance occupies one tagged slot in a dense table. The
// host-visible token encodes the slot index and a per-slot generation
// counter, so validation is a bounds check plus generation and class-tag
// comparison; no host-supplied value is ever dereferenced blindly.
//
// # Lifecycle
//
//	reg := registry.NewRegistry()
//
//	tok := reg.Create("Counter", obj)       // new tagged entry
//	v, err := reg.Resolve(tok, "Counter")   // validated lookup
//	v, err = reg.Destroy(tok)               // exactly-once teardown
//
// Destroy invalidates the slot before releasing the object, so a repeated
// destroy or a resolve of a stale token fails loudly with an invalid-handle
// error instead of touching freed state. Slots are recycled through a free
// list; recycling bumps the generation so every token minted for the old
// occupant stays dead.
//
// # Class Tags
//
// Tags are compared by string value, never by pointer or runtime type
// identity, so a token minted for class A presented to a dispatcher
// expecting class B fails validation even across independently loaded
// modules.
//
// # Residency
//
// A Residency counter tracks how many live handles exist for a compiled
// module. Wire it up as a registry observer and the count follows entry
// lifetime exactly: the module may only be unloaded when the count is zero.
package registry
