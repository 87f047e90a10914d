// Package suffix implements runtime-registered literal suffixes: named
// accessors attached to the sealed value kinds so that expressions like
// `30.s` or `"deadbeef".hexdecode` dispatch to user handlers.
//
// Registration goes through a pluggable Backend that patches a kind's
// dispatch table reversibly. Registrations on the none kind additionally
// install a shield on the meta kind, because an attribute read off a kind
// object is otherwise indistinguishable from a read off the none singleton.
//
// Strict registrations only accept receivers produced by a literal
// instruction. The check classifies the caller's most recently executed
// bytecode instruction against a per-format allowlist and fails closed:
// an unknown chunk format or missing call site rejects the access. The
// classification is an approximation of "written as a literal", not a
// proof; a literal stored in a variable and read back is rejected, and a
// literal-producing instruction reached through folding is accepted.
//
// A Registry is safe for concurrent use. Handlers run on the evaluating
// goroutine and must be safe under whatever concurrency the embedder uses.
package suffix
