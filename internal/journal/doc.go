// Package journal records widepack runs in a local SQLite database.
//
// Each run stores what was transformed, never the text itself: the mode, the
// input source, a domain-separated SHA-256 digest of the input, and the
// character counts on either side. Entries are ordered by seq, an
// autoincrementing logical clock; there are no wall-clock timestamps.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Single connection: SQLite allows one writer
//
// Schema changes are applied with PRAGMA user_version migrations on Open.
package journal
