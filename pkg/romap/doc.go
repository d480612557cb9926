// SPDX-License-Identifier: MPL-2.0

// Package romap implements ROMap, an insertion-ordered string-keyed map whose
// entries can be individually promoted to read-only status.
//
// Protection is driven by a naming convention on the key used at access time
// rather than by separate API calls: a key with two leading underscores
// ("__key") writes the entry and marks it read-only, a single leading
// underscore ("_key") writes it and clears the mark, and a bare key obeys the
// mark. The design mirrors restricted-column table semantics: a protected
// entry's value can only be replaced through the underscore escape hatch.
//
// ROMap performs no internal locking. Callers that share an instance across
// goroutines must serialize all access themselves.
package romap
