// Package session serializes access to stored divination sessions. The
// HTTP surface runs one handler per request, so a cast and a change racing
// on the same session would otherwise interleave their read-modify-write
// cycles against the store.
package session
