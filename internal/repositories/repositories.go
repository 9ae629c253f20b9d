// package repositories provides the persistence layer for locally stored state.
//
// The catalogue itself lives on the remote book service and is never cached
// here. The only local state is the signed-in identity, stored as key/value
// rows so a restart can restore the session without re-authenticating.
package repositories
