// Package resolve models a project's dependency configurations at run time
// and the resolution mechanism that forces them. Resolution outcomes are
// reported as typed causes (unresolvable coordinate, lock state out of date)
// rather than raw errors, so the verification engine can aggregate them; an
// error return from a resolver is reserved for internal inconsistencies.
package resolve
