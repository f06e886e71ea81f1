// Package reconcile implements the continuous reconciliation loop that
// converges live VM resource allocation toward a declared plan.
//
// Each cycle sleeps, opens a fresh log pair, prunes rotated logs,
// verifies the connection to the remote daemon, loads the ReconcilePlan,
// and runs every record through the same pipeline: match the named
// shut-off VM in inventory, diff desired CPU/memory against actual,
// apply the coalesced change in a single reconfiguration call, then
// apply the declared power intent if anything was changed.
//
// The loop is deliberately single-threaded: one record at a time, one
// remote call in flight. The only exit is a cycle that ends with a
// non-zero error count; warnings (ambiguous matches, invalid power
// intents, an unreadable plan) never stop the loop. Restarting after a
// halt is an operational concern outside this process.
package reconcile
