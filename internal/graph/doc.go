/*
Package graph implements the dataflow-graph core: nodes owning typed
parameters, directed edges from outputs to inputs, the connection protocol
that creates and destroys edges under node locks, and the value-resolution
read path that answers "what is this input's value at time T".

# Concurrency model

Editing operations mutate edges through Connect and Disconnect. Both lock
the two endpoint nodes in ascending node-serial order, which is total
across the graph, so two connects touching the same pair of nodes in
opposite roles cannot deadlock. Listeners are invoked synchronously after
the locks are released.

The evaluation path never takes a node's structural lock. Each parameter
publishes its edge list as an immutable snapshot behind an atomic pointer;
mutations build a new slice and swap it in, so a concurrent reader sees
either the old list or the new one, never a list mid-mutation.
*/
package graph
