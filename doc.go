/*
Package matchrouter implements a request routing and matching engine:
given a set of registered Route definitions, it finds the single best
route for an incoming request and reports the parameters captured from
its path.

Routes

A Route carries one or more path patterns, an optional method
restriction, optional host and remote-address restrictions, a
conjunction of variable predicates, and an optional opaque filter
function:

	r := matchrouter.New()
	id, err := r.AddRoute(&matchrouter.Route{
		Paths:   []string{"/api/users/:id"},
		Methods: []string{"GET"},
		Hosts:   []string{"*.example.com"},
		Priority: 10,
		Metadata: "user-detail",
	})

Path patterns come in three shapes: literal ("/healthz"), parameterized
("/users/:id/orders/:orderId", or with a named catch-all such as
"/static/*path"), and prefix-wildcard ("/static/*", an unnamed catch-all).
See the pathpattern package for the exact grammar.

Matching

Match takes a MatchRequest describing the incoming path, method, host,
remote address, and any variables needed by variable predicates or a
filter function, and returns the accepted route's ID, metadata, and
captured path parameters:

	result, err := r.Match(matchrouter.MatchRequest{
		Path:   "/api/users/42",
		Method: "GET",
		Host:   "eu.example.com",
	}, matchrouter.MatchOpts{})

A nil result with a nil error means no route accepted the request. An
error return is reserved for internal invariant violations and is
never used to report "no match".

When several routes could accept the same request, an exact-literal
path wins over any patterned one, and among patterned routes a longer
static prefix wins over a shorter one. Only among routes of the same
group does the highest Priority win, with ties broken by insertion
order, earliest first. Candidates are evaluated through a fixed pipeline — path, then
method, then host, then remote address, then variables, then filter —
and the first candidate to clear every stage is accepted.

Concurrency

A Router publishes its entire route set as a single immutable
snapshot, swapped atomically on every AddRoute or DeleteRoute call.
Match and Routes never take a lock; mutations are serialized against
each other internally, so a reader always sees either the full route
set before a change or the full route set after it, never a partial
view.

Loading routes from external sources

The DataClient interface and its StaticDataClient and YAMLDataClient
implementations let a Router's route set be populated from somewhere
other than direct AddRoute calls, optionally refreshed on a timer via
WithDataClient.
*/
package matchrouter
