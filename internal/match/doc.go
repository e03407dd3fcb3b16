// Package match ranks identifiers by similarity. The planner uses it to
// suggest the name a spec most likely meant when a predicate, error
// function or base type cannot be found.
package match
