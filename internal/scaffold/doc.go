// Package scaffold plans and executes the file operations that add a schema
// to a feature: the schema definition and its barrel, and for documents and
// singletons the loader, query and hook modules, a context hook, and the
// context/provider modules with their barrels.
//
// NewPlan turns a Request into an ordered list of Operations. Ordering is
// declared through After edges and resolved with a stable topological sort,
// so every patch of a shared file runs before the create that would
// otherwise make the patch a duplicate. Planner.Execute runs the plan one
// operation at a time; each outcome is recorded independently and a failed
// operation never stops the run.
package scaffold
