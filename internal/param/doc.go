// Package param describes the parameters of an equation and the parameter
// records a problem is built with.
//
// An equation either declares a [Schema] (parameter name -> value kind) or
// [NullParameters]. A problem carries either a [Record] or [NullParameters].
// The two sides are typed by the sealed interfaces [Declaration] and
// [Parameters], so absence is a distinct type rather than a nil map:
//
//	schema := param.Schema{"k": param.KindFloat}
//	rec := param.Record{"k": 0.5}
//	if err := param.Check(schema, rec); err != nil {
//	    // record does not satisfy the schema
//	}
//	k := rec.Float("k")
//
// Record accessors coerce loosely typed values (for example YAML integers)
// with spf13/cast, so role functions read parameters without type switches.
package param
