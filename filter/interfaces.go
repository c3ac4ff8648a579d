package filter

import "context"

// Row is one search result as decoded from the API.
type Row = map[string]any

// Filter defines the basic interface for row filters
type Filter interface {
	// Evaluate checks if a row matches the filter criteria
	Evaluate(row Row) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator evaluates filters against rows
type Evaluator interface {
	// Evaluate returns the rows matching filter, in input order
	Evaluate(ctx context.Context, filter CompiledFilter, rows []Row) ([]Row, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
