package filter

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			// lru.New only fails for a non-positive size
			c.cache, _ = lru.New[string, CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.custom, funcs)
	}
}

// WithClock replaces time.Now in the date helpers.
func WithClock(now func() time.Time) ExprCompilerOption {
	return func(c *exprCompiler) {
		c.now = now
	}
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	custom      map[string]any
	cache       *lru.Cache[string, CompiledFilter]
	now         func() time.Time
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any, 32),
		custom:      make(map[string]any),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	addHelperFunctions(c.helperFuncs, c.now)
	maps.Copy(c.helperFuncs, c.custom)

	return c
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(compileEnvironment(c.helperFuncs)),
		expr.AllowUndefinedVariables(), // row fields are only known at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Add(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate reports whether row matches. A row the expression cannot be run
// against, e.g. one missing a compared field, does not match.
func (f *exprFilter) Evaluate(row Row) bool {
	result, err := expr.Run(f.program, runtimeEnvironment(f.helpers, row))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the row-independent helpers to env
func addHelperFunctions(env map[string]any, now func() time.Time) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(now().Sub(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return now().AddDate(0, -months, 0)
	}
	env["parseDate"] = parseDate
	env["now"] = now
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Numbers arrive as strings or json.Number depending on the field
	env["num"] = toFloat
}

// compileEnvironment adds typed stand-ins for the per-row helpers so that
// their calls are checked at compile time.
func compileEnvironment(helpers map[string]any) map[string]any {
	env := maps.Clone(helpers)
	env["Row"] = Row{}
	env["Keywords"] = []string{}
	env["hasKeyword"] = func(string) bool { return false }
	env["hasLicense"] = func(string) bool { return false }
	env["price"] = func(string) float64 { return 0 }
	env["created"] = func() time.Time { return time.Time{} }
	return env
}

// runtimeEnvironment exposes the row's fields as variables next to the
// helpers. Numeric fields are converted so that they compare as numbers.
func runtimeEnvironment(helpers map[string]any, row Row) map[string]any {
	env := make(map[string]any, len(helpers)+len(row)+8)
	maps.Copy(env, helpers)

	for k, v := range row {
		env[k] = normalize(v)
	}
	env["Row"] = row

	keywords := rowKeywords(row)
	env["Keywords"] = keywords
	env["hasKeyword"] = func(word string) bool {
		return slices.Contains(keywords, strings.ToLower(strings.TrimSpace(word)))
	}

	licenses := rowLicenses(row)
	env["hasLicense"] = func(name string) bool {
		_, ok := licenses[strings.ToUpper(name)]
		return ok
	}
	env["price"] = func(name string) float64 {
		return licenses[strings.ToUpper(name)]
	}
	env["created"] = func() time.Time {
		s, _ := row["creation_date"].(string)
		return parseDate(s)
	}

	return env
}

func normalize(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		f, _ := n.Float64()
		return f
	case []any:
		out := make([]any, len(n))
		for i := range n {
			out[i] = normalize(n[i])
		}
		return out
	}
	return v
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case json.Number:
		f, _ := n.Float64()
		return f
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

// parseDate accepts the date formats the API uses. Unparseable input yields
// the zero time.
func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t
		}
	}
	return time.Time{}
}

// rowKeywords returns the lower-cased keywords of a row, which the API sends
// either as a comma separated string or as a list of {"name": ...} objects.
func rowKeywords(row Row) []string {
	var out []string
	switch kw := row["keywords"].(type) {
	case string:
		for _, k := range strings.Split(kw, ",") {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				out = append(out, k)
			}
		}
	case []any:
		for _, item := range kw {
			switch k := item.(type) {
			case string:
				out = append(out, strings.ToLower(k))
			case map[string]any:
				out = append(out, strings.ToLower(fmt.Sprint(k["name"])))
			}
		}
	}
	return out
}

// rowLicenses maps upper-cased license names to their price in credits.
func rowLicenses(row Row) map[string]float64 {
	out := make(map[string]float64)
	list, _ := row["licenses"].([]any)
	for _, item := range list {
		l, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := l["name"].(string)
		if name == "" {
			continue
		}
		out[strings.ToUpper(name)] = toFloat(l["price"])
	}
	return out
}
