// Package cache implements the two-tier content-addressed cache spec
// §3.9 describes: a parsed-AST tier keyed on raw SQL text, and a
// compiled-statement tier keyed on a compiler.Fingerprint (package
// statement uses compiler.PreCompileKey). Both tiers wrap
// hashicorp/golang-lru's Cache, the bounded-size, goroutine-safe LRU the
// rest of the corpus reaches for in place of a hand-rolled map+mutex
// (see DESIGN.md).
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sqlspec-go/sqlspec/compiler"
	"github.com/sqlspec-go/sqlspec/sqlast"
)

// ASTKey identifies one parsed-AST cache entry: the exact raw SQL text,
// the dialect it was parsed under, and whether it was parsed as a
// script (the same text can legitimately parse two different ways).
type ASTKey struct {
	SQL      string
	Dialect  string
	IsScript bool
}

// ASTCache caches sqlast.Parse results. sqlast.Node exposes no exported
// mutator: every transformer rewrites sqlctx.Context.RawSQL text and
// triggers a fresh parse rather than editing a Node in place, so a
// cached Node is safe to hand out to multiple callers without cloning.
type ASTCache struct {
	inner *lru.Cache[ASTKey, sqlast.Node]
}

// NewASTCache builds an ASTCache holding up to size entries. size <= 0
// builds a cache of one entry.
func NewASTCache(size int) *ASTCache {
	if size <= 0 {
		size = 1
	}
	c, _ := lru.New[ASTKey, sqlast.Node](size)
	return &ASTCache{inner: c}
}

func (c *ASTCache) Get(key ASTKey) (sqlast.Node, bool) {
	if c == nil || c.inner == nil {
		return nil, false
	}
	return c.inner.Get(key)
}

func (c *ASTCache) Put(key ASTKey, node sqlast.Node) {
	if c == nil || c.inner == nil {
		return
	}
	c.inner.Add(key, node)
}

// CompiledCache caches compiler.CompiledStatement results keyed by a
// compiler.Fingerprint; package statement keys it by
// compiler.PreCompileKey, which deliberately excludes parameter values
// (spec §3.9 "the cache key never incorporates bound values, only SQL
// shape and style") so that two calls differing only in bound parameter
// values share one cache entry.
type CompiledCache struct {
	inner *lru.Cache[compiler.Fingerprint, *compiler.CompiledStatement]
}

func NewCompiledCache(size int) *CompiledCache {
	if size <= 0 {
		size = 1
	}
	c, _ := lru.New[compiler.Fingerprint, *compiler.CompiledStatement](size)
	return &CompiledCache{inner: c}
}

func (c *CompiledCache) Get(fp compiler.Fingerprint) (*compiler.CompiledStatement, bool) {
	if c == nil || c.inner == nil {
		return nil, false
	}
	return c.inner.Get(fp)
}

func (c *CompiledCache) Put(fp compiler.Fingerprint, stmt *compiler.CompiledStatement) {
	if c == nil || c.inner == nil {
		return
	}
	c.inner.Add(fp, stmt)
}

// Purge drops every entry from both tiers, used by tests.
func Purge(ast *ASTCache, compiled *CompiledCache) {
	if ast != nil && ast.inner != nil {
		ast.inner.Purge()
	}
	if compiled != nil && compiled.inner != nil {
		compiled.inner.Purge()
	}
}
