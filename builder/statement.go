package builder

import (
	"github.com/sqlspec-go/sqlspec/param"
	"github.com/sqlspec-go/sqlspec/statement"
)

func toPayload(values map[string]interface{}) param.Payload {
	if len(values) == 0 {
		return param.Empty{}
	}
	return param.Named(values)
}

// ToStatement renders s and binds it to a new statement.Statement via
// statement.FromNode, so the builder's own output skips the compiler's
// initial parse (spec §4.5 "a statement built in process can enter the
// pipeline at the AST stage"); the post-transformer parse still runs.
func (s Select) ToStatement(cfg statement.Config) *statement.Statement {
	node := s.node()
	_, values := s.Build()
	return statement.FromNode(node, cfg).WithParameters(toPayload(values))
}

func (i Insert) ToStatement(cfg statement.Config) *statement.Statement {
	node := i.node()
	_, values := i.Build()
	return statement.FromNode(node, cfg).WithParameters(toPayload(values))
}

func (u Update) ToStatement(cfg statement.Config) *statement.Statement {
	node := u.node()
	_, values := u.Build()
	return statement.FromNode(node, cfg).WithParameters(toPayload(values))
}

func (d Delete) ToStatement(cfg statement.Config) *statement.Statement {
	node := d.node()
	_, values := d.Build()
	return statement.FromNode(node, cfg).WithParameters(toPayload(values))
}

func (m Merge) ToStatement(cfg statement.Config) *statement.Statement {
	node := m.node()
	_, values := m.Build()
	return statement.FromNode(node, cfg).WithParameters(toPayload(values))
}
