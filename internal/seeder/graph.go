package seeder

import (
	"fmt"
	"sort"
)

// DependencyGraph orders entity tables so every table comes after the
// tables its foreign keys point at.
type DependencyGraph struct {
	tables map[string]*TableInfo
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]*TableInfo),
	}
}

func (g *DependencyGraph) AddTable(table *TableInfo) {
	g.tables[table.Name] = table
}

// BuildInsertionOrder walks tables and dependencies in name order, so the
// result is stable across runs.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		table := g.tables[tableName]
		if table == nil {
			return fmt.Errorf("unknown table referenced as dependency: %s", tableName)
		}

		temp[tableName] = true
		deps := append([]string(nil), table.Dependencies...)
		sort.Strings(deps)
		for _, dep := range deps {
			if dep == tableName {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	names := make([]string, 0, len(g.tables))
	for name := range g.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !visited[name] {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}
