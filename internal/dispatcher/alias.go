package dispatcher

import (
	"fmt"
	"sort"
	"strings"
)

// AliasTable maps a command name to the tokens it stands for.
type AliasTable struct {
	aliases map[string][]string
}

// NewAliasTable creates an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{aliases: make(map[string][]string)}
}

// Add defines name as tokens, replacing any previous definition.
func (a *AliasTable) Add(name string, tokens []string) error {
	if name == "" || len(tokens) == 0 {
		return Usagef("!alias new", "usage: !alias new <name> <command...>")
	}
	a.aliases[name] = append([]string(nil), tokens...)
	return nil
}

// Remove deletes name.
func (a *AliasTable) Remove(name string) error {
	if _, ok := a.aliases[name]; !ok {
		return Lookupf("!alias rm", "no such alias: %s", name)
	}
	delete(a.aliases, name)
	return nil
}

// Lookup returns the tokens name stands for.
func (a *AliasTable) Lookup(name string) ([]string, bool) {
	t, ok := a.aliases[name]
	return t, ok
}

// Expand replaces the first token by its alias definition and appends the
// remaining tokens. Expansion happens once; a definition that starts with
// another alias is not expanded again.
func (a *AliasTable) Expand(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	def, ok := a.aliases[tokens[0]]
	if !ok {
		return tokens
	}
	out := make([]string, 0, len(def)+len(tokens)-1)
	out = append(out, def...)
	return append(out, tokens[1:]...)
}

// Names returns the alias names in sorted order.
func (a *AliasTable) Names() []string {
	names := make([]string, 0, len(a.aliases))
	for n := range a.aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of aliases.
func (a *AliasTable) Len() int {
	return len(a.aliases)
}

// Describe returns a "name = tokens..." line for every alias, sorted by
// name.
func (a *AliasTable) Describe() []string {
	out := make([]string, 0, len(a.aliases))
	for _, n := range a.Names() {
		out = append(out, fmt.Sprintf("%s = %s", n, strings.Join(a.aliases[n], " ")))
	}
	return out
}
