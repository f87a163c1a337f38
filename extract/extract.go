package extract

import (
	"regexp"
	"strings"
)

// Elements holds the declaration names found in a single file, per kind, in
// first-seen order, deduplicated and truncated. Slices are never nil so the
// report serializes empty kinds as [].
type Elements struct {
	Functions []string
	Classes   []string
	Variables []string
}

// DefaultMaxPerKind bounds each element list when no explicit cap is given.
const DefaultMaxPerKind = 30

// Control-flow keywords never reported as identifiers.
var controlFlow = map[string]struct{}{
	"if": {}, "else": {}, "elif": {}, "for": {}, "while": {}, "switch": {},
	"case": {}, "do": {}, "break": {}, "continue": {}, "return": {}, "goto": {},
	"try": {}, "catch": {}, "finally": {}, "throw": {}, "raises": {},
	"except": {}, "with": {}, "yield": {}, "assert": {}, "pass": {},
	"await": {}, "async": {}, "defer": {}, "select": {}, "range": {},
	"foreach": {}, "until": {}, "unless": {},
}

// Built-in type names and modifiers never reported as identifiers.
var builtinTypes = map[string]struct{}{
	"int": {}, "float": {}, "double": {}, "char": {}, "bool": {}, "void": {},
	"string": {}, "str": {}, "list": {}, "dict": {}, "tuple": {}, "set": {},
	"array": {}, "vector": {}, "map": {}, "HashMap": {}, "ArrayList": {},
	"LinkedList": {}, "String": {}, "Integer": {}, "Boolean": {}, "Object": {},
	"Class": {}, "Interface": {}, "var": {}, "let": {}, "const": {},
	"auto": {}, "long": {}, "short": {}, "unsigned": {}, "signed": {},
	"static": {}, "final": {}, "public": {}, "private": {}, "protected": {},
}

var reservedNames = map[string]struct{}{
	"main": {}, "this": {}, "self": {}, "super": {}, "null": {},
	"true": {}, "false": {}, "None": {}, "True": {}, "False": {},
}

var identStart = regexp.MustCompile(`^[a-zA-Z_]`)

// cleanIdentifier validates a captured name; it returns "" when the match
// should be dropped. Ambiguous names are dropped, never guessed at.
func cleanIdentifier(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if _, ok := controlFlow[strings.ToLower(name)]; ok {
		return ""
	}
	if _, ok := builtinTypes[name]; ok {
		return ""
	}
	if len(name) < 2 {
		return ""
	}
	if _, ok := reservedNames[name]; ok {
		return ""
	}
	if !identStart.MatchString(name) {
		return ""
	}
	return name
}

// collector accumulates names per kind: first-seen order, exact-name dedupe.
// Truncation is applied once at the end, never during collection.
type collector struct {
	seen  map[string]struct{}
	names []string
}

func (c *collector) add(name string) {
	if name == "" {
		return
	}
	if _, dup := c.seen[name]; dup {
		return
	}
	c.seen[name] = struct{}{}
	c.names = append(c.names, name)
}

func (c *collector) take(max int) []string {
	if max > 0 && len(c.names) > max {
		return c.names[:max]
	}
	if c.names == nil {
		return []string{}
	}
	return c.names
}

// Extract scans file content with the language's rule set and returns the
// bounded, deduplicated declaration names. Running it twice on identical
// input yields identical results.
func Extract(content string, lang Language, maxPerKind int) Elements {
	if maxPerKind <= 0 {
		maxPerKind = DefaultMaxPerKind
	}
	funcs := &collector{seen: make(map[string]struct{})}
	classes := &collector{seen: make(map[string]struct{})}
	vars := &collector{seen: make(map[string]struct{})}

	rules, ok := ruleSets[lang]
	if !ok {
		return Elements{Functions: []string{}, Classes: []string{}, Variables: []string{}}
	}

	for _, line := range strings.Split(content, "\n") {
		// A line may satisfy at most one function rule; first match wins.
		for _, re := range rules.functions {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			funcs.add(cleanIdentifier(m[1]))
			break
		}
		if rules.classes != nil {
			if m := rules.classes.FindStringSubmatch(line); m != nil {
				classes.add(cleanIdentifier(m[1]))
			}
		}
		if rules.variables != nil {
			if m := rules.variables.FindStringSubmatch(line); m != nil {
				vars.add(cleanIdentifier(m[1]))
			}
		}
	}

	return Elements{
		Functions: funcs.take(maxPerKind),
		Classes:   classes.take(maxPerKind),
		Variables: vars.take(maxPerKind),
	}
}
