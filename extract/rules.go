package extract

import "regexp"

// ruleSet holds the ordered matching rules for one language. Function rules
// are tried in order and at most one may claim a given line; classes and
// variables each use a single rule. Patterns are tolerant of formatting
// noise but deliberately narrow: a missed declaration is preferred over a
// wrong name.
type ruleSet struct {
	functions []*regexp.Regexp
	classes   *regexp.Regexp
	variables *regexp.Regexp
}

var ruleSets = map[Language]ruleSet{
	LangPython: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`^\s*def\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`),
		},
		classes:   regexp.MustCompile(`^\s*class\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		variables: regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*=`),
	},
	LangJavaScript: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`function\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*\(`),
			regexp.MustCompile(`(?:const|let|var)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>)`),
			regexp.MustCompile(`([a-zA-Z_$][a-zA-Z0-9_$]*)\s*:\s*(?:async\s+)?function\s*\(`),
			regexp.MustCompile(`^\s*(?:async\s+)?([a-zA-Z_$][a-zA-Z0-9_$]*)\s*\([^)]*\)\s*\{`),
		},
		classes:   regexp.MustCompile(`class\s+([a-zA-Z_$][a-zA-Z0-9_$]*)`),
		variables: regexp.MustCompile(`(?:const|let|var)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*=`),
	},
	LangJava: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|synchronized|abstract)\s+)*[\w<>\[\],\s]+\s([a-zA-Z_][a-zA-Z0-9_]*)\s*\([^)]*\)\s*(?:throws\s+[\w.,\s]+)?\{`),
		},
		classes:   regexp.MustCompile(`(?:public|private|protected)?\s*(?:abstract|final)?\s*class\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		variables: regexp.MustCompile(`^\s*(?:(?:private|public|protected|static|final)\s+)+[\w<>\[\]]+\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*[=;]`),
	},
	LangCPP: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:[\w:~]+\s+)?([a-zA-Z_][a-zA-Z0-9_]*)\s*\([^)]*\)\s*(?:const\s*)?\{`),
		},
		classes:   regexp.MustCompile(`class\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		variables: regexp.MustCompile(`(?:int|float|double|char|bool|auto|const|static)\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*[=;]`),
	},
	LangC: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:[\w*]+\s+)+([a-zA-Z_][a-zA-Z0-9_]*)\s*\([^)]*\)\s*\{`),
		},
		variables: regexp.MustCompile(`(?:int|float|double|char|void|long|short|unsigned|signed|static)\s+\*?\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*[=;\[]`),
	},
	LangGo: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`func\s+(?:\([^)]*\)\s+)?([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`),
		},
		variables: regexp.MustCompile(`(?:var|const)\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+`),
	},
	LangRust: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`fn\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*(?:<[^>]*>)?\s*\(`),
		},
		variables: regexp.MustCompile(`let\s+(?:mut\s+)?([a-zA-Z_][a-zA-Z0-9_]*)\s*[=:]`),
	},
	LangPHP: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`function\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`),
		},
		classes:   regexp.MustCompile(`class\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		variables: regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)\s*=`),
	},
	LangRuby: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`def\s+([a-zA-Z_][a-zA-Z0-9_?!]*)`),
		},
		classes:   regexp.MustCompile(`class\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		variables: regexp.MustCompile(`@?([a-zA-Z_][a-zA-Z0-9_]*)\s*=`),
	},
	LangSwift: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`func\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*(?:<[^>]*>)?\s*\(`),
		},
		classes:   regexp.MustCompile(`(?:class|struct|enum)\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		variables: regexp.MustCompile(`(?:let|var)\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*[=:]`),
	},
	LangKotlin: {
		functions: []*regexp.Regexp{
			regexp.MustCompile(`fun\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*(?:<[^>]*>)?\s*\(`),
		},
		classes:   regexp.MustCompile(`(?:class|object|interface)\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		variables: regexp.MustCompile(`(?:val|var)\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*[=:]`),
	},
	// Supported extensions without extraction rules: admitted files report
	// defined empty element lists.
	LangCSharp: {},
	LangScala:  {},
}
