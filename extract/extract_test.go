package extract

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestLanguageForExtension(t *testing.T) {
	cases := map[string]Language{
		".py":    LangPython,
		".PY":    LangPython,
		".tsx":   LangJavaScript,
		".kt":    LangKotlin,
		".cs":    LangCSharp,
		".exe":   LangUnknown,
		"":       LangUnknown,
		".bogus": LangUnknown,
	}
	for ext, want := range cases {
		if got := LanguageForExtension(ext); got != want {
			t.Fatalf("LanguageForExtension(%q) = %q, want %q", ext, got, want)
		}
	}
	if Supported(".exe") {
		t.Fatal(".exe should not be supported")
	}
	if !Supported(".go") {
		t.Fatal(".go should be supported")
	}
}

func TestRuleSetsCoverAllLanguages(t *testing.T) {
	for ext, lang := range extToLanguage {
		if _, ok := ruleSets[lang]; !ok {
			t.Fatalf("language %q (ext %q) has no rule set entry", lang, ext)
		}
	}
}

func TestExtractPython(t *testing.T) {
	code := "class Foo:\n    def bar(self):\n        pass\n\ncount = 1\n"
	got := Extract(code, LangPython, 30)
	if !reflect.DeepEqual(got.Classes, []string{"Foo"}) {
		t.Fatalf("classes = %v", got.Classes)
	}
	if !reflect.DeepEqual(got.Functions, []string{"bar"}) {
		t.Fatalf("functions = %v", got.Functions)
	}
	if !reflect.DeepEqual(got.Variables, []string{"count"}) {
		t.Fatalf("variables = %v", got.Variables)
	}
}

func TestExtractGoNoClasses(t *testing.T) {
	code := "package demo\n\nvar counter int\n\nfunc Add(a, b int) int { return a + b }\n\nfunc (s *Server) Start() error { return nil }\n"
	got := Extract(code, LangGo, 30)
	if len(got.Classes) != 0 {
		t.Fatalf("go should have empty classes, got %v", got.Classes)
	}
	if !reflect.DeepEqual(got.Functions, []string{"Add", "Start"}) {
		t.Fatalf("functions = %v", got.Functions)
	}
	if !reflect.DeepEqual(got.Variables, []string{"counter"}) {
		t.Fatalf("variables = %v", got.Variables)
	}
}

func TestExtractJavaScript(t *testing.T) {
	code := strings.Join([]string{
		"function greet(name) {",
		"  return name;",
		"}",
		"const handler = async (req, res) => {",
		"  res.end();",
		"};",
		"const limit = 10;",
		"class Router {}",
	}, "\n")
	got := Extract(code, LangJavaScript, 30)
	if !reflect.DeepEqual(got.Functions, []string{"greet", "handler"}) {
		t.Fatalf("functions = %v", got.Functions)
	}
	if !reflect.DeepEqual(got.Classes, []string{"Router"}) {
		t.Fatalf("classes = %v", got.Classes)
	}
	for _, v := range got.Variables {
		if v == "handler" {
			continue
		}
		if v != "limit" {
			t.Fatalf("unexpected variable %q in %v", v, got.Variables)
		}
	}
}

func TestExtractDeduplicates(t *testing.T) {
	code := "def work():\n    pass\n\ndef work():\n    pass\n\ndef other():\n    pass\n"
	got := Extract(code, LangPython, 30)
	if !reflect.DeepEqual(got.Functions, []string{"work", "other"}) {
		t.Fatalf("functions = %v", got.Functions)
	}
	seen := map[string]int{}
	for _, name := range got.Functions {
		seen[name]++
		if seen[name] > 1 {
			t.Fatalf("duplicate name %q", name)
		}
	}
}

func TestExtractTruncationAfterDedupe(t *testing.T) {
	var b strings.Builder
	// 40 distinct names, each declared twice: dedupe first, then cap at 30.
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "def fn_%02d():\n    pass\n", i)
		fmt.Fprintf(&b, "def fn_%02d():\n    pass\n", i)
	}
	got := Extract(b.String(), LangPython, 30)
	if len(got.Functions) != 30 {
		t.Fatalf("expected 30 functions, got %d", len(got.Functions))
	}
	if got.Functions[0] != "fn_00" || got.Functions[29] != "fn_29" {
		t.Fatalf("truncation reordered output: %v", got.Functions)
	}
}

func TestExtractIdempotent(t *testing.T) {
	code := "class Foo:\n    def bar(self):\n        x = 1\n"
	first := Extract(code, LangPython, 30)
	second := Extract(code, LangPython, 30)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extract not idempotent: %v vs %v", first, second)
	}
}

func TestExtractFiltersKeywordsAndShortNames(t *testing.T) {
	code := "if = 1\nx = 2\nresult = 3\nTrue = 4\n"
	got := Extract(code, LangPython, 30)
	if !reflect.DeepEqual(got.Variables, []string{"result"}) {
		t.Fatalf("variables = %v", got.Variables)
	}
}

func TestExtractNoRulesLanguages(t *testing.T) {
	code := "public class Widget { public void Render() {} }\n"
	for _, lang := range []Language{LangCSharp, LangScala, LangUnknown} {
		got := Extract(code, lang, 30)
		if got.Functions == nil || got.Classes == nil || got.Variables == nil {
			t.Fatalf("%s: element lists must be non-nil", lang)
		}
		if len(got.Functions)+len(got.Classes)+len(got.Variables) != 0 {
			t.Fatalf("%s: expected empty elements, got %+v", lang, got)
		}
	}
}

func TestExtractRust(t *testing.T) {
	code := "fn compute<T>(input: T) -> T {\n    let mut total = 0;\n    input\n}\n"
	got := Extract(code, LangRust, 30)
	if !reflect.DeepEqual(got.Functions, []string{"compute"}) {
		t.Fatalf("functions = %v", got.Functions)
	}
	if !reflect.DeepEqual(got.Variables, []string{"total"}) {
		t.Fatalf("variables = %v", got.Variables)
	}
	if len(got.Classes) != 0 {
		t.Fatalf("rust should have empty classes, got %v", got.Classes)
	}
}

func TestExtractRuby(t *testing.T) {
	code := "class Parser\n  def parse!\n    @tokens = []\n  end\nend\n"
	got := Extract(code, LangRuby, 30)
	if !reflect.DeepEqual(got.Functions, []string{"parse!"}) {
		t.Fatalf("functions = %v", got.Functions)
	}
	if !reflect.DeepEqual(got.Classes, []string{"Parser"}) {
		t.Fatalf("classes = %v", got.Classes)
	}
}

func TestCleanIdentifier(t *testing.T) {
	cases := map[string]string{
		"  handler ": "handler",
		"While":      "", // control flow, case-insensitive
		"HashMap":    "",
		"x":          "",
		"self":       "",
		"1abc":       "",
		"_private":   "_private",
		"":           "",
	}
	for in, want := range cases {
		if got := cleanIdentifier(in); got != want {
			t.Fatalf("cleanIdentifier(%q) = %q, want %q", in, got, want)
		}
	}
}
