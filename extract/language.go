package extract

import "strings"

// Language identifies one supported source language. The set is closed:
// every Language has an entry in ruleSets, even when the entry is empty.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangCPP        Language = "cpp"
	LangC          Language = "c"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangPHP        Language = "php"
	LangRuby       Language = "ruby"
	LangSwift      Language = "swift"
	LangKotlin     Language = "kotlin"
	LangCSharp     Language = "csharp"
	LangScala      Language = "scala"
	LangUnknown    Language = "unknown"
)

var extToLanguage = map[string]Language{
	".py":    LangPython,
	".js":    LangJavaScript,
	".jsx":   LangJavaScript,
	".ts":    LangJavaScript,
	".tsx":   LangJavaScript,
	".java":  LangJava,
	".cpp":   LangCPP,
	".cc":    LangCPP,
	".cxx":   LangCPP,
	".hpp":   LangCPP,
	".h":     LangCPP,
	".c":     LangC,
	".go":    LangGo,
	".rs":    LangRust,
	".php":   LangPHP,
	".rb":    LangRuby,
	".swift": LangSwift,
	".kt":    LangKotlin,
	".kts":   LangKotlin,
	".cs":    LangCSharp,
	".scala": LangScala,
}

// LanguageForExtension maps a file extension (with leading dot) to its
// language. Unmapped extensions yield LangUnknown.
func LanguageForExtension(ext string) Language {
	if lang, ok := extToLanguage[strings.ToLower(ext)]; ok {
		return lang
	}
	return LangUnknown
}

// Supported reports whether the extension maps to a known language.
func Supported(ext string) bool {
	_, ok := extToLanguage[strings.ToLower(ext)]
	return ok
}
