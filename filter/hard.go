package filter

import (
	"path"
	"strings"

	"repolens/utils"

	"github.com/h2non/filetype"
)

// Directories whose contents are never user code, regardless of ignore-file
// contents: dependency trees, build output, VCS internals, tool caches.
var denylistSegments = map[string]struct{}{
	".git":             {},
	".svn":             {},
	".hg":              {},
	"node_modules":     {},
	"bower_components": {},
	"vendor":           {},
	"third_party":      {},
	"dist":             {},
	"build":            {},
	"target":           {},
	"out":              {},
	"bin":              {},
	"obj":              {},
	"__pycache__":      {},
	".pytest_cache":    {},
	".mypy_cache":      {},
	"venv":             {},
	".venv":            {},
	".tox":             {},
	".idea":            {},
	".vscode":          {},
	"coverage":         {},
	".next":            {},
	".nuxt":            {},
}

var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".webp": {}, ".pdf": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {},
	".xz": {}, ".7z": {}, ".rar": {}, ".exe": {}, ".dll": {}, ".so": {},
	".dylib": {}, ".bin": {}, ".dat": {}, ".db": {}, ".sqlite": {},
	".sqlite3": {}, ".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".otf": {}, ".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".webm": {},
	".jar": {}, ".war": {}, ".class": {}, ".pyc": {}, ".pyo": {}, ".o": {},
	".a": {}, ".lib": {}, ".wasm": {}, ".dmg": {}, ".iso": {},
}

func extensionOf(p string) string {
	return strings.ToLower(path.Ext(p))
}

// hardFilter rejects paths inside denylisted directories and binary files.
// It runs before everything else; ignore rules cannot resurrect these.
func hardFilter(candidate string, probe []byte) (string, bool) {
	for _, segment := range strings.Split(path.Dir(candidate), "/") {
		if _, bad := denylistSegments[segment]; bad {
			return "denylisted directory: " + segment, true
		}
	}
	if _, bad := binaryExtensions[extensionOf(candidate)]; bad {
		return "binary extension", true
	}
	if len(probe) > 0 && isBinaryProbe(probe) {
		return "binary content", true
	}
	return "", false
}

// isBinaryProbe combines a magic-number check with the text heuristic: any
// recognized file signature is a binary format, and content failing the
// UTF-8/control-byte test is treated as binary too.
func isBinaryProbe(probe []byte) bool {
	if kind, err := filetype.Match(probe); err == nil && kind != filetype.Unknown {
		return true
	}
	return !utils.LooksLikeText(probe)
}
