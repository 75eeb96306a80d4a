package document

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the language id of files no lexer recognizes.
const PlainText = "plaintext"

// languageIDs maps extensions to editor language ids where they differ from
// the lexer aliases.
var languageIDs = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".jsx":   "javascriptreact",
	".ts":    "typescript",
	".tsx":   "typescriptreact",
	".rs":    "rust",
	".java":  "java",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".sh":    "shellscript",
	".bash":  "shellscript",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".md":    "markdown",
	".lua":   "lua",
	".txt":   PlainText,
}

// LanguageFor returns the language id for a file name. Unknown extensions
// fall back to the first alias of the matching syntax lexer.
func LanguageFor(path string) string {
	if id, ok := languageIDs[strings.ToLower(filepath.Ext(path))]; ok {
		return id
	}
	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		if aliases := lexer.Config().Aliases; len(aliases) > 0 {
			return strings.ToLower(aliases[0])
		}
		return strings.ToLower(lexer.Config().Name)
	}
	return PlainText
}
