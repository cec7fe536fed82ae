package rustc

import (
	"crypto/sha1" // #nosec G505 -- content addressing, not security
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"

	terminal "github.com/buildkite/terminal-to-html/v3"
)

// abortPattern starts the compiler's closing summary, which is noise on a
// slide.
var abortPattern = regexp.MustCompile(`\n\n.*aborting due to`)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// sourceHash identifies an executed source. A non-empty salt changes every
// hash, which invalidates the whole cache.
func sourceHash(salt, source string) string {
	h := sha1.New() // #nosec G401 -- content addressing, not security
	if salt != "" {
		h.Write([]byte(salt))
		h.Write([]byte{0})
	}
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}

func isHash(s string) bool {
	return hashPattern.MatchString(s)
}

// formatOutput trims cargo output for display: the abort summary is cut,
// project paths are made relative to src/bin, and ANSI colors become HTML.
func formatOutput(raw []byte, projectDir string) string {
	out := strings.TrimSpace(string(raw))
	if out == "" {
		return ""
	}
	if loc := abortPattern.FindStringIndex(out); loc != nil {
		out = out[:loc[0]]
	}

	sep := string(filepath.Separator)
	bin := filepath.Join(projectDir, srcDir, binDir) + sep
	out = strings.ReplaceAll(out, bin, "")
	out = strings.ReplaceAll(out, projectDir+sep, "")
	out = strings.ReplaceAll(out, srcDir+"/"+binDir+"/", "")
	if sep != "/" {
		out = strings.ReplaceAll(out, srcDir+sep+binDir+sep, "")
	}

	return terminal.Render([]byte(out))
}
