// Command fixkeywords cleans a gperf-generated keywords_hash.c in place. It
// strips #ifdef __GNUC__ blocks (tracking nesting so inner conditionals do
// not unbalance the outer one), removes __inline lines, and drops a bare
// `inline` line directly after #else or #ifdef __cplusplus. Older MSVC
// toolchains choke on those directives.
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <keywords_hash.c>\n", os.Args[0])
		os.Exit(1)
	}
	if err := fixKeywordsHash(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "fixkeywords: %v\n", err)
		os.Exit(1)
	}
}

func fixKeywordsHash(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	fixed := stripDirectives(string(raw))
	return os.WriteFile(path, []byte(fixed), 0o644)
}

func stripDirectives(src string) string {
	lines := strings.SplitAfter(src, "\n")
	result := make([]string, 0, len(lines))
	skipDepth := 0

	for i, line := range lines {
		switch {
		case strings.Contains(line, "#ifdef __GNUC__"):
			skipDepth = 1

		case skipDepth > 0:
			if strings.Contains(line, "#ifdef") ||
				(strings.Contains(line, "#if") && !strings.HasPrefix(strings.TrimSpace(line), "#ifndef")) {
				skipDepth++
			} else if strings.Contains(line, "#endif") {
				skipDepth--
				// skipDepth reaching zero drops the closing #endif too
			}

		case strings.Contains(line, "__inline"):
			// dropped

		case strings.TrimSpace(line) == "inline" && i > 0 &&
			(strings.Contains(lines[i-1], "#else") || strings.Contains(lines[i-1], "#ifdef __cplusplus")):
			// dropped

		default:
			result = append(result, line)
		}
	}
	return strings.Join(result, "")
}
