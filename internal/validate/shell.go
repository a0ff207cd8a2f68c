package validate

import (
	"regexp"
	"strings"
)

// MaxScriptLength bounds shell script bodies.
const MaxScriptLength = 64 * 1024

// shellDanger are metacharacters and constructs that enable command
// injection when a value reaches a shell.
var shellDanger = []string{
	"`",
	"$(",
	"${",
	";",
	"&&",
	"||",
	"|",
	">",
	"<",
	"eval ",
	"exec ",
}

// lineBreaks terminate a command in a shell.
var lineBreaks = []string{"\n", "\r"}

// encodedShellDanger are percent-encoded forms of shellDanger and line breaks.
var encodedShellDanger = []string{
	"%60",
	"%24%28",
	"%24%7b",
	"%3b",
	"%26%26",
	"%7c",
	"%3e",
	"%3c",
	"%0a",
	"%0d",
	"%00",
	"%7e",
}

// scriptDanger are denials that only apply to whole script bodies.
var scriptDanger = []string{
	"rm -rf /",
	"rm -rf ~",
	"rm -rf *",
	"curl ",
	"wget ",
	"sudo ",
	"/dev/tcp/",
	"/dev/udp/",
	"base64 -d",
	"base64 --decode",
	"nc -e",
	"mkfifo ",
	"chmod 777",
	":(){",
}

// buildVariableRef matches $(NAME), ${NAME} and their :modifier forms.
// In build settings these are variable expansions, not command substitution.
var buildVariableRef = regexp.MustCompile(`\$\([A-Za-z_][A-Za-z0-9_]*(:[A-Za-z0-9_,=]+)?\)|\$\{[A-Za-z_][A-Za-z0-9_]*(:[A-Za-z0-9_,=]+)?\}`)

// scriptVariableRef matches ${NAME}. In a script body $(...) always runs a
// command, so only the braced form is a plain expansion.
var scriptVariableRef = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}`)

// SanitizeString validates an identifier or name that is not a file path.
// The input is returned unchanged when accepted.
func SanitizeString(raw string) (string, bool) {
	if !withinLimits(raw) {
		return "", false
	}
	if containsShellDanger(raw, false) || expandsHome(raw) {
		return "", false
	}
	return raw, true
}

// EscapeShellToken quotes raw for interpolation into a shell command line.
// Embedded single quotes close the quoted string, emit a double-quoted
// quote and reopen it.
func EscapeShellToken(raw string) string {
	return "'" + strings.ReplaceAll(raw, "'", `'"'"'`) + "'"
}

// ValidateShellScript reports whether a build-phase script body is free of
// suspicious constructs. Line breaks separate statements and are allowed;
// plain ${NAME} expansions are not treated as substitution.
func ValidateShellScript(raw string) bool {
	if raw == "" || len(raw) > MaxScriptLength || strings.ContainsRune(raw, 0) {
		return false
	}
	scan := scriptVariableRef.ReplaceAllString(raw, "")
	if containsShellDanger(scan, true) {
		return false
	}
	lower := strings.ToLower(scan)
	for _, pattern := range scriptDanger {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

func containsShellDanger(s string, allowLineBreaks bool) bool {
	lower := strings.ToLower(s)
	for _, pattern := range shellDanger {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	if !allowLineBreaks {
		for _, pattern := range lineBreaks {
			if strings.Contains(s, pattern) {
				return true
			}
		}
	}
	for _, pattern := range encodedShellDanger {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func expandsHome(s string) bool {
	return strings.HasPrefix(s, "~") || strings.Contains(s, " ~") || strings.Contains(s, "=~") || strings.Contains(s, "~/")
}
