package terminal

import (
	"strings"
)

// UnicodeLevel represents the level of Unicode support.
type UnicodeLevel int

const (
	UnicodeNone  UnicodeLevel = iota // ASCII only
	UnicodeBasic                     // half blocks render correctly
	UnicodeFull
)

// Capabilities represents the features the canvas can rely on.
type Capabilities struct {
	Name          string
	UnicodeLevel  UnicodeLevel
	SupportsColor bool
	ColorDepth    int  // 0, 8, 256, or 24-bit
	IsCJK         bool // ambiguous-width runes take two cells
}

// DetectCapabilities inspects the environment through getenv. mode forces
// "ascii" or "unicode" output when set.
func DetectCapabilities(getenv func(string) string, mode string) Capabilities {
	switch mode {
	case "ascii":
		return ForceASCII()
	case "unicode":
		return ForceUnicode()
	}

	term := getenv("TERM")
	caps := Capabilities{
		Name:         term,
		UnicodeLevel: UnicodeBasic,
	}

	switch {
	case getenv("WT_SESSION") != "":
		caps.Name = "windows-terminal"
		caps.UnicodeLevel = UnicodeFull
		caps.SupportsColor = true
		caps.ColorDepth = 24
	case getenv("TERM_PROGRAM") == "iTerm.app":
		caps.Name = "iterm2"
		caps.UnicodeLevel = UnicodeFull
		caps.SupportsColor = true
		caps.ColorDepth = 24
	case strings.HasPrefix(term, "xterm-kitty"):
		caps.Name = "kitty"
		caps.UnicodeLevel = UnicodeFull
		caps.SupportsColor = true
		caps.ColorDepth = 24
	case getenv("TMUX") != "":
		caps.Name = "tmux"
		caps.SupportsColor = true
		caps.ColorDepth = 256
	case term != "" && !strings.Contains(term, "dumb"):
		if strings.Contains(term, "256color") {
			caps.SupportsColor = true
			caps.ColorDepth = 256
		} else if strings.Contains(term, "color") {
			caps.SupportsColor = true
			caps.ColorDepth = 8
		}
		// xterm and variants usually support color
		if strings.HasPrefix(term, "xterm") || strings.HasPrefix(term, "screen") {
			caps.SupportsColor = true
			if caps.ColorDepth == 0 {
				caps.ColorDepth = 256
			}
		}
	}

	if ct := getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		caps.SupportsColor = true
		caps.ColorDepth = 24
	}

	// https://no-color.org/
	if getenv("NO_COLOR") != "" {
		caps.SupportsColor = false
		caps.ColorDepth = 0
	}

	caps.IsCJK = detectCJK(getenv)
	if !detectUTF8(getenv) || caps.Name == "linux" || caps.Name == "dumb" {
		caps.UnicodeLevel = UnicodeNone
	}
	return caps
}

// detectUTF8 checks if the locale supports UTF-8.
func detectUTF8(getenv func(string) string) bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := strings.ToUpper(getenv(env))
		if value == "" {
			continue
		}
		// C.UTF-8, en_US.UTF-8, en_US.utf8@euro and so on
		return strings.Contains(value, "UTF-8") || strings.Contains(value, "UTF8")
	}
	return false
}

// detectCJK checks for a Chinese, Japanese or Korean locale.
func detectCJK(getenv func(string) string) bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := getenv(env)
		if value == "" {
			continue
		}
		prefix := strings.Split(value, "_")[0]
		return prefix == "ja" || prefix == "ko" || prefix == "zh"
	}
	return getenv("EAST_ASIAN_AMBIGUOUS") == "2"
}

// ForceASCII returns capabilities configured for ASCII-only output.
func ForceASCII() Capabilities {
	return Capabilities{Name: "ascii", UnicodeLevel: UnicodeNone}
}

// ForceUnicode returns capabilities configured for full Unicode support.
func ForceUnicode() Capabilities {
	return Capabilities{
		Name:          "unicode",
		UnicodeLevel:  UnicodeFull,
		SupportsColor: true,
		ColorDepth:    24,
	}
}
