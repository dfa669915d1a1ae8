// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// userHomeDir is swappable in tests; os.UserHomeDir does not reliably honor
// the HOME environment variable on every platform.
var userHomeDir = os.UserHomeDir

// Duration is a time span resolvable from an environment variable.
//
// Two textual forms are accepted: a bare number ("30", "1.5") is read as a
// count of seconds, anything else must use Go duration syntax ("250ms",
// "2h45m").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))

	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		*d = Duration(time.Duration(seconds * float64(time.Second)))
		return nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%q is not a number of seconds or a duration: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// Std returns the span as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// Path is a filesystem path resolvable from an environment variable.
// A leading "~" is expanded to the process user's home directory.
type Path string

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	expanded, err := expandHome(string(text))
	if err != nil {
		return err
	}

	*p = Path(expanded)
	return nil
}

func (p Path) String() string { return string(p) }

// expandHome replaces a leading "~" path element with the user's home
// directory. Paths without the marker pass through untouched.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("error expanding %q: %w", path, err)
	}

	if path == "~" {
		return home, nil
	}

	return filepath.Join(home, path[2:]), nil
}
