// Package flagx holds small helpers for sharing os.Args between several
// independent flag sets (config file lookup and server flags).
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags named in allowed together with their
// values. Both "-f value" and "-f=value" forms are understood; a flag is
// matched by name regardless of whether it was written with one dash or two.
// A separate value may be a negative number ("-q -1"). The result is never
// nil.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[flagName(f)] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := names[flagName(name)]; !ok {
			continue
		}

		out = append(out, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !isFlag(args[i+1]) {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// isFlag reports whether arg is a flag rather than a value. "-1" and "-.5"
// are values.
func isFlag(arg string) bool {
	name := flagName(arg)
	if name == arg || name == "" {
		return false
	}
	c := name[0]
	return !(c >= '0' && c <= '9') && c != '.'
}

// ConfigFile returns the path given with -c or -config, or an empty string
// when neither is present. When both are given the last one wins.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
