package utils

import (
	"fmt"
	"strings"
)

// ExpandCommand substitutes {name} placeholders in every argument of a
// configured command line. Unknown placeholders are left as-is.
func ExpandCommand(args []string, vars map[string]string) ([]string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, fmt.Errorf("empty command")
	}
	out := make([]string, len(args))
	for i, arg := range args {
		for name, value := range vars {
			arg = strings.ReplaceAll(arg, "{"+name+"}", value)
		}
		out[i] = arg
	}
	return out, nil
}
