package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/s0up4200/fotoctl/fotolia"
)

// parseKeyValues turns key=value arguments into call parameters. A key given
// more than once becomes a list, in argument order.
func parseKeyValues(args []string) (fotolia.Params, error) {
	var params fotolia.Params
	index := make(map[string]int)

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}

		i, seen := index[key]
		if !seen {
			index[key] = len(params)
			params = append(params, fotolia.Param{Key: key, Value: value})
			continue
		}

		switch prev := params[i].Value.(type) {
		case string:
			params[i].Value = []string{prev, value}
		case []string:
			params[i].Value = append(prev, value)
		}
	}

	return params, nil
}

// parseIDs parses media ids given as arguments.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid media id: %s", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
