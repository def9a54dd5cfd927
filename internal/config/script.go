package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/sic/internal/convert"
)

// ParseScript parses an operations script into an ordered operation list.
//
// Statements are separated by ';' and consist of a command followed by its
// arguments:
//
//	resize <width> <height>
//	blur <sigma>
//	fliph
//	flipv
//
// Empty statements are ignored, so a trailing ';' is accepted.
func ParseScript(script string) ([]convert.Operation, error) {
	var ops []convert.Operation

	for i, stmt := range strings.Split(script, ";") {
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}

		op, err := parseStatement(fields)
		if err != nil {
			return nil, fmt.Errorf("statement %d %q: %w", i+1, strings.TrimSpace(stmt), err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseStatement(fields []string) (convert.Operation, error) {
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "resize":
		if len(args) != 2 {
			return nil, fmt.Errorf("resize takes 2 arguments, got %d", len(args))
		}
		w, err := parsePositive(args[0])
		if err != nil {
			return nil, err
		}
		h, err := parsePositive(args[1])
		if err != nil {
			return nil, err
		}
		return convert.Resize{Width: w, Height: h}, nil
	case "blur":
		if len(args) != 1 {
			return nil, fmt.Errorf("blur takes 1 argument, got %d", len(args))
		}
		sigma, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid blur sigma %q", args[0])
		}
		return convert.Blur{Sigma: uint(sigma)}, nil
	case "fliph", "flip_horizontal":
		if len(args) != 0 {
			return nil, fmt.Errorf("%s takes no arguments", cmd)
		}
		return convert.FlipHorizontal{}, nil
	case "flipv", "flip_vertical":
		if len(args) != 0 {
			return nil, fmt.Errorf("%s takes no arguments", cmd)
		}
		return convert.FlipVertical{}, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", cmd)
	}
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", s)
	}
	return n, nil
}
