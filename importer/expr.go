package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

var errEmptyOperand = errors.New("empty operand")

// evalNumber evaluates a numeric field. The grammar is a chain of operands
// joined by '*' or '/', applied strictly left to right with no precedence and
// no parentheses. An operand is a decimal literal or "pi" in any case, either
// optionally preceded by '-'.
func evalNumber(s string) (float32, error) {
	if s == "" {
		return 0, errEmptyOperand
	}
	acc, rest, err := operand(s)
	if err != nil {
		return 0, err
	}
	for rest != "" {
		op := rest[0]
		var v float32
		v, rest, err = operand(rest[1:])
		if err != nil {
			return 0, err
		}
		switch op {
		case '*':
			acc *= v
		case '/':
			acc /= v
		}
	}
	return acc, nil
}

// operand reads one operand and returns the unread remainder, which is either
// empty or starts with an operator.
func operand(s string) (float32, string, error) {
	end := strings.IndexAny(s, "*/")
	if end < 0 {
		end = len(s)
	}
	lit, rest := s[:end], s[end:]
	if lit == "" {
		return 0, "", errEmptyOperand
	}
	neg := false
	body := lit
	if body[0] == '-' {
		neg, body = true, body[1:]
	}
	var v float32
	if strings.EqualFold(body, "pi") {
		v = math32.Pi
	} else {
		if body == "" || !(body[0] == '.' || body[0] >= '0' && body[0] <= '9') {
			return 0, "", fmt.Errorf("invalid number %q", lit)
		}
		f, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return 0, "", fmt.Errorf("invalid number %q", lit)
		}
		v = float32(f)
	}
	if neg {
		v = -v
	}
	return v, rest, nil
}

// evalInt parses an integer identifier.
func evalInt(s string) (int, error) {
	return strconv.Atoi(s)
}
