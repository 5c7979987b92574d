package task

import (
	"fmt"
	"regexp"
	"strings"
)

// codePattern matches the composite reference code NNN/CCC/DDMMYY:
// a numeric sequence of at least three digits, an alphanumeric code,
// and a six digit day-month-year date.
var codePattern = regexp.MustCompile(`^[0-9]{3,}/[A-Za-z0-9]+/[0-9]{6}$`)

// Code is the parsed form of a task's txt reference.
type Code struct {
	Number string
	Ref    string
	Day    string
}

// ParseCode splits and validates a composite reference code.
func ParseCode(raw string) (Code, error) {
	if !codePattern.MatchString(raw) {
		return Code{}, fmt.Errorf("task: malformed reference code %q", raw)
	}
	parts := strings.SplitN(raw, "/", 3)
	return Code{Number: parts[0], Ref: parts[1], Day: parts[2]}, nil
}

// Compose rebuilds the composite value from its parts. The number is
// left-zero-padded to at least three digits, matching what the richer
// editing form produces at save time.
func (c Code) Compose() string {
	number := c.Number
	for len(number) < 3 {
		number = "0" + number
	}
	return fmt.Sprintf("%s/%s/%s", number, c.Ref, c.Day)
}

func (c Code) String() string {
	return c.Compose()
}
