package version

import (
	"fmt"
	"strconv"
	"strings"
)

type semver struct {
	core [3]int
	pre  string
}

func parse(s string) (semver, error) {
	var v semver

	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, _, _ = strings.Cut(s, "+")
	s, v.pre, _ = strings.Cut(s, "-")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return v, fmt.Errorf("malformed version %q", s)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return v, fmt.Errorf("malformed version %q", s)
		}
		v.core[i] = n
	}

	return v, nil
}

// Compare orders two semantic versions: 1 if a is newer, -1 if b is newer, 0 if equal.
// A pre-release is older than its release. Build metadata is ignored.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av.core {
		switch {
		case av.core[i] > bv.core[i]:
			return 1, nil
		case av.core[i] < bv.core[i]:
			return -1, nil
		}
	}

	switch {
	case av.pre == bv.pre:
		return 0, nil
	case av.pre == "":
		return 1, nil
	case bv.pre == "":
		return -1, nil
	default:
		return strings.Compare(av.pre, bv.pre), nil
	}
}
