package domain

import (
	"fmt"
	"strings"
)

// NodeTransformType enumerates the transforms that can be applied to a node.
type NodeTransformType int

const (
	Translate NodeTransformType = iota
	Rotate
	Scale
	Matrix
)

var transformNames = [...]string{
	Translate: "translate",
	Rotate:    "rotate",
	Scale:     "scale",
	Matrix:    "matrix",
}

func (t NodeTransformType) String() string {
	if t < 0 || int(t) >= len(transformNames) {
		return fmt.Sprintf("NodeTransformType(%d)", int(t))
	}
	return transformNames[t]
}

// Valid reports whether t is one of the declared transform types.
func (t NodeTransformType) Valid() bool {
	return t >= Translate && t <= Matrix
}

// ParseNodeTransformType converts a case-insensitive name into a NodeTransformType.
func ParseNodeTransformType(s string) (NodeTransformType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range transformNames {
		if n == name {
			return NodeTransformType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown node transform type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t NodeTransformType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid node transform type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *NodeTransformType) UnmarshalText(text []byte) error {
	v, err := ParseNodeTransformType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
