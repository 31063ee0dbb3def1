// ABOUTME: Runtime format selector
// ABOUTME: Enumerates supported sample representations for configuration
package audio

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects a sample representation at runtime (config, CLI flags)
type Kind int

const (
	KindS16 Kind = iota
	KindF32
	KindS32
	KindS24Packed
	KindS24
)

// ErrUnknownKind is returned when a format name is not recognized
var ErrUnknownKind = errors.New("unknown sample format")

var kindNames = map[Kind]string{
	KindF32:       "f32",
	KindS16:       "s16",
	KindS32:       "s32",
	KindS24Packed: "s24_3",
	KindS24:       "s24_4",
}

// Kinds lists every supported kind
func Kinds() []Kind {
	return []Kind{KindF32, KindS16, KindS32, KindS24Packed, KindS24}
}

// ParseKind parses a format name such as "s16" or "s24_3"
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (supported: f32, s16, s32, s24_3, s24_4)", ErrUnknownKind, name)
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Size returns the number of serialized bytes per sample
func (k Kind) Size() int {
	switch k {
	case KindS16:
		return 2
	case KindS24Packed:
		return 3
	case KindF32, KindS32, KindS24:
		return 4
	}
	return 0
}

// BitDepth returns the number of significant bits per sample
func (k Kind) BitDepth() int {
	switch k {
	case KindS16:
		return 16
	case KindS24, KindS24Packed:
		return 24
	case KindF32, KindS32:
		return 32
	}
	return 0
}

// Float reports whether the kind stores floating point samples
func (k Kind) Float() bool {
	return k == KindF32
}

// Set implements flag.Value
func (k *Kind) Set(name string) error {
	v, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = v
	return nil
}
