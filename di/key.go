package di

import (
	"fmt"
	"reflect"
)

// Label distinguishes several registrations of the same type. NoLabel is
// the default slot.
type Label string

// NoLabel selects the unlabeled registration of a type.
const NoLabel Label = ""

// Key identifies a registration slot: the service type plus a label.
type Key struct {
	Type  reflect.Type
	Label Label
}

// KeyOf derives the key for type T. At most one label is used.
func KeyOf[T any](label ...Label) Key {
	return Key{Type: reflect.TypeFor[T](), Label: firstLabel(label)}
}

// TypeName returns the printable service type.
func (k Key) TypeName() string {
	if k.Type == nil {
		return "<nil>"
	}
	return k.Type.String()
}

// String renders the key as "type" or "type@label".
func (k Key) String() string {
	if k.Label == NoLabel {
		return k.TypeName()
	}
	return fmt.Sprintf("%s@%s", k.TypeName(), k.Label)
}

func firstLabel(label []Label) Label {
	if len(label) == 0 {
		return NoLabel
	}
	return label[0]
}
