// SPDX-License-Identifier: Apache-2.0 OR MIT

package dummy

// NewDeviceOption defines the interface required to provide an option to New.
type NewDeviceOption interface {
	applyDeviceOption(*builder)
}

// BarAssignment is an option that adds the given bar to the Device under id.
type BarAssignment struct {
	id  int
	bar Bar
}

// WithBar returns an option that assigns b to BAR id.
func WithBar(id int, b *Bar) BarAssignment {
	return BarAssignment{id: id, bar: *b}
}

func (o BarAssignment) applyDeviceOption(b *builder) {
	b.bars[o.id] = o.bar
}

// NewBarOption defines the interface required to provide an option to NewBar.
type NewBarOption interface {
	applyBarOption(*Bar)
}

// InitialWord is an option that preloads one word of a Bar.
type InitialWord struct {
	offset uint64
	value  int32
}

// WithInitialWord returns an option that preloads the word at offset with value.
func WithInitialWord(offset uint64, value int32) InitialWord {
	return InitialWord{offset: offset, value: value}
}

func (o InitialWord) applyBarOption(b *Bar) {
	if b.Initial == nil {
		b.Initial = make(map[uint64]int32)
	}
	b.Initial[o.offset] = o.value
}
