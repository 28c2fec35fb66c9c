package meta

import (
	"strconv"
	"strings"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/internal/hash"
)

// Channel describes one parameter measured for every event.
type Channel struct {
	// Index is the keyword number n of $PnN.
	Index int
	// Name is the short name from $PnN. Names are not required to be unique.
	Name string
	// Label is the long name from $PnS, empty when absent.
	Label string
	// Bits is the bit width from $PnB.
	Bits int
	// Range is $PnR as a number, 0 when absent or not numeric.
	Range float64
	// Amplification is the raw $PnE value, empty when absent.
	Amplification string
	// Offset is the byte offset of the channel within one event record.
	Offset int
}

// Store is the immutable keyword store of one TEXT segment.
type Store struct {
	keys   []string
	values map[string]string

	par      int
	tot      int
	nextData int64
	base     int
	channels []Channel
	byID     map[uint64]int
}

// Get returns the raw value of key. Lookup is case-insensitive.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[NormalizeKey(key)]
	return v, ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[NormalizeKey(key)]
	return ok
}

// Int returns the value of key parsed as a decimal integer.
func (s *Store) Int(key string) (int64, error) {
	v, ok := s.Get(key)
	if !ok {
		return 0, errs.MalformedText("required keyword %s is missing", NormalizeKey(key))
	}

	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, errs.MalformedText("keyword %s=%q is not an integer", NormalizeKey(key), v)
	}

	return n, nil
}

// Keys returns the normalized keywords in first-encounter order.
func (s *Store) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of distinct keywords.
func (s *Store) Len() int {
	return len(s.keys)
}

// Par returns $PAR, the number of channels.
func (s *Store) Par() int { return s.par }

// Tot returns $TOT, the number of events.
func (s *Store) Tot() int { return s.tot }

// NextData returns $NEXTDATA, the offset of the next dataset.
func (s *Store) NextData() int64 { return s.nextData }

// ByteOrd returns the raw $BYTEORD value.
func (s *Store) ByteOrd() string {
	v, _ := s.Get(KeyByteOrd)
	return v
}

// ByteOrder returns $BYTEORD resolved to a supported literal.
func (s *Store) ByteOrder() format.ByteOrder {
	return format.ParseByteOrder(s.ByteOrd())
}

// DataType returns $DATATYPE.
func (s *Store) DataType() format.DataType {
	v, _ := s.Get(KeyDataType)
	return format.ParseDataType(v)
}

// Mode returns $MODE.
func (s *Store) Mode() format.Mode {
	v, _ := s.Get(KeyMode)
	return format.ParseMode(v)
}

// ChannelBase returns the number of the first channel, 0 when $P0B exists and 1 otherwise.
func (s *Store) ChannelBase() int { return s.base }

// Channels returns the channel descriptors in index order.
func (s *Store) Channels() []Channel {
	return append([]Channel(nil), s.channels...)
}

// ChannelNames returns the $PnN names in index order, duplicates included.
func (s *Store) ChannelNames() []string {
	names := make([]string, len(s.channels))
	for i, ch := range s.channels {
		names[i] = ch.Name
	}

	return names
}

// ChannelByName returns the first channel named name.
func (s *Store) ChannelByName(name string) (Channel, bool) {
	if i, ok := s.byID[hash.ChannelID(name)]; ok && s.channels[i].Name == name {
		return s.channels[i], true
	}

	// Hash collision between distinct names: fall back to a scan.
	for _, ch := range s.channels {
		if ch.Name == name {
			return ch, true
		}
	}

	return Channel{}, false
}
