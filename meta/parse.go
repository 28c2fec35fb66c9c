package meta

import (
	"strconv"
	"strings"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/internal/hash"
	"github.com/arloliu/fcs/section"
)

// Parse builds a Store from TEXT segment pairs.
//
// Keys are normalized with NormalizeKey; a repeated key keeps its first position and
// takes the last value. Channels are numbered from 0 when $P0B exists, otherwise from 1.
//
// Parameters:
//   - pairs: Keyword/value pairs as returned by section.SplitText
//
// Returns:
//   - *Store: The populated store
//   - error: errs.ErrMalformedText when $PAR, $TOT, $NEXTDATA, a $PnB or a $PnN is
//     missing, when an integer keyword is not numeric, or when $PAR declares more
//     channels than the pairs could describe
func Parse(pairs []section.KeyValue) (*Store, error) {
	s := &Store{
		keys:   make([]string, 0, len(pairs)),
		values: make(map[string]string, len(pairs)),
	}

	for _, kv := range pairs {
		key := NormalizeKey(kv.Key)
		if _, seen := s.values[key]; !seen {
			s.keys = append(s.keys, key)
		}
		s.values[key] = kv.Value
	}

	par, err := s.count(KeyPar)
	if err != nil {
		return nil, err
	}
	tot, err := s.count(KeyTot)
	if err != nil {
		return nil, err
	}
	nextData, err := s.Int(KeyNextData)
	if err != nil {
		return nil, err
	}
	// Every channel needs at least $PnB and $PnN.
	if par > len(pairs)/2 {
		return nil, errs.MalformedText("keyword %s=%d exceeds the %d keyword pairs present", KeyPar, par, len(pairs))
	}
	s.par, s.tot, s.nextData = par, tot, nextData

	s.base = 1
	if s.Has(ChannelKey(0, SuffixBits)) {
		s.base = 0
	}

	if err := s.parseChannels(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) count(key string) (int, error) {
	n, err := s.Int(key)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errs.MalformedText("keyword %s=%d must not be negative", key, n)
	}

	return int(n), nil
}

func (s *Store) parseChannels() error {
	s.channels = make([]Channel, 0, s.par)
	s.byID = make(map[uint64]int, s.par)

	offset := 0
	for n := s.base; n < s.base+s.par; n++ {
		nameKey := ChannelKey(n, SuffixName)
		name, ok := s.Get(nameKey)
		if !ok {
			return errs.MalformedText("required keyword %s is missing", nameKey)
		}

		bits, err := s.Int(ChannelKey(n, SuffixBits))
		if err != nil {
			return err
		}
		if bits < 0 {
			return errs.MalformedText("keyword %s=%d must not be negative", ChannelKey(n, SuffixBits), bits)
		}

		ch := Channel{
			Index:  n,
			Name:   name,
			Bits:   int(bits),
			Offset: offset,
		}
		ch.Label, _ = s.Get(ChannelKey(n, SuffixLabel))
		ch.Amplification, _ = s.Get(ChannelKey(n, SuffixAmp))
		if r, ok := s.Get(ChannelKey(n, SuffixRange)); ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(r), 64); err == nil {
				ch.Range = v
			}
		}

		id := hash.ChannelID(name)
		if _, dup := s.byID[id]; !dup {
			s.byID[id] = len(s.channels)
		}
		s.channels = append(s.channels, ch)
		offset += ch.Bits / 8
	}

	return nil
}
