package event

import (
	"strconv"
	"strings"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/meta"
)

// CheckAssumptions reports the first reason the DATA segment described by store
// cannot be decoded. It reads store only and can be called any number of times.
//
// Every failure wraps errs.ErrUnsupportedFormat:
//   - $NEXTDATA is nonzero (more than one dataset in the file)
//   - $MODE is absent or not L
//   - $P0B is present (zero-based channel numbering)
//   - $BYTEORD is not 1,2,3,4 / 4,3,2,1 / 1,2 / 2,1
//   - a $PnE declares logarithmic amplification
func CheckAssumptions(store *meta.Store) error {
	if n := store.NextData(); n != 0 {
		return errs.Unsupported("file holds multiple datasets ($NEXTDATA=%d)", n)
	}

	if mode, ok := store.Get(meta.KeyMode); !ok {
		return errs.Unsupported("$MODE is missing, only list mode (L) is supported")
	} else if format.ParseMode(mode) != format.ModeList {
		return errs.Unsupported("$MODE=%q is not supported, only list mode (L) is supported", mode)
	}

	if store.Has(meta.ChannelKey(0, meta.SuffixBits)) {
		return errs.Unsupported("zero-based channel numbering ($P0B) is not supported")
	}

	if store.ByteOrder() == format.ByteOrderUnknown {
		return errs.Unsupported("$BYTEORD=%q is not supported", store.ByteOrd())
	}

	for _, ch := range store.Channels() {
		if logDecades(ch.Amplification) {
			return errs.Unsupported("logarithmic amplification $P%dE=%q is not supported", ch.Index, ch.Amplification)
		}
	}

	return nil
}

// logDecades reports whether a $PnE value "f1,f2" has a nonzero decade count f1.
// Values that do not parse are treated as linear.
func logDecades(amp string) bool {
	if amp == "" {
		return false
	}

	decades, _, _ := strings.Cut(amp, ",")
	v, err := strconv.ParseFloat(strings.TrimSpace(decades), 64)

	return err == nil && v != 0
}
