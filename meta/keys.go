package meta

import (
	"strconv"
	"strings"
)

// Well-known keywords.
const (
	KeyPar      = "$PAR"
	KeyTot      = "$TOT"
	KeyNextData = "$NEXTDATA"
	KeyByteOrd  = "$BYTEORD"
	KeyDataType = "$DATATYPE"
	KeyMode     = "$MODE"
)

// Per-channel keyword suffixes, as in $P<n><suffix>.
const (
	SuffixBits  = 'B'
	SuffixName  = 'N'
	SuffixLabel = 'S'
	SuffixRange = 'R'
	SuffixAmp   = 'E'
)

// ChannelKey returns the per-channel keyword for index n, e.g. ChannelKey(3, SuffixBits) is "$P3B".
func ChannelKey(n int, suffix byte) string {
	return "$P" + strconv.Itoa(n) + string(suffix)
}

// NormalizeKey returns the canonical form of a keyword: trimmed and upper-cased.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
