package event

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcs/internal/fcstest"
	"github.com/arloliu/fcs/meta"
	"github.com/arloliu/fcs/section"
)

type fixture struct {
	image  []byte
	header section.Header
	store  *meta.Store
}

func load(t *testing.T, b *fcstest.Builder) fixture {
	t.Helper()

	img := b.Bytes()
	r := bytes.NewReader(img)

	h, _, err := section.LocateSegments(r, int64(len(img)))
	require.NoError(t, err)

	raw, err := section.ReadText(r, int64(len(img)), h)
	require.NoError(t, err)

	pairs, _, err := section.SplitText(raw, false)
	require.NoError(t, err)

	store, err := meta.Parse(pairs)
	require.NoError(t, err)

	return fixture{image: img, header: h, store: store}
}

func (f fixture) decoder(t *testing.T) *Decoder {
	t.Helper()

	dec, err := NewDecoder(bytes.NewReader(f.image), int64(len(f.image)), f.header, f.store)
	require.NoError(t, err)

	return dec
}
