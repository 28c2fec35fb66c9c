package errs

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructorsWrapKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"Unsupported", Unsupported("$MODE %q", "C"), ErrUnsupportedFormat},
		{"MalformedHeader", MalformedHeader("bad field"), ErrMalformedHeader},
		{"MalformedText", MalformedText("missing %s", "$PAR"), ErrMalformedText},
		{"MalformedData", MalformedData("$P1B=%d", 12), ErrMalformedData},
		{"Truncated", Truncated("need %d bytes", 10), ErrTruncatedData},
		{"NotImplemented", NotImplemented("compensation"), ErrNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.kind)
			require.NotEqual(t, tt.kind.Error(), tt.err.Error(), "cause should be appended")
		})
	}
}

func TestUnsupportedMessage(t *testing.T) {
	err := Unsupported("$MODE %q", "C")
	require.Equal(t, `unsupported FCS format: $MODE "C"`, err.Error())
}

func TestIO(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		require.NoError(t, IO("read", nil))
	})

	t.Run("wraps both", func(t *testing.T) {
		err := IO("read DATA", io.ErrUnexpectedEOF)
		require.ErrorIs(t, err, ErrIO)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.False(t, errors.Is(err, ErrTruncatedData))
	})
}
