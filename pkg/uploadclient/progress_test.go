package uploadclient

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar_NilSafe(t *testing.T) {
	bar := newProgressBar(nil, "x", 10)
	require.Nil(t, bar)

	bar.AddBytes(5)
	bar.Finish()
	bar.Fail(errors.New("boom"))
}

func TestProgressBar_Finish(t *testing.T) {
	var out bytes.Buffer
	bar := newProgressBar(&out, "Uploading a.txt", 2048)

	n, err := bar.Write(make([]byte, 1024))
	require.NoError(t, err)
	assert.Equal(t, 1024, n)
	bar.AddBytes(1024)
	bar.Finish()
	bar.Finish()

	s := out.String()
	assert.Contains(t, s, "Uploading a.txt")
	assert.Contains(t, s, "100%")
	assert.Contains(t, s, "2.0 kB/2.0 kB")
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("\n")))
}

func TestProgressBar_Fail(t *testing.T) {
	var out bytes.Buffer
	bar := newProgressBar(&out, "up", 0)

	bar.AddBytes(3)
	bar.Fail(errors.New("connection reset"))
	bar.AddBytes(3)

	s := out.String()
	assert.Contains(t, s, "transferred")
	assert.Contains(t, s, "✗ connection reset")
}
