package alsa

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivarc/trinkey-indicator/log2"
)

const hwParams96k24 = `access: RW_INTERLEAVED
format: S24_LE
subformat: STD
channels: 2
rate: 96000 (96000/1)
period_size: 1024
buffer_size: 4096
`

const statusRunning = `state: RUNNING
owner_pid   : 1234
trigger_time: 1234.5
`

const statusOpen = `state: OPEN
`

func writeSub(t testing.TB, root, card, pcm, sub, status, hwParams string) string {
	dir := filepath.Join(root, card, pcm, sub)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "status"), []byte(status), 0644))
	if hwParams != "" {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "hw_params"), []byte(hwParams), 0644))
	}
	return dir
}

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		rate, depth int
		code        int
	}{
		{"silence", 0, 0, 0},
		{"44k16", 44100, 16, 9},
		{"48k24", 48000, 24, 18},
		{"96k24", 96000, 24, 34},
		{"384k32", 384000, 32, 67},
		{"unknown-rate", 11025, 16, 73},
		{"unknown-depth", 48000, 20, 20},
		{"unknown-both", 11025, 20, 76},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.code, Encode(c.rate, c.depth))
		})
	}
}

func TestFindActiveSubstream(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSub(t, root, "card0", "pcm0p", "sub0", statusOpen, "")
	active := writeSub(t, root, "card1", "pcm0p", "sub0", statusRunning, hwParams96k24)

	found, err := FindActiveSubstream(root)
	require.NoError(t, err)
	assert.Equal(t, active, found)

	rate, depth, err := ReadHwParams(found)
	require.NoError(t, err)
	assert.Equal(t, 96000, rate)
	assert.Equal(t, 24, depth)
}

func TestFindActiveSubstreamNone(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSub(t, root, "card0", "pcm0p", "sub0", statusOpen, "")

	_, err := FindActiveSubstream(root)
	assert.True(t, errors.IsNotFound(err))
}

func TestReadHwParamsClosed(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	sub := writeSub(t, root, "card0", "pcm0p", "sub0", statusRunning, "closed\n")

	_, _, err := ReadHwParams(sub)
	assert.True(t, errors.IsNotFound(err))
}

func TestWatcherFollowsCardChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	log := log2.NewTest(t, log2.LDebug)
	w := NewWatcher(log, root)

	// nothing playing
	assert.Equal(t, Status{}, w.Poll())

	// card0 starts
	sub0 := writeSub(t, root, "card0", "pcm0p", "sub0", statusRunning, hwParams96k24)
	st := w.Poll()
	assert.Equal(t, sub0, st.Substream)
	assert.Equal(t, 34, st.Code())

	// card0 stops, card1 takes over
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub0, "hw_params"), []byte("closed\n"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub0, "status"), []byte(statusOpen), 0644))
	sub1 := writeSub(t, root, "card1", "pcm0p", "sub0", statusRunning, hwParams96k24)
	st = w.Poll()
	assert.Equal(t, sub1, st.Substream)

	// everything stops
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub1, "hw_params"), []byte("closed\n"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub1, "status"), []byte(statusOpen), 0644))
	assert.Equal(t, Status{}, w.Poll())
}
