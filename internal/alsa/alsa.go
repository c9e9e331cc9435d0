// Package alsa interrogates /proc/asound for the running PCM substream
// and encodes its sample rate and bit depth as the indicator wire code.
package alsa

import (
	"io/ioutil"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/ivarc/trinkey-indicator/log2"
)

const DefaultRoot = "/proc/asound"

var (
	reRate  = regexp.MustCompile(`rate: ([0-9]+) \(`)
	reDepth = regexp.MustCompile(`format: S([0-9]+)_LE`)
)

// Wire code tables. Values missing from a table map to that table's
// sentinel index (9 for rate, 4 for depth).
var rateIndexes = map[int]int{
	0:      0,
	44100:  1,
	48000:  2,
	88200:  3,
	96000:  4,
	176400: 5,
	192000: 6,
	352800: 7,
	384000: 8,
}

var depthIndexes = map[int]int{
	0:  0,
	16: 1,
	24: 2,
	32: 3,
}

const (
	rateSentinelIndex  = 9
	depthSentinelIndex = 4
)

// Encode packs (rate, depth) into rate_index*8 + bit_index.
func Encode(rate, depth int) int {
	ri, ok := rateIndexes[rate]
	if !ok {
		ri = rateSentinelIndex
	}
	di, ok := depthIndexes[depth]
	if !ok {
		di = depthSentinelIndex
	}
	return ri*8 + di
}

// FindActiveSubstream globs card*/pcm*p/sub* under root and returns the
// first playback substream whose status reports RUNNING.
func FindActiveSubstream(root string) (string, error) {
	pattern := filepath.Join(root, "card*", "pcm*p", "sub*")
	subs, err := filepath.Glob(pattern)
	if err != nil {
		return "", errors.Annotatef(err, "asound glob=%s", pattern)
	}
	for _, sub := range subs {
		bs, err := ioutil.ReadFile(filepath.Join(sub, "status"))
		if err != nil {
			// substreams come and go, skip and keep looking
			continue
		}
		if strings.Contains(string(bs), "RUNNING") {
			return sub, nil
		}
	}
	return "", errors.NotFoundf("active soundcard under %s", root)
}

// ReadHwParams parses the sample rate and bit depth of a running
// substream. A closed substream publishes no parseable hw_params, that
// is a NotFound like a missing card.
func ReadHwParams(sub string) (rate, depth int, err error) {
	bs, err := ioutil.ReadFile(filepath.Join(sub, "hw_params"))
	if err != nil {
		return 0, 0, errors.NewNotFound(err, "hw_params")
	}
	mRate := reRate.FindSubmatch(bs)
	mDepth := reDepth.FindSubmatch(bs)
	if mRate == nil || mDepth == nil {
		return 0, 0, errors.NotFoundf("hw_params rate/format in '%s'", string(bs))
	}
	// regexes only match digits
	rate, _ = strconv.Atoi(string(mRate[1]))
	depth, _ = strconv.Atoi(string(mDepth[1]))
	return rate, depth, nil
}

// Status is one poll result. Zero rate and depth mean no audio playing.
type Status struct {
	Substream  string
	SampleRate int
	BitDepth   int
}

func (s Status) Code() int { return Encode(s.SampleRate, s.BitDepth) }

// Watcher remembers the last active substream so the common case (same
// stream still playing) is one file read. When the stream stops it
// re-resolves the active card from scratch.
type Watcher struct {
	Log  *log2.Log
	root string
	sub  string
}

func NewWatcher(log *log2.Log, root string) *Watcher {
	if root == "" {
		root = DefaultRoot
	}
	return &Watcher{Log: log, root: root}
}

// Poll never fails: no active card is the valid "silence" status.
func (self *Watcher) Poll() Status {
	if self.sub != "" {
		if rate, depth, err := ReadHwParams(self.sub); err == nil {
			return Status{Substream: self.sub, SampleRate: rate, BitDepth: depth}
		}
		self.Log.Debugf("alsa substream=%s stopped", self.sub)
		self.sub = ""
	}

	sub, err := FindActiveSubstream(self.root)
	if err != nil {
		if !errors.IsNotFound(err) {
			self.Log.Error(errors.Annotate(err, "alsa scan"))
		}
		return Status{}
	}
	rate, depth, err := ReadHwParams(sub)
	if err != nil {
		// stopped between the two reads
		return Status{}
	}
	self.sub = sub
	self.Log.Infof("alsa substream=%s rate=%d depth=%d", sub, rate, depth)
	return Status{Substream: sub, SampleRate: rate, BitDepth: depth}
}
