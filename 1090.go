/*
Copyright (c) 2018 Ham, Yeongtaek <yeongtaek.ham@gmail.com>.

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package modes1090

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"modes1090/modes"
	"modes1090/rtl_adsb"
)

// VariantHandler is called with every message this pipeline manages to
// decode. err is non-nil when a frame was received but could not be
// turned into a Variant; v is the zero value in that case.
type VariantHandler func(env modes.Envelope, v modes.Variant, err error)

// Pipeline wires a raw 1090MHz frame source into a modes.Decoder and
// forwards the results to a VariantHandler.
type Pipeline struct {
	decoder *modes.Decoder
	logger  zerolog.Logger
}

// NewPipeline builds a Pipeline around a freshly constructed Decoder.
func NewPipeline(opts ...modes.Option) *Pipeline {
	return &Pipeline{
		decoder: modes.NewDecoder(opts...),
		logger:  log.Logger,
	}
}

// Decoder exposes the underlying decoder so callers can query per-aircraft
// state (AdsbVersion, ExtractPosition, AircraftCount, ...) alongside the
// message stream.
func (p *Pipeline) Decoder() *modes.Decoder {
	return p.decoder
}

// Run launches execPath (an rtl_adsb-compatible producer of "*HEX;" lines
// on stdout), decodes every frame it emits, and calls handler for each
// one. The returned func stops the subprocess.
func (p *Pipeline) Run(execPath string, handler VariantHandler) (func(), error) {
	p.logger.Info().Str("exec", execPath).Msg("starting 1090MHz receiver")

	stop, err := rtl_adsb.StartReceive(execPath, func(raw rtl_adsb.ADSBMsg) {
		p.handleFrame(raw[:], handler)
	})
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to start receiver")
		return nil, err
	}

	return func() {
		p.logger.Info().Msg("stopping 1090MHz receiver")
		stop()
	}, nil
}

// Feed decodes a single raw frame directly, bypassing any subprocess.
// Useful for replaying captured frames or feeding frames read from a
// network source instead of a local rtl_adsb binary.
func (p *Pipeline) Feed(frame []byte, handler VariantHandler) {
	p.handleFrame(frame, handler)
}

func (p *Pipeline) handleFrame(frame []byte, handler VariantHandler) {
	ts := time.Now().UnixMilli()
	v, err := p.decoder.Decode(frame, ts)
	if err != nil {
		p.logger.Debug().Err(err).Hex("frame", frame).Msg("frame rejected")
		handler(modes.Envelope{}, nil, err)
		return
	}
	handler(v.Envelope(), v, nil)
}

// ClearStale evicts aircraft whose last message is older than maxAgeMillis
// relative to nowMillis, and reports how many records were removed.
func (p *Pipeline) ClearStale(nowMillis, maxAgeMillis int64) int {
	return p.decoder.ClearStale(nowMillis, maxAgeMillis)
}
