package synth

import (
	"errors"
	"fmt"
	"io"

	"github.com/youpy/go-wav"
)

// ErrFormat is returned when a WAV stream is not 16-bit stereo PCM.
var ErrFormat = errors.New("synth: unsupported wav format")

// WriteWAV encodes the buffer as a 16-bit stereo WAV stream.
func (b Buffer) WriteWAV(w io.Writer) error {
	frames := b.Frames()
	ww := wav.NewWriter(w, uint32(frames), Channels, uint32(b.SampleRate), BitDepth)
	samples := make([]wav.Sample, frames)
	for i := range samples {
		samples[i].Values[0] = int(b.Samples[i*Channels])
		samples[i].Values[1] = int(b.Samples[i*Channels+1])
	}
	if err := ww.WriteSamples(samples); err != nil {
		return fmt.Errorf("synth: write wav: %w", err)
	}
	return nil
}

// WAVSource is what the WAV decoder reads from; *os.File and *bytes.Reader
// both qualify.
type WAVSource interface {
	io.Reader
	io.ReaderAt
}

// ReadWAV decodes a 16-bit stereo WAV stream.
func ReadWAV(r WAVSource) (Buffer, error) {
	wr := wav.NewReader(r)
	format, err := wr.Format()
	if err != nil {
		return Buffer{}, fmt.Errorf("synth: read wav header: %w", err)
	}
	if format.NumChannels != Channels || format.BitsPerSample != BitDepth {
		return Buffer{}, fmt.Errorf("%w: %d channels, %d bits", ErrFormat, format.NumChannels, format.BitsPerSample)
	}

	buf := Buffer{SampleRate: int(format.SampleRate)}
	for {
		samples, err := wr.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Buffer{}, fmt.Errorf("synth: read wav samples: %w", err)
		}
		for _, s := range samples {
			buf.Samples = append(buf.Samples, int16(wr.IntValue(s, 0)), int16(wr.IntValue(s, 1)))
		}
	}
	return buf, nil
}
