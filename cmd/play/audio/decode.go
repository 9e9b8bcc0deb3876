// Package audio decodes tracks with beep and renders them on the speaker.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gigurra/audix/cmd/play/playlist"
	"github.com/gigurra/audix/cmd/play/session"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

var (
	ErrTrackOpenFailed        = errors.New("track open failed")
	ErrDecodeFailed           = errors.New("decode failed")
	ErrUnsupportedFormat      = errors.New("unsupported format")
	ErrAudioDeviceUnavailable = errors.New("audio device unavailable")
)

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	"mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return mp3.Decode(f)
	},
	"wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(f)
	},
	"flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(f)
	},
	"ogg": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return vorbis.Decode(f)
	},
}

// Stream is a decoded track together with the file backing it.
type Stream struct {
	Track    playlist.Track
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     io.Closer
	closed   bool
}

func (s *Stream) Format() beep.Format {
	return s.format
}

// Close releases the decoder and the file. Safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.streamer.Close()
	if ferr := s.file.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) && err == nil {
		err = ferr
	}
	return err
}

// Decoder opens tracks from disk. m4a files are scanned but beep has no
// decoder for them, so they fail with ErrUnsupportedFormat.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(track playlist.Track) (session.Stream, error) {
	return d.DecodeFile(track)
}

func (d *Decoder) DecodeFile(track playlist.Track) (*Stream, error) {
	decode, ok := decoders[track.Ext()]
	if !ok {
		return nil, fmt.Errorf("%w: %w: .%s", ErrDecodeFailed, ErrUnsupportedFormat, track.Ext())
	}

	f, err := os.Open(track.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTrackOpenFailed, err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, track.Name(), err)
	}

	return &Stream{
		Track:    track,
		streamer: streamer,
		format:   format,
		file:     f,
	}, nil
}
