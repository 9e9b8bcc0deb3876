//go:build !((linux && cgo) || windows || darwin)

package audio

import (
	"fmt"
	"time"

	"github.com/gigurra/audix/cmd/play/session"
)

// SpeakerSink is a placeholder for builds without an audio backend.
type SpeakerSink struct{}

// NewSpeakerSink always fails when cgo is disabled.
func NewSpeakerSink() (*SpeakerSink, error) {
	return nil, fmt.Errorf("%w: built without cgo", ErrAudioDeviceUnavailable)
}

func (s *SpeakerSink) Append(st session.Stream) error {
	return ErrAudioDeviceUnavailable
}

func (s *SpeakerSink) Play() {}

func (s *SpeakerSink) Pause() {}

func (s *SpeakerSink) Stop() {}

func (s *SpeakerSink) SetVolume(level float64) {}

func (s *SpeakerSink) IsEmpty() bool {
	return true
}

func (s *SpeakerSink) SeekTo(position time.Duration) error {
	return nil
}

func (s *SpeakerSink) Close() {}
