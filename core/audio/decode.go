package audio

import (
	"fmt"
	"io"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Extensions lists the file extensions the decoder understands.
var Extensions = []string{".mp3", ".wav"}

// IsAudioFile reports whether name has a supported extension.
func IsAudioFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// codecFor picks a decoder from a format hint. MP3 is the fallback since
// most remote sound effect previews are MP3.
func codecFor(hint string) string {
	h := strings.ToLower(hint)
	switch {
	case h == ".wav", strings.Contains(h, "wav"):
		return "wav"
	default:
		return "mp3"
	}
}

// decodeAll decodes the whole clip into memory and closes rc.
func decodeAll(rc io.ReadCloser, hint string) (*beep.Buffer, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	switch codecFor(hint) {
	case "wav":
		streamer, format, err = wav.Decode(rc)
	default:
		streamer, format, err = mp3.Decode(rc)
	}
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("decode %s audio: %w", codecFor(hint), err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s audio: %w", codecFor(hint), err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("decode %s audio: clip is empty", codecFor(hint))
	}
	return buf, nil
}
