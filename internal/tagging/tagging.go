// Package tagging inspects downloaded content files and stamps them with the
// content id they were stored under.
package tagging

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

type Format string

const (
	FormatMP3  Format = "mp3"
	FormatFLAC Format = "flac"
)

// ContentIDField names the tag field holding the content id.
const ContentIDField = "SOUNDBOARD_CONTENT_ID"

// Info is what Inspect learns about an audio file.
type Info struct {
	Format      Format
	Title       string
	Artist      string
	ContentID   string
	Duration    float64 // seconds, 0 when unknown
	ArtworkMIME string
}

// Metadata is written into a file by Stamp.
type Metadata struct {
	ContentID string
	Title     string
	Artist    string
}

// DetectFormat sniffs the container from the first bytes of the file.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 4)
	if _, err := io.ReadFull(f, head); err != nil {
		return "", fmt.Errorf("file too short to identify: %w", err)
	}

	if bytes.Equal(head, []byte("fLaC")) {
		return FormatFLAC, nil
	}
	if bytes.Equal(head[:3], []byte("ID3")) || (head[0] == 0xFF && head[1]&0xE0 == 0xE0) {
		return FormatMP3, nil
	}
	return "", fmt.Errorf("unsupported audio format")
}

// Inspect reads tags and stream properties from the file at path.
func Inspect(path string) (*Info, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatFLAC:
		return inspectFLAC(path)
	default:
		return inspectMP3(path)
	}
}

// Stamp writes meta into the file's tags, replacing an earlier stamp.
func Stamp(path string, meta Metadata) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatFLAC:
		return stampFLAC(path, meta)
	default:
		return stampMP3(path, meta)
	}
}
