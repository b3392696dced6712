package tagging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
)

func inspectMP3(path string) (*Info, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer tag.Close()

	info := &Info{
		Format: FormatMP3,
		Title:  tag.Title(),
		Artist: tag.Artist(),
	}

	// TLEN holds the length in milliseconds.
	if tlen := strings.TrimSpace(tag.GetTextFrame("TLEN").Text); tlen != "" {
		if ms, err := strconv.ParseFloat(tlen, 64); err == nil && ms > 0 {
			info.Duration = ms / 1000
		}
	}

	for _, f := range tag.GetFrames("TXXX") {
		udf, ok := f.(id3v2.UserDefinedTextFrame)
		if ok && udf.Description == ContentIDField {
			info.ContentID = udf.Value
		}
	}

	for _, f := range tag.GetFrames("APIC") {
		if pic, ok := f.(id3v2.PictureFrame); ok {
			info.ArtworkMIME = pic.MimeType
			break
		}
	}

	return info, nil
}

func stampMP3(path string, meta Metadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(4)

	if meta.Title != "" {
		tag.SetTitle(meta.Title)
	}
	if meta.Artist != "" {
		tag.SetArtist(meta.Artist)
	}

	// Keep other TXXX frames, drop an earlier stamp.
	var keep []id3v2.UserDefinedTextFrame
	for _, f := range tag.GetFrames("TXXX") {
		if udf, ok := f.(id3v2.UserDefinedTextFrame); ok && udf.Description != ContentIDField {
			keep = append(keep, udf)
		}
	}
	tag.DeleteFrames("TXXX")
	for _, udf := range keep {
		tag.AddUserDefinedTextFrame(udf)
	}

	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: ContentIDField,
		Value:       meta.ContentID,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save MP3 tags: %w", err)
	}
	return nil
}
