package tagging

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/cesargomez89/soundboard/internal/storage"
)

func inspectFLAC(path string) (*Info, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	info := &Info{Format: FormatFLAC}

	if len(f.Meta) > 0 {
		si, err := f.GetStreamInfo()
		if err != nil {
			return nil, fmt.Errorf("failed to read FLAC stream info: %w", err)
		}
		if si.SampleRate > 0 {
			info.Duration = float64(si.SampleCount) / float64(si.SampleRate)
		}
	}

	for _, block := range f.Meta {
		switch block.Type {
		case flac.VorbisComment:
			cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				return nil, fmt.Errorf("failed to parse vorbis comment: %w", err)
			}
			info.Title = firstComment(cmt, flacvorbis.FIELD_TITLE)
			info.Artist = firstComment(cmt, flacvorbis.FIELD_ARTIST)
			info.ContentID = firstComment(cmt, ContentIDField)
		case flac.Picture:
			if info.ArtworkMIME != "" {
				continue
			}
			if pic, err := flacpicture.ParseFromMetaDataBlock(*block); err == nil {
				info.ArtworkMIME = pic.MIME
			}
		}
	}

	return info, nil
}

func firstComment(cmt *flacvorbis.MetaDataBlockVorbisComment, key string) string {
	values, err := cmt.Get(key)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}

func stampFLAC(path string, meta Metadata) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	idx := -1
	cmt := flacvorbis.New()
	for i, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			idx = i
			cmt, err = flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				return fmt.Errorf("failed to parse vorbis comment: %w", err)
			}
			break
		}
	}

	replaced := map[string]string{ContentIDField: meta.ContentID}
	if meta.Title != "" {
		replaced[flacvorbis.FIELD_TITLE] = meta.Title
	}
	if meta.Artist != "" {
		replaced[flacvorbis.FIELD_ARTIST] = meta.Artist
	}

	kept := cmt.Comments[:0]
	for _, c := range cmt.Comments {
		key, _, _ := strings.Cut(c, "=")
		if _, ok := replaced[strings.ToUpper(key)]; !ok {
			kept = append(kept, c)
		}
	}
	cmt.Comments = kept

	for _, key := range []string{flacvorbis.FIELD_TITLE, flacvorbis.FIELD_ARTIST, ContentIDField} {
		if v, ok := replaced[key]; ok {
			if err := cmt.Add(key, v); err != nil {
				return fmt.Errorf("failed to add %s: %w", key, err)
			}
		}
	}

	block := cmt.Marshal()
	if idx >= 0 {
		f.Meta[idx] = &block
	} else {
		f.Meta = append(f.Meta, &block)
	}

	if _, err := storage.WriteAtomic(path, bytes.NewReader(f.Marshal())); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}
