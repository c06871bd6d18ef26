package ioenrich

import (
	"net/url"
	"path"
	"strings"

	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/ecoglobe/biosync/pkg/species"
)

// Media types of normalized records.
const (
	StillImage  = "StillImage"
	Sound       = "Sound"
	MovingImage = "MovingImage"
)

var extFormats = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".ogv":  "video/ogg",
}

// normalizeMedia converts raw media items to species media. Items
// without an identifier are dropped.
func normalizeMedia(items []sources.MediaItem) []species.Media {
	res := make([]species.Media, 0, len(items))
	for _, v := range items {
		id := strings.TrimSpace(v.Identifier)
		if id == "" {
			continue
		}
		format := mediaFormat(v.Format, id)
		res = append(res, species.Media{
			Type:         mediaType(format, v.Type),
			Format:       format,
			Identifier:   id,
			Title:        strings.TrimSpace(v.Title),
			Creator:      strings.TrimSpace(v.Creator),
			License:      strings.TrimSpace(v.License),
			RightsHolder: strings.TrimSpace(v.RightsHolder),
			Source:       strings.TrimSpace(v.Source),
			References:   strings.TrimSpace(v.References),
		})
	}
	return res
}

// mediaFormat keeps a MIME format given by the source, otherwise infers
// it from the file extension of the identifier.
func mediaFormat(format, identifier string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if strings.Contains(format, "/") {
		return format
	}

	p := identifier
	if u, err := url.Parse(identifier); err == nil {
		p = u.Path
	}
	if res, ok := extFormats[strings.ToLower(path.Ext(p))]; ok {
		return res
	}
	return format
}

// mediaType derives the type from the MIME family, falling back to the
// type given by the source.
func mediaType(format, typ string) string {
	family, _, _ := strings.Cut(format, "/")
	switch family {
	case "image":
		return StillImage
	case "audio":
		return Sound
	case "video":
		return MovingImage
	}
	return strings.TrimSpace(typ)
}
