package catset

import (
	"bytes"

	"github.com/bep/imagemeta"
)

// orientation values per the EXIF spec; 1 is upright.
const (
	orientUpright    = 1
	orientFlipH      = 2
	orientRotate180  = 3
	orientFlipV      = 4
	orientTranspose  = 5 // flip horizontal + rotate 270 CW
	orientRotate90   = 6 // rotate 90 CW
	orientTransverse = 7 // flip horizontal + rotate 90 CW
	orientRotate270  = 8 // rotate 270 CW
	orientMax        = 8
)

// exifOrientation extracts the EXIF Orientation tag from raw image bytes.
// Returns 1 (upright) when the tag is missing, malformed, or the data
// carries no parseable metadata. Graceful degradation: never errors.
func exifOrientation(data []byte) int {
	if len(data) == 0 {
		return orientUpright
	}

	orient := orientUpright
	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return ti.Tag == "Orientation"
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if v, ok := tagValueInt(ti.Value); ok {
				orient = v
			}
			return nil
		},
	})
	if err != nil || orient < orientUpright || orient > orientMax {
		return orientUpright
	}
	return orient
}

// tagValueInt extracts an integer from a tag value. EXIF short values may
// surface as any unsigned or signed integer width.
func tagValueInt(v any) (int, bool) {
	switch val := v.(type) {
	case uint16:
		return int(val), true
	case uint32:
		return int(val), true
	case uint64:
		return int(val), true
	case int:
		return val, true
	case int16:
		return int(val), true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}
