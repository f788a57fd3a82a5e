package sink

import (
	"bytes"

	"github.com/matzehuels/cascade/pkg/timeline"
)

// RenderJSON encodes tl as indented JSON.
func RenderJSON(tl *timeline.Timeline) ([]byte, error) {
	var buf bytes.Buffer
	if err := tl.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
