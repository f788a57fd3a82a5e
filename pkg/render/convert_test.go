package render

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4"><rect width="4" height="4"/></svg>`

func TestConvert(t *testing.T) {
	ctx := context.Background()
	if !HasConverter() {
		_, err := ToPNG(ctx, []byte(tinySVG), 1)
		if !errors.Is(err, ErrNoConverter) {
			t.Fatalf("err = %v, want ErrNoConverter", err)
		}
		t.Skip("rsvg-convert not installed")
	}

	png, err := ToPNG(ctx, []byte(tinySVG), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	pdf, err := ToPDF(ctx, []byte(tinySVG))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
