package pipeline

import (
	stderrors "errors"
	"io"
	"io/fs"

	"github.com/matzehuels/cascade/pkg/errors"
	"github.com/matzehuels/cascade/pkg/scene"
)

// LoadScene reads a scene file and checks every element id.
func LoadScene(path string) (*scene.Box, error) {
	root, err := scene.Load(path)
	if err != nil {
		return nil, sceneError(err, path)
	}
	return root, CheckScene(root)
}

// ReadScene decodes a scene from r and checks every element id.
func ReadScene(r io.Reader, format scene.Format) (*scene.Box, error) {
	root, err := scene.Read(r, format)
	if err != nil {
		return nil, sceneError(err, "request body")
	}
	return root, CheckScene(root)
}

// GridScene builds a demo grid from a "COLSxROWS" spec.
func GridScene(spec string) (*scene.Box, error) {
	cols, rows, err := scene.ParseGrid(spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "grid")
	}
	return scene.Grid(cols, rows, scene.DefaultCell, scene.DefaultGap), nil
}

// CheckScene validates every element id below root.
func CheckScene(root *scene.Box) error {
	var err error
	for _, k := range root.Kids {
		k.Walk(func(b *scene.Box) {
			if err == nil {
				err = errors.ValidateElementID(b.Name)
			}
		})
	}
	return err
}

func sceneError(err error, source string) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrap(errors.ErrCodeNotFound, err, "scene %s", source)
	case stderrors.Is(err, scene.ErrUnknownFormat):
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "scene %s", source)
	case stderrors.Is(err, scene.ErrInvalid):
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "scene %s", source)
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "scene %s", source)
}
