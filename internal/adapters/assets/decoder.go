package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font/sfnt"
	_ "golang.org/x/image/webp"

	"artbind/internal/domain"
	"artbind/internal/ports"
)

// ErrUnsupportedKind is returned when decoding anything but images and fonts
var ErrUnsupportedKind = errors.New("unsupported asset kind")

// Decoder decodes png, jpeg, gif, bmp and webp images and TrueType/OpenType
// fonts, including the first face of a collection.
type Decoder struct{}

var _ ports.AssetDecoder = Decoder{}

func (Decoder) Decode(ctx context.Context, kind domain.Kind, data []byte) (domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Asset{}, err
	}
	switch kind {
	case domain.KindImage:
		return decodeImage(data)
	case domain.KindFont:
		return decodeFont(data)
	}
	return domain.Asset{}, fmt.Errorf("%s: %w", kind, ErrUnsupportedKind)
}

func decodeImage(data []byte) (domain.Asset, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.Asset{}, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	return domain.Asset{
		AssetKind: domain.KindImage,
		Format:    format,
		Width:     b.Dx(),
		Height:    b.Dy(),
		Size:      len(data),
		Payload:   img,
	}, nil
}

func decodeFont(data []byte) (domain.Asset, error) {
	var (
		f      *sfnt.Font
		err    error
		format = "sfnt"
	)
	if bytes.HasPrefix(data, []byte("ttcf")) {
		format = "collection"
		var c *sfnt.Collection
		c, err = sfnt.ParseCollection(data)
		if err == nil {
			f, err = c.Font(0)
		}
	} else {
		f, err = sfnt.Parse(data)
	}
	if err != nil {
		return domain.Asset{}, fmt.Errorf("decoding font: %w", err)
	}

	// fonts without a family name are still usable
	family, _ := f.Name(nil, sfnt.NameIDFamily)
	return domain.Asset{
		AssetKind: domain.KindFont,
		Format:    format,
		Family:    family,
		Size:      len(data),
		Payload:   f,
	}, nil
}
