package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/printcanvas/assets"
	"github.com/example/printcanvas/internal/geom"
)

// ErrDecode wraps every image decode failure.
var ErrDecode = errors.New("decode image")

// Decoder turns uploaded bytes into an image.
type Decoder interface {
	Decode(data []byte) (image.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(data []byte) (image.Image, error)

func (f DecoderFunc) Decode(data []byte) (image.Image, error) { return f(data) }

// DefaultDecoder handles PNG, JPEG, GIF, BMP, TIFF and WebP (honouring EXIF
// orientation) and rasterises SVG uploads at their viewBox size.
func DefaultDecoder() Decoder {
	return DecoderFunc(decodeUpload)
}

func decodeUpload(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload")
	}
	if looksLikeSVG(data) {
		return assets.RasterizeSVG(data, 0, 0)
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimSpace(head)
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// SetImages takes the collaborator's upload list and uses only its first
// entry. An empty list leaves the scene untouched.
func (s *Scene) SetImages(blobs [][]byte) (uint64, bool) {
	if len(blobs) == 0 {
		return 0, false
	}
	return s.SetImage(blobs[0]), true
}

// SetImage discards the current image element and starts decoding data.
// The new element appears once the decode completes on the event loop;
// until then the image slot is empty. Only the most recent request may
// commit, so an older decode finishing late is dropped. The returned token
// identifies the request in DecodeResult.
//
// Without a dispatcher the decode runs on the calling goroutine and has
// resolved by the time SetImage returns.
func (s *Scene) SetImage(data []byte) uint64 {
	s.seq++
	seq := s.seq
	s.pending = seq
	s.replaceImage(nil)

	dec := s.decoder
	loop := s.dispatcher
	if loop == nil {
		img, err := safeDecode(dec, data)
		s.completeImage(seq, img, err)
		return seq
	}
	go func() {
		img, err := safeDecode(dec, data)
		loop.Post(func() { s.completeImage(seq, img, err) })
	}()
	return seq
}

// safeDecode turns a decoder panic into an error.
func safeDecode(dec Decoder, data []byte) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("decoder panicked: %v", r)
		}
	}()
	return dec.Decode(data)
}

// Decoding reports whether the latest SetImage request is still in flight.
func (s *Scene) Decoding() bool { return s.pending != 0 }

func (s *Scene) completeImage(seq uint64, img image.Image, err error) {
	if seq != s.seq || s.pending != seq {
		s.notify(DecodeResult{Seq: seq, Superseded: true})
		return
	}
	s.pending = 0
	if err == nil && (img == nil || img.Bounds().Empty()) {
		err = fmt.Errorf("image has no pixels")
	}
	if err != nil {
		s.notify(DecodeResult{Seq: seq, Err: fmt.Errorf("%w: %w", ErrDecode, err)})
		return
	}
	b := img.Bounds()
	el := &ImageElement{
		handle:   newHandle(KindImage),
		source:   img,
		natural:  geom.Sz(float64(b.Dx()), float64(b.Dy())),
		scale:    1,
		position: s.anchor(),
		z:        s.z(),
	}
	s.replaceImage(el)
	s.notify(DecodeResult{Seq: seq, Handle: el.handle})
}

func (s *Scene) notify(r DecodeResult) {
	if s.listener != nil {
		s.listener(r)
	}
}
