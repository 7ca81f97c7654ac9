package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/example/printcanvas/internal/geom"
)

// graphical lists the SVG elements that render content. Only these receive
// the origin shift; everything else (defs, style, title, ...) is copied as is.
var graphical = map[string]bool{
	"a": true, "circle": true, "ellipse": true, "foreignObject": true,
	"g": true, "image": true, "line": true, "path": true, "polygon": true,
	"polyline": true, "rect": true, "svg": true, "switch": true,
	"text": true, "use": true,
}

// Vector builds a standalone SVG document the size of region from doc, a
// serialised scene. Every top-level child of doc is copied byte for byte;
// graphical children get translate(-region.X -region.Y) prepended to their
// transform, including children that lie wholly outside the region. Nothing
// is clipped: only the new viewport limits what is visible.
func Vector(doc []byte, region geom.Rect) ([]byte, error) {
	if region.Empty() {
		return nil, fmt.Errorf("export vector: %w: empty region", ErrNoRegion)
	}
	children, extraNS, err := topLevelChildren(doc, fmt.Sprintf("translate(%s %s)", num(-region.X), num(-region.Y)))
	if err != nil {
		return nil, fmt.Errorf("export vector: %w", err)
	}

	w, h := regionSize(region)
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, append([]string{fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h)}, extraNS...)...)
	for _, c := range children {
		canvas.Writer.Write(c)
		io.WriteString(canvas.Writer, "\n")
	}
	canvas.End()
	return buf.Bytes(), nil
}

func num(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// topLevelChildren walks doc and returns the raw bytes of each direct child
// of the root <svg>, with shift applied to graphical ones. It also returns
// namespace declarations on the root other than the SVG and XLink ones,
// which the new root has to repeat.
func topLevelChildren(doc []byte, shift string) ([][]byte, []string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var (
		children [][]byte
		extraNS  []string
		depth    int
		rootSeen bool
		head     []byte // rewritten start tag of the current child
		bodyAt   int64  // offset just past the child's start tag
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse scene document: %w", err)
		}
		end := dec.InputOffset()
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				if rootSeen || t.Name.Local != "svg" {
					return nil, nil, fmt.Errorf("scene document root is <%s>, want <svg>", qname(t.Name))
				}
				rootSeen = true
				extraNS = foreignNamespaces(t.Attr)
			case 2:
				selfClosing := bytes.HasSuffix(doc[:end], []byte("/>"))
				if graphical[t.Name.Local] {
					t = withShift(t, shift)
				}
				head = startTag(t, selfClosing)
				bodyAt = end
			}
		case xml.EndElement:
			if depth == 2 {
				chunk := append([]byte{}, head...)
				if !bytes.HasSuffix(head, []byte("/>")) {
					chunk = append(chunk, doc[bodyAt:end]...)
				}
				children = append(children, chunk)
			}
			depth--
		}
	}
	if !rootSeen {
		return nil, nil, fmt.Errorf("scene document has no <svg> root")
	}
	if depth != 0 {
		return nil, nil, fmt.Errorf("parse scene document: unexpected EOF")
	}
	return children, extraNS, nil
}

func withShift(t xml.StartElement, shift string) xml.StartElement {
	attrs := make([]xml.Attr, len(t.Attr))
	copy(attrs, t.Attr)
	for i, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == "transform" {
			attrs[i].Value = shift + " " + a.Value
			t.Attr = attrs
			return t
		}
	}
	t.Attr = append(attrs, xml.Attr{Name: xml.Name{Local: "transform"}, Value: shift})
	return t
}

func foreignNamespaces(attrs []xml.Attr) []string {
	var out []string
	for _, a := range attrs {
		if a.Name.Space != "xmlns" || a.Name.Local == "xlink" {
			continue
		}
		var b bytes.Buffer
		fmt.Fprintf(&b, `xmlns:%s="`, a.Name.Local)
		xml.EscapeText(&b, []byte(a.Value))
		b.WriteByte('"')
		out = append(out, b.String())
	}
	return out
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func startTag(t xml.StartElement, selfClosing bool) []byte {
	var b bytes.Buffer
	b.WriteByte('<')
	b.WriteString(qname(t.Name))
	for _, a := range t.Attr {
		b.WriteByte(' ')
		b.WriteString(qname(a.Name))
		b.WriteString(`="`)
		xml.EscapeText(&b, []byte(a.Value))
		b.WriteByte('"')
	}
	if selfClosing {
		b.WriteString("/>")
	} else {
		b.WriteByte('>')
	}
	return b.Bytes()
}
