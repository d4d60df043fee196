package watermark

import "fmt"

// Anchor names one of the nine watermark placement zones of an image.
type Anchor string

const (
	TopLeft      Anchor = "top-left"
	TopCenter    Anchor = "top-center"
	TopRight     Anchor = "top-right"
	CenterLeft   Anchor = "center-left"
	Center       Anchor = "center"
	CenterRight  Anchor = "center-right"
	BottomLeft   Anchor = "bottom-left"
	BottomCenter Anchor = "bottom-center"
	BottomRight  Anchor = "bottom-right"
)

var anchors = []Anchor{
	TopLeft, TopCenter, TopRight,
	CenterLeft, Center, CenterRight,
	BottomLeft, BottomCenter, BottomRight,
}

// AnchorNames lists every valid placement keyword.
func AnchorNames() []string {
	names := make([]string, len(anchors))
	for i, a := range anchors {
		names[i] = string(a)
	}
	return names
}

// ParseAnchor validates a placement keyword.
func ParseAnchor(s string) (Anchor, error) {
	for _, a := range anchors {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid position %q", s)
}

// Point returns the top-left coordinate at which text of the given size
// should be drawn on an image of the given size. Each axis is either the
// padding (near edge), centered with floor division, or the far edge minus
// text and padding. Unknown anchors place like BottomRight; text larger
// than the image is not clamped.
func (a Anchor) Point(imgW, imgH, textW, textH, padding int) (int, int) {
	switch a {
	case TopLeft:
		return padding, padding
	case TopCenter:
		return floorDiv(imgW-textW, 2), padding
	case TopRight:
		return imgW - textW - padding, padding
	case CenterLeft:
		return padding, floorDiv(imgH-textH, 2)
	case Center:
		return floorDiv(imgW-textW, 2), floorDiv(imgH-textH, 2)
	case CenterRight:
		return imgW - textW - padding, floorDiv(imgH-textH, 2)
	case BottomLeft:
		return padding, imgH - textH - padding
	case BottomCenter:
		return floorDiv(imgW-textW, 2), imgH - textH - padding
	default:
		return imgW - textW - padding, imgH - textH - padding
	}
}

// floorDiv divides rounding toward negative infinity. Go's integer
// division truncates toward zero, which differs for oversized text
// (negative numerator) and would shift centered placement by a pixel.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
