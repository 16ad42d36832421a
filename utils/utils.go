package utils

import (
	"image"
	"math"
)

// Center returns the integer center of a bounding box
func Center(rect image.Rectangle) image.Point {
	return image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
}

// Distance returns the euclidean distance between two points
func Distance(a, b image.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// IsDegenerate reports whether a region has zero width or height,
// which is what a cancelled selection looks like.
func IsDegenerate(rect image.Rectangle) bool {
	return rect.Dx() <= 0 || rect.Dy() <= 0
}

// ClampToFrame keeps a region inside the image bounds.
// The result can be degenerate when the region lies entirely outside the frame.
func ClampToFrame(rect image.Rectangle, imgWidth, imgHeight int) image.Rectangle {
	rect = rect.Canon()

	if rect.Min.X < 0 {
		rect.Min.X = 0
	}
	if rect.Min.Y < 0 {
		rect.Min.Y = 0
	}
	if rect.Max.X > imgWidth {
		rect.Max.X = imgWidth
	}
	if rect.Max.Y > imgHeight {
		rect.Max.Y = imgHeight
	}
	if rect.Max.X < rect.Min.X {
		rect.Max.X = rect.Min.X
	}
	if rect.Max.Y < rect.Min.Y {
		rect.Max.Y = rect.Min.Y
	}

	return rect
}

// ScaledSize returns the frame size for a target width preserving the aspect ratio.
// A non-positive width keeps the original size.
func ScaledSize(width, height, targetWidth int) image.Point {
	if targetWidth <= 0 || width <= 0 {
		return image.Pt(width, height)
	}
	return image.Pt(targetWidth, int(float64(height)*float64(targetWidth)/float64(width)))
}
