package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenter(t *testing.T) {
	assert.Equal(t, image.Pt(15, 25), Center(image.Rect(10, 20, 20, 30)))
	assert.Equal(t, image.Pt(2, 2), Center(image.Rect(0, 0, 5, 5)))
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(image.Pt(0, 0), image.Pt(3, 4)), 1e-9)
	assert.InDelta(t, 0.0, Distance(image.Pt(7, 7), image.Pt(7, 7)), 1e-9)
}

func TestIsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
		want bool
	}{
		{"empty selection", image.Rect(0, 0, 0, 0), true},
		{"zero width", image.Rect(10, 10, 10, 40), true},
		{"zero height", image.Rect(10, 10, 40, 10), true},
		{"valid", image.Rect(10, 10, 40, 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDegenerate(tt.rect))
		})
	}
}

func TestClampToFrame(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 50, 40), ClampToFrame(image.Rect(-10, -5, 50, 40), 100, 100))
	assert.Equal(t, image.Rect(80, 80, 100, 100), ClampToFrame(image.Rect(80, 80, 120, 130), 100, 100))
	assert.True(t, IsDegenerate(ClampToFrame(image.Rect(200, 200, 300, 300), 100, 100)))
}

func TestScaledSize(t *testing.T) {
	assert.Equal(t, image.Pt(900, 675), ScaledSize(640, 480, 900))
	assert.Equal(t, image.Pt(640, 480), ScaledSize(640, 480, 0))
}
