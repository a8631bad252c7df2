package iconiq

import (
	"errors"
	"testing"
)

func TestDescriptorValidation(t *testing.T) {
	testCases := []struct {
		name    string
		info    IconInfo
		missing []string
	}{
		{
			name: "canvas path complete",
			info: IconInfo{
				Kind:   ShapeCanvasPath,
				Size:   &ShapeSize{Width: 10, Height: 10},
				Points: []Point{{X: 0, Y: 0}, {X: 10, Y: 10}},
			},
		},
		{
			name:    "canvas path missing everything",
			info:    IconInfo{Kind: ShapeCanvasPath},
			missing: []string{"size", "points"},
		},
		{
			name:    "dynamic circle missing size",
			info:    IconInfo{Kind: ShapeDynamicCircle},
			missing: []string{"size"},
		},
		{
			name:    "font missing name and size",
			info:    IconInfo{Kind: ShapeFont, Text: "A"},
			missing: []string{"fontName", "fontSize"},
		},
		{
			name:    "font with zero size",
			info:    IconInfo{Kind: ShapeFont, FontName: "Arial", FontSize: 0},
			missing: []string{"fontSize"},
		},
		{
			name:    "rotated image without rotation",
			info:    IconInfo{Kind: ShapeRotatedImage, URL: "x.png"},
			missing: []string{"rotation"},
		},
		{
			name: "rotated image complete",
			info: IconInfo{Kind: ShapeRotatedImage, URL: "x.png", Rotation: 45},
		},
		{
			name:    "rounded image missing url",
			info:    IconInfo{Kind: ShapeRoundedImage, Size: &ShapeSize{Width: 8, Height: 8}},
			missing: []string{"url"},
		},
		{
			name:    "scaled image with zero scale",
			info:    IconInfo{Kind: ShapeScaledImage, URL: "x.png"},
			missing: []string{"scale"},
		},
		{
			name: "scaled image complete",
			info: IconInfo{Kind: ShapeScaledImage, URL: "x.png", Scale: 0.5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.info.validate()
			if len(tc.missing) == 0 {
				if err != nil {
					t.Fatalf("expected a valid descriptor, got %v", err)
				}
				return
			}

			var invalid *InvalidDescriptorError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected an InvalidDescriptorError, got %v", err)
			}
			if invalid.Kind != tc.info.Kind {
				t.Errorf("wrong kind in error: got %s, expected %s", invalid.Kind, tc.info.Kind)
			}
			if len(invalid.Fields) != len(tc.missing) {
				t.Fatalf("wrong missing fields: got %v, expected %v", invalid.Fields, tc.missing)
			}
			for i, field := range tc.missing {
				if invalid.Fields[i] != field {
					t.Errorf("wrong missing field: got %s, expected %s", invalid.Fields[i], field)
				}
			}
		})
	}
}

func TestDescriptorDefaults(t *testing.T) {
	info := &IconInfo{Kind: ShapeDynamicCircle}
	if got := info.color(); got != DefaultColor {
		t.Errorf("wrong default color: got %s, expected %s", got, DefaultColor)
	}

	info.Color = "#1e90ff"
	if got := info.color(); got != "#1e90ff" {
		t.Errorf("explicit color not honored: got %s", got)
	}

	if got := info.offset(); got != (Point{}) {
		t.Errorf("wrong default offset: got %v", got)
	}

	info.Offset = &Point{X: 3, Y: 4}
	if got := info.offset(); got != (Point{X: 3, Y: 4}) {
		t.Errorf("explicit offset not honored: got %v", got)
	}
}
