package dedupe

import "testing"

func TestFilenameSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "IMG_0012.jpg", "IMG_0012.jpg", 1.0, 1.0},
		{"case insensitive", "IMG_0012.jpg", "img_0012.JPG", 1.0, 1.0},
		{"edited suffix", "IMG_0012.jpg", "IMG_0012_edited.jpg", 1.0, 1.0},
		{"copy suffix", "vacation_copy.jpg", "vacation.jpg", 1.0, 1.0},
		{"paren copy", "photo (1).jpg", "photo.jpg", 1.0, 1.0},
		{"numeric suffix", "DSC01234_1.jpg", "DSC01234.jpg", 1.0, 1.0},
		{"adjacent frame", "IMG_0012.jpg", "IMG_0013.jpg", 0.8, 0.95},
		{"unrelated", "IMG_0012.jpg", "wedding_dance.jpg", 0.0, 0.5},
		{"empty", "", "IMG_0012.jpg", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilenameSimilarity(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("FilenameSimilarity(%q, %q) = %.3f, want in [%.2f, %.2f]",
					tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestFilenameSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"IMG_0012.jpg", "IMG_0012_edited.jpg"},
		{"a.jpg", "completely_other.png"},
		{"photo (1).jpg", "photo (2).jpg"},
	}

	for _, p := range pairs {
		ab := FilenameSimilarity(p[0], p[1])
		ba := FilenameSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("similarity not symmetric for %q/%q: %.3f vs %.3f", p[0], p[1], ab, ba)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"img_0012", "img_0013", 1},
	}

	for _, tt := range tests {
		if got := levenshtein([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
