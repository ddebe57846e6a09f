package colorspace

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/termcore/terminal"
)

// gridStep samples every channel at 0, 5, ..., 255
const gridStep = 5

func forEachGridColor(fn func(c terminal.RGB)) {
	for r := 0; r <= 255; r += gridStep {
		for g := 0; g <= 255; g += gridStep {
			for b := 0; b <= 255; b += gridStep {
				fn(terminal.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
			}
		}
	}
}

func within1(a, b terminal.RGB) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 1 && d(a.G, b.G) <= 1 && d(a.B, b.B) <= 1
}

func TestRoundTrip(t *testing.T) {
	spaces := []struct {
		name string
		fn   func(terminal.RGB) terminal.RGB
	}{
		{"RYB", func(c terminal.RGB) terminal.RGB { return RYBToRGB(RGBToRYB(c)) }},
		{"CMY", func(c terminal.RGB) terminal.RGB { return CMYToRGB(RGBToCMY(c)) }},
		{"CMYK", func(c terminal.RGB) terminal.RGB { return CMYKToRGB(RGBToCMYK(c)) }},
		{"HSL", func(c terminal.RGB) terminal.RGB { return HSLToRGB(RGBToHSL(c)) }},
		{"HSV", func(c terminal.RGB) terminal.RGB { return HSVToRGB(RGBToHSV(c)) }},
		{"YIQ", func(c terminal.RGB) terminal.RGB { return YIQToRGB(RGBToYIQ(c)) }},
		{"YUV", func(c terminal.RGB) terminal.RGB { return YUVToRGB(RGBToYUV(c)) }},
		{"CMYK via CMY", func(c terminal.RGB) terminal.RGB { return CMYToRGB(RGBToCMYK(c).CMY()) }},
	}

	for _, sp := range spaces {
		t.Run(sp.name, func(t *testing.T) {
			failures := 0
			forEachGridColor(func(c terminal.RGB) {
				got := sp.fn(c)
				if !within1(c, got) {
					failures++
					if failures <= 5 {
						t.Errorf("Expected %v within 1, got %v", c, got)
					}
				}
			})
			if failures > 5 {
				t.Errorf("%d more failures suppressed", failures-5)
			}
		})
	}
}

func TestRYBGoldenVectors(t *testing.T) {
	tests := []struct {
		name string
		in   terminal.RGB
		want RYB
	}{
		{"Red", terminal.RGB{R: 255}, RYB{R: 255}},
		{"Green", terminal.RGB{G: 255}, RYB{Y: 255, B: 255}},
		{"Blue", terminal.RGB{B: 255}, RYB{B: 255}},
		{"Yellow", terminal.RGB{R: 255, G: 255}, RYB{Y: 255}},
		{"White", terminal.RGB{R: 255, G: 255, B: 255}, RYB{R: 255, Y: 255, B: 255}},
		{"Black", terminal.RGB{}, RYB{}},
		{"Gray", terminal.RGB{R: 128, G: 128, B: 128}, RYB{R: 128, Y: 128, B: 128}},
		{"Orange", terminal.RGB{R: 255, G: 128}, RYB{R: 253.0078125, Y: 255}},
		{"Spring green", terminal.RGB{G: 200, B: 100}, RYB{Y: 133.333333, B: 200}},
		{"Violet", terminal.RGB{R: 100, G: 50, B: 200}, RYB{R: 100, Y: 50, B: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToRYB(tt.in)
			if math.Abs(got.R-tt.want.R) > 1e-4 || math.Abs(got.Y-tt.want.Y) > 1e-4 || math.Abs(got.B-tt.want.B) > 1e-4 {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
			if back := RYBToRGB(got); back != tt.in {
				t.Errorf("Expected exact inverse %v, got %v", tt.in, back)
			}
		})
	}
}

func TestOrangeHSL(t *testing.T) {
	orange := terminal.RGB{R: 255, G: 128, B: 0}
	hsl := RGBToHSL(orange)

	if math.Abs(hsl.H-30) > 1 {
		t.Errorf("Expected hue 30±1, got %v", hsl.H)
	}
	if math.Abs(hsl.S-100) > 1 {
		t.Errorf("Expected saturation 100, got %v", hsl.S)
	}
	if math.Abs(hsl.L-50) > 1 {
		t.Errorf("Expected lightness 50, got %v", hsl.L)
	}
	if back := HSLToRGB(hsl); !within1(back, orange) {
		t.Errorf("Expected %v back, got %v", orange, back)
	}
}

func TestKnownValues(t *testing.T) {
	orange := terminal.RGB{R: 255, G: 128, B: 0}

	cmyk := RGBToCMYK(orange)
	if cmyk.C != 0 || cmyk.K != 0 || cmyk.Y != 100 || math.Abs(cmyk.M-49.8) > 0.1 {
		t.Errorf("Unexpected CMYK %+v", cmyk)
	}
	if black := RGBToCMYK(terminal.RGB{}); black != (CMYK{K: 100}) {
		t.Errorf("Expected pure key for black, got %+v", black)
	}

	hsv := RGBToHSV(terminal.RGB{B: 255})
	if math.Abs(hsv.H-240) > 1e-9 || hsv.S != 100 || hsv.V != 100 {
		t.Errorf("Expected hsv(240,100,100), got %+v", hsv)
	}

	yiq := RGBToYIQ(terminal.RGB{R: 255, G: 255, B: 255})
	if math.Abs(yiq.Y-1) > 1e-9 || math.Abs(yiq.I) > 1e-9 || math.Abs(yiq.Q) > 1e-9 {
		t.Errorf("Expected white to be pure luma, got %+v", yiq)
	}

	yuv := RGBToYUV(terminal.RGB{R: 255})
	if math.Abs(yuv.V-0.615) > 1e-9 {
		t.Errorf("Expected red V=0.615, got %v", yuv.V)
	}
}

func TestCMYKConversionsAgree(t *testing.T) {
	forEachGridColor(func(c terminal.RGB) {
		fromCMY := RGBToCMY(c)
		fromCMYK := RGBToCMYK(c).CMY()
		if math.Abs(fromCMY.C-fromCMYK.C) > 1e-9 || math.Abs(fromCMY.M-fromCMYK.M) > 1e-9 || math.Abs(fromCMY.Y-fromCMYK.Y) > 1e-9 {
			t.Fatalf("%v: CMY %+v disagrees with CMYK.CMY %+v", c, fromCMY, fromCMYK)
		}
		k := RGBToCMY(c).CMYK()
		if back := CMYKToRGB(k); !within1(back, c) {
			t.Fatalf("%v: CMY.CMYK round trip gave %v", c, back)
		}
	})
}

func TestReverseHue(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{30, 330},
		{180, 180},
		{359, 1},
	}
	for _, tt := range tests {
		if got := ReverseHue(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ReverseHue(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestConvertedValuesAreValid(t *testing.T) {
	forEachGridColor(func(c terminal.RGB) {
		s := Convert(c)
		for _, v := range []Value{s.RYB, s.CMY, s.CMYK, s.HSL, s.HSV, s.YIQ, s.YUV} {
			if err := v.Valid(); err != nil {
				t.Fatalf("%v: converted value invalid: %v", c, err)
			}
		}
	})
}

func TestValidRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"RYB over", RYB{R: 256}},
		{"CMY negative", CMY{C: -1}},
		{"CMYK key over", CMYK{K: 101}},
		{"HSL hue 360", HSL{H: 360}},
		{"HSV negative hue", HSV{H: -0.5}},
		{"HSL NaN", HSL{S: math.NaN()}},
		{"YIQ luma over", YIQ{Y: 1.1}},
		{"YIQ chroma over", YIQ{I: 0.7}},
		{"YUV chroma under", YUV{V: -0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.v.Valid(); !errors.Is(err, ErrComponentRange) {
				t.Errorf("Expected ErrComponentRange, got %v", err)
			}
		})
	}
}

func TestStringForms(t *testing.T) {
	s := Convert(terminal.RGB{R: 255, G: 128})
	if got := s.HSL.String(); got != "hsl(30°, 100%, 50%)" {
		t.Errorf("Unexpected HSL string %q", got)
	}
	if got := s.CMYK.String(); got != "cmyk(0%, 50%, 100%, 0%)" {
		t.Errorf("Unexpected CMYK string %q", got)
	}
}
