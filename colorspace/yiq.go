package colorspace

import (
	"fmt"

	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/vmath"
)

// YIQ is NTSC luma with in-phase and quadrature chroma, Y in [0,1]
type YIQ struct {
	Y, I, Q float64
}

// YUV is PAL luma with blue and red difference chroma, Y in [0,1]
type YUV struct {
	Y, U, V float64
}

// Broadcast matrices; inverses are derived so the round trip is exact before rounding
var (
	rgbToYIQ = vmath.Mat3{
		{0.299, 0.587, 0.114},
		{0.5959, -0.2746, -0.3213},
		{0.2115, -0.5227, 0.3112},
	}
	yiqToRGB = vmath.MustInverse(rgbToYIQ)

	rgbToYUV = vmath.Mat3{
		{0.299, 0.587, 0.114},
		{-0.14713, -0.28886, 0.436},
		{0.615, -0.51499, -0.10001},
	}
	yuvToRGB = vmath.MustInverse(rgbToYUV)
)

// Chroma limits reached by the primaries and their complements
const (
	yiqMaxI = 0.5959
	yiqMaxQ = 0.5227
	yuvMaxU = 0.436
	yuvMaxV = 0.615
)

func toVec(c terminal.RGB) vmath.Vec3F {
	r, g, b := unit(c)
	return vmath.Vec3F{X: r, Y: g, Z: b}
}

func fromVec(v vmath.Vec3F) terminal.RGB {
	return fromUnit(v.X, v.Y, v.Z)
}

func RGBToYIQ(c terminal.RGB) YIQ {
	v := vmath.M3MulVec(rgbToYIQ, toVec(c))
	return YIQ{Y: v.X, I: v.Y, Q: v.Z}
}

func YIQToRGB(c YIQ) terminal.RGB {
	return fromVec(vmath.M3MulVec(yiqToRGB, vmath.Vec3F{X: c.Y, Y: c.I, Z: c.Q}))
}

func RGBToYUV(c terminal.RGB) YUV {
	v := vmath.M3MulVec(rgbToYUV, toVec(c))
	return YUV{Y: v.X, U: v.Y, V: v.Z}
}

func YUVToRGB(c YUV) terminal.RGB {
	return fromVec(vmath.M3MulVec(yuvToRGB, vmath.Vec3F{X: c.Y, Y: c.U, Z: c.V}))
}

func (c YIQ) RGB() terminal.RGB { return YIQToRGB(c) }
func (c YUV) RGB() terminal.RGB { return YUVToRGB(c) }

func (c YIQ) Valid() error {
	if err := checkRange("yiq", "y", c.Y, 0, 1); err != nil {
		return err
	}
	if err := checkRange("yiq", "i", c.I, -yiqMaxI, yiqMaxI); err != nil {
		return err
	}
	return checkRange("yiq", "q", c.Q, -yiqMaxQ, yiqMaxQ)
}

func (c YUV) Valid() error {
	if err := checkRange("yuv", "y", c.Y, 0, 1); err != nil {
		return err
	}
	if err := checkRange("yuv", "u", c.U, -yuvMaxU, yuvMaxU); err != nil {
		return err
	}
	return checkRange("yuv", "v", c.V, -yuvMaxV, yuvMaxV)
}

func (c YIQ) String() string {
	return fmt.Sprintf("yiq(%.3f, %.3f, %.3f)", c.Y, c.I, c.Q)
}

func (c YUV) String() string {
	return fmt.Sprintf("yuv(%.3f, %.3f, %.3f)", c.Y, c.U, c.V)
}
