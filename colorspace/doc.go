// Package colorspace converts between RGB and the auxiliary color spaces shown by the
// inspector: RYB, CMY, CMYK, HSL, HSV, YIQ and YUV.
//
// Every conversion routes through terminal.RGB. Conversions are pure and never fail;
// range checking is the job of Valid on each value type.
package colorspace
