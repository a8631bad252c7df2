// Package compose implements the Porter-Duff alpha composition operators
// used to stamp synthesized marker icons onto a backdrop image.
package compose

import (
	"image"
	"image/color"

	"github.com/mapium/iconiq/utils"
)

// The supported composition operators.
const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstOut  = "dst_out"
	Xor     = "xor"
)

// Composite applies one of the supported composition operators when a
// source image is stamped over a destination region.
type Composite struct {
	current string
	ops     []string
}

// InitOp instantiates a compositor defaulting to the src_over operator,
// which is the one an icon stamped on a map tile almost always wants.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Copy,
			SrcOver,
			DstOver,
			SrcIn,
			DstOut,
			Xor,
		},
	}
}

// Set activates the given composition operator. Unknown operators leave the
// current one in place.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the active composition operator.
func (op *Composite) Get() string {
	return op.current
}

// Stamp composes src over dst with its top-left corner placed at pt,
// clipping the stamped region to the destination bounds.
func (op *Composite) Stamp(dst *image.NRGBA, src image.Image, pt image.Point) {
	sb := src.Bounds()
	region := image.Rect(pt.X, pt.Y, pt.X+sb.Dx(), pt.Y+sb.Dy()).Intersect(dst.Bounds())
	if region.Empty() {
		return
	}

	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			sx := sb.Min.X + (x - pt.X)
			sy := sb.Min.Y + (y - pt.Y)

			s := color.NRGBAModel.Convert(src.At(sx, sy)).(color.NRGBA)
			d := dst.NRGBAAt(x, y)

			rsn := float64(s.R) / 255
			gsn := float64(s.G) / 255
			bsn := float64(s.B) / 255
			asn := float64(s.A) / 255

			rbn := float64(d.R) / 255
			gbn := float64(d.G) / 255
			bbn := float64(d.B) / 255
			abn := float64(d.A) / 255

			var rn, gn, bn, an float64

			// applying the alpha composition formula
			switch op.current {
			case Copy:
				rn, gn, bn, an = asn*rsn, asn*gsn, asn*bsn, asn
			case SrcOver:
				rn = asn*rsn + abn*rbn*(1-asn)
				gn = asn*gsn + abn*gbn*(1-asn)
				bn = asn*bsn + abn*bbn*(1-asn)
				an = asn + abn*(1-asn)
			case DstOver:
				rn = asn*rsn*(1-abn) + abn*rbn
				gn = asn*gsn*(1-abn) + abn*gbn
				bn = asn*bsn*(1-abn) + abn*bbn
				an = asn*(1-abn) + abn
			case SrcIn:
				rn = asn * rsn * abn
				gn = asn * gsn * abn
				bn = asn * bsn * abn
				an = asn * abn
			case DstOut:
				rn = abn * rbn * (1 - asn)
				gn = abn * gbn * (1 - asn)
				bn = abn * bbn * (1 - asn)
				an = abn * (1 - asn)
			case Xor:
				rn = asn*rsn*(1-abn) + abn*rbn*(1-asn)
				gn = asn*gsn*(1-abn) + abn*gbn*(1-asn)
				bn = asn*bsn*(1-abn) + abn*bbn*(1-asn)
				an = asn*(1-abn) + abn*(1-asn)
			}

			// back to straight alpha
			if an > 0 {
				rn, gn, bn = rn/an, gn/an, bn/an
			}

			dst.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rn*255 + 0.5),
				G: uint8(gn*255 + 0.5),
				B: uint8(bn*255 + 0.5),
				A: uint8(an*255 + 0.5),
			})
		}
	}
}
