/*
Package iconiq is a map marker icon synthesis library. It turns a plain icon
descriptor into a portable image string, either a PNG data URI or inline SVG
markup, ready to be handed to a map SDK marker object.

Six shape kinds are supported: polygonal canvas paths, dynamic SVG circles,
measured text runs and three image derived shapes which rotate, circular-mask
or scale a loaded source image. The canvas shapes resolve synchronously; the
image derived ones resolve through a deferred value once the source image
load completes, and callers branch on which of the two they received:

	package main

	import (
		"context"
		"fmt"

		"github.com/mapium/iconiq"
	)

	func main() {
		engine := iconiq.NewEngine(iconiq.NewRasterHost())

		info := &iconiq.IconInfo{
			Kind:  iconiq.ShapeDynamicCircle,
			ID:    "poi-blue-24",
			Size:  &iconiq.ShapeSize{Width: 24, Height: 24},
			Color: "#1e90ff",
		}

		res, err := engine.Synthesize(context.Background(), info)
		if err != nil {
			fmt.Printf("Error synthesizing the icon: %s", err.Error())
			return
		}
		if icon, ok := res.Immediate(); ok {
			fmt.Println(icon)
		}
	}

Synthesized icons are memoized by the descriptor ID, so a map placing
thousands of markers sharing a handful of icon configurations pays for each
configuration once.

The package also provides a command line interface which reads YAML icon
descriptors and writes encoded images. To check the supported commands type:

	$ iconiq --help
*/
package iconiq
