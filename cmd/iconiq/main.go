package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/mapium/iconiq"
	"github.com/mapium/iconiq/render"
	"github.com/mapium/iconiq/utils"
)

const HelpBanner = `
┬┌─┐┌─┐┌┐┌┬┌─┐
││  │ ││││││─┼┐
┴└─┘└─┘┘└┘┴└─┘└

Map marker icon synthesis library.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source descriptor file or directory")
	destination = flag.String("out", pipeName, "Destination")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of descriptors to process concurrently")
	minifySVG   = flag.Bool("minify", false, "Minify the SVG output of the vector shapes")
	scene       = flag.Bool("scene", false, "Treat the input as a scene file and render its markers over the backdrop")
	preview     = flag.Bool("preview", false, "Show the generated image in a window")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	engine := iconiq.NewEngine(iconiq.NewRasterHost())
	engine.Minify = *minifySVG

	if *scene {
		renderScene(engine)
		return
	}

	op := &iconiq.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}
	engine.Execute(op)

	if *preview && *destination != pipeName {
		previewFile(*destination)
	}
}

// renderScene reads a scene file, stamps its markers over the backdrop and
// encodes the composition as PNG.
func renderScene(engine *iconiq.Engine) {
	var (
		in  io.Reader
		err error
	)

	if *source == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			log.Fatal(utils.DecorateText("`-` should be used with a pipe for stdin", utils.ErrorMessage))
		}
		in = os.Stdin
	} else {
		f, err := os.Open(*source)
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the scene file: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to read the scene file: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	var sc render.Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to decode the scene file: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	img, err := render.New(engine).RenderScene(ctx, &sc)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError rendering the scene: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}

	var out io.Writer
	if *destination == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatal(utils.DecorateText("`-` should be used with a pipe for stdout", utils.ErrorMessage))
		}
		out = os.Stdout
	} else {
		f, err := os.OpenFile(*destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Unable to create the destination file: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		defer f.Close()
		out = f
	}

	if err := png.Encode(out, img); err != nil {
		log.Fatalf(
			utils.DecorateText("Unable to encode the rendered scene: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	if *preview {
		iconiq.ShowPreview(img, "Rendered scene")
	}
}

// previewFile opens the generated raster output in a window.
func previewFile(path string) {
	if filepath.Ext(path) == ".svg" {
		fmt.Fprintln(os.Stderr, utils.DecorateText("Preview is not available for SVG output!", utils.ErrorMessage))
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Unable to open the generated icon: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Unable to decode the generated icon: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	iconiq.ShowPreview(img, filepath.Base(path))
}
