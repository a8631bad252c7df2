package iconiq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/mapium/iconiq/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// spinner is the progress indicator shared by the batch execution paths.
var spinner *utils.Spinner

// descriptorExts are the file extensions accepted as icon descriptors.
var descriptorExts = []string{".yml", ".yaml"}

// outputExts are the file extensions the icon writer can encode to.
var outputExts = []string{".png", ".jpg", ".jpeg", ".bmp", ".svg"}

// Ops bundles the source and destination of a batch execution. Src may be
// a single descriptor file, a directory of descriptor files or the pipe
// name for stdin; Dst mirrors it on the output side.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about one processed descriptor.
type result struct {
	path string
	err  error
}

// Execute synthesizes the icons described by the source descriptor files.
// A directory source is walked recursively and its descriptors are
// processed concurrently by a bounded worker pool.
func (e *Engine) Execute(op *Ops) {
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ ICONIQ", utils.StatusMessage),
		utils.DecorateText("⇢ synthesizing the marker icons...", utils.DefaultMessage),
	)
	spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80)

	var (
		fs  os.FileInfo
		err error
	)

	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the source descriptor: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		var wg sync.WaitGroup
		// Read destination file or directory.
		if _, err := os.Stat(op.Dst); err != nil {
			if err = os.Mkdir(op.Dst, 0755); err != nil {
				log.Fatalf(
					utils.DecorateText("Unable to get dir stats: %v\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		// Process the descriptor files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, descriptorExts)

		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(e, op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		for res := range ch {
			op.printOpStatus(res.path, res.err)
		}

		if err = <-errc; err != nil {
			fmt.Fprintf(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		ext := filepath.Ext(op.Dst)
		if !utils.Contains(outputExts, ext) && op.Dst != op.PipeName {
			log.Fatalf(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
		}

		err = op.process(e, op.Src, op.Dst)
		op.printOpStatus(op.Dst, err)
	}

	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// consumer reads the path names from the paths channel and synthesizes the
// icon of each descriptor, writing the result next to the destination dir.
func (op *Ops) consumer(
	e *Engine,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		base := filepath.Base(src)
		out := base[:len(base)-len(filepath.Ext(base))] + ".png"
		dst := filepath.Join(dest, out)
		err := op.process(e, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process reads one descriptor file and writes the synthesized icon.
func (op *Ops) process(e *Engine, in, out string) error {
	// Start the progress indicator.
	spinner.Start()

	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ ICONIQ", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the marker icon has been synthesized successfully ✔", utils.SuccessMessage),
	)
	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ ICONIQ", utils.StatusMessage),
		utils.DecorateText("icon synthesis failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		spinner.StopMsg = errorMsg
		spinner.Stop()
		return err
	}

	// Capture CTRL-C signal and restore back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		if f, ok := dst.(*os.File); ok {
			os.Remove(f.Name())
		}
		os.Exit(1)
	}()

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()
	defer func() {
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = e.processDescriptor(src, dst, out, op.PipeName)
	if err != nil {
		// remove the generated icon file in case of an error
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			os.Remove(f.Name())
		}
		spinner.StopMsg = errorMsg
		spinner.Stop()
		return err
	}

	spinner.StopMsg = successMsg
	spinner.Stop()

	return nil
}

// processDescriptor decodes the descriptor, runs the synthesis and encodes
// the resulting icon. Piped output receives the raw icon string, which is
// what a caller embedding the icon into a marker object wants.
func (e *Engine) processDescriptor(src io.Reader, dst io.Writer, out, pipeName string) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("unable to read the descriptor: %v", err)
	}

	var info IconInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return fmt.Errorf("unable to decode the descriptor: %v", err)
	}
	if info.Kind == "" {
		return errors.New("the descriptor does not declare a shape kind")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := e.Synthesize(ctx, &info)
	if err != nil {
		return err
	}
	icon, err := res.Resolve(ctx)
	if err != nil {
		return err
	}

	if out == pipeName {
		_, err = io.WriteString(dst, icon)
		return err
	}
	return WriteIcon(dst, icon, filepath.Ext(out))
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)

	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %v", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create the destination file: %v", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the icon synthesis process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError synthesizing the icon: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	} else {
		if fname != op.PipeName {
			fmt.Fprintf(os.Stderr, "\nThe icon has been saved as: %s %s\n\n",
				utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
				utils.DefaultColor,
			)
		}
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if utils.Contains(srcExts, filepath.Ext(f.Name())) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}
