// Command rlconv encodes and decodes RL image files from the command line.
//
// Usage:
//
//	rlconv -d <input>                        RL → one PNG per frame
//	rlconv -e <out> <frame0.png> [frame1.png...]   PNG(s) → RL
//	rlconv info <input>                       Display RL container metadata
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sprocketlab/rlcodec"
	"github.com/sprocketlab/rlcodec/animation"
)

var summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "-d":
		err = runDecode(os.Args[2:])
	case "-e":
		err = runEncode(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "rlconv: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "rlconv: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  rlconv -d <input>                              RL -> one PNG per frame
  rlconv -e <out> <frame0.png> [<frame1.png>...]  PNG(s) -> RL
  rlconv info <input>                             Show RL container metadata

Run with -log <path> on any command to enable a rotating debug log.
`)
}

func setupLog(fs *flag.FlagSet) func() {
	logPath := fs.String("log", "", "write a rotating debug log to this path")
	return func() {
		if *logPath == "" {
			return
		}
		lj := &lumberjack.Logger{Filename: *logPath, MaxSize: 10, MaxBackups: 3}
		log.SetOutput(lj)
	}
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("-d", flag.ContinueOnError)
	enableLog := setupLog(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("-d: missing input file\nUsage: rlconv -d <input>")
	}
	enableLog()
	inputPath := fs.Arg(0)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	frames, err := animation.Frames(data)
	if err != nil {
		return fmt.Errorf("-d: %w", err)
	}

	for _, f := range frames {
		outPath := fmt.Sprintf("%s_%d.png", strings.TrimSuffix(inputPath, fileExt(inputPath)), f.Index)
		if err := writePNG(outPath, f.Image); err != nil {
			return fmt.Errorf("-d: frame %d: %w", f.Index, err)
		}
		log.Printf("decoded frame %d -> %s", f.Index, outPath)
	}

	fmt.Println(summaryStyle.Render(fmt.Sprintf("decoded %d frame(s) from %s", len(frames), inputPath)))
	return nil
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("-e", flag.ContinueOnError)
	enableLog := setupLog(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("-e: missing output path or frames\nUsage: rlconv -e <out> <frame0.png> [<frame1.png>...]")
	}
	enableLog()
	outPath := fs.Arg(0)
	framePaths := fs.Args()[1:]

	imgs := make([]image.Image, 0, len(framePaths))
	for _, p := range framePaths {
		img, err := readPNG(p)
		if err != nil {
			return fmt.Errorf("-e: %s: %w", p, err)
		}
		imgs = append(imgs, img)
	}

	b := imgs[0].Bounds()
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := animation.NewEncoder(out, b.Dx(), b.Dy(), nil)
	for i, img := range imgs {
		if err := enc.AddFrame(img); err != nil {
			return fmt.Errorf("-e: frame %d: %w", i, err)
		}
		log.Printf("queued frame %d from %s", i, framePaths[i])
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("-e: %w", err)
	}

	fi, _ := os.Stat(outPath)
	fmt.Println(summaryStyle.Render(fmt.Sprintf("encoded %d frame(s) -> %s (%d bytes)", len(imgs), outPath, fi.Size())))
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	enableLog := setupLog(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("info: missing input file\nUsage: rlconv info <input>")
	}
	enableLog()
	inputPath := fs.Arg(0)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	info, headerSize, err := rlcodec.GetInfo(data)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	fmt.Printf("File:        %s\n", inputPath)
	fmt.Printf("Version:     0x%04x\n", uint16(info.Version))
	fmt.Printf("Dimensions:  %d x %d\n", info.Width, info.Height)
	fmt.Printf("Frames:      %d\n", info.Frames)
	fmt.Printf("Savings:     %d\n", info.Savings)
	fmt.Printf("Header size: %d bytes\n", headerSize)
	return nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func fileExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}
