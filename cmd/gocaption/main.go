// GoCaption — Stamp text on images.
//
// Usage:
//
//	gocaption <image> -t <text> [options]
//	gocaption batch --folder <dir> --text-file <file> [options]
//	gocaption auto --folder <dir> --img-source <dir> [options]
//	gocaption serve [--port 8080]
//	gocaption init | fonts | colors | positions
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/xob0t/GoCaption/clients/server"
	"github.com/xob0t/GoCaption/pkg/batch"
	"github.com/xob0t/GoCaption/pkg/caption"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "batch":
		err = runBatch(ctx, os.Args[2:])
	case "auto":
		err = runAuto(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "fonts":
		err = runFonts(os.Args[2:])
	case "colors":
		fmt.Print(caption.FormatColors())
	case "positions":
		fmt.Print(caption.FormatPositions())
	case "help", "-h", "--help":
		printUsage()
	default:
		// Default: single image mode.
		err = run(os.Args[1:])
	}
	if err != nil {
		fatal(err)
	}
}

// commonFlags are shared by every command that renders text.
type commonFlags struct {
	style    caption.StyleFile
	stylePth string
	fontsDir string
	verbose  bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	d := caption.DefaultStyle()
	fs.StringVar(&c.style.Font, "f", "", "Font name or .ttf/.otf path")
	fs.StringVar(&c.style.Font, "font", "", "Font name or .ttf/.otf path")
	fs.IntVar(&c.style.FontSize, "s", d.FontSize, "Font size in pixels")
	fs.IntVar(&c.style.FontSize, "size", d.FontSize, "Font size in pixels")
	fs.StringVar(&c.style.Color, "c", d.Color, "Text color")
	fs.StringVar(&c.style.Color, "color", d.Color, "Text color")
	fs.StringVar(&c.style.Position, "p", "", "Text position (default: from file name, else top-left)")
	fs.StringVar(&c.style.Position, "position", "", "Text position (default: from file name, else top-left)")
	fs.StringVar(&c.style.OutlineColor, "outline-color", "", "Outline color (default: none)")
	fs.IntVar(&c.style.OutlineWidth, "outline-width", 0, "Outline width in pixels")
	fs.StringVar(&c.stylePth, "style", "", "Style JSON file; flags given explicitly override it")
	fs.StringVar(&c.fontsDir, "fonts-dir", "fonts", "Directory searched first for fonts")
	fs.BoolVar(&c.verbose, "v", false, "Verbose logging")
	fs.BoolVar(&c.verbose, "verbose", false, "Verbose logging")
}

// params layers defaults, the style file and explicitly set flags.
func (c *commonFlags) params(fs *flag.FlagSet) (caption.Params, error) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var explicit caption.StyleFile
	if set["f"] || set["font"] {
		explicit.Font = c.style.Font
	}
	if set["s"] || set["size"] {
		explicit.FontSize = c.style.FontSize
	}
	if set["c"] || set["color"] {
		explicit.Color = c.style.Color
	}
	if set["p"] || set["position"] {
		explicit.Position = c.style.Position
	}
	if set["outline-color"] {
		explicit.OutlineColor = c.style.OutlineColor
	}
	if set["outline-width"] {
		explicit.OutlineWidth = c.style.OutlineWidth
	}

	var file caption.StyleFile
	if c.stylePth != "" {
		var err error
		file, err = caption.LoadStyle(c.stylePth)
		if err != nil {
			return caption.Params{}, err
		}
	}

	merged := caption.MergeStyles(caption.DefaultStyle(), file, explicit)
	for _, w := range caption.ValidateStyle(merged) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return merged.Params(), nil
}

func (c *commonFlags) setup(level slog.Level) *caption.Captioner {
	if c.verbose {
		level = slog.LevelDebug
	}
	caption.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := caption.DefaultFontConfig()
	cfg.Dir = c.fontsDir
	return caption.NewCaptioner(caption.NewFontProvider(cfg))
}

func run(args []string) error {
	fs := flag.NewFlagSet("gocaption", flag.ExitOnError)

	var (
		cf     commonFlags
		text   string
		output string
	)
	cf.register(fs)
	fs.StringVar(&text, "t", "", "Text to add (use \\n for line breaks in shells that need it)")
	fs.StringVar(&text, "text", "", "Text to add")
	fs.StringVar(&output, "o", "", "Output image path (default: <name>_with_text<ext>)")
	fs.StringVar(&output, "output", "", "Output image path (default: <name>_with_text<ext>)")
	fs.Usage = printUsage

	// The image may come before or after the flags.
	var image string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		image, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if image == "" {
		image = fs.Arg(0)
	}

	if image == "" || text == "" {
		printUsage()
		return fmt.Errorf("an image and --text are required")
	}
	if _, err := os.Stat(image); err != nil {
		return fmt.Errorf("image not found: %s", image)
	}

	params, err := cf.params(fs)
	if err != nil {
		return err
	}
	c := cf.setup(slog.LevelWarn)

	out, err := c.AddText(caption.Request{
		ImagePath:  image,
		Text:       strings.ReplaceAll(text, `\n`, "\n"),
		OutputPath: output,
		Params:     params,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", out)
	return nil
}

func runBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)

	var (
		cf   commonFlags
		opts batch.Options
	)
	cf.register(fs)
	fs.StringVar(&opts.Folder, "folder", "", "Folder with source images")
	fs.StringVar(&opts.TextFile, "text-file", "", "Text file, paragraphs separated by a blank line")
	fs.StringVar(&opts.OutputFolder, "output-folder", "", "Output folder (default: <folder>/output)")
	fs.StringVar(&opts.Encoding, "encoding", "", "Text file encoding, e.g. gbk (default: utf-8)")
	fs.IntVar(&opts.Workers, "workers", 0, "Images processed in parallel (default: CPU count)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.Folder == "" || opts.TextFile == "" {
		return fmt.Errorf("batch needs --folder and --text-file, e.g. gocaption batch --folder ./images --text-file ./text.txt")
	}
	if _, err := os.Stat(opts.Folder); err != nil {
		return fmt.Errorf("image folder not found: %s", opts.Folder)
	}
	if _, err := os.Stat(opts.TextFile); err != nil {
		return fmt.Errorf("text file not found: %s", opts.TextFile)
	}

	params, err := cf.params(fs)
	if err != nil {
		return err
	}
	opts.Params = params
	c := cf.setup(slog.LevelWarn)

	fmt.Printf("Batch: %s + %s\n", opts.Folder, opts.TextFile)
	rep, err := batch.Batch(ctx, c, opts)
	if rep != nil {
		printReport(rep)
	}
	return err
}

func runAuto(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("auto", flag.ExitOnError)

	var (
		cf   commonFlags
		opts batch.AutoOptions
	)
	cf.register(fs)
	fs.StringVar(&opts.Folder, "folder", "", "Folder containing 0.txt")
	fs.StringVar(&opts.ImageSource, "img-source", "img", "Folder to pick images from")
	fs.IntVar(&opts.Count, "count", batch.DefaultAutoCount, "Number of images to pick")
	fs.StringVar(&opts.OutputFolder, "output-folder", "", "Output folder (default: <folder>/output)")
	fs.StringVar(&opts.Encoding, "encoding", "", "0.txt encoding (default: utf-8)")
	fs.IntVar(&opts.Workers, "workers", 0, "Images processed in parallel (default: CPU count)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.Folder == "" {
		return fmt.Errorf("auto needs --folder")
	}
	if _, err := os.Stat(opts.Folder); err != nil {
		return fmt.Errorf("folder not found: %s", opts.Folder)
	}

	params, err := cf.params(fs)
	if err != nil {
		return err
	}
	opts.Params = params
	c := cf.setup(slog.LevelWarn)

	fmt.Printf("Auto: %s (images from %s)\n", opts.Folder, opts.ImageSource)
	rep, err := batch.Auto(ctx, c, opts)
	if rep != nil {
		printReport(rep)
	}
	return err
}

func printReport(rep *batch.Report) {
	fmt.Printf("Processed: %d", rep.Processed)
	if rep.Failed > 0 {
		fmt.Printf(", failed: %d", rep.Failed)
	}
	fmt.Printf("\nOutput folder: %s\n", rep.OutputFolder)
	for _, w := range rep.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		port     string
		fontsDir string
		verbose  bool
	)
	fs.StringVar(&port, "port", "8080", "Listen port")
	fs.StringVar(&port, "p", "8080", "Listen port")
	fs.StringVar(&fontsDir, "fonts-dir", "fonts", "Directory searched first for fonts")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cf := commonFlags{fontsDir: fontsDir, verbose: verbose}
	c := cf.setup(slog.LevelInfo)
	return server.RunServe(ctx, c, ":"+port)
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var styleOut, fontsDir string
	fs.StringVar(&styleOut, "style", "style.json", "Output path for the sample style")
	fs.StringVar(&fontsDir, "fonts-dir", "fonts", "Fonts directory to create")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.WriteFile(styleOut, []byte(caption.ExampleStyleJSON()), 0644); err != nil {
		return fmt.Errorf("write style: %w", err)
	}
	if err := os.MkdirAll(fontsDir, 0755); err != nil {
		return fmt.Errorf("create fonts dir: %w", err)
	}

	fmt.Printf("Created: %s, %s/\n", styleOut, fontsDir)
	fmt.Println("Put .ttf/.otf files in the fonts directory, then run:")
	fmt.Printf("    gocaption photo.jpg -t \"Hello\" --style %s\n", styleOut)
	return nil
}

func runFonts(args []string) error {
	fs := flag.NewFlagSet("fonts", flag.ExitOnError)
	var fontsDir string
	fs.StringVar(&fontsDir, "fonts-dir", "fonts", "Directory searched first for fonts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := caption.DefaultFontConfig()
	cfg.Dir = fontsDir
	fp := caption.NewFontProvider(cfg)
	fmt.Print(caption.FormatFonts(fp.Available(), fontsDir))
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`GoCaption — Stamp text on images

USAGE:
    gocaption <image> -t <text> [options]
    gocaption batch --folder <dir> --text-file <file> [options]
    gocaption auto --folder <dir> --img-source <dir> [options]
    gocaption serve [--port 8080]
    gocaption init [--style style.json]
    gocaption fonts | colors | positions

TEXT OPTIONS:
    -t, --text <text>          Text to add; \n starts a new line
    -o, --output <path>        Output image (default: <name>_with_text<ext>)
    -f, --font <name>          Font name or .ttf/.otf path (default: goregular)
    -s, --size <px>            Font size (default: 40; a size in the file name wins)
    -c, --color <color>        Text color (default: black)
    -p, --position <pos>       Position (default: from file name, else top-left)
    --outline-color <color>    Outline color
    --outline-width <px>       Outline width (default: 0)
    --style <file>             Style JSON; explicit flags override it
    --fonts-dir <dir>          Fonts directory (default: fonts)
    -v, --verbose              Debug logging

BATCH:
    --folder <dir>             Source images, ordered by the first number in the name
    --text-file <file>         Paragraphs separated by a blank line
    --output-folder <dir>      Default: <folder>/output
    --encoding <name>          Text encoding, e.g. gbk (default: utf-8)
    --workers <n>              Parallel images (default: CPU count)

AUTO:
    --folder <dir>             Folder with 0.txt
    --img-source <dir>         Images to sample from
    --count <n>                Images to sample (default: 10)

FILE NAME HINTS:
    3-100x200-60.jpg           position 100,200, font size 60
    4-centerxvcenter.png       centered both ways

EXAMPLES:
    gocaption photo.jpg -t "Hello\nWorld" -c white --outline-color black --outline-width 2
    gocaption photo.jpg -t "Caption" -p bottom-center -s 60
    gocaption batch --folder ./images --text-file ./text.txt -c red
    gocaption colors
`)
}
