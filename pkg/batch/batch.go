// Package batch pairs folders of images with paragraphs of text and places
// each paragraph on its image, several images at a time.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/xob0t/GoCaption/pkg/caption"
	"github.com/xob0t/GoCaption/pkg/imageio"
)

// Placer places one caption. *caption.Captioner satisfies it.
type Placer interface {
	AddText(req caption.Request) (string, error)
}

// Job is one image/paragraph pairing.
type Job struct {
	Image  string
	Text   string
	Output string
}

// Report summarizes a run.
type Report struct {
	Processed        int
	Failed           int
	Outputs          []string // in job order; empty string for failed jobs
	UnusedParagraphs int
	UnusedImages     int
	OutputFolder     string
}

// Warnings describes leftovers on either side of the pairing.
func (r *Report) Warnings() []string {
	var w []string
	if r.UnusedParagraphs > 0 {
		w = append(w, fmt.Sprintf("%d paragraph(s) had no image", r.UnusedParagraphs))
	}
	if r.UnusedImages > 0 {
		w = append(w, fmt.Sprintf("%d image(s) had no paragraph", r.UnusedImages))
	}
	return w
}

// Pair matches images and paragraphs in order, up to the shorter list.
func Pair(images, paragraphs []string, outDir string) []Job {
	n := min(len(images), len(paragraphs))
	jobs := make([]Job, n)
	for i := range n {
		jobs[i] = Job{
			Image:  images[i],
			Text:   paragraphs[i],
			Output: imageio.BatchOutputPath(outDir, images[i]),
		}
	}
	return jobs
}

// Run executes jobs with at most workers in flight (0 means GOMAXPROCS).
// A failed job is counted and logged; it does not stop the others.
// Cancelling ctx stops jobs that have not started yet.
func Run(ctx context.Context, p Placer, jobs []Job, params caption.Params, workers int) Report {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rep := Report{Outputs: make([]string, len(jobs))}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := p.AddText(caption.Request{
				ImagePath:  job.Image,
				Text:       job.Text,
				OutputPath: job.Output,
				Params:     params,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failed++
				caption.Logger().Warn("batch: job failed", "image", job.Image, "err", err)
				return nil
			}
			rep.Processed++
			rep.Outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		caption.Logger().Warn("batch: stopped", "err", err)
	}
	return rep
}

// Options configures Batch.
type Options struct {
	Folder       string // images
	TextFile     string // paragraphs
	Encoding     string // text file encoding, "" for UTF-8
	OutputFolder string // "" means <Folder>/output
	Workers      int
	Params       caption.Params
}

// Batch pairs the images in opts.Folder with the paragraphs in
// opts.TextFile and captions each pair.
func Batch(ctx context.Context, p Placer, opts Options) (*Report, error) {
	paragraphs, err := ReadParagraphs(opts.TextFile, opts.Encoding)
	if err != nil {
		return nil, err
	}
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("no paragraphs in %s", opts.TextFile)
	}

	images, err := ListImages(opts.Folder)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no images in %s", opts.Folder)
	}

	return runPairs(ctx, p, images, paragraphs, outputFolder(opts.OutputFolder, opts.Folder), opts.Params, opts.Workers)
}

// DefaultAutoCount is how many images Auto samples.
const DefaultAutoCount = 10

// AutoOptions configures Auto.
type AutoOptions struct {
	Folder       string // holds 0.txt; outputs go to <Folder>/output by default
	ImageSource  string // folder to sample images from
	Count        int    // 0 means DefaultAutoCount
	Encoding     string
	OutputFolder string
	Workers      int
	Params       caption.Params
	Rand         *rand.Rand // nil uses the global source
}

// Auto reads paragraphs from <Folder>/0.txt and places them on Count images
// picked at random from ImageSource.
func Auto(ctx context.Context, p Placer, opts AutoOptions) (*Report, error) {
	count := opts.Count
	if count <= 0 {
		count = DefaultAutoCount
	}

	textFile := filepath.Join(opts.Folder, "0.txt")
	if _, err := os.Stat(textFile); err != nil {
		return nil, fmt.Errorf("0.txt not found in %s: %w", opts.Folder, err)
	}

	paragraphs, err := ReadParagraphs(textFile, opts.Encoding)
	if err != nil {
		return nil, err
	}
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("no paragraphs in %s", textFile)
	}

	pool, err := scanImages(opts.ImageSource)
	if err != nil {
		return nil, err
	}
	if len(pool) < count {
		return nil, fmt.Errorf("image source %s has %d images, need at least %d", opts.ImageSource, len(pool), count)
	}

	images := sample(pool, count, opts.Rand)
	caption.Logger().Info("batch: sampled images", "picked", count, "from", len(pool))

	return runPairs(ctx, p, images, paragraphs, outputFolder(opts.OutputFolder, opts.Folder), opts.Params, opts.Workers)
}

func runPairs(ctx context.Context, p Placer, images, paragraphs []string, outDir string, params caption.Params, workers int) (*Report, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}

	jobs := Pair(images, paragraphs, outDir)
	rep := Run(ctx, p, jobs, params, workers)
	rep.OutputFolder = outDir
	rep.UnusedParagraphs = max(len(paragraphs)-len(images), 0)
	rep.UnusedImages = max(len(images)-len(paragraphs), 0)
	return &rep, ctx.Err()
}

func outputFolder(out, folder string) string {
	if out != "" {
		return out
	}
	return filepath.Join(folder, "output")
}

// sample picks n distinct entries of pool in random order.
func sample(pool []string, n int, r *rand.Rand) []string {
	perm := rand.Perm
	if r != nil {
		perm = r.Perm
	}
	idx := perm(len(pool))
	out := make([]string, n)
	for i := range n {
		out[i] = pool[idx[i]]
	}
	return out
}
