// Command jobcard-extract processes scanned job-card PDFs and emits the
// extracted job number and operation list as JSON, optionally alongside the
// raw per-area data and annotated debug images.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/montimage/jobcard-extract/internal/annotate"
	"github.com/montimage/jobcard-extract/internal/barcode"
	"github.com/montimage/jobcard-extract/internal/ocr"
	"github.com/montimage/jobcard-extract/internal/pipeline"
	"github.com/montimage/jobcard-extract/internal/render"
	"github.com/montimage/jobcard-extract/internal/segment"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		outputDir   string
		languages   string
		noRaw       bool
		noAnnotated bool
		showVersion bool
	)

	flag.StringVar(&outputDir, "o", "", "directory to save output files (default: print result to stdout)")
	flag.StringVar(&languages, "l", "eng", "comma-separated Tesseract language codes for OCR")
	flag.BoolVar(&noRaw, "no-raw", false, "don't save raw extraction data")
	flag.BoolVar(&noAnnotated, "no-annotated", false, "don't save annotated debug images")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("jobcard-extract %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	if flag.NArg() == 0 {
		usage()
		fmt.Fprintln(os.Stderr, "\nError: at least one PDF file is required unless using -version.")
		os.Exit(1)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	p := &pipeline.Pipeline{
		Raster:     render.NewPDF(),
		Recognizer: ocr.NewRecognizer(strings.Split(languages, ",")...),
		Decoder:    barcode.NewDecoder(),
		Log:        log.Default(),
	}

	// One document's failure must not abort the batch.
	failed := false
	for _, path := range flag.Args() {
		log.Printf("processing %s", path)
		if err := processDocument(p, path, outputDir, !noRaw, !noAnnotated); err != nil {
			log.Printf("error processing %s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// processDocument runs the pipeline over one PDF and writes its artifacts.
func processDocument(p *pipeline.Pipeline, path, outputDir string, saveRaw, saveAnnotated bool) error {
	doc, err := p.Process(path)
	if err != nil {
		return err
	}

	if outputDir == "" {
		return printJSON(os.Stdout, doc.Result)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if saveRaw {
		rawPath := filepath.Join(outputDir, stem+"_raw.json")
		if err := writeJSON(rawPath, doc.Areas); err != nil {
			return err
		}
		log.Printf("raw extraction data saved to %s", rawPath)
	}

	cleanPath := filepath.Join(outputDir, stem+"_job_and_operations.json")
	if err := writeJSON(cleanPath, doc.Result); err != nil {
		return err
	}
	log.Printf("job and operations data saved to %s", cleanPath)

	if saveAnnotated {
		if err := writeAnnotated(doc, filepath.Join(outputDir, "annotated")); err != nil {
			return err
		}
	}

	return nil
}

// writeAnnotated renders and saves one debug image per page.
func writeAnnotated(doc *pipeline.Document, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create annotated directory: %w", err)
	}

	for _, page := range doc.Pages {
		var areas []segment.Area
		for _, a := range doc.Areas {
			if a.Page == page.Number {
				areas = append(areas, a)
			}
		}

		overlay := annotate.Page(page.Image, areas)
		out := filepath.Join(dir, fmt.Sprintf("page_%d_areas.jpg", page.Number))
		if err := imaging.Save(overlay, out); err != nil {
			return fmt.Errorf("failed to save annotated page %d: %w", page.Number, err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return printJSON(f, v)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "jobcard-extract - extract job number and operations from scanned job-card PDFs")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: jobcard-extract [options] file.pdf [file2.pdf ...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}
