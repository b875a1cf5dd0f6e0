package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/esimov/colorwheel"
	"github.com/esimov/colorwheel/project"
	"github.com/esimov/colorwheel/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Supported files
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// result holds the outcome of importing a single image file.
type result struct {
	path    string
	project *project.Project
	err     error
}

// importFile creates a project from an image file, named after the file.
func importFile(ctx context.Context, m *project.Manager, path string) (*project.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src, err := colorwheel.LoadDataURL(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m.Create(ctx, name, src)
}

// importDir imports every supported image of the directory tree concurrently
// and reports each outcome as soon as it is available.
func importDir(ctx context.Context, m *project.Manager, dir string, workers int, report func(result)) error {
	// Limit the concurrently running workers to maxWorkers.
	if workers <= 0 || workers > maxWorkers {
		workers = maxWorkers
	}

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	paths, errc := walkDir(done, dir, validExtensions)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			consumer(ctx, m, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	for res := range ch {
		report(res)
	}
	return <-errc
}

// consumer reads the path names from the paths channel and imports each image.
func consumer(
	ctx context.Context,
	m *project.Manager,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for path := range paths {
		p, err := importFile(ctx, m, path)

		select {
		case <-done:
			return
		case res <- result{path: path, project: p, err: err}:
		}
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, strings.ToLower(filepath.Ext(d.Name()))) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
