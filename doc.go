/*
Package colorwheel is a photo recoloring engine: it decodes a source photo into an editable raster,
stamps blended paint strokes onto it from mouse or touch input and keeps a linear undo/redo history
of full raster snapshots.

The package also provides a command line interface and an interactive editor window.
To check the supported commands type:

	$ colorwheel --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"log"

		"github.com/esimov/colorwheel"
		"github.com/esimov/colorwheel/project"
		"github.com/esimov/colorwheel/store/memory"
	)

	func main() {
		ctx := context.Background()
		projects := project.NewManager(memory.NewStore())

		p, err := projects.Create(ctx, "My car", dataURL)
		if err != nil {
			log.Fatal(err)
		}

		s := colorwheel.NewSession(p, projects)
		if err := s.Load(ctx); err != nil {
			log.Fatal(err)
		}

		s.Handle(colorwheel.Event{Kind: colorwheel.Down, Position: colorwheel.Point{X: 50, Y: 50}})
		s.Handle(colorwheel.Event{Kind: colorwheel.Up})

		if _, err := s.Save(ctx); err != nil {
			log.Fatal(err)
		}
	}
*/
package colorwheel
