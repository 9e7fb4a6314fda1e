// Command extract decodes a BMP file and writes the extracted image payload
// as JSON to stdout. The input path defaults to img_orig.bmp, the file the
// proving harness historically fed it.
package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/ChickenLover/bmp"
	"github.com/ChickenLover/bmp/extract"
)

func main() {
	path := "img_orig.bmp"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	img, err := bmp.Open(path)
	if err != nil {
		slog.Error("could not decode image", "file", path, "error", err)
		os.Exit(1)
	}
	slog.Info("decoded", "file", path, "width", img.Width(), "height", img.Height())

	if err := json.NewEncoder(os.Stdout).Encode(extract.FromImage(img)); err != nil {
		slog.Error("could not encode payload", "error", err)
		os.Exit(1)
	}
}
