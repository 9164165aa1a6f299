// Command hfocr serves a small web UI and API that forwards page images to
// Hugging Face hosted OCR models. It also runs the same pipeline from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	if err := newRootCmd(os.Getenv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hfocr:", err)
		os.Exit(1)
	}
}
