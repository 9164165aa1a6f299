package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hfocr/internal/inference"
)

func newOCRCmd(o *options) *cobra.Command {
	var (
		page       int
		preprocess bool
	)
	cmd := &cobra.Command{
		Use:   "ocr <file>",
		Short: "Extract text from an image or PDF and print it",
		Example: "  hfocr ocr scan.pdf --token $HF_TOKEN\n" +
			"  hfocr ocr receipt.jpg --endpoint \"Microsoft TrOCR\" --preprocess\n" +
			"  hfocr ocr book.pdf --page 3",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOCR(cmd, o, args[0], page, preprocess)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Process only this 1-based page")
	cmd.Flags().BoolVar(&preprocess, "preprocess", false, "Convert to grayscale and downscale before sending")
	return cmd
}

func runOCR(cmd *cobra.Command, o *options, path string, page int, preprocess bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	mgr, _, err := o.build()
	if err != nil {
		return err
	}
	id, sess, err := mgr.Configure("", o.sessionRequest())
	if err != nil {
		return err
	}
	if !sess.HasToken {
		return &inference.Error{Kind: inference.KindMissingCredential}
	}
	ctx := cmd.Context()
	doc, err := mgr.Upload(ctx, id, filepath.Base(path), data)
	if err != nil {
		return err
	}
	first, last := 1, doc.Pages
	if page != 0 {
		if page < 1 || page > doc.Pages {
			return fmt.Errorf("page %d out of range: document has %d pages", page, doc.Pages)
		}
		first, last = page, page
	}
	for n := first; n <= last; n++ {
		res, err := mgr.ProcessPage(ctx, id, doc.ID, n, preprocess)
		if err != nil {
			return withHint(fmt.Errorf("page %d: %w", n, err))
		}
		o.log.Info().Int("page", n).Int("of", doc.Pages).Int64("ms", res.DurationMS).Msg("page done")
	}
	text, err := mgr.Text(id, doc.ID)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}

// withHint appends the suggested action of an inference error to its message.
func withHint(err error) error {
	var h interface{ Hint() string }
	if !errors.As(err, &h) || h.Hint() == "" {
		return err
	}
	return fmt.Errorf("%w (%s)", err, h.Hint())
}
