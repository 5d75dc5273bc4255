package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/components"
	"github.com/vango-dev/vrender/pkg/document"
	"github.com/vango-dev/vrender/pkg/render"
	"github.com/vango-dev/vrender/pkg/vdom"
)

func renderCmd() *cobra.Command {
	var (
		strict bool
		page   bool
		title  string
		escape bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a tree document to stdout",
		Long: `Render a YAML or JSON tree document and print the markup.

Use "-" to read the document from stdin. The built-in Markdown and
Include components are available.

Examples:
  vrender render pages/index.yaml
  vrender render --page --title "Home" pages/index.yaml
  cat tree.json | vrender render --strict -`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("L301").
					WithDetail("render needs exactly one document path.").
					WithExample("vrender render pages/index.yaml")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], renderOptions{
				strict: strict,
				page:   page,
				title:  title,
				escape: escape,
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Reject invalid children and conflicting children props")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the output in a full HTML document")
	cmd.Flags().StringVar(&title, "title", "", "Page title (with --page)")
	cmd.Flags().BoolVar(&escape, "escape-attributes", false, "HTML-escape attribute values")

	return cmd
}

type renderOptions struct {
	strict bool
	page   bool
	title  string
	escape bool
}

func runRender(ctx context.Context, stdin io.Reader, out io.Writer, file string, opts renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reg := document.NewRegistry()
	components.Register(reg)

	tree, err := loadDocument(stdin, file, reg)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.RendererConfig{
		Strict:           opts.strict,
		EscapeAttributes: opts.escape,
	})

	if opts.page {
		return renderer.RenderPage(ctx, out, render.PageData{
			Body:  tree,
			Title: opts.title,
		})
	}

	html, err := renderer.Render(ctx, tree, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, html)
	return err
}

func loadDocument(stdin io.Reader, file string, reg *document.Registry) (*vdom.Element, error) {
	if file != "-" {
		return document.LoadFile(file, reg)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	return document.Decode(data, reg)
}
