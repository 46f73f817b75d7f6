package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/goliatone/go-microsite"
	"github.com/goliatone/go-microsite/internal/builder"
	"github.com/goliatone/go-microsite/internal/reorder"
	"github.com/goliatone/go-microsite/website"
)

var pngPixel = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00,
}

func main() {
	configPath := flag.String("config", "", "optional YAML configuration file")
	addr := flag.String("serve", "", "serve the JSON API on this address after the demo")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	module, err := microsite.New(cfg)
	if err != nil {
		log.Fatalf("initialise module: %v", err)
	}
	defer module.Close()

	ctx := context.Background()
	if err := runDemo(ctx, module); err != nil {
		log.Fatalf("demo: %v", err)
	}

	if *addr == "" {
		return
	}
	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		log.Fatalf("register routes: %v", err)
	}
	server := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	fmt.Printf("serving website API on %s\n", *addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("serve: %v", err)
	}
}

func runDemo(ctx context.Context, module *microsite.Module) error {
	const ownerID, weddingID = "demo-owner", "demo-wedding"

	profile := microsite.Profile{
		PartnerOne:     "Ana",
		PartnerTwo:     "Luis",
		WeddingDate:    "2025-09-20",
		CeremonyVenue:  "Santa Maria Chapel",
		ReceptionVenue: "Hacienda del Sol",
		Story:          "We met at a **bookshop** in Seville.",
	}
	draft, err := module.Generate(ctx, ownerID, weddingID, profile, false)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	fmt.Printf("draft %s: %q with %d sections\n", draft.Meta.ID, draft.Meta.Title, len(draft.Sections))

	shell := module.OpenBuilder(draft, builder.WithChangeListener(func(doc website.Document, revision uint64) {
		fmt.Printf("  revision %d, %d sections\n", revision, len(doc.Sections))
	}))
	shell.ToggleEdit()

	page := shell.Render()
	if hero, ok := page.Section(draft.SortedSections()[0].ID); ok {
		hero.Edit("subtitle", "Save the date")
	}
	if err := shell.Colors().ApplyPreset("elegant"); err != nil {
		return fmt.Errorf("apply preset: %w", err)
	}

	images := module.Images(shell)
	report := images.Upload(ctx, []builder.UploadFile{{Name: "couple.png", ContentType: "image/png", Data: pngPixel}})
	if err := report.Err(); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if len(report.Uploaded) > 0 {
		if err := images.AttachToSection(shell.Document().SortedSections()[0].ID, report.Uploaded[0]); err != nil {
			return fmt.Errorf("attach image: %w", err)
		}
	}
	shell.Sections().Reorder(reorder.To(0, 1))

	if err := module.Save(ctx, ownerID, weddingID, shell.Document()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	result, err := module.Publish(ctx, ownerID, weddingID)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("published:\n%s\n", out)
	return nil
}
