package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-remoteform/pkg/formdoc"
	"github.com/goliatone/go-remoteform/pkg/openapi"
	"github.com/goliatone/go-remoteform/pkg/remoteform"
)

func main() {
	source := flag.String("source", "schema.json", "OpenAPI document path")
	opID := flag.String("operation", "", "operation ID to export")
	docs := flag.String("formdoc", "", "directory of fieldset/layout declarations (optional)")
	exclude := flag.String("exclude", "", "comma-separated field names to exclude")
	readonly := flag.String("readonly", "", "comma-separated field names to mark readonly")
	ordering := flag.String("ordering", "", "comma-separated field order override")
	output := flag.String("output", "", "output file (stdout if empty)")
	verbose := flag.Bool("verbose", false, "log export warnings to stderr")
	flag.Parse()

	if strings.TrimSpace(*opID) == "" {
		log.Fatal("operation is required")
	}

	ctx := context.Background()

	logger := zap.NewNop()
	if *verbose {
		development, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to initialise logger: %v", err)
		}
		defer development.Sync()
		logger = development
	}

	builder := openapi.NewBuilder(openapi.WithLogger(logger))
	definition, err := builder.DefinitionFromFile(ctx, *source, *opID)
	if err != nil {
		log.Fatalf("Failed to build form definition: %v", err)
	}

	if *docs != "" {
		store, err := formdoc.LoadFS(os.DirFS(*docs))
		if err != nil {
			log.Fatalf("Failed to load form documents: %v", err)
		}
		store.Apply(*opID, definition)
	}

	options := []remoteform.Option{remoteform.WithLogger(logger)}
	if names := splitList(*exclude); len(names) > 0 {
		options = append(options, remoteform.WithExclude(names...))
	}
	if names := splitList(*readonly); len(names) > 0 {
		options = append(options, remoteform.WithReadonly(names...))
	}
	if names := splitList(*ordering); len(names) > 0 {
		options = append(options, remoteform.WithOrdering(names...))
	}

	rf, err := remoteform.New(definition, options...)
	if err != nil {
		log.Fatalf("Failed to wrap form: %v", err)
	}

	export, err := rf.Export()
	if err != nil {
		log.Fatalf("Failed to export form: %v", err)
	}

	payload, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode export: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
