package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra/doc"
	"github.com/ygelfand/studentctl/cmd"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	outDir := filepath.Join(cwd, "docs", "cli")
	manDir := filepath.Join(cwd, "docs", "man")
	for _, dir := range []string{outDir, manDir} {
		if err := os.RemoveAll(dir); err != nil {
			log.Fatal(err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal(err)
		}
	}

	root := cmd.GetRootCmd()
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, outDir); err != nil {
		log.Fatal(err)
	}

	header := &doc.GenManHeader{
		Title:   "STUDENTCTL",
		Section: "1",
		Source:  "studentctl",
	}
	if err := doc.GenManTree(root, header, manDir); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Successfully generated CLI documentation in %s and %s\n", outDir, manDir)
}
