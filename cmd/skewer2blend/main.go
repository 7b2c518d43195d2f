// skewer2blend converts a Skewer scene description into a Blender build
// script. The generated script is run with
//
//	blender --background --python <script>
//
// which rebuilds the scene with converted coordinates, materials, camera and
// transforms and saves it as a .blend file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/skewer-project/skewer2blend/internal/blend"
	"github.com/skewer-project/skewer2blend/internal/config"
	"github.com/skewer-project/skewer2blend/internal/convert"
	"github.com/skewer-project/skewer2blend/internal/objfile"
	"github.com/skewer-project/skewer2blend/internal/preview"
	"github.com/skewer-project/skewer2blend/internal/scenedesc"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	scene := flag.String("scene", "", "Scene description file (.json, .yaml)")
	script := flag.String("script", "", "Output Blender Python script (default: <scene>.py)")
	blendOut := flag.String("blend", "", "Blend file path the script saves to (default: <scene>.blend)")
	dump := flag.String("dump", "", "Also write the instruction list as JSON to this path")
	previewOut := flag.String("preview", "", "Also write a top-view layout preview WebP to this path")
	previewSize := flag.Int("preview-size", 0, "Preview image size in pixels (default: 512)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		Scene:       *scene,
		Script:      *script,
		Blend:       *blendOut,
		Dump:        *dump,
		Preview:     *previewOut,
		PreviewSize: *previewSize,
	})

	if cfg.ScenePath == "" {
		fmt.Fprintln(os.Stderr, "Error: no scene file. Use -scene or config.json.")
		os.Exit(1)
	}

	sc, err := scenedesc.Load(cfg.ScenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := convert.Assemble(sc, objfile.ReadBounds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range res.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	if err := blend.WriteFile(cfg.ScriptPath, res.Instructions, cfg.BlendPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Script: %s (saves %s)\n", cfg.ScriptPath, cfg.BlendPath)

	if cfg.DumpPath != "" {
		data, err := convert.DumpJSON(res.Instructions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: instruction dump: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(cfg.DumpPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Instructions: %s\n", cfg.DumpPath)
	}

	if cfg.PreviewPath != "" {
		img := preview.Render(res.Instructions, cfg.PreviewSize)
		if err := preview.WriteWebP(cfg.PreviewPath, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preview: %s\n", cfg.PreviewPath)
	}

	fmt.Printf("Converted %d instruction(s), %d warning(s)\n", len(res.Instructions), len(res.Warnings))
}
