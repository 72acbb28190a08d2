package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/voxelstore/internal/gamedata"
)

func main() {
	var (
		base     = flag.String("base", "https://github.com/PrismarineJS/minecraft-data.git", "base url")
		platform = flag.String("platform", "pc", "platform of the block table")
		ver      = flag.String("version", "1.8", "version of the block table")
		out      = flag.String("o", "./blocks.json", "output file path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := download(*base, *platform, *ver, *out, log); err != nil {
		log.Error("download block table", "error", err)
		os.Exit(1)
	}
}

// download fetches data/<platform>/<version> of the minecraft-data repo,
// checks that its blocks.json parses into a registry, and copies it to out.
func download(base, platform, ver, out string, log *slog.Logger) error {
	if out == "" {
		return fmt.Errorf("output path required")
	}
	if platform == "" {
		return fmt.Errorf("platform required")
	}
	if ver == "" {
		return fmt.Errorf("version required")
	}

	tmp, err := os.MkdirTemp("", "dmd-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	// https://github.com/PrismarineJS/minecraft-data/tree/master/data/pc/1.8
	url := fmt.Sprintf("git::%s//data/%s/%s", base, platform, ver)
	dir := filepath.Join(tmp, "data")

	log.Info("start downloading block table", "url", url)
	if err := get.Get(dir, url); err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}

	src := filepath.Join(dir, "blocks.json")
	reg, err := gamedata.LoadBlocksFile(src)
	if err != nil {
		return err
	}
	if err := copyFile(src, out); err != nil {
		return err
	}

	log.Info("done downloading block table", "path", out, "blocks", reg.Len())
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, in); err != nil {
		f.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return f.Close()
}
