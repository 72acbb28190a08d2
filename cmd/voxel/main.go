package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/OCharnyshevich/voxelstore/internal/config"
	"github.com/OCharnyshevich/voxelstore/internal/draw"
	"github.com/OCharnyshevich/voxelstore/internal/gamedata"
	"github.com/OCharnyshevich/voxelstore/internal/world"
	"github.com/OCharnyshevich/voxelstore/internal/world/gen"
)

type drawArgs struct {
	op     string
	block  string
	from   string
	to     string
	points string
	rx, rz int
}

func main() {
	cfg := config.DefaultConfig()
	var (
		cfgPath     = flag.String("config", "voxel.json", "config file path")
		writeConfig = flag.Bool("write-config", false, "write the merged config back to -config")
		args        drawArgs
	)

	flag.IntVar(&cfg.WorldRadius, "world-radius", cfg.WorldRadius, "world boundary in chunks (0 = infinite)")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "terrain generator: flat, hills or empty")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "generator seed")
	flag.StringVar(&cfg.BlocksFile, "blocks", cfg.BlocksFile, "minecraft-data blocks.json (default: embedded table)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.IntVar(&cfg.PreloadRadius, "preload", cfg.PreloadRadius, "chunks generated around the origin")

	flag.StringVar(&args.op, "op", "line", "draw operation: line, fill, walls, wireframe, ellipse, curve or bezier")
	flag.StringVar(&args.block, "block", "stone", "block to place: name, id or id:meta")
	flag.StringVar(&args.from, "from", "0,64,0", "first corner, line start or ellipse center")
	flag.StringVar(&args.to, "to", "15,64,15", "second corner or line end")
	flag.StringVar(&args.points, "points", "", "curve control points, x,y,z;x,y,z;...")
	flag.IntVar(&args.rx, "rx", 8, "ellipse radius along x")
	flag.IntVar(&args.rz, "rz", 8, "ellipse radius along z")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *writeConfig {
		if err := config.Save(*cfgPath, cfg); err != nil {
			log.Error("save config", "error", err)
			os.Exit(1)
		}
		log.Info("saved config", "path", *cfgPath)
	}

	if err := run(cfg, args, log); err != nil {
		log.Error("voxel", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, args drawArgs, log *slog.Logger) error {
	reg, err := loadBlocks(cfg)
	if err != nil {
		return err
	}
	log.Info("block table loaded", "blocks", reg.Len(), "file", cfg.BlocksFile)

	g, err := gen.New(cfg.GeneratorType, cfg.Seed)
	if err != nil {
		return err
	}

	w := world.NewWorld(
		world.WithLogger(log.With("component", "world")),
		world.WithRadius(cfg.WorldRadius),
		world.WithGenerator(g),
		world.WithBlocks(reg),
	)
	if ng, ok := g.(namedGenerator); ok {
		log.Info("world created", "generator", ng.Name(), "seed", ng.Seed(), "radius", w.Radius())
	} else {
		log.Info("world created", "generator", gen.TypeEmpty, "radius", w.Radius())
	}
	w.PreloadRadius(cfg.PreloadRadius)

	id, meta, err := reg.ParseBlock(args.block)
	if err != nil {
		return err
	}
	from, err := parsePos(args.from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}

	m, err := w.LinkMap(from.X>>4, from.Z>>4)
	if err != nil {
		return err
	}
	d := draw.NewDrawer(m, world.Block{ID: id, Meta: meta})

	n, err := drawShape(d, args, from)
	if err != nil {
		return err
	}

	st := m.Stats()
	cx, cz := m.Center()
	log.Info("draw complete",
		"op", args.op,
		"center_cx", cx,
		"center_cz", cz,
		"block", args.block,
		"placed", n,
		"hits", st.Hits,
		"steps", st.Steps,
		"lookups", st.Lookups,
		"created", st.Created,
		"chunks", w.Len(),
	)

	refreshed := 0
	w.ForEachChunk(func(pos world.ChunkPos, c *world.Chunk) {
		if !c.Modified() {
			return
		}
		c.RecalcHeightMap(reg)
		c.SetModified(false)
		refreshed++
		log.Debug("chunk refreshed", "cx", pos.X, "cz", pos.Z, "digest", fmt.Sprintf("%016x", c.Digest()))
	})
	log.Info("height maps refreshed", "chunks", refreshed)
	return nil
}

type namedGenerator interface {
	Name() string
	Seed() int64
}

func loadBlocks(cfg *config.Config) (*gamedata.BlockRegistry, error) {
	if cfg.BlocksFile != "" {
		return gamedata.LoadBlocksFile(cfg.BlocksFile)
	}
	return gamedata.Load(gamedata.DefaultTable)
}

var errUnknownOp = errors.New("unknown draw operation")

func drawShape(d *draw.Drawer, args drawArgs, from draw.Pos) (int, error) {
	switch args.op {
	case "line", "fill", "walls", "wireframe":
		to, err := parsePos(args.to)
		if err != nil {
			return 0, fmt.Errorf("-to: %w", err)
		}
		sel := draw.NewSelection(from, to)
		switch args.op {
		case "line":
			return d.Line(from, to)
		case "fill":
			return d.Fill(sel)
		case "walls":
			return d.Walls(sel)
		default:
			return d.Wireframe(sel)
		}
	case "ellipse":
		return d.Ellipse(from, args.rx, args.rz)
	case "curve", "bezier":
		pts, err := parsePoints(args.points)
		if err != nil {
			return 0, fmt.Errorf("-points: %w", err)
		}
		pts = append([]draw.Pos{from}, pts...)
		if args.op == "bezier" {
			return d.Bezier(pts)
		}
		return d.Curve(pts)
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownOp, args.op)
	}
}
