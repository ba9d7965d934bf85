package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/latticebg/internal/scene"
)

type Canvas struct {
	W   int     `yaml:"w"`
	H   int     `yaml:"h"`
	DPR float64 `yaml:"dpr"`
}

type Lattice struct {
	Size    int      `yaml:"size"`
	Step    float64  `yaml:"step"`
	SpinMax float64  `yaml:"spin_max"`
	Seed    int64    `yaml:"seed"`
	Palette []string `yaml:"palette"`
}

type Bloom struct {
	Strength  float64 `yaml:"strength"`
	Radius    float64 `yaml:"radius"`
	Threshold float64 `yaml:"threshold"`
}

type Logo struct {
	Texture    string  `yaml:"texture"`
	Size       float64 `yaml:"size"`
	MobileSize float64 `yaml:"mobile_size"`
	Depth      float64 `yaml:"depth"`
}

type Camera struct {
	Z   float64 `yaml:"z"`
	FOV float64 `yaml:"fov"`
}

type Mobile struct {
	Breakpoint int     `yaml:"breakpoint"`
	DPRCap     float64 `yaml:"dpr_cap"`
	BloomScale float64 `yaml:"bloom_scale"`
}

type Config struct {
	Addr   string `yaml:"addr"`
	Driver string `yaml:"driver"` // "ws" | "window" | "ledwall" | "sim"
	FPS    int    `yaml:"fps"`

	Canvas  Canvas  `yaml:"canvas"`
	Lattice Lattice `yaml:"lattice"`
	Bloom   Bloom   `yaml:"bloom"`
	Logo    Logo    `yaml:"logo"`
	Camera  Camera  `yaml:"camera"`
	Mobile  Mobile  `yaml:"mobile"`

	LEDPixels int `yaml:"led_pixels,omitempty"`
}

// Default mirrors the page's production tuning.
func Default() *Config {
	return &Config{
		Addr:   ":8080",
		Driver: "ws",
		FPS:    60,
		Canvas: Canvas{W: 1280, H: 720, DPR: 1},
		Lattice: Lattice{
			Size:    5,
			Step:    2,
			SpinMax: 0.01,
			Seed:    1,
			Palette: []string{"#4fc3f7", "#7e57c2", "#26c6da"},
		},
		Bloom:  Bloom{Strength: 1.2, Radius: 0.6, Threshold: 0.75},
		Logo:   Logo{Size: 4, MobileSize: 3, Depth: 6},
		Camera: Camera{Z: 14, FOV: 60},
		Mobile: Mobile{Breakpoint: 500, DPRCap: 1.25, BloomScale: 0.6},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// ParsePalette turns "#rrggbb" strings into linear-ish colors for the
// wireframe edges.
func ParsePalette(hexes []string) ([]scene.Color, error) {
	out := make([]scene.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := parseHex(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	return out, nil
}

func parseHex(s string) (scene.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return scene.Color{}, fmt.Errorf("bad color %q: want #rrggbb", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return scene.Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return scene.Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}, nil
}
