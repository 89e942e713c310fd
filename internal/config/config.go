package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/statplot/internal/analysis"
	"github.com/san-kum/statplot/internal/dataset"
	"gopkg.in/yaml.v3"
)

const (
	DefaultData        = "data.csv"
	DefaultAddr        = ":8080"
	DefaultWidth       = 900
	DefaultHeight      = 500
	DefaultInnerWidth  = 700
	DefaultInnerHeight = 480
	DefaultMarkRadius  = 12
	DefaultTicks       = 10
)

type Config struct {
	Data     string            `yaml:"data"`
	Addr     string            `yaml:"addr"`
	DefaultX string            `yaml:"default_x"`
	DefaultY string            `yaml:"default_y"`
	Layout   Layout            `yaml:"layout"`
	Labels   map[string]string `yaml:"labels"`
	Analysis map[string]string `yaml:"analysis"`
}

type Layout struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Margin      Margin  `yaml:"margin"`
	InnerWidth  float64 `yaml:"inner_width"`
	InnerHeight float64 `yaml:"inner_height"`
	MarkRadius  float64 `yaml:"mark_radius"`
	MarkFill    string  `yaml:"mark_fill"`
	LabelFill   string  `yaml:"label_fill"`
	Ticks       int     `yaml:"ticks"`
}

type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

func DefaultLayout() Layout {
	return Layout{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Margin:      Margin{Top: 20, Right: 40, Bottom: 80, Left: 100},
		InnerWidth:  DefaultInnerWidth,
		InnerHeight: DefaultInnerHeight,
		MarkRadius:  DefaultMarkRadius,
		MarkFill:    "lightblue",
		LabelFill:   "white",
		Ticks:       DefaultTicks,
	}
}

func DefaultLabels() map[string]string {
	return map[string]string{
		string(dataset.Obese):            "Obese (BMI > 30)(%)",
		string(dataset.CurrentSmoker):    "Current Smoker (%)",
		string(dataset.BachelorOrHigher): "Bachelor's Degree or Greater",
		string(dataset.HighSchoolGrad):   "High School Graduate",
	}
}

func DefaultConfig() *Config {
	return &Config{
		Data:     DefaultData,
		Addr:     DefaultAddr,
		DefaultX: string(dataset.Obese),
		DefaultY: string(dataset.BachelorOrHigher),
		Layout:   DefaultLayout(),
		Labels:   DefaultLabels(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	// labels given in the file replace only the keys they name
	if cfg.Labels == nil {
		cfg.Labels = make(map[string]string)
	}
	for k, v := range DefaultLabels() {
		if cfg.Labels[k] == "" {
			cfg.Labels[k] = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	x, err := dataset.ParseField(c.DefaultX)
	if err != nil {
		return fmt.Errorf("config: default_x: %w", err)
	}
	if !x.IsHorizontal() {
		return fmt.Errorf("config: default_x %q is not a horizontal field", x)
	}
	y, err := dataset.ParseField(c.DefaultY)
	if err != nil {
		return fmt.Errorf("config: default_y: %w", err)
	}
	if !y.IsVertical() {
		return fmt.Errorf("config: default_y %q is not a vertical field", y)
	}
	return c.Layout.Validate()
}

func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("config: layout size must be positive, got %vx%v", l.Width, l.Height)
	}
	if l.InnerWidth <= 0 || l.InnerHeight <= 0 {
		return fmt.Errorf("config: plotting area must be positive, got %vx%v", l.InnerWidth, l.InnerHeight)
	}
	if l.MarkRadius <= 0 {
		return fmt.Errorf("config: mark radius must be positive, got %v", l.MarkRadius)
	}
	return nil
}

// Axes returns the configured default axis pairing.
func (c *Config) Axes() (x, y dataset.Field) {
	return dataset.Field(c.DefaultX), dataset.Field(c.DefaultY)
}

// Label returns the display text for f.
func (c *Config) Label(f dataset.Field) string {
	if s, ok := c.Labels[string(f)]; ok && s != "" {
		return s
	}
	return string(f)
}

// AnalysisTable builds the analysis lookup with overrides keyed "x/y".
func (c *Config) AnalysisTable() (*analysis.Table, error) {
	overrides := make(map[analysis.Pair]string, len(c.Analysis))
	for key, text := range c.Analysis {
		xs, ys, ok := strings.Cut(key, "/")
		if !ok {
			return nil, fmt.Errorf("config: analysis key %q must be x/y", key)
		}
		x, err := dataset.ParseField(xs)
		if err != nil {
			return nil, fmt.Errorf("config: analysis key %q: %w", key, err)
		}
		y, err := dataset.ParseField(ys)
		if err != nil {
			return nil, fmt.Errorf("config: analysis key %q: %w", key, err)
		}
		overrides[analysis.Pair{X: x, Y: y}] = text
	}
	return analysis.New(overrides), nil
}
