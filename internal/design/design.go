// Package design turns a free-text prompt into a jersey design concept.
// Generation is deterministic: the same prompt always yields the same design,
// so customers can share and reproduce concepts by prompt alone.
package design

import (
	_ "embed"
	"hash/fnv"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var dataYAML []byte

type themeSpec struct {
	Keywords []string `yaml:"keywords"`
	Colors   []string `yaml:"colors"`
	Patterns []string `yaml:"patterns"`
	Textures []string `yaml:"textures"`
}

type emotionSpec struct {
	Keywords []string `yaml:"keywords"`
	Effects  []string `yaml:"effects"`
}

type sportSpec struct {
	Keywords []string `yaml:"keywords"`
	Shapes   []string `yaml:"shapes"`
}

type dataset struct {
	Themes          map[string]themeSpec   `yaml:"themes"`
	Emotions        map[string]emotionSpec `yaml:"emotions"`
	Sports          map[string]sportSpec   `yaml:"sports"`
	ColorNames      map[string]string      `yaml:"color_names"`
	PhotoPalettes   map[string][]string    `yaml:"photo_palettes"`
	ShapesDefault   []string               `yaml:"shapes_default"`
	PatternsDefault []string               `yaml:"patterns_default"`
	TexturesDefault []string               `yaml:"textures_default"`
	EffectsDefault  []string               `yaml:"effects_default"`
}

// Design is a generated jersey concept.
type Design struct {
	Prompt         string   `json:"prompt"`
	Theme          string   `json:"theme,omitempty"`
	Emotion        string   `json:"emotion,omitempty"`
	Sport          string   `json:"sport,omitempty"`
	Colors         []string `json:"colors"`
	Patterns       []string `json:"patterns"`
	Shapes         []string `json:"shapes"`
	Textures       []string `json:"textures"`
	Effects        []string `json:"effects"`
	BackgroundType string   `json:"background_type"`
	// Complexity is 1 (minimal) to 5 (busy), derived from how much of the
	// prompt matched known vocabulary.
	Complexity int `json:"complexity"`
}

type Generator struct {
	data dataset
}

func NewGenerator() (*Generator, error) {
	var d dataset
	if err := yaml.Unmarshal(dataYAML, &d); err != nil {
		return nil, err
	}
	return &Generator{data: d}, nil
}

func matchKeywords(prompt string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(prompt, kw) {
			n++
		}
	}
	return n
}

// pickBest returns the map key whose keywords match the prompt most, ties
// broken alphabetically so output never depends on map iteration order.
func pickBest[T any](prompt string, specs map[string]T, keywords func(T) []string) (string, int) {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestScore := "", 0
	for _, name := range names {
		if score := matchKeywords(prompt, keywords(specs[name])); score > bestScore {
			best, bestScore = name, score
		}
	}
	return best, bestScore
}

// Generate builds a design from the prompt. Explicit color words in the
// prompt take precedence over theme colors; unmatched prompts fall back to a
// hash-picked default palette so every prompt produces something.
func (g *Generator) Generate(prompt string) Design {
	p := strings.ToLower(strings.TrimSpace(prompt))
	d := Design{Prompt: prompt, BackgroundType: "solid"}
	matched := 0

	theme, score := pickBest(p, g.data.Themes, func(t themeSpec) []string { return t.Keywords })
	if score > 0 {
		th := g.data.Themes[theme]
		d.Theme = theme
		d.Colors = append(d.Colors, th.Colors...)
		d.Patterns = append(d.Patterns, th.Patterns...)
		d.Textures = append(d.Textures, th.Textures...)
		d.BackgroundType = "themed"
		matched += score
	}

	emotion, score := pickBest(p, g.data.Emotions, func(e emotionSpec) []string { return e.Keywords })
	if score > 0 {
		d.Emotion = emotion
		d.Effects = append(d.Effects, g.data.Emotions[emotion].Effects...)
		matched += score
	}

	sport, score := pickBest(p, g.data.Sports, func(s sportSpec) []string { return s.Keywords })
	if score > 0 {
		d.Sport = sport
		d.Shapes = append(d.Shapes, g.data.Sports[sport].Shapes...)
		matched += score
	}

	// Named colors override the theme palette entirely.
	var named []string
	colorNames := make([]string, 0, len(g.data.ColorNames))
	for name := range g.data.ColorNames {
		colorNames = append(colorNames, name)
	}
	sort.Strings(colorNames)
	for _, name := range colorNames {
		if strings.Contains(p, name) {
			named = append(named, g.data.ColorNames[name])
			matched++
		}
	}
	if len(named) > 0 {
		d.Colors = named
	}

	// Scenic words switch the background to a photo palette.
	paletteNames := make([]string, 0, len(g.data.PhotoPalettes))
	for name := range g.data.PhotoPalettes {
		paletteNames = append(paletteNames, name)
	}
	sort.Strings(paletteNames)
	for _, name := range paletteNames {
		if strings.Contains(p, name) {
			d.BackgroundType = "photo:" + name
			if len(d.Colors) == 0 {
				d.Colors = g.data.PhotoPalettes[name]
			}
			matched++
			break
		}
	}

	h := fnv.New32a()
	h.Write([]byte(p))
	seed := h.Sum32()

	if len(d.Colors) == 0 {
		d.Colors = g.data.PhotoPalettes[paletteNames[int(seed)%len(paletteNames)]]
	}
	if len(d.Patterns) == 0 {
		d.Patterns = []string{g.data.PatternsDefault[int(seed>>8)%len(g.data.PatternsDefault)]}
	}
	if len(d.Shapes) == 0 {
		d.Shapes = []string{g.data.ShapesDefault[int(seed>>16)%len(g.data.ShapesDefault)]}
	}
	if len(d.Textures) == 0 {
		d.Textures = []string{g.data.TexturesDefault[int(seed>>24)%len(g.data.TexturesDefault)]}
	}
	if len(d.Effects) == 0 {
		d.Effects = g.data.EffectsDefault
	}

	d.Complexity = 1 + matched
	if d.Complexity > 5 {
		d.Complexity = 5
	}
	return d
}
