package config

import "sort"

var Presets = map[string]Layout{
	"default": DefaultLayout(),
	"compact": {
		Width:       600,
		Height:      360,
		Margin:      Margin{Top: 10, Right: 20, Bottom: 60, Left: 70},
		InnerWidth:  500,
		InnerHeight: 340,
		MarkRadius:  8,
		MarkFill:    "lightblue",
		LabelFill:   "white",
		Ticks:       6,
	},
	"wide": {
		Width:       1280,
		Height:      600,
		Margin:      Margin{Top: 20, Right: 40, Bottom: 80, Left: 100},
		InnerWidth:  1100,
		InnerHeight: 560,
		MarkRadius:  14,
		MarkFill:    "lightblue",
		LabelFill:   "white",
		Ticks:       12,
	},
}

func GetPreset(name string) *Layout {
	l, ok := Presets[name]
	if !ok {
		return nil
	}
	return &l
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
