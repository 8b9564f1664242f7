package render

import (
	"encoding/json"

	"gopkg.in/yaml.v2"

	"github.com/akasprzok/parcoords/internal/scene"
)

type pointDoc struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type fieldDoc struct {
	Name      string `json:"name" yaml:"name"`
	Value     any    `json:"value" yaml:"value"`
	Formatted string `json:"formatted" yaml:"formatted"`
}

type pathDoc struct {
	Row      int        `json:"row" yaml:"row"`
	Classes  []string   `json:"classes" yaml:"classes"`
	Group    string     `json:"group,omitempty" yaml:"group,omitempty"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty"`
	Stroke   string     `json:"stroke" yaml:"stroke"`
	Opacity  float64    `json:"opacity" yaml:"opacity"`
	Points   []pointDoc `json:"points" yaml:"points"`
	Fields   []fieldDoc `json:"fields" yaml:"fields"`
}

type tickDoc struct {
	Value float64 `json:"value" yaml:"value"`
	Y     float64 `json:"y" yaml:"y"`
	Label string  `json:"label" yaml:"label"`
}

type axisDoc struct {
	Measure string    `json:"measure" yaml:"measure"`
	X       float64   `json:"x" yaml:"x"`
	Top     float64   `json:"top" yaml:"top"`
	Bottom  float64   `json:"bottom" yaml:"bottom"`
	Ticks   []tickDoc `json:"ticks" yaml:"ticks"`
	Label   string    `json:"label" yaml:"label"`
	LabelAt pointDoc  `json:"labelAt" yaml:"labelAt"`
}

type legendDoc struct {
	Group string `json:"group" yaml:"group"`
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

type sceneDoc struct {
	Width    float64     `json:"width" yaml:"width"`
	Height   float64     `json:"height" yaml:"height"`
	Margin   []float64   `json:"margin" yaml:"margin,flow"`
	Measures []string    `json:"measures" yaml:"measures"`
	Axes     []axisDoc   `json:"axes" yaml:"axes"`
	Paths    []pathDoc   `json:"paths" yaml:"paths"`
	Legend   []legendDoc `json:"legend,omitempty" yaml:"legend,omitempty"`
}

func massageScene(s *scene.Scene) sceneDoc {
	m := s.Size.Margin
	doc := sceneDoc{
		Width:    s.Size.Width,
		Height:   s.Size.Height,
		Margin:   []float64{m.Top, m.Right, m.Bottom, m.Left},
		Measures: s.Measures,
		Axes:     make([]axisDoc, 0, len(s.Axes)),
		Paths:    make([]pathDoc, 0, len(s.Paths)),
	}
	for _, a := range s.Axes {
		ad := axisDoc{
			Measure: a.Measure,
			X:       a.X,
			Top:     a.Top,
			Bottom:  a.Bottom,
			Label:   a.Label,
			LabelAt: pointDoc{X: a.LabelAt.X, Y: a.LabelAt.Y},
		}
		for _, t := range a.Ticks {
			ad.Ticks = append(ad.Ticks, tickDoc{Value: t.Value, Y: t.Y, Label: t.Label})
		}
		doc.Axes = append(doc.Axes, ad)
	}
	for _, p := range s.Paths {
		pd := pathDoc{
			Row:      p.Row,
			Classes:  p.Classes,
			Group:    p.Group,
			Category: p.Category,
			Stroke:   p.Style.Stroke,
			Opacity:  p.Style.Opacity,
		}
		for _, pt := range p.Points {
			pd.Points = append(pd.Points, pointDoc{X: pt.X, Y: pt.Y})
		}
		for _, f := range p.Fields {
			pd.Fields = append(pd.Fields, fieldDoc{Name: f.Name, Value: f.Value.Native, Formatted: f.Value.Formatted})
		}
		doc.Paths = append(doc.Paths, pd)
	}
	for _, e := range s.Legend {
		doc.Legend = append(doc.Legend, legendDoc{Group: e.Group, Label: e.Label, Color: e.Color})
	}
	return doc
}

// ToJSON encodes the scene as indented JSON.
func ToJSON(s *scene.Scene) ([]byte, error) {
	return json.MarshalIndent(massageScene(s), "", "  ")
}

// ToYAML encodes the scene as YAML.
func ToYAML(s *scene.Scene) ([]byte, error) {
	return yaml.Marshal(massageScene(s))
}
