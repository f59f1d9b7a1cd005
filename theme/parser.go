package theme

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/benoitkugler/svgtheme/document"
	"github.com/benoitkugler/svgtheme/intern"
	"github.com/benoitkugler/svgtheme/logging"
	"github.com/benoitkugler/svgtheme/style"
)

// Parser builds themes from document trees. Rule names
// are interned with the given Interner.
type Parser struct {
	interner *intern.Interner
	sink     logging.Sink
}

// NewParser returns a parser reporting to sink, which may be nil.
func NewParser(in *intern.Interner, sink logging.Sink) *Parser {
	return &Parser{interner: in, sink: sink}
}

// fail reports and returns an Error severity failure.
func (p *Parser) fail(code logging.Code, format string, args ...interface{}) *Error {
	err := &Error{Severity: logging.Error, Code: code, Message: fmt.Sprintf(format, args...)}
	p.sink.Report(err.Severity, err.Code, err.Message)
	return err
}

// Parse validates root and returns the theme. No partial
// theme is returned: the first failure aborts the parse.
func (p *Parser) Parse(root *document.Node) (*Theme, error) {
	if !root.IsObject() {
		return nil, p.fail(logging.ObjectExpected, "The top level element must be an object")
	}

	name := root.Get("name")
	if !name.IsString() || name.Str == "" {
		return nil, p.fail(logging.NameExpected, "The theme must have a non-empty name")
	}

	styles := root.Get("styles")
	if !styles.IsObject() {
		return nil, p.fail(logging.ThemeExpected, "Expected a 'styles' object")
	}

	p.sink.Info(fmt.Sprintf("Parsing theme '%s'", name.Str))

	theme := New(name.Str)
	for _, m := range styles.Members {
		if !m.Value.IsObject() {
			return nil, p.fail(logging.ObjectExpected, "Theme '%s': Each style must be an object", theme.name)
		}
		if err := p.parseRule(theme, m.Key, m.Value); err != nil {
			return nil, err
		}
	}
	return theme, nil
}

func (p *Parser) parseRule(theme *Theme, name string, node *document.Node) error {
	if name == "" {
		return p.fail(logging.NameExpected, "Theme '%s': style names must not be empty", theme.name)
	}

	p.sink.Info(fmt.Sprintf("Parsing '%s'", name))

	var st style.Style
	var err error
	if st, err = p.parseFill(node, st); err != nil {
		return err
	}
	if st, err = p.parseStroke(node, st); err != nil {
		return err
	}
	if st, err = p.parseOpacity(node, st); err != nil {
		return err
	}

	if id, isID := strings.CutPrefix(name, "."); isID {
		theme.ids[p.interner.Intern(id)] = &st
	} else {
		theme.classes[p.interner.Intern(name)] = &st
	}
	return nil
}

func (p *Parser) parseOpacity(node *document.Node, st style.Style) (style.Style, error) {
	op := node.Get("opacity")
	if op == nil {
		return st, nil
	}
	if !op.IsNumber() {
		return st, p.fail(logging.NumberExpected, "'opacity': Number expected")
	}
	return st.WithOpacity(clamp01(op.Num)), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (p *Parser) parseFill(node *document.Node, st style.Style) (style.Style, error) {
	fill := node.Get("fill")
	if fill == nil {
		return st, nil
	}
	paint, err := p.parsePaint(fill, "fill")
	if err != nil {
		return st, err
	}
	if paint.IsSet() {
		st = st.WithFill(paint)
	}
	return st, nil
}

func (p *Parser) parseStroke(node *document.Node, st style.Style) (style.Style, error) {
	stroke := node.Get("stroke")
	if stroke == nil {
		return st, nil
	}
	if stroke.IsObject() {
		if width := stroke.Get("width"); width != nil {
			if !width.IsNumber() {
				return st, p.fail(logging.NumberExpected, "'width': Number expected")
			}
			st = st.WithStrokeWidth(width.Num)
		}
	}

	paint, err := p.parsePaint(stroke, "stroke")
	if err != nil {
		return st, err
	}
	if paint.IsSet() {
		st = st.WithStroke(paint)
	}

	if !stroke.IsObject() {
		return st, nil
	}
	if capNode := stroke.Get("line_cap"); capNode != nil {
		if !capNode.IsString() {
			return st, p.fail(logging.StringExpected, "'line_cap': String expected")
		}
		lc, ok := style.ParseLineCap(capNode.Str)
		if !ok {
			return st, p.fail(logging.InvalidLineCap, "'line_cap': Unrecognized line cap type '%s'", capNode.Str)
		}
		st = st.WithLineCap(lc)
	}
	if joinNode := stroke.Get("line_join"); joinNode != nil {
		if !joinNode.IsString() {
			return st, p.fail(logging.StringExpected, "'line_join': String expected")
		}
		lj, ok := style.ParseLineJoin(joinNode.Str)
		if !ok {
			return st, p.fail(logging.InvalidLineCap, "'line_join': Unrecognized line join type '%s'", joinNode.Str)
		}
		st = st.WithLineJoin(lj)
	}
	return st, nil
}

// parsePaint handles the string and object forms shared
// by fill and stroke. An unset paint means nothing to apply.
func (p *Parser) parsePaint(node *document.Node, name string) (style.Paint, error) {
	if !node.IsObject() && !node.IsString() {
		return style.UnsetPaint(), p.fail(logging.ObjectOrStringExpected, "'%s': Object or string expected", name)
	}

	if node.IsString() {
		if node.Str == "none" {
			return style.NonePaint(), nil
		}
		c, err := p.parseColor(node.Str, name)
		if err != nil {
			return style.UnsetPaint(), err
		}
		return style.SolidPaint(c), nil
	}

	paint := style.UnsetPaint()
	colorNode := node.Get("color")
	if colorNode != nil {
		if !colorNode.IsString() {
			return paint, p.fail(logging.StringExpected, "'color': String expected")
		}
		c, err := p.parseColor(colorNode.Str, "color")
		if err != nil {
			return paint, err
		}
		paint = style.SolidPaint(c)
	}

	if gradNode := node.Get("gradient"); gradNode != nil {
		if colorNode != nil {
			return style.UnsetPaint(), p.fail(logging.OneOfColorOrGradient, "'%s': Only one of 'color' or 'gradient' allowed", name)
		}
		g, err := p.parseGradient(gradNode)
		if err != nil {
			return paint, err
		}
		if g.NStops > 0 {
			paint = style.GradientPaint(g)
		}
	}
	return paint, nil
}

func (p *Parser) parseColor(hex, name string) (c color.NRGBA, err error) {
	if !style.IsValidHex(hex) {
		return c, p.fail(logging.InvalidHexColor, "'%s': invalid hex color: '%s'", name, hex)
	}
	c, err = style.ParseHexColor(hex)
	if err != nil {
		return c, p.fail(logging.InvalidHexColor, "'%s': invalid hex color: '%s'", name, hex)
	}
	return c, nil
}

// parseGradient reads up to two stops. The index, color and
// offset of a stop default to the ones of the previous stop.
func (p *Parser) parseGradient(node *document.Node) (style.GradientStops, error) {
	g := style.NewGradientStops()
	if !node.IsArray() {
		return g, p.fail(logging.ArrayExpected, "'gradient': array expected")
	}
	if len(node.Items) > 2 {
		return g, p.fail(logging.TooManyGradientStops, "A maximum of two gradient stops is allowed")
	}

	current := style.Stop{Index: 0}
	for _, item := range node.Items {
		if !item.IsObject() {
			return g, p.fail(logging.ObjectExpected, "'gradient': object expected")
		}

		if index := item.Get("index"); index != nil {
			if !index.IsInteger() {
				return g, p.fail(logging.IntegerExpected, "'index': Integer expected")
			}
			if index.Int != 0 && index.Int != 1 {
				return g, p.fail(logging.InvalidGradientStopIndex, "Gradient stop index must be 0 or 1")
			}
			current.Index = int(index.Int)
		}

		if colorNode := item.Get("color"); colorNode != nil {
			if !colorNode.IsString() {
				return g, p.fail(logging.StringExpected, "'color': String expected")
			}
			c, err := p.parseColor(colorNode.Str, "color")
			if err != nil {
				return g, err
			}
			current.Color = c
		}

		if offset := item.Get("offset"); offset != nil {
			if !offset.IsNumber() {
				return g, p.fail(logging.NumberExpected, "'offset': Number expected")
			}
			current.Offset = offset.Num
		}

		g.SetStop(current)
	}
	return g, nil
}
