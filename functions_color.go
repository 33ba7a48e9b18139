package texmath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	colorNamePattern = regexp.MustCompile(`^[A-Za-z]+$`)
	shortHexPattern  = regexp.MustCompile(`(?i)^#([a-f0-9])([a-f0-9])([a-f0-9])$`)
	htmlSpecPattern  = regexp.MustCompile(`(?i)^[0-9a-f]{6}$`)
	rgbSpecPattern   = regexp.MustCompile(`^\d{1,3},\d{1,3},\d{1,3}$`)
	unitSpecPattern  = regexp.MustCompile(`^[01](?:\.\d*)?,[01](?:\.\d*)?,[01](?:\.\d*)?$`)
)

// xcolors are the dvips names of the xcolor package
var xcolors = map[string]string{
	"Apricot":        "#ffb484",
	"Aquamarine":     "#08b4bc",
	"Bittersweet":    "#c84c14",
	"Black":          "#000000",
	"Blue":           "#0000ff",
	"BlueGreen":      "#08b4bc",
	"BlueViolet":     "#5c4ca4",
	"BrickRed":       "#b8341c",
	"Brown":          "#802404",
	"BurntOrange":    "#fc7c1c",
	"CadetBlue":      "#74729c",
	"CarnationPink":  "#fc7cfc",
	"Cerulean":       "#08a4e4",
	"CornflowerBlue": "#3cb4e4",
	"Cyan":           "#00ffff",
	"Dandelion":      "#fcb434",
	"DarkOrchid":     "#a4548c",
	"Emerald":        "#08ac9c",
	"ForestGreen":    "#089c54",
	"Fuchsia":        "#8c24dc",
	"Goldenrod":      "#fce43c",
	"Gray":           "#948c8c",
	"Green":          "#00ff00",
	"GreenYellow":    "#e4fc5c",
	"JungleGreen":    "#08ac9c",
	"Lavender":       "#fc8cdc",
	"LimeGreen":      "#8cdc08",
	"Magenta":        "#ff00ff",
	"Mahogany":       "#b42c1c",
	"Maroon":         "#b42c1c",
	"Melon":          "#fc8c7c",
	"MidnightBlue":   "#1c7cac",
	"Mulberry":       "#a43ce4",
	"NavyBlue":       "#086cbc",
	"OliveGreen":     "#3c8c3c",
	"Orange":         "#fc6444",
	"OrangeRed":      "#fc2c8c",
	"Orchid":         "#ac74fc",
	"Peach":          "#fc7c54",
	"Periwinkle":     "#7c84fc",
	"PineGreen":      "#088c74",
	"Plum":           "#5c04dc",
	"ProcessBlue":    "#08ecfc",
	"Purple":         "#8c3cfc",
	"RawSienna":      "#983c04",
	"Red":            "#ff0000",
	"RedOrange":      "#fc543c",
	"RedViolet":      "#9c34b4",
	"Rhodamine":      "#fc2cfc",
	"RoyalBlue":      "#0084fc",
	"RoyalPurple":    "#3c34fc",
	"RubineRed":      "#fc04dc",
	"Salmon":         "#fc7c9c",
	"SeaGreen":       "#3cfc8c",
	"Sepia":          "#4c0404",
	"SkyBlue":        "#64e4e4",
	"SpringGreen":    "#bcfc3c",
	"Tan":            "#dc946c",
	"TealBlue":       "#08acb4",
	"Thistle":        "#e46cfc",
	"Turquoise":      "#24fcc4",
	"Violet":         "#341cfc",
	"VioletRed":      "#fc34fc",
	"White":          "#ffffff",
	"WildStrawberry": "#fc0c9c",
	"Yellow":         "#ffff00",
	"YellowGreen":    "#94dc44",
	"YellowOrange":   "#fc9404",
}

func colorMacro(name string) string {
	return "\\\\color@" + name
}

// colorFromSpec converts a color given in one of the xcolor models into a hex string
func colorFromSpec(model, spec string, token *Token) (string, error) {
	spec = strings.ReplaceAll(spec, " ", "")

	switch model {
	case "HTML":
		if !htmlSpecPattern.MatchString(spec) {
			return "", errorAt(ErrParse, token, "Invalid HTML input.")
		}

		return "#" + strings.ToLower(spec), nil
	case "RGB":
		if !rgbSpecPattern.MatchString(spec) {
			return "", errorAt(ErrParse, token, "Invalid RGB input.")
		}

		color := "#"
		for _, part := range strings.Split(spec, ",") {
			n, _ := strconv.Atoi(part)
			if n > 255 {
				return "", errorAt(ErrParse, token, "Color rgb input must be < 256.")
			}

			color += fmt.Sprintf("%02x", n)
		}

		return color, nil
	case "rgb":
		if !unitSpecPattern.MatchString(spec) {
			return "", errorAt(ErrParse, token, "Invalid rbg input.")
		}

		color := "#"
		for _, part := range strings.Split(spec, ",") {
			n, _ := strconv.ParseFloat(part, 64)
			if n > 1 {
				return "", errorAt(ErrParse, token, "Color rgb input must be ≤ 1.")
			}

			color += fmt.Sprintf("%02x", int(n*255+0.5))
		}

		return color, nil
	default:
		return "", errorAt(ErrParse, token, "Color model must be HTML, RGB, or rgb.")
	}
}

// resolveColor validates a color name, colors defined by \definecolor and xcolor names are replaced by their value
func resolveColor(p *Parser, color string, token *Token) (string, error) {
	color = strings.TrimSpace(color)
	if !colorPattern.MatchString(color) {
		return "", errorAt(ErrParse, token, "Invalid color: '%s'", color)
	}

	if m := shortHexPattern.FindStringSubmatch(color); m != nil {
		return "#" + m[1] + m[1] + m[2] + m[2] + m[3] + m[3], nil
	}

	if hexColorPattern.MatchString(color) {
		return "#" + color, nil
	}

	if defined, ok := p.gullet.Macros().Get(colorMacro(color)).(*MacroExpansion); ok && len(defined.Tokens) > 0 {
		return defined.Tokens[0].Text, nil
	}

	if hex, ok := xcolors[color]; ok {
		return hex, nil
	}

	return color, nil
}

// colorArgument reads the color from a raw argument with an optional model
func colorArgument(ctx *FunctionContext, arg, model *ParseNode) (string, error) {
	spec, err := assertNodeType(arg, TypeRaw)
	if err != nil {
		return "", err
	}

	if model != nil {
		return colorFromSpec(model.String, spec.String, ctx.Token)
	}

	return resolveColor(ctx.Parser, spec.String, ctx.Token)
}

func registerColor(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:            TypeColor,
		Names:           []string{"\\textcolor"},
		NumArgs:         2,
		NumOptionalArgs: 1,
		AllowedInText:   true,
		ArgTypes:        []ArgType{ArgRaw, ArgRaw, ArgOriginal},
		Handler: func(ctx *FunctionContext, args, optArgs []*ParseNode) (*ParseNode, error) {
			color, err := colorArgument(ctx, args[0], optArgs[0])
			if err != nil {
				return nil, err
			}

			return &ParseNode{Type: TypeColor, Mode: ctx.Parser.mode, Color: color, Body: ordArgument(args[1])}, nil
		},
		Builder: buildColor,
	})

	r.DefineFunction(FunctionSpec{
		Type:            TypeColor,
		Names:           []string{"\\color"},
		NumArgs:         1,
		NumOptionalArgs: 1,
		AllowedInText:   true,
		ArgTypes:        []ArgType{ArgRaw, ArgRaw},
		Handler: func(ctx *FunctionContext, args, optArgs []*ParseNode) (*ParseNode, error) {
			color, err := colorArgument(ctx, args[0], optArgs[0])
			if err != nil {
				return nil, err
			}

			// the rest of the group is colored
			body, err := ctx.Parser.parseExpression(true, ctx.BreakOnTokenText, true)
			if err != nil {
				return nil, err
			}

			return &ParseNode{Type: TypeColor, Mode: ctx.Parser.mode, Label: ctx.Name, Color: color, Body: body}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeInternal,
		Names:         []string{"\\definecolor"},
		NumArgs:       3,
		AllowedInText: true,
		ArgTypes:      []ArgType{ArgRaw, ArgRaw, ArgRaw},
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			name := args[0].String
			if !colorNamePattern.MatchString(name) {
				return nil, errorAt(ErrParse, ctx.Token, "Color name must be latin letters.")
			}

			color, err := colorFromSpec(args[1].String, args[2].String, ctx.Token)
			if err != nil {
				return nil, err
			}

			ctx.Parser.gullet.Macros().Set(colorMacro(name), &MacroExpansion{Tokens: []*Token{NewToken(color)}}, false)
			return internalNode(ctx.Parser), nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:            TypeEnclose,
		Names:           []string{"\\colorbox"},
		NumArgs:         2,
		NumOptionalArgs: 1,
		AllowedInText:   true,
		ArgTypes:        []ArgType{ArgRaw, ArgRaw, ArgText},
		Handler: func(ctx *FunctionContext, args, optArgs []*ParseNode) (*ParseNode, error) {
			background, err := colorArgument(ctx, args[0], optArgs[0])
			if err != nil {
				return nil, err
			}

			return &ParseNode{Type: TypeEnclose, Mode: ctx.Parser.mode, Label: ctx.Name, BackgroundColor: background, Body: []*ParseNode{args[1]}}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeEnclose,
		Names:         []string{"\\fcolorbox"},
		NumArgs:       3,
		AllowedInText: true,
		ArgTypes:      []ArgType{ArgRaw, ArgRaw, ArgText},
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			border, err := colorArgument(ctx, args[0], nil)
			if err != nil {
				return nil, err
			}

			background, err := colorArgument(ctx, args[1], nil)
			if err != nil {
				return nil, err
			}

			return &ParseNode{
				Type:            TypeEnclose,
				Mode:            ctx.Parser.mode,
				Label:           ctx.Name,
				BorderColor:     border,
				BackgroundColor: background,
				Body:            []*ParseNode{args[2]},
			}, nil
		},
	})
}

// buildColor colors every node of the body separately, so spacing is not affected
func buildColor(b *Builder, node *ParseNode, style Style) (Node, error) {
	expression, err := b.Expression(node.Body, style.WithColor(node.Color), false)
	if err != nil {
		return nil, err
	}

	expression = flatten(expression)
	for _, n := range expression {
		if el, ok := asElement(n); ok {
			el.SetStyle("color", node.Color)
		}
	}

	return NewFragment(expression...), nil
}
