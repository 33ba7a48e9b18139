package texmath

import (
	"strconv"
	"strings"
)

const eqnSwitch = "\\@eqnsw"

// arrayOptions configures parseArray for an environment
type arrayOptions struct {
	cols           []ColumnSpec
	envClasses     []string
	tagged         bool // rows may carry tags
	autoTag        bool // untagged rows are numbered
	singleRow      bool
	emptySingleRow bool
	maxNumCols     int
	leqno          bool
	arrayStretch   float64
}

func registerArrays(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:     TypeEnvironment,
		Names:    []string{"\\begin", "\\end"},
		NumArgs:  1,
		ArgTypes: []ArgType{ArgText},
		Handler:  parseEnvironment,
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeInternal,
		Names:         []string{"\\hline", "\\hdashline"},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			return nil, errorAt(ErrParse, ctx.Token, "%s valid only within array environment", ctx.Name)
		},
	})

	r.DefineEnvironment(EnvironmentSpec{
		Type:     TypeArray,
		Names:    []string{"array", "darray"},
		NumArgs:  1,
		ArgTypes: []ArgType{ArgRaw},
		Handler: func(ctx *EnvironmentContext, args, _ []*ParseNode) (*ParseNode, error) {
			cols, err := ColumnSpecs(args[0].String, "lcr")
			if err != nil {
				return nil, errorAt(ErrParse, ctx.Token, "%s", capitalize(err.Error()))
			}

			stretch, err := arrayStretch(ctx.Parser)
			if err != nil {
				return nil, err
			}

			return parseArray(ctx.Parser, arrayOptions{
				cols:         cols,
				envClasses:   []string{"array"},
				maxNumCols:   len(cols),
				arrayStretch: stretch,
			}, cellStyle(ctx.Name))
		},
		Builder: buildArray,
	})

	r.DefineEnvironment(EnvironmentSpec{
		Type:  TypeArray,
		Names: []string{"matrix", "pmatrix", "bmatrix", "Bmatrix", "vmatrix", "Vmatrix"},
		Handler: func(ctx *EnvironmentContext, _, _ []*ParseNode) (*ParseNode, error) {
			stretch, err := arrayStretch(ctx.Parser)
			if err != nil {
				return nil, err
			}

			res, err := parseArray(ctx.Parser, arrayOptions{arrayStretch: stretch}, "text")
			if err != nil {
				return nil, err
			}

			if len(res.Rows) > 0 {
				res.Cols = make([]ColumnSpec, len(res.Rows[0]))
				for i := range res.Cols {
					res.Cols[i] = ColumnSpec{Align: "c"}
				}
			}

			return fenced(ctx, res, matrixDelimiters[ctx.Name])
		},
	})

	r.DefineEnvironment(EnvironmentSpec{
		Type:  TypeArray,
		Names: []string{"smallmatrix"},
		Handler: func(ctx *EnvironmentContext, _, _ []*ParseNode) (*ParseNode, error) {
			return parseArray(ctx.Parser, arrayOptions{envClasses: []string{"small"}}, "script")
		},
	})

	r.DefineEnvironment(EnvironmentSpec{
		Type:     TypeArray,
		Names:    []string{"subarray"},
		NumArgs:  1,
		ArgTypes: []ArgType{ArgRaw},
		Handler: func(ctx *EnvironmentContext, args, _ []*ParseNode) (*ParseNode, error) {
			cols, err := ColumnSpecs(args[0].String, "lc")
			if err != nil {
				return nil, errorAt(ErrParse, ctx.Token, "%s", capitalize(err.Error()))
			}

			if len(cols) > 1 {
				return nil, errorAt(ErrParse, ctx.Token, "{subarray} can contain only one column")
			}

			res, err := parseArray(ctx.Parser, arrayOptions{cols: cols, envClasses: []string{"small", "subarray"}}, "script")
			if err != nil {
				return nil, err
			}

			if len(res.Rows) > 0 && len(res.Rows[0]) > 1 {
				return nil, errorAt(ErrParse, ctx.Token, "{subarray} can contain only one column")
			}

			return res, nil
		},
	})

	r.DefineEnvironment(EnvironmentSpec{
		Type:  TypeArray,
		Names: []string{"cases", "dcases", "rcases", "drcases"},
		Handler: func(ctx *EnvironmentContext, _, _ []*ParseNode) (*ParseNode, error) {
			res, err := parseArray(ctx.Parser, arrayOptions{
				cols:       []ColumnSpec{{Align: "l"}, {Align: "l"}},
				envClasses: []string{"cases"},
			}, cellStyle(ctx.Name))
			if err != nil {
				return nil, err
			}

			if strings.Contains(ctx.Name, "r") {
				return fenced(ctx, res, [2]string{".", "\\}"})
			}

			return fenced(ctx, res, [2]string{"\\{", "."})
		},
	})

	r.DefineEnvironment(EnvironmentSpec{
		Type:    TypeArray,
		Names:   []string{"align", "align*", "aligned", "split"},
		Handler: parseAligned,
	})

	r.DefineEnvironment(EnvironmentSpec{
		Type:  TypeArray,
		Names: []string{"gathered", "gather", "gather*"},
		Handler: func(ctx *EnvironmentContext, _, _ []*ParseNode) (*ParseNode, error) {
			if err := requireDisplayMode(ctx); err != nil {
				return nil, err
			}

			return parseArray(ctx.Parser, arrayOptions{
				cols:           []ColumnSpec{{Align: "c"}},
				envClasses:     []string{"abut", "jot"},
				tagged:         !strings.HasSuffix(ctx.Name, "ed"),
				autoTag:        autoTag(ctx.Name),
				emptySingleRow: true,
				leqno:          ctx.Parser.settings.Leqno,
			}, "display")
		},
	})

	r.DefineEnvironment(EnvironmentSpec{
		Type:  TypeArray,
		Names: []string{"equation", "equation*"},
		Handler: func(ctx *EnvironmentContext, _, _ []*ParseNode) (*ParseNode, error) {
			if err := requireDisplayMode(ctx); err != nil {
				return nil, err
			}

			return parseArray(ctx.Parser, arrayOptions{
				envClasses:     []string{"align"},
				tagged:         true,
				autoTag:        autoTag(ctx.Name),
				emptySingleRow: true,
				singleRow:      true,
				maxNumCols:     1,
				leqno:          ctx.Parser.settings.Leqno,
			}, "display")
		},
	})
}

var matrixDelimiters = map[string][2]string{
	"pmatrix": {"(", ")"},
	"bmatrix": {"[", "]"},
	"Bmatrix": {"\\{", "\\}"},
	"vmatrix": {"|", "|"},
	"Vmatrix": {"\\Vert", "\\Vert"},
}

// parseEnvironment handles \begin{name} by parsing the environment up to the matching \end{name}.
// \end alone returns an environment node naming the environment it closes.
func parseEnvironment(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
	p := ctx.Parser

	nameGroup := args[0]
	if nameGroup.Type != TypeOrdGroup {
		return nil, newError(ErrParse, nameGroup.Loc, "Invalid environment name")
	}

	var name strings.Builder
	for _, n := range nameGroup.Body {
		ord, err := assertNodeType(n, TypeTextOrd)
		if err != nil {
			return nil, err
		}

		name.WriteString(ord.Text)
	}

	envName := name.String()
	if ctx.Name == "\\end" {
		return &ParseNode{Type: TypeEnvironment, Mode: p.mode, Loc: nameGroup.Loc, Name: envName}, nil
	}

	env, ok := p.registry.Environment(envName)
	if !ok {
		return nil, newError(ErrParse, nameGroup.Loc, "No such environment: %s", envName)
	}

	envArgs, envOptArgs, err := p.parseArguments("\\begin{"+envName+"}", argSpec{
		numArgs:     env.NumArgs,
		numOptional: env.NumOptionalArgs,
		argTypes:    env.ArgTypes,
		nodeType:    env.Type,
	})
	if err != nil {
		return nil, err
	}

	result, err := env.Handler(&EnvironmentContext{Name: envName, Parser: p, Token: ctx.Token}, envArgs, envOptArgs)
	if err != nil {
		return nil, err
	}

	if err := p.expect("\\end", false); err != nil {
		return nil, err
	}

	endToken := p.nextToken
	endNode, err := p.parseFunction("", "")
	if err != nil {
		return nil, err
	}

	end, err := assertNodeType(endNode, TypeEnvironment)
	if err != nil {
		return nil, err
	}

	if end.Name != envName {
		return nil, errorAt(ErrParse, endToken, "Mismatch: \\begin{%s} matched by \\end{%s}", envName, end.Name)
	}

	return result, nil
}

func requireDisplayMode(ctx *EnvironmentContext) error {
	if strings.HasSuffix(ctx.Name, "ed") || ctx.Parser.settings.DisplayMode {
		return nil
	}

	return errorAt(ErrParse, ctx.Token, "{%s} can be used only in display mode.", ctx.Name)
}

// autoTag reports whether rows of the environment are numbered unless \notag is used
func autoTag(name string) bool {
	return !strings.Contains(name, "ed") && !strings.Contains(name, "*")
}

// cellStyle is the style of array cells, environments starting with d are set in display style
func cellStyle(name string) string {
	if strings.HasPrefix(name, "d") {
		return "display"
	}

	return "text"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// arrayStretch reads \arraystretch, zero when it is not set
func arrayStretch(p *Parser) (float64, error) {
	text, ok, err := p.gullet.ExpandMacroAsText("\\arraystretch")
	if err != nil || !ok {
		return 0, err
	}

	stretch, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, nil
	}

	return stretch, nil
}

// fenced wraps an array into delimiters, the closing delimiter is not affected by \color in the array
func fenced(ctx *EnvironmentContext, array *ParseNode, delims [2]string) (*ParseNode, error) {
	if delims[0] == "" {
		return array, nil
	}

	return &ParseNode{
		Type:       TypeLeftRight,
		Mode:       ctx.Parser.mode,
		Body:       []*ParseNode{array},
		Left:       delims[0],
		Right:      delims[1],
		IsStretchy: true,
	}, nil
}

// hLines reads \hline and \hdashline commands, one entry per line, true for dashed lines
func hLines(p *Parser) ([]bool, error) {
	var lines []bool

	if err := p.consumeSpaces(); err != nil {
		return nil, err
	}

	next, err := p.fetch()
	if err != nil {
		return nil, err
	}

	if next.Text == "\\relax" {
		p.consume()
		if err := p.consumeSpaces(); err != nil {
			return nil, err
		}

		if next, err = p.fetch(); err != nil {
			return nil, err
		}
	}

	for next.Text == "\\hline" || next.Text == "\\hdashline" {
		p.consume()
		lines = append(lines, next.Text == "\\hdashline")

		if err := p.consumeSpaces(); err != nil {
			return nil, err
		}

		if next, err = p.fetch(); err != nil {
			return nil, err
		}
	}

	return lines, nil
}

// parseArray parses the rows of an environment body up to \end. Each cell is parsed in its own group.
func parseArray(p *Parser, opts arrayOptions, scriptLevel string) (*ParseNode, error) {
	macros := p.gullet.Macros()

	p.gullet.BeginGroup()
	if !opts.singleRow {
		macros.Set("\\cr", MacroText("\\\\\\relax"), false)
	}

	// group of the first cell
	p.gullet.BeginGroup()

	var (
		row     []*ParseNode
		rows    [][]*ParseNode
		rowGaps []*Measurement
		hlines  [][]bool
		tags    []*ParseNode
	)

	beginRow := func() {
		if opts.autoTag {
			macros.Set(eqnSwitch, MacroText("1"), true)
		}
	}

	endRow := func() error {
		if !opts.tagged {
			return nil
		}

		if macros.Has(tagMacro) {
			tag, err := p.subparse([]*Token{NewToken(tagMacro)})
			if err != nil {
				return err
			}

			macros.Set(tagMacro, nil, true)
			tags = append(tags, &ParseNode{Type: TypeTag, Mode: p.mode, Tag: tag})
			return nil
		}

		numbered := false
		if opts.autoTag {
			sw, _, err := p.gullet.ExpandMacroAsText(eqnSwitch)
			if err != nil {
				return err
			}

			numbered = sw == "1"
		}

		if numbered {
			tags = append(tags, &ParseNode{Type: TypeTag, Mode: p.mode})
		} else {
			tags = append(tags, nil)
		}

		return nil
	}

	beginRow()

	lines, err := hLines(p)
	if err != nil {
		return nil, err
	}

	hlines = append(hlines, lines)

	breakOn := "\\\\"
	if opts.singleRow {
		breakOn = "\\end"
	}

	for {
		body, err := p.parseExpression(false, breakOn, false)
		if err != nil {
			return nil, err
		}

		if err := p.gullet.EndGroup(); err != nil {
			return nil, err
		}

		p.gullet.BeginGroup()

		cell := &ParseNode{Type: TypeOrdGroup, Mode: p.mode, Body: body, Semisimple: true}
		row = append(row, cell)

		next, err := p.fetch()
		if err != nil {
			return nil, err
		}

		switch next.Text {
		case "&":
			if opts.maxNumCols > 0 && len(row) == opts.maxNumCols {
				switch {
				case hasClass(opts.envClasses, "array"):
					if err := p.settings.reportNonstrict("tooFewColumns", "Too few columns specified in the {array} column argument.", next); err != nil {
						return nil, err
					}
				case opts.maxNumCols == 2:
					return nil, errorAt(ErrParse, next, "The split environment accepts no more than two columns")
				default:
					return nil, errorAt(ErrParse, next, "The equation environment accepts only one column")
				}
			}

			p.consume()

		case "\\end":
			if err := endRow(); err != nil {
				return nil, err
			}

			// a trailing empty row is dropped unless it is the only one of an ams environment
			if len(row) == 1 && len(cell.Body) == 0 && (len(rows) > 0 || !opts.emptySingleRow) {
				if opts.tagged && len(tags) > 0 {
					tags = tags[:len(tags)-1]
				}
			} else {
				rows = append(rows, row)
			}

			if len(hlines) < len(rows)+1 {
				hlines = append(hlines, nil)
			}

			if err := p.gullet.EndGroup(); err != nil {
				return nil, err
			}

			if err := p.gullet.EndGroup(); err != nil {
				return nil, err
			}

			return &ParseNode{
				Type:            TypeArray,
				Mode:            p.mode,
				Rows:            rows,
				Cols:            opts.cols,
				RowGaps:         rowGaps,
				HLinesBeforeRow: hlines,
				EnvClasses:      opts.envClasses,
				ScriptLevel:     scriptLevel,
				Tags:            tagsOrNil(opts.tagged, tags),
				Leqno:           opts.leqno,
				ArrayStretch:    opts.arrayStretch,
			}, nil

		case "\\\\":
			p.consume()

			var gap *Measurement
			future, err := p.gullet.Future()
			if err != nil {
				return nil, err
			}

			if future.Text != " " {
				size, err := p.parseSizeGroup(true)
				if err != nil {
					return nil, err
				}

				if size != nil {
					gap = &size.Dimension
				}
			}

			rowGaps = append(rowGaps, gap)
			if err := endRow(); err != nil {
				return nil, err
			}

			lines, err := hLines(p)
			if err != nil {
				return nil, err
			}

			hlines = append(hlines, lines)
			rows = append(rows, row)
			row = nil
			beginRow()

		default:
			return nil, errorAt(ErrParse, next, "Expected & or \\\\ or \\cr or \\end")
		}
	}
}

func tagsOrNil(tagged bool, tags []*ParseNode) []*ParseNode {
	if !tagged {
		return nil
	}

	if tags == nil {
		return []*ParseNode{}
	}

	return tags
}

func hasClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}

	return false
}

// parseAligned handles align, align*, aligned and split: columns alternate between right and left
// alignment and every second cell starts with an empty group so that a leading operator stays binary
func parseAligned(ctx *EnvironmentContext, _, _ []*ParseNode) (*ParseNode, error) {
	if err := requireDisplayMode(ctx); err != nil {
		return nil, err
	}

	split := ctx.Name == "split"
	opts := arrayOptions{
		envClasses:     []string{"abut", "jot"},
		tagged:         !split && ctx.Name != "aligned",
		autoTag:        !split && autoTag(ctx.Name),
		emptySingleRow: true,
		leqno:          ctx.Parser.settings.Leqno,
	}

	if split {
		opts.maxNumCols = 2
	}

	res, err := parseArray(ctx.Parser, opts, "display")
	if err != nil {
		return nil, err
	}

	numCols := 0
	rows := make([][]*ParseNode, len(res.Rows))
	for i, row := range res.Rows {
		rows[i] = make([]*ParseNode, len(row))
		for j, cell := range row {
			if j%2 == 1 {
				cell = withLeadingEmptyGroup(cell)
			}

			rows[i][j] = cell
		}

		numCols = max(numCols, len(row))
	}

	res.Rows = rows
	res.Cols = make([]ColumnSpec, numCols)
	for i := range res.Cols {
		res.Cols[i] = ColumnSpec{Align: "r"}
		if i%2 == 1 {
			res.Cols[i].Align = "l"
		}
	}

	if !split {
		res.EnvClasses = append([]string{"align"}, res.EnvClasses[1:]...)
	}

	return res, nil
}

// withLeadingEmptyGroup copies the cell with an empty group in front, a binary operator that was
// taken as a prefix because it started the cell becomes binary again
func withLeadingEmptyGroup(cell *ParseNode) *ParseNode {
	body := make([]*ParseNode, 0, len(cell.Body)+1)
	body = append(body, &ParseNode{Type: TypeOrdGroup, Mode: cell.Mode})

	for i, n := range cell.Body {
		if i == 0 && n.Type == TypeAtom && n.Family == FamilyOpen {
			if sym, ok := lookupSymbol(n.Mode, n.Text); ok && sym.Group == FamilyBin {
				c := *n
				c.Family = FamilyBin
				n = &c
			}
		}

		body = append(body, n)
	}

	c := *cell
	c.Body = body
	return &c
}

var alignNames = map[string]string{"l": "left", "c": "center", "r": "right"}

func cellLevel(scriptLevel string) int {
	switch scriptLevel {
	case "text":
		return TextStyle
	case "script":
		return ScriptStyle
	}

	return DisplayStyle
}

func (b *Builder) tagElement(tag *ParseNode, style Style) (Node, error) {
	if tag == nil {
		return NewElement("mtext"), nil
	}

	if tag.Tag == nil {
		// numbered by a css counter
		eqn := NewElement("span")
		eqn.AddClass("tml-eqn")
		return NewElement("mtext", eqn), nil
	}

	row, err := b.ExpressionRow(tag.Tag, style, true)
	if err != nil {
		return nil, err
	}

	label := consolidateText(row)
	if el, ok := asElement(label); ok {
		el.Classes = []string{"tml-tag"}
	}

	return label, nil
}

func buildArray(b *Builder, node *ParseNode, style Style) (Node, error) {
	level := cellLevel(node.ScriptLevel)
	inner := style.WithLevel(level)
	tagged := node.Tags != nil
	isAlign := len(node.EnvClasses) > 0 && node.EnvClasses[0] == "align"
	isCases := hasClass(node.EnvClasses, "cases")

	numColumns := 0
	if len(node.Rows) > 0 {
		numColumns = len(node.Rows[0])
	}

	offset := 0
	if tagged {
		offset = 1
	}

	var table []*Element
	for i, cells := range node.Rows {
		var row []*Element

		for _, cell := range cells {
			content, err := b.Group(cell, inner)
			if err != nil {
				return nil, err
			}

			row = append(row, NewElement("mtd", content))
		}

		// short rows are filled with empty cells
		for k := len(cells); k < numColumns; k++ {
			row = append(row, NewElement("mtd"))
		}

		if tagged {
			var tag *ParseNode
			if i < len(node.Tags) {
				tag = node.Tags[i]
			}

			label, err := b.tagElement(tag, inner)
			if err != nil {
				return nil, err
			}

			row = append([]*Element{glue()}, append(row, glue())...)
			holder := row[len(row)-1]
			holder.AddClass("tml-right")
			if node.Leqno {
				holder = row[0]
				holder.Classes = []string{"tml-left"}
			}

			holder.Children = append(holder.Children, label)
		}

		mtr := NewElement("mtr")
		if tagged && i < len(node.Tags) && node.Tags[i] != nil && node.Tags[i].Tag != nil {
			mtr.AddClass("tml-tageqn")
		}

		for j, mtd := range row {
			k := j - offset
			switch {
			case tagged && (j == 0 || j == len(row)-1):
			case isAlign:
				if k%2 == 1 {
					mtd.Classes = []string{"tml-left"}
				} else {
					mtd.Classes = []string{"tml-right"}
				}
			case isCases:
				mtd.AddClass("tml-left")
				if k == 1 {
					mtd.SetStyle("padding-left", "1em")
				}
			case hasClass(node.EnvClasses, "subarray"):
				mtd.AddClass("tml-left")
			}

			mtr.Children = append(mtr.Children, mtd)
		}

		// horizontal rules
		if i == 0 && len(node.HLinesBeforeRow) > 0 {
			if border := hlineBorder(node.HLinesBeforeRow[0]); border != "" {
				for _, mtd := range row {
					mtd.SetStyle("border-top", border)
				}
			}
		}

		if i+1 < len(node.HLinesBeforeRow) {
			if border := hlineBorder(node.HLinesBeforeRow[i+1]); border != "" {
				for _, mtd := range row {
					mtd.SetStyle("border-bottom", border)
				}
			}
		}

		// row gaps apply below the row
		if i < len(node.RowGaps) && node.RowGaps[i] != nil {
			gap, err := CalculateSize(*node.RowGaps[i], style)
			if err != nil {
				return nil, err
			}

			if gap.Number > 0 {
				for _, mtd := range row {
					mtd.SetStyle("padding-bottom", gap.String())
				}
			}
		}

		table = append(table, mtr)
	}

	if node.ArrayStretch != 0 && node.ArrayStretch != 1 {
		pad := formatNumber(round(1.4*node.ArrayStretch-0.8)) + "ex"
		for _, mtr := range table {
			for _, child := range mtr.Children {
				mtd := child.(*Element)
				mtd.SetStyle("padding-top", pad)
				mtd.SetStyle("padding-bottom", pad)
			}
		}
	}

	sidePadding := "0.4"
	switch {
	case hasClass(node.EnvClasses, "abut"), isCases:
		sidePadding = "0"
	case hasClass(node.EnvClasses, "small"):
		sidePadding = "0.1389"
	}

	for _, mtr := range table {
		numCols := len(mtr.Children) - 2*offset
		for j, child := range mtr.Children {
			k := j - offset
			if k < 0 || k >= numCols {
				continue
			}

			mtd := child.(*Element)
			left, right := sidePadding, sidePadding

			// aligned pairs are separated by 1em
			if isAlign || hasClass(node.EnvClasses, "abut") {
				left, right = "0", "0"
				if isAlign && k > 0 && k%2 == 0 {
					left = "1"
				}
			}

			if k == 0 {
				left = "0"
			}

			if k == numCols-1 {
				right = "0"
			}

			if mtd.GetStyle("padding-left") == "" {
				mtd.SetStyle("padding-left", left+"em")
			}

			mtd.SetStyle("padding-right", right+"em")
		}
	}

	mtable := NewElement("mtable")
	for _, mtr := range table {
		mtable.Children = append(mtable.Children, mtr)
	}

	switch {
	case hasClass(node.EnvClasses, "jot"):
		mtable.AddClass("tml-jot")
	case hasClass(node.EnvClasses, "small"):
		mtable.AddClass("tml-small")
	}

	if node.ScriptLevel == "display" {
		mtable.SetAttribute("displaystyle", "true")
	}

	if tagged {
		mtable.SetStyle("width", "100%")
	}

	// column lines and alignment
	var align []string
	for j, col := range node.Cols {
		align = append(align, alignNames[col.Align])

		for _, mtr := range table {
			idx := j + offset
			if idx >= len(mtr.Children) {
				continue
			}

			mtd := mtr.Children[idx].(*Element)
			if col.Align != "c" && !isAlign && !isCases {
				mtd.Classes = []string{"tml-" + alignNames[col.Align]}
			}

			if j == 0 && col.BorderLeft != BorderNone {
				mtd.SetStyle("border-left", borderStyle(col.BorderLeft))
			}

			if col.BorderRight != BorderNone {
				mtd.SetStyle("border-right", borderStyle(col.BorderRight))
				if j == len(node.Cols)-1 {
					mtd.SetStyle("padding-right", "0.4em")
				}
			}
		}
	}

	if tagged {
		if len(align) == 0 {
			align = []string{"center"}
		}

		align = append([]string{"left"}, append(align, "right")...)
	}

	if len(align) > 0 {
		mtable.SetAttribute("columnalign", strings.Join(align, " "))
	}

	if hasClass(node.EnvClasses, "small") {
		mstyle := NewElement("mstyle", mtable)
		mstyle.SetAttribute("scriptlevel", "1")
		return mstyle, nil
	}

	return mtable, nil
}

// hlineBorder is the css border for the lines before a row
func hlineBorder(lines []bool) string {
	switch {
	case len(lines) == 0:
		return ""
	case len(lines) >= 2:
		return borderStyle(BorderDouble)
	case lines[0]:
		return borderStyle(BorderDashed)
	default:
		return borderStyle(BorderSolid)
	}
}
