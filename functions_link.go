package texmath

import "strings"

func registerLinks(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:          TypeHref,
		Names:         []string{"\\href"},
		NumArgs:       2,
		ArgTypes:      []ArgType{ArgURL, ArgOriginal},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			url, err := assertNodeType(args[0], TypeURL)
			if err != nil {
				return nil, err
			}

			if !ctx.Parser.settings.isTrusted(TrustContext{Command: ctx.Name, URL: url.URL}) {
				return nil, errorAt(ErrUntrusted, ctx.Token, "Function \"%s\" is not trusted", ctx.Name)
			}

			return &ParseNode{Type: TypeHref, Mode: ctx.Parser.mode, URL: url.URL, Body: ordArgument(args[1])}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			row, err := b.ExpressionRow(node.Body, style, false)
			if err != nil {
				return nil, err
			}

			el, ok := asElement(row)
			if !ok {
				el = NewElement("mrow", row)
			}

			if el.Tag != "mrow" {
				el = NewElement("mrow", el)
			}

			el.SetAttribute("href", node.URL)
			return el, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeHref,
		Names:         []string{"\\url"},
		NumArgs:       1,
		ArgTypes:      []ArgType{ArgURL},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			url, err := assertNodeType(args[0], TypeURL)
			if err != nil {
				return nil, err
			}

			if !ctx.Parser.settings.isTrusted(TrustContext{Command: ctx.Name, URL: url.URL}) {
				return nil, errorAt(ErrUntrusted, ctx.Token, "Function \"%s\" is not trusted", ctx.Name)
			}

			var chars []*ParseNode
			for _, c := range url.URL {
				chars = append(chars, &ParseNode{Type: TypeTextOrd, Mode: ModeText, Text: string(c)})
			}

			body := &ParseNode{Type: TypeText, Mode: ctx.Parser.mode, Font: "\\texttt", Body: chars}
			return &ParseNode{Type: TypeHref, Mode: ctx.Parser.mode, URL: url.URL, Body: []*ParseNode{body}}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeHTML,
		Names:         []string{"\\class", "\\id", "\\style", "\\data"},
		NumArgs:       2,
		ArgTypes:      []ArgType{ArgRaw, ArgOriginal},
		AllowedInText: true,
		Handler:       parseHTMLExtension,
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			row, err := b.ExpressionRow(node.Body, style, false)
			if err != nil {
				return nil, err
			}

			el, ok := asElement(row)
			if !ok {
				el = NewElement("mrow", row)
			}

			for _, key := range sortedKeys(node.Attributes) {
				value := node.Attributes[key]
				if key == "class" {
					el.Classes = append(el.Classes, strings.Fields(value)...)
					continue
				}

				el.SetAttribute(key, value)
			}

			return el, nil
		},
	})
}

// parseHTMLExtension handles \class, \id, \style and \data, an untrusted command renders as unsupported
func parseHTMLExtension(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
	raw, err := assertNodeType(args[0], TypeRaw)
	if err != nil {
		return nil, err
	}

	p := ctx.Parser
	value := raw.String
	trust := TrustContext{Command: ctx.Name}
	attributes := map[string]string{}

	switch ctx.Name {
	case "\\class":
		attributes["class"] = value
		trust.Class = value
	case "\\id":
		attributes["id"] = value
		trust.ID = value
	case "\\style":
		attributes["style"] = value
		trust.Style = value
	case "\\data":
		kv, err := KeyValue(value)
		if err != nil {
			return nil, errorAt(ErrParse, ctx.Token, "Error parsing key-value for \\data: %s", err)
		}

		for k, v := range kv {
			attributes["data-"+k] = v
		}

		trust.Attributes = attributes
	}

	if !p.settings.isTrusted(trust) {
		return p.formatUnsupportedCmd(ctx.Name), nil
	}

	return &ParseNode{Type: TypeHTML, Mode: p.mode, Attributes: attributes, Body: ordArgument(args[1])}, nil
}
