package texmath

func registerSqrt(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:            TypeSqrt,
		Names:           []string{"\\sqrt"},
		NumArgs:         1,
		NumOptionalArgs: 1,
		Handler: func(ctx *FunctionContext, args, optArgs []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeSqrt, Mode: ctx.Parser.mode, Base: args[0], Index: optArgs[0]}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			body, err := b.Group(node.Base, style)
			if err != nil {
				return nil, err
			}

			if node.Index == nil {
				return NewElement("msqrt", body), nil
			}

			index, err := b.Group(node.Index, style.IncrementLevel())
			if err != nil {
				return nil, err
			}

			return NewElement("mroot", body, index), nil
		},
	})
}
