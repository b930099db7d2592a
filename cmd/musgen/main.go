package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	"github.com/poiesic/lokum/core"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/lokum/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.Scope]())

	err = g.AddStruct(reflect.TypeFor[core.VectorMeta](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.ListingVector](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/listing_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
