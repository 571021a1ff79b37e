package animgraph_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/animgraph"
	"github.com/aretw0/animgraph/pkg/adapters/memory"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
)

// ExampleGenerator_Regenerate builds a controller with a colour tree and a
// set of mutually exclusive toggles, then publishes it twice: the slot keeps
// its identity across passes.
func ExampleGenerator_Regenerate() {
	g, err := animgraph.New("Avatar", memory.NewStore())
	if err != nil {
		log.Fatal(err)
	}

	build := func(s *compile.Session) ([]animgraph.Output, error) {
		weight := s.Float("DirectBlendWeight")
		s.Override(weight, 1)
		root := s.DirectTree("Root").
			WithWeighted(s.HSVTree("Av/Shirt", []string{"Body"}, "_Color"), weight)

		hats, err := s.ExclusiveLayer("Hats", []domain.Param{
			s.Bool("Av/Hats/Cap"),
			s.Bool("Av/Hats/Beret"),
		}, s.DefaultResetGuard())
		if err != nil {
			return nil, err
		}

		ctrl, err := s.Controller(s.TreeLayer("Trees", root), hats)
		if err != nil {
			return nil, err
		}
		return []animgraph.Output{{Name: "Main", Controller: ctrl}}, nil
	}

	ctx := context.Background()
	first, err := g.Regenerate(ctx, build)
	if err != nil {
		log.Fatal(err)
	}
	second, err := g.Regenerate(ctx, build)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(first.Slots[0].Key)
	fmt.Println(first.Slots[0].ID == second.Slots[0].ID)
	// Output:
	// Avatar_Main_Animator
	// true
}
